//go:build !windows

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tint-sh/tintharness/internal/keymap"
)

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the recognized symbolic key names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range keymap.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
