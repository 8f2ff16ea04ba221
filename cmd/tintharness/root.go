//go:build !windows

package main

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/tint-sh/tintharness/internal/harness"
	"github.com/tint-sh/tintharness/internal/keymap"
	"github.com/tint-sh/tintharness/internal/session"
)

var errUsage = errors.New("at least one key name is required")

type rootOptions struct {
	target      string
	stubBG      string
	settle      time.Duration
	keyDelay    time.Duration
	escapeDelay time.Duration
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := rootOptions{}
	timing := keymap.DefaultTiming()

	cmd := &cobra.Command{
		Use:   "tintharness <key> [<key>...]",
		Short: "Drive tint_pick through a pseudo-terminal and report its result",
		Long: `tintharness runs the tint color picker inside a pseudo-terminal, injects a
scripted sequence of keys (up, down, left, right, enter, escape, or any
single character), and prints two lines for test assertions:

  exit:<code>     the child's exit status, or -<signal> on signal death
  stdout:<token>  the selected color, or empty when the run produced none`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errUsage
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.target, "target", "./tint", "path to the tint script sourced into the child shell")
	cmd.Flags().StringVar(&opts.stubBG, "stub-bg", session.DefaultStubBG, "sentinel the tint_query stub returns; must not appear in the palette")
	cmd.Flags().DurationVar(&opts.settle, "settle", timing.Settle, "wait after spawn before the first key")
	cmd.Flags().DurationVar(&opts.keyDelay, "key-delay", timing.Key, "pause after each ordinary key")
	cmd.Flags().DurationVar(&opts.escapeDelay, "escape-delay", timing.Escape, "pause after a bare escape; must exceed the target's read timeout")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log harness internals to stderr")

	cmd.AddCommand(newKeysCmd())
	return cmd
}

func runPick(stdout io.Writer, stderr io.Writer, opts rootOptions, names []string) error {
	target, err := homedir.Expand(opts.target)
	if err != nil {
		return err
	}

	logger := log.New(stderr)
	logger.SetLevel(log.FatalLevel)
	if opts.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg := session.Config{
		TargetPath: target,
		StubBG:     opts.stubBG,
		Timing: keymap.Timing{
			Settle: opts.settle,
			Key:    opts.keyDelay,
			Escape: opts.escapeDelay,
		},
	}

	res, err := harness.Run(cfg, names, logger)
	if err != nil {
		return err
	}
	res.Write(stdout)
	return nil
}
