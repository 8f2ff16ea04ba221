//go:build !windows

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withExecuteFunc(t *testing.T, fn func([]string, io.Writer, io.Writer) error) {
	t.Helper()
	orig := executeFunc
	executeFunc = fn
	t.Cleanup(func() { executeFunc = orig })
}

func runMainCapture(t *testing.T, args []string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	exited := -1
	runMain(args, &outBuf, &errBuf, func(c int) { exited = c })
	return outBuf.String(), errBuf.String(), exited
}

func TestRunMainSuccessDoesNotExit(t *testing.T) {
	withExecuteFunc(t, func([]string, io.Writer, io.Writer) error { return nil })
	_, _, code := runMainCapture(t, []string{"tintharness", "enter"})
	assert.Equal(t, -1, code)
}

func TestRunMainSilentExitError(t *testing.T) {
	withExecuteFunc(t, func([]string, io.Writer, io.Writer) error {
		return fmt.Errorf("wrapped: %w", &SilentExitError{Code: 7})
	})
	stdout, stderr, code := runMainCapture(t, []string{"tintharness"})
	assert.Equal(t, 7, code)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestRunMainUsageErrorExitsTwo(t *testing.T) {
	withExecuteFunc(t, func([]string, io.Writer, io.Writer) error { return errUsage })
	stdout, stderr, code := runMainCapture(t, []string{"tintharness"})
	assert.Equal(t, 2, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, errUsage.Error())
}

func TestRunMainGenericErrorExitsOne(t *testing.T) {
	withExecuteFunc(t, func([]string, io.Writer, io.Writer) error {
		return errors.New("boom")
	})
	stdout, stderr, code := runMainCapture(t, []string{"tintharness", "enter"})
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "boom")
}

func TestSilentExitErrorMessage(t *testing.T) {
	err := &SilentExitError{Code: 3}
	require.EqualError(t, err, "exit 3")
}
