// Package cmd defines the irysname command line interface, built on
// spf13/cobra. Help text refers to other commands in backticks so generated
// markdown docs format them as code.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	golog "github.com/ipfs/go-log"
	"github.com/irysname/irysname/registry"
	"github.com/qri-io/ioes"
)

var log = golog.Logger("cmd")

// Execute builds the root command & runs it against os.Args, exiting with a
// non-zero code on failure. Set IRYSNAME_BACKTRACE to let panics through
func Execute() {
	if os.Getenv("IRYSNAME_BACKTRACE") == "" {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintln(os.Stderr, r)
				os.Exit(ExitCodeErr)
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := NewIrysnameCommand(ctx, StandardRepoPath(), ioes.NewStdIOStreams())
	// errors are printed by ErrExit, usage only for bad arguments
	root.SilenceUsage = true
	root.SilenceErrors = true
	if err := root.Execute(); err != nil {
		cancel()
		ErrExit(os.Stderr, err)
	}
}

// Exit codes. Scripts can tell a rejected registration from a broken setup
const (
	ExitCodeOK = iota
	ExitCodeErr
	// ExitCodeRejected covers invalid, taken & badly signed usernames
	ExitCodeRejected
	// ExitCodeNotFound is returned when resolving an unregistered username
	ExitCodeNotFound
	// ExitCodeUnavailable means the registry backend couldn't be reached or
	// refused an upload
	ExitCodeUnavailable
)

// ExitCode maps an error to a process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeOK
	case errors.Is(err, registry.ErrInvalidFormat),
		errors.Is(err, registry.ErrUsernameTaken),
		errors.Is(err, registry.ErrSignatureInvalid):
		return ExitCodeRejected
	case errors.Is(err, registry.ErrNotFound):
		return ExitCodeNotFound
	case errors.Is(err, registry.ErrBackendUnavailable),
		errors.Is(err, registry.ErrUploadFailed):
		return ExitCodeUnavailable
	default:
		return ExitCodeErr
	}
}

// ErrExit writes an error to w & exits with the matching code
func ErrExit(w io.Writer, err error) {
	log.Debug(err.Error())
	printErr(w, err)
	os.Exit(ExitCode(err))
}
