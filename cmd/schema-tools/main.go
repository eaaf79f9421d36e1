// Package main provides the CLI entrypoint for schema-tools.
//
// schema-tools works on a directory of JSON Schema models:
//   - bundle merges the models into one self-contained schema whose
//     cross-file references point into a shared definitions section
//   - lint checks schema files against house-style rules
//   - checks lists the available lint rules
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

// errLintFailed is returned after lint results with errors were printed.
var errLintFailed = errors.New("lint found errors")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}

	if !errors.Is(err, errLintFailed) {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
	}

	stop()
	os.Exit(1)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "schema-tools",
		Short:         "Bundle and lint JSON Schema models",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), verbose))
		},
	}

	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	root.AddCommand(newBundleCmd(), newLintCmd(), newChecksCmd())

	return root
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
