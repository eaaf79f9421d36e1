package main

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"schema-tools/internal/bundle"
	"schema-tools/internal/refs"
)

func newBundleCmd() *cobra.Command {
	opts := bundle.DefaultOptions()

	var exceptions []string

	cmd := &cobra.Command{
		Use:   "bundle <models-dir> <root-schema>",
		Short: "Bundle the models directory into a single schema",
		Long: `Bundle merges every *.schema.json file of the models directory and the root
schema into one document. Cross-file references are rewritten to point into
the shared definitions section, and both references and rewritten pointers
are verified before anything is written.

The bundle is written next to the root schema as <name>-bundled.schema.json
and <name>-bundled.min.schema.json.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(exceptions) > 0 {
				opts.RefExceptions = append(slices.Clone(refs.DefaultExceptions), exceptions...)
			}

			opts.Logger = slog.Default()

			res, err := bundle.Run(cmd.Context(), args[0], args[1], opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ok := color.New(color.FgGreen)
			warn := color.New(color.FgYellow)

			for _, d := range res.Diagnostics.Warnings() {
				warn.Fprintf(out, "⚠ %s\n", d.String())
			}

			if opts.DryRun {
				ok.Fprintf(out, "✔ Bundled %d schemas (dry run, nothing written)\n", len(res.Corpus.Documents))
				return nil
			}

			ok.Fprintf(out, "✔ Bundled %d schemas\n", len(res.Corpus.Documents))
			fmt.Fprintf(out, "  %s\n  %s\n", res.BundledPath, res.MinifiedPath)

			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&opts.SchemaVersion, "schema-version", "", "Override the $schema of the bundle")
	fl.BoolVar(&opts.Validate, "validate", opts.Validate, "Compile the bundle to check it is a valid schema")
	fl.StringArrayVar(&exceptions, "ref-exception", nil,
		"Additional schema file whose references are left untouched (repeatable)")
	fl.BoolVar(&opts.DryRun, "dry-run", false, "Run every check but write nothing")
	fl.StringVar(&opts.MemberPattern, "pattern", opts.MemberPattern, "Glob selecting member schemas in the models directory")

	return cmd
}
