package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"schema-tools/internal/lint"
	"schema-tools/internal/lint/checks"
)

type lintFlags struct {
	config  string
	format  string
	exclude []string
	include []string
	quiet   bool
}

func newLintCmd() *cobra.Command {
	var f lintFlags

	cmd := &cobra.Command{
		Use:   "lint <path>...",
		Short: "Lint schema files against the house-style checks",
		Long: `Lint checks JSON schema files. Paths may be files, directories (searched
recursively for *.json, skipping hidden directories and node_modules) or glob
patterns such as "schema/**/*.schema.json".

The exit status is 1 when any error-severity issue is found.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd.OutOrStdout(), args, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "",
		"Config file (default: first of "+strings.Join(lint.ConfigFileNames, ", ")+")")
	fl.StringVarP(&f.format, "format", "f", lint.FormatNameStylish, "Output format: stylish, json or compact")
	fl.StringArrayVarP(&f.exclude, "exclude", "e", nil, "Skip a check (repeatable)")
	fl.StringArrayVarP(&f.include, "include", "i", nil, "Run only the given check (repeatable)")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "Report errors only")

	return cmd
}

func runLint(w io.Writer, args []string, f lintFlags) error {
	formatter, err := lint.FormatterFor(f.format)
	if err != nil {
		return err
	}

	cfg, err := loadLintConfig(f.config)
	if err != nil {
		return err
	}

	cfg.ExcludeChecks = append(cfg.ExcludeChecks, f.exclude...)
	if len(f.include) > 0 {
		cfg.IncludeChecks = f.include
	}

	files, err := expandPaths(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return errors.New("no JSON files found")
	}

	slog.Debug("linting", "files", len(files))

	reg := checks.Default()
	for _, u := range cfg.UnknownChecks(reg) {
		slog.Warn(u.String())
	}

	results := lint.New(reg, *cfg).LintFiles(files)

	if err := formatter(w, results, f.quiet); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if lint.AnyErrors(results) {
		return errLintFailed
	}

	return nil
}

// loadLintConfig loads path, or the first config file found in the working
// directory. No config file means defaults.
func loadLintConfig(path string) (*lint.Config, error) {
	if path == "" {
		found, ok := lint.FindConfig(".")
		if !ok {
			return &lint.Config{}, nil
		}

		slog.Debug("using lint config", "path", found)

		path = found
	}

	return lint.LoadConfig(path)
}
