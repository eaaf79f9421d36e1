package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"schema-tools/internal/lint"
	"schema-tools/internal/lint/checks"
)

func newChecksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checks",
		Short: "List the available lint checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printChecks(cmd.OutOrStdout(), checks.Default())
		},
	}
}

func printChecks(w io.Writer, reg *lint.Registry) error {
	all := reg.All()

	width := 0
	for _, c := range all {
		width = max(width, len(c.ID))
	}

	if _, err := fmt.Fprint(w, "Available checks:\n\n"); err != nil {
		return err
	}

	for _, c := range all {
		_, err := fmt.Fprintf(w, "  %-*s [%s]  %s\n  %s  %s\n\n",
			width, c.ID, c.Severity, c.Name, strings.Repeat(" ", width), c.Description)
		if err != nil {
			return err
		}
	}

	return nil
}
