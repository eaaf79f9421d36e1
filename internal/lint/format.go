package lint

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"

	"schema-tools/internal/diagnostic"
)

// Output formats.
const (
	FormatNameStylish = "stylish"
	FormatNameJSON    = "json"
	FormatNameCompact = "compact"
)

// Formatter writes lint results.
type Formatter func(w io.Writer, results []*Result, quiet bool) error

// FormatterFor returns the formatter registered under name.
func FormatterFor(name string) (Formatter, error) {
	switch name {
	case FormatNameStylish, "":
		return FormatStylish, nil
	case FormatNameJSON:
		return FormatJSON, nil
	case FormatNameCompact:
		return FormatCompact, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want %s, %s or %s)",
			name, FormatNameStylish, FormatNameJSON, FormatNameCompact)
	}
}

var (
	styleFile    = color.New(color.Underline)
	styleError   = color.New(color.FgRed)
	styleWarning = color.New(color.FgYellow)
	styleInfo    = color.New(color.FgCyan)
	styleMuted   = color.New(color.FgHiBlack)
	styleBold    = color.New(color.Bold)
	styleOK      = color.New(color.FgGreen)
)

func severityStyle(sev diagnostic.Severity) *color.Color {
	switch sev {
	case diagnostic.SeverityError:
		return styleError
	case diagnostic.SeverityWarning:
		return styleWarning
	default:
		return styleInfo
	}
}

type checkStats struct {
	id       string
	errors   int
	warnings int
	info     int
}

func (s checkStats) total() int {
	return s.errors + s.warnings + s.info
}

// FormatStylish writes per-file issue blocks followed by totals and a
// per-check breakdown.
func FormatStylish(w io.Writer, results []*Result, quiet bool) error {
	var (
		b              strings.Builder
		errs, warnings int
		stats          []*checkStats
		byID           = map[string]*checkStats{}
	)

	for _, r := range results {
		issues := r.Visible(quiet)
		if len(issues) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n%s\n", styleFile.Sprint(r.FilePath))

		for _, is := range issues {
			fmt.Fprintf(&b, "  %s  %s\n", severityStyle(is.Severity).Sprint(is.Severity), is.Path)
			fmt.Fprintf(&b, "         %s %s\n", is.Message, styleMuted.Sprintf("(%s)", is.Code))

			s, ok := byID[is.Code]
			if !ok {
				s = &checkStats{id: is.Code}
				byID[is.Code] = s
				stats = append(stats, s)
			}

			switch is.Severity {
			case diagnostic.SeverityError:
				errs++
				s.errors++
			case diagnostic.SeverityWarning:
				warnings++
				s.warnings++
			default:
				s.info++
			}
		}
	}

	if errs == 0 && warnings == 0 {
		fmt.Fprintf(&b, "\n%s\n", styleOK.Sprint("✔ No issues found"))
		_, err := io.WriteString(w, b.String())

		return err
	}

	fmt.Fprintf(&b, "\n%s (%d errors, %d warnings)\n",
		styleError.Sprintf("✖ %d problems", errs+warnings), errs, warnings)

	slices.SortStableFunc(stats, func(a, b *checkStats) int {
		return cmp.Compare(b.total(), a.total())
	})

	width := 0
	for _, s := range stats {
		width = max(width, len(s.id))
	}

	fmt.Fprintf(&b, "\n%s\n", styleBold.Sprint("Issues by check:"))

	for _, s := range stats {
		var parts []string
		if s.errors > 0 {
			parts = append(parts, styleError.Sprint(plural(s.errors, "error")))
		}

		if s.warnings > 0 {
			parts = append(parts, styleWarning.Sprint(plural(s.warnings, "warning")))
		}

		if s.info > 0 {
			parts = append(parts, styleInfo.Sprintf("%d info", s.info))
		}

		fmt.Fprintf(&b, "  %-*s  %s\n", width, s.id, strings.Join(parts, ", "))
	}

	_, err := io.WriteString(w, b.String())

	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}

	return fmt.Sprintf("%d %ss", n, word)
}

type jsonFileResult struct {
	FilePath string                  `json:"filePath"`
	Issues   []diagnostic.Diagnostic `json:"issues"`
	Summary  Summary                 `json:"summary"`
}

type jsonTotals struct {
	FilesLinted   int `json:"filesLinted"`
	TotalIssues   int `json:"totalIssues"`
	TotalErrors   int `json:"totalErrors"`
	TotalWarnings int `json:"totalWarnings"`
}

type jsonReport struct {
	Results []jsonFileResult `json:"results"`
	Summary jsonTotals       `json:"summary"`
}

// FormatJSON writes a machine-readable report.
func FormatJSON(w io.Writer, results []*Result, quiet bool) error {
	report := jsonReport{Results: make([]jsonFileResult, 0, len(results))}

	for _, r := range results {
		issues := r.Visible(quiet)
		if issues == nil {
			issues = []diagnostic.Diagnostic{}
		}

		report.Results = append(report.Results, jsonFileResult{
			FilePath: r.FilePath,
			Issues:   issues,
			Summary:  r.Summary(),
		})

		report.Summary.TotalIssues += len(r.Issues.Items)
		report.Summary.TotalErrors += len(r.Issues.Errors())
		report.Summary.TotalWarnings += len(r.Issues.Warnings())
	}

	report.Summary.FilesLinted = len(results)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(report)
}

// FormatCompact writes one line per issue.
func FormatCompact(w io.Writer, results []*Result, quiet bool) error {
	for _, r := range results {
		for _, is := range r.Visible(quiet) {
			_, err := fmt.Fprintf(w, "%s: %s: %s: %s [%s]\n", r.FilePath, is.Path, is.Severity, is.Message, is.Code)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
