package checks

import (
	"fmt"
	"regexp"
	"strings"

	"schema-tools/internal/diagnostic"
	"schema-tools/internal/jsontree"
	"schema-tools/internal/lint"
	"schema-tools/internal/traverse"
)

var (
	lineSplit    = regexp.MustCompile(`\r?\n`)
	trailingWS   = regexp.MustCompile(`[ \t]+$`)
	lfWithoutCR  = regexp.MustCompile(`(^|[^\r])\n`)
	objectKeyRow = regexp.MustCompile(`^"[^"]+"\s*:`)
)

// FormattingIndent compares the raw file with its canonical rendering:
// indentation, tabs, trailing whitespace, line endings and final newline.
//
// Options: spaces (int, default 2), requireFinalNewline (bool, default
// true), allowTrailingWhitespace (bool), lineEnding ("lf" or "crlf").
func FormattingIndent() lint.Check {
	c := lint.Check{
		ID:          "formatting-indent",
		Name:        "Formatting and Indentation",
		Description: "Validates consistent formatting including indentation, whitespace, and line endings.",
		Severity:    diagnostic.SeverityError,
	}

	c.Run = func(doc *lint.Document, cfg lint.CheckConfig) []diagnostic.Diagnostic {
		spaces := cfg.Int("spaces", 2)
		requireFinalNewline := cfg.Bool("requireFinalNewline", true)
		allowTrailing := cfg.Bool("allowTrailingWhitespace", false)
		lineEnding := strings.ToLower(cfg.String("lineEnding", "lf"))

		raw := string(doc.Raw)
		lines := lineSplit.Split(raw, -1)
		root := traverse.RootPath

		var issues []diagnostic.Diagnostic

		if requireFinalNewline && !strings.HasSuffix(raw, "\n") {
			issues = append(issues, c.Issue("File shall end with a newline character.", root).With("line", len(lines)))
		}

		hasCRLF := strings.Contains(raw, "\r\n")

		switch {
		case lineEnding == "lf" && hasCRLF:
			issues = append(issues, c.Issue("File contains CRLF line endings. Expected LF only.", root).
				With("expected", "LF").With("actual", "CRLF"))
		case lineEnding == "crlf" && !hasCRLF && lfWithoutCR.MatchString(raw):
			issues = append(issues, c.Issue("File contains LF line endings. Expected CRLF.", root).
				With("expected", "CRLF").With("actual", "LF"))
		}

		for i, line := range lines {
			if !allowTrailing && trailingWS.MatchString(line) {
				issues = append(issues, c.IssueAt(diagnostic.SeverityWarning,
					fmt.Sprintf("Line %d has trailing whitespace.", i+1), root).With("line", i+1))
			}

			if strings.HasPrefix(line, "\t") {
				issues = append(issues, c.Issue(
					fmt.Sprintf("Line %d uses tabs for indentation. Use %d spaces instead.", i+1, spaces), root).
					With("line", i+1))
			}
		}

		canonical, err := jsontree.MarshalIndent(doc.Root, strings.Repeat(" ", spaces))
		if err != nil {
			return issues
		}

		return append(issues, compareCanonical(c, canonical, raw)...)
	}

	return c
}

func compareCanonical(c lint.Check, canonical []byte, raw string) []diagnostic.Diagnostic {
	root := traverse.RootPath
	want := strings.Split(string(canonical), "\n")

	got := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	if len(got) > 0 && got[len(got)-1] == "" {
		got = got[:len(got)-1]
	}

	var issues []diagnostic.Diagnostic

	for i := range max(len(want), len(got)) {
		line := i + 1

		switch {
		case i >= len(want):
			issues = append(issues, c.Issue(fmt.Sprintf("Line %d is unexpected. File has more lines than expected.", line), root).
				With("line", line).With("actual", truncate(got[i], 50)))

			continue
		case i >= len(got):
			issues = append(issues, c.Issue(fmt.Sprintf("Line %d is missing. Expected: %q", line, truncate(want[i], 50)), root).
				With("line", line).With("expected", truncate(want[i], 50)))

			continue
		}

		wantIndent, gotIndent := leadingSpaces(want[i]), leadingSpaces(got[i])
		if wantIndent != gotIndent {
			issues = append(issues, c.Issue(
				fmt.Sprintf("Line %d has incorrect indentation. Expected %d spaces, found %d.", line, wantIndent, gotIndent), root).
				With("line", line).With("expectedIndent", wantIndent).With("actualIndent", gotIndent).
				With("content", truncate(strings.TrimSpace(got[i]), 40)))

			continue
		}

		w, g := strings.TrimSpace(want[i]), strings.TrimSpace(got[i])
		if w == g {
			continue
		}

		d := c.IssueAt(diagnostic.SeverityWarning, fmt.Sprintf("Line %d content differs from canonical format.", line), root)
		if objectKeyRow.MatchString(w) && objectKeyRow.MatchString(g) {
			d = c.IssueAt(diagnostic.SeverityInfo, fmt.Sprintf("Line %d has different key ordering than canonical format.", line), root)
		}

		issues = append(issues, d.With("line", line).With("expected", truncate(w, 50)).With("actual", truncate(g, 50)))
	}

	return issues
}

func leadingSpaces(s string) int {
	return len(s) - len(strings.TrimLeft(s, " "))
}
