package checks

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"schema-tools/internal/diagnostic"
	"schema-tools/internal/jsontree"
	"schema-tools/internal/lint"
	"schema-tools/internal/traverse"
)

var (
	urlEnding      = regexp.MustCompile(`https?://\S+$`)
	markdownEnding = regexp.MustCompile(`\]\([^)]+\)$`)
)

// DescriptionFullStop requires description strings to end like a sentence.
// Descriptions ending in a URL or markdown link pass; ones ending in code
// get a warning. meta:enum descriptions are left to MetaEnumFullStop.
//
// Options: validEndings ([]string), excludePaths ([]string).
func DescriptionFullStop() lint.Check {
	c := lint.Check{
		ID:          "description-full-stop",
		Name:        "Description Full Stop",
		Description: "Validates that property descriptions end with a full stop.",
		Severity:    diagnostic.SeverityError,
	}

	c.Run = func(doc *lint.Document, cfg lint.CheckConfig) []diagnostic.Diagnostic {
		endings := cfg.Strings("validEndings", defaultValidEndings)
		excludes := cfg.Strings("excludePaths", nil)

		var issues []diagnostic.Diagnostic

		stringMembers(doc, keyDescription, func(text, path string) {
			if excluded(path, excludes) || strings.Contains(path, keyMetaEnum) {
				return
			}

			trimmed := strings.TrimSpace(text)
			if trimmed == "" {
				return
			}

			last := lastRune(trimmed)
			if slices.Contains(endings, last) || urlEnding.MatchString(trimmed) || markdownEnding.MatchString(trimmed) {
				return
			}

			if strings.HasSuffix(trimmed, "`") {
				issues = append(issues, c.IssueAt(diagnostic.SeverityWarning,
					"Description ends with code block. Consider adding a full stop after.", path).
					With("ending", tail(trimmed, 30)).With("lastChar", last))

				return
			}

			issues = append(issues, c.Issue(fmt.Sprintf("Description does not end with a full stop. Ends with: %q", last), path).
				With("ending", tail(trimmed, 30)).With("lastChar", last).
				Suggest(trimmed+"."))
		})

		return issues
	}

	return c
}

// MetaEnumFullStop requires meta:enum to be an object of non-empty string
// descriptions ending like a sentence.
//
// Options: validEndings ([]string).
func MetaEnumFullStop() lint.Check {
	c := lint.Check{
		ID:          "meta-enum-full-stop",
		Name:        "Meta:Enum Full Stop",
		Description: "Validates that meta:enum descriptions end with a full stop.",
		Severity:    diagnostic.SeverityError,
	}

	c.Run = func(doc *lint.Document, cfg lint.CheckConfig) []diagnostic.Diagnostic {
		endings := cfg.Strings("validEndings", defaultValidEndings)

		var issues []diagnostic.Diagnostic

		metaEnums(doc, func(n traverse.Node, entries []metaEnumEntry) {
			if entries == nil && n.Value.Kind() != jsontree.KindObject {
				issues = append(issues, c.Issue("meta:enum shall be an object mapping enum values to descriptions.", n.Path).
					With("actual", n.Value.Kind().String()))

				return
			}

			for _, e := range entries {
				s, ok := jsontree.StringValue(e.desc)
				if !ok {
					issues = append(issues, c.Issue(fmt.Sprintf("meta:enum description for %q shall be a string.", e.value), e.path).
						With("actual", e.desc.Kind().String()))

					continue
				}

				trimmed := strings.TrimSpace(s)
				if trimmed == "" {
					issues = append(issues, c.IssueAt(diagnostic.SeverityWarning,
						fmt.Sprintf("meta:enum description for %q is empty.", e.value), e.path).
						With("enumValue", e.value))

					continue
				}

				if !slices.Contains(endings, lastRune(trimmed)) {
					issues = append(issues, c.Issue(fmt.Sprintf("meta:enum description for %q does not end with a full stop.", e.value), e.path).
						With("enumValue", e.value).With("lastChar", lastRune(trimmed)).
						Suggest(trimmed+"."))
				}
			}
		})

		return issues
	}

	return c
}

var (
	mustWord     = regexp.MustCompile(`(?i)\bmust\b(\s+(\w+))?`)
	mustContexts = []*regexp.Regexp{
		regexp.MustCompile(`(?i)the value must be`),
		regexp.MustCompile(`(?i)"must"`),
		regexp.MustCompile("(?i)`must`"),
	}
)

// NoMustWord flags "must" in descriptions and meta:enum descriptions; house
// style uses "shall".
//
// Options: allowInContext (bool) accepts quoted usages and "the value must
// be"; excludePaths ([]string).
func NoMustWord() lint.Check {
	c := lint.Check{
		ID:          "no-must-word",
		Name:        `No "Must" Word`,
		Description: `Validates that descriptions use "shall" instead of "must".`,
		Severity:    diagnostic.SeverityError,
	}

	c.Run = func(doc *lint.Document, cfg lint.CheckConfig) []diagnostic.Diagnostic {
		allowInContext := cfg.Bool("allowInContext", false)
		excludes := cfg.Strings("excludePaths", nil)

		var issues []diagnostic.Diagnostic

		scan := func(text, path string) {
			if excluded(path, excludes) {
				return
			}

			if allowInContext && slices.ContainsFunc(mustContexts, func(re *regexp.Regexp) bool { return re.MatchString(text) }) {
				return
			}

			for _, m := range mustWord.FindAllStringSubmatchIndex(text, -1) {
				found := text[m[0]:m[1]]

				suggestion := "shall"
				if m[4] >= 0 {
					suggestion += " " + text[m[4]:m[5]]
				}

				issues = append(issues, c.Issue(fmt.Sprintf(`Use "shall" instead of "must". Found: %q`, found), path).
					With("found", found).
					With("context", excerpt(text, m[0], m[1], 15)).
					With("position", m[0]).
					Suggest(suggestion))
			}
		}

		stringMembers(doc, keyDescription, scan)
		metaEnums(doc, func(_ traverse.Node, entries []metaEnumEntry) {
			for _, e := range entries {
				if s, ok := jsontree.StringValue(e.desc); ok {
					scan(s, e.path)
				}
			}
		})

		return issues
	}

	return c
}

// RFCKeywords are the RFC 2119 requirement keywords, longest first where
// one extends another.
var RFCKeywords = []string{
	"MUST NOT", "MUST",
	"SHALL NOT", "SHALL",
	"SHOULD NOT", "SHOULD",
	"MAY",
	"OPTIONAL",
	"REQUIRED",
	"NOT RECOMMENDED", "RECOMMENDED",
}

var rfcKeyword = func() *regexp.Regexp {
	alts := make([]string, len(RFCKeywords))
	for i, k := range RFCKeywords {
		alts[i] = strings.ReplaceAll(k, " ", `\s+`)
	}

	return regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
}()

var spaceRun = regexp.MustCompile(`\s+`)

// NoUppercaseRFC flags uppercase RFC 2119 keywords in descriptions and
// meta:enum descriptions. Descriptions are informative, not normative.
//
// Options: allowedKeywords ([]string), allowedPaths ([]string).
func NoUppercaseRFC() lint.Check {
	c := lint.Check{
		ID:          "no-uppercase-rfc",
		Name:        "No Uppercase RFC Keywords",
		Description: "Validates that descriptions do not contain uppercase RFC 2119 keywords.",
		Severity:    diagnostic.SeverityError,
	}

	c.Run = func(doc *lint.Document, cfg lint.CheckConfig) []diagnostic.Diagnostic {
		allowed := cfg.Strings("allowedKeywords", nil)
		allowedPaths := cfg.Strings("allowedPaths", nil)

		var issues []diagnostic.Diagnostic

		scan := func(what, text, path string) {
			if excluded(path, allowedPaths) {
				return
			}

			for _, m := range rfcKeyword.FindAllStringIndex(text, -1) {
				found := text[m[0]:m[1]]
				keyword := spaceRun.ReplaceAllString(found, " ")

				if slices.Contains(allowed, keyword) {
					continue
				}

				suggestion := strings.ToLower(keyword)
				issues = append(issues, c.Issue(
					fmt.Sprintf("Uppercase RFC keyword %q found in %s. Use lowercase %q instead.", found, what, suggestion), path).
					With("keyword", found).
					With("context", excerpt(text, m[0], m[1], 20)).
					With("position", m[0]).
					Suggest(suggestion))
			}
		}

		stringMembers(doc, keyDescription, func(text, path string) {
			scan("description", text, path)
		})
		metaEnums(doc, func(_ traverse.Node, entries []metaEnumEntry) {
			for _, e := range entries {
				if s, ok := jsontree.StringValue(e.desc); ok {
					scan("meta:enum description", s, e.path)
				}
			}
		})

		return issues
	}

	return c
}
