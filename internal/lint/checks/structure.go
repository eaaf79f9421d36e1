package checks

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"schema-tools/internal/diagnostic"
	"schema-tools/internal/jsontree"
	"schema-tools/internal/lint"
	"schema-tools/internal/pointer"
	"schema-tools/internal/traverse"
)

// titleCaseExceptions stay lowercase after the first word of a title.
var titleCaseExceptions = []string{
	"a", "an", "and", "as", "at", "but", "by", "for", "in", "nor",
	"of", "on", "or", "so", "the", "to", "up", "yet", "via",
}

var defaultForbiddenTitleEndings = []string{".", ",", ";", ":", "!", "?"}

// TitleFormatting checks title strings: non-empty, bounded length, no
// trailing punctuation and, optionally, title case.
//
// Options: maxLength (int, default 50), requireTitleCase (bool),
// forbidEndingPunctuation (bool, default true), forbiddenEndings ([]string).
func TitleFormatting() lint.Check {
	c := lint.Check{
		ID:          "title-formatting",
		Name:        "Title Formatting",
		Description: "Validates that titles follow consistent formatting conventions.",
		Severity:    diagnostic.SeverityWarning,
	}

	c.Run = func(doc *lint.Document, cfg lint.CheckConfig) []diagnostic.Diagnostic {
		maxLength := cfg.Int("maxLength", 50)
		requireTitleCase := cfg.Bool("requireTitleCase", false)
		forbidEnding := cfg.Bool("forbidEndingPunctuation", true)
		forbidden := cfg.Strings("forbiddenEndings", defaultForbiddenTitleEndings)

		var issues []diagnostic.Diagnostic

		stringMembers(doc, keyTitle, func(text, path string) {
			title := strings.TrimSpace(text)
			if title == "" {
				issues = append(issues, c.IssueAt(diagnostic.SeverityError, "Title is empty.", path))
				return
			}

			if n := utf8.RuneCountInString(title); n > maxLength {
				issues = append(issues, c.Issue(
					fmt.Sprintf("Title exceeds maximum length of %d characters (%d characters).", maxLength, n), path).
					With("length", n).With("maxLength", maxLength).With("title", title))
			}

			if last := lastRune(title); forbidEnding && slices.Contains(forbidden, last) {
				issues = append(issues, c.Issue(fmt.Sprintf("Title should not end with punctuation %q.", last), path).
					With("title", title).With("lastChar", last).
					Suggest(strings.TrimSuffix(title, last)))
			}

			if requireTitleCase {
				if want := titleCase(title); want != title {
					issues = append(issues, c.IssueAt(diagnostic.SeverityInfo,
						fmt.Sprintf("Title case inconsistency. Expected %q.", want), path).
						With("actual", title).With("expected", want).
						Suggest(want))
				}
			}
		})

		return issues
	}

	return c
}

// titleCase capitalises every word except minor words after the first.
// Letters after the first of each word are left alone, so acronyms survive.
func titleCase(title string) string {
	// casers are stateful; files are linted concurrently
	titleCaser := cases.Title(language.English, cases.NoLower)
	lowerCaser := cases.Lower(language.English)

	words := strings.Fields(title)
	for i, w := range words {
		lower := lowerCaser.String(w)
		if i > 0 && slices.Contains(titleCaseExceptions, lower) {
			words[i] = lower
			continue
		}

		words[i] = titleCaser.String(w)
	}

	return strings.Join(words, " ")
}

// AdditionalPropertiesFalse requires object schemas with properties to
// declare "additionalProperties": false.
//
// Options: excludePaths ([]string), allowSchema (bool) accepts a schema
// value.
func AdditionalPropertiesFalse() lint.Check {
	c := lint.Check{
		ID:          "additional-properties-false",
		Name:        "Additional Properties False",
		Description: "Validates that object definitions have additionalProperties set to false.",
		Severity:    diagnostic.SeverityError,
	}

	c.Run = func(doc *lint.Document, cfg lint.CheckConfig) []diagnostic.Diagnostic {
		excludes := cfg.Strings("excludePaths", nil)
		allowSchema := cfg.Bool("allowSchema", false)

		var issues []diagnostic.Diagnostic

		doc.Walk(func(n traverse.Node) {
			obj, ok := n.Value.(*jsontree.Object)
			if !ok || isSchemaMap(n) {
				return
			}

			typ, _ := jsontree.Member(obj, "type")
			hasProps := obj.Has("properties")
			hasPattern := obj.Has("patternProperties")

			if typ != "object" && !hasProps && !hasPattern {
				return
			}

			if excluded(n.Path, excludes) || obj.Has(keyRef) {
				return
			}

			if k, ok := n.Key(); ok && slices.Contains([]string{"if", "then", "else", "not"}, k) {
				return
			}

			ap, ok := obj.Get("additionalProperties")

			switch {
			case !ok:
				if hasProps || hasPattern {
					issues = append(issues, c.Issue(`Object schema is missing "additionalProperties: false".`, n.Path).
						With("hasProperties", hasProps).With("hasPatternProperties", hasPattern).
						Suggest(`Add "additionalProperties": false to prevent unexpected properties.`))
				}
			case ap == jsontree.Bool(true):
				issues = append(issues, c.Issue(
					`Object schema has "additionalProperties: true". Set to false for strict validation.`, n.Path).
					Suggest(`Change "additionalProperties" to false.`))
			case ap == jsontree.Bool(false) || allowSchema:
				// compliant
			default:
				if o, isObj := ap.(*jsontree.Object); isObj && o.Len() == 0 {
					issues = append(issues, c.IssueAt(diagnostic.SeverityWarning,
						`Object schema has "additionalProperties: {}" which is equivalent to true. Set to false.`, n.Path).
						Suggest(`Change "additionalProperties" to false.`))

					return
				}

				issues = append(issues, c.IssueAt(diagnostic.SeverityInfo,
					`Object schema has "additionalProperties" set to a schema. `+
						`Consider using false unless additional properties are intentionally allowed.`, n.Path).
					With("current", ap.Kind().String()).
					Suggest("Review whether additional properties should be allowed."))
			}
		})

		return issues
	}

	return c
}

// refCompanions may appear next to $ref without changing its meaning.
var refCompanions = []string{keyRef, keyTitle, keyDescription, "$comment", "examples"}

// RefUsage warns about $ref combined with other keywords and reports local
// references that do not resolve.
//
// Options: checkConflictingKeywords (bool, default true),
// checkDefinitionsExist (bool, default true), allowedConflicting ([]string,
// default title and description).
func RefUsage() lint.Check {
	c := lint.Check{
		ID:          "ref-usage",
		Name:        "Ref Usage",
		Description: "Validates that $ref usage follows JSON Schema best practices.",
		Severity:    diagnostic.SeverityWarning,
	}

	c.Run = func(doc *lint.Document, cfg lint.CheckConfig) []diagnostic.Diagnostic {
		checkConflicts := cfg.Bool("checkConflictingKeywords", true)
		checkExist := cfg.Bool("checkDefinitionsExist", true)
		allowed := cfg.Strings("allowedConflicting", []string{keyTitle, keyDescription})

		var issues []diagnostic.Diagnostic

		doc.Walk(func(n traverse.Node) {
			if k, ok := n.Key(); ok && k == keyRef && checkExist {
				ref, isStr := jsontree.StringValue(n.Value)
				if isStr && strings.HasPrefix(ref, "#/") {
					if _, err := pointer.Resolve(doc.Root, ref); err != nil {
						issues = append(issues, c.IssueAt(diagnostic.SeverityError,
							fmt.Sprintf("$ref %q references a non-existent definition.", ref), n.Path).
							With("ref", ref))
					}
				}
			}

			obj, ok := n.Value.(*jsontree.Object)
			if !ok || !checkConflicts || isSchemaMap(n) {
				return
			}

			ref, ok := jsontree.Member(obj, keyRef)
			if !ok {
				return
			}

			var conflicting []string

			for _, k := range obj.Keys() {
				if !slices.Contains(refCompanions, k) && !slices.Contains(allowed, k) {
					conflicting = append(conflicting, k)
				}
			}

			if len(conflicting) > 0 {
				issues = append(issues, c.Issue(
					fmt.Sprintf("$ref is combined with other keywords: %s. "+
						"In JSON Schema draft-07, $ref causes other keywords to be ignored.", strings.Join(conflicting, ", ")),
					n.Path).
					With("ref", ref).With("conflictingKeywords", conflicting))
			}
		})

		return issues
	}

	return c
}
