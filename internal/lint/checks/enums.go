package checks

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"schema-tools/internal/diagnostic"
	"schema-tools/internal/jsontree"
	"schema-tools/internal/lint"
	"schema-tools/internal/traverse"
)

// Case styles recognised in enum values.
const (
	CaseKebab  = "kebab-case"
	CaseSnake  = "snake_case"
	CaseCamel  = "camelCase"
	CasePascal = "PascalCase"
	CaseLower  = "lowercase"
	CaseUpper  = "UPPERCASE"
)

// caseStyles is tried in order; the first match names a value's style.
var caseStyles = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{CaseKebab, regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)},
	{CaseSnake, regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)},
	{CaseCamel, regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)},
	{CasePascal, regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)},
	{CaseLower, regexp.MustCompile(`^[a-z0-9]+$`)},
	{CaseUpper, regexp.MustCompile(`^[A-Z0-9]+$`)},
}

var (
	whitespace    = regexp.MustCompile(`\s`)
	specialChar   = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	wordSeparator = regexp.MustCompile(`[-_\s]+`)
)

func detectCase(s string) string {
	for _, cs := range caseStyles {
		if cs.pattern.MatchString(s) {
			return cs.name
		}
	}

	return ""
}

// convertCase rewrites s in the given case style.
func convertCase(s, style string) string {
	spaced := camelBoundary.ReplaceAllString(s, "$1 $2")
	words := strings.Fields(strings.ToLower(wordSeparator.ReplaceAllString(spaced, " ")))

	capitalise := func(w string) string {
		r, size := utf8.DecodeRuneInString(w)
		return string(unicode.ToUpper(r)) + w[size:]
	}

	switch style {
	case CaseKebab:
		return strings.Join(words, "-")
	case CaseSnake:
		return strings.Join(words, "_")
	case CaseCamel:
		for i := 1; i < len(words); i++ {
			words[i] = capitalise(words[i])
		}

		return strings.Join(words, "")
	case CasePascal:
		for i := range words {
			words[i] = capitalise(words[i])
		}

		return strings.Join(words, "")
	case CaseLower:
		return strings.Join(words, "")
	case CaseUpper:
		return strings.ToUpper(strings.Join(words, ""))
	default:
		return s
	}
}

// EnumValueFormatting checks string enum values: no whitespace or special
// characters, one case style per enum and, when the schema has meta:enum,
// a description for every value and no description without a value.
//
// Options: preferredCase (string, default kebab-case), allowMixedCase (bool).
func EnumValueFormatting() lint.Check {
	c := lint.Check{
		ID:          "enum-value-formatting",
		Name:        "Enum Value Formatting",
		Description: "Validates that enum values follow consistent formatting conventions.",
		Severity:    diagnostic.SeverityWarning,
	}

	c.Run = func(doc *lint.Document, cfg lint.CheckConfig) []diagnostic.Diagnostic {
		preferred := cfg.String("preferredCase", CaseKebab)
		allowMixed := cfg.Bool("allowMixedCase", false)

		var issues []diagnostic.Diagnostic

		doc.Walk(func(n traverse.Node) {
			obj, ok := n.Value.(*jsontree.Object)
			if !ok || isSchemaMap(n) {
				return
			}

			v, _ := obj.Get("enum")

			values, ok := v.(*jsontree.Array)
			if !ok || values.Len() == 0 {
				return
			}

			path := traverse.Join(n.Path, traverse.Key("enum"))
			meta, hasMeta := obj.Get(keyMetaEnum)
			metaObj, _ := meta.(*jsontree.Object)

			var (
				styles     occurrences
				enumValues = map[string]struct{}{}
			)

			for _, item := range values.Items {
				s, ok := jsontree.StringValue(item)
				if !ok {
					continue
				}

				enumValues[s] = struct{}{}

				if style := detectCase(s); style != "" {
					styles.add(style, s)
				}

				if whitespace.MatchString(s) {
					issues = append(issues, c.IssueAt(diagnostic.SeverityError,
						fmt.Sprintf("Enum value %q contains whitespace. Use %s instead.", s, preferred), path).
						With("value", s).
						Suggest(convertCase(s, preferred)))
				}

				if specialChar.MatchString(s) {
					issues = append(issues, c.Issue(fmt.Sprintf("Enum value %q contains special characters.", s), path).
						With("value", s))
				}

				if hasMeta && !describes(metaObj, s) {
					issues = append(issues, c.IssueAt(diagnostic.SeverityError,
						fmt.Sprintf("Enum value %q is missing a description in meta:enum.", s), path).
						With("value", s))
				}
			}

			if !allowMixed && len(styles.order) > 1 {
				used := make([]string, len(styles.order))
				counts := make(map[string]any, len(styles.order))

				for i, st := range styles.order {
					used[i] = fmt.Sprintf("%s (%d)", st, len(styles.paths[st]))
					counts[st] = len(styles.paths[st])
				}

				issues = append(issues, c.IssueAt(diagnostic.SeverityInfo,
					fmt.Sprintf("Enum values use inconsistent case styles: %s. Consider using %s consistently.",
						strings.Join(used, ", "), preferred), path).
					With("detectedStyles", counts))
			}

			if metaObj == nil {
				return
			}

			metaPath := traverse.Join(n.Path, traverse.Key(keyMetaEnum))
			for k := range metaObj.All() {
				if _, ok := enumValues[k]; !ok {
					issues = append(issues, c.Issue(
						fmt.Sprintf("meta:enum contains %q which is not in the enum array.", k),
						traverse.Join(metaPath, traverse.Key(k))).
						With("value", k))
				}
			}
		})

		return issues
	}

	return c
}

// describes reports whether meta holds a non-empty description for value.
func describes(meta *jsontree.Object, value string) bool {
	if meta == nil {
		return false
	}

	d, ok := meta.Get(value)
	if !ok {
		return false
	}

	switch x := d.(type) {
	case jsontree.String:
		return x != ""
	case jsontree.Bool:
		return bool(x)
	case jsontree.Null:
		return false
	default:
		return true
	}
}
