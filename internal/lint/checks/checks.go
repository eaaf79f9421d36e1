// Package checks holds the built-in house-style checks.
//
// Each constructor returns a self-contained lint.Check. Default assembles
// them into a registry in their canonical order; callers wanting a subset
// build their own registry from the constructors.
package checks

import (
	"strings"
	"unicode/utf8"

	"schema-tools/internal/jsontree"
	"schema-tools/internal/lint"
	"schema-tools/internal/traverse"
)

// Well-known keywords.
const (
	keyDescription = "description"
	keyTitle       = "title"
	keyMetaEnum    = "meta:enum"
	keyRef         = "$ref"
	keyID          = "$id"
)

// Default returns a registry holding every built-in check.
func Default() *lint.Registry {
	return lint.MustRegistry(
		SchemaIDPattern(),
		SchemaComment(),
		SchemaDraft(),
		ModelPropertyOrder(),
		ModelStructure(),
		FormattingIndent(),
		DescriptionFullStop(),
		MetaEnumFullStop(),
		NoUppercaseRFC(),
		NoMustWord(),
		AdditionalPropertiesFalse(),
		TitleFormatting(),
		EnumValueFormatting(),
		RefUsage(),
		DuplicateContent(),
		DuplicateDefinitions(),
	)
}

// defaultValidEndings end a sentence.
var defaultValidEndings = []string{".", "?", "!", ")"}

// stringMembers calls fn for every string member named key.
func stringMembers(doc *lint.Document, key string, fn func(text, path string)) {
	doc.Walk(func(n traverse.Node) {
		k, ok := n.Key()
		if !ok || k != key {
			return
		}

		if s, ok := jsontree.StringValue(n.Value); ok {
			fn(s, n.Path)
		}
	})
}

// metaEnumEntry is one value/description pair of a meta:enum object.
type metaEnumEntry struct {
	value string
	desc  jsontree.Value
	path  string
}

// metaEnums calls fn for every meta:enum member with its entries; entries is
// nil when the member is not an object.
func metaEnums(doc *lint.Document, fn func(n traverse.Node, entries []metaEnumEntry)) {
	doc.Walk(func(n traverse.Node) {
		k, ok := n.Key()
		if !ok || k != keyMetaEnum {
			return
		}

		obj, ok := n.Value.(*jsontree.Object)
		if !ok {
			fn(n, nil)
			return
		}

		entries := make([]metaEnumEntry, 0, obj.Len())
		for v, d := range obj.All() {
			entries = append(entries, metaEnumEntry{value: v, desc: d, path: traverse.Join(n.Path, traverse.Key(v))})
		}

		fn(n, entries)
	})
}

// excluded reports whether path contains any of the fragments.
func excluded(path string, fragments []string) bool {
	for _, f := range fragments {
		if f != "" && strings.Contains(path, f) {
			return true
		}
	}

	return false
}

// lastRune returns the final character of s as a string.
func lastRune(s string) string {
	r, _ := utf8.DecodeLastRuneInString(s)
	if r == utf8.RuneError {
		return ""
	}

	return string(r)
}

// tail returns at most n trailing runes of s.
func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[len(runes)-n:])
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n-3]) + "..."
}

// excerpt returns text around [start, end) padded by pad bytes, with "..."
// where text was cut. Offsets are moved to rune boundaries.
func excerpt(text string, start, end, pad int) string {
	from := max(0, start-pad)
	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}

	to := min(len(text), end+pad)
	for to < len(text) && !utf8.RuneStart(text[to]) {
		to++
	}

	var b strings.Builder
	if from > 0 {
		b.WriteString("...")
	}

	b.WriteString(text[from:to])

	if to < len(text) {
		b.WriteString("...")
	}

	return b.String()
}

// schemaMaps are keywords whose object value maps names to schemas rather
// than being a schema itself.
var schemaMaps = map[string]struct{}{
	"properties":        {},
	"patternProperties": {},
	"$defs":             {},
	"definitions":       {},
	"dependentSchemas":  {},
	keyMetaEnum:         {},
}

// isSchemaMap reports whether n is the value of a name-to-schema keyword.
func isSchemaMap(n traverse.Node) bool {
	k, ok := n.Key()
	if !ok {
		return false
	}

	_, ok = schemaMaps[k]

	return ok
}
