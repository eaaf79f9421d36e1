// Package pointer resolves JSON Pointers (RFC 6901) against jsontree documents.
//
// Pointers may be written as URI fragments ("#/a/b") or bare ("/a/b").
package pointer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"schema-tools/internal/jsontree"
)

var (
	// ErrEmpty is returned for an empty pointer string.
	ErrEmpty = errors.New("empty JSON pointer")
	// ErrSyntax is returned when a non-empty pointer does not start with '/'.
	ErrSyntax = errors.New("JSON pointer must start with '/'")
	// ErrNotFound is returned when a segment names a missing member or item.
	ErrNotFound = errors.New("pointer target not found")
	// ErrNotContainer is returned when a segment indexes into a scalar.
	ErrNotContainer = errors.New("pointer traverses a non-container value")
)

// Escape encodes one reference token ('~' as "~0", '/' as "~1").
func Escape(token string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(token)
}

// Unescape decodes one reference token. "~1" is decoded before "~0".
func Unescape(token string) string {
	return strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
}

// Parse splits a pointer into its decoded reference tokens. A leading '#' is
// dropped; "#" and "" after that step address the whole document.
func Parse(ptr string) ([]string, error) {
	if ptr == "" {
		return nil, ErrEmpty
	}

	p := strings.TrimPrefix(ptr, "#")
	if p == "" {
		return nil, nil
	}

	if !strings.HasPrefix(p, "/") {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, ptr)
	}

	parts := strings.Split(p[1:], "/")
	for i, part := range parts {
		parts[i] = Unescape(part)
	}

	return parts, nil
}

// Format builds a fragment pointer ("#/a/b") from raw tokens.
func Format(tokens ...string) string {
	var b strings.Builder

	b.WriteByte('#')

	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(Escape(t))
	}

	return b.String()
}

// Resolve walks ptr from root and returns the addressed value.
func Resolve(root jsontree.Value, ptr string) (jsontree.Value, error) {
	tokens, err := Parse(ptr)
	if err != nil {
		return nil, err
	}

	current := root
	for _, tok := range tokens {
		switch c := current.(type) {
		case *jsontree.Object:
			next, ok := c.Get(tok)
			if !ok {
				return nil, fmt.Errorf("%w: missing key %q in %s", ErrNotFound, tok, ptr)
			}

			current = next
		case *jsontree.Array:
			idx, err := arrayIndex(tok)
			if err != nil || idx >= len(c.Items) {
				return nil, fmt.Errorf("%w: missing index %q in %s", ErrNotFound, tok, ptr)
			}

			current = c.Items[idx]
		default:
			return nil, fmt.Errorf("%w: before %q in %s", ErrNotContainer, tok, ptr)
		}
	}

	return current, nil
}

// arrayIndex accepts "0" or a decimal without leading zeros.
func arrayIndex(tok string) (int, error) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, fmt.Errorf("invalid array index %q", tok)
	}

	for _, r := range tok {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid array index %q", tok)
		}
	}

	return strconv.Atoi(tok)
}
