package refs

import (
	"regexp"
	"strings"

	"schema-tools/internal/common"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind classifies a reference value.
type Kind int

const (
	// KindOpaque - anything else (absolute URLs without a schema file, vendor schemes); never rewritten.
	KindOpaque Kind = iota // opaque
	// KindInternal - a pointer into the same document ("#...").
	KindInternal // internal
	// KindExternal - a schema file, optionally with a fragment ("x.schema.json#/...").
	KindExternal // external
)

// Reference keywords.
const (
	KeywordRef          = "$ref"
	KeywordDynamicRef   = "$dynamicRef"
	KeywordRecursiveRef = "$recursiveRef"
)

// PointerKeywords are every keyword whose value may be a JSON pointer. Only
// KeywordRef may also name another file.
var PointerKeywords = []string{KeywordRef, KeywordDynamicRef, KeywordRecursiveRef}

var externalPattern = regexp.MustCompile(`^(.+\.schema\.json)(#.*)?$`)

// Ref is a classified reference value.
type Ref struct {
	// Kind of reference.
	Kind Kind
	// Value is the original string.
	Value string
	// File is the file part of an external reference, as written.
	File string
	// Fragment is the "#..." part of an external reference, possibly empty.
	Fragment string
}

// Classify determines the kind of a reference value.
func Classify(value string) Ref {
	if m := externalPattern.FindStringSubmatch(value); m != nil {
		return Ref{Kind: KindExternal, Value: value, File: m[1], Fragment: m[2]}
	}

	if strings.HasPrefix(value, "#") {
		return Ref{Kind: KindInternal, Value: value}
	}

	return Ref{Kind: KindOpaque, Value: value}
}

// FileBase returns the base name of the referenced file ("a.schema.json").
func (r Ref) FileBase() string {
	return common.BaseName(r.File)
}

// TargetName returns the document name of the referenced file.
func (r Ref) TargetName() string {
	return NameFromFile(r.File)
}

// NameFromFile derives a document name from a schema file name:
// "dir/a.schema.json" becomes "a".
func NameFromFile(file string) string {
	return common.SchemaName(file)
}

// FragmentPath returns the fragment with its leading '#' and one leading '/'
// removed, so it can be re-attached under a new location.
func (r Ref) FragmentPath() string {
	p := strings.TrimPrefix(r.Fragment, "#")
	return strings.TrimPrefix(p, "/")
}

// ExceptionSet holds schema file names whose references are left untouched.
// Matching is case-insensitive.
type ExceptionSet map[string]struct{}

// DefaultExceptions are independently hosted schemas that are never bundled.
var DefaultExceptions = []string{
	"spdx.schema.json",
	"cryptography-defs.schema.json",
	"jsf-0.82.schema.json",
}

// NewExceptionSet builds a set from file names. A nil slice yields the
// DefaultExceptions; an empty, non-nil slice yields an empty set.
func NewExceptionSet(files []string) ExceptionSet {
	if files == nil {
		files = DefaultExceptions
	}

	set := make(ExceptionSet, len(files))
	for _, f := range files {
		set[strings.ToLower(common.BaseName(f))] = struct{}{}
	}

	return set
}

// Contains reports whether the base name of file is in the set.
func (s ExceptionSet) Contains(file string) bool {
	_, ok := s[strings.ToLower(common.BaseName(file))]
	return ok
}
