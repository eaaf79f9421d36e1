package bundle

import (
	"errors"
	"fmt"

	"schema-tools/internal/corpus"
	"schema-tools/internal/fuzzy"
	"schema-tools/internal/jsontree"
	"schema-tools/internal/pointer"
	"schema-tools/internal/refs"
)

// UnresolvedExternalRefError reports a $ref naming a schema file that is not
// part of the corpus.
type UnresolvedExternalRefError struct {
	// Document is the name of the referring document.
	Document string
	// Target is the file part of the reference, as written.
	Target string
	// Path of the $ref member inside Document.
	Path string
	// Suggestion is the closest loaded file name, if any is close enough.
	Suggestion string
}

func (e *UnresolvedExternalRefError) Error() string {
	msg := fmt.Sprintf("unresolved external $ref target file '%s' referenced from schema '%s' at '%s'",
		e.Target, e.Document, e.Path)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean '%s'?)", e.Suggestion)
	}

	return msg
}

// UnresolvedInternalRefError reports a pointer in the bundle that does not
// resolve against the bundle itself.
type UnresolvedInternalRefError struct {
	// Keyword holding the pointer ($ref, $dynamicRef or $recursiveRef).
	Keyword string
	// Pointer value.
	Pointer string
	// Path of the keyword member in the bundle.
	Path string
	// Reason the pointer failed to resolve.
	Reason error
}

func (e *UnresolvedInternalRefError) Error() string {
	return fmt.Sprintf("unresolved internal %s '%s' at '%s': %v", e.Keyword, e.Pointer, e.Path, e.Reason)
}

func (e *UnresolvedInternalRefError) Unwrap() error {
	return e.Reason
}

// PreCheck verifies that every external $ref in the corpus names a loaded
// file, unless its file is in exc. All violations are returned joined.
func PreCheck(c *corpus.Corpus, exc refs.ExceptionSet) error {
	var errs []error

	for _, d := range c.Documents {
		found := refs.Collect(d.Root, []string{refs.KeywordRef}, func(o refs.Occurrence) bool {
			return o.Kind == refs.KindExternal && !exc.Contains(o.File)
		})

		for _, o := range found {
			if c.HasFile(o.FileBase()) {
				continue
			}

			errs = append(errs, &UnresolvedExternalRefError{
				Document:   d.Name,
				Target:     o.File,
				Path:       o.Path,
				Suggestion: closestFile(c, o.File),
			})
		}
	}

	return errors.Join(errs...)
}

// closestFile returns the file name of the document whose name is closest
// to the one file would have, or "".
func closestFile(c *corpus.Corpus, file string) string {
	names := make([]string, len(c.Documents))
	for i, d := range c.Documents {
		names[i] = d.Name
	}

	name, ok := fuzzy.Closest(refs.NameFromFile(file), names)
	if !ok {
		return ""
	}

	d, _ := c.Get(name)

	return d.FileName
}

// PostCheck verifies that every "#..." value of a pointer keyword in merged
// resolves against merged. All violations are returned joined.
func PostCheck(merged jsontree.Value) error {
	var errs []error

	internal := refs.Collect(merged, refs.PointerKeywords, func(o refs.Occurrence) bool {
		return o.Kind == refs.KindInternal
	})

	for _, o := range internal {
		if _, err := pointer.Resolve(merged, o.Value); err != nil {
			errs = append(errs, &UnresolvedInternalRefError{Keyword: o.Keyword, Pointer: o.Value, Path: o.Path, Reason: err})
		}
	}

	return errors.Join(errs...)
}
