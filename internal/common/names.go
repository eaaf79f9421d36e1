package common

import (
	"path"
	"path/filepath"
	"strings"
)

// UnknownStr is the String value for out-of-range enum values.
const UnknownStr = "unknown"

// SchemaSuffix is the file-name suffix of schema documents.
const SchemaSuffix = ".schema.json"

// BaseName returns the last element of a slash- or OS-separated file path.
// Returns empty string if p is empty.
func BaseName(p string) string {
	if p == "" {
		return ""
	}

	return path.Base(filepath.ToSlash(p))
}

// SchemaName derives a document name from a schema file path by dropping the
// directory and the SchemaSuffix.
func SchemaName(p string) string {
	return strings.TrimSuffix(BaseName(p), SchemaSuffix)
}
