package bundle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"schema-tools/internal/common"
	"schema-tools/internal/jsontree"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

const keywordComment = "$comment"

// Artifact is one serialized output of a bundle run.
type Artifact struct {
	// Name identifies the artifact in logs and errors ("bundled", "minified").
	Name string
	// Path is the destination file.
	Path string
	// Content is written as is.
	Content []byte
}

// WriteError reports an artifact that could not be written.
type WriteError struct {
	Artifact string
	Path     string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s schema %s: %v", e.Artifact, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Pretty encodes v with two-space indentation and keys in document order.
func Pretty(v jsontree.Value) ([]byte, error) {
	return jsontree.MarshalIndent(v, "  ")
}

// Minified encodes v on a single line after StripComments.
func Minified(v jsontree.Value) ([]byte, error) {
	return jsontree.Marshal(StripComments(v))
}

// StripComments returns a copy of v without any "$comment" member, except
// one held directly by the root object.
func StripComments(v jsontree.Value) jsontree.Value {
	return stripComments(v, true)
}

func stripComments(v jsontree.Value, isRoot bool) jsontree.Value {
	switch x := v.(type) {
	case *jsontree.Object:
		out := jsontree.NewObject()

		for k, mv := range x.All() {
			if k == keywordComment && !isRoot {
				continue
			}

			out.Set(k, stripComments(mv, false))
		}

		return out
	case *jsontree.Array:
		items := make([]jsontree.Value, len(x.Items))
		for i, it := range x.Items {
			items[i] = stripComments(it, false)
		}

		return jsontree.NewArray(items...)
	default:
		return jsontree.Clone(v)
	}
}

// OutputPaths returns the pretty and minified destinations for a root
// schema: "<base>-bundled.schema.json" and "<base>-bundled.min.schema.json"
// in the root's directory.
func OutputPaths(rootPath string) (bundled, minified string) {
	dir := filepath.Dir(rootPath)
	base := strings.TrimSuffix(filepath.Base(rootPath), common.SchemaSuffix)

	return filepath.Join(dir, base+"-bundled"+common.SchemaSuffix),
		filepath.Join(dir, base+"-bundled.min"+common.SchemaSuffix)
}

// Write writes every artifact, creating parent directories as needed. A
// failure does not stop the remaining artifacts; all failures are returned
// joined as *WriteError values. Nothing already written is removed.
func Write(artifacts ...Artifact) error {
	var errs []error

	for _, a := range artifacts {
		if err := writeArtifact(a); err != nil {
			errs = append(errs, &WriteError{Artifact: a.Name, Path: a.Path, Err: err})
		}
	}

	return errors.Join(errs...)
}

func writeArtifact(a Artifact) error {
	err := os.MkdirAll(filepath.Dir(a.Path), dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	return os.WriteFile(a.Path, a.Content, filePerm)
}
