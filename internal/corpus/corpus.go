package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"schema-tools/internal/common"
	"schema-tools/internal/jsontree"
)

// DefaultVersion is the dialect assumed when no document declares one.
const DefaultVersion = "https://json-schema.org/draft/2020-12/schema"

// DefaultMemberPattern selects member files in the models directory.
const DefaultMemberPattern = "*" + common.SchemaSuffix

// Container keywords for embedded definitions.
const (
	KeywordDefs        = "$defs"
	KeywordDefinitions = "definitions"
)

const (
	bundledMarker  = "-bundled"
	defaultWorkers = 8
)

// Options configures Load. The zero value is usable.
type Options struct {
	// SchemaVersion overrides every declared $schema when non-empty.
	SchemaVersion string
	// MemberPattern is a doublestar pattern relative to the models directory.
	// Defaults to DefaultMemberPattern.
	MemberPattern string
	// Workers bounds concurrent file reads. Defaults to 8.
	Workers int
}

// Document is one parsed schema file.
type Document struct {
	// Name is the file name without ".schema.json".
	Name string
	// FileName is the base name of the file.
	FileName string
	// Path is the file path as given or discovered.
	Path string
	// ID is the declared $id, if any.
	ID string
	// Schema is the declared $schema, if any.
	Schema string
	// Root of the parsed document.
	Root jsontree.Value
}

// Corpus is the set of documents taking part in one bundle.
type Corpus struct {
	// Documents holds the members sorted by file name, then the root.
	Documents []*Document
	// Version is the effective dialect URI.
	Version string
	// DefsKeyword is the container keyword selected for Version.
	DefsKeyword string

	byName map[string]*Document
}

// Root returns the root document.
func (c *Corpus) Root() *Document {
	return c.Documents[len(c.Documents)-1]
}

// Members returns every document except the root.
func (c *Corpus) Members() []*Document {
	return c.Documents[:len(c.Documents)-1]
}

// Get returns the document with the given name.
func (c *Corpus) Get(name string) (*Document, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// FileNames returns the base names of every document, in corpus order.
func (c *Corpus) FileNames() []string {
	names := make([]string, 0, len(c.Documents))
	for _, d := range c.Documents {
		names = append(names, d.FileName)
	}

	return names
}

// HasFile reports whether a document with the given base name is loaded.
// The comparison is exact.
func (c *Corpus) HasFile(fileName string) bool {
	return slices.Contains(c.FileNames(), fileName)
}

// DefsKeywordFor returns "$defs" for dialects from 2019-09 on, and
// "definitions" for earlier drafts.
func DefsKeywordFor(version string) string {
	for _, marker := range []string{"2019-09", "2020-12", "/next"} {
		if strings.Contains(version, marker) {
			return KeywordDefs
		}
	}

	return KeywordDefinitions
}

// Load reads the member files of dir and the root file at rootPath.
func Load(ctx context.Context, dir, rootPath string, opts Options) (*Corpus, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &ReadError{Path: dir, Err: err}
	}

	if !info.IsDir() {
		return nil, &ReadError{Path: dir, Err: errors.New("not a directory")}
	}

	if _, err := os.Stat(rootPath); err != nil {
		return nil, &ReadError{Path: rootPath, Err: err}
	}

	paths, err := discover(dir, rootPath, opts.MemberPattern)
	if err != nil {
		return nil, err
	}

	paths = append(paths, rootPath)

	docs, err := readAll(ctx, paths, opts.Workers)
	if err != nil {
		return nil, err
	}

	c := &Corpus{Documents: docs, byName: make(map[string]*Document, len(docs))}
	if err := c.index(); err != nil {
		return nil, err
	}

	c.Version = effectiveVersion(c, opts.SchemaVersion)
	c.DefsKeyword = DefsKeywordFor(c.Version)

	return c, nil
}

func discover(dir, rootPath, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultMemberPattern
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid member pattern %q: %w", pattern, err)
	}

	rootAbs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, &ReadError{Path: rootPath, Err: err}
	}

	slices.SortFunc(matches, func(a, b string) int {
		return strings.Compare(common.BaseName(a), common.BaseName(b))
	})

	paths := make([]string, 0, len(matches))

	for _, m := range matches {
		if strings.Contains(common.BaseName(m), bundledMarker) {
			continue
		}

		p := filepath.Join(dir, filepath.FromSlash(m))

		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, &ReadError{Path: p, Err: err}
		}

		if abs == rootAbs {
			continue
		}

		paths = append(paths, p)
	}

	return paths, nil
}

func readAll(ctx context.Context, paths []string, workers int) ([]*Document, error) {
	if workers <= 0 {
		workers = defaultWorkers
	}

	docs := make([]*Document, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			d, err := readDocument(p)
			if err != nil {
				return err
			}

			docs[i] = d

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return docs, nil
}

func readDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	root, err := jsontree.Decode(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	d := &Document{
		Name:     common.SchemaName(path),
		FileName: common.BaseName(path),
		Path:     path,
		Root:     root,
	}
	d.ID, _ = jsontree.Member(root, "$id")
	d.Schema, _ = jsontree.Member(root, "$schema")

	return d, nil
}

func (c *Corpus) index() error {
	paths := map[string][]string{}

	var order []string

	for _, d := range c.Documents {
		if _, seen := paths[d.Name]; !seen {
			order = append(order, d.Name)
		}

		paths[d.Name] = append(paths[d.Name], d.Path)
		c.byName[d.Name] = d
	}

	for _, name := range order {
		if len(paths[name]) > 1 {
			return &DuplicateNameError{Name: name, Paths: paths[name]}
		}
	}

	return nil
}

func effectiveVersion(c *Corpus, override string) string {
	if override != "" {
		return override
	}

	if s := c.Root().Schema; s != "" {
		return s
	}

	for _, d := range c.Members() {
		if d.Schema != "" {
			return d.Schema
		}
	}

	return DefaultVersion
}
