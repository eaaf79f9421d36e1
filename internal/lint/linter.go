package lint

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"schema-tools/internal/diagnostic"
	"schema-tools/internal/jsontree"
)

const defaultWorkers = 8

// Linter runs the selected checks of a registry.
type Linter struct {
	registry *Registry
	config   Config
}

// New creates a linter. A nil registry lints with no checks.
func New(reg *Registry, cfg Config) *Linter {
	if reg == nil {
		reg = MustRegistry()
	}

	applyDefaults(&cfg)

	return &Linter{registry: reg, config: cfg}
}

// Checks returns the checks selected by the include and exclude lists, in
// registry order.
func (l *Linter) Checks() []Check {
	var out []Check

	for _, c := range l.registry.All() {
		if l.config.Selects(c.ID) {
			out = append(out, c)
		}
	}

	return out
}

// LintFile lints one file.
func (l *Linter) LintFile(path string) *Result {
	start := time.Now()

	raw, err := os.ReadFile(path)
	if err != nil {
		res := &Result{FilePath: path}
		res.Issues.AddError(CodeFileRead, "Failed to read file: "+err.Error(), path, path)
		res.Duration = time.Since(start)

		return res
	}

	res := l.LintBytes(raw, path)
	res.Duration = time.Since(start)

	return res
}

// LintBytes lints in-memory content reported under virtualPath.
func (l *Linter) LintBytes(raw []byte, virtualPath string) *Result {
	start := time.Now()
	res := &Result{FilePath: virtualPath}

	defer func() { res.Duration = time.Since(start) }()

	root, err := jsontree.Decode(raw)
	if err != nil {
		res.Issues.AddError(CodeJSONParse, "Invalid JSON: "+err.Error(), virtualPath, virtualPath)
		return res
	}

	l.lint(&Document{Path: virtualPath, Raw: raw, Root: root}, res)

	return res
}

// lint runs the selected checks over doc and adds their issues, then the
// traversal warnings, to res.
func (l *Linter) lint(doc *Document, res *Result) {
	doc.maxDepth = l.config.MaxDepth

	for _, c := range l.Checks() {
		cfg := l.config.For(c.ID)
		if !cfg.Enabled() {
			continue
		}

		issues, err := runCheck(c, doc, cfg)
		if err != nil {
			res.Issues.AddError(CodeCheckError, fmt.Sprintf("Check '%s' failed: %v", c.ID, err), doc.Path, doc.Path)
			continue
		}

		for _, is := range issues {
			if is.Source == "" {
				is.Source = doc.Path
			}

			res.Issues.Add(is)
		}

		res.ChecksRun = append(res.ChecksRun, c.ID)
	}

	res.Issues.Merge(doc.traversal)
}

// LintFiles lints files concurrently. Results are in the order of paths.
func (l *Linter) LintFiles(paths []string) []*Result {
	results := make([]*Result, len(paths))

	var g errgroup.Group

	g.SetLimit(defaultWorkers)

	for i, p := range paths {
		g.Go(func() error {
			results[i] = l.LintFile(p)
			return nil
		})
	}

	_ = g.Wait()

	return results
}

func runCheck(c Check, doc *Document, cfg CheckConfig) (issues []diagnostic.Diagnostic, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return c.Run(doc, cfg), nil
}
