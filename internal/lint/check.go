package lint

import (
	"errors"
	"fmt"
	"slices"

	"schema-tools/internal/diagnostic"
	"schema-tools/internal/jsontree"
	"schema-tools/internal/traverse"
)

// Issue codes produced by the linter itself.
const (
	CodeFileRead   = "file-read"
	CodeJSONParse  = "json-parse"
	CodeCheckError = "check-error"
	CodeDepthLimit = "traversal-depth-limit"
	CodeCycle      = "traversal-cycle"
)

// Document is a parsed file handed to every check.
type Document struct {
	// Path of the file, or a virtual name for in-memory input.
	Path string
	// Raw file content, for formatting checks.
	Raw []byte
	// Root of the parsed document.
	Root jsontree.Value

	maxDepth  int
	traversal diagnostic.Diagnostics
	noted     map[string]struct{}
}

// Walk visits every node of the document. Containers cut off by the
// configured depth limit and containers re-entering one of their ancestors
// are recorded and later reported by the linter.
func (d *Document) Walk(visit func(traverse.Node)) {
	traverse.Walk(d.Root, visit, traverse.Options{
		MaxDepth: d.maxDepth,
		OnDepthLimit: func(path string, _ int) {
			d.note(CodeDepthLimit,
				fmt.Sprintf("Traversal stopped at depth %d; nodes below were not checked.", d.maxDepth), path)
		},
		OnCycle: func(path string, _ traverse.Step, _ jsontree.Value) {
			d.note(CodeCycle, "Container contains one of its ancestors; it was not traversed again.", path)
		},
	})
}

// note records a traversal warning once per code and path, however many
// checks walk the document.
func (d *Document) note(code, message, path string) {
	key := code + "\x00" + path
	if _, ok := d.noted[key]; ok {
		return
	}

	if d.noted == nil {
		d.noted = map[string]struct{}{}
	}

	d.noted[key] = struct{}{}
	d.traversal.AddWarning(code, message, d.Path, path)
}

// Object returns the root when it is an object.
func (d *Document) Object() (*jsontree.Object, bool) {
	obj, ok := d.Root.(*jsontree.Object)
	return obj, ok
}

// Check is one house-style rule.
type Check struct {
	// ID is unique within a registry; it is also the issue code.
	ID string
	// Name is a short human-readable title.
	Name string
	// Description says what the check enforces.
	Description string
	// Severity of issues that do not choose their own.
	Severity diagnostic.Severity
	// Run inspects the document and returns its issues.
	Run func(doc *Document, cfg CheckConfig) []diagnostic.Diagnostic
}

// Issue creates an issue with the check's ID and default severity.
func (c Check) Issue(message, path string) diagnostic.Diagnostic {
	return diagnostic.New(c.Severity, c.ID, message, path)
}

// IssueAt creates an issue with an explicit severity.
func (c Check) IssueAt(sev diagnostic.Severity, message, path string) diagnostic.Diagnostic {
	return diagnostic.New(sev, c.ID, message, path)
}

// Registry is an ordered set of checks keyed by ID.
type Registry struct {
	checks []Check
	index  map[string]int
}

// NewRegistry returns a registry holding checks in the given order.
func NewRegistry(checks ...Check) (*Registry, error) {
	r := &Registry{index: make(map[string]int, len(checks))}

	for _, c := range checks {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// MustRegistry is NewRegistry for statically known check lists.
func MustRegistry(checks ...Check) *Registry {
	r, err := NewRegistry(checks...)
	if err != nil {
		panic(err)
	}

	return r
}

// Register appends a check. IDs must be unique and Run must be set.
func (r *Registry) Register(c Check) error {
	if c.ID == "" {
		return errors.New("check has no ID")
	}

	if c.Run == nil {
		return fmt.Errorf("check %q has no Run function", c.ID)
	}

	if _, ok := r.index[c.ID]; ok {
		return fmt.Errorf("check %q is already registered", c.ID)
	}

	r.index[c.ID] = len(r.checks)
	r.checks = append(r.checks, c)

	return nil
}

// Get returns the check with the given ID.
func (r *Registry) Get(id string) (Check, bool) {
	i, ok := r.index[id]
	if !ok {
		return Check{}, false
	}

	return r.checks[i], true
}

// All returns the checks in registration order.
func (r *Registry) All() []Check {
	return slices.Clone(r.checks)
}

// IDs returns the check IDs in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.checks))
	for i, c := range r.checks {
		ids[i] = c.ID
	}

	return ids
}

// Len returns the number of registered checks.
func (r *Registry) Len() int {
	return len(r.checks)
}
