package traverse

import (
	"slices"

	"schema-tools/internal/jsontree"
)

// DangerousKeys are member names that alias object-prototype behaviour in
// some runtimes. A path containing one of them is unsafe to hand to a
// path-based setter.
var DangerousKeys = []string{"__proto__", "constructor", "prototype"}

// IsDangerousKey reports whether key is one of DangerousKeys.
func IsDangerousKey(key string) bool {
	return slices.Contains(DangerousKeys, key)
}

// Node is one visited location.
type Node struct {
	// Value at this location.
	Value jsontree.Value
	// Parent container, nil at the root.
	Parent jsontree.Value
	// Step from Parent to Value; zero at the root.
	Step Step
	// Path from the traversal root.
	Path string
	// Depth is 0 at the root.
	Depth int
}

// IsRoot reports whether n is the traversal root.
func (n Node) IsRoot() bool {
	return n.Parent == nil
}

// Key returns the member name when n is an object member.
func (n Node) Key() (string, bool) {
	if n.Parent == nil || n.Step.Elem {
		return "", false
	}

	return n.Step.Name, true
}

// Options tunes Walk. The zero value walks without a depth limit and without
// notifications.
type Options struct {
	// MaxDepth stops descent below containers at this depth. 0 means no limit.
	MaxDepth int
	// OnCycle is called when a container already on the current path is
	// reached again.
	OnCycle func(path string, step Step, parent jsontree.Value)
	// OnDepthLimit is called for each container not descended into because of
	// MaxDepth.
	OnDepthLimit func(path string, depth int)
	// OnDangerousKey is called for member names in DangerousKeys. Traversal
	// continues into them.
	OnDangerousKey func(path, key string)
}

// Walk calls visit for every value reachable from root, once per distinct
// path. Containers are visited before their children, object members in
// order, array items by index.
//
// Only containers on the current recursion path are tracked, so a container
// shared by two parents is visited under each of them, while a container that
// contains itself is visited once and the re-entry reported to OnCycle.
func Walk(root jsontree.Value, visit func(Node), opts Options) {
	w := &walker{
		visit:      visit,
		opts:       opts,
		inProgress: map[jsontree.Value]struct{}{},
	}

	w.walk(Node{Value: orNull(root), Path: RootPath})
}

type walker struct {
	visit      func(Node)
	opts       Options
	inProgress map[jsontree.Value]struct{}
}

func (w *walker) walk(n Node) {
	if !n.Value.Kind().IsContainer() {
		w.visit(n)
		return
	}

	if _, ok := w.inProgress[n.Value]; ok {
		if w.opts.OnCycle != nil {
			w.opts.OnCycle(n.Path, n.Step, n.Parent)
		}

		return
	}

	w.inProgress[n.Value] = struct{}{}
	defer delete(w.inProgress, n.Value)

	w.visit(n)

	if w.opts.MaxDepth > 0 && n.Depth >= w.opts.MaxDepth {
		if w.opts.OnDepthLimit != nil {
			w.opts.OnDepthLimit(n.Path, n.Depth)
		}

		return
	}

	switch x := n.Value.(type) {
	case *jsontree.Array:
		for i, it := range x.Items {
			step := Elem(i)
			w.walk(Node{Value: orNull(it), Parent: x, Step: step, Path: Join(n.Path, step), Depth: n.Depth + 1})
		}
	case *jsontree.Object:
		for k, v := range x.All() {
			step := Key(k)
			path := Join(n.Path, step)

			if w.opts.OnDangerousKey != nil && IsDangerousKey(k) {
				w.opts.OnDangerousKey(path, k)
			}

			w.walk(Node{Value: orNull(v), Parent: x, Step: step, Path: path, Depth: n.Depth + 1})
		}
	}
}

func orNull(v jsontree.Value) jsontree.Value {
	if v == nil {
		return jsontree.Null{}
	}

	return v
}
