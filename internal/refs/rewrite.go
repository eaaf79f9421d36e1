package refs

import (
	"schema-tools/internal/jsontree"
	"schema-tools/internal/pointer"
	"schema-tools/internal/traverse"
)

// Rewriter relocates references for documents that are nested under
// "#/<DefsKeyword>/<document name>" in a bundle.
type Rewriter struct {
	// DefsKeyword is the container keyword ("$defs" or "definitions").
	DefsKeyword string
	// Exceptions are files whose references are kept as written.
	Exceptions ExceptionSet
}

// Stats counts $ref values by how they were handled.
type Stats struct {
	External int
	Excepted int
	Internal int
	Opaque   int
}

// Total returns the number of $ref values seen.
func (s Stats) Total() int {
	return s.External + s.Excepted + s.Internal + s.Opaque
}

// Add accumulates another Stats.
func (s *Stats) Add(o Stats) {
	s.External += o.External
	s.Excepted += o.Excepted
	s.Internal += o.Internal
	s.Opaque += o.Opaque
}

// Location returns the bundle pointer of a document's container entry.
func (rw Rewriter) Location(docName string) string {
	return pointer.Format(rw.DefsKeyword, docName)
}

// RewriteValue returns the bundled form of one $ref value found in document
// docName.
func (rw Rewriter) RewriteValue(docName, value string) string {
	var st Stats

	return rw.rewriteValue(docName, value, &st)
}

func (rw Rewriter) rewriteValue(docName, value string, st *Stats) string {
	ref := Classify(value)

	switch ref.Kind {
	case KindExternal:
		if rw.Exceptions.Contains(ref.File) {
			st.Excepted++
			return value
		}

		st.External++

		out := rw.Location(ref.TargetName())
		if frag := ref.FragmentPath(); frag != "" {
			out += "/" + frag
		}

		return out
	case KindInternal:
		st.Internal++
		return rw.Location(docName) + value[1:]
	default:
		st.Opaque++
		return value
	}
}

// Rewrite returns a copy of root with every $ref string rewritten for the
// document's location in the bundle. root is not modified and shares no
// containers with the result. Member order and array order are kept.
//
// root must be a tree, as produced by jsontree.Decode.
func (rw Rewriter) Rewrite(docName string, root jsontree.Value) (jsontree.Value, Stats) {
	var st Stats

	return rw.rewrite(docName, root, &st), st
}

func (rw Rewriter) rewrite(docName string, v jsontree.Value, st *Stats) jsontree.Value {
	switch x := v.(type) {
	case *jsontree.Object:
		out := jsontree.NewObject()

		for k, mv := range x.All() {
			if s, ok := mv.(jsontree.String); ok && k == KeywordRef {
				out.Set(k, jsontree.String(rw.rewriteValue(docName, string(s), st)))

				continue
			}

			out.Set(k, rw.rewrite(docName, mv, st))
		}

		return out
	case *jsontree.Array:
		items := make([]jsontree.Value, len(x.Items))
		for i, it := range x.Items {
			items[i] = rw.rewrite(docName, it, st)
		}

		return jsontree.NewArray(items...)
	default:
		return jsontree.Clone(v)
	}
}

// Occurrence is a reference keyword found in a document.
type Occurrence struct {
	Ref
	// Keyword holding the value ("$ref", "$dynamicRef", ...).
	Keyword string
	// Path of the keyword member.
	Path string
}

// Collect returns every string-valued member named by one of keywords, in
// traversal order. keep filters occurrences; nil keeps all.
func Collect(root jsontree.Value, keywords []string, keep func(Occurrence) bool) []Occurrence {
	wanted := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		wanted[k] = struct{}{}
	}

	var out []Occurrence

	traverse.Walk(root, func(n traverse.Node) {
		key, ok := n.Key()
		if !ok {
			return
		}

		if _, ok := wanted[key]; !ok {
			return
		}

		s, ok := jsontree.StringValue(n.Value)
		if !ok {
			return
		}

		occ := Occurrence{Ref: Classify(s), Keyword: key, Path: n.Path}
		if keep == nil || keep(occ) {
			out = append(out, occ)
		}
	}, traverse.Options{})

	return out
}
