package checks

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"schema-tools/internal/diagnostic"
	"schema-tools/internal/jsontree"
	"schema-tools/internal/lint"
	"schema-tools/internal/pointer"
	"schema-tools/internal/traverse"
)

// definitionContainers hold named reusable schemas.
var definitionContainers = []string{"$defs", "definitions"}

// occurrences groups paths by a key, remembering first-seen order.
type occurrences struct {
	order []string
	paths map[string][]string
}

func (o *occurrences) add(key, path string) {
	if o.paths == nil {
		o.paths = map[string][]string{}
	}

	if _, ok := o.paths[key]; !ok {
		o.order = append(o.order, key)
	}

	o.paths[key] = append(o.paths[key], path)
}

// repeated calls fn for every key seen more than once.
func (o *occurrences) repeated(fn func(key string, paths []string)) {
	for _, k := range o.order {
		if ps := o.paths[k]; len(ps) > 1 {
			fn(k, ps)
		}
	}
}

// DuplicateContent reports titles, and descriptions of a minimum length,
// used at more than one location.
//
// Options: checkTitles (bool, default true), checkDescriptions (bool,
// default true), minDescriptionLength (int, default 20).
func DuplicateContent() lint.Check {
	c := lint.Check{
		ID:          "duplicate-content",
		Name:        "Duplicate Content",
		Description: "Validates that titles and descriptions are unique within a schema.",
		Severity:    diagnostic.SeverityError,
	}

	c.Run = func(doc *lint.Document, cfg lint.CheckConfig) []diagnostic.Diagnostic {
		minLen := cfg.Int("minDescriptionLength", 20)

		var titles, descriptions occurrences

		if cfg.Bool("checkTitles", true) {
			stringMembers(doc, keyTitle, func(text, path string) {
				if t := strings.TrimSpace(text); t != "" {
					titles.add(t, path)
				}
			})
		}

		if cfg.Bool("checkDescriptions", true) {
			stringMembers(doc, keyDescription, func(text, path string) {
				if d := strings.TrimSpace(text); d != "" && utf8.RuneCountInString(d) >= minLen {
					descriptions.add(d, path)
				}
			})
		}

		var issues []diagnostic.Diagnostic

		titles.repeated(func(title string, ps []string) {
			issues = append(issues, c.Issue(
				fmt.Sprintf("Duplicate title %q found at %d locations.", truncate(title, 50), len(ps)), ps[0]).
				With("title", title).With("locations", ps).With("count", len(ps)))
		})

		descriptions.repeated(func(desc string, ps []string) {
			issues = append(issues, c.IssueAt(diagnostic.SeverityWarning,
				fmt.Sprintf("Duplicate description found at %d locations: %q", len(ps), truncate(desc, 60)), ps[0]).
				With("description", desc).With("locations", ps).With("count", len(ps)))
		})

		return issues
	}

	return c
}

// DuplicateDefinitions reports definition names declared more than once in
// a file, including in nested $defs, and properties defined inline although
// a definition of the same name exists.
func DuplicateDefinitions() lint.Check {
	c := lint.Check{
		ID:          "duplicate-definitions",
		Name:        "Duplicate Definitions",
		Description: "Validates that definitions are reused via $ref and not duplicated.",
		Severity:    diagnostic.SeverityError,
	}

	type inlineProperty struct {
		name string
		path string
	}

	c.Run = func(doc *lint.Document, _ lint.CheckConfig) []diagnostic.Diagnostic {
		var (
			defs   occurrences
			inline []inlineProperty
		)

		doc.Walk(func(n traverse.Node) {
			obj, ok := n.Value.(*jsontree.Object)
			if !ok || isSchemaMap(n) {
				return
			}

			for _, container := range definitionContainers {
				members, ok := memberObject(obj, container)
				if !ok {
					continue
				}

				base := traverse.Join(n.Path, traverse.Key(container))
				for name := range members.All() {
					defs.add(name, traverse.Join(base, traverse.Key(name)))
				}
			}

			props, ok := memberObject(obj, "properties")
			if !ok || insideDefinitions(n.Path) {
				return
			}

			base := traverse.Join(n.Path, traverse.Key("properties"))
			for name, prop := range props.All() {
				if p, isObj := prop.(*jsontree.Object); isObj && p.Has(keyRef) {
					continue
				}

				inline = append(inline, inlineProperty{name: name, path: traverse.Join(base, traverse.Key(name))})
			}
		})

		var issues []diagnostic.Diagnostic

		defs.repeated(func(name string, ps []string) {
			issues = append(issues, c.Issue(
				fmt.Sprintf("Duplicate definition %q found at %d locations.", name, len(ps)), ps[0]).
				With("definitionName", name).With("locations", ps).With("count", len(ps)))
		})

		for _, p := range inline {
			ps, ok := defs.paths[p.name]
			if !ok {
				continue
			}

			ref := fragmentFor(ps[0])
			issues = append(issues, c.IssueAt(diagnostic.SeverityWarning,
				fmt.Sprintf("Property %q is defined inline but a definition exists. Consider using $ref: %q.", p.name, ref),
				p.path).
				With("propertyName", p.name).With("definitionPath", ps[0]).With("suggestedRef", ref).
				Suggest(fmt.Sprintf(`{"$ref": %q}`, ref)))
		}

		return issues
	}

	return c
}

// insideDefinitions reports whether path lies within a definition container.
func insideDefinitions(path string) bool {
	steps, err := traverse.ParsePath(path)
	if err != nil {
		return false
	}

	return slices.ContainsFunc(steps, func(s traverse.Step) bool {
		return !s.Elem && slices.Contains(definitionContainers, s.Name)
	})
}

// fragmentFor converts a traversal path into a local "#/..." reference.
func fragmentFor(path string) string {
	steps, err := traverse.ParsePath(path)
	if err != nil {
		return path
	}

	tokens := make([]string, len(steps))
	for i, s := range steps {
		if s.Elem {
			tokens[i] = strconv.Itoa(s.Index)
		} else {
			tokens[i] = s.Name
		}
	}

	return pointer.Format(tokens...)
}
