package checks

import (
	"fmt"
	"slices"
	"strings"

	"schema-tools/internal/diagnostic"
	"schema-tools/internal/jsontree"
	"schema-tools/internal/lint"
	"schema-tools/internal/traverse"
)

// modelIDMarker identifies model schemas by their $id.
const modelIDMarker = "/model/"

// DefaultModelOrder is the root member order demanded of model schemas.
var DefaultModelOrder = []string{"$schema", keyID, "type", keyTitle, "$comment", "$defs"}

// modelRoot returns the root object when the document is a model schema.
func modelRoot(doc *lint.Document) (*jsontree.Object, bool) {
	obj, ok := doc.Object()
	if !ok {
		return nil, false
	}

	id, _ := jsontree.Member(obj, keyID)
	if !strings.Contains(id, modelIDMarker) {
		return nil, false
	}

	return obj, true
}

func rootPath(key string) string {
	return traverse.Join(traverse.RootPath, traverse.Key(key))
}

// ModelStructure requires model schemas to be pure definition containers:
// "type": "null", a $defs member and no root properties.
func ModelStructure() lint.Check {
	c := lint.Check{
		ID:          "model-structure",
		Name:        "Model Structure",
		Description: `Validates that model schemas have type "null", $defs, and no properties.`,
		Severity:    diagnostic.SeverityError,
	}

	c.Run = func(doc *lint.Document, _ lint.CheckConfig) []diagnostic.Diagnostic {
		obj, ok := modelRoot(doc)
		if !ok {
			return nil
		}

		var issues []diagnostic.Diagnostic

		if typ, ok := obj.Get("type"); !ok {
			issues = append(issues, c.Issue(`Model schema is missing required "type" property.`, rootPath("type")).
				With("expected", "null"))
		} else if s, _ := jsontree.StringValue(typ); s != "null" {
			actual, _ := jsontree.Marshal(typ)
			issues = append(issues, c.Issue(fmt.Sprintf(`Model schema "type" must be "null", found %s.`, actual), rootPath("type")).
				With("actual", string(actual)).With("expected", "null"))
		}

		if !obj.Has("$defs") {
			issues = append(issues, c.Issue(`Model schema is missing required "$defs" property.`, rootPath("$defs")).
				Suggest("Add a $defs object containing the model definitions."))
		}

		if obj.Has("properties") {
			issues = append(issues, c.Issue(`Model schema must not have "properties" at root level. Use $defs instead.`,
				rootPath("properties")).
				Suggest("Move property definitions into $defs."))
		}

		return issues
	}

	return c
}

// ModelPropertyOrder requires the root members of a model schema to appear
// in a fixed order. Only the first misplaced member is reported.
//
// Options: requiredOrder ([]string).
func ModelPropertyOrder() lint.Check {
	c := lint.Check{
		ID:          "model-property-order",
		Name:        "Model Property Order",
		Description: "Validates that model schemas have top-level properties in the required order.",
		Severity:    diagnostic.SeverityError,
	}

	c.Run = func(doc *lint.Document, cfg lint.CheckConfig) []diagnostic.Diagnostic {
		obj, ok := modelRoot(doc)
		if !ok {
			return nil
		}

		order := cfg.Strings("requiredOrder", DefaultModelOrder)
		actual := obj.Keys()

		var issues []diagnostic.Diagnostic

		for _, k := range order {
			if !obj.Has(k) {
				issues = append(issues, c.Issue(fmt.Sprintf("Model schema is missing required property %q.", k), rootPath(k)).
					With("expected", order))
			}
		}

		present := slices.DeleteFunc(slices.Clone(actual), func(k string) bool { return !slices.Contains(order, k) })
		want := slices.DeleteFunc(slices.Clone(order), func(k string) bool { return !obj.Has(k) })

		for i := range min(len(want), len(present)) {
			if present[i] != want[i] {
				issues = append(issues, c.Issue(
					fmt.Sprintf("Property %q is in wrong position. Expected order: %s.", present[i], strings.Join(order, ", ")),
					rootPath(present[i])).
					With("actual", present).With("expected", want))

				break
			}
		}

		extra := slices.DeleteFunc(slices.Clone(actual), func(k string) bool { return slices.Contains(order, k) })
		if len(extra) > 0 {
			issues = append(issues, c.IssueAt(diagnostic.SeverityWarning,
				fmt.Sprintf("Model schema has unexpected root-level properties: %s. Only %s are allowed.",
					strings.Join(extra, ", "), strings.Join(order, ", ")),
				traverse.RootPath).
				With("unexpected", extra).With("allowed", order))
		}

		return issues
	}

	return c
}
