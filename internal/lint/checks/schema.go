package checks

import (
	"fmt"
	"net/url"
	"regexp"

	"schema-tools/internal/diagnostic"
	"schema-tools/internal/jsontree"
	"schema-tools/internal/lint"
	"schema-tools/internal/traverse"
)

// RequiredSchema is the default dialect demanded by SchemaDraft.
const RequiredSchema = "https://json-schema.org/draft/2020-12/schema"

// RequiredComment is the default notice demanded by SchemaComment.
const RequiredComment = "OWASP CycloneDX is an Ecma International standard (ECMA-424) developed in collaboration " +
	"between the OWASP Foundation and Ecma Technical Committee 54 (TC54). The standard is published under a " +
	"royalty-free patent policy. This JSON schema is the reference implementation and is licensed under the " +
	"Apache License 2.0."

// DefaultIDPattern matches published schema identifiers such as
// https://cyclonedx.org/schema/2.0/model/cyclonedx-common-2.0.schema.json.
const DefaultIDPattern = `^https://cyclonedx\.org/schema/(\d+\.\d+/)?([a-z][a-z0-9-]*/)?[a-z][a-z0-9.-]*\.schema\.json$`

// SchemaDraft requires the root $schema to equal the configured dialect.
//
// Options: requiredSchema (string).
func SchemaDraft() lint.Check {
	c := lint.Check{
		ID:          "schema-draft",
		Name:        "Schema Draft",
		Description: "Validates that $schema is present with the correct JSON Schema draft.",
		Severity:    diagnostic.SeverityError,
	}

	c.Run = func(doc *lint.Document, cfg lint.CheckConfig) []diagnostic.Diagnostic {
		required := cfg.String("requiredSchema", RequiredSchema)

		return rootString(c, doc, "$schema", required,
			"Schema is missing required $schema property.",
			fmt.Sprintf("$schema must be %q.", required))
	}

	return c
}

// SchemaComment requires the root $comment to carry the standard notice.
//
// Options: requiredComment (string).
func SchemaComment() lint.Check {
	c := lint.Check{
		ID:          "schema-comment",
		Name:        "Schema Comment",
		Description: "Validates that the $comment property contains the required standard notice.",
		Severity:    diagnostic.SeverityError,
	}

	c.Run = func(doc *lint.Document, cfg lint.CheckConfig) []diagnostic.Diagnostic {
		return rootString(c, doc, "$comment", cfg.String("requiredComment", RequiredComment),
			"Schema is missing required $comment property.",
			"$comment does not match the required standard notice.")
	}

	return c
}

func rootString(c lint.Check, doc *lint.Document, key, want, missingMsg, mismatchMsg string) []diagnostic.Diagnostic {
	path := traverse.Join(traverse.RootPath, traverse.Key(key))

	obj, ok := doc.Object()
	if !ok || !obj.Has(key) {
		return []diagnostic.Diagnostic{c.Issue(missingMsg, path).With("expected", want)}
	}

	v, _ := obj.Get(key)
	if s, ok := jsontree.StringValue(v); ok && s == want {
		return nil
	}

	actual, _ := jsontree.Marshal(v)

	return []diagnostic.Diagnostic{c.Issue(mismatchMsg, path).With("actual", string(actual)).With("expected", want)}
}

// SchemaIDPattern requires the root $id to be an absolute URI matching the
// configured pattern, and $id values of definitions to match it too.
//
// Options: pattern (string), checkDefinitions (bool, default true).
func SchemaIDPattern() lint.Check {
	c := lint.Check{
		ID:          "schema-id-pattern",
		Name:        "Schema ID Pattern",
		Description: "Validates that the $id property follows the expected pattern.",
		Severity:    diagnostic.SeverityError,
	}

	c.Run = func(doc *lint.Document, cfg lint.CheckConfig) []diagnostic.Diagnostic {
		src := cfg.String("pattern", DefaultIDPattern)

		pattern, err := regexp.Compile(src)
		if err != nil {
			return []diagnostic.Diagnostic{c.Issue(fmt.Sprintf("Invalid pattern %q: %v", src, err), traverse.RootPath)}
		}

		var issues []diagnostic.Diagnostic

		idPath := traverse.Join(traverse.RootPath, traverse.Key(keyID))

		id, _ := jsontree.Member(doc.Root, keyID)
		switch {
		case id == "":
			issues = append(issues, c.Issue("Schema is missing required $id property.", idPath).
				With("expected", "A valid schema ID matching the pattern"))
		case !pattern.MatchString(id):
			issues = append(issues, c.Issue(fmt.Sprintf("Schema $id does not match expected pattern. Got: %q", id), idPath).
				With("actual", id).With("expectedPattern", src))
		}

		if id != "" {
			if u, err := url.Parse(id); err != nil || !u.IsAbs() {
				issues = append(issues, c.Issue(fmt.Sprintf("Schema $id is not a valid URI: %q", id), idPath).With("actual", id))
			}
		}

		if !cfg.Bool("checkDefinitions", true) {
			return issues
		}

		for _, container := range []string{"definitions", "$defs"} {
			defs, ok := memberObject(doc.Root, container)
			if !ok {
				continue
			}

			base := traverse.Join(traverse.RootPath, traverse.Key(container))

			for name, def := range defs.All() {
				defID, ok := jsontree.Member(def, keyID)
				if !ok || defID == "" || pattern.MatchString(defID) {
					continue
				}

				p := traverse.Join(traverse.Join(base, traverse.Key(name)), traverse.Key(keyID))
				issues = append(issues, c.Issue(fmt.Sprintf("Definition %q has $id that does not match expected pattern.", name), p).
					With("actual", defID).With("expectedPattern", src))
			}
		}

		return issues
	}

	return c
}

func memberObject(v jsontree.Value, key string) (*jsontree.Object, bool) {
	obj, ok := v.(*jsontree.Object)
	if !ok {
		return nil, false
	}

	m, ok := obj.Get(key)
	if !ok {
		return nil, false
	}

	out, ok := m.(*jsontree.Object)

	return out, ok
}
