package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-tools/internal/diagnostic"
	"schema-tools/internal/jsontree"
	"schema-tools/internal/lint"
)

const validID = "https://cyclonedx.org/schema/2.0/model/cyclonedx-common-2.0.schema.json"

func run(t *testing.T, c lint.Check, src string, cfg lint.CheckConfig) []diagnostic.Diagnostic {
	t.Helper()

	root, err := jsontree.Decode([]byte(src))
	require.NoError(t, err)

	return c.Run(&lint.Document{Path: "test.schema.json", Raw: []byte(src), Root: root}, cfg)
}

func severities(issues []diagnostic.Diagnostic) []diagnostic.Severity {
	out := make([]diagnostic.Severity, len(issues))
	for i, d := range issues {
		out[i] = d.Severity
	}

	return out
}

func paths(issues []diagnostic.Diagnostic) []string {
	out := make([]string, len(issues))
	for i, d := range issues {
		out[i] = d.Path
	}

	return out
}

func TestDefaultRegistry(t *testing.T) {
	reg := Default()
	require.Equal(t, 16, reg.Len())

	var ids []string
	for _, c := range reg.All() {
		ids = append(ids, c.ID)
	}

	assert.Equal(t, []string{
		"schema-id-pattern",
		"schema-comment",
		"schema-draft",
		"model-property-order",
		"model-structure",
		"formatting-indent",
		"description-full-stop",
		"meta-enum-full-stop",
		"no-uppercase-rfc",
		"no-must-word",
		"additional-properties-false",
		"title-formatting",
		"enum-value-formatting",
		"ref-usage",
		"duplicate-content",
		"duplicate-definitions",
	}, ids)

	for _, c := range reg.All() {
		assert.NotEmpty(t, c.Name, c.ID)
		assert.NotEmpty(t, c.Description, c.ID)
	}
}

func TestSchemaDraft(t *testing.T) {
	c := SchemaDraft()

	assert.Empty(t, run(t, c, `{"$schema": "`+RequiredSchema+`"}`, nil))

	issues := run(t, c, `{}`, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, "$.$schema", issues[0].Path)
	assert.Equal(t, "schema-draft", issues[0].Code)

	issues = run(t, c, `{"$schema": "http://json-schema.org/draft-07/schema#"}`, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, `"http://json-schema.org/draft-07/schema#"`, issues[0].Context["actual"])

	custom := lint.CheckConfig{"requiredSchema": "http://json-schema.org/draft-07/schema#"}
	assert.Empty(t, run(t, c, `{"$schema": "http://json-schema.org/draft-07/schema#"}`, custom))
}

func TestSchemaComment(t *testing.T) {
	c := SchemaComment()

	assert.Empty(t, run(t, c, `{"$comment": "`+RequiredComment+`"}`, nil))
	assert.Len(t, run(t, c, `{"$comment": "something else"}`, nil), 1)
	assert.Len(t, run(t, c, `[]`, nil), 1)
	assert.Empty(t, run(t, c, `{"$comment": "x"}`, lint.CheckConfig{"requiredComment": "x"}))
}

func TestSchemaIDPattern(t *testing.T) {
	c := SchemaIDPattern()

	tests := []struct {
		name  string
		src   string
		cfg   lint.CheckConfig
		paths []string
	}{
		{name: "valid", src: `{"$id": "` + validID + `"}`},
		{name: "missing", src: `{}`, paths: []string{"$.$id"}},
		{name: "pattern mismatch", src: `{"$id": "urn:example:x"}`, paths: []string{"$.$id"}},
		{name: "not a uri", src: `{"$id": "not a uri"}`, paths: []string{"$.$id", "$.$id"}},
		{
			name:  "definition id",
			src:   `{"$id": "` + validID + `", "$defs": {"a": {"$id": "bad"}, "b": {}}}`,
			paths: []string{"$.$defs.a.$id"},
		},
		{
			name: "definitions skipped",
			src:  `{"$id": "` + validID + `", "definitions": {"a": {"$id": "bad"}}}`,
			cfg:  lint.CheckConfig{"checkDefinitions": false},
		},
		{
			name: "custom pattern",
			src:  `{"$id": "https://example.com/a.json"}`,
			cfg:  lint.CheckConfig{"pattern": `^https://example\.com/`},
		},
		{name: "invalid pattern", src: `{}`, cfg: lint.CheckConfig{"pattern": "[a-"}, paths: []string{"$"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := run(t, c, tt.src, tt.cfg)
			if tt.paths == nil {
				assert.Empty(t, issues)
				return
			}

			assert.Equal(t, tt.paths, paths(issues))
		})
	}
}

func TestFormattingIndent(t *testing.T) {
	c := FormattingIndent()

	tests := []struct {
		name  string
		src   string
		cfg   lint.CheckConfig
		sev   []diagnostic.Severity
		check func(t *testing.T, issues []diagnostic.Diagnostic)
	}{
		{name: "canonical", src: "{\n  \"a\": [\n    1\n  ]\n}\n"},
		{
			name: "missing final newline",
			src:  "{\n  \"a\": 1\n}",
			sev:  []diagnostic.Severity{diagnostic.SeverityError},
		},
		{name: "final newline optional", src: "{\n  \"a\": 1\n}", cfg: lint.CheckConfig{"requireFinalNewline": false}},
		{
			name: "tabs",
			src:  "{\n\t\"a\": 1\n}\n",
			sev:  []diagnostic.Severity{diagnostic.SeverityError, diagnostic.SeverityError},
			check: func(t *testing.T, issues []diagnostic.Diagnostic) {
				assert.Contains(t, issues[0].Message, "uses tabs")
				assert.Equal(t, 2, issues[0].Context["line"])
				assert.Contains(t, issues[1].Message, "incorrect indentation")
			},
		},
		{
			name: "trailing whitespace",
			src:  "{\n  \"a\": 1 \n}\n",
			sev:  []diagnostic.Severity{diagnostic.SeverityWarning},
		},
		{
			name: "trailing whitespace allowed",
			src:  "{\n  \"a\": 1 \n}\n",
			cfg:  lint.CheckConfig{"allowTrailingWhitespace": true},
		},
		{
			name: "crlf",
			src:  "{\r\n  \"a\": 1\r\n}\r\n",
			sev:  []diagnostic.Severity{diagnostic.SeverityError},
			check: func(t *testing.T, issues []diagnostic.Diagnostic) {
				assert.Equal(t, "CRLF", issues[0].Context["actual"])
			},
		},
		{name: "crlf expected", src: "{\r\n  \"a\": 1\r\n}\r\n", cfg: lint.CheckConfig{"lineEnding": "crlf"}},
		{
			name: "lf when crlf expected",
			src:  "{\n  \"a\": 1\n}\n",
			cfg:  lint.CheckConfig{"lineEnding": "crlf"},
			sev:  []diagnostic.Severity{diagnostic.SeverityError},
		},
		{
			name: "four spaces expected",
			src:  "{\n  \"a\": 1\n}\n",
			cfg:  lint.CheckConfig{"spaces": 4},
			sev:  []diagnostic.Severity{diagnostic.SeverityError},
			check: func(t *testing.T, issues []diagnostic.Diagnostic) {
				assert.Equal(t, 4, issues[0].Context["expectedIndent"])
				assert.Equal(t, 2, issues[0].Context["actualIndent"])
			},
		},
		{
			name: "key spacing",
			src:  "{\n  \"a\" : 1\n}\n",
			sev:  []diagnostic.Severity{diagnostic.SeverityInfo},
		},
		{
			name: "compact file",
			src:  "{\"a\":1}\n",
			sev:  []diagnostic.Severity{diagnostic.SeverityWarning, diagnostic.SeverityError, diagnostic.SeverityError},
			check: func(t *testing.T, issues []diagnostic.Diagnostic) {
				assert.Contains(t, issues[1].Message, "Line 2 is missing")
			},
		},
		{
			name: "extra lines",
			src:  "{\n  \"a\": 1\n}\n\n",
			sev:  []diagnostic.Severity{diagnostic.SeverityError},
			check: func(t *testing.T, issues []diagnostic.Diagnostic) {
				assert.Contains(t, issues[0].Message, "Line 4 is unexpected")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := run(t, c, tt.src, tt.cfg)
			if tt.sev == nil {
				assert.Empty(t, issues)
				return
			}

			require.Equal(t, tt.sev, severities(issues))

			for _, d := range issues {
				assert.Equal(t, "$", d.Path)
			}

			if tt.check != nil {
				tt.check(t, issues)
			}
		})
	}
}

func TestDescriptionFullStop(t *testing.T) {
	c := DescriptionFullStop()

	tests := []struct {
		name string
		src  string
		cfg  lint.CheckConfig
		sev  []diagnostic.Severity
	}{
		{name: "full stop", src: `{"description": "Fine."}`},
		{name: "question", src: `{"description": "Is it fine?"}`},
		{name: "url ending", src: `{"description": "See https://cyclonedx.org/docs"}`},
		{name: "markdown link", src: `{"description": "See [docs](https://cyclonedx.org)"}`},
		{name: "empty", src: `{"description": "  "}`},
		{name: "missing", src: `{"description": "No stop"}`, sev: []diagnostic.Severity{diagnostic.SeverityError}},
		{name: "code ending", src: "{\"description\": \"Use `x`\"}", sev: []diagnostic.Severity{diagnostic.SeverityWarning}},
		{
			name: "excluded path",
			src:  `{"properties": {"x": {"description": "bad"}}}`,
			cfg:  lint.CheckConfig{"excludePaths": []any{"properties.x"}},
		},
		{name: "custom endings", src: `{"description": "Items:"}`, cfg: lint.CheckConfig{"validEndings": []any{":"}}},
		{name: "non-string ignored", src: `{"properties": {"description": {"type": "string"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := run(t, c, tt.src, tt.cfg)
			if tt.sev == nil {
				assert.Empty(t, issues)
				return
			}

			assert.Equal(t, tt.sev, severities(issues))
		})
	}

	issues := run(t, c, `{"items": {"description": "No stop "}}`, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, "$.items.description", issues[0].Path)
	assert.Equal(t, []string{"No stop."}, issues[0].Suggestions)
}

func TestMetaEnumFullStop(t *testing.T) {
	c := MetaEnumFullStop()

	assert.Empty(t, run(t, c, `{"meta:enum": {"a": "Good.", "b": "Also good!"}}`, nil))

	issues := run(t, c, `{"meta:enum": {"a": "Good.", "b": "bad", "c": "", "d": 1}}`, nil)
	assert.Equal(t, []diagnostic.Severity{
		diagnostic.SeverityError,
		diagnostic.SeverityWarning,
		diagnostic.SeverityError,
	}, severities(issues))
	assert.Equal(t, []string{`$["meta:enum"].b`, `$["meta:enum"].c`, `$["meta:enum"].d`}, paths(issues))
	assert.Equal(t, []string{"bad."}, issues[0].Suggestions)

	issues = run(t, c, `{"meta:enum": ["a"]}`, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, "array", issues[0].Context["actual"])
}

func TestNoUppercaseRFC(t *testing.T) {
	c := NoUppercaseRFC()

	src := `{"description": "Value MUST  NOT be empty and SHOULD be short.", "meta:enum": {"a": "It MAY vary."}}`

	issues := run(t, c, src, nil)
	require.Len(t, issues, 3)
	assert.Equal(t, "MUST  NOT", issues[0].Context["keyword"])
	assert.Equal(t, []string{"must not"}, issues[0].Suggestions)
	assert.Equal(t, "SHOULD", issues[1].Context["keyword"])
	assert.Equal(t, `$["meta:enum"].a`, issues[2].Path)
	assert.Contains(t, issues[2].Message, "meta:enum description")

	issues = run(t, c, src, lint.CheckConfig{"allowedKeywords": []any{"SHOULD", "MUST NOT"}})
	require.Len(t, issues, 1)
	assert.Equal(t, "MAY", issues[0].Context["keyword"])

	assert.Empty(t, run(t, c, src, lint.CheckConfig{"allowedPaths": []any{"$"}}))
	assert.Empty(t, run(t, c, `{"description": "Values must be optional."}`, nil))
}

func TestNoMustWord(t *testing.T) {
	c := NoMustWord()

	issues := run(t, c, `{"description": "It must be set. Must work."}`, nil)
	require.Len(t, issues, 2)
	assert.Equal(t, []string{"shall be"}, issues[0].Suggestions)
	assert.Equal(t, "Must work", issues[1].Context["found"])
	assert.Equal(t, []string{"shall work"}, issues[1].Suggestions)

	issues = run(t, c, `{"meta:enum": {"a": "The value must be lowercase."}}`, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, `$["meta:enum"].a`, issues[0].Path)

	allow := lint.CheckConfig{"allowInContext": true}
	assert.Empty(t, run(t, c, `{"description": "The value must be lowercase."}`, allow))
	assert.Empty(t, run(t, c, `{"description": "Avoid the word \"must\"."}`, allow))
	assert.Len(t, run(t, c, `{"description": "It must be set."}`, allow), 1)

	assert.Empty(t, run(t, c, `{"description": "Mustard is fine."}`, nil))
}

func TestAdditionalPropertiesFalse(t *testing.T) {
	c := AdditionalPropertiesFalse()

	tests := []struct {
		name string
		src  string
		cfg  lint.CheckConfig
		sev  []diagnostic.Severity
	}{
		{name: "false", src: `{"type": "object", "properties": {"a": {"type": "string"}}, "additionalProperties": false}`},
		{name: "missing", src: `{"type": "object", "properties": {}}`, sev: []diagnostic.Severity{diagnostic.SeverityError}},
		{name: "pattern only", src: `{"patternProperties": {"^x": {}}}`, sev: []diagnostic.Severity{diagnostic.SeverityError}},
		{name: "type only", src: `{"type": "object"}`},
		{name: "true", src: `{"type": "object", "additionalProperties": true}`, sev: []diagnostic.Severity{diagnostic.SeverityError}},
		{name: "empty schema", src: `{"type": "object", "additionalProperties": {}}`, sev: []diagnostic.Severity{diagnostic.SeverityWarning}},
		{
			name: "schema",
			src:  `{"type": "object", "additionalProperties": {"type": "string"}}`,
			sev:  []diagnostic.Severity{diagnostic.SeverityInfo},
		},
		{
			name: "schema allowed",
			src:  `{"type": "object", "additionalProperties": {"type": "string"}}`,
			cfg:  lint.CheckConfig{"allowSchema": true},
		},
		{name: "ref", src: `{"$ref": "#/$defs/a", "properties": {}}`},
		{name: "conditional", src: `{"not": {"type": "object", "properties": {}}}`},
		{
			name: "property named type",
			src:  `{"type": "object", "properties": {"type": {"type": "string"}}, "additionalProperties": false}`,
		},
		{
			name: "excluded",
			src:  `{"$defs": {"open": {"type": "object", "properties": {}}}}`,
			cfg:  lint.CheckConfig{"excludePaths": []any{"$defs.open"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := run(t, c, tt.src, tt.cfg)
			if tt.sev == nil {
				assert.Empty(t, issues)
				return
			}

			assert.Equal(t, tt.sev, severities(issues))
		})
	}

	issues := run(t, c, `{"$defs": {"a": {"properties": {"x": {}}}}}`, nil)
	assert.Equal(t, []string{"$.$defs.a"}, paths(issues))
}

func TestTitleFormatting(t *testing.T) {
	c := TitleFormatting()

	assert.Empty(t, run(t, c, `{"title": "Component Data"}`, nil))

	issues := run(t, c, `{"title": " "}`, nil)
	assert.Equal(t, []diagnostic.Severity{diagnostic.SeverityError}, severities(issues))

	issues = run(t, c, `{"title": "Ends here."}`, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, []string{"Ends here"}, issues[0].Suggestions)
	assert.Empty(t, run(t, c, `{"title": "Ends here."}`, lint.CheckConfig{"forbidEndingPunctuation": false}))

	issues = run(t, c, `{"title": "Too long title"}`, lint.CheckConfig{"maxLength": 5})
	require.Len(t, issues, 1)
	assert.Equal(t, 14, issues[0].Context["length"])

	issues = run(t, c, `{"properties": {"a": {"title": "the name of a thing"}}}`, lint.CheckConfig{"requireTitleCase": true})
	require.Len(t, issues, 1)
	assert.Equal(t, diagnostic.SeverityInfo, issues[0].Severity)
	assert.Equal(t, "$.properties.a.title", issues[0].Path)
	assert.Equal(t, "The Name of a Thing", issues[0].Context["expected"])
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"the name of a thing":  "The Name of a Thing",
		"SBOM data for tools":  "SBOM Data for Tools",
		"Of mice and men":      "Of Mice and Men",
		"already Title Case":   "Already Title Case",
		"  spaced   out  ":     "Spaced Out",
		"component via bridge": "Component via Bridge",
	}

	for in, want := range tests {
		assert.Equal(t, want, titleCase(in), in)
	}
}

func TestRefUsage(t *testing.T) {
	c := RefUsage()

	ok := `{"$defs": {"a": {"type": "string"}}, "properties": {"x": {"$ref": "#/$defs/a", "description": "D."}}}`
	assert.Empty(t, run(t, c, ok, nil))

	issues := run(t, c, `{"$defs": {}, "properties": {"x": {"$ref": "#/$defs/b"}}}`, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, diagnostic.SeverityError, issues[0].Severity)
	assert.Equal(t, "$.properties.x.$ref", issues[0].Path)
	assert.Empty(t, run(t, c, `{"properties": {"x": {"$ref": "#/$defs/b"}}}`, lint.CheckConfig{"checkDefinitionsExist": false}))

	issues = run(t, c, `{"$defs": {"a": {}}, "properties": {"x": {"$ref": "#/$defs/a", "type": "string"}}}`, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, diagnostic.SeverityWarning, issues[0].Severity)
	assert.Equal(t, "$.properties.x", issues[0].Path)
	assert.Equal(t, []string{"type"}, issues[0].Context["conflictingKeywords"])

	assert.Empty(t, run(t, c, `{"properties": {"x": {"$ref": "other.schema.json", "type": "string"}}}`,
		lint.CheckConfig{"allowedConflicting": []any{"type"}}))
	assert.Empty(t, run(t, c, `{"properties": {"$ref": {"type": "string"}, "a": {}}}`, nil))
	assert.Empty(t, run(t, c, `{"$defs": {"a~b": {}}, "items": {"$ref": "#/$defs/a~0b"}}`, nil))
}

func TestDefaultThroughLinter(t *testing.T) {
	l := lint.New(Default(), lint.Config{IncludeChecks: []string{"no-must-word", "description-full-stop"}})

	res := l.LintBytes([]byte("{\"description\": \"It must work\"}\n"), "mem.schema.json")

	assert.Equal(t, []string{"description-full-stop", "no-must-word"}, res.ChecksRun)
	require.Len(t, res.Issues.Items, 2)
	assert.Equal(t, "mem.schema.json", res.Issues.Items[0].Source)
	assert.True(t, res.HasErrors())
}

func TestModelStructure(t *testing.T) {
	c := ModelStructure()

	assert.Empty(t, run(t, c, `{"$id": "`+validID+`", "type": "null", "$defs": {}}`, nil))
	assert.Empty(t, run(t, c, `{"$id": "https://cyclonedx.org/schema/2.0/bom-2.0.schema.json", "properties": {}}`, nil))
	assert.Empty(t, run(t, c, `[]`, nil))

	issues := run(t, c, `{"$id": "`+validID+`", "type": "object", "properties": {}}`, nil)
	assert.Equal(t, []string{"$.type", "$.$defs", "$.properties"}, paths(issues))
	assert.Equal(t, `"object"`, issues[0].Context["actual"])

	issues = run(t, c, `{"$id": "`+validID+`", "$defs": {}}`, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, "$.type", issues[0].Path)
	assert.Equal(t, "null", issues[0].Context["expected"])
}

func TestModelPropertyOrder(t *testing.T) {
	c := ModelPropertyOrder()

	good := `{"$schema": "s", "$id": "` + validID + `", "type": "null", "title": "T", "$comment": "c", "$defs": {}}`
	assert.Empty(t, run(t, c, good, nil))
	assert.Empty(t, run(t, c, `{"type": "null", "$id": "https://example.com/a.schema.json"}`, nil))

	issues := run(t, c, `{"$id": "`+validID+`", "$schema": "s", "type": "null", "title": "T", "$comment": "c", "$defs": {}}`, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, "$.$id", issues[0].Path)
	assert.Equal(t, diagnostic.SeverityError, issues[0].Severity)

	issues = run(t, c, `{"$id": "`+validID+`", "type": "null", "$defs": {}, "properties": {}}`, nil)
	assert.Equal(t, []string{"$.$schema", "$.title", "$.$comment", "$"}, paths(issues))
	assert.Equal(t, []diagnostic.Severity{
		diagnostic.SeverityError, diagnostic.SeverityError, diagnostic.SeverityError, diagnostic.SeverityWarning,
	}, severities(issues))
	assert.Equal(t, []string{"properties"}, issues[3].Context["unexpected"])

	cfg := lint.CheckConfig{"requiredOrder": []any{"$id", "type"}}
	assert.Empty(t, run(t, c, `{"$id": "`+validID+`", "type": "null"}`, cfg))

	issues = run(t, c, `{"type": "null", "$id": "`+validID+`"}`, cfg)
	assert.Equal(t, []string{"$.type"}, paths(issues))
}

func TestDuplicateContent(t *testing.T) {
	c := DuplicateContent()

	src := `{
		"title": "Component",
		"properties": {
			"a": {"title": "Component", "description": "A fairly long description text."},
			"b": {"title": "Other", "description": "A fairly long description text."},
			"c": {"description": "Short."},
			"d": {"description": "Short."}
		}
	}`

	issues := run(t, c, src, nil)
	assert.Equal(t, []string{"$.title", "$.properties.a.description"}, paths(issues))
	assert.Equal(t, []diagnostic.Severity{diagnostic.SeverityError, diagnostic.SeverityWarning}, severities(issues))
	assert.Equal(t, 2, issues[0].Context["count"])
	assert.Equal(t, []string{"$.title", "$.properties.a.title"}, issues[0].Context["locations"])

	assert.Len(t, run(t, c, src, lint.CheckConfig{"minDescriptionLength": 5}), 3)
	assert.Len(t, run(t, c, src, lint.CheckConfig{"checkTitles": false}), 1)
	assert.Len(t, run(t, c, src, lint.CheckConfig{"checkTitles": false, "checkDescriptions": false}), 0)

	assert.Empty(t, run(t, c, `{"title": "A", "properties": {"x": {"title": "B"}, "y": {"title": " "}, "z": {"title": " "}}}`, nil))
}

func TestDuplicateDefinitions(t *testing.T) {
	c := DuplicateDefinitions()

	src := `{
		"$defs": {
			"hash": {"type": "string"},
			"component": {"$defs": {"hash": {"type": "string"}}}
		},
		"properties": {
			"hash": {"type": "string"},
			"ref": {"$ref": "#/$defs/hash"},
			"other": {"type": "string"}
		}
	}`

	issues := run(t, c, src, nil)
	require.Len(t, issues, 2)

	assert.Equal(t, diagnostic.SeverityError, issues[0].Severity)
	assert.Equal(t, "$.$defs.hash", issues[0].Path)
	assert.Equal(t, []string{"$.$defs.hash", "$.$defs.component.$defs.hash"}, issues[0].Context["locations"])

	assert.Equal(t, diagnostic.SeverityWarning, issues[1].Severity)
	assert.Equal(t, "$.properties.hash", issues[1].Path)
	assert.Equal(t, "#/$defs/hash", issues[1].Context["suggestedRef"])

	assert.Empty(t, run(t, c, `{"$defs": {"hash": {}, "component": {"properties": {"hash": {"type": "string"}}}}}`, nil))

	issues = run(t, c, `{"definitions": {"a/b": {}}, "properties": {"a/b": {"type": "string"}}}`, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, "#/definitions/a~1b", issues[0].Context["suggestedRef"])
}

func TestEnumValueFormatting(t *testing.T) {
	c := EnumValueFormatting()

	assert.Empty(t, run(t, c, `{"enum": ["foo-bar", "baz"], "meta:enum": {"foo-bar": "Foo.", "baz": "Baz."}}`, nil))
	assert.Empty(t, run(t, c, `{"enum": [1, 2]}`, nil))
	assert.Empty(t, run(t, c, `{"properties": {"enum": {"type": "string"}}}`, nil))

	mixed := `{"properties": {"x": {"enum": ["foo-bar", "foo_bar", "fooBar"]}}}`

	issues := run(t, c, mixed, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, diagnostic.SeverityInfo, issues[0].Severity)
	assert.Equal(t, "$.properties.x.enum", issues[0].Path)
	assert.Equal(t, map[string]any{CaseKebab: 1, CaseSnake: 1, CaseCamel: 1}, issues[0].Context["detectedStyles"])
	assert.Empty(t, run(t, c, mixed, lint.CheckConfig{"allowMixedCase": true}))

	issues = run(t, c, `{"enum": ["foo bar"]}`, nil)
	assert.Equal(t, []diagnostic.Severity{diagnostic.SeverityError, diagnostic.SeverityWarning}, severities(issues))
	assert.Equal(t, []string{"foo-bar"}, issues[0].Suggestions)

	issues = run(t, c, `{"enum": ["foo bar"]}`, lint.CheckConfig{"preferredCase": CaseCamel})
	assert.Equal(t, []string{"fooBar"}, issues[0].Suggestions)

	issues = run(t, c, `{"enum": ["a", "b", 3], "meta:enum": {"a": "A.", "c": "C."}}`, nil)
	assert.Equal(t, []string{"$.enum", `$["meta:enum"].c`}, paths(issues))
	assert.Equal(t, []diagnostic.Severity{diagnostic.SeverityError, diagnostic.SeverityWarning}, severities(issues))
	assert.Equal(t, "b", issues[0].Context["value"])
}

func TestConvertCase(t *testing.T) {
	tests := []struct {
		in, style, want string
	}{
		{"Foo Bar", CaseKebab, "foo-bar"},
		{"fooBar", CaseSnake, "foo_bar"},
		{"foo-bar baz", CasePascal, "FooBarBaz"},
		{"foo_bar", CaseCamel, "fooBar"},
		{"foo bar", CaseUpper, "FOOBAR"},
		{"Foo-Bar", CaseLower, "foobar"},
		{"as is", "unknown", "as is"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, convertCase(tt.in, tt.style), tt.in+" "+tt.style)
	}
}
