package bundle

import (
	"bytes"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// CodeCompile identifies the advisory compilability warning.
const CodeCompile = "bundle-compile"

const compileURL = "file:///bundle.schema.json"

// Compile checks that a serialized bundle is accepted by a JSON Schema
// compiler. References to files outside the bundle are not fetched.
func Compile(data []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode bundle: %w", err)
	}

	c := jsonschema.NewCompiler()
	c.UseLoader(jsonschema.SchemeURLLoader{})

	if err := c.AddResource(compileURL, doc); err != nil {
		return fmt.Errorf("failed to add bundle resource: %w", err)
	}

	if _, err := c.Compile(compileURL); err != nil {
		return err
	}

	return nil
}
