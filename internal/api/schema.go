package api

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/todo.schema.json
var todoSchemaJSON []byte

const schemaURL = "https://todos.local/schema/todo.schema.json"

// Schemas holds the compiled payload schemas for the API responses we decode.
type Schemas struct {
	Todo *jsonschema.Schema
	List *jsonschema.Schema
}

var (
	schemasOnce sync.Once
	schemas     *Schemas
	schemasErr  error
)

// LoadSchemas compiles the embedded schema once and returns it.
func LoadSchemas() (*Schemas, error) {
	schemasOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, bytes.NewReader(todoSchemaJSON)); err != nil {
			schemasErr = fmt.Errorf("failed to add todo schema: %w", err)
			return
		}

		todo, err := compiler.Compile(schemaURL + "#/$defs/todo")
		if err != nil {
			schemasErr = fmt.Errorf("failed to compile todo schema: %w", err)
			return
		}
		list, err := compiler.Compile(schemaURL + "#/$defs/list")
		if err != nil {
			schemasErr = fmt.Errorf("failed to compile list schema: %w", err)
			return
		}
		schemas = &Schemas{Todo: todo, List: list}
	})
	return schemas, schemasErr
}

// validatePayload checks raw JSON against schema. A nil schema accepts anything
// that parses.
func validatePayload(schema *jsonschema.Schema, data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("failed to parse payload: %w", err)
	}
	if schema == nil {
		return nil
	}
	if err := schema.Validate(doc); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			leaf := firstLeaf(ve)
			return fmt.Errorf("payload does not match schema at %q: %s", leaf.InstanceLocation, leaf.Message)
		}
		return err
	}
	return nil
}

// firstLeaf walks to the deepest first cause, which names the offending field.
func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
