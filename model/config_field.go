package model

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ConfigFieldType enumerates the primitive shapes a ConfigField may declare.
type ConfigFieldType string

const (
	ConfigFieldString ConfigFieldType = "string"
	ConfigFieldInt    ConfigFieldType = "int"
	ConfigFieldFloat  ConfigFieldType = "float"
	ConfigFieldBool   ConfigFieldType = "bool"
	ConfigFieldObject ConfigFieldType = "object"
	ConfigFieldArray  ConfigFieldType = "array"
)

// ConfigField lets a module self-describe a configuration value it expects.
// The coordinator never interprets these — it only stores and returns them
// through capabilities (SPEC_FULL.md §1.2) — so a module publishing a
// ConfigField with Type ConfigFieldObject/ConfigFieldArray may optionally
// attach a JSON Schema in Schema for callers that want to validate a
// candidate value before using it.
type ConfigField struct {
	Name        string
	Type        ConfigFieldType
	Required    bool
	Default     any
	Description string
	Schema      json.RawMessage
}

// Validate checks value against Schema when one is present. It reports an
// error immediately (rather than silently skipping) if Schema is present
// but fails to compile, since a module publishing a broken schema is a
// module bug the caller should surface, not mask.
func (f ConfigField) Validate(value any) error {
	if len(f.Schema) == 0 {
		return nil
	}
	compiler := jsonschema.NewCompiler()
	var schemaDoc any
	if err := json.Unmarshal(f.Schema, &schemaDoc); err != nil {
		return fmt.Errorf("config field %q: decode schema: %w", f.Name, err)
	}
	const resource = "config-field-schema.json"
	if err := compiler.AddResource(resource, schemaDoc); err != nil {
		return fmt.Errorf("config field %q: add schema resource: %w", f.Name, err)
	}
	schema, err := compiler.Compile(resource)
	if err != nil {
		return fmt.Errorf("config field %q: compile schema: %w", f.Name, err)
	}

	// jsonschema validates decoded JSON values (map[string]any, []any,
	// json.Number, ...); round-trip arbitrary Go values through JSON so
	// callers may pass native structs/maps interchangeably.
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("config field %q: encode candidate value: %w", f.Name, err)
	}
	var decoded any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return fmt.Errorf("config field %q: decode candidate value: %w", f.Name, err)
	}
	if err := schema.Validate(decoded); err != nil {
		return fmt.Errorf("config field %q: %w", f.Name, err)
	}
	return nil
}
