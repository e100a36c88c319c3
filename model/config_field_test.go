package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigFieldValidateNoSchemaAlwaysPasses(t *testing.T) {
	f := ConfigField{Name: "anything", Type: ConfigFieldString}
	require.NoError(t, f.Validate("whatever"))
}

func TestConfigFieldValidateAgainstSchema(t *testing.T) {
	f := ConfigField{
		Name: "budget",
		Type: ConfigFieldObject,
		Schema: []byte(`{
			"type": "object",
			"properties": {"max_tokens": {"type": "integer", "minimum": 1}},
			"required": ["max_tokens"]
		}`),
	}

	require.NoError(t, f.Validate(map[string]any{"max_tokens": 128}))
	require.Error(t, f.Validate(map[string]any{"max_tokens": -1}))
	require.Error(t, f.Validate(map[string]any{}))
}
