package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleParams struct {
	Query   string  `json:"query" description:"Search query"`
	Limit   *int    `json:"limit" description:"Optional limit"`
	Cursor  string  `json:"cursor,omitempty"`
	Score   float64 `json:"score"`
	hidden  string
	Skipped string `json:"-"`
}

func TestCreateSchema(t *testing.T) {
	schema := CreateSchema(sampleParams{})

	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]any)
	assert.True(t, ok)
	assert.Contains(t, props, "query")
	assert.Contains(t, props, "limit")
	assert.Contains(t, props, "cursor")
	assert.Contains(t, props, "score")
	assert.NotContains(t, props, "hidden")
	assert.NotContains(t, props, "Skipped")

	query := props["query"].(map[string]any)
	assert.Equal(t, "string", query["type"])
	assert.Equal(t, "Search query", query["description"])

	limit := props["limit"].(map[string]any)
	assert.Equal(t, "integer", limit["type"])

	score := props["score"].(map[string]any)
	assert.Equal(t, "number", score["type"])

	// Pointer and omitempty fields are optional.
	req, _ := schema["required"].([]string)
	assert.ElementsMatch(t, []string{"query", "score"}, req)
}

func TestCreateSchemaNonStruct(t *testing.T) {
	schema := CreateSchema("not a struct")
	assert.Equal(t, "object", schema["type"])
	assert.Empty(t, schema["properties"])
}

func TestValidateParametersRequired(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "integer"},
		},
		"required": []string{"x"},
	}

	assert.NoError(t, ValidateParameters(map[string]any{"x": 5}, schema))

	err := ValidateParameters(map[string]any{}, schema)
	assert.Error(t, err)
	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Equal(t, "x", vErr.Field)
}

func TestValidateParametersRequiredAnySlice(t *testing.T) {
	// Schemas decoded from JSON carry required as []any.
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{"q": map[string]any{"type": "string"}},
		"required":   []any{"q"},
	}

	assert.Error(t, ValidateParameters(map[string]any{}, schema))
	assert.NoError(t, ValidateParameters(map[string]any{"q": "ok"}, schema))
}

func TestValidateParametersTypes(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"s": map[string]any{"type": "string"},
			"i": map[string]any{"type": "integer"},
			"n": map[string]any{"type": "number"},
			"b": map[string]any{"type": "boolean"},
			"a": map[string]any{"type": "array"},
			"o": map[string]any{"type": "object"},
		},
	}

	assert.NoError(t, ValidateParameters(map[string]any{
		"s": "text",
		"i": float64(3), // JSON decoding yields float64
		"n": 1.5,
		"b": true,
		"a": []any{1, 2},
		"o": map[string]any{"k": "v"},
	}, schema))

	// Non-integral float64 fails integer check.
	err := ValidateParameters(map[string]any{"i": 3.5}, schema)
	assert.Error(t, err)

	err = ValidateParameters(map[string]any{"s": 42}, schema)
	assert.Error(t, err)

	// Extra fields not in the schema are tolerated.
	assert.NoError(t, ValidateParameters(map[string]any{"unknown": "whatever"}, schema))
}
