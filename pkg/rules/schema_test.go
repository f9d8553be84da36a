package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaJSON(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, SchemaID, parsed["$id"])
	assert.Contains(t, string(data), `"skills"`)
	assert.Contains(t, string(data), `"promptTriggers"`)
	assert.Contains(t, string(data), `"intentPatterns"`)
	assert.Contains(t, string(data), `"critical"`)
}

func TestValidator_Validate(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	t.Run("valid document", func(t *testing.T) {
		assert.NoError(t, v.Validate([]byte(sampleRules)))
	})

	t.Run("extra fields are allowed", func(t *testing.T) {
		doc := `{"version": "1.0", "skills": {"a": {"type": "domain", "priority": "low", "fileTriggers": {}}}}`
		assert.NoError(t, v.Validate([]byte(doc)))
	})

	t.Run("unknown priority", func(t *testing.T) {
		assert.Error(t, v.Validate([]byte(`{"skills": {"a": {"priority": "urgent"}}}`)))
	})

	t.Run("missing skills", func(t *testing.T) {
		assert.Error(t, v.Validate([]byte(`{}`)))
	})

	t.Run("keywords must be strings", func(t *testing.T) {
		assert.Error(t, v.Validate([]byte(`{"skills": {"a": {"priority": "low", "promptTriggers": {"keywords": [1]}}}}`)))
	})

	t.Run("invalid json", func(t *testing.T) {
		assert.Error(t, v.Validate([]byte(`{`)))
	})
}
