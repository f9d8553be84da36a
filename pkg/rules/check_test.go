package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_SampleRules(t *testing.T) {
	findings, err := Check([]byte(sampleRules), nil)
	require.NoError(t, err)

	assert.Empty(t, findings.Errors())
	require.Len(t, findings.Warnings(), 1)
	assert.Equal(t, "archived", findings.Warnings()[0].Skill)
}

func TestCheck_SchemaViolation(t *testing.T) {
	doc := `{"skills": {"vix": {"priority": "urgent", "promptTriggers": {"keywords": ["vix"]}}}}`

	findings, err := Check([]byte(doc), nil)
	require.NoError(t, err)

	errs := findings.Errors()
	require.Len(t, errs, 2)
	assert.Empty(t, errs[0].Skill)
	assert.Contains(t, errs[0].Message, "schema validation failed")
	assert.Equal(t, "vix", errs[1].Skill)
	assert.Contains(t, errs[1].Message, `unknown priority "urgent"`)
}

func TestCheck_Unparseable(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "invalid json", doc: `{"skills": `},
		{name: "missing skills", doc: `{"rules": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings, err := Check([]byte(tt.doc), nil)
			require.NoError(t, err)
			require.Len(t, findings, 1)
			assert.Equal(t, SeverityError, findings[0].Severity)
			assert.Empty(t, findings[0].Skill)
			assert.Error(t, findings.Err())
		})
	}
}

func TestCheck_DiscoveredSkills(t *testing.T) {
	discovered := map[string]bool{"vix-monitor": true, "fred-data": true, "archived": true}

	findings, err := Check([]byte(sampleRules), discovered)
	require.NoError(t, err)

	errs := findings.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "broker-orders", errs[0].Skill)
}

func TestCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skill-rules.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleRules), 0o644))

	findings, err := CheckFile(path, nil)
	require.NoError(t, err)
	assert.Empty(t, findings.Errors())

	_, err = CheckFile(filepath.Join(t.TempDir(), "missing.json"), nil)
	require.Error(t, err)
}

func TestFinding_ErrorWithoutSkill(t *testing.T) {
	f := Finding{Severity: SeverityError, Message: "invalid JSON"}
	assert.Equal(t, "invalid JSON", f.Error())
}
