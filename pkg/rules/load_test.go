package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRules = `{
  "skills": {
    "vix-monitor": {
      "priority": "high",
      "description": "VIX and volatility term structure monitoring\nSecond line",
      "promptTriggers": {
        "keywords": ["vix", "변동성 지수"],
        "intentPatterns": ["(volatility|변동성).*(spike|급등)"]
      }
    },
    "fred-data": {
      "priority": "critical",
      "promptTriggers": {
        "keywords": ["fred"]
      }
    },
    "archived": {
      "priority": "low"
    },
    "broker-orders": {
      "priority": "medium",
      "description": "Order placement through the broker API",
      "promptTriggers": {
        "intentPatterns": ["(buy|sell)\\s+\\d+\\s+shares"]
      }
    }
  }
}`

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skill-rules.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func ruleNames(rules []SkillRule) []string {
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name)
	}
	return names
}

func TestParse_DocumentOrder(t *testing.T) {
	rules, err := Parse([]byte(sampleRules))
	require.NoError(t, err)

	assert.Equal(t, []string{"vix-monitor", "fred-data", "archived", "broker-orders"}, ruleNames(rules))

	vix := rules[0]
	assert.Equal(t, PriorityHigh, vix.Priority)
	assert.Equal(t, []string{"vix", "변동성 지수"}, vix.Triggers.Keywords)
	assert.Equal(t, []string{"(volatility|변동성).*(spike|급등)"}, vix.Triggers.IntentPatterns)
	assert.Contains(t, vix.Description, "Second line")

	assert.Equal(t, PriorityCritical, rules[1].Priority)
	assert.True(t, rules[2].Inert())
	assert.Empty(t, rules[3].Triggers.Keywords)
}

func TestParse_OrderIsNotAlphabetical(t *testing.T) {
	rules, err := Parse([]byte(`{"skills": {"zeta": {"priority": "low"}, "alpha": {"priority": "low"}, "mid": {"priority": "low"}}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, ruleNames(rules))
}

func TestParse_PriorityKeptVerbatim(t *testing.T) {
	rules, err := Parse([]byte(`{"skills": {"a": {"priority": " HIGH "}, "b": {"priority": "urgent"}, "c": {}, "d": {"priority": "high"}}}`))
	require.NoError(t, err)
	require.Len(t, rules, 4)
	assert.Equal(t, Priority(" HIGH "), rules[0].Priority)
	assert.False(t, rules[0].Priority.Valid())
	assert.Equal(t, Priority("urgent"), rules[1].Priority)
	assert.Equal(t, Priority(""), rules[2].Priority)
	assert.Equal(t, PriorityHigh, rules[3].Priority)
}

func TestParse_EmptySkills(t *testing.T) {
	rules, err := Parse([]byte(`{"skills": {}}`))
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestParse_ByteOrderMark(t *testing.T) {
	rules, err := Parse([]byte("\xef\xbb\xbf" + `{"skills": {"a": {"priority": "low"}}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ruleNames(rules))
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"skills": `},
		{"empty", ``},
		{"missing skills", `{"rules": {}}`},
		{"null skills", `{"skills": null}`},
		{"skills is an array", `{"skills": []}`},
		{"priority is a number", `{"skills": {"a": {"priority": 1}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := writeRules(t, sampleRules)

	set := Load(path)
	require.True(t, set.Available())
	assert.NoError(t, set.Err())
	assert.Equal(t, path, set.Path())
	assert.Len(t, set.Rules(), 4)
	assert.Equal(t, "vix-monitor", set.Rules()[0].Name)
}

func TestLoad_MissingFile(t *testing.T) {
	set := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.False(t, set.Available())
	assert.Error(t, set.Err())
	assert.Empty(t, set.Rules())
}

func TestLoad_InvalidJSON(t *testing.T) {
	set := Load(writeRules(t, `{not json`))
	assert.False(t, set.Available())
	assert.Contains(t, set.Err().Error(), "failed to parse rules file")
}

func TestLoad_EmptyPath(t *testing.T) {
	set := Load("")
	assert.False(t, set.Available())
	assert.Error(t, set.Err())
}

func TestRuleSet_RulesReturnsCopy(t *testing.T) {
	set := NewRuleSet(SkillRule{Name: "a", Priority: PriorityLow})
	rules := set.Rules()
	rules[0].Name = "mutated"
	assert.Equal(t, "a", set.Rules()[0].Name)
}

func TestUnavailable_DefaultError(t *testing.T) {
	set := Unavailable("/x", nil)
	assert.False(t, set.Available())
	assert.Error(t, set.Err())
	assert.Equal(t, "/x", set.Path())
}

func TestPriority(t *testing.T) {
	assert.True(t, PriorityCritical.Valid())
	assert.False(t, Priority("urgent").Valid())
	assert.False(t, Priority("High").Valid())
	assert.False(t, Priority("").Valid())
	assert.Equal(t, 0, PriorityCritical.Rank())
	assert.Equal(t, 3, PriorityLow.Rank())
	assert.Equal(t, -1, Priority("").Rank())
}
