package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingkaihe/skillrouter/pkg/intent"
	"github.com/jingkaihe/skillrouter/pkg/matcher"
	"github.com/jingkaihe/skillrouter/pkg/rules"
)

func skill(name string, priority rules.Priority, description string) matcher.SkillMatch {
	return matcher.SkillMatch{
		Rule:      rules.SkillRule{Name: name, Priority: priority, Description: description},
		MatchType: matcher.MatchTypeKeyword,
	}
}

func intentMatch(t *testing.T, name string) intent.Match {
	t.Helper()
	def, ok := intent.Default().Lookup(name)
	require.True(t, ok, "intent %q not in vocabulary", name)
	return intent.Match{Definition: def}
}

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, "", Render(nil, nil))
	assert.Equal(t, "", Render([]intent.Match{}, []matcher.SkillMatch{}))
}

func TestRender_SkillsOnly(t *testing.T) {
	out := Render(nil, []matcher.SkillMatch{
		skill("vix-monitor", rules.PriorityHigh, "Track implied volatility"),
	})

	expected := strings.Join([]string{
		Separator,
		Title,
		Separator,
		"",
		"📚 RECOMMENDED SKILLS:",
		"  → vix-monitor — Track implied volatility",
		"",
		DirectiveSkills,
		Separator,
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestRender_GroupsByPriorityKeepingOrder(t *testing.T) {
	out := Render(nil, []matcher.SkillMatch{
		skill("A", rules.PriorityHigh, ""),
		skill("B", rules.PriorityCritical, ""),
		skill("C", rules.PriorityCritical, ""),
		skill("D", rules.PriorityLow, ""),
	})

	critical := strings.Index(out, TierLabels[rules.PriorityCritical])
	high := strings.Index(out, TierLabels[rules.PriorityHigh])
	low := strings.Index(out, TierLabels[rules.PriorityLow])
	b := strings.Index(out, "  → B\n")
	c := strings.Index(out, "  → C\n")
	a := strings.Index(out, "  → A\n")
	d := strings.Index(out, "  → D\n")

	for _, idx := range []int{critical, high, low, a, b, c, d} {
		require.GreaterOrEqual(t, idx, 0, out)
	}
	assert.NotContains(t, out, TierLabels[rules.PriorityMedium])

	assert.Less(t, critical, b)
	assert.Less(t, b, c)
	assert.Less(t, c, high)
	assert.Less(t, high, a)
	assert.Less(t, a, low)
	assert.Less(t, low, d)
}

func TestRender_PriorityOutsideTiersIsNotGrouped(t *testing.T) {
	out := Render(nil, []matcher.SkillMatch{
		skill("shouty", rules.Priority("High"), ""),
		skill("mystery", rules.Priority("urgent"), ""),
	})

	expected := strings.Join([]string{
		Separator,
		Title,
		Separator,
		"",
		DirectiveSkills,
		Separator,
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestRender_PriorityOutsideTiersNextToKnownTier(t *testing.T) {
	out := Render(nil, []matcher.SkillMatch{
		skill("mystery", rules.Priority("urgent"), ""),
		skill("vix-monitor", rules.PriorityHigh, ""),
	})

	assert.Contains(t, out, TierLabels[rules.PriorityHigh]+":\n  → vix-monitor\n")
	assert.NotContains(t, out, "mystery")
	assert.NotContains(t, out, TierLabels[rules.PriorityLow])
}

func TestRender_DescriptionFirstLineTruncated(t *testing.T) {
	long := strings.Repeat("가", 70) + "\nsecond line"
	out := Render(nil, []matcher.SkillMatch{skill("korean", rules.PriorityMedium, long)})

	assert.Contains(t, out, "  → korean — "+strings.Repeat("가", rules.DescriptionWidth)+"\n")
	assert.NotContains(t, out, "second line")
}

func TestRender_IntentsOnly(t *testing.T) {
	out := Render([]intent.Match{intentMatch(t, "레짐 분석"), intentMatch(t, "섹터 로테이션")}, nil)

	expected := strings.Join([]string{
		Separator,
		Title,
		Separator,
		"",
		IntentsLabel + ":",
		"  → 레짐 분석",
		"     agent:  regime-analyst",
		"     skill:  skills/market-regime",
		"     output: outputs/regime/regime_analysis.md",
		"  → 섹터 로테이션",
		"     agent:  sector-strategist",
		"     output: outputs/sectors/sector_rotation.md",
		"",
		DirectiveIntents,
		Separator,
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestRender_IntentsBeforeSkills(t *testing.T) {
	out := Render(
		[]intent.Match{intentMatch(t, "리스크 평가")},
		[]matcher.SkillMatch{skill("risk-metrics", rules.PriorityCritical, "VaR and CVaR")},
	)

	assert.Less(t, strings.Index(out, IntentsLabel), strings.Index(out, TierLabels[rules.PriorityCritical]))
	assert.Contains(t, out, DirectiveBoth+"\n")
	assert.NotContains(t, out, DirectiveSkills+"\n")
	assert.True(t, strings.HasSuffix(out, Separator+"\n"))
}

func TestRender_Idempotent(t *testing.T) {
	intents := []intent.Match{intentMatch(t, "시그널 분석")}
	skills := []matcher.SkillMatch{
		skill("signal-consensus", rules.PriorityHigh, "Aggregate signals"),
		skill("fred-data", rules.PriorityCritical, "FRED series"),
	}

	assert.Equal(t, Render(intents, skills), Render(intents, skills))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, nil))
	assert.Empty(t, buf.String())

	skills := []matcher.SkillMatch{skill("vix-monitor", rules.PriorityHigh, "")}
	require.NoError(t, Write(&buf, nil, skills))
	assert.Equal(t, Render(nil, skills), buf.String())
}
