// Package report renders the activation report that is injected into the
// model context before it answers a prompt.
//
// The report lists detected intents in classifier order, then matched skills
// grouped by priority tier (critical, high, medium, low) with document order
// kept inside a tier, and ends with a directive line. A matched skill whose
// priority is not exactly one of the tiers is left out of every group but
// still counts toward the directive. Rendering is a pure
// function of its inputs so the same prompt and rules always produce the same
// bytes.
package report

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/jingkaihe/skillrouter/pkg/intent"
	"github.com/jingkaihe/skillrouter/pkg/matcher"
	"github.com/jingkaihe/skillrouter/pkg/rules"
	"github.com/jingkaihe/skillrouter/pkg/textmatch"
)

// Separator frames the report
const Separator = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// Title is the report heading
const Title = "🎯 SKILL ACTIVATION CHECK"

// IntentsLabel heads the intent section
const IntentsLabel = "🧭 DETECTED INTENTS"

// TierLabels are the section headings of each priority tier
var TierLabels = map[rules.Priority]string{
	rules.PriorityCritical: "⚠️  CRITICAL SKILLS (REQUIRED)",
	rules.PriorityHigh:     "📚 RECOMMENDED SKILLS",
	rules.PriorityMedium:   "💡 SUGGESTED SKILLS",
	rules.PriorityLow:      "📌 OPTIONAL SKILLS",
}

// Directive lines closing the report
const (
	DirectiveSkills  = "ACTION: Use Skill tool BEFORE responding"
	DirectiveIntents = "ACTION: Consult the matched agents BEFORE responding"
	DirectiveBoth    = "ACTION: Consult the matched agents and use Skill tool BEFORE responding"
)

// Render formats the report. It returns "" when there is nothing to report.
func Render(intents []intent.Match, skills []matcher.SkillMatch) string {
	if len(intents) == 0 && len(skills) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(Separator + "\n")
	b.WriteString(Title + "\n")
	b.WriteString(Separator + "\n\n")

	if len(intents) > 0 {
		writeIntents(&b, intents)
	}

	for _, tier := range rules.Priorities {
		group := inTier(skills, tier)
		if len(group) == 0 {
			continue
		}
		b.WriteString(TierLabels[tier] + ":\n")
		for _, s := range group {
			b.WriteString("  → " + s.Rule.Name + describe(s.Rule.Description) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(directive(len(intents) > 0, len(skills) > 0) + "\n")
	b.WriteString(Separator + "\n")
	return b.String()
}

// Write renders the report to w. Nothing is written for an empty report.
func Write(w io.Writer, intents []intent.Match, skills []matcher.SkillMatch) error {
	out := Render(intents, skills)
	if out == "" {
		return nil
	}
	if _, err := io.WriteString(w, out); err != nil {
		return errors.Wrap(err, "failed to write activation report")
	}
	return nil
}

func writeIntents(b *strings.Builder, intents []intent.Match) {
	b.WriteString(IntentsLabel + ":\n")
	for _, m := range intents {
		def := m.Definition
		b.WriteString("  → " + def.Name + "\n")
		b.WriteString("     agent:  " + def.Agent + "\n")
		if def.HasSkill() {
			b.WriteString("     skill:  " + def.Skill + "\n")
		}
		b.WriteString("     output: " + def.OutputPath + "\n")
	}
	b.WriteString("\n")
}

func inTier(skills []matcher.SkillMatch, tier rules.Priority) []matcher.SkillMatch {
	var out []matcher.SkillMatch
	for _, s := range skills {
		if s.Rule.Priority == tier {
			out = append(out, s)
		}
	}
	return out
}

// describe returns the description suffix of a skill entry
func describe(description string) string {
	if description == "" {
		return ""
	}
	return " — " + textmatch.Truncate(textmatch.FirstLine(description), rules.DescriptionWidth)
}

func directive(hasIntents, hasSkills bool) string {
	switch {
	case hasIntents && hasSkills:
		return DirectiveBoth
	case hasIntents:
		return DirectiveIntents
	default:
		return DirectiveSkills
	}
}
