// Package rules loads skill activation rules from a skill-rules.json document.
//
// The document maps skill names to a priority tier, an optional description and
// prompt triggers (keywords and intent patterns). Rules keep the order in which
// they appear in the document, since that order is the evaluation order of the
// matcher and the display order inside a priority tier.
package rules

// Priority is the tier a matched skill is surfaced under
type Priority string

// Priority tiers, from most to least prominent
const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Priorities lists the tiers in display order
var Priorities = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is one of the known tiers. Tiers are compared
// exactly: "High" is not a tier, and a matched skill with it is not displayed.
func (p Priority) Valid() bool {
	return p.Rank() >= 0
}

// Rank returns the display position of p, or -1 for an unknown tier
func (p Priority) Rank() int {
	for i, known := range Priorities {
		if p == known {
			return i
		}
	}
	return -1
}

// Triggers are the prompt conditions that activate a skill
type Triggers struct {
	Keywords       []string `json:"keywords,omitempty" yaml:"keywords,omitempty" jsonschema:"title=Keywords,description=Case-insensitive substrings of the prompt"`
	IntentPatterns []string `json:"intentPatterns,omitempty" yaml:"intentPatterns,omitempty" jsonschema:"title=Intent Patterns,description=Case-insensitive ECMAScript regular expressions tested against the prompt"`
}

// Empty reports whether no trigger is declared
func (t Triggers) Empty() bool {
	return len(t.Keywords) == 0 && len(t.IntentPatterns) == 0
}

// SkillRule is one skill entry of the rules document
type SkillRule struct {
	Name        string   `json:"name" yaml:"name"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Triggers    Triggers `json:"triggers" yaml:"triggers"`
}

// Inert reports whether the rule can never match
func (r SkillRule) Inert() bool {
	return r.Triggers.Empty()
}
