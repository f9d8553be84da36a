package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/hashicorp/go-multierror"

	"github.com/jingkaihe/skillrouter/pkg/textmatch"
)

// DescriptionWidth is the number of characters of a description's first line
// shown in an activation report
const DescriptionWidth = 60

// PatternOptions are the regexp2 options intent patterns are compiled with
const PatternOptions = regexp2.ECMAScript | regexp2.IgnoreCase

// Severity ranks a lint finding
type Severity string

// Finding severities
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a problem found in one skill rule, or in the document as a whole
// when Skill is empty
type Finding struct {
	Skill    string   `json:"skill" yaml:"skill"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
}

func (f Finding) Error() string {
	if f.Skill == "" {
		return f.Message
	}
	return fmt.Sprintf("%s: %s", f.Skill, f.Message)
}

// Findings is the result of a lint pass
type Findings []Finding

// Errors returns the error-severity findings
func (fs Findings) Errors() Findings {
	return fs.filter(SeverityError)
}

// Warnings returns the warning-severity findings
func (fs Findings) Warnings() Findings {
	return fs.filter(SeverityWarning)
}

func (fs Findings) filter(sev Severity) Findings {
	var out Findings
	for _, f := range fs {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

// Err combines the error-severity findings, or returns nil when there are none
func (fs Findings) Err() error {
	var result *multierror.Error
	for _, f := range fs.Errors() {
		result = multierror.Append(result, f)
	}
	return result.ErrorOrNil()
}

// Lint checks rules for problems the matcher tolerates silently at hook time:
// unknown priorities, inert rules, empty or duplicate keywords, and intent
// patterns that do not compile.
func Lint(rules []SkillRule) Findings {
	var findings Findings
	add := func(skill string, sev Severity, format string, args ...any) {
		findings = append(findings, Finding{Skill: skill, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	for _, r := range rules {
		if !r.Priority.Valid() {
			switch folded := Priority(strings.ToLower(strings.TrimSpace(string(r.Priority)))); {
			case r.Priority == "":
				add(r.Name, SeverityError, "missing priority; the skill is never shown when it matches")
			case folded.Valid():
				add(r.Name, SeverityError, "unknown priority %q (did you mean %q?); the skill is never shown when it matches", r.Priority, folded)
			default:
				add(r.Name, SeverityError, "unknown priority %q; the skill is never shown when it matches", r.Priority)
			}
		}

		if r.Inert() {
			add(r.Name, SeverityWarning, "no keywords or intent patterns; the rule never matches")
		}

		seen := make(map[string]bool)
		for i, kw := range r.Triggers.Keywords {
			if strings.TrimSpace(kw) == "" {
				add(r.Name, SeverityError, "keyword #%d is empty and matches every prompt", i+1)
				continue
			}
			lower := textmatch.Lower(kw)
			if seen[lower] {
				add(r.Name, SeverityWarning, "duplicate keyword %q", kw)
			}
			seen[lower] = true
		}

		for i, pattern := range r.Triggers.IntentPatterns {
			if _, err := regexp2.Compile(pattern, PatternOptions); err != nil {
				add(r.Name, SeverityError, "intent pattern #%d %q does not compile: %v", i+1, pattern, err)
			}
		}

		if first := textmatch.FirstLine(r.Description); utf8.RuneCountInString(first) > DescriptionWidth {
			add(r.Name, SeverityWarning, "description first line is %d characters and will be cut to %d",
				utf8.RuneCountInString(first), DescriptionWidth)
		}
	}

	return findings
}

// CheckSkills reports rules whose skill has no SKILL.md among the discovered
// skill names
func CheckSkills(rules []SkillRule, discovered map[string]bool) Findings {
	var findings Findings
	for _, r := range rules {
		if !discovered[r.Name] {
			findings = append(findings, Finding{
				Skill:    r.Name,
				Severity: SeverityError,
				Message:  "no SKILL.md with a matching name was found",
			})
		}
	}
	return findings
}
