// Package matcher decides which skill rules fire for a prompt.
//
// Every rule is checked in document order with two sub-checks: keywords first,
// then intent patterns. Keywords are case-insensitive substrings; intent
// patterns are case-insensitive ECMAScript regular expressions evaluated
// against the prompt as typed. A pattern that does not compile or that times
// out only fails itself.
package matcher

import (
	"context"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/pkg/errors"

	"github.com/jingkaihe/skillrouter/pkg/logger"
	"github.com/jingkaihe/skillrouter/pkg/rules"
	"github.com/jingkaihe/skillrouter/pkg/textmatch"
)

// MatchType records which trigger class fired first for a rule
type MatchType string

// Match types
const (
	MatchTypeKeyword       MatchType = "keyword"
	MatchTypeIntentPattern MatchType = "intent-pattern"
)

// DefaultPatternTimeout bounds a single intent pattern evaluation
const DefaultPatternTimeout = 100 * time.Millisecond

// SkillMatch is a skill rule that fired for a prompt
type SkillMatch struct {
	Rule      rules.SkillRule
	MatchType MatchType
}

// Matcher evaluates skill rules against prompts
type Matcher struct {
	ruleSet        rules.RuleSet
	patternTimeout time.Duration
}

// Option is a function that configures a Matcher
type Option func(*Matcher) error

// WithRulesPath loads the rules document at path. A document that cannot be
// loaded leaves the matcher with no rules; it is not an option error.
func WithRulesPath(path string) Option {
	return func(m *Matcher) error {
		m.ruleSet = rules.Load(path)
		return nil
	}
}

// WithRuleSet uses an already loaded rule set
func WithRuleSet(set rules.RuleSet) Option {
	return func(m *Matcher) error {
		m.ruleSet = set
		return nil
	}
}

// WithPatternTimeout sets the time budget of a single intent pattern match
func WithPatternTimeout(d time.Duration) Option {
	return func(m *Matcher) error {
		if d <= 0 {
			return errors.Errorf("pattern timeout must be positive, got %s", d)
		}
		m.patternTimeout = d
		return nil
	}
}

// New creates a Matcher. Without options it has no rules and matches nothing.
func New(opts ...Option) (*Matcher, error) {
	m := &Matcher{
		ruleSet:        rules.Unavailable("", errors.New("no rules configured")),
		patternTimeout: DefaultPatternTimeout,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RuleSet returns the rules the matcher evaluates
func (m *Matcher) RuleSet() rules.RuleSet {
	return m.ruleSet
}

// Match returns the rules that fire for prompt, in document order
func (m *Matcher) Match(ctx context.Context, prompt string) []SkillMatch {
	if !m.ruleSet.Available() {
		logger.G(ctx).WithError(m.ruleSet.Err()).Debug("skill rules unavailable, no skills matched")
		return nil
	}

	lower := textmatch.Lower(prompt)

	var matches []SkillMatch
	for _, rule := range m.ruleSet.Rules() {
		if matchType, ok := m.matchRule(ctx, rule, prompt, lower); ok {
			matches = append(matches, SkillMatch{Rule: rule, MatchType: matchType})
		}
	}
	return matches
}

func (m *Matcher) matchRule(ctx context.Context, rule rules.SkillRule, prompt, lower string) (MatchType, bool) {
	if kw, ok := textmatch.FirstKeyword(lower, rule.Triggers.Keywords); ok {
		logger.G(ctx).WithField("skill", rule.Name).WithField("keyword", kw).Debug("skill matched by keyword")
		return MatchTypeKeyword, true
	}

	for _, pattern := range rule.Triggers.IntentPatterns {
		if m.matchPattern(ctx, rule.Name, pattern, prompt) {
			logger.G(ctx).WithField("skill", rule.Name).WithField("pattern", pattern).Debug("skill matched by intent pattern")
			return MatchTypeIntentPattern, true
		}
	}

	return "", false
}

// matchPattern compiles and runs one intent pattern. Compile errors and
// timeouts are non-matches.
func (m *Matcher) matchPattern(ctx context.Context, skill, pattern, prompt string) bool {
	re, err := regexp2.Compile(pattern, rules.PatternOptions)
	if err != nil {
		logger.G(ctx).WithError(err).WithField("skill", skill).WithField("pattern", pattern).
			Debug("skipping intent pattern that does not compile")
		return false
	}
	re.MatchTimeout = m.patternTimeout

	ok, err := re.MatchString(prompt)
	if err != nil {
		logger.G(ctx).WithError(err).WithField("skill", skill).WithField("pattern", pattern).
			Warn("intent pattern evaluation failed")
		return false
	}
	return ok
}

// Names returns the skill names of matches in order
func Names(matches []SkillMatch) []string {
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Rule.Name)
	}
	return names
}
