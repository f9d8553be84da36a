package rules

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/rogpeppe/go-internal/lockedfile"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SkillConfig is the wire shape of one entry under "skills"
type SkillConfig struct {
	Priority       string    `json:"priority" jsonschema:"title=Priority,enum=critical,enum=high,enum=medium,enum=low"`
	Description    string    `json:"description,omitempty" jsonschema:"title=Description"`
	PromptTriggers *Triggers `json:"promptTriggers,omitempty" jsonschema:"title=Prompt Triggers"`
}

// document is the wire shape of skill-rules.json
type document struct {
	Skills *orderedmap.OrderedMap[string, SkillConfig] `json:"skills"`
}

// RuleSet is the outcome of loading a rules document. A RuleSet that could not
// be loaded is still usable: it is unavailable, carries the cause and holds no
// rules.
type RuleSet struct {
	path  string
	rules []SkillRule
	err   error
}

// NewRuleSet builds an available RuleSet from rules already in memory
func NewRuleSet(rules ...SkillRule) RuleSet {
	return RuleSet{rules: append([]SkillRule(nil), rules...)}
}

// Unavailable builds a RuleSet recording why no rules could be loaded
func Unavailable(path string, err error) RuleSet {
	if err == nil {
		err = errors.New("rules unavailable")
	}
	return RuleSet{path: path, err: err}
}

// Available reports whether the document was read and parsed
func (s RuleSet) Available() bool {
	return s.err == nil
}

// Err returns the reason the rules are unavailable, or nil
func (s RuleSet) Err() error {
	return s.err
}

// Path returns the document path the set was loaded from, if any
func (s RuleSet) Path() string {
	return s.path
}

// Rules returns the rules in document order
func (s RuleSet) Rules() []SkillRule {
	return append([]SkillRule(nil), s.rules...)
}

// Load reads and parses the rules document at path. It never fails: problems
// are reported through the returned set's Err.
func Load(path string) RuleSet {
	if path == "" {
		return Unavailable(path, errors.New("no rules path configured"))
	}

	data, err := lockedfile.Read(path)
	if err != nil {
		return Unavailable(path, errors.Wrapf(err, "failed to read rules file %s", path))
	}

	rules, err := Parse(data)
	if err != nil {
		return Unavailable(path, errors.Wrapf(err, "failed to parse rules file %s", path))
	}

	return RuleSet{path: path, rules: rules}
}

// Parse decodes a rules document, keeping skills in document order
func Parse(data []byte) ([]SkillRule, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "invalid JSON")
	}
	if doc.Skills == nil {
		return nil, errors.New(`missing "skills" object`)
	}

	rules := make([]SkillRule, 0, doc.Skills.Len())
	for pair := doc.Skills.Oldest(); pair != nil; pair = pair.Next() {
		rule := SkillRule{
			Name:        pair.Key,
			Priority:    Priority(pair.Value.Priority),
			Description: pair.Value.Description,
		}
		if pair.Value.PromptTriggers != nil {
			rule.Triggers = *pair.Value.PromptTriggers
		}
		rules = append(rules, rule)
	}

	return rules, nil
}
