// Package intent classifies a prompt against a fixed vocabulary of canonical
// economic-analysis intents. Each intent names the agent expected to handle it,
// an optional skill bundle and the conventional location of its output.
package intent

import "github.com/jingkaihe/skillrouter/pkg/textmatch"

// Definition is one entry of the canonical intent vocabulary
type Definition struct {
	Name       string   `json:"name" yaml:"name"`
	Keywords   []string `json:"keywords" yaml:"keywords"`
	Agent      string   `json:"agent" yaml:"agent"`
	Skill      string   `json:"skill,omitempty" yaml:"skill,omitempty"`
	OutputPath string   `json:"outputPath" yaml:"outputPath"`
}

// HasSkill reports whether the intent references a skill
func (d Definition) HasSkill() bool {
	return d.Skill != ""
}

// Match is an intent that fired for a prompt
type Match struct {
	Definition Definition
	Prompt     string
}

// Vocabulary is an ordered set of intent definitions.
// Declaration order is the order matches are reported in.
type Vocabulary []Definition

// Classify returns every intent with at least one keyword occurring in the
// prompt, ignoring case. An intent is reported at most once no matter how many
// of its keywords occur, and intents never suppress one another.
func (v Vocabulary) Classify(prompt string) []Match {
	lower := textmatch.Lower(prompt)

	var matches []Match
	for _, def := range v {
		if _, ok := textmatch.FirstKeyword(lower, def.Keywords); ok {
			matches = append(matches, Match{Definition: def, Prompt: prompt})
		}
	}
	return matches
}

// Lookup returns the definition with the given name
func (v Vocabulary) Lookup(name string) (Definition, bool) {
	for _, def := range v {
		if def.Name == name {
			return def, true
		}
	}
	return Definition{}, false
}

// Names returns the intent names in declaration order
func (v Vocabulary) Names() []string {
	names := make([]string, 0, len(v))
	for _, def := range v {
		names = append(names, def.Name)
	}
	return names
}
