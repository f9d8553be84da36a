// Package router runs a prompt through the intent classifier and the skill
// rule matcher and combines both outcomes into one result.
package router

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jingkaihe/skillrouter/pkg/intent"
	"github.com/jingkaihe/skillrouter/pkg/logger"
	"github.com/jingkaihe/skillrouter/pkg/matcher"
	"github.com/jingkaihe/skillrouter/pkg/report"
)

// Result is the routing outcome of one prompt
type Result struct {
	Prompt  string
	Intents []intent.Match
	Skills  []matcher.SkillMatch
}

// Empty reports whether nothing matched
func (r Result) Empty() bool {
	return len(r.Intents) == 0 && len(r.Skills) == 0
}

// Report renders the activation report, "" when nothing matched
func (r Result) Report() string {
	return report.Render(r.Intents, r.Skills)
}

// Router classifies prompts against a vocabulary and a set of skill rules
type Router struct {
	vocabulary intent.Vocabulary
	matcher    *matcher.Matcher
}

// Option is a function that configures a Router
type Option func(*Router) error

// WithMatcher sets the skill rule matcher
func WithMatcher(m *matcher.Matcher) Option {
	return func(r *Router) error {
		if m == nil {
			return errors.New("matcher cannot be nil")
		}
		r.matcher = m
		return nil
	}
}

// New creates a Router. Without options it uses the built-in vocabulary and a
// matcher with no rules.
func New(opts ...Option) (*Router, error) {
	r := &Router{vocabulary: intent.Default()}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.matcher == nil {
		m, err := matcher.New()
		if err != nil {
			return nil, errors.Wrap(err, "failed to create matcher")
		}
		r.matcher = m
	}

	return r, nil
}

// Matcher returns the skill rule matcher in use
func (r *Router) Matcher() *matcher.Matcher {
	return r.matcher
}

// Route classifies the prompt. The two stages are independent: unavailable
// skill rules leave the intents untouched.
func (r *Router) Route(ctx context.Context, prompt string) Result {
	result := Result{
		Prompt:  prompt,
		Intents: r.vocabulary.Classify(prompt),
		Skills:  r.matcher.Match(ctx, prompt),
	}

	logger.G(ctx).
		WithField("intents", intentNames(result.Intents)).
		WithField("skills", matcher.Names(result.Skills)).
		Debug("prompt routed")

	return result
}

func intentNames(matches []intent.Match) []string {
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Definition.Name)
	}
	return names
}
