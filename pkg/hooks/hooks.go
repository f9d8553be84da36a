// Package hooks implements the prompt hook protocol: the host writes a JSON
// payload to stdin before a prompt reaches the model, and whatever the hook
// prints to stdout is added to the model context.
//
// A hook must never get in the way of the prompt. Every failure is logged to
// stderr and turned into "no activation".
package hooks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jingkaihe/skillrouter/pkg/logger"
	"github.com/jingkaihe/skillrouter/pkg/report"
	"github.com/jingkaihe/skillrouter/pkg/router"
)

// HookType represents the host lifecycle event a hook answers
type HookType string

// HookTypeUserPromptSubmit fires when the user submits a prompt
const HookTypeUserPromptSubmit HookType = "UserPromptSubmit"

// RouterFunc builds the router of one invocation
type RouterFunc func(ctx context.Context) *router.Router

// RunUserPromptSubmit answers one UserPromptSubmit invocation. It reads the
// payload from stdin, builds the router with newRouter, routes the prompt and
// writes the activation report to stdout. Nothing is written when nothing
// matched or when anything failed, including a panic while building the router.
func RunUserPromptSubmit(ctx context.Context, newRouter RouterFunc, stdin io.Reader, stdout io.Writer) {
	ctx = logger.WithFields(ctx, logrus.Fields{
		"invocation": uuid.NewString(),
		"event":      HookTypeUserPromptSubmit,
	})

	defer func() {
		if r := recover(); r != nil {
			logger.G(ctx).WithField("panic", r).Error("prompt hook panicked, skipping activation")
		}
	}()

	if err := runUserPromptSubmit(ctx, newRouter, stdin, stdout); err != nil {
		logger.G(ctx).WithError(err).Error("prompt hook failed, skipping activation")
	}
}

func runUserPromptSubmit(ctx context.Context, newRouter RouterFunc, stdin io.Reader, stdout io.Writer) error {
	payload, err := DecodeUserPromptSubmit(stdin)
	if err != nil {
		return err
	}
	payload.log(ctx)

	res := newRouter(ctx).Route(ctx, payload.PromptText())
	return report.Write(stdout, res.Intents, res.Skills)
}
