package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/jingkaihe/skillrouter/pkg/logger"
)

// UserPromptSubmitPayload is sent by the host on stdin for UserPromptSubmit
// hooks. Only Prompt affects routing; the rest is logged for correlation.
type UserPromptSubmitPayload struct {
	SessionID      string  `json:"session_id,omitempty"`
	TranscriptPath string  `json:"transcript_path,omitempty"`
	CWD            string  `json:"cwd,omitempty"`
	HookEventName  string  `json:"hook_event_name,omitempty"`
	PermissionMode string  `json:"permission_mode,omitempty"`
	Prompt         *string `json:"prompt"`
}

// PromptText returns the prompt, "" when absent
func (p UserPromptSubmitPayload) PromptText() string {
	if p.Prompt == nil {
		return ""
	}
	return *p.Prompt
}

func (p UserPromptSubmitPayload) log(ctx context.Context) {
	logger.G(ctx).
		WithField("session_id", p.SessionID).
		WithField("transcript_path", p.TranscriptPath).
		WithField("cwd", p.CWD).
		WithField("hook_event_name", p.HookEventName).
		WithField("permission_mode", p.PermissionMode).
		WithField("prompt_length", len(p.PromptText())).
		Debug("received prompt hook payload")
}

// DecodeUserPromptSubmit reads a whole payload from r. The payload must be a
// single JSON object with a string prompt.
func DecodeUserPromptSubmit(r io.Reader) (UserPromptSubmitPayload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return UserPromptSubmitPayload{}, errors.Wrap(err, "failed to read hook payload")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return UserPromptSubmitPayload{}, errors.New("hook payload is empty")
	}

	var payload UserPromptSubmitPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return UserPromptSubmitPayload{}, errors.Wrap(err, "failed to unmarshal hook payload")
	}
	if payload.Prompt == nil {
		return UserPromptSubmitPayload{}, errors.New("hook payload has no prompt")
	}

	return payload, nil
}
