package acceptance

import (
	"strings"
	"testing"
)

const rulesDoc = `{
  "skills": {
    "vix-monitor": {
      "priority": "high",
      "description": "Track implied volatility",
      "promptTriggers": {"keywords": ["vix"]}
    },
    "broken": {
      "priority": "low",
      "promptTriggers": {"intentPatterns": ["(unclosed"]}
    }
  }
}`

func TestHook_Report(t *testing.T) {
	root := pluginRoot(t, rulesDoc)

	stdout, _, code := runBinary(t, `{"prompt":"VIX 수준과 리스크를 알려줘"}`, "run", "--plugin-root", root)
	if code != 0 {
		t.Fatalf("run exited with %d", code)
	}
	for _, want := range []string{"🎯 SKILL ACTIVATION CHECK", "  → 리스크 평가", "  → vix-monitor — Track implied volatility"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("report should contain %q. Got:\n%s", want, stdout)
		}
	}
}

func TestHook_RootCommandWithPipedStdin(t *testing.T) {
	root := pluginRoot(t, rulesDoc)

	stdout, _, code := runBinary(t, `{"prompt":"vix"}`, "--plugin-root", root)
	if code != 0 {
		t.Fatalf("root command exited with %d", code)
	}
	if !strings.Contains(stdout, "vix-monitor") {
		t.Errorf("root command should behave like run. Got:\n%s", stdout)
	}
}

func TestHook_AlwaysExitsZero(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{name: "malformed payload", stdin: "not json", args: []string{"run"}},
		{name: "missing rules", stdin: `{"prompt":"What's the weather like today?"}`, args: []string{"run", "--rules", "/nonexistent/skill-rules.json"}},
		{name: "unknown flag", stdin: `{"prompt":"hello"}`, args: []string{"user-prompt-submit", "--unknown-flag"}},
		{name: "bad log level", stdin: `{"prompt":"hello"}`, args: []string{"run", "--log-level", "loud"}},
		{name: "bad flag value", stdin: `{"prompt":"vix"}`, args: []string{"run", "--pattern-timeout=abc"}},
		{name: "flag without value", stdin: `{"prompt":"vix"}`, args: []string{"run", "--rules"}},
		{name: "stray argument on piped root", stdin: `{"prompt":"vix"}`, args: []string{"extra-arg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, code := runBinary(t, tt.stdin, tt.args...)
			if code != 0 {
				t.Fatalf("expected exit 0, got %d", code)
			}
			if stdout != "" {
				t.Errorf("expected no report, got:\n%s", stdout)
			}
		})
	}
}

func TestHook_InvalidPatternTimeoutKeepsPluginRoot(t *testing.T) {
	root := pluginRoot(t, rulesDoc)
	env := []string{"CLAUDE_PLUGIN_ROOT=" + root, "SKILLROUTER_PATTERN_TIMEOUT=zzz"}

	stdout, _, code := runBinaryWithEnv(t, env, `{"prompt":"vix"}`, "run")
	if code != 0 {
		t.Fatalf("run exited with %d", code)
	}
	if !strings.Contains(stdout, "  → vix-monitor — Track implied volatility") {
		t.Errorf("skill rules should still load. Got:\n%s", stdout)
	}
}

func TestRulesCheck_ExitCode(t *testing.T) {
	root := pluginRoot(t, rulesDoc)

	_, stderr, code := runBinary(t, "", "rules", "check", "--plugin-root", root)
	if code != 1 {
		t.Fatalf("expected exit 1 for a broken pattern, got %d", code)
	}
	if !strings.Contains(stderr, "broken: intent pattern #1") {
		t.Errorf("expected the broken pattern to be reported. Got:\n%s", stderr)
	}
}
