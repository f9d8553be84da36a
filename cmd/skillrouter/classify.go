package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jingkaihe/skillrouter/pkg/presenter"
	"github.com/jingkaihe/skillrouter/pkg/router"
	"github.com/jingkaihe/skillrouter/pkg/rules"
)

// Output formats of the listing commands
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

type ClassifyConfig struct {
	Output string
}

func NewClassifyConfig() *ClassifyConfig {
	return &ClassifyConfig{
		Output: outputText,
	}
}

var classifyCmd = &cobra.Command{
	Use:   "classify [prompt...]",
	Short: "Show the intents and skills a prompt activates",
	Long: `Classify a prompt and show what the hook would inject. The prompt is taken from
the arguments, or from stdin when no arguments are given.

Examples:
  skillrouter classify "요즘 경기 침체 시그널이 보이나요?"
  echo "What does the VIX say?" | skillrouter classify --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		config := getClassifyConfigFromFlags(cmd)
		if err := classifyPrompt(cmd, args, config); err != nil {
			presenter.Error(err, "Failed to classify prompt")
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewClassifyConfig()
	classifyCmd.Flags().StringP("output", "o", defaults.Output, "Output format (text, json or yaml)")
}

func getClassifyConfigFromFlags(cmd *cobra.Command) *ClassifyConfig {
	config := NewClassifyConfig()
	if output, err := cmd.Flags().GetString("output"); err == nil {
		config.Output = output
	}
	return config
}

// classifyResult is the machine-readable view of a routing result
type classifyResult struct {
	Prompt  string       `json:"prompt" yaml:"prompt"`
	Intents []intentView `json:"intents" yaml:"intents"`
	Skills  []skillView  `json:"skills" yaml:"skills"`
	Rules   rulesState   `json:"rules" yaml:"rules"`
}

type intentView struct {
	Name       string `json:"name" yaml:"name"`
	Agent      string `json:"agent" yaml:"agent"`
	Skill      string `json:"skill,omitempty" yaml:"skill,omitempty"`
	OutputPath string `json:"outputPath" yaml:"outputPath"`
}

type skillView struct {
	Name        string         `json:"name" yaml:"name"`
	Priority    rules.Priority `json:"priority" yaml:"priority"`
	Shown       bool           `json:"shown" yaml:"shown"`
	MatchType   string         `json:"matchType" yaml:"matchType"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
}

type rulesState struct {
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
	Available bool   `json:"available" yaml:"available"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

func newClassifyResult(rt *router.Router, res router.Result) classifyResult {
	out := classifyResult{
		Prompt:  res.Prompt,
		Intents: make([]intentView, 0, len(res.Intents)),
		Skills:  make([]skillView, 0, len(res.Skills)),
	}
	for _, m := range res.Intents {
		out.Intents = append(out.Intents, intentView{
			Name:       m.Definition.Name,
			Agent:      m.Definition.Agent,
			Skill:      m.Definition.Skill,
			OutputPath: m.Definition.OutputPath,
		})
	}
	for _, m := range res.Skills {
		out.Skills = append(out.Skills, skillView{
			Name:        m.Rule.Name,
			Priority:    m.Rule.Priority,
			Shown:       m.Rule.Priority.Valid(),
			MatchType:   string(m.MatchType),
			Description: m.Rule.Description,
		})
	}

	set := rt.Matcher().RuleSet()
	out.Rules = rulesState{Path: set.Path(), Available: set.Available()}
	if err := set.Err(); err != nil {
		out.Rules.Error = err.Error()
	}
	return out
}

// readPrompt joins args, or reads stdin when there are none
func readPrompt(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	stdin := cmd.InOrStdin()
	if !stdinIsPipe(stdin) {
		return "", errors.New("no prompt given: pass it as arguments or pipe it on stdin")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.Wrap(err, "failed to read prompt from stdin")
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func classifyPrompt(cmd *cobra.Command, args []string, config *ClassifyConfig) error {
	if err := validateOutput(config.Output, outputText, outputJSON, outputYAML); err != nil {
		return err
	}

	prompt, err := readPrompt(cmd, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	rt := newRouter(ctx)
	res := rt.Route(ctx, prompt)
	w := cmd.OutOrStdout()

	switch config.Output {
	case outputJSON:
		return writeJSON(w, newClassifyResult(rt, res))
	case outputYAML:
		return writeYAML(w, newClassifyResult(rt, res))
	}

	p := newPresenter(cmd)
	if set := rt.Matcher().RuleSet(); !set.Available() {
		p.Warning(fmt.Sprintf("skill rules unavailable: %v", set.Err()))
	}
	if res.Empty() {
		p.Info("No intents or skills matched.")
		return nil
	}
	_, err = io.WriteString(w, res.Report())
	return errors.Wrap(err, "failed to write report")
}

func validateOutput(output string, allowed ...string) error {
	for _, a := range allowed {
		if output == a {
			return nil
		}
	}
	return errors.Errorf("unsupported output format %q (use %s)", output, strings.Join(allowed, ", "))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "failed to encode JSON")
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "failed to encode YAML")
	}
	return errors.Wrap(enc.Close(), "failed to encode YAML")
}
