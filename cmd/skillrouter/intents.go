package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillrouter/pkg/intent"
	"github.com/jingkaihe/skillrouter/pkg/presenter"
)

type IntentsConfig struct {
	Output string
}

func NewIntentsConfig() *IntentsConfig {
	return &IntentsConfig{
		Output: outputText,
	}
}

var intentsCmd = &cobra.Command{
	Use:   "intents [name...]",
	Short: "List the built-in intent vocabulary",
	Long: `List the canonical intents in classification order with their agent, skill, output path and keywords.

Examples:
  skillrouter intents
  skillrouter intents "리스크 평가" --output yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		config := getIntentsConfigFromFlags(cmd)
		if err := listIntents(cmd, args, config); err != nil {
			presenter.Error(err, "Failed to list intents")
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewIntentsConfig()
	intentsCmd.Flags().StringP("output", "o", defaults.Output, "Output format (text, json or yaml)")
}

func getIntentsConfigFromFlags(cmd *cobra.Command) *IntentsConfig {
	config := NewIntentsConfig()
	if output, err := cmd.Flags().GetString("output"); err == nil {
		config.Output = output
	}
	return config
}

// selectIntents returns the named intents in the order given, or the whole
// vocabulary when no name is given
func selectIntents(vocab intent.Vocabulary, names []string) (intent.Vocabulary, error) {
	if len(names) == 0 {
		return vocab, nil
	}

	selected := make(intent.Vocabulary, 0, len(names))
	for _, name := range names {
		def, ok := vocab.Lookup(name)
		if !ok {
			return nil, errors.Errorf("unknown intent %q (available: %s)", name, strings.Join(vocab.Names(), ", "))
		}
		selected = append(selected, def)
	}
	return selected, nil
}

func listIntents(cmd *cobra.Command, names []string, config *IntentsConfig) error {
	if err := validateOutput(config.Output, outputText, outputJSON, outputYAML); err != nil {
		return err
	}

	vocab, err := selectIntents(intent.Default(), names)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	switch config.Output {
	case outputJSON:
		return writeJSON(w, vocab)
	case outputYAML:
		return writeYAML(w, vocab)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INTENT\tAGENT\tSKILL\tOUTPUT\tKEYWORDS")
	for _, def := range vocab {
		skill := def.Skill
		if !def.HasSkill() {
			skill = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", def.Name, def.Agent, skill, def.OutputPath, strings.Join(def.Keywords, ", "))
	}
	return tw.Flush()
}
