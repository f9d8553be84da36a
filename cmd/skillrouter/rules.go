package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillrouter/pkg/presenter"
	"github.com/jingkaihe/skillrouter/pkg/rules"
	"github.com/jingkaihe/skillrouter/pkg/skills"
	"github.com/jingkaihe/skillrouter/pkg/textmatch"
)

type RulesListConfig struct {
	Filter string
	Output string
}

func NewRulesListConfig() *RulesListConfig {
	return &RulesListConfig{
		Filter: "",
		Output: outputText,
	}
}

type RulesCheckConfig struct {
	SkillsDir  string
	PluginRoot string
}

func NewRulesCheckConfig() *RulesCheckConfig {
	return &RulesCheckConfig{
		SkillsDir:  "",
		PluginRoot: "",
	}
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate skill-rules.json",
	Long:  `List, validate and watch the skill rules document used by the hook.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skill rules in evaluation order",
	Long: `List the skill rules in the order the hook evaluates them.

Examples:
  skillrouter rules list
  skillrouter rules list --filter 'risk-*'
  skillrouter rules list --output yaml`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getRulesListConfigFromFlags(cmd)
		if err := listRules(cmd, config); err != nil {
			presenter.Error(err, "Failed to list skill rules")
			os.Exit(1)
		}
	},
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate skill-rules.json",
	Long: `Validate the rules document against its JSON schema and lint every rule:
unknown priorities, rules without triggers, empty or duplicate keywords,
intent patterns that do not compile and overlong descriptions.

Every rule must also have a SKILL.md with the same name in the skills
directory: --skills-dir when given, otherwise <plugin root>/skills when a
plugin root is configured. Exits 1 when any error is found.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getRulesCheckConfigFromFlags(cmd)
		path, err := rulesPath(cmd.Context())
		if err != nil {
			presenter.Error(err, "Failed to resolve rules path")
			os.Exit(1)
		}
		findings, err := checkRules(cmd, path, config)
		if err != nil {
			presenter.Error(err, "Failed to check skill rules")
			os.Exit(1)
		}
		if len(findings.Errors()) > 0 {
			os.Exit(1)
		}
	},
}

var rulesSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of skill-rules.json",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		data, err := rules.SchemaJSON()
		if err != nil {
			presenter.Error(err, "Failed to generate schema")
			os.Exit(1)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	},
}

func init() {
	listDefaults := NewRulesListConfig()
	rulesListCmd.Flags().StringP("filter", "f", listDefaults.Filter, "Only list skills whose name matches this glob")
	rulesListCmd.Flags().StringP("output", "o", listDefaults.Output, "Output format (text, json or yaml)")

	checkDefaults := NewRulesCheckConfig()
	rulesCheckCmd.Flags().String("skills-dir", checkDefaults.SkillsDir, "Directory of skill folders to cross-check rule names against (default: <plugin root>/skills)")
	rulesWatchCmd.Flags().String("skills-dir", checkDefaults.SkillsDir, "Directory of skill folders to cross-check rule names against (default: <plugin root>/skills)")

	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesCheckCmd)
	rulesCmd.AddCommand(rulesSchemaCmd)
	rulesCmd.AddCommand(rulesWatchCmd)
}

func getRulesListConfigFromFlags(cmd *cobra.Command) *RulesListConfig {
	config := NewRulesListConfig()
	if filter, err := cmd.Flags().GetString("filter"); err == nil {
		config.Filter = filter
	}
	if output, err := cmd.Flags().GetString("output"); err == nil {
		config.Output = output
	}
	return config
}

func getRulesCheckConfigFromFlags(cmd *cobra.Command) *RulesCheckConfig {
	config := NewRulesCheckConfig()
	if dir, err := cmd.Flags().GetString("skills-dir"); err == nil {
		config.SkillsDir = dir
	}
	config.PluginRoot = configuredPluginRoot()
	return config
}

// filterRules keeps the rules whose name matches pattern, in order
func filterRules(all []rules.SkillRule, pattern string) ([]rules.SkillRule, error) {
	if pattern == "" {
		return all, nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid filter %q", pattern)
	}

	var filtered []rules.SkillRule
	for _, r := range all {
		if g.Match(r.Name) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func listRules(cmd *cobra.Command, config *RulesListConfig) error {
	if err := validateOutput(config.Output, outputText, outputJSON, outputYAML); err != nil {
		return err
	}

	set, err := loadRules(cmd.Context())
	if err != nil {
		return err
	}

	list, err := filterRules(set.Rules(), config.Filter)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch config.Output {
	case outputJSON:
		return writeJSON(w, nonNilRules(list))
	case outputYAML:
		return writeYAML(w, nonNilRules(list))
	}

	if len(list) == 0 {
		newPresenter(cmd).Info("No skill rules found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SKILL\tPRIORITY\tKEYWORDS\tPATTERNS\tDESCRIPTION")
	for _, r := range list {
		priority := string(r.Priority)
		if !r.Priority.Valid() {
			priority = fmt.Sprintf("%s (hidden)", orDash(priority))
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", r.Name, priority,
			len(r.Triggers.Keywords), len(r.Triggers.IntentPatterns), orDash(textmatch.FirstLine(r.Description)))
	}
	return tw.Flush()
}

func nonNilRules(list []rules.SkillRule) []rules.SkillRule {
	if list == nil {
		return []rules.SkillRule{}
	}
	return list
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// checkRules validates the document at path and prints every finding followed
// by a summary
func checkRules(cmd *cobra.Command, path string, config *RulesCheckConfig) (rules.Findings, error) {
	var opts []skills.Option
	switch {
	case config.SkillsDir != "":
		opts = append(opts, skills.WithSkillDirs(config.SkillsDir))
	case config.PluginRoot != "":
		opts = append(opts, skills.WithPluginRoot(config.PluginRoot))
	}

	var discovered map[string]bool
	if len(opts) > 0 {
		discovery, err := skills.NewDiscovery(opts...)
		if err != nil {
			return nil, err
		}
		found, err := discovery.DiscoverSkills()
		if err != nil {
			return nil, err
		}
		discovered = skills.NameSet(found)
	}

	findings, err := rules.CheckFile(path, discovered)
	if err != nil {
		return nil, err
	}

	p := newPresenter(cmd)
	for _, f := range findings.Errors() {
		p.Error(f, path)
	}
	for _, f := range findings.Warnings() {
		p.Warning(fmt.Sprintf("%s: %s", path, f.Error()))
	}
	p.Summary(path, len(findings.Errors()), len(findings.Warnings()))

	return findings, nil
}
