package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jingkaihe/skillrouter/pkg/config"
	"github.com/jingkaihe/skillrouter/pkg/logger"
	"github.com/jingkaihe/skillrouter/pkg/matcher"
	"github.com/jingkaihe/skillrouter/pkg/presenter"
)

func init() {
	if err := config.Init(viper.GetViper()); err != nil {
		logger.L.WithError(err).Warn("failed to initialize configuration, using defaults")
	}
}

var rootCmd = &cobra.Command{
	Use:   "skillrouter",
	Short: "Route prompts to domain intents and skills",
	Long: `skillrouter classifies a user prompt against a fixed vocabulary of economic
analysis intents and a skill-rules.json document, and prints an activation
report naming the agents and skills that should be consulted before answering.

Run with a hook payload piped on stdin it behaves like "skillrouter run", so the
binary can be used directly as a UserPromptSubmit hook command.`,
	SilenceUsage:     true,
	PersistentPreRun: setupLogging,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 && stdinIsPipe(cmd.InOrStdin()) {
			runHook(cmd)
			return
		}
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().String("rules", "", "Path to skill-rules.json (default: <plugin root>/skills/skill-rules.json)")
	rootCmd.PersistentFlags().String("plugin-root", "", "Plugin root directory (default: $CLAUDE_PLUGIN_ROOT, then two levels above the executable)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (panic, fatal, error, warn, info, debug, trace)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text or json)")
	rootCmd.PersistentFlags().Duration("pattern-timeout", matcher.DefaultPatternTimeout, "Time budget of a single intent pattern match")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only print errors from the rules and classify commands")

	bindFlags(rootCmd.PersistentFlags(), map[string]string{
		"rules":           config.KeyRulesPath,
		"plugin-root":     config.KeyPluginRoot,
		"log-level":       config.KeyLogLevel,
		"log-format":      config.KeyLogFormat,
		"pattern-timeout": config.KeyPatternTimeout,
		"quiet":           config.KeyQuiet,
	})

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(intentsCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}

// bindFlags binds each flag to its viper key
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			logger.L.WithError(err).WithField("flag", name).Warn("failed to bind flag")
		}
	}
}

// setupLogging applies the log and output flags. It never fails: a bad level
// keeps the default so the hook path stays silent and exits 0.
func setupLogging(cmd *cobra.Command, _ []string) {
	presenter.SetQuiet(viper.GetBool(config.KeyQuiet))
	logger.SetLogFormat(viper.GetString(config.KeyLogFormat))
	if err := logger.SetLogLevel(viper.GetString(config.KeyLogLevel)); err != nil {
		logger.G(cmd.Context()).WithError(err).Warn("invalid log level, keeping the default")
	}
}

// stdinIsPipe reports whether r carries piped input rather than a terminal
func stdinIsPipe(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// isHookInvocation reports whether cmd answers a hook: the run command, or the
// root command with a payload piped on stdin
func isHookInvocation(cmd *cobra.Command, stdin io.Reader) bool {
	return cmd == runCmd || (cmd == rootCmd && stdinIsPipe(stdin))
}

// exitCode maps the outcome of a command to the process exit status. A hook
// invocation always exits 0, even when its flags or arguments do not parse,
// so a broken hook command line never blocks the prompt.
func exitCode(cmd *cobra.Command, err error, stdin io.Reader) int {
	if err == nil || isHookInvocation(cmd, stdin) {
		return 0
	}
	return 1
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd, err := rootCmd.ExecuteContextC(ctx)
	cancel()
	os.Exit(exitCode(cmd, err, os.Stdin))
}
