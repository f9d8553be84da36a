package main

import (
	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillrouter/pkg/hooks"
)

var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"user-prompt-submit"},
	Short:   "Answer a UserPromptSubmit hook",
	Long: `Read a UserPromptSubmit hook payload ({"prompt": "..."}) from stdin and print the
activation report to stdout. Diagnostics go to stderr. The command always exits
0 so a broken rules file or payload never blocks the prompt.`,
	Args: cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{
		UnknownFlags: true,
	},
	Run: func(cmd *cobra.Command, _ []string) {
		runHook(cmd)
	},
}

func runHook(cmd *cobra.Command) {
	hooks.RunUserPromptSubmit(cmd.Context(), newRouter, cmd.InOrStdin(), cmd.OutOrStdout())
}
