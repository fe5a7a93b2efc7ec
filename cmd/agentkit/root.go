package main

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "agentkit",
	Short: "Plan-execute-summarize agent runner",
	Long: `Agentkit turns a natural-language goal into a tool plan, executes the
plan against web search, Hacker News, Wikipedia, Reddit, GitHub and semantic
code search, and summarizes the collected results with a language model.

Configuration is read from agentkit.yaml (or --config) and AGENTKIT_*
environment variables. Provider credentials such as OPENAI_API_KEY and
ANTHROPIC_API_KEY follow the usual SDK conventions.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: agentkit.yaml in . or $HOME/.agentkit)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(versionCmd)
}
