package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/agentkit"
	"github.com/hupe1980/agentkit/config"
)

var (
	runTools   []string
	runSession string
	runShow    bool
)

var runCmd = &cobra.Command{
	Use:   "run <goal>",
	Short: "Run one plan-execute-summarize cycle for a goal",
	Long: `Run takes a natural-language goal, plans which tools to invoke, runs
the plan and prints the model's summary of the collected results.

Failed tool calls do not abort the cycle; their results are marked
unavailable and the summary works from what succeeded.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		kit, cleanup, err := buildKit(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		goal := strings.Join(args, " ")

		result, err := kit.Run(ctx, goal, func(o *agentkit.RunOptions) {
			o.EnabledTools = runTools
			o.SessionID = runSession
		})
		if err != nil {
			return err
		}

		if runShow {
			fmt.Println("Plan:")
			fmt.Print(result.Plan)
			fmt.Println()
			for _, res := range result.Report.Results {
				status := "ok"
				if res.Failed() {
					status = res.Err.Error()
				}
				fmt.Printf("%s -> %s (%s)\n", res.Step, status, res.Elapsed.Round(time.Millisecond))
			}
			fmt.Println()
		}

		fmt.Println(result.Summary)
		return nil
	},
}

func init() {
	runCmd.Flags().StringSliceVar(&runTools, "tools", nil, "restrict the cycle to these tools (default: all registered)")
	runCmd.Flags().StringVar(&runSession, "session", "default", "session id for conversation memory")
	runCmd.Flags().BoolVar(&runShow, "show-plan", false, "print the plan and per-step outcomes before the summary")
}
