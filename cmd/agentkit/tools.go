package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/agentkit/config"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the registered tools",
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

		for _, info := range kit.Registry().Describe() {
			fmt.Printf("%-16s %s\n", info.Name, info.Description)
		}
		return nil
	},
}
