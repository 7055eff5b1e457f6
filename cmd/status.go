/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clinmicro/evtyper/pipeline"
)

var statusCmd = &cobra.Command{
	Use:   "status <ticket> <sample>",
	Short: "Show per-stage completion for a ticket/sample from the run log",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		ticket, sample := args[0], args[1]

		status, err := pipeline.StageStatus(cfg, ticket, sample)
		exitOn(err)

		fmt.Printf("Ticket %s, sample %s:\n", ticket, sample)
		for _, name := range pipeline.StageNames {
			state := "pending"
			if status[name] {
				state = "completed"
			}
			fmt.Printf("  %-14s %s\n", name, state)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
