/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clinmicro/evtyper/pipeline"
	"github.com/clinmicro/evtyper/report"
	"github.com/clinmicro/evtyper/utils"
)

var reportCmd = &cobra.Command{
	Use:   "report <ticket> <sample>",
	Short: "Render the HTML typing report for a sample",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		ticket, sample := args[0], args[1]

		exitOn(pipeline.MakeSkeleton(cfg, ticket))
		logger, closeLog, err := utils.NewRunLogger(utils.RunLogPath(cfg, ticket))
		exitOn(err)
		defer closeLog()

		exitOn(report.Run(cfg, logger, ticket, sample))
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
