/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clinmicro/evtyper/pipeline"
	"github.com/clinmicro/evtyper/prepare"
	"github.com/clinmicro/evtyper/utils"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare <ticket>",
	Short: "Copy a ticket into the working area, merge lanes, write the samplesheet",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		ticket := args[0]

		exitOn(pipeline.MakeSkeleton(cfg, ticket))
		logger, closeLog, err := utils.NewRunLogger(utils.RunLogPath(cfg, ticket))
		exitOn(err)
		defer closeLog()

		exitOn(prepare.InputData(cfg, logger, ticket))
	},
}

func init() {
	rootCmd.AddCommand(prepareCmd)
}
