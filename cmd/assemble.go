/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clinmicro/evtyper/assembly"
	"github.com/clinmicro/evtyper/pipeline"
	"github.com/clinmicro/evtyper/utils"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble <ticket> <sample>",
	Short: "Assemble a sample's host-removed reads with rnaviralSPAdes",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		ticket, sample := args[0], args[1]

		exitOn(utils.CheckDeps("spades.py"))
		exitOn(pipeline.MakeSkeleton(cfg, ticket))
		logger, closeLog, err := utils.NewRunLogger(utils.RunLogPath(cfg, ticket))
		exitOn(err)
		defer closeLog()

		exitOn(assembly.Run(cfg, logger, ticket, sample))
	},
}

func init() {
	rootCmd.AddCommand(assembleCmd)
}
