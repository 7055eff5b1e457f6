/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clinmicro/evtyper/pipeline"
	"github.com/clinmicro/evtyper/search"
	"github.com/clinmicro/evtyper/utils"
)

var blastCmd = &cobra.Command{
	Use:   "blast <ticket> <sample>",
	Short: "Search a sample's assembly against the enterovirus database",
	Long: `Runs blastn with the enterovirus taxid allow-list against the
sample's scaffolds (contigs when no scaffolds exist), finalizes the
comma-separated hit table with the static header line and writes the
per-contig summary CSV.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		ticket, sample := args[0], args[1]

		exitOn(utils.CheckDeps("blastn"))
		exitOn(pipeline.MakeSkeleton(cfg, ticket))
		logger, closeLog, err := utils.NewRunLogger(utils.RunLogPath(cfg, ticket))
		exitOn(err)
		defer closeLog()

		exitOn(search.Run(cfg, logger, ticket, sample))
	},
}

func init() {
	rootCmd.AddCommand(blastCmd)
}
