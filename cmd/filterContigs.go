/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clinmicro/evtyper/contig"
	"github.com/clinmicro/evtyper/pipeline"
	"github.com/clinmicro/evtyper/utils"
)

var filterContigsCmd = &cobra.Command{
	Use:   "filterContigs <ticket> <sample>",
	Short: "Extract hit contigs and apply the length and coverage filters",
	Long: `Produces the three nested FASTA files for a sample:
<sample>.fasta (all contigs with a hit), <sample>_200bp.fasta (at least
200 bp) and <sample>_200bp_minCov50.fasta (coverage above 50).`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		ticket, sample := args[0], args[1]

		exitOn(pipeline.MakeSkeleton(cfg, ticket))
		logger, closeLog, err := utils.NewRunLogger(utils.RunLogPath(cfg, ticket))
		exitOn(err)
		defer closeLog()

		exitOn(contig.Run(cfg, logger, ticket, sample))
	},
}

func init() {
	rootCmd.AddCommand(filterContigsCmd)
}
