/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clinmicro/evtyper/pipeline"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <ticket> <sample>",
	Short: "Run the full typing pipeline for one ticket/sample pair",
	Long: `Runs all six stages in order for one sample: input preparation,
taxprofiler preprocessing, rnaviralSPAdes assembly, blastn search, contig
filtering and report generation.

Each stage skips itself when its output already exists, so re-running
after a partial failure resumes from the first incomplete stage. Do not
launch two runs for the same ticket/sample pair at once; the filesystem
is the only coordination mechanism.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		ticket, sample := args[0], args[1]

		fmt.Printf("Running EV typing for ticket %s, sample %s\n\n", ticket, sample)
		exitOn(pipeline.Run(cfg, ticket, sample))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
