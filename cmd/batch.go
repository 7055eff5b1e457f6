/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/clinmicro/evtyper/pipeline"
	"github.com/clinmicro/evtyper/prepare"
	"github.com/clinmicro/evtyper/utils"
)

var batchCmd = &cobra.Command{
	Use:   "batch <ticket>",
	Short: "Run the pipeline for every sample in a ticket",
	Long: `Prepares the ticket and runs the preprocessing workflow once,
then runs assembly, search, filtering and reporting for every sample in
the samplesheet. Samples run in parallel up to --jobs; each sample's own
stages stay strictly sequential.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		ticket := args[0]

		jobs, jErr := cmd.Flags().GetInt("jobs")
		if jErr != nil {
			log.Fatalf("Error getting jobs flag: %v", jErr)
		}
		if jobs < 1 {
			jobs = 1
		}

		exitOn(utils.CheckDeps(pipeline.RequiredTools...))
		exitOn(pipeline.MakeSkeleton(cfg, ticket))
		logger, closeLog, err := utils.NewRunLogger(utils.RunLogPath(cfg, ticket))
		exitOn(err)
		defer closeLog()

		exitOn(pipeline.TicketStages(cfg, logger, ticket, "ALL"))

		samples, err := prepare.Samples(cfg, ticket)
		exitOn(err)
		if len(samples) == 0 {
			fmt.Printf("No samples in samplesheet for ticket %s\n", ticket)
			return
		}

		var g errgroup.Group
		g.SetLimit(jobs)
		for _, sample := range samples {
			g.Go(func() error {
				return pipeline.SampleStages(cfg, logger, ticket, sample)
			})
		}
		exitOn(g.Wait())
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("jobs", "j", 4, "samples to process in parallel")
}
