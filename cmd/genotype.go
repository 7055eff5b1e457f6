/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/clinmicro/evtyper/report"
	"github.com/clinmicro/evtyper/utils"
)

var genotypeCmd = &cobra.Command{
	Use:   "genotype <ticket> <sample>",
	Short: "Append a genotype suggestion for a sample to the running CSV",
	Long: `Reads the sample's finalized hit table, keeps hits from contigs
longer than 200 bp with coverage above 50, and appends the genotype
suggestion (or a manual-assessment marker) to the genotype CSV.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig()
		ticket, sample := args[0], args[1]

		out, oErr := cmd.Flags().GetString("out")
		if oErr != nil {
			log.Fatalf("Error getting out flag: %v", oErr)
		}
		if out == "" {
			out = cfg.GenotypeCSV
		}
		if out == "" {
			out = "genotype.csv"
		}

		minRows, rErr := cmd.Flags().GetInt("suggest-min-rows")
		if rErr != nil {
			log.Fatalf("Error getting suggest-min-rows flag: %v", rErr)
		}
		minIdentity, iErr := cmd.Flags().GetFloat64("suggest-min-identity")
		if iErr != nil {
			log.Fatalf("Error getting suggest-min-identity flag: %v", iErr)
		}
		minBitscore, bErr := cmd.Flags().GetFloat64("suggest-min-bitscore")
		if bErr != nil {
			log.Fatalf("Error getting suggest-min-bitscore flag: %v", bErr)
		}

		blastFile := utils.BlastFile(cfg, ticket, sample)
		if !utils.FileNonEmpty(blastFile) {
			exitOn(utils.MissingInput("hit table not found: %s", blastFile))
		}

		hits, err := report.ReadHits(blastFile)
		exitOn(err)

		genotype := report.SuggestGenotype(report.FilterHits(hits), report.SuggestOptions{
			MinRows:     minRows,
			MinIdentity: minIdentity,
			MinBitscore: minBitscore,
		})

		exitOn(report.AppendGenotype(out, ticket, sample, genotype))
		fmt.Printf("Added: ticket %s, sample %s, genotype: %s\n", ticket, sample, genotype)
	},
}

func init() {
	rootCmd.AddCommand(genotypeCmd)

	genotypeCmd.Flags().StringP("out", "o", "", "output CSV path (default from config, else genotype.csv)")
	genotypeCmd.Flags().Int("suggest-min-rows", 20, "minimum hits for the top species before auto-suggesting")
	genotypeCmd.Flags().Float64("suggest-min-identity", 90.0, "minimum max percent identity before auto-suggesting")
	genotypeCmd.Flags().Float64("suggest-min-bitscore", 400.0, "minimum max bitscore before auto-suggesting")
}
