/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/clinmicro/evtyper/utils"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "evtyper",
	Short: "Enterovirus typing pipeline driver",
	Long: `Orchestrates enterovirus genome identification and typing from
paired-end sequencing reads:

1.	Input preparation: ticket copy, lane merge, taxprofiler samplesheet
2.	Read QC and host removal: (nf-core/taxprofiler)
3.	De novo assembly: (rnaviralSPAdes)
4.	Similarity search: (blastn, enterovirus taxid allow-list)
5.	Contig filtering: hit, length and coverage filters
6.	HTML report and genotype suggestion
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var cfgFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to pipeline config file")
}

// mustConfig loads the environment config from --config or EVTYPER_CONFIG.
func mustConfig() utils.Config {
	path := cfgFile
	if path == "" {
		path = os.Getenv("EVTYPER_CONFIG")
	}
	if path == "" {
		log.Fatal("No config file. Pass --config or set EVTYPER_CONFIG")
	}
	cfg, err := utils.ReadConfig(path)
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}
	return cfg
}

// exitOn prints a fatal pipeline error and exits with its mapped code.
func exitOn(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(utils.ExitCode(err))
	}
}
