/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clinmicro/evtyper/prepare"
)

var samplesheetCmd = &cobra.Command{
	Use:   "samplesheet <dir>",
	Short: "Write a taxprofiler samplesheet for a directory of sample folders",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sheet, err := prepare.WriteSamplesheet(args[0])
		exitOn(err)
		fmt.Printf("Samplesheet written to %s\n", sheet)
	},
}

func init() {
	rootCmd.AddCommand(samplesheetCmd)
}
