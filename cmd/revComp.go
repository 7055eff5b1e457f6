/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/clinmicro/evtyper/contig"
)

var revCompCmd = &cobra.Command{
	Use:   "revComp",
	Short: "Reverse-complement contigs whose hits are in reverse orientation",
	Long: `Reads a finalized hit table, finds contigs whose hits have
sstart greater than send, and writes a FASTA in which those contigs are
reverse-complemented and suffixed with _reverse_complement.`,
	Run: func(cmd *cobra.Command, args []string) {
		blastFile, bErr := cmd.Flags().GetString("blast")
		if bErr != nil {
			log.Fatalf("Error getting blast flag: %v", bErr)
		}
		fastaIn, fErr := cmd.Flags().GetString("fasta")
		if fErr != nil {
			log.Fatalf("Error getting fasta flag: %v", fErr)
		}
		fastaOut, oErr := cmd.Flags().GetString("out")
		if oErr != nil {
			log.Fatalf("Error getting out flag: %v", oErr)
		}
		if blastFile == "" || fastaIn == "" || fastaOut == "" {
			log.Fatal("Flags --blast, --fasta and --out are all required")
		}

		reverse, err := contig.ReverseOrientedIDs(blastFile)
		exitOn(err)
		if len(reverse) == 0 {
			fmt.Println("No reverse-oriented contigs detected.")
		} else {
			fmt.Printf("Reverse-complementing %d contig(s)\n", len(reverse))
		}

		exitOn(contig.RevCompByBlast(fastaIn, fastaOut, reverse))
		fmt.Printf("Output FASTA written to %s\n", fastaOut)
	},
}

func init() {
	rootCmd.AddCommand(revCompCmd)

	revCompCmd.Flags().String("blast", "", "comma-delimited hit table")
	revCompCmd.Flags().String("fasta", "", "input FASTA")
	revCompCmd.Flags().String("out", "", "output FASTA with corrected orientations")
}
