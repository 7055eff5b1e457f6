// Package search runs blastn against the enterovirus-restricted reference
// database and finalizes the comma-separated hit table.
package search

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/clinmicro/evtyper/utils"
)

// QueryFasta picks the sample's assembly to search with: scaffolds when
// SPAdes produced them, contigs otherwise. The second return is false when
// no assembly output exists at all.
func QueryFasta(cfg utils.Config, ticket string, sample string) (string, bool) {
	if scaffolds := utils.ScaffoldsFasta(cfg, ticket, sample); utils.FileNonEmpty(scaffolds) {
		return scaffolds, true
	}
	if contigs := utils.ContigsFasta(cfg, ticket, sample); utils.FileNonEmpty(contigs) {
		return contigs, true
	}
	return "", false
}

// BuildCommand assembles the blastn invocation. Output format 10 is CSV
// with the fixed column set the downstream parsers rely on.
func BuildCommand(cfg utils.Config, query string, tmpOut string) string {
	return fmt.Sprintf(
		`blastn -task dc-megablast -db %s -query %s -taxidlist %s `+
			`-max_target_seqs 500 -word_size 11 -perc_identity 75 -evalue 1e-10 `+
			`-dust yes -qcov_hsp_perc 50 -num_threads %d `+
			`-outfmt "10 qseqid sseqid evalue bitscore pident qlen qstart qend sstart send staxid scomname length" `+
			`-out %s`,
		cfg.BlastDB, query, cfg.TaxidList, utils.Threads(cfg), tmpOut)
}

// FinalizeTable prepends the static header line to the raw blastn rows and
// removes the temporary file. A search with zero hits still yields a
// header-only table.
func FinalizeTable(headerPath string, tmpOut string, finalOut string) error {
	header, err := os.ReadFile(headerPath)
	if err != nil {
		return fmt.Errorf("reading blast header template: %w", err)
	}
	rows, err := os.ReadFile(tmpOut)
	if err != nil {
		return fmt.Errorf("reading raw blast output: %w", err)
	}

	headerLine := strings.TrimRight(string(header), "\n") + "\n"
	if err := os.WriteFile(finalOut, append([]byte(headerLine), rows...), 0644); err != nil {
		return err
	}
	return os.Remove(tmpOut)
}

// Run searches one sample's assembly. No contigs to search is not fatal:
// the stage logs and returns, and everything downstream no-ops.
func Run(cfg utils.Config, logger *slog.Logger, ticket string, sample string) error {
	blastFile := utils.BlastFile(cfg, ticket, sample)
	if utils.FileNonEmpty(blastFile) {
		logger.Info("EV TYPING", "STAGE", "Blast", "TICKET", ticket, "SAMPLE", sample, "STATUS", "SKIPPED")
		return nil
	}

	query, ok := QueryFasta(cfg, ticket, sample)
	if !ok {
		logger.Info("EV TYPING", "STAGE", "Blast", "TICKET", ticket, "SAMPLE", sample, "STATUS", "SKIPPED", "reason", "no assembly output")
		return nil
	}

	tmpOut := blastFile + ".tmp"
	cmdStr := BuildCommand(cfg, query, tmpOut)
	fmt.Println(cmdStr)
	if err := utils.RunBashCmdVerbose(cmdStr); err != nil {
		return fmt.Errorf("blastn failed for sample %s: %w", sample, err)
	}

	if err := FinalizeTable(cfg.BlastHeader, tmpOut, blastFile); err != nil {
		return err
	}

	summaryFile, err := Summarize(blastFile)
	if err != nil {
		return fmt.Errorf("summarizing blast hits for sample %s: %w", sample, err)
	}
	if summaryFile != "" {
		logger.Info("EV TYPING", "STAGE", "BlastSummary", "TICKET", ticket, "SAMPLE", sample, "STATUS", "COMPLETED")
	}
	return nil
}
