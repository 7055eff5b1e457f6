// Package prepare implements the input stage of the typing pipeline: it
// copies a ticket's raw read folder into the working area, merges per-lane
// FASTQ files into one pair per sample and writes the taxprofiler
// samplesheet. Every step is gated on its output already existing, so
// re-running a ticket is a no-op where work is done.
package prepare

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/clinmicro/evtyper/utils"
)

// InputData runs the whole input stage for one ticket.
func InputData(cfg utils.Config, logger *slog.Logger, ticket string) error {
	dataDir := utils.DataDir(cfg, ticket)

	if !utils.DirExists(dataDir) {
		srcDir := filepath.Join(cfg.SourceDir, ticket)
		if !utils.DirExists(srcDir) {
			return utils.MissingInput("source folder for ticket %s not found at %s", ticket, srcDir)
		}
		logger.Info("EV TYPING", "STAGE", "CopyTicket", "TICKET", ticket, "STATUS", "STARTED")
		if err := os.MkdirAll(filepath.Dir(dataDir), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		if err := os.CopyFS(dataDir, os.DirFS(srcDir)); err != nil {
			return fmt.Errorf("copying ticket %s into working area: %w", ticket, err)
		}
		logger.Info("EV TYPING", "STAGE", "CopyTicket", "TICKET", ticket, "STATUS", "COMPLETED")
	} else {
		logger.Info("EV TYPING", "STAGE", "CopyTicket", "TICKET", ticket, "STATUS", "SKIPPED")
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return fmt.Errorf("reading ticket working folder %s: %w", dataDir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sample := entry.Name()
		if err := MergeSample(filepath.Join(dataDir, sample), sample, logger); err != nil {
			return err
		}
	}

	sheet := utils.SamplesheetPath(cfg, ticket)
	if utils.FileNonEmpty(sheet) {
		logger.Info("EV TYPING", "STAGE", "Samplesheet", "TICKET", ticket, "STATUS", "SKIPPED")
		return nil
	}
	logger.Info("EV TYPING", "STAGE", "Samplesheet", "TICKET", ticket, "STATUS", "STARTED")
	if _, err := WriteSamplesheet(dataDir); err != nil {
		return fmt.Errorf("writing samplesheet for ticket %s: %w", ticket, err)
	}
	logger.Info("EV TYPING", "STAGE", "Samplesheet", "TICKET", ticket, "STATUS", "COMPLETED")
	return nil
}

// Samples lists the sample identifiers recorded in a ticket's samplesheet.
func Samples(cfg utils.Config, ticket string) ([]string, error) {
	rows, err := utils.ReadCSVFile(utils.SamplesheetPath(cfg, ticket))
	if err != nil {
		return nil, err
	}
	var samples []string
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		samples = append(samples, row[0])
	}
	return samples, nil
}
