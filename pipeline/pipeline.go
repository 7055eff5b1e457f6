// Package pipeline sequences the six typing stages for one ticket/sample
// invocation. Stages run in fixed order, each one skips itself when its
// declared output already exists, and the first fatal error aborts the
// whole run with the underlying exit code.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/clinmicro/evtyper/assembly"
	"github.com/clinmicro/evtyper/contig"
	"github.com/clinmicro/evtyper/prepare"
	"github.com/clinmicro/evtyper/preprocess"
	"github.com/clinmicro/evtyper/report"
	"github.com/clinmicro/evtyper/search"
	"github.com/clinmicro/evtyper/utils"
)

// RequiredTools must resolve on PATH before the driver touches any data.
var RequiredTools = []string{"nextflow", "spades.py", "blastn"}

// StageNames in driver order, as recorded in the run log.
var StageNames = []string{"PrepareInput", "Taxprofiler", "Assembly", "Blast", "ContigFilter", "Report"}

// Run executes the full pipeline for one ticket/sample pair.
func Run(cfg utils.Config, ticket string, sample string) error {
	if err := utils.CheckDeps(RequiredTools...); err != nil {
		return err
	}
	if err := MakeSkeleton(cfg, ticket); err != nil {
		return err
	}

	logger, closeLog, err := utils.NewRunLogger(utils.RunLogPath(cfg, ticket))
	if err != nil {
		return err
	}
	defer closeLog()

	if err := TicketStages(cfg, logger, ticket, sample); err != nil {
		return err
	}
	return SampleStages(cfg, logger, ticket, sample)
}

// TicketStages runs the ticket-scoped stages: input preparation and the
// preprocessing workflow. These run once per ticket regardless of how many
// samples it holds.
func TicketStages(cfg utils.Config, logger *slog.Logger, ticket string, sample string) error {
	if err := runStage(logger, ticket, sample, "PrepareInput", func() error {
		return prepare.InputData(cfg, logger, ticket)
	}); err != nil {
		return err
	}
	return runStage(logger, ticket, sample, "Taxprofiler", func() error {
		return preprocess.Run(cfg, logger, ticket)
	})
}

// SampleStages runs the sample-scoped stages: assembly, search, contig
// filtering and report generation.
func SampleStages(cfg utils.Config, logger *slog.Logger, ticket string, sample string) error {
	if err := runStage(logger, ticket, sample, "Assembly", func() error {
		return assembly.Run(cfg, logger, ticket, sample)
	}); err != nil {
		return err
	}
	if err := runStage(logger, ticket, sample, "Blast", func() error {
		return search.Run(cfg, logger, ticket, sample)
	}); err != nil {
		return err
	}
	if err := runStage(logger, ticket, sample, "ContigFilter", func() error {
		return contig.Run(cfg, logger, ticket, sample)
	}); err != nil {
		return err
	}
	return runStage(logger, ticket, sample, "Report", func() error {
		return report.Run(cfg, logger, ticket, sample)
	})
}

func runStage(logger *slog.Logger, ticket string, sample string, name string, run func() error) error {
	logger.Info("EV TYPING", "STAGE", name, "TICKET", ticket, "SAMPLE", sample, "STATUS", "STARTED")
	if err := run(); err != nil {
		logger.Error("EV TYPING", "STAGE", name, "TICKET", ticket, "SAMPLE", sample, "STATUS", "FAILED",
			"exit_code", utils.ExitCode(err), "error", err.Error())
		return fmt.Errorf("%s stage: %w", name, err)
	}
	logger.Info("EV TYPING", "STAGE", name, "TICKET", ticket, "SAMPLE", sample, "STATUS", "COMPLETED")
	return nil
}

// MakeSkeleton eagerly creates the ticket's output directory tree.
// Creation is idempotent.
func MakeSkeleton(cfg utils.Config, ticket string) error {
	dirs := []string{
		filepath.Join(utils.ResultsDir(cfg, ticket), "spades"),
		utils.BlastDir(cfg, ticket),
		utils.EvContigDir(cfg, ticket),
		utils.ReportDir(cfg, ticket),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	return nil
}

// StageStatus summarizes the run log for one ticket/sample: stage name to
// completion, in driver order.
func StageStatus(cfg utils.Config, ticket string, sample string) (map[string]bool, error) {
	entries, err := utils.ParseRunLog(utils.RunLogPath(cfg, ticket))
	if err != nil {
		return nil, err
	}
	status := make(map[string]bool, len(StageNames))
	for _, name := range StageNames {
		status[name] = utils.StageHasCompleted(entries, name, ticket, sample)
	}
	return status, nil
}
