// Package assembly runs rnaviralSPAdes on a sample's host-removed,
// unmapped read pair.
package assembly

import (
	"fmt"
	"log/slog"

	"github.com/clinmicro/evtyper/utils"
)

// BuildCommand assembles the SPAdes invocation for one sample.
func BuildCommand(cfg utils.Config, ticket string, sample string) string {
	fwd, rev := utils.UnmappedReads(cfg, ticket, sample)
	return fmt.Sprintf(`spades.py --rnaviral -1 %s -2 %s -t %d -o %s`,
		fwd, rev, utils.Threads(cfg), utils.SpadesDir(cfg, ticket, sample))
}

// Run assembles one sample. Assembly cannot proceed without its input, so
// a missing or empty unmapped read file is fatal rather than a skip.
// Existing contig or scaffold output means the stage already ran.
func Run(cfg utils.Config, logger *slog.Logger, ticket string, sample string) error {
	if utils.FileNonEmpty(utils.ContigsFasta(cfg, ticket, sample)) || utils.FileNonEmpty(utils.ScaffoldsFasta(cfg, ticket, sample)) {
		logger.Info("EV TYPING", "STAGE", "Assembly", "TICKET", ticket, "SAMPLE", sample, "STATUS", "SKIPPED")
		return nil
	}

	fwd, rev := utils.UnmappedReads(cfg, ticket, sample)
	if !utils.FileNonEmpty(fwd) {
		return utils.MissingInput("unmapped forward reads for sample %s not found or empty at %s", sample, fwd)
	}
	if !utils.FileNonEmpty(rev) {
		return utils.MissingInput("unmapped reverse reads for sample %s not found or empty at %s", sample, rev)
	}

	cmdStr := BuildCommand(cfg, ticket, sample)
	fmt.Println(cmdStr)
	if err := utils.RunBashCmdVerbose(cmdStr); err != nil {
		return fmt.Errorf("spades failed for sample %s: %w", sample, err)
	}
	return nil
}
