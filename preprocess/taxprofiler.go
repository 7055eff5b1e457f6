// Package preprocess invokes the external nf-core/taxprofiler workflow for
// read QC, adapter trimming and host removal. The workflow itself is a
// black box; this package only builds its command line and waits for it.
package preprocess

import (
	"fmt"
	"log/slog"

	"github.com/clinmicro/evtyper/utils"
)

// BuildCommand assembles the taxprofiler invocation for one ticket.
func BuildCommand(cfg utils.Config, ticket string) string {
	return fmt.Sprintf(
		`nextflow run nf-core/taxprofiler -r 1.1.8 -profile singularity `+
			`--input %s --databases %s --outdir %s `+
			`--perform_shortread_qc --shortread_qc_tool fastp --shortread_qc_adapterlist %s `+
			`--perform_shortread_hostremoval --hostremoval_reference %s --save_hostremoval_unmapped `+
			`--max_cpus %d`,
		utils.SamplesheetPath(cfg, ticket), cfg.DatabaseSheet, utils.TaxprofilerDir(cfg, ticket),
		cfg.AdapterFasta, cfg.HostIndex, utils.Threads(cfg))
}

// Run executes taxprofiler for a ticket unless its output directory is
// already in place. The whole workflow runs once per ticket, not per
// sample, so concurrent per-sample driver invocations must not reach this
// stage at the same time.
func Run(cfg utils.Config, logger *slog.Logger, ticket string) error {
	outDir := utils.TaxprofilerDir(cfg, ticket)
	if utils.DirExists(outDir) {
		logger.Info("EV TYPING", "STAGE", "Taxprofiler", "TICKET", ticket, "STATUS", "SKIPPED")
		return nil
	}

	cmdStr := BuildCommand(cfg, ticket)
	fmt.Println(cmdStr)
	if err := utils.RunBashCmdVerbose(cmdStr); err != nil {
		return fmt.Errorf("taxprofiler failed for ticket %s: %w", ticket, err)
	}
	return nil
}
