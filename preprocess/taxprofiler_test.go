package preprocess

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinmicro/evtyper/utils"
)

func TestBuildCommand(t *testing.T) {
	cfg := utils.Config{
		BaseDir:       "/work",
		DatabaseSheet: "/db/databases.csv",
		AdapterFasta:  "/db/adapters.fasta",
		HostIndex:     "/db/bowtie2/GRCh38",
		Threads:       "16",
	}

	cmd := BuildCommand(cfg, "1003460")

	assert.Contains(t, cmd, "nextflow run nf-core/taxprofiler")
	assert.Contains(t, cmd, "--input /work/data/1003460/1003460_samplesheet.csv")
	assert.Contains(t, cmd, "--databases /db/databases.csv")
	assert.Contains(t, cmd, "--outdir /work/results/1003460/taxprofiler")
	assert.Contains(t, cmd, "--shortread_qc_adapterlist /db/adapters.fasta")
	assert.Contains(t, cmd, "--hostremoval_reference /db/bowtie2/GRCh38")
	assert.Contains(t, cmd, "--save_hostremoval_unmapped")
	assert.Contains(t, cmd, "--max_cpus 16")
}

func TestRunSkipsWhenOutputExists(t *testing.T) {
	cfg := utils.Config{BaseDir: t.TempDir()}
	require.NoError(t, os.MkdirAll(utils.TaxprofilerDir(cfg, "1003460"), 0755))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	// nextflow is not on PATH here; the stage must skip before invoking it.
	require.NoError(t, Run(cfg, logger, "1003460"))
}
