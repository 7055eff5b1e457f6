package contig

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinmicro/evtyper/utils"
)

const blastHeader = "qseqid,sseqid,evalue,bitscore,pident,qlen,qstart,qend,sstart,send,staxid,scomname,length"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bases(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte("ACGT"[i%4])
	}
	return b.String()
}

func writeFasta(t *testing.T, path string, records map[string]string, order []string) {
	t.Helper()
	var b strings.Builder
	for _, id := range order {
		fmt.Fprintf(&b, ">%s\n%s\n", id, records[id])
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
}

func fastaIDs(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ">") {
			ids = append(ids, strings.Fields(line[1:])[0])
		}
	}
	require.NoError(t, scanner.Err())
	return ids
}

func TestHitIDs(t *testing.T) {
	content := blastHeader + "\n" +
		"NODE_1_length_350_cov_80.2,MK163618.1,0.0,500,98.2,350,1,350,1,350,12059,coxsackievirus B3,350\n" +
		"NODE_1_length_350_cov_80.2,MK163619.1,0.0,480,97.1,350,1,350,1,350,12059,coxsackievirus B3,348\n" +
		"NODE_2_length_150_cov_90.0,AY421760.1,1e-100,300,91.0,150,1,150,1,150,138949,echovirus E30,150\n"
	path := filepath.Join(t.TempDir(), "s.blast")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	ids, err := HitIDs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"NODE_1_length_350_cov_80.2", "NODE_2_length_150_cov_90.0"}, ids)
}

func TestLengthBoundary(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.fasta")
	writeFasta(t, src, map[string]string{
		"exactly200": bases(200),
		"short199":   bases(199),
		"long500":    bases(500),
	}, []string{"exactly200", "short199", "long500"})

	dst := filepath.Join(dir, "out.fasta")
	kept, err := FilterByLength(src, dst, 200)
	require.NoError(t, err)
	assert.Equal(t, 2, kept)
	assert.Equal(t, []string{"exactly200", "long500"}, fastaIDs(t, dst), "200 bases is inclusive, 199 is out")
}

func TestCoverageBoundary(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.fasta")
	writeFasta(t, src, map[string]string{
		"NODE_1_length_300_cov_50.0": bases(300),
		"NODE_2_length_300_cov_50.1": bases(300),
		"NODE_3_length_300":          bases(300),
	}, []string{"NODE_1_length_300_cov_50.0", "NODE_2_length_300_cov_50.1", "NODE_3_length_300"})

	dst := filepath.Join(dir, "out.fasta")
	kept, err := FilterByCoverage(src, dst, 50)
	require.NoError(t, err)
	assert.Equal(t, 1, kept)
	assert.Equal(t, []string{"NODE_2_length_300_cov_50.1"}, fastaIDs(t, dst),
		"coverage exactly 50.0 is excluded, absent coverage defaults to 0")
}

// The end-to-end scenario: three assembled contigs, two with hits. The
// 350 bp/cov 80.2 contig survives every filter; the 150 bp one falls to
// the length filter; the unhit contig never enters.
func TestRunScenario(t *testing.T) {
	cfg := utils.Config{BaseDir: t.TempDir()}
	ticket, sample := "1003460", "test_sample"

	spadesDir := utils.SpadesDir(cfg, ticket, sample)
	require.NoError(t, os.MkdirAll(spadesDir, 0755))
	writeFasta(t, filepath.Join(spadesDir, "contigs.fasta"), map[string]string{
		"NODE_1_length_350_cov_80.2": bases(350),
		"NODE_2_length_150_cov_90.0": bases(150),
		"NODE_3_length_500_cov_10.0": bases(500),
	}, []string{"NODE_1_length_350_cov_80.2", "NODE_2_length_150_cov_90.0", "NODE_3_length_500_cov_10.0"})

	require.NoError(t, os.MkdirAll(utils.BlastDir(cfg, ticket), 0755))
	blastContent := blastHeader + "\n" +
		"NODE_1_length_350_cov_80.2,MK163618.1,0.0,500,98.2,350,1,350,1,350,12059,coxsackievirus B3,350\n" +
		"NODE_2_length_150_cov_90.0,AY421760.1,1e-100,300,91.0,150,1,150,1,150,138949,echovirus E30,150\n"
	require.NoError(t, os.WriteFile(utils.BlastFile(cfg, ticket, sample), []byte(blastContent), 0644))

	evDir := utils.EvContigDir(cfg, ticket)
	require.NoError(t, os.MkdirAll(evDir, 0755))

	require.NoError(t, Run(cfg, discardLogger(), ticket, sample))

	stage1 := fastaIDs(t, filepath.Join(evDir, sample+".fasta"))
	stage2 := fastaIDs(t, filepath.Join(evDir, sample+"_200bp.fasta"))
	stage3 := fastaIDs(t, filepath.Join(evDir, sample+"_200bp_minCov50.fasta"))

	assert.Equal(t, []string{"NODE_1_length_350_cov_80.2", "NODE_2_length_150_cov_90.0"}, stage1)
	assert.Equal(t, []string{"NODE_1_length_350_cov_80.2"}, stage2)
	assert.Equal(t, []string{"NODE_1_length_350_cov_80.2"}, stage3)

	// Filter monotonicity: each stage is a subset of the one before.
	assert.Subset(t, stage1, stage2)
	assert.Subset(t, stage2, stage3)

	// The identifier list is transient and must be gone.
	_, err := os.Stat(filepath.Join(evDir, sample+".ids"))
	assert.True(t, os.IsNotExist(err))

	// Second run skips: outputs stay byte-identical.
	before, err := os.ReadFile(filepath.Join(evDir, sample+".fasta"))
	require.NoError(t, err)
	require.NoError(t, Run(cfg, discardLogger(), ticket, sample))
	after, err := os.ReadFile(filepath.Join(evDir, sample+".fasta"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRunNoHitTable(t *testing.T) {
	cfg := utils.Config{BaseDir: t.TempDir()}

	require.NoError(t, Run(cfg, discardLogger(), "1003460", "test_sample"))
}

func TestRunHeaderOnlyTable(t *testing.T) {
	cfg := utils.Config{BaseDir: t.TempDir()}
	ticket, sample := "1003460", "test_sample"

	spadesDir := utils.SpadesDir(cfg, ticket, sample)
	require.NoError(t, os.MkdirAll(spadesDir, 0755))
	writeFasta(t, filepath.Join(spadesDir, "contigs.fasta"),
		map[string]string{"NODE_1_length_350_cov_80.2": bases(350)},
		[]string{"NODE_1_length_350_cov_80.2"})

	require.NoError(t, os.MkdirAll(utils.BlastDir(cfg, ticket), 0755))
	require.NoError(t, os.WriteFile(utils.BlastFile(cfg, ticket, sample), []byte(blastHeader+"\n"), 0644))
	require.NoError(t, os.MkdirAll(utils.EvContigDir(cfg, ticket), 0755))

	require.NoError(t, Run(cfg, discardLogger(), ticket, sample))

	// No hits: no downstream artifacts at all.
	entries, err := os.ReadDir(utils.EvContigDir(cfg, ticket))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
