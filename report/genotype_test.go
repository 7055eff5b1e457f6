package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinmicro/evtyper/utils"
)

const blastHeader = "qseqid,sseqid,evalue,bitscore,pident,qlen,qstart,qend,sstart,send,staxid,scomname,length"

func hitRow(qseqid string, bitscore, pident float64, qlen int, species string) string {
	return fmt.Sprintf("%s,SUBJ,0.0,%g,%g,%d,1,%d,1,%d,12059,%s,%d", qseqid, bitscore, pident, qlen, qlen, qlen, species, qlen)
}

func writeBlast(t *testing.T, rows []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_sample.blast")
	content := blastHeader + "\n" + strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadHits(t *testing.T) {
	path := writeBlast(t, []string{
		hitRow("NODE_1_length_350_cov_80.2", 500, 98.2, 350, "coxsackievirus B3"),
		hitRow("NODE_2_length_150_cov_90.0", 300, 91.0, 150, "echovirus E30"),
	})

	hits, err := ReadHits(path)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "NODE_1_length_350_cov_80.2", hits[0].QSeqID)
	assert.Equal(t, 98.2, hits[0].Pident)
	assert.Equal(t, 350, hits[0].QLen)
	assert.Equal(t, "coxsackievirus B3", hits[0].Species)
	assert.Equal(t, 80.2, hits[0].Coverage, "coverage comes from the contig header")
}

func TestReadHitsHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.blast")
	require.NoError(t, os.WriteFile(path, []byte(blastHeader+"\n"), 0644))

	hits, err := ReadHits(path)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestFilterHitsBoundaries(t *testing.T) {
	hits := []Hit{
		{QLen: 201, Coverage: 50.1},
		{QLen: 200, Coverage: 90},
		{QLen: 350, Coverage: 50.0},
		{QLen: 350, Coverage: 80.2},
	}

	kept := FilterHits(hits)
	require.Len(t, kept, 2)
	assert.Equal(t, 201, kept[0].QLen)
	assert.Equal(t, 80.2, kept[1].Coverage)
}

func suggestionHits(species string, n int, bitscore, pident float64) []Hit {
	var hits []Hit
	for i := 0; i < n; i++ {
		hits = append(hits, Hit{Species: species, Bitscore: bitscore, Pident: pident, QLen: 350, Coverage: 80})
	}
	return hits
}

func TestSuggestGenotypeAgreement(t *testing.T) {
	hits := suggestionHits("coxsackievirus B3", 25, 500, 98.2)
	hits = append(hits, suggestionHits("echovirus E30", 5, 300, 85.0)...)

	assert.Equal(t, "coxsackievirus B3", SuggestGenotype(hits, DefaultSuggestOptions()))
}

func TestSuggestGenotypeTooFewRows(t *testing.T) {
	hits := suggestionHits("coxsackievirus B3", 19, 500, 98.2)

	assert.Equal(t, ManualAssessment, SuggestGenotype(hits, DefaultSuggestOptions()))
}

func TestSuggestGenotypeLowIdentity(t *testing.T) {
	hits := suggestionHits("coxsackievirus B3", 25, 500, 89.9)

	assert.Equal(t, ManualAssessment, SuggestGenotype(hits, DefaultSuggestOptions()))
}

func TestSuggestGenotypeSplitLeaders(t *testing.T) {
	// Best identity and best bitscore name different species: manual call.
	hits := suggestionHits("coxsackievirus B3", 25, 450, 98.2)
	hits = append(hits, suggestionHits("echovirus E30", 25, 600, 95.0)...)

	assert.Equal(t, ManualAssessment, SuggestGenotype(hits, DefaultSuggestOptions()))
}

func TestSuggestGenotypeNoHits(t *testing.T) {
	assert.Equal(t, NoValidContig, SuggestGenotype(nil, DefaultSuggestOptions()))
}

func TestAppendGenotype(t *testing.T) {
	out := filepath.Join(t.TempDir(), "genotype.csv")

	require.NoError(t, AppendGenotype(out, "1003460", "test_sample", "coxsackievirus B3"))
	require.NoError(t, AppendGenotype(out, "1003460", "other_sample", ManualAssessment))

	rows, err := utils.ReadCSVFile(out)
	require.NoError(t, err)
	require.Len(t, rows, 3, "header written exactly once")
	assert.Equal(t, []string{"Ticket", "Sample", "Genotype"}, rows[0])
	assert.Equal(t, []string{"1003460", "test_sample", "coxsackievirus B3"}, rows[1])
	assert.Equal(t, []string{"1003460", "other_sample", ManualAssessment}, rows[2])
}
