package search

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	content := headerLine + "\n" +
		"NODE_1,MK163618.1,0.0,500,98.2,350,1,350,1,350,12059,coxsackievirus B3,350\n" +
		"NODE_1,MK163619.1,0.0,480,97.1,350,1,350,1,350,12059,coxsackievirus B3,348\n" +
		"NODE_2,AY421760.1,1e-100,400,91.0,280,1,280,280,1,138949,echovirus E30,280\n"
	blastPath := filepath.Join(t.TempDir(), "test_sample.blast")
	require.NoError(t, os.WriteFile(blastPath, []byte(content), 0644))

	summaryPath, err := Summarize(blastPath)
	require.NoError(t, err)
	assert.Equal(t, blastPath+".summary.csv", summaryPath)

	data, err := os.ReadFile(summaryPath)
	require.NoError(t, err)
	out := string(data)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3, "header plus one row per contig/taxon group")
	assert.Contains(t, out, "NODE_1")
	assert.Contains(t, out, "NODE_2")
	assert.Contains(t, out, "coxsackievirus B3")
	assert.Contains(t, out, "echovirus E30")
}

func TestSummarizeHeaderOnly(t *testing.T) {
	blastPath := filepath.Join(t.TempDir(), "test_sample.blast")
	require.NoError(t, os.WriteFile(blastPath, []byte(headerLine+"\n"), 0644))

	summaryPath, err := Summarize(blastPath)
	require.NoError(t, err)
	assert.Empty(t, summaryPath, "nothing to summarize")

	_, statErr := os.Stat(blastPath + ".summary.csv")
	assert.True(t, os.IsNotExist(statErr))
}
