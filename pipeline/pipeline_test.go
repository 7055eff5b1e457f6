package pipeline

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinmicro/evtyper/utils"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMakeSkeleton(t *testing.T) {
	cfg := utils.Config{BaseDir: t.TempDir()}

	require.NoError(t, MakeSkeleton(cfg, "1003460"))

	for _, dir := range []string{
		filepath.Join(utils.ResultsDir(cfg, "1003460"), "spades"),
		utils.BlastDir(cfg, "1003460"),
		utils.EvContigDir(cfg, "1003460"),
		utils.ReportDir(cfg, "1003460"),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}

	require.NoError(t, MakeSkeleton(cfg, "1003460"), "skeleton creation is idempotent")
}

func TestStageStatus(t *testing.T) {
	cfg := utils.Config{BaseDir: t.TempDir()}
	require.NoError(t, MakeSkeleton(cfg, "1003460"))

	logger, closeLog, err := utils.NewRunLogger(utils.RunLogPath(cfg, "1003460"))
	require.NoError(t, err)

	require.NoError(t, runStage(logger, "1003460", "test_sample", "PrepareInput", func() error { return nil }))
	require.NoError(t, runStage(logger, "1003460", "test_sample", "Assembly", func() error { return nil }))
	closeLog()

	status, err := StageStatus(cfg, "1003460", "test_sample")
	require.NoError(t, err)

	assert.True(t, status["PrepareInput"])
	assert.True(t, status["Assembly"])
	assert.False(t, status["Taxprofiler"])
	assert.False(t, status["Blast"])
	assert.False(t, status["ContigFilter"])
	assert.False(t, status["Report"])
}

func TestStageStatusNoRunLog(t *testing.T) {
	cfg := utils.Config{BaseDir: t.TempDir()}

	status, err := StageStatus(cfg, "1003460", "test_sample")
	require.NoError(t, err)

	for _, name := range StageNames {
		assert.False(t, status[name], name)
	}
}

func TestRunStageRecordsFailure(t *testing.T) {
	cfg := utils.Config{BaseDir: t.TempDir()}
	require.NoError(t, MakeSkeleton(cfg, "1003460"))

	logger, closeLog, err := utils.NewRunLogger(utils.RunLogPath(cfg, "1003460"))
	require.NoError(t, err)

	stageErr := utils.MissingInput("no reads for sample %s", "test_sample")
	err = runStage(logger, "1003460", "test_sample", "Assembly", func() error { return stageErr })
	closeLog()

	require.Error(t, err)
	assert.Equal(t, utils.ExitMissingInput, utils.ExitCode(err), "exit code survives the stage wrapper")

	entries, err := utils.ParseRunLog(utils.RunLogPath(cfg, "1003460"))
	require.NoError(t, err)
	var statuses []string
	for _, e := range entries {
		if e.Stage == "Assembly" {
			statuses = append(statuses, e.Status)
		}
	}
	assert.Equal(t, []string{"STARTED", "FAILED"}, statuses)
	assert.False(t, utils.StageHasCompleted(entries, "Assembly", "1003460", "test_sample"))
}

func TestTicketStagesMissingSource(t *testing.T) {
	cfg := utils.Config{
		SourceDir: filepath.Join(t.TempDir(), "absent"),
		BaseDir:   t.TempDir(),
	}

	err := TicketStages(cfg, discardLogger(), "1003460", "ALL")
	require.Error(t, err)
	assert.Equal(t, utils.ExitMissingInput, utils.ExitCode(err))
}
