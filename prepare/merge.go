package prepare

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/clinmicro/evtyper/utils"
)

// Lane files arrive with arbitrary lane-split names; the read direction is
// the only thing the patterns care about (L001_R1_001.fastq.gz,
// <sample>_1.fastq.gz and friends).
var (
	forwardPattern = regexp.MustCompile(`_R?1(_|\.)`)
	reversePattern = regexp.MustCompile(`_R?2(_|\.)`)
)

// MergeSample concatenates a sample folder's per-lane FASTQ files into
// <sample>_1.fastq.gz and <sample>_2.fastq.gz and deletes the lane files.
// Concatenation order is lexicographic by filename so the merged bytes are
// reproducible regardless of directory listing order; gzip members
// concatenate into a valid gzip stream, so this is a plain byte copy.
//
// A folder with no forward or no reverse lane files is skipped, not an
// error: heterogeneous ticket folders are tolerated.
func MergeSample(sampleDir string, sample string, logger *slog.Logger) error {
	merged1 := filepath.Join(sampleDir, sample+"_1.fastq.gz")
	merged2 := filepath.Join(sampleDir, sample+"_2.fastq.gz")

	if utils.FileNonEmpty(merged1) && utils.FileNonEmpty(merged2) {
		logger.Info("EV TYPING", "STAGE", "MergeLanes", "SAMPLE", sample, "STATUS", "SKIPPED")
		return nil
	}

	entries, err := os.ReadDir(sampleDir)
	if err != nil {
		return fmt.Errorf("reading sample folder %s: %w", sampleDir, err)
	}

	var forward, reverse []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".fastq.gz") {
			continue
		}
		if name == filepath.Base(merged1) || name == filepath.Base(merged2) {
			continue
		}
		switch {
		case forwardPattern.MatchString(name):
			forward = append(forward, filepath.Join(sampleDir, name))
		case reversePattern.MatchString(name):
			reverse = append(reverse, filepath.Join(sampleDir, name))
		}
	}

	if len(forward) == 0 || len(reverse) == 0 {
		logger.Info("EV TYPING", "STAGE", "MergeLanes", "SAMPLE", sample, "STATUS", "SKIPPED", "reason", "no R1/R2 lane files")
		return nil
	}

	sort.Strings(forward)
	sort.Strings(reverse)

	if err := concatFiles(merged1, forward); err != nil {
		return fmt.Errorf("merging forward reads for %s: %w", sample, err)
	}
	if err := concatFiles(merged2, reverse); err != nil {
		return fmt.Errorf("merging reverse reads for %s: %w", sample, err)
	}

	// Lane files only go away once both merged outputs are on disk.
	for _, lane := range append(forward, reverse...) {
		if err := os.Remove(lane); err != nil {
			return fmt.Errorf("removing lane file %s: %w", lane, err)
		}
	}

	logger.Info("EV TYPING", "STAGE", "MergeLanes", "SAMPLE", sample, "STATUS", "COMPLETED",
		"forward_lanes", len(forward), "reverse_lanes", len(reverse))
	return nil
}

func concatFiles(dst string, srcs []string) error {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	for _, src := range srcs {
		in, err := os.Open(src)
		if err != nil {
			out.Close()
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			in.Close()
			out.Close()
			return err
		}
		in.Close()
	}
	return out.Close()
}
