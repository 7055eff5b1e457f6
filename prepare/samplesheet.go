package prepare

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WriteSamplesheet builds the taxprofiler samplesheet for a ticket's data
// folder: one row per sample subfolder, columns
// sample,run_accession,instrument_platform,fastq_1,fastq_2,fasta.
// Subfolders without FASTQ files are left out. The sheet is written next
// to the sample folders as <ticket>_samplesheet.csv.
func WriteSamplesheet(caseDir string) (string, error) {
	entries, err := os.ReadDir(caseDir)
	if err != nil {
		return "", fmt.Errorf("reading ticket folder %s: %w", caseDir, err)
	}

	sheetPath := filepath.Join(caseDir, filepath.Base(caseDir)+"_samplesheet.csv")
	out, err := os.Create(sheetPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write([]string{"sample", "run_accession", "instrument_platform", "fastq_1", "fastq_2", "fasta"}); err != nil {
		return "", err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sample := entry.Name()
		sampleDir := filepath.Join(caseDir, sample)

		files, err := os.ReadDir(sampleDir)
		if err != nil {
			return "", fmt.Errorf("reading sample folder %s: %w", sampleDir, err)
		}
		var fastqs []string
		for _, f := range files {
			if !f.IsDir() && strings.HasSuffix(f.Name(), ".fastq.gz") {
				fastqs = append(fastqs, f.Name())
			}
		}
		if len(fastqs) == 0 {
			continue
		}
		sort.Strings(fastqs)

		fastq1 := filepath.Join(caseDir, sample, fastqs[0])
		fastq2 := ""
		if len(fastqs) == 2 {
			fastq2 = filepath.Join(caseDir, sample, fastqs[1])
		}
		if err := w.Write([]string{sample, sample, "ILLUMINA", fastq1, fastq2, ""}); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sheetPath, nil
}
