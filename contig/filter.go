// Package contig extracts assembled sequences with enterovirus hits and
// narrows them down by length and assembler coverage, producing the three
// nested FASTA files the typing report is based on.
package contig

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/samber/lo"

	"github.com/clinmicro/evtyper/search"
	"github.com/clinmicro/evtyper/utils"
)

// HitIDs collects the distinct query identifiers (column one) from a
// finalized hit table, skipping the header row.
func HitIDs(blastPath string) ([]string, error) {
	rows, err := utils.ReadCSVFile(blastPath)
	if err != nil {
		return nil, err
	}
	var ids []string
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		ids = append(ids, row[0])
	}
	return lo.Uniq(ids), nil
}

// Run filters one sample's assembly down to enterovirus contigs. A missing
// hit table or assembly is an expected no-hit condition, not an error.
func Run(cfg utils.Config, logger *slog.Logger, ticket string, sample string) error {
	blastFile := utils.BlastFile(cfg, ticket, sample)
	if !utils.FileNonEmpty(blastFile) {
		logger.Info("EV TYPING", "STAGE", "ContigFilter", "TICKET", ticket, "SAMPLE", sample, "STATUS", "SKIPPED", "reason", "no hit table")
		return nil
	}
	source, ok := search.QueryFasta(cfg, ticket, sample)
	if !ok {
		logger.Info("EV TYPING", "STAGE", "ContigFilter", "TICKET", ticket, "SAMPLE", sample, "STATUS", "SKIPPED", "reason", "no assembly output")
		return nil
	}

	evDir := utils.EvContigDir(cfg, ticket)
	stage1 := filepath.Join(evDir, sample+".fasta")
	stage2 := filepath.Join(evDir, sample+"_200bp.fasta")
	stage3 := filepath.Join(evDir, sample+"_200bp_minCov50.fasta")

	if fileExists(stage1) && fileExists(stage2) && fileExists(stage3) {
		logger.Info("EV TYPING", "STAGE", "ContigFilter", "TICKET", ticket, "SAMPLE", sample, "STATUS", "SKIPPED")
		return nil
	}

	ids, err := HitIDs(blastFile)
	if err != nil {
		return fmt.Errorf("parsing hit table %s: %w", blastFile, err)
	}
	if len(ids) == 0 {
		logger.Info("EV TYPING", "STAGE", "ContigFilter", "TICKET", ticket, "SAMPLE", sample, "STATUS", "SKIPPED", "reason", "no hits")
		return nil
	}

	// The identifier list is transient scratch, removed once the three
	// FASTA stages are on disk.
	idsFile := filepath.Join(evDir, sample+".ids")
	if err := os.WriteFile(idsFile, []byte(strings.Join(ids, "\n")+"\n"), 0644); err != nil {
		return err
	}
	defer os.Remove(idsFile)

	if _, err := ExtractByID(source, stage1, ids); err != nil {
		return fmt.Errorf("extracting hit contigs for %s: %w", sample, err)
	}
	if _, err := FilterByLength(stage1, stage2, 200); err != nil {
		return fmt.Errorf("length-filtering contigs for %s: %w", sample, err)
	}
	if _, err := FilterByCoverage(stage2, stage3, 50); err != nil {
		return fmt.Errorf("coverage-filtering contigs for %s: %w", sample, err)
	}

	return nil
}

// ExtractByID writes the records of src whose identifier is in ids to dst,
// preserving source order. Returns the number of records written.
func ExtractByID(src string, dst string, ids []string) (int, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	return filterFasta(src, dst, func(s *linear.Seq) bool {
		_, ok := wanted[s.ID]
		return ok
	})
}

// FilterByLength keeps records of at least minLen bases (inclusive).
func FilterByLength(src string, dst string, minLen int) (int, error) {
	return filterFasta(src, dst, func(s *linear.Seq) bool {
		return len(s.Seq) >= minLen
	})
}

// FilterByCoverage keeps records whose header coverage is strictly above
// minCov. A record of exactly minCov is dropped.
func FilterByCoverage(src string, dst string, minCov float64) (int, error) {
	return filterFasta(src, dst, func(s *linear.Seq) bool {
		return Coverage(recordHeader(s)) > minCov
	})
}

func recordHeader(s *linear.Seq) string {
	if s.Desc == "" {
		return s.ID
	}
	return s.ID + " " + s.Desc
}

func filterFasta(src string, dst string, keep func(*linear.Seq) bool) (int, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	r := fasta.NewReader(in, linear.NewSeq("", nil, alphabet.DNA))
	w := fasta.NewWriter(out, 60)
	sc := seqio.NewScanner(r)

	kept := 0
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		if !keep(s) {
			continue
		}
		if _, err := w.Write(s); err != nil {
			out.Close()
			return kept, err
		}
		kept++
	}
	if err := sc.Error(); err != nil && err != io.EOF {
		out.Close()
		return kept, err
	}
	return kept, out.Close()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
