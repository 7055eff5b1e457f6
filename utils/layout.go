package utils

import "path/filepath"

// Working-area layout, relative to cfg.BaseDir. The directory tree is the
// only coordination mechanism between stages, so every path is derived
// here from ticket and sample identifiers alone.

func DataDir(cfg Config, ticket string) string {
	return filepath.Join(cfg.BaseDir, "data", ticket)
}

func SamplesheetPath(cfg Config, ticket string) string {
	return filepath.Join(DataDir(cfg, ticket), ticket+"_samplesheet.csv")
}

func ResultsDir(cfg Config, ticket string) string {
	return filepath.Join(cfg.BaseDir, "results", ticket)
}

func TaxprofilerDir(cfg Config, ticket string) string {
	return filepath.Join(ResultsDir(cfg, ticket), "taxprofiler")
}

// UnmappedReads returns the host-removed read pair produced by the
// preprocessing workflow. The <sample>_<sample> doubling comes from the
// taxprofiler sample/run-accession naming convention.
func UnmappedReads(cfg Config, ticket string, sample string) (string, string) {
	dir := cfg.UnmappedDir
	if dir == "" {
		dir = filepath.Join(TaxprofilerDir(cfg, ticket), "bowtie2", "align")
	}
	fwd := filepath.Join(dir, sample+"_"+sample+".unmapped_1.fastq.gz")
	rev := filepath.Join(dir, sample+"_"+sample+".unmapped_2.fastq.gz")
	return fwd, rev
}

func SpadesDir(cfg Config, ticket string, sample string) string {
	return filepath.Join(ResultsDir(cfg, ticket), "spades", sample)
}

func ContigsFasta(cfg Config, ticket string, sample string) string {
	return filepath.Join(SpadesDir(cfg, ticket, sample), "contigs.fasta")
}

func ScaffoldsFasta(cfg Config, ticket string, sample string) string {
	return filepath.Join(SpadesDir(cfg, ticket, sample), "scaffolds.fasta")
}

func BlastDir(cfg Config, ticket string) string {
	return filepath.Join(ResultsDir(cfg, ticket), "blast")
}

func BlastFile(cfg Config, ticket string, sample string) string {
	return filepath.Join(BlastDir(cfg, ticket), sample+".blast")
}

func EvContigDir(cfg Config, ticket string) string {
	return filepath.Join(ResultsDir(cfg, ticket), "ev_contig")
}

func ReportDir(cfg Config, ticket string) string {
	return filepath.Join(ResultsDir(cfg, ticket), "report")
}

func ReportFile(cfg Config, ticket string, sample string) string {
	return filepath.Join(ReportDir(cfg, ticket), sample+".html")
}

func RunLogPath(cfg Config, ticket string) string {
	return filepath.Join(ResultsDir(cfg, ticket), "evtyper.log")
}
