package search

import (
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"

	"github.com/clinmicro/evtyper/utils"
)

// Summarize aggregates a finalized hit table into <table>.summary.csv:
// per (qseqid, staxid, scomname) group it reports the hit count and the
// min/max/median of percent identity, alignment length and bit score.
// A header-only table produces no summary file and no error.
func Summarize(blastPath string) (string, error) {
	rows, err := utils.ReadCSVFile(blastPath)
	if err != nil {
		return "", err
	}
	if len(rows) < 2 {
		return "", nil
	}

	f, err := os.Open(blastPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	df := dataframe.ReadCSV(f)
	if df.Err != nil {
		return "", fmt.Errorf("parsing hit table %s: %w", blastPath, df.Err)
	}

	groups := df.GroupBy("qseqid", "staxid", "scomname")
	if groups.Err != nil {
		return "", fmt.Errorf("grouping hit table %s: %w", blastPath, groups.Err)
	}

	agg := groups.Aggregation(
		[]dataframe.AggregationType{
			dataframe.Aggregation_COUNT,
			dataframe.Aggregation_MIN, dataframe.Aggregation_MAX, dataframe.Aggregation_MEDIAN,
			dataframe.Aggregation_MIN, dataframe.Aggregation_MAX, dataframe.Aggregation_MEDIAN,
			dataframe.Aggregation_MIN, dataframe.Aggregation_MAX, dataframe.Aggregation_MEDIAN,
		},
		[]string{
			"staxid",
			"pident", "pident", "pident",
			"length", "length", "length",
			"bitscore", "bitscore", "bitscore",
		})
	if agg.Err != nil {
		return "", fmt.Errorf("aggregating hit table %s: %w", blastPath, agg.Err)
	}
	agg = agg.Arrange(dataframe.Sort("qseqid"))

	summaryPath := blastPath + ".summary.csv"
	out, err := os.Create(summaryPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := agg.WriteCSV(out); err != nil {
		return "", fmt.Errorf("writing summary %s: %w", summaryPath, err)
	}
	return summaryPath, nil
}
