package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"golang.org/x/exp/maps"
	"gonum.org/v1/gonum/stat"

	"github.com/clinmicro/evtyper/contig"
	"github.com/clinmicro/evtyper/utils"
)

// Hit is one data row of the finalized hit table.
type Hit struct {
	QSeqID   string
	SSeqID   string
	EValue   float64
	Bitscore float64
	Pident   float64
	QLen     int
	Species  string
	Coverage float64
}

// SuggestOptions are the thresholds an automatic genotype suggestion must
// clear before it is offered instead of manual assessment.
type SuggestOptions struct {
	MinRows     int
	MinIdentity float64
	MinBitscore float64
}

func DefaultSuggestOptions() SuggestOptions {
	return SuggestOptions{MinRows: 20, MinIdentity: 90.0, MinBitscore: 400.0}
}

const (
	ManualAssessment = "Manual assessment required"
	NoValidContig    = "No valid contig (too short or low coverage)"
)

// ReadHits parses a finalized hit table. The header row is positional
// documentation only; fields are resolved by name so column reordering in
// the template does not silently misparse.
func ReadHits(blastPath string) ([]Hit, error) {
	rows, err := utils.ReadCSVFile(blastPath)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	for _, name := range []string{"qseqid", "sseqid", "evalue", "bitscore", "pident", "qlen", "scomname"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("hit table %s is missing column %s", blastPath, name)
		}
	}

	var hits []Hit
	for _, row := range rows[1:] {
		if len(row) < len(rows[0]) {
			continue
		}
		evalue, err1 := strconv.ParseFloat(row[col["evalue"]], 64)
		bitscore, err2 := strconv.ParseFloat(row[col["bitscore"]], 64)
		pident, err3 := strconv.ParseFloat(row[col["pident"]], 64)
		qlen, err4 := strconv.Atoi(row[col["qlen"]])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		hits = append(hits, Hit{
			QSeqID:   row[col["qseqid"]],
			SSeqID:   row[col["sseqid"]],
			EValue:   evalue,
			Bitscore: bitscore,
			Pident:   pident,
			QLen:     qlen,
			Species:  row[col["scomname"]],
			Coverage: contig.Coverage(row[col["qseqid"]]),
		})
	}
	return hits, nil
}

// FilterHits keeps hits from contigs long and covered enough to type on:
// query length above 200 and assembler coverage above 50.
func FilterHits(hits []Hit) []Hit {
	var kept []Hit
	for _, h := range hits {
		if h.QLen > 200 && h.Coverage > 50 {
			kept = append(kept, h)
		}
	}
	return kept
}

// SuggestGenotype offers the top species only when every criterion agrees
// on it: the best-identity and best-bitscore hits name the same species,
// that species has enough hits, the best hit clears the identity and
// bitscore floors, and it also leads both median rankings. Anything less
// stays a manual call.
func SuggestGenotype(hits []Hit, opt SuggestOptions) string {
	if len(hits) == 0 {
		return NoValidContig
	}

	maxPidentSpecies, maxPident := argmaxSpecies(hits, func(h Hit) float64 { return h.Pident })
	maxBitSpecies, maxBit := argmaxSpecies(hits, func(h Hit) float64 { return h.Bitscore })

	counts := make(map[string]int)
	pidents := make(map[string][]float64)
	bitscores := make(map[string][]float64)
	for _, h := range hits {
		counts[h.Species]++
		pidents[h.Species] = append(pidents[h.Species], h.Pident)
		bitscores[h.Species] = append(bitscores[h.Species], h.Bitscore)
	}

	if maxPidentSpecies == maxBitSpecies &&
		counts[maxPidentSpecies] >= opt.MinRows &&
		maxPident >= opt.MinIdentity &&
		maxBit >= opt.MinBitscore &&
		argmaxMedian(pidents) == maxPidentSpecies &&
		argmaxMedian(bitscores) == maxBitSpecies {
		return maxPidentSpecies
	}
	return ManualAssessment
}

func argmaxSpecies(hits []Hit, value func(Hit) float64) (string, float64) {
	best := hits[0]
	for _, h := range hits[1:] {
		if value(h) > value(best) {
			best = h
		}
	}
	return best.Species, value(best)
}

// argmaxMedian returns the species with the highest median value; ties go
// to the alphabetically first species.
func argmaxMedian(bySpecies map[string][]float64) string {
	species := maps.Keys(bySpecies)
	sort.Strings(species)

	bestSpecies := ""
	bestMedian := 0.0
	for _, sp := range species {
		m := median(bySpecies[sp])
		if bestSpecies == "" || m > bestMedian {
			bestSpecies = sp
			bestMedian = m
		}
	}
	return bestSpecies
}

func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.LinInterp, sorted, nil)
}

// AppendGenotype records a ticket/sample genotype call in a running CSV,
// creating the file with a header on first use.
func AppendGenotype(outPath string, ticket string, sample string, genotype string) error {
	writeHeader := !utils.FileNonEmpty(outPath)

	f, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write([]string{"Ticket", "Sample", "Genotype"}); err != nil {
			return err
		}
	}
	if err := w.Write([]string{ticket, sample, genotype}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
