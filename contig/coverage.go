package contig

import (
	"regexp"
	"strconv"
)

// SPAdes embeds read depth in the record header, e.g.
// NODE_1_length_350_cov_80.217391. The grammar is cov_<float>; a header
// without the token gets coverage 0.
var coveragePattern = regexp.MustCompile(`cov_([0-9]+(?:\.[0-9]+)?)`)

// Coverage parses the assembler-reported coverage out of a FASTA header.
func Coverage(header string) float64 {
	m := coveragePattern.FindStringSubmatch(header)
	if m == nil {
		return 0
	}
	cov, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return cov
}
