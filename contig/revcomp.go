package contig

import (
	"io"
	"os"
	"strconv"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/clinmicro/evtyper/utils"
)

// ReverseOrientedIDs reads a finalized hit table and returns the query
// identifiers whose hits are in reverse orientation (sstart > send).
func ReverseOrientedIDs(blastPath string) (map[string]struct{}, error) {
	rows, err := utils.ReadCSVFile(blastPath)
	if err != nil {
		return nil, err
	}
	reverse := make(map[string]struct{})
	if len(rows) == 0 {
		return reverse, nil
	}

	sstartCol, sendCol := -1, -1
	for i, name := range rows[0] {
		switch name {
		case "sstart":
			sstartCol = i
		case "send":
			sendCol = i
		}
	}
	if sstartCol < 0 || sendCol < 0 {
		return reverse, nil
	}

	for _, row := range rows[1:] {
		if len(row) <= sstartCol || len(row) <= sendCol {
			continue
		}
		sstart, err1 := strconv.Atoi(row[sstartCol])
		send, err2 := strconv.Atoi(row[sendCol])
		if err1 != nil || err2 != nil {
			continue
		}
		if sstart > send {
			reverse[row[0]] = struct{}{}
		}
	}
	return reverse, nil
}

// RevCompByBlast copies fastaIn to fastaOut, reverse-complementing every
// record named in reverse and marking it with a _reverse_complement
// suffix. Other records pass through unchanged.
func RevCompByBlast(fastaIn string, fastaOut string, reverse map[string]struct{}) error {
	in, err := os.Open(fastaIn)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(fastaOut)
	if err != nil {
		return err
	}

	r := fasta.NewReader(in, linear.NewSeq("", nil, alphabet.DNA))
	w := fasta.NewWriter(out, 80)
	sc := seqio.NewScanner(r)

	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		if _, ok := reverse[s.ID]; ok {
			s.RevComp()
			s.ID += "_reverse_complement"
			s.Desc = ""
		}
		if _, err := w.Write(s); err != nil {
			out.Close()
			return err
		}
	}
	if err := sc.Error(); err != nil && err != io.EOF {
		out.Close()
		return err
	}
	return out.Close()
}
