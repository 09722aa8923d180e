package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Summary is the score matrix of a batch: Scores[i][j] is the score of
// Algorithms[i] on Houses[j].
type Summary struct {
	RunID      string
	Algorithms []string
	Houses     []string
	Scores     [][]int
}

// Valid returns a copy without the house columns where every algorithm
// scored 0, which only happens when the house itself could not be run.
func (s *Summary) Valid() *Summary {
	out := &Summary{
		RunID:      s.RunID,
		Algorithms: s.Algorithms,
		Scores:     make([][]int, len(s.Algorithms)),
	}
	for j, house := range s.Houses {
		if len(s.Algorithms) > 0 && s.allZero(j) {
			continue
		}
		out.Houses = append(out.Houses, house)
		for i := range s.Algorithms {
			out.Scores[i] = append(out.Scores[i], s.Scores[i][j])
		}
	}
	return out
}

func (s *Summary) allZero(col int) bool {
	for i := range s.Algorithms {
		if s.Scores[i][col] != 0 {
			return false
		}
	}
	return true
}

// WriteCSV writes the header "Algorithms,<houses>" and one row per
// algorithm.
func (s *Summary) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"Algorithms"}, s.Houses...)); err != nil {
		return err
	}
	for i, name := range s.Algorithms {
		row := make([]string, 0, len(s.Houses)+1)
		row = append(row, name)
		for _, score := range s.Scores[i] {
			row = append(row, strconv.Itoa(score))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the valid part of the summary as CSV to path.
func (s *Summary) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary: %w", err)
	}
	if err := s.Valid().WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("writing summary: %w", err)
	}
	return f.Close()
}
