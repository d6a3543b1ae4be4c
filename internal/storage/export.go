package storage

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// ExportCSV writes the run history of a level (all levels when empty) as CSV
// with a header row. It returns the number of runs written.
func (s *Store) ExportCSV(w io.Writer, level string) (int, error) {
	runs, err := s.AllRuns(level)
	if err != nil {
		return 0, err
	}
	if runs == nil {
		runs = []RunEntry{}
	}
	if err := gocsv.Marshal(&runs, w); err != nil {
		return 0, fmt.Errorf("storage: cannot export runs: %w", err)
	}
	return len(runs), nil
}
