package storage

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"
)

// LevelStats summarizes the history of one level.
type LevelStats struct {
	Level      string
	Runs       int
	Best       int64
	Mean       float64
	StdDev     float64
	Seconds    float64 // total time played
	LastPlayed time.Time
}

// Stats computes the summary of a level from its run history.
func (s *Store) Stats(level string) (*LevelStats, error) {
	runs, err := s.AllRuns(level)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	return summarize(level, runs), nil
}

func summarize(level string, runs []RunEntry) *LevelStats {
	st := &LevelStats{Level: level, Runs: len(runs)}
	if len(runs) == 0 {
		return st
	}

	scores := make([]float64, len(runs))
	for i, r := range runs {
		scores[i] = float64(r.Score)
		st.Best = max(st.Best, r.Score)
		st.Seconds += r.Seconds
		if r.CreatedAt.After(st.LastPlayed) {
			st.LastPlayed = r.CreatedAt
		}
	}
	st.Mean = stat.Mean(scores, nil)
	if len(scores) > 1 {
		st.StdDev = stat.StdDev(scores, nil)
	}
	return st
}
