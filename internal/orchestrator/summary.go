package orchestrator

import (
	"fmt"
	"time"
)

// Summary contains statistics from one pass.
type Summary struct {
	DryRun       bool
	TotalFiles   int // Eligible files seen by the scan
	Renamed      int // Renamed, or previewed in dry-run mode
	Collisions   int // Renames that needed a counter suffix
	Canonical    int
	Unrecognized int
	Errors       int
	Results      []Result
	Duration     time.Duration
}

func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
	switch r.Outcome {
	case Renamed, Previewed:
		s.Renamed++
		if r.IsCollision {
			s.Collisions++
		}
	case Canonical:
		s.Canonical++
	case Unrecognized:
		s.Unrecognized++
	case Failed:
		s.Errors++
	}
}

// HasErrors returns true if any rename failed.
func (s *Summary) HasErrors() bool {
	return s.Errors > 0
}

// PrintSummary returns the completion notice printed at the end of a pass.
func (s *Summary) PrintSummary() string {
	verb := "renamed"
	if s.DryRun {
		verb = "would be renamed"
	}
	return fmt.Sprintf("Done: %d %s, %d already canonical, %d unrecognized, %d errors",
		s.Renamed, verb, s.Canonical, s.Unrecognized, s.Errors)
}
