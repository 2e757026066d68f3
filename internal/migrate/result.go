package migrate

import (
	"fmt"
	"io"
)

// SourceStats tracks counts for one legacy source.
type SourceStats struct {
	Jobs   int // unique listings seen
	Dates  int // records submitted successfully
	Errors int // failed submissions
}

// Summary returns a one-line summary of the source counts.
func (s SourceStats) Summary() string {
	return fmt.Sprintf("jobs=%d dates=%d errors=%d", s.Jobs, s.Dates, s.Errors)
}

// Stats accumulates per-source and run-wide counts for a migration run.
type Stats struct {
	TotalJobs   int
	TotalDates  int
	TotalErrors int

	bySource map[string]SourceStats
	order    []string // company names in migration order
}

// NewStats returns an empty accumulator.
func NewStats() *Stats {
	return &Stats{bySource: make(map[string]SourceStats)}
}

// Add merges one source's counts into the run totals.
func (s *Stats) Add(companyName string, src SourceStats) {
	if _, seen := s.bySource[companyName]; !seen {
		s.order = append(s.order, companyName)
	}
	merged := s.bySource[companyName]
	merged.Jobs += src.Jobs
	merged.Dates += src.Dates
	merged.Errors += src.Errors
	s.bySource[companyName] = merged

	s.TotalJobs += src.Jobs
	s.TotalDates += src.Dates
	s.TotalErrors += src.Errors
}

// BySource returns the counts recorded for a company.
func (s *Stats) BySource(companyName string) (SourceStats, bool) {
	src, ok := s.bySource[companyName]
	return src, ok
}

const summaryRule = "============================================================"

// WriteSummary renders the final migration report: one line per migrated
// company plus a TOTAL line.
func (s *Stats) WriteSummary(w io.Writer) {
	fmt.Fprintln(w, summaryRule)
	fmt.Fprintln(w, "MIGRATION SUMMARY")
	fmt.Fprintln(w, summaryRule)
	for _, name := range s.order {
		src := s.bySource[name]
		fmt.Fprintf(w, "%-20s %5d jobs  %6d dates  %4d errors\n", name, src.Jobs, src.Dates, src.Errors)
	}
	fmt.Fprintln(w, "------------------------------------------------------------")
	fmt.Fprintf(w, "%-20s %5d jobs  %6d dates  %4d errors\n", "TOTAL", s.TotalJobs, s.TotalDates, s.TotalErrors)
	fmt.Fprintln(w, summaryRule)
}
