package timeline

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates headline figures for a schedule.
type Summary struct {
	NumGroups         int
	TotalParticipants int
	EarliestStart     float64
	LatestStop        float64
	AvgGroupSize      float64
	MinGroupSize      int
	MaxGroupSize      int
}

// Summarise computes summary statistics over a schedule.
func Summarise(entries []Entry) Summary {
	s := Summary{NumGroups: len(entries)}
	if len(entries) == 0 {
		return s
	}

	sizes := make([]float64, len(entries))
	s.EarliestStart = entries[0].StartPercent
	s.LatestStop = entries[0].StopPercent
	s.MinGroupSize = entries[0].GroupSize
	s.MaxGroupSize = entries[0].GroupSize

	for i, e := range entries {
		sizes[i] = float64(e.GroupSize)
		s.TotalParticipants += e.GroupSize
		if e.StartPercent < s.EarliestStart {
			s.EarliestStart = e.StartPercent
		}
		if e.StopPercent > s.LatestStop {
			s.LatestStop = e.StopPercent
		}
		if e.GroupSize < s.MinGroupSize {
			s.MinGroupSize = e.GroupSize
		}
		if e.GroupSize > s.MaxGroupSize {
			s.MaxGroupSize = e.GroupSize
		}
	}
	s.AvgGroupSize = stat.Mean(sizes, nil)
	return s
}

// FormatTable renders the activity matrix as a readable text table with a
// per-sample concurrency total.
func FormatTable(entries []Entry, m *mat.Dense, times []float64) string {
	var b strings.Builder

	header := "Time%  |"
	for _, e := range entries {
		header += fmt.Sprintf(" Group%2d |", e.GroupID)
	}
	header += " Total |"
	b.WriteString(header + "\n")
	b.WriteString(strings.Repeat("-", len(header)) + "\n")

	rows := 0
	if m != nil {
		rows, _ = m.Dims()
	}
	for j, t := range times {
		fmt.Fprintf(&b, "%5.1f  |", t)
		total := 0
		for i := 0; i < rows; i++ {
			v := int(m.At(i, j))
			total += v
			fmt.Fprintf(&b, "   %d    |", v)
		}
		fmt.Fprintf(&b, "   %d   |\n", total)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Report bundles a full timeline analysis.
type Report struct {
	Summary    Summary
	Matrix     *mat.Dense
	TimePoints []float64
	Overlaps   []Pair
	Stats      ConcurrentStats
	Table      string
}

// Analyse validates the schedule and produces a complete report over n
// evenly spaced time samples. An empty schedule is valid and yields an
// empty report: nil matrix, no overlaps, zero concurrency.
func Analyse(entries []Entry, n int) (*Report, error) {
	if err := Validate(entries); err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, fmt.Errorf("num_points must be at least 2, got %d", n)
	}

	m, times := ActivityMatrix(entries, n)
	return &Report{
		Summary:    Summarise(entries),
		Matrix:     m,
		TimePoints: times,
		Overlaps:   OverlappingPairs(entries, m),
		Stats:      Concurrency(m),
		Table:      FormatTable(entries, m, times),
	}, nil
}
