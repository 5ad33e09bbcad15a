// Package timeline analyses when groups are active on the normalised
// [0,100] timeline: activity matrices, overlap detection and concurrency
// statistics.
package timeline

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/trajectory.report/internal/groups"
)

// Entry is the scheduling view of a group: who, how many, and when.
type Entry struct {
	GroupID      int
	GroupSize    int
	StartPercent float64
	StopPercent  float64
}

// FromDefinitions projects full group definitions down to schedule entries.
func FromDefinitions(defs []groups.Definition) []Entry {
	entries := make([]Entry, len(defs))
	for i, d := range defs {
		entries[i] = Entry{
			GroupID:      d.GroupID,
			GroupSize:    d.GroupSize,
			StartPercent: d.StartPercent,
			StopPercent:  d.StopPercent,
		}
	}
	return entries
}

// Validate enforces the scheduling constraints: at most groups.MaxGroups
// entries, windows within [0,100] with start < stop, positive sizes.
// One violation rejects the batch.
func Validate(entries []Entry) error {
	if len(entries) > groups.MaxGroups {
		return &groups.ValidationError{
			Batch: true,
			Rule:  fmt.Sprintf("at most %d groups allowed, got %d", groups.MaxGroups, len(entries)),
		}
	}
	for _, e := range entries {
		switch {
		case e.StartPercent < groups.MinTime:
			return &groups.ValidationError{GroupID: e.GroupID, Rule: fmt.Sprintf("start_percent must be >= %v", groups.MinTime)}
		case e.StopPercent > groups.MaxTime:
			return &groups.ValidationError{GroupID: e.GroupID, Rule: fmt.Sprintf("stop_percent must be <= %v", groups.MaxTime)}
		case e.StartPercent >= e.StopPercent:
			return &groups.ValidationError{GroupID: e.GroupID, Rule: "stop_percent must be greater than start_percent"}
		case e.GroupSize <= 0:
			return &groups.ValidationError{GroupID: e.GroupID, Rule: "group_size must be positive"}
		}
	}
	return nil
}

// TimePoints returns n evenly spaced samples across [0,100].
func TimePoints(n int) []float64 {
	return floats.Span(make([]float64, n), groups.MinTime, groups.MaxTime)
}

// isActive reports whether a group with the given window is active at t.
// Both window endpoints count as active.
func isActive(t, start, stop float64) bool {
	return start <= t && t <= stop
}

// ActivityMatrix builds the binary (group × time) activity matrix over n
// evenly spaced samples. Row order follows the entry order. An empty
// schedule yields a nil matrix; mat.Dense cannot represent zero rows.
func ActivityMatrix(entries []Entry, n int) (*mat.Dense, []float64) {
	times := TimePoints(n)
	if len(entries) == 0 {
		return nil, times
	}
	m := mat.NewDense(len(entries), n, nil)

	for i, e := range entries {
		for j, t := range times {
			if isActive(t, e.StartPercent, e.StopPercent) {
				m.Set(i, j, 1)
			}
		}
	}
	return m, times
}

// Pair is an overlapping group pair, ordered by entry position.
type Pair struct {
	GroupA int
	GroupB int
}

// OverlappingPairs reports every pair of groups sharing at least one active
// time sample. Brute-force over the matrix; fine for the five-group cap.
func OverlappingPairs(entries []Entry, m *mat.Dense) []Pair {
	if m == nil {
		return nil
	}
	rows, cols := m.Dims()

	var pairs []Pair
	for i := 0; i < rows; i++ {
		for j := i + 1; j < rows; j++ {
			for k := 0; k < cols; k++ {
				if m.At(i, k) == 1 && m.At(j, k) == 1 {
					pairs = append(pairs, Pair{GroupA: entries[i].GroupID, GroupB: entries[j].GroupID})
					break
				}
			}
		}
	}
	return pairs
}

// ActiveAt lists the IDs of groups active at time t.
func ActiveAt(entries []Entry, t float64) []int {
	var active []int
	for _, e := range entries {
		if isActive(t, e.StartPercent, e.StopPercent) {
			active = append(active, e.GroupID)
		}
	}
	return active
}

// ConcurrentStats summarises simultaneous activity across the matrix columns.
type ConcurrentStats struct {
	MaxConcurrent int
	MinConcurrent int
	AvgConcurrent float64
	TimesWithZero int
	TimesWithMax  int
}

// Concurrency computes per-sample concurrent group counts and their stats.
// A nil matrix (empty schedule) has no concurrent activity.
func Concurrency(m *mat.Dense) ConcurrentStats {
	if m == nil {
		return ConcurrentStats{}
	}
	rows, cols := m.Dims()
	if cols == 0 {
		return ConcurrentStats{}
	}

	counts := make([]float64, cols)
	for k := 0; k < cols; k++ {
		sum := 0
		for i := 0; i < rows; i++ {
			if m.At(i, k) == 1 {
				sum++
			}
		}
		counts[k] = float64(sum)
	}

	cs := ConcurrentStats{
		MaxConcurrent: int(floats.Max(counts)),
		MinConcurrent: int(floats.Min(counts)),
		AvgConcurrent: stat.Mean(counts, nil),
	}
	for _, c := range counts {
		if c == 0 {
			cs.TimesWithZero++
		}
		if int(c) == cs.MaxConcurrent {
			cs.TimesWithMax++
		}
	}
	return cs
}
