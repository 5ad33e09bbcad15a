// Package groups defines spatial group parameters and their batch validation.
//
// A group places a number of objects around a centre point in the NED frame
// and declares the fraction of the normalised simulation timeline during
// which those objects are active.
package groups

import (
	"fmt"

	"github.com/banshee-data/trajectory.report/internal/ned"
)

// Validation limits. Times are percentages of the normalised timeline.
const (
	MaxGroups = 5
	MinTime   = 0.0
	MaxTime   = 100.0
)

// Definition holds the spatial and temporal parameters for one group.
type Definition struct {
	GroupID            int
	GroupSize          int
	StartPercent       float64
	StopPercent        float64
	Center             ned.Vector
	SpreadStd          float64
	MeanTravelDistance float64
	TravelStd          float64
	Category           int
}

// ValidationError reports the first constraint violated by a group batch.
// Validation is all-or-nothing: one bad row rejects the whole batch.
type ValidationError struct {
	GroupID int
	Batch   bool // violation is batch-level (e.g. group count), not tied to a row
	Rule    string
}

func (e *ValidationError) Error() string {
	if e.Batch {
		return fmt.Sprintf("invalid group batch: %s", e.Rule)
	}
	return fmt.Sprintf("invalid group %d: %s", e.GroupID, e.Rule)
}

// Validate checks every definition against the documented constraints.
// The first violation is returned; no partial acceptance.
func Validate(defs []Definition) error {
	if len(defs) > MaxGroups {
		return &ValidationError{Batch: true, Rule: fmt.Sprintf("at most %d groups allowed, got %d", MaxGroups, len(defs))}
	}

	seen := make(map[int]bool, len(defs))
	for _, d := range defs {
		switch {
		case d.GroupID <= 0:
			return &ValidationError{GroupID: d.GroupID, Rule: "group_id must be positive"}
		case seen[d.GroupID]:
			return &ValidationError{GroupID: d.GroupID, Rule: "duplicate group_id"}
		}
		seen[d.GroupID] = true

		switch {
		case d.GroupSize <= 0:
			return &ValidationError{GroupID: d.GroupID, Rule: "group_size must be positive"}
		case d.Category < 1 || d.Category > 3:
			return &ValidationError{GroupID: d.GroupID, Rule: fmt.Sprintf("category must be 1, 2 or 3, got %d", d.Category)}
		case d.SpreadStd <= 0:
			return &ValidationError{GroupID: d.GroupID, Rule: "spread_std must be positive"}
		case d.TravelStd <= 0:
			return &ValidationError{GroupID: d.GroupID, Rule: "travel_std must be positive"}
		case d.MeanTravelDistance < 0:
			return &ValidationError{GroupID: d.GroupID, Rule: "mean_travel_distance must be non-negative"}
		case d.StartPercent < MinTime:
			return &ValidationError{GroupID: d.GroupID, Rule: fmt.Sprintf("start_percent must be >= %v", MinTime)}
		case d.StopPercent > MaxTime:
			return &ValidationError{GroupID: d.GroupID, Rule: fmt.Sprintf("stop_percent must be <= %v", MaxTime)}
		case d.StartPercent >= d.StopPercent:
			return &ValidationError{GroupID: d.GroupID, Rule: "stop_percent must be greater than start_percent"}
		}
	}
	return nil
}

// TotalObjects returns the object count summed over all groups.
func TotalObjects(defs []Definition) int {
	total := 0
	for _, d := range defs {
		total += d.GroupSize
	}
	return total
}
