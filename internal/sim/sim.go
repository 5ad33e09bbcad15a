// Package sim generates randomised object positions and time-sampled
// trajectories for spatial groups.
//
// Objects start near their group centre, travel a distance drawn from the
// group's travel distribution in a random direction, and are linearly
// interpolated between start and end across the group's active window.
// All randomness flows through a caller-supplied generator: the same seed,
// group table and sample count reproduces byte-identical output.
package sim

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banshee-data/trajectory.report/internal/groups"
	"github.com/banshee-data/trajectory.report/internal/ned"
	"github.com/banshee-data/trajectory.report/internal/timeutil"
)

// Object is one simulated entity. Immutable once generated.
type Object struct {
	ObjectID       int // sequential across the whole batch, starting at 1
	GroupID        int
	Category       int
	Start          ned.Vector
	End            ned.Vector
	TravelDistance float64
}

// Sample is an object's interpolated position at one time point.
type Sample struct {
	ObjectID    int
	GroupID     int
	Category    int
	TimePercent float64
	Position    ned.Vector
}

// Simulator generates objects and trajectories for a validated group batch.
type Simulator struct {
	Groups        []groups.Definition
	NumTimePoints int

	// Clock stamps exported artifacts when no prefix is given.
	Clock timeutil.Clock
}

// New validates the group batch and returns a simulator over it.
// Validation is all-or-nothing; a single bad group rejects the batch.
func New(defs []groups.Definition, numTimePoints int) (*Simulator, error) {
	if numTimePoints < 2 {
		return nil, fmt.Errorf("num_time_points must be at least 2, got %d", numTimePoints)
	}
	if err := groups.Validate(defs); err != nil {
		return nil, err
	}
	return &Simulator{Groups: defs, NumTimePoints: numTimePoints, Clock: timeutil.RealClock{}}, nil
}

// GenerateObjects draws start positions, travel distances and directions for
// every object in every group. Object IDs count up from 1 across the batch in
// group order, not per group.
//
// Travel distances are Normal draws clamped at zero, never resampled, so the
// empirical mean sits slightly above the nominal parameter when the mean is
// small relative to the standard deviation. Directions are normalised triples
// of standard Normal draws; this sampling is not uniform over the sphere.
func (s *Simulator) GenerateObjects(rng *rand.Rand) []Object {
	objects := make([]Object, 0, groups.TotalObjects(s.Groups))
	objectID := 1

	for _, g := range s.Groups {
		placement := distuv.Normal{Mu: 0, Sigma: g.SpreadStd, Src: rng}
		travel := distuv.Normal{Mu: g.MeanTravelDistance, Sigma: g.TravelStd, Src: rng}
		unit := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}

		for i := 0; i < g.GroupSize; i++ {
			start := g.Center.Add(ned.Vector{
				North: placement.Rand(),
				East:  placement.Rand(),
				Down:  placement.Rand(),
			})

			distance := travel.Rand()
			if distance < 0 {
				distance = 0
			}

			direction := ned.Vector{
				North: unit.Rand(),
				East:  unit.Rand(),
				Down:  unit.Rand(),
			}.Unit()

			objects = append(objects, Object{
				ObjectID:       objectID,
				GroupID:        g.GroupID,
				Category:       g.Category,
				Start:          start,
				End:            start.Add(direction.Scale(distance)),
				TravelDistance: distance,
			})
			objectID++
		}
	}
	return objects
}

// GenerateTrajectories samples each object's position on an evenly spaced
// grid over [0,100], restricted to the object's group window. The exact
// window endpoints are always included even when they miss the grid, so a
// trajectory begins at the object's start position and ends at its end
// position.
func (s *Simulator) GenerateTrajectories(objects []Object) ([]Sample, error) {
	grid := floats.Span(make([]float64, s.NumTimePoints), 0, 100)

	windows := make(map[int]groups.Definition, len(s.Groups))
	for _, g := range s.Groups {
		windows[g.GroupID] = g
	}

	var samples []Sample
	for _, obj := range objects {
		g, ok := windows[obj.GroupID]
		if !ok {
			return nil, fmt.Errorf("object %d references unknown group %d", obj.ObjectID, obj.GroupID)
		}

		times := activeTimes(grid, g.StartPercent, g.StopPercent)
		for _, t := range times {
			alpha := 0.0
			if g.StopPercent != g.StartPercent {
				alpha = (t - g.StartPercent) / (g.StopPercent - g.StartPercent)
			}

			samples = append(samples, Sample{
				ObjectID:    obj.ObjectID,
				GroupID:     obj.GroupID,
				Category:    obj.Category,
				TimePercent: t,
				Position:    ned.Lerp(obj.Start, obj.End, alpha),
			})
		}
	}
	return samples, nil
}

// activeTimes filters the grid to [start, stop] and forces the exact
// endpoints into the result.
func activeTimes(grid []float64, start, stop float64) []float64 {
	times := make([]float64, 0, len(grid)+2)
	for _, t := range grid {
		if t >= start && t <= stop {
			times = append(times, t)
		}
	}

	if len(times) == 0 || times[0] != start {
		times = append([]float64{start}, times...)
	}
	if times[len(times)-1] != stop {
		times = append(times, stop)
	}
	return times
}
