package sim

import "gonum.org/v1/gonum/stat"

// TravelStats summarises the travel distance distribution of a batch.
type TravelStats struct {
	Min  float64
	Max  float64
	Mean float64
	Std  float64
}

// SummaryStatistics aggregates headline figures for one simulation run.
type SummaryStatistics struct {
	TotalGroups           int
	TotalObjects          int
	NumTimePoints         int
	TotalTrajectoryPoints int
	ObjectsPerGroup       map[int]int
	CategoryCounts        map[int]int
	TravelDistance        TravelStats
}

// Summarise computes summary statistics over generated objects and samples.
func (s *Simulator) Summarise(objects []Object, samples []Sample) SummaryStatistics {
	stats := SummaryStatistics{
		TotalGroups:           len(s.Groups),
		TotalObjects:          len(objects),
		NumTimePoints:         s.NumTimePoints,
		TotalTrajectoryPoints: len(samples),
		ObjectsPerGroup:       make(map[int]int),
		CategoryCounts:        map[int]int{1: 0, 2: 0, 3: 0},
	}

	if len(objects) == 0 {
		return stats
	}

	distances := make([]float64, len(objects))
	stats.TravelDistance.Min = objects[0].TravelDistance
	stats.TravelDistance.Max = objects[0].TravelDistance

	for i, obj := range objects {
		stats.ObjectsPerGroup[obj.GroupID]++
		stats.CategoryCounts[obj.Category]++
		distances[i] = obj.TravelDistance

		if obj.TravelDistance < stats.TravelDistance.Min {
			stats.TravelDistance.Min = obj.TravelDistance
		}
		if obj.TravelDistance > stats.TravelDistance.Max {
			stats.TravelDistance.Max = obj.TravelDistance
		}
	}

	stats.TravelDistance.Mean = stat.Mean(distances, nil)
	stats.TravelDistance.Std = stat.StdDev(distances, nil)
	return stats
}
