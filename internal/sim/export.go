package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/banshee-data/trajectory.report/internal/fsutil"
	"github.com/banshee-data/trajectory.report/internal/groups"
	"github.com/banshee-data/trajectory.report/internal/table"
)

// ObjectColumns is the header of an exported objects table.
var ObjectColumns = []string{
	"object_id", "group_id", "category",
	"start_north", "start_east", "start_down",
	"end_north", "end_east", "end_down",
	"travel_distance",
}

// TrajectoryColumns is the header of an exported trajectories table.
var TrajectoryColumns = []string{
	"object_id", "group_id", "category", "time_percent", "north", "east", "down",
}

// ExportResult maps artifact names to the paths written.
type ExportResult struct {
	InputGroups  string
	Objects      string
	Trajectories string
	Summary      string
}

// Export writes the run artifacts (input echo, objects, trajectories and a
// plain-text summary) under outputDir. Files are named <prefix>_<kind>;
// an empty prefix defaults to the current timestamp, matching the rest of
// the toolbox's artifact naming.
func (s *Simulator) Export(fs fsutil.FileSystem, outputDir, prefix string, objects []Object, samples []Sample) (ExportResult, error) {
	var res ExportResult

	if err := fs.MkdirAll(outputDir, 0755); err != nil {
		return res, fmt.Errorf("create output dir %s: %w", outputDir, err)
	}
	if prefix == "" {
		prefix = s.Clock.Now().Format("20060102_1504")
	}

	res.InputGroups = filepath.Join(outputDir, prefix+"_input_groups.csv")
	if err := writeCSV(fs, res.InputGroups, groups.RequiredColumns, len(s.Groups), func(i int) []string {
		return groupRecord(s.Groups[i])
	}); err != nil {
		return res, err
	}

	res.Objects = filepath.Join(outputDir, prefix+"_objects.csv")
	if err := writeCSV(fs, res.Objects, ObjectColumns, len(objects), func(i int) []string {
		return objectRecord(objects[i])
	}); err != nil {
		return res, err
	}

	res.Trajectories = filepath.Join(outputDir, prefix+"_trajectories.csv")
	if err := writeCSV(fs, res.Trajectories, TrajectoryColumns, len(samples), func(i int) []string {
		return sampleRecord(samples[i])
	}); err != nil {
		return res, err
	}

	res.Summary = filepath.Join(outputDir, prefix+"_summary.txt")
	if err := s.writeSummary(fs, res.Summary, objects, samples); err != nil {
		return res, err
	}
	return res, nil
}

func writeCSV(fs fsutil.FileSystem, path string, header []string, rows int, record func(int) []string) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	for i := 0; i < rows; i++ {
		if err := w.Write(record(i)); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func groupRecord(g groups.Definition) []string {
	return []string{
		strconv.Itoa(g.GroupID),
		strconv.Itoa(g.GroupSize),
		table.FormatFloat(g.StartPercent),
		table.FormatFloat(g.StopPercent),
		table.FormatFloat(g.Center.North),
		table.FormatFloat(g.Center.East),
		table.FormatFloat(g.Center.Down),
		table.FormatFloat(g.SpreadStd),
		table.FormatFloat(g.MeanTravelDistance),
		table.FormatFloat(g.TravelStd),
		strconv.Itoa(g.Category),
	}
}

func objectRecord(o Object) []string {
	return []string{
		strconv.Itoa(o.ObjectID),
		strconv.Itoa(o.GroupID),
		strconv.Itoa(o.Category),
		table.FormatFloat(o.Start.North),
		table.FormatFloat(o.Start.East),
		table.FormatFloat(o.Start.Down),
		table.FormatFloat(o.End.North),
		table.FormatFloat(o.End.East),
		table.FormatFloat(o.End.Down),
		table.FormatFloat(o.TravelDistance),
	}
}

func sampleRecord(s Sample) []string {
	return []string{
		strconv.Itoa(s.ObjectID),
		strconv.Itoa(s.GroupID),
		strconv.Itoa(s.Category),
		table.FormatFloat(s.TimePercent),
		table.FormatFloat(s.Position.North),
		table.FormatFloat(s.Position.East),
		table.FormatFloat(s.Position.Down),
	}
}

func (s *Simulator) writeSummary(fs fsutil.FileSystem, path string, objects []Object, samples []Sample) error {
	stats := s.Summarise(objects, samples)

	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	fmt.Fprintln(f, "Spatial Group Simulation Summary")
	fmt.Fprintln(f, "============================================================")
	fmt.Fprintln(f)
	fmt.Fprintf(f, "total_groups: %d\n", stats.TotalGroups)
	fmt.Fprintf(f, "total_objects: %d\n", stats.TotalObjects)
	fmt.Fprintf(f, "num_time_points: %d\n", stats.NumTimePoints)
	fmt.Fprintf(f, "total_trajectory_points: %d\n", stats.TotalTrajectoryPoints)
	for _, g := range s.Groups {
		fmt.Fprintf(f, "objects_in_group_%d: %d\n", g.GroupID, stats.ObjectsPerGroup[g.GroupID])
	}
	for cat := 1; cat <= 3; cat++ {
		fmt.Fprintf(f, "category_%d: %d\n", cat, stats.CategoryCounts[cat])
	}
	fmt.Fprintf(f, "travel_distance_min: %s\n", table.FormatFloat(stats.TravelDistance.Min))
	fmt.Fprintf(f, "travel_distance_max: %s\n", table.FormatFloat(stats.TravelDistance.Max))
	fmt.Fprintf(f, "travel_distance_mean: %s\n", table.FormatFloat(stats.TravelDistance.Mean))
	fmt.Fprintf(f, "travel_distance_std: %s\n", table.FormatFloat(stats.TravelDistance.Std))

	return f.Close()
}

// ReadTrajectories parses an exported trajectories table. Used by tools that
// consume simulator output without regenerating it.
func ReadTrajectories(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := table.Index(header, TrajectoryColumns)
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		var s Sample
		if s.ObjectID, err = table.Int(record, idx, "object_id", row); err != nil {
			return nil, err
		}
		if s.GroupID, err = table.Int(record, idx, "group_id", row); err != nil {
			return nil, err
		}
		if s.Category, err = table.Int(record, idx, "category", row); err != nil {
			return nil, err
		}
		if s.TimePercent, err = table.Float(record, idx, "time_percent", row); err != nil {
			return nil, err
		}
		if s.Position.North, err = table.Float(record, idx, "north", row); err != nil {
			return nil, err
		}
		if s.Position.East, err = table.Float(record, idx, "east", row); err != nil {
			return nil, err
		}
		if s.Position.Down, err = table.Float(record, idx, "down", row); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, nil
}
