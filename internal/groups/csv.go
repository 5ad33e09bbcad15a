package groups

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/banshee-data/trajectory.report/internal/table"
)

// RequiredColumns lists the columns a group definition table must carry.
var RequiredColumns = []string{
	"group_id", "group_size", "start_percent", "stop_percent",
	"center_north", "center_east", "center_down",
	"spread_std", "mean_travel_distance", "travel_std", "category",
}

// LoadCSV reads group definitions from a comma-separated file with a header row.
func LoadCSV(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open groups file: %w", err)
	}
	defer f.Close()

	defs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// Read parses group definitions from CSV data. Column order does not matter;
// extra columns are ignored. Any missing required column or unparseable cell
// fails the whole read.
func Read(r io.Reader) ([]Definition, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := table.Index(header, RequiredColumns)
	if err != nil {
		return nil, err
	}

	var defs []Definition
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		d, err := parseDefinition(record, idx, row)
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, nil
}

func parseDefinition(record []string, idx map[string]int, row int) (Definition, error) {
	var d Definition
	var err error

	if d.GroupID, err = table.Int(record, idx, "group_id", row); err != nil {
		return d, err
	}
	if d.GroupSize, err = table.Int(record, idx, "group_size", row); err != nil {
		return d, err
	}
	if d.Category, err = table.Int(record, idx, "category", row); err != nil {
		return d, err
	}

	floatFields := []struct {
		column string
		dst    *float64
	}{
		{"start_percent", &d.StartPercent},
		{"stop_percent", &d.StopPercent},
		{"center_north", &d.Center.North},
		{"center_east", &d.Center.East},
		{"center_down", &d.Center.Down},
		{"spread_std", &d.SpreadStd},
		{"mean_travel_distance", &d.MeanTravelDistance},
		{"travel_std", &d.TravelStd},
	}
	for _, ff := range floatFields {
		if *ff.dst, err = table.Float(record, idx, ff.column, row); err != nil {
			return d, err
		}
	}
	return d, nil
}
