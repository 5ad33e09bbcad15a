package worldentity

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/banshee-data/trajectory.report/internal/table"
)

// RequiredColumns lists the columns a convertible trajectory table must
// carry. Extra columns (the simulator also exports category) are ignored.
var RequiredColumns = []string{
	"object_id", "group_id", "time_percent", "north", "east", "down",
}

// ReadTrajectories parses a trajectory table. A missing required column is
// fatal before any file writes are attempted.
func ReadTrajectories(r io.Reader) ([]Row, error) {
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

	var rows []Row
	for n := 1; ; n++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n, err)
		}

		var row Row
		if row.ObjectID, err = table.Int(record, idx, "object_id", n); err != nil {
			return nil, err
		}
		if row.GroupID, err = table.Int(record, idx, "group_id", n); err != nil {
			return nil, err
		}
		if row.TimePercent, err = table.Float(record, idx, "time_percent", n); err != nil {
			return nil, err
		}
		if row.North, err = table.Float(record, idx, "north", n); err != nil {
			return nil, err
		}
		if row.East, err = table.Float(record, idx, "east", n); err != nil {
			return nil, err
		}
		if row.Down, err = table.Float(record, idx, "down", n); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ConvertFile reads one trajectory CSV and converts it.
func (c *Converter) ConvertFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadTrajectories(f)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}
	return c.Convert(rows)
}

// ConvertFiles converts several trajectory CSVs with one continuing key
// space, then rewrites the consolidated file with every entity seen across
// all inputs.
func (c *Converter) ConvertFiles(paths []string) (Result, error) {
	combined := Result{
		Entities: make(map[int]string),
		Files:    make(map[int]string),
	}

	for _, path := range paths {
		res, err := c.ConvertFile(path)
		if err != nil {
			return combined, err
		}
		for k, v := range res.Entities {
			combined.Entities[k] = v
		}
		for k, v := range res.Files {
			combined.Files[k] = v
		}
	}

	if err := c.writeConsolidated(combined.Entities); err != nil {
		return combined, err
	}
	combined.ConsolidatedPath = filepath.Join(c.outputRoot, ConsolidatedFilename)
	combined.NumEntities = len(combined.Entities)
	return combined, nil
}
