package timeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/banshee-data/trajectory.report/internal/table"
)

// RequiredColumns lists the columns a schedule table must carry.
var RequiredColumns = []string{"group_id", "group_size", "start_percent", "stop_percent"}

// LoadCSV reads schedule entries from a comma-separated file with a header row.
func LoadCSV(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schedule file: %w", err)
	}
	defer f.Close()

	entries, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Read parses schedule entries from CSV data. Extra columns (a full group
// definition table is a superset of the schedule) are ignored.
func Read(r io.Reader) ([]Entry, error) {
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

	var entries []Entry
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		var e Entry
		if e.GroupID, err = table.Int(record, idx, "group_id", row); err != nil {
			return nil, err
		}
		if e.GroupSize, err = table.Int(record, idx, "group_size", row); err != nil {
			return nil, err
		}
		if e.StartPercent, err = table.Float(record, idx, "start_percent", row); err != nil {
			return nil, err
		}
		if e.StopPercent, err = table.Float(record, idx, "stop_percent", row); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
