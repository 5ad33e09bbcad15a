// Package table provides shared helpers for header-addressed CSV tables.
//
// Input files are comma-separated with a header row; columns are located by
// name rather than position so callers tolerate reordered or extra columns.
package table

import (
	"fmt"
	"strconv"
	"strings"
)

// MissingColumnError reports a required column absent from an input table.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column: %s", e.Column)
}

// Index maps each required column name to its position in the header.
// Header cells are trimmed of surrounding whitespace before matching.
// The first absent column is reported as a MissingColumnError.
func Index(header []string, required []string) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		byName[strings.TrimSpace(name)] = i
	}

	idx := make(map[string]int, len(required))
	for _, name := range required {
		i, ok := byName[name]
		if !ok {
			return nil, &MissingColumnError{Column: name}
		}
		idx[name] = i
	}
	return idx, nil
}

// Float parses the named column of a data row.
func Float(record []string, idx map[string]int, column string, row int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(record[idx[column]]), 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: invalid %s value %q: %w", row, column, record[idx[column]], err)
	}
	return v, nil
}

// Int parses the named column of a data row.
func Int(record []string, idx map[string]int, column string, row int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(record[idx[column]]))
	if err != nil {
		return 0, fmt.Errorf("row %d: invalid %s value %q: %w", row, column, record[idx[column]], err)
	}
	return v, nil
}

// FormatFloat renders a float with the shortest representation that
// round-trips exactly. Used for all exported positions and times so
// repeated runs with the same seed produce byte-identical files.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
