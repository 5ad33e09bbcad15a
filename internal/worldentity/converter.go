// Package worldentity reformats trajectory tables into the WORLD_ENTITY
// text format consumed by an external simulation environment.
//
// Each distinct (object_id, group_id) identity is assigned a sequential
// integer key. Every key gets a tab-delimited trajectory file under the
// G/ subdirectory of the output root, and one consolidated file collects a
// fixed-grammar descriptor block per key.
package worldentity

import (
	"encoding/csv"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/banshee-data/trajectory.report/internal/fsutil"
	"github.com/banshee-data/trajectory.report/internal/table"
)

// ConsolidatedFilename is the fixed name of the joined descriptor file,
// relative to the output root.
const ConsolidatedFilename = "all_G_WORLD_ENTITIES.txt"

// TrajectoryHeader is the exact header of every per-object trajectory file.
var TrajectoryHeader = []string{"FIELDS", "FRAME", "TIME", "POS_N", "POS_E", "POS_D"}

// Row is one trajectory sample as the converter sees it. Any table carrying
// these column semantics converts; the simulator's category column is not
// required.
type Row struct {
	ObjectID    int
	GroupID     int
	TimePercent float64
	North       float64
	East        float64
	Down        float64
}

// ObjectKey identifies a distinct object across input tables.
type ObjectKey struct {
	ObjectID int
	GroupID  int
}

// Result collects the artifacts of one conversion.
type Result struct {
	// Entities maps each key to its descriptor block.
	Entities map[int]string
	// Files maps each key to its trajectory file path.
	Files map[int]string
	// ConsolidatedPath is the joined descriptor file.
	ConsolidatedPath string
	NumEntities      int
}

// Converter assigns entity keys and writes WORLD_ENTITY artifacts.
// The key counter persists across conversions so several input tables can
// share one continuing key space.
type Converter struct {
	outputRoot string
	fs         fsutil.FileSystem
	nextKey    int
	keys       map[ObjectKey]int
}

// NewConverter creates a converter writing under outputRoot.
func NewConverter(outputRoot string, fs fsutil.FileSystem) *Converter {
	return &Converter{
		outputRoot: outputRoot,
		fs:         fs,
		nextKey:    1,
		keys:       make(map[ObjectKey]int),
	}
}

// AssignKeys allocates sequential keys, starting at 1, for every distinct
// object identity not yet seen, in first-seen row order. Re-running over the
// same table yields the same mapping.
func (c *Converter) AssignKeys(rows []Row) map[ObjectKey]int {
	for _, r := range rows {
		k := ObjectKey{ObjectID: r.ObjectID, GroupID: r.GroupID}
		if _, ok := c.keys[k]; !ok {
			c.keys[k] = c.nextKey
			c.nextKey++
		}
	}

	assigned := make(map[ObjectKey]int, len(c.keys))
	for k, v := range c.keys {
		assigned[k] = v
	}
	return assigned
}

// FormatTrajectory renders one object's samples as trajectory file records:
// a deliberately empty FIELDS cell (an empty string, never a NaN marker), a
// constant FRAME of 0.0, then time and NED position.
func FormatTrajectory(rows []Row) [][]string {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			"",
			"0.0",
			table.FormatFloat(r.TimePercent),
			table.FormatFloat(r.North),
			table.FormatFloat(r.East),
			table.FormatFloat(r.Down),
		}
	}
	return records
}

// WriteTrajectoryFile writes an object's formatted records to
// <root>/G/G_<key>_.txt, tab-separated with the fixed header.
func (c *Converter) WriteTrajectoryFile(key int, records [][]string) (string, error) {
	gDir := filepath.Join(c.outputRoot, "G")
	if err := c.fs.MkdirAll(gDir, 0755); err != nil {
		return "", fmt.Errorf("create trajectory dir %s: %w", gDir, err)
	}

	path := filepath.Join(gDir, fmt.Sprintf("G_%d_.txt", key))
	f, err := c.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'
	if err := w.Write(TrajectoryHeader); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			f.Close()
			return "", fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// BuildDescriptor renders the WORLD_ENTITY block for a key. The position is
// the object's first sample, formatted at full precision; scale is emitted
// blank, which the external consumer tolerates.
func (c *Converter) BuildDescriptor(key int, first Row) string {
	root := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(c.outputRoot)), "./")
	return fmt.Sprintf(`WORLD_ENTITY {
    name = G_%d
    position = "%s, %s, %s"
    scale =
    stateAttsLoadFilename = './%s/G/G_%d_.txt'
}`, key,
		table.FormatFloat(first.North), table.FormatFloat(first.East), table.FormatFloat(first.Down),
		root, key)
}

// Convert assigns keys for the table and, in ascending key order, writes one
// trajectory file and builds one descriptor per key, then writes the
// consolidated descriptor file. Any write failure aborts the conversion.
func (c *Converter) Convert(rows []Row) (Result, error) {
	res := Result{
		Entities: make(map[int]string),
		Files:    make(map[int]string),
	}

	c.AssignKeys(rows)

	byKey := make(map[int][]Row)
	for _, r := range rows {
		key := c.keys[ObjectKey{ObjectID: r.ObjectID, GroupID: r.GroupID}]
		byKey[key] = append(byKey[key], r)
	}

	for _, key := range sortedKeys(byKey) {
		keyRows := byKey[key]

		path, err := c.WriteTrajectoryFile(key, FormatTrajectory(keyRows))
		if err != nil {
			return res, err
		}
		res.Files[key] = path
		res.Entities[key] = c.BuildDescriptor(key, keyRows[0])
	}

	if err := c.writeConsolidated(res.Entities); err != nil {
		return res, err
	}
	res.ConsolidatedPath = filepath.Join(c.outputRoot, ConsolidatedFilename)
	res.NumEntities = len(res.Entities)
	return res, nil
}

// writeConsolidated joins descriptor blocks with a blank line between
// consecutive blocks, in ascending key order.
func (c *Converter) writeConsolidated(entities map[int]string) error {
	if err := c.fs.MkdirAll(c.outputRoot, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", c.outputRoot, err)
	}

	blocks := make([]string, 0, len(entities))
	for _, key := range sortedKeys(entities) {
		blocks = append(blocks, entities[key])
	}

	path := filepath.Join(c.outputRoot, ConsolidatedFilename)
	if err := c.fs.WriteFile(path, []byte(strings.Join(blocks, "\n\n")), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
