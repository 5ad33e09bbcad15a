// Command traj-convert converts trajectory CSV files into WORLD_ENTITY
// format: one tab-delimited trajectory file per entity plus a consolidated
// descriptor file. Entity keys continue across files so a batch of CSVs
// shares one key space.
package main

import (
	"flag"
	"log"

	"github.com/banshee-data/trajectory.report/internal/fsutil"
	"github.com/banshee-data/trajectory.report/internal/worldentity"
)

func main() {
	outputDir := flag.String("output-dir", "trajectories", "directory for WORLD_ENTITY output")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		log.Fatal("usage: traj-convert [-output-dir dir] trajectories.csv [more.csv ...]")
	}

	conv := worldentity.NewConverter(*outputDir, fsutil.OSFileSystem{})
	result, err := conv.ConvertFiles(paths)
	if err != nil {
		log.Fatalf("convert: %v", err)
	}

	log.Printf("converted %d files into %d entities", len(paths), result.NumEntities)
	log.Printf("✓ Created: %s", result.ConsolidatedPath)
}
