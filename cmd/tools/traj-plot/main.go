// Command traj-plot renders per-group path plots from a trajectory CSV
// produced by a simulation run.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/banshee-data/trajectory.report/internal/sim"
	"github.com/banshee-data/trajectory.report/internal/trajplot"
)

func main() {
	input := flag.String("i", "trajectories.csv", "trajectory CSV")
	outputDir := flag.String("o", "plots", "directory for PNG output")
	flag.Parse()

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("open %s: %v", *input, err)
	}
	defer f.Close()

	samples, err := sim.ReadTrajectories(f)
	if err != nil {
		log.Fatalf("read trajectories: %v", err)
	}

	n, err := trajplot.GeneratePlots(samples, *outputDir)
	if err != nil {
		log.Fatalf("plot: %v", err)
	}
	log.Printf("✓ Wrote %d plots to %s", n, *outputDir)
}
