// Command timeline-report analyses a group schedule CSV: per-group activity
// windows, an activity table over sampled time points, overlapping pairs and
// concurrency statistics. With -total-time the percent windows are also
// projected onto a real event duration in minutes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/trajectory.report/internal/timeline"
)

func main() {
	schedulePath := flag.String("schedule", "schedule.csv", "group schedule CSV")
	numPoints := flag.Int("points", 101, "time samples across the 0-100% window")
	totalTime := flag.Float64("total-time", 0, "event duration in minutes; projects windows onto real time")
	htmlPath := flag.String("html", "", "write an interactive activity chart to this HTML file")
	flag.Parse()

	entries, err := timeline.LoadCSV(*schedulePath)
	if err != nil {
		log.Fatalf("load schedule: %v", err)
	}

	report, err := timeline.Analyse(entries, *numPoints)
	if err != nil {
		log.Fatalf("analyse: %v", err)
	}

	s := report.Summary
	fmt.Printf("Groups: %d, participants: %d\n", s.NumGroups, s.TotalParticipants)
	fmt.Printf("Activity window: %.1f%% - %.1f%%\n", s.EarliestStart, s.LatestStop)
	fmt.Printf("Group size: min %d, max %d, avg %.1f\n", s.MinGroupSize, s.MaxGroupSize, s.AvgGroupSize)
	fmt.Println()
	fmt.Println(report.Table)

	if len(report.Overlaps) == 0 {
		fmt.Println("No overlapping groups.")
	} else {
		for _, p := range report.Overlaps {
			fmt.Printf("Groups %d and %d overlap\n", p.GroupA, p.GroupB)
		}
	}
	fmt.Printf("Concurrency: max %d, min %d, avg %.2f\n",
		report.Stats.MaxConcurrent, report.Stats.MinConcurrent, report.Stats.AvgConcurrent)

	if *totalTime > 0 {
		fmt.Printf("\nProjected onto %.0f minutes:\n", *totalTime)
		for _, e := range entries {
			start := e.StartPercent / 100 * *totalTime
			stop := e.StopPercent / 100 * *totalTime
			fmt.Printf("  Group %d: %.1f - %.1f min (%.1f min active)\n",
				e.GroupID, start, stop, stop-start)
		}
	}

	if *htmlPath != "" {
		f, err := os.Create(*htmlPath)
		if err != nil {
			log.Fatalf("create chart file: %v", err)
		}
		defer f.Close()
		if err := report.RenderHTML(entries, f); err != nil {
			log.Fatalf("render chart: %v", err)
		}
		log.Printf("✓ Created: %s", *htmlPath)
	}
}
