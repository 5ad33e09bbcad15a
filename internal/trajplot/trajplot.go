// Package trajplot renders simulated trajectories as PNG plots for visual
// inspection of a run. One plot is produced per group, each object's path
// drawn in the North-East plane.
package trajplot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/trajectory.report/internal/sim"
)

// GeneratePlots writes one PNG per group under outputDir and returns the
// number of plots written.
func GeneratePlots(samples []sim.Sample, outputDir string) (int, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, fmt.Errorf("create plot dir: %w", err)
	}

	byGroup := make(map[int]map[int][]sim.Sample) // group -> object -> samples
	for _, s := range samples {
		if byGroup[s.GroupID] == nil {
			byGroup[s.GroupID] = make(map[int][]sim.Sample)
		}
		byGroup[s.GroupID][s.ObjectID] = append(byGroup[s.GroupID][s.ObjectID], s)
	}

	groupIDs := make([]int, 0, len(byGroup))
	for id := range byGroup {
		groupIDs = append(groupIDs, id)
	}
	sort.Ints(groupIDs)

	count := 0
	for _, groupID := range groupIDs {
		path := filepath.Join(outputDir, fmt.Sprintf("group_%d_paths.png", groupID))
		if err := plotGroup(groupID, byGroup[groupID], path); err != nil {
			return count, fmt.Errorf("group %d: %w", groupID, err)
		}
		count++
	}
	return count, nil
}

// plotGroup draws every object's N-E path for one group.
func plotGroup(groupID int, objects map[int][]sim.Sample, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Group %d - Object Paths (NE plane)", groupID)
	p.X.Label.Text = "East (m)"
	p.Y.Label.Text = "North (m)"

	objectIDs := make([]int, 0, len(objects))
	for id := range objects {
		objectIDs = append(objectIDs, id)
	}
	sort.Ints(objectIDs)

	colors := generateColors(len(objectIDs))

	for i, objectID := range objectIDs {
		traj := objects[objectID]
		sort.Slice(traj, func(a, b int) bool {
			return traj[a].TimePercent < traj[b].TimePercent
		})

		pts := make(plotter.XYs, len(traj))
		for j, s := range traj {
			pts[j] = plotter.XY{X: s.Position.East, Y: s.Position.North}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = colors[i]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("obj %d", objectID), line)

		// Mark the start position
		start, err := plotter.NewScatter(pts[:1])
		if err != nil {
			return err
		}
		start.Color = colors[i]
		start.Radius = vg.Points(3)
		p.Add(start)
	}

	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}

// generateColors creates a palette of distinct colors for object paths.
func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}

	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL to RGB (0-255 range)
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}
