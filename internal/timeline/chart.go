package timeline

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHTML writes a self-contained HTML line chart of group activity:
// one 0/1 series per group plus the total concurrent count per sample.
func (r *Report) RenderHTML(entries []Entry, w io.Writer) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Group activity timeline",
			Subtitle: fmt.Sprintf("%d groups, %d time samples", len(entries), len(r.TimePoints)),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time %"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "active"}),
	)

	labels := make([]string, len(r.TimePoints))
	for i, t := range r.TimePoints {
		labels[i] = fmt.Sprintf("%.1f", t)
	}
	line.SetXAxis(labels)

	rows, cols := 0, len(r.TimePoints)
	if r.Matrix != nil {
		rows, cols = r.Matrix.Dims()
	}
	for i := 0; i < rows; i++ {
		series := make([]opts.LineData, cols)
		for j := 0; j < cols; j++ {
			series[j] = opts.LineData{Value: r.Matrix.At(i, j)}
		}
		line.AddSeries(fmt.Sprintf("Group %d", entries[i].GroupID), series)
	}

	totals := make([]opts.LineData, cols)
	for j := 0; j < cols; j++ {
		sum := 0.0
		for i := 0; i < rows; i++ {
			sum += r.Matrix.At(i, j)
		}
		totals[j] = opts.LineData{Value: sum}
	}
	line.AddSeries("Total", totals)

	return line.Render(w)
}
