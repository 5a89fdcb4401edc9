// Command path-plot renders offline visualisations of a trajectory JSON
// file: a per-layer duration PNG and a plan-view scatter chart (HTML).
// Useful for inspecting slicer output without running the service.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/addcomposites/openaxis/internal/frames"
	"github.com/addcomposites/openaxis/internal/monitor"
	"github.com/addcomposites/openaxis/internal/toolpath"
)

var (
	input     = flag.String("in", "", "Trajectory JSON file (required)")
	pngOut    = flag.String("png", "layers.png", "Per-layer duration plot output")
	chartOut  = flag.String("chart", "toolpath.html", "Plan-view scatter chart output")
	maxPoints = flag.Int("max-points", 8000, "Point budget for the scatter chart")
)

func main() {
	flag.Parse()
	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("Failed to read trajectory: %v", err)
	}
	var tr toolpath.Trajectory
	if err := json.Unmarshal(data, &tr); err != nil {
		log.Fatalf("Failed to parse trajectory: %v", err)
	}
	if len(tr.Waypoints) == 0 {
		log.Fatal("Trajectory has no waypoints")
	}

	window := toolpath.NewDepositionWindow(tr.Waypoints, *maxPoints)
	fmt.Printf("waypoints:  %d\n", len(tr.Waypoints))
	fmt.Printf("deposition: %d (after travel filter and budget)\n", len(window.Points()))
	fmt.Printf("layers:     %d\n", tr.TotalLayers())
	fmt.Printf("total time: %.1fs\n", tr.TotalTime())

	if err := writeLayerPlot(&tr, *pngOut); err != nil {
		log.Fatalf("Failed to write layer plot: %v", err)
	}
	fmt.Printf("wrote %s\n", *pngOut)

	if err := writeChart(window.Points(), *chartOut); err != nil {
		log.Fatalf("Failed to write chart: %v", err)
	}
	fmt.Printf("wrote %s\n", *chartOut)
}

func writeLayerPlot(tr *toolpath.Trajectory, path string) error {
	durations := monitor.LayerDurations(tr.Waypoints)
	if len(durations) == 0 {
		return fmt.Errorf("no timed waypoints to plot")
	}

	pts := make(plotter.XYs, len(durations))
	for i, d := range durations {
		pts[i] = plotter.XY{X: float64(i), Y: d}
	}

	p := plot.New()
	p.Title.Text = "Per-layer duration"
	p.X.Label.Text = "Layer"
	p.Y.Label.Text = "Duration (s)"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)
	p.Add(plotter.NewGrid())

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

func writeChart(points []toolpath.Waypoint, path string) error {
	data := make([]opts.ScatterData, 0, len(points))
	for _, wp := range points {
		p := frames.ToScene(wp.Position)
		data = append(data, opts.ScatterData{Value: []interface{}{p.X, p.Z, wp.Layer}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Toolpath Plan View", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Deposition Toolpath", Subtitle: fmt.Sprintf("points=%d", len(data))}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X (m)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Z (m)"}),
	)
	scatter.AddSeries("deposition", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return scatter.Render(f)
}
