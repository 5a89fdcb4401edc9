package monitor

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/addcomposites/openaxis/internal/db"
	"github.com/addcomposites/openaxis/internal/frames"
	"github.com/addcomposites/openaxis/internal/httputil"
	"github.com/addcomposites/openaxis/internal/toolpath"
)

// handleToolpathChart renders a plan-view scatter (HTML) of a job's
// deposition points using go-echarts. This is a debugging-only endpoint
// to eyeball a stored toolpath without the 3D viewer.
// Query params:
//   - job_id (required)
//   - max_points (optional; default 8000) to reduce payload size
func (ws *WebServer) handleToolpathChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	jobID := r.URL.Query().Get("job_id")
	if jobID == "" {
		httputil.BadRequest(w, "missing 'job_id' parameter")
		return
	}

	maxPoints := 8000
	if mp := r.URL.Query().Get("max_points"); mp != "" {
		if v, err := strconv.Atoi(mp); err == nil && v > 100 && v <= 50000 {
			maxPoints = v
		}
	}

	tr, _, err := ws.db.LoadTrajectory(jobID)
	if errors.Is(err, db.ErrNotFound) {
		httputil.NotFound(w, "job not found")
		return
	}
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("load trajectory: %v", err))
		return
	}

	window := toolpath.NewDepositionWindow(tr.Waypoints, maxPoints)
	points := window.Points()
	if len(points) == 0 {
		httputil.NotFound(w, "job has no deposition points")
		return
	}

	data := make([]opts.ScatterData, 0, len(points))
	maxAbs := 0.0
	maxLayer := 0
	for _, wp := range points {
		// Plan view: scene X across, scene Z down the bed.
		p := frames.ToScene(wp.Position)
		if math.Abs(p.X) > maxAbs {
			maxAbs = math.Abs(p.X)
		}
		if math.Abs(p.Z) > maxAbs {
			maxAbs = math.Abs(p.Z)
		}
		if wp.Layer > maxLayer {
			maxLayer = wp.Layer
		}
		data = append(data, opts.ScatterData{Value: []interface{}{p.X, p.Z, wp.Layer}})
	}

	// Add a small padding so points at the edges are visible.
	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Toolpath Plan View", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Deposition Toolpath", Subtitle: fmt.Sprintf("job=%s points=%d", jobID, len(data))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Z (m)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxLayer),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#3e4989", "#26828e", "#35b779", "#b5de2b", "#fde725"}},
		}),
	)
	scatter.AddSeries("deposition", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleLayerPlot renders a PNG of per-layer print durations. Useful for
// spotting layers that dominate the print time before running playback.
// Query params:
//   - job_id (required)
func (ws *WebServer) handleLayerPlot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	jobID := r.URL.Query().Get("job_id")
	if jobID == "" {
		httputil.BadRequest(w, "missing 'job_id' parameter")
		return
	}

	tr, _, err := ws.db.LoadTrajectory(jobID)
	if errors.Is(err, db.ErrNotFound) {
		httputil.NotFound(w, "job not found")
		return
	}
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("load trajectory: %v", err))
		return
	}

	durations := LayerDurations(tr.Waypoints)
	if len(durations) == 0 {
		httputil.NotFound(w, "job has no timed waypoints")
		return
	}

	pts := make(plotter.XYs, len(durations))
	for i, d := range durations {
		pts[i] = plotter.XY{X: float64(i), Y: d}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Per-layer duration (job %s)", jobID)
	p.X.Label.Text = "Layer"
	p.Y.Label.Text = "Duration (s)"

	line, err := plotter.NewLine(pts)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to build plot: %v", err))
		return
	}
	p.Add(line)
	p.Add(plotter.NewGrid())

	wt, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render plot: %v", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := wt.WriteTo(w); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to write plot: %v", err))
	}
}

// LayerDurations sums the inter-waypoint time attributed to each layer.
// The gap between consecutive waypoints is charged to the layer being
// entered, matching how the time-index picks categorical fields.
func LayerDurations(waypoints []toolpath.Waypoint) []float64 {
	maxLayer := -1
	for _, wp := range waypoints {
		if wp.Layer > maxLayer {
			maxLayer = wp.Layer
		}
	}
	if maxLayer < 0 {
		return nil
	}
	durations := make([]float64, maxLayer+1)
	for i := 1; i < len(waypoints); i++ {
		dt := waypoints[i].Time - waypoints[i-1].Time
		if dt > 0 {
			durations[waypoints[i].Layer] += dt
		}
	}
	return durations
}
