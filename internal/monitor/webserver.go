// Package monitor exposes the HTTP control surface of the playback
// engine: job management, simulation control, and debug visualisations.
package monitor

import (
	"context"
	"net/http"
	"time"

	"github.com/addcomposites/openaxis/internal/db"
	"github.com/addcomposites/openaxis/internal/httputil"
	"github.com/addcomposites/openaxis/internal/joints"
	"github.com/addcomposites/openaxis/internal/monitoring"
	"github.com/addcomposites/openaxis/internal/playback"
)

// WebServer handles the HTTP interface for the playback engine.
type WebServer struct {
	address     string
	server      *http.Server
	db          *db.DB
	ctrl        *playback.Controller
	homeTransit float64
}

// WebServerConfig contains configuration options for the web server.
type WebServerConfig struct {
	Address    string
	DB         *db.DB
	Controller *playback.Controller

	// HomeTransitSeconds is the duration of each home-transit phase used
	// when a loaded job carries a padded joint trajectory.
	HomeTransitSeconds float64
}

// NewWebServer creates a new web server with the provided configuration.
func NewWebServer(config WebServerConfig) *WebServer {
	ws := &WebServer{
		address:     config.Address,
		db:          config.DB,
		ctrl:        config.Controller,
		homeTransit: config.HomeTransitSeconds,
	}
	ws.server = &http.Server{
		Addr:    ws.address,
		Handler: ws.setupRoutes(),
	}
	return ws
}

// Start begins the HTTP server in a goroutine and shuts it down when the
// context is cancelled.
func (ws *WebServer) Start(ctx context.Context) error {
	go func() {
		monitoring.Logf("starting HTTP server on %s", ws.address)
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			monitoring.Logf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()
	monitoring.Logf("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("HTTP server shutdown error: %v", err)
		if err := ws.server.Close(); err != nil {
			monitoring.Logf("HTTP server force close error: %v", err)
		}
	}
	return nil
}

// setupRoutes configures the HTTP routes and handlers.
func (ws *WebServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", ws.handleHealth)

	mux.HandleFunc("/api/jobs", ws.handleJobs)
	mux.HandleFunc("/api/jobs/", ws.handleJobByID)

	mux.HandleFunc("/api/sim/start", ws.handleSimStart)
	mux.HandleFunc("/api/sim/pause", ws.handleSimPause)
	mux.HandleFunc("/api/sim/play", ws.handleSimPlay)
	mux.HandleFunc("/api/sim/stop", ws.handleSimStop)
	mux.HandleFunc("/api/sim/seek", ws.handleSimSeek)
	mux.HandleFunc("/api/sim/rate", ws.handleSimRate)
	mux.HandleFunc("/api/sim/status", ws.handleSimStatus)
	mux.HandleFunc("/api/sim/pose", ws.handleSimPose)

	mux.HandleFunc("/debug/toolpath/chart", ws.handleToolpathChart)
	mux.HandleFunc("/debug/layers/plot.png", ws.handleLayerPlot)

	return mux
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]string{"status": "ok"})
}

// homePose is the joint pose the arm parks in between jobs.
func homePose() joints.Sample {
	return make(joints.Sample, 6)
}
