package monitor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/addcomposites/openaxis/internal/db"
	"github.com/addcomposites/openaxis/internal/httputil"
	"github.com/addcomposites/openaxis/internal/joints"
	"github.com/addcomposites/openaxis/internal/monitoring"
	"github.com/addcomposites/openaxis/internal/playback"
	"github.com/addcomposites/openaxis/internal/toolpath"
)

// maxJobBody caps trajectory uploads. Large prints run to hundreds of
// thousands of waypoints; 64MB covers them with headroom.
const maxJobBody = 64 << 20

// createJobRequest is the upload payload from the slicing pipeline.
type createJobRequest struct {
	Name       string               `json:"name"`
	Trajectory *toolpath.Trajectory `json:"trajectory"`
	Joints     joints.Trajectory    `json:"joints,omitempty"`
	Reachable  []bool               `json:"reachable,omitempty"`
}

// handleJobs serves GET (list) and POST (create) on /api/jobs.
func (ws *WebServer) handleJobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		jobs, err := ws.db.ListJobs()
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("list jobs: %v", err))
			return
		}
		if jobs == nil {
			jobs = []db.JobRecord{}
		}
		httputil.WriteJSONOK(w, jobs)

	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxJobBody)
		var req createJobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(w, fmt.Sprintf("invalid job payload: %v", err))
			return
		}
		rec, err := ws.db.CreateJob(req.Name, req.Trajectory, req.Joints, req.Reachable)
		if err != nil {
			httputil.BadRequest(w, fmt.Sprintf("create job: %v", err))
			return
		}
		monitoring.Logf("created job %s (%q, %d waypoints)", rec.ID, rec.Name, rec.WaypointCount)
		httputil.WriteJSON(w, http.StatusCreated, rec)

	default:
		httputil.MethodNotAllowed(w)
	}
}

// handleJobByID serves /api/jobs/{id} and /api/jobs/{id}/load.
func (ws *WebServer) handleJobByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		httputil.BadRequest(w, "missing job id")
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		rec, err := ws.db.GetJob(id)
		if errors.Is(err, db.ErrNotFound) {
			httputil.NotFound(w, "job not found")
			return
		}
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("get job: %v", err))
			return
		}
		httputil.WriteJSONOK(w, rec)

	case action == "" && r.Method == http.MethodDelete:
		err := ws.db.DeleteJob(id)
		if errors.Is(err, db.ErrNotFound) {
			httputil.NotFound(w, "job not found")
			return
		}
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("delete job: %v", err))
			return
		}
		httputil.WriteJSONOK(w, map[string]string{"deleted": id})

	case action == "load" && r.Method == http.MethodPost:
		ws.handleJobLoad(w, id)

	default:
		httputil.MethodNotAllowed(w)
	}
}

// handleJobLoad binds a stored job to the playback controller.
func (ws *WebServer) handleJobLoad(w http.ResponseWriter, id string) {
	tr, reachable, err := ws.db.LoadTrajectory(id)
	if errors.Is(err, db.ErrNotFound) {
		httputil.NotFound(w, "job not found")
		return
	}
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("load trajectory: %v", err))
		return
	}

	jointTr, err := ws.db.LoadJointTrajectory(id)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("load joints: %v", err))
		return
	}

	job := playback.Job{Trajectory: tr, Reachable: reachable}
	switch {
	case len(jointTr) == 0:
		// TCP-only playback.
	case len(jointTr) == len(tr.Waypoints)+2:
		// Padded trajectory: leading and trailing home samples.
		job.Joints = jointTr
		job.Pad = &joints.HomePad{Home: homePose(), TransitSeconds: ws.homeTransit}
	case len(jointTr) == len(tr.Waypoints):
		job.Joints = jointTr
	default:
		monitoring.Logf("job %s: %d joint samples for %d waypoints, ignoring joints", id, len(jointTr), len(tr.Waypoints))
	}

	ws.ctrl.LoadJob(job)
	monitoring.Logf("loaded job %s into playback (%d waypoints)", id, len(tr.Waypoints))
	httputil.WriteJSONOK(w, ws.ctrl.Snapshot())
}
