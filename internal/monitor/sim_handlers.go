package monitor

import (
	"fmt"
	"net/http"

	"github.com/addcomposites/openaxis/internal/httputil"
)

func (ws *WebServer) handleSimStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, ws.ctrl.Start())
}

func (ws *WebServer) handleSimPause(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, ws.ctrl.Pause())
}

func (ws *WebServer) handleSimPlay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, ws.ctrl.Resume())
}

func (ws *WebServer) handleSimStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, ws.ctrl.Stop())
}

// seekRequest carries either a target time or a target layer, not both.
type seekRequest struct {
	TimeS *float64 `json:"time_s,omitempty"`
	Layer *int     `json:"layer,omitempty"`
}

func (ws *WebServer) handleSimSeek(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	var req seekRequest
	if err := httputil.DecodeJSONBody(w, r, &req); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	switch {
	case req.TimeS != nil && req.Layer != nil:
		httputil.BadRequest(w, "specify either time_s or layer, not both")
	case req.TimeS != nil:
		httputil.WriteJSONOK(w, ws.ctrl.SeekTime(*req.TimeS))
	case req.Layer != nil:
		httputil.WriteJSONOK(w, ws.ctrl.SeekLayer(*req.Layer))
	default:
		httputil.BadRequest(w, "missing time_s or layer")
	}
}

type rateRequest struct {
	Rate float64 `json:"rate"`
}

func (ws *WebServer) handleSimRate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	var req rateRequest
	if err := httputil.DecodeJSONBody(w, r, &req); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if req.Rate <= 0 || req.Rate > 100 {
		httputil.BadRequest(w, fmt.Sprintf("rate must be in (0, 100], got %v", req.Rate))
		return
	}
	httputil.WriteJSONOK(w, ws.ctrl.SetSpeed(req.Rate))
}

func (ws *WebServer) handleSimStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, ws.ctrl.Snapshot())
}

func (ws *WebServer) handleSimPose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, ws.ctrl.CurrentPose())
}
