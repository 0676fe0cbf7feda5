package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/topicnet/pkg/attr"
	"github.com/matzehuels/topicnet/pkg/errors"
	"github.com/matzehuels/topicnet/pkg/filter"
	"github.com/matzehuels/topicnet/pkg/graph"
	"github.com/matzehuels/topicnet/pkg/pipeline"
	"github.com/matzehuels/topicnet/pkg/render/nodelink"
)

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Loading bool   `json:"loading"`
	Session string `json:"session"`
	Error   string `json:"error,omitempty"`
	State   string `json:"state,omitempty"`
	Nodes   int    `json:"nodes,omitempty"`
	Visible int    `json:"visible,omitempty"`
}

// EventResponse is the body returned by every /events endpoint.
type EventResponse struct {
	Event   string   `json:"event"`
	State   string   `json:"state"`
	Visible []string `json:"visible"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := StatusResponse{Session: s.session}
	switch {
	case s.view != nil:
		resp.State = s.view.Controller.State().String()
		resp.Nodes = s.view.Dataset.Graph.NodeCount()
		resp.Visible = s.view.Dataset.Graph.VisibleCount()
	case s.loadErr != nil:
		resp.Error = errors.UserMessage(s.loadErr)
	default:
		resp.Loading = true
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	var l graph.Layout
	if !s.withView(w, func(v *pipeline.View) { l = v.Layout() }) {
		return
	}
	data, err := graph.MarshalLayout(l)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleLegend(w http.ResponseWriter, r *http.Request) {
	var rows []attr.LegendRow
	if !s.withView(w, func(v *pipeline.View) { rows = attr.Legend(v.Dataset.Topics) }) {
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	var dot string
	if !s.withView(w, func(v *pipeline.View) { dot = v.DOT(s.render) }) {
		return
	}
	svg, err := nodelink.RenderSVG(r.Context(), dot)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// =============================================================================
// Events
// =============================================================================

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, filter.Click(chi.URLParam(r, "nodeID")))
}

func (s *Server) handleDoubleClick(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, filter.DoubleClick(chi.URLParam(r, "nodeID")))
}

func (s *Server) handleStage(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, filter.Stage())
}

func (s *Server) handleLegendRow(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, filter.Legend(chi.URLParam(r, "topicID")))
}

// dispatch runs ev to completion under the server lock and reports the
// resulting selection.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, ev filter.Event) {
	var (
		resp EventResponse
		err  error
	)
	ok := s.withView(w, func(v *pipeline.View) {
		if err = v.Dispatch(r.Context(), ev); err != nil {
			return
		}
		resp = EventResponse{
			Event:   ev.String(),
			State:   v.Controller.State().String(),
			Visible: v.Controller.Visible(),
		}
	})
	if !ok {
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Debug("event", "event", resp.Event, "state", resp.State, "visible", len(resp.Visible))
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Helpers
// =============================================================================

// withView calls fn with the current view while holding the lock. When no
// view is installed it writes 503, or the load error after a failed load, and
// returns false.
func (s *Server) withView(w http.ResponseWriter, fn func(v *pipeline.View)) bool {
	s.mu.Lock()
	v, loadErr := s.view, s.loadErr
	if v == nil {
		s.mu.Unlock()
		if loadErr != nil {
			s.writeError(w, loadErr)
			return false
		}
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "network is still loading"})
		return false
	}
	defer s.mu.Unlock()
	fn(v)
	return true
}

// writeError answers with the status that err's code maps to.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
