package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/cv-builder/internal/projector"
	"github.com/jonathan/cv-builder/internal/types"
)

// previewRequest is a projection request: a data model plus a layout choice.
type previewRequest struct {
	LayoutID string        `json:"layout_id"`
	Data     *types.CVData `json:"data"`
}

// pushRequest is a live-session change: either field may be omitted to leave
// that aspect of the session untouched.
type pushRequest struct {
	LayoutID string        `json:"layout_id,omitempty"`
	Data     *types.CVData `json:"data,omitempty"`
}

// handlePreview projects a request body into HTML without touching any
// session state. Works for any auth state; partial or invalid data degrades
// to placeholder output.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rendered := projector.Project(req.Data, req.LayoutID)
	s.jsonResponse(w, http.StatusOK, rendered)
}

// handlePreviewStream serves the live preview of one edit session over SSE.
// Each rendered snapshot is pushed as a "rendered" event; the current
// snapshot is sent immediately on connect.
func (s *Server) handlePreviewStream(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")
	if sessionID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing session ID")
		return
	}

	layoutID := r.URL.Query().Get("layout_id")
	if layoutID == "" {
		layoutID = projector.LayoutA
	}
	renderer := s.previews.GetOrCreate(sessionID, layoutID)

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	snapshots, cancel := renderer.Subscribe()
	defer cancel()

	if err := sse.WriteEvent("rendered", renderer.Current()); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			if err := sse.WriteEvent("rendered", snap); err != nil {
				return
			}
		}
	}
}

// handlePreviewPush applies a data or layout change to a live session and
// returns the resulting snapshot. The session is created on first push.
func (s *Server) handlePreviewPush(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")
	if sessionID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing session ID")
		return
	}

	var req pushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	layoutID := req.LayoutID
	if layoutID == "" {
		layoutID = projector.LayoutA
	}
	renderer := s.previews.GetOrCreate(sessionID, layoutID)

	if req.LayoutID != "" {
		renderer.SetLayout(req.LayoutID)
	}

	snap := renderer.Refresh()
	if req.Data != nil {
		snap = renderer.Update(req.Data)
	}

	s.jsonResponse(w, http.StatusOK, snap)
}

// handlePreviewClose drops a live session.
func (s *Server) handlePreviewClose(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")
	if sessionID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing session ID")
		return
	}
	s.previews.Remove(sessionID)
	w.WriteHeader(http.StatusNoContent)
}
