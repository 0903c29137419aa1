package server

import (
	"net/http"
)

// maxImageFormBytes bounds the multipart form we are willing to parse.
const maxImageFormBytes = 6 << 20

// handleUploadImage stores a profile image and returns the outcome envelope.
// A failed upload is a 200 with ok=false and a reason; the client decides
// how to proceed, and nothing else in the edit flow is blocked.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if s.uploader == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "image uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageFormBytes)
	if err := r.ParseMultipartForm(maxImageFormBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing image field")
		return
	}
	defer file.Close()

	outcome := s.uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	s.jsonResponse(w, http.StatusOK, outcome)
}
