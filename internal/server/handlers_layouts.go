package server

import (
	"net/http"

	"github.com/jonathan/cv-builder/internal/projector"
)

// handleListLayouts returns the selectable layout records. Falls back to the
// built-in variants when the layouts table has not been seeded.
func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	layouts, err := s.store.ListLayouts(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if len(layouts) == 0 {
		builtins := make([]map[string]string, 0, len(projector.Variants()))
		for _, v := range projector.Variants() {
			builtins = append(builtins, map[string]string{
				"slug":        v.ID(),
				"name":        v.Name(),
				"description": v.Description(),
			})
		}
		s.jsonResponse(w, http.StatusOK, builtins)
		return
	}

	s.jsonResponse(w, http.StatusOK, layouts)
}

// handleGetLayout returns one layout record by slug.
func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	layout, err := s.store.GetLayoutBySlug(r.Context(), slug)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if layout == nil {
		// Unseeded databases still expose the built-in variants.
		if v, ok := projector.Lookup(slug); ok {
			s.jsonResponse(w, http.StatusOK, map[string]string{
				"slug":        v.ID(),
				"name":        v.Name(),
				"description": v.Description(),
			})
			return
		}
		nf := &ErrLayoutNotFound{Slug: slug}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, layout)
}
