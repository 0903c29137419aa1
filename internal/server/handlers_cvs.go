package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/db"
	"github.com/jonathan/cv-builder/internal/events"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/projector"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/server/middleware"
	"github.com/jonathan/cv-builder/internal/types"
)

// DocumentStore is the subset of db.DB the CV handlers depend on.
type DocumentStore interface {
	CreateCV(ctx context.Context, userID uuid.UUID, title, layoutID string, data *types.CVData, isPublic bool) (*db.CVDocument, error)
	GetCV(ctx context.Context, id uuid.UUID) (*db.CVDocument, error)
	GetCVForUser(ctx context.Context, id, userID uuid.UUID) (*db.CVDocument, error)
	UpdateCV(ctx context.Context, id, userID uuid.UUID, title, layoutID string, data *types.CVData, isPublic bool) (*db.CVDocument, error)
	DeleteCV(ctx context.Context, id, userID uuid.UUID) (bool, error)
	ListCVs(ctx context.Context, userID uuid.UUID) ([]db.CVDocument, error)
	GetLayoutBySlug(ctx context.Context, slug string) (*db.Layout, error)
	ListLayouts(ctx context.Context) ([]db.Layout, error)
}

// decodeSaveRequest decodes and validates a create/update payload, including
// JSON Schema validation of the data model at the save boundary.
func (s *Server) decodeSaveRequest(w http.ResponseWriter, r *http.Request) (*types.SaveCVRequest, bool) {
	var req types.SaveCVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	payload, err := json.Marshal(req.Data)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid data payload")
		return nil, false
	}
	if err := schemas.ValidateCVData(payload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return &req, true
}

// pathDocumentID parses the {id} path segment.
func (s *Server) pathDocumentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid document ID")
		return uuid.Nil, false
	}
	return id, true
}

// handleCreateCV creates a CV document owned by the authenticated user.
func (s *Server) handleCreateCV(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	req, ok := s.decodeSaveRequest(w, r)
	if !ok {
		return
	}

	isPublic := false
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	doc, err := s.store.CreateCV(r.Context(), userID, req.Title, req.LayoutID, &req.Data, isPublic)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.events.Publish(events.KindCreated, doc.ID, doc.UserID, doc.LayoutID)
	s.jsonResponse(w, http.StatusCreated, doc)
}

// handleListCVs lists the authenticated user's documents, most recently
// updated first.
func (s *Server) handleListCVs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	docs, err := s.store.ListCVs(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if docs == nil {
		docs = []db.CVDocument{}
	}
	s.jsonResponse(w, http.StatusOK, docs)
}

// handleGetCV retrieves one owned document.
func (s *Server) handleGetCV(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, ok := s.pathDocumentID(w, r)
	if !ok {
		return
	}

	doc, err := s.store.GetCVForUser(r.Context(), id, userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if doc == nil {
		nf := &ErrDocumentNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleUpdateCV replaces an owned document's title, layout and data.
func (s *Server) handleUpdateCV(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, ok := s.pathDocumentID(w, r)
	if !ok {
		return
	}

	req, ok := s.decodeSaveRequest(w, r)
	if !ok {
		return
	}

	isPublic := false
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	} else if existing, err := s.store.GetCVForUser(r.Context(), id, userID); err == nil && existing != nil {
		isPublic = existing.IsPublic
	}

	doc, err := s.store.UpdateCV(r.Context(), id, userID, req.Title, req.LayoutID, &req.Data, isPublic)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if doc == nil {
		nf := &ErrDocumentNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}

	s.events.Publish(events.KindUpdated, doc.ID, doc.UserID, doc.LayoutID)
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleDeleteCV hard-deletes an owned document.
func (s *Server) handleDeleteCV(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, ok := s.pathDocumentID(w, r)
	if !ok {
		return
	}

	deleted, err := s.store.DeleteCV(r.Context(), id, userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if !deleted {
		nf := &ErrDocumentNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}

	s.events.Publish(events.KindDeleted, id, userID, "")
	w.WriteHeader(http.StatusNoContent)
}

// loadRenderableCV fetches a document for projection: public documents are
// readable by anyone, private ones only by their owner.
func (s *Server) loadRenderableCV(w http.ResponseWriter, r *http.Request) *db.CVDocument {
	id, ok := s.pathDocumentID(w, r)
	if !ok {
		return nil
	}

	doc, err := s.store.GetCV(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return nil
	}
	if doc == nil {
		nf := &ErrDocumentNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return nil
	}

	if !doc.IsPublic {
		userID, err := middleware.GetUserID(r)
		if err != nil || userID != doc.UserID {
			// Indistinguishable from a missing document.
			nf := &ErrDocumentNotFound{ID: id}
			s.errorResponse(w, HTTPStatus(nf), nf.Error())
			return nil
		}
	}
	return doc
}

// handleGetRenderedCV projects a stored document into its layout's HTML.
func (s *Server) handleGetRenderedCV(w http.ResponseWriter, r *http.Request) {
	doc := s.loadRenderableCV(w, r)
	if doc == nil {
		return
	}

	rendered := projector.Project(&doc.Data, doc.LayoutID)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(export.Standalone(doc.Title, rendered.HTML)))
}

// handleExportCVPDF renders a stored document to PDF via headless Chrome.
func (s *Server) handleExportCVPDF(w http.ResponseWriter, r *http.Request) {
	doc := s.loadRenderableCV(w, r)
	if doc == nil {
		return
	}

	rendered := projector.Project(&doc.Data, doc.LayoutID)
	pdf, err := export.ToPDF(r.Context(), export.Standalone(doc.Title, rendered.HTML), export.Options{})
	if err != nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "PDF export unavailable: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="cv.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
