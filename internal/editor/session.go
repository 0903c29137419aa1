// Package editor implements the multi-step CV edit session: list mutation,
// dirty-state tracking, live preview wiring and submission to the
// persistence gateway.
package editor

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/preview"
	"github.com/jonathan/cv-builder/internal/types"
)

// Step is one logical page of the editor form.
type Step string

const (
	StepBasicDetails Step = "basic_details"
	StepEducation    Step = "education"
	StepExperience   Step = "experience"
	StepProjects     Step = "projects"
	StepSkills       Step = "skills"
	StepSocial       Step = "social"
)

// Steps returns the editor steps in form order.
func Steps() []Step {
	return []Step{StepBasicDetails, StepEducation, StepExperience, StepProjects, StepSkills, StepSocial}
}

// Gateway is the persistence boundary the editor submits to. NotFound from
// Update is reported as an error by implementations.
type Gateway interface {
	Create(ctx context.Context, title, layoutID string, data *types.CVData) (*types.CVDocument, error)
	Update(ctx context.Context, id uuid.UUID, title, layoutID string, data *types.CVData) (*types.CVDocument, error)
}

// ImageUploader stores a profile image and reports the outcome as a value,
// success with a URL or failure with a reason.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, contentType string, body io.Reader) UploadOutcome
}

// UploadOutcome is the explicit result of an image upload attempt.
type UploadOutcome struct {
	OK     bool   `json:"ok"`
	URL    string `json:"url,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Session is one user's edit session over a single CV document. Each tab
// gets its own session; cross-tab conflicts resolve last-write-wins at the
// gateway.
type Session struct {
	gateway  Gateway
	uploader ImageUploader
	renderer *preview.Renderer

	documentID *uuid.UUID // nil until first successful create
	title      string
	layoutID   string
	data       *types.CVData

	stepIndex int
	dirty     bool
}

// NewSession starts a blank edit session on the given layout.
func NewSession(gateway Gateway, uploader ImageUploader, layoutID string) *Session {
	data := &types.CVData{}
	r := preview.NewRenderer(layoutID)
	r.Update(data)
	return &Session{
		gateway:  gateway,
		uploader: uploader,
		renderer: r,
		layoutID: layoutID,
		data:     data,
	}
}

// LoadSession starts an edit session over an existing document.
func LoadSession(gateway Gateway, uploader ImageUploader, doc *types.CVDocument) *Session {
	data := doc.Data
	s := NewSession(gateway, uploader, doc.LayoutID)
	id := doc.ID
	s.documentID = &id
	s.title = doc.Title
	s.data = &data
	s.renderer.Update(s.data)
	return s
}

// Data returns the live data model. Callers mutate through Session methods
// so dirty tracking stays accurate.
func (s *Session) Data() *types.CVData { return s.data }

// Renderer exposes the session's live preview renderer.
func (s *Session) Renderer() *preview.Renderer { return s.renderer }

// Dirty reports whether unsaved changes exist relative to the last
// confirmed save.
func (s *Session) Dirty() bool { return s.dirty }

// UnloadWarning reports whether navigating away should warn the user.
func (s *Session) UnloadWarning() bool { return s.dirty }

// CurrentStep returns the active form step.
func (s *Session) CurrentStep() Step { return Steps()[s.stepIndex] }

// NextStep advances the form, stopping at the last step. Navigation does
// not touch the data model, so the preview is not re-projected.
func (s *Session) NextStep() Step {
	if s.stepIndex < len(Steps())-1 {
		s.stepIndex++
	}
	s.renderer.Refresh()
	return s.CurrentStep()
}

// PrevStep steps the form back, stopping at the first step.
func (s *Session) PrevStep() Step {
	if s.stepIndex > 0 {
		s.stepIndex--
	}
	s.renderer.Refresh()
	return s.CurrentStep()
}

// markDirty records a model change and re-projects the preview.
func (s *Session) markDirty() {
	s.dirty = true
	s.renderer.Update(s.data)
}

// SetTitle updates the document title.
func (s *Session) SetTitle(title string) {
	if title == s.title {
		return
	}
	s.title = title
	s.dirty = true
}

// Title returns the working document title.
func (s *Session) Title() string { return s.title }

// SetLayout switches the layout variant used for preview and save.
func (s *Session) SetLayout(layoutID string) {
	if layoutID == s.layoutID {
		return
	}
	s.layoutID = layoutID
	s.dirty = true
	s.renderer.SetLayout(layoutID)
}

// LayoutID returns the active layout identifier.
func (s *Session) LayoutID() string { return s.layoutID }

// SetBasicDetails replaces the contact block.
func (s *Session) SetBasicDetails(d types.BasicDetails) {
	s.data.BasicDetails = d
	s.markDirty()
}

// Preview returns the latest rendered snapshot.
func (s *Session) Preview() preview.Snapshot {
	return s.renderer.Current()
}

// AttachImage uploads a profile image and, on success, points the data
// model at the stored URL. The outcome is returned either way; a failed
// upload leaves the model untouched and never blocks the rest of the
// session.
func (s *Session) AttachImage(ctx context.Context, filename, contentType string, body io.Reader) UploadOutcome {
	if s.uploader == nil {
		return UploadOutcome{Reason: "image uploads are not configured"}
	}
	outcome := s.uploader.Upload(ctx, filename, contentType, body)
	if outcome.OK {
		s.data.BasicDetails.Image = outcome.URL
		s.markDirty()
	}
	return outcome
}

// Submit persists the session: create on first save, update afterwards.
// Dirty state clears only on confirmed success; on failure the session
// keeps its unsaved changes so nothing is silently lost.
func (s *Session) Submit(ctx context.Context) (*types.CVDocument, error) {
	var (
		doc *types.CVDocument
		err error
	)
	if s.documentID == nil {
		doc, err = s.gateway.Create(ctx, s.title, s.layoutID, s.data)
	} else {
		doc, err = s.gateway.Update(ctx, *s.documentID, s.title, s.layoutID, s.data)
	}
	if err != nil {
		return nil, fmt.Errorf("save failed: %w", err)
	}

	id := doc.ID
	s.documentID = &id
	s.dirty = false
	return doc, nil
}
