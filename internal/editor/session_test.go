package editor

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/projector"
	"github.com/jonathan/cv-builder/internal/types"
)

// fakeGateway records create/update calls and can be told to fail.
type fakeGateway struct {
	failWith    error
	createCalls int
	updateCalls int
	lastTitle   string
	lastLayout  string
	lastData    *types.CVData
}

func (g *fakeGateway) Create(_ context.Context, title, layoutID string, data *types.CVData) (*types.CVDocument, error) {
	g.createCalls++
	g.lastTitle, g.lastLayout, g.lastData = title, layoutID, data
	if g.failWith != nil {
		return nil, g.failWith
	}
	return &types.CVDocument{
		ID:       uuid.New(),
		Title:    title,
		LayoutID: layoutID,
		Data:     *data,
	}, nil
}

func (g *fakeGateway) Update(_ context.Context, id uuid.UUID, title, layoutID string, data *types.CVData) (*types.CVDocument, error) {
	g.updateCalls++
	g.lastTitle, g.lastLayout, g.lastData = title, layoutID, data
	if g.failWith != nil {
		return nil, g.failWith
	}
	return &types.CVDocument{
		ID:       id,
		Title:    title,
		LayoutID: layoutID,
		Data:     *data,
	}, nil
}

// fakeUploader returns a canned outcome.
type fakeUploader struct {
	outcome UploadOutcome
}

func (u *fakeUploader) Upload(_ context.Context, _ string, _ string, _ io.Reader) UploadOutcome {
	return u.outcome
}

func TestSession_StartsCleanOnFirstStep(t *testing.T) {
	s := NewSession(&fakeGateway{}, nil, projector.LayoutA)

	assert.False(t, s.Dirty())
	assert.False(t, s.UnloadWarning())
	assert.Equal(t, StepBasicDetails, s.CurrentStep())

	// A blank session still previews placeholder content.
	snap := s.Preview()
	require.NotNil(t, snap.Document)
	assert.Contains(t, snap.Document.HTML, "Your Name")
}

func TestSession_EditMarksDirty(t *testing.T) {
	s := NewSession(&fakeGateway{}, nil, projector.LayoutA)

	s.SetBasicDetails(types.BasicDetails{FirstName: "Jane", LastName: "Doe"})

	assert.True(t, s.Dirty())
	assert.True(t, s.UnloadWarning())
	assert.Contains(t, s.Preview().Document.HTML, "Jane Doe")
}

func TestSession_NavigationDoesNotReproject(t *testing.T) {
	s := NewSession(&fakeGateway{}, nil, projector.LayoutA)
	s.SetBasicDetails(types.BasicDetails{FirstName: "Jane"})
	before := s.Preview()

	assert.Equal(t, StepEducation, s.NextStep())
	assert.Equal(t, StepExperience, s.NextStep())
	assert.Equal(t, StepEducation, s.PrevStep())

	after := s.Preview()
	assert.Equal(t, before.Revision, after.Revision)
	assert.Same(t, before.Document, after.Document)
}

func TestSession_StepNavigationClampsAtEnds(t *testing.T) {
	s := NewSession(&fakeGateway{}, nil, projector.LayoutA)

	assert.Equal(t, StepBasicDetails, s.PrevStep())

	for range Steps() {
		s.NextStep()
	}
	assert.Equal(t, StepSocial, s.CurrentStep())
	assert.Equal(t, StepSocial, s.NextStep())
}

func TestSession_SetLayoutSwitchesPreview(t *testing.T) {
	s := NewSession(&fakeGateway{}, nil, projector.LayoutA)

	s.SetLayout(projector.LayoutC)

	assert.True(t, s.Dirty())
	assert.Equal(t, projector.LayoutC, s.LayoutID())
	assert.Equal(t, projector.LayoutC, s.Preview().Document.LayoutID)
}

func TestSession_SubmitCreatesThenUpdates(t *testing.T) {
	gw := &fakeGateway{}
	s := NewSession(gw, nil, projector.LayoutA)
	s.SetTitle("My CV")
	s.SetBasicDetails(types.BasicDetails{FirstName: "Jane"})

	doc, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, gw.createCalls)
	assert.Equal(t, 0, gw.updateCalls)
	assert.Equal(t, "My CV", doc.Title)
	assert.False(t, s.Dirty())

	// Second submit goes through update with the assigned ID.
	s.SetBasicDetails(types.BasicDetails{FirstName: "Janet"})
	assert.True(t, s.Dirty())

	doc2, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, gw.createCalls)
	assert.Equal(t, 1, gw.updateCalls)
	assert.Equal(t, doc.ID, doc2.ID)
	assert.False(t, s.Dirty())
}

func TestSession_FailedSubmitKeepsDirtyState(t *testing.T) {
	gw := &fakeGateway{failWith: fmt.Errorf("connection refused")}
	s := NewSession(gw, nil, projector.LayoutA)
	s.SetTitle("My CV")
	s.SetBasicDetails(types.BasicDetails{FirstName: "Jane"})

	_, err := s.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save failed")
	assert.True(t, s.Dirty(), "unsaved changes must survive a failed save")

	// Retry after the gateway recovers.
	gw.failWith = nil
	_, err = s.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, s.Dirty())
}

func TestLoadSession_ExistingDocumentUpdates(t *testing.T) {
	gw := &fakeGateway{}
	doc := &types.CVDocument{
		ID:       uuid.New(),
		Title:    "Existing",
		LayoutID: projector.LayoutB,
		Data: types.CVData{
			BasicDetails: types.BasicDetails{FirstName: "Jane", LastName: "Doe"},
		},
		CreatedAt: time.Now(),
	}

	s := LoadSession(gw, nil, doc)
	assert.False(t, s.Dirty())
	assert.Equal(t, "Existing", s.Title())
	assert.Contains(t, s.Preview().Document.HTML, "Jane Doe")

	s.SetTitle("Renamed")
	saved, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, gw.createCalls)
	assert.Equal(t, 1, gw.updateCalls)
	assert.Equal(t, doc.ID, saved.ID)
}

func TestSession_AttachImageSuccess(t *testing.T) {
	up := &fakeUploader{outcome: UploadOutcome{OK: true, URL: "https://cdn.example.com/img.png"}}
	s := NewSession(&fakeGateway{}, up, projector.LayoutA)

	outcome := s.AttachImage(context.Background(), "img.png", "image/png", nil)

	assert.True(t, outcome.OK)
	assert.Equal(t, "https://cdn.example.com/img.png", s.Data().BasicDetails.Image)
	assert.True(t, s.Dirty())
	assert.Contains(t, s.Preview().Document.HTML, "https://cdn.example.com/img.png")
}

func TestSession_AttachImageFailureLeavesModelUntouched(t *testing.T) {
	up := &fakeUploader{outcome: UploadOutcome{OK: false, Reason: "file exceeds the 5 MiB limit"}}
	s := NewSession(&fakeGateway{}, up, projector.LayoutA)

	outcome := s.AttachImage(context.Background(), "big.png", "image/png", nil)

	assert.False(t, outcome.OK)
	assert.Equal(t, "file exceeds the 5 MiB limit", outcome.Reason)
	assert.Empty(t, s.Data().BasicDetails.Image)
	assert.False(t, s.Dirty())
}

func TestSession_AttachImageWithoutUploader(t *testing.T) {
	s := NewSession(&fakeGateway{}, nil, projector.LayoutA)

	outcome := s.AttachImage(context.Background(), "img.png", "image/png", nil)

	assert.False(t, outcome.OK)
	assert.NotEmpty(t, outcome.Reason)
}
