package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/projector"
	"github.com/jonathan/cv-builder/internal/types"
)

func TestRenderer_StartsIdle(t *testing.T) {
	r := NewRenderer(projector.LayoutA)
	assert.Equal(t, StateIdle, r.State())
}

func TestRenderer_UpdateRendersImmediately(t *testing.T) {
	r := NewRenderer(projector.LayoutA)

	snap := r.Update(&types.CVData{
		BasicDetails: types.BasicDetails{FirstName: "Jane", LastName: "Doe"},
	})

	assert.Equal(t, StateRendered, r.State())
	assert.Equal(t, uint64(1), snap.Revision)
	require.NotNil(t, snap.Document)
	assert.Contains(t, snap.Document.HTML, "Jane Doe")
}

func TestRenderer_PartialDataDegradesToPlaceholders(t *testing.T) {
	r := NewRenderer(projector.LayoutA)

	snap := r.Update(&types.CVData{})
	require.NotNil(t, snap.Document)
	assert.Contains(t, snap.Document.HTML, "Your Name")
	assert.False(t, snap.Document.Missing)

	snap = r.Update(nil)
	require.NotNil(t, snap.Document)
	assert.Contains(t, snap.Document.HTML, "Your Name")
}

func TestRenderer_RefreshIsMemoized(t *testing.T) {
	r := NewRenderer(projector.LayoutA)

	first := r.Update(&types.CVData{BasicDetails: types.BasicDetails{FirstName: "Jane"}})
	second := r.Refresh()

	// Same revision, same document pointer: no re-render happened.
	assert.Equal(t, first.Revision, second.Revision)
	assert.Same(t, first.Document, second.Document)

	third := r.Update(&types.CVData{BasicDetails: types.BasicDetails{FirstName: "Janet"}})
	assert.Equal(t, first.Revision+1, third.Revision)
	assert.NotSame(t, first.Document, third.Document)
}

func TestRenderer_SetLayoutReprojects(t *testing.T) {
	r := NewRenderer(projector.LayoutA)
	data := &types.CVData{BasicDetails: types.BasicDetails{FirstName: "Jane"}}
	first := r.Update(data)

	snap := r.SetLayout(projector.LayoutC)
	assert.Equal(t, first.Revision+1, snap.Revision)
	assert.Equal(t, projector.LayoutC, snap.Document.LayoutID)

	// Setting the same layout again is a no-op.
	again := r.SetLayout(projector.LayoutC)
	assert.Equal(t, snap.Revision, again.Revision)
	assert.Same(t, snap.Document, again.Document)
}

func TestRenderer_SetLayoutBeforeFirstRender(t *testing.T) {
	// A same-layout switch on a fresh renderer must still produce a
	// document, not an empty snapshot.
	r := NewRenderer(projector.LayoutA)

	snap := r.SetLayout(projector.LayoutA)
	require.NotNil(t, snap.Document)
	assert.Equal(t, projector.LayoutA, snap.Document.LayoutID)
	assert.Equal(t, StateRendered, r.State())
}

func TestRenderer_UnknownLayoutIsRenderedNotFailed(t *testing.T) {
	r := NewRenderer("layout-z")
	snap := r.Update(&types.CVData{})

	assert.Equal(t, StateRendered, r.State())
	require.NotNil(t, snap.Document)
	assert.True(t, snap.Document.Missing)
	assert.Contains(t, snap.Document.HTML, projector.FallbackMessage)
}

func TestRenderer_CurrentRendersOnce(t *testing.T) {
	r := NewRenderer(projector.LayoutB)

	snap := r.Current()
	require.NotNil(t, snap.Document)
	assert.Equal(t, StateRendered, r.State())
	assert.Contains(t, snap.Document.HTML, "Your Name")
}

func TestRenderer_SubscriberReceivesSnapshots(t *testing.T) {
	r := NewRenderer(projector.LayoutA)
	ch, cancel := r.Subscribe()
	defer cancel()

	r.Update(&types.CVData{BasicDetails: types.BasicDetails{FirstName: "Jane"}})

	snap := <-ch
	assert.Equal(t, uint64(1), snap.Revision)
	assert.Contains(t, snap.Document.HTML, "Jane")
}

func TestRenderer_SlowSubscriberGetsLatestOnly(t *testing.T) {
	r := NewRenderer(projector.LayoutA)
	ch, cancel := r.Subscribe()
	defer cancel()

	// Three rapid updates without the subscriber draining.
	r.Update(&types.CVData{BasicDetails: types.BasicDetails{FirstName: "One"}})
	r.Update(&types.CVData{BasicDetails: types.BasicDetails{FirstName: "Two"}})
	r.Update(&types.CVData{BasicDetails: types.BasicDetails{FirstName: "Three"}})

	snap := <-ch
	assert.Equal(t, uint64(3), snap.Revision)
	assert.Contains(t, snap.Document.HTML, "Three")

	select {
	case extra, ok := <-ch:
		if ok {
			t.Fatalf("expected no buffered snapshots, got revision %d", extra.Revision)
		}
	default:
	}
}

func TestRenderer_CancelledSubscriberIsDropped(t *testing.T) {
	r := NewRenderer(projector.LayoutA)
	ch, cancel := r.Subscribe()
	cancel()

	// Channel closes on cancel.
	_, ok := <-ch
	assert.False(t, ok)

	// Updates after cancel do not panic.
	r.Update(&types.CVData{})
}

func TestHub_GetOrCreate(t *testing.T) {
	h := NewHub()

	r1 := h.GetOrCreate("tab-1", projector.LayoutA)
	r2 := h.GetOrCreate("tab-1", projector.LayoutB)
	assert.Same(t, r1, r2, "existing session keeps its renderer")

	r3 := h.GetOrCreate("tab-2", projector.LayoutB)
	assert.NotSame(t, r1, r3)
	assert.Equal(t, 2, h.Len())
}

func TestHub_GetUnknownSession(t *testing.T) {
	h := NewHub()
	assert.Nil(t, h.Get("missing"))
}

func TestHub_Remove(t *testing.T) {
	h := NewHub()
	h.GetOrCreate("tab-1", projector.LayoutA)
	h.Remove("tab-1")
	assert.Nil(t, h.Get("tab-1"))
	assert.Equal(t, 0, h.Len())

	// Removing an unknown session is a no-op.
	h.Remove("tab-1")
}
