// Package preview keeps an in-progress CV data model projected into HTML,
// re-rendering on every observed change for the duration of an edit session.
package preview

import (
	"sync"

	"github.com/jonathan/cv-builder/internal/projector"
	"github.com/jonathan/cv-builder/internal/types"
)

// State is the renderer lifecycle state. There is no terminal state; the
// renderer lives as long as its edit session.
type State string

const (
	StateIdle      State = "idle"
	StateRendering State = "rendering"
	StateRendered  State = "rendered"
)

// Snapshot is one rendered preview, tagged with the data revision that
// produced it.
type Snapshot struct {
	Revision uint64                      `json:"revision"`
	Document *projector.RenderedDocument `json:"document"`
}

// Renderer holds the live (possibly partial or invalid) CV data model for
// one edit session and re-invokes the projector synchronously on every
// change. Data-shape problems degrade to placeholder output; the renderer
// never fails.
type Renderer struct {
	mu       sync.Mutex
	data     *types.CVData
	layoutID string
	state    State
	revision uint64 // bumped on every data/layout change

	rendered    *projector.RenderedDocument
	renderedRev uint64 // revision the current document was rendered from

	subscribers map[int]chan Snapshot
	nextSubID   int
}

// NewRenderer creates an idle renderer for the given layout variant.
func NewRenderer(layoutID string) *Renderer {
	return &Renderer{
		layoutID:    layoutID,
		state:       StateIdle,
		subscribers: make(map[int]chan Snapshot),
	}
}

// State returns the current lifecycle state.
func (r *Renderer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Update replaces the live data model and re-projects immediately.
func (r *Renderer) Update(data *types.CVData) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = data
	r.revision++
	return r.renderLocked()
}

// SetLayout switches the active layout variant and re-projects.
func (r *Renderer) SetLayout(layoutID string) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if layoutID == r.layoutID {
		// No-op switch, but render once if nothing has been rendered yet.
		if r.rendered != nil && r.renderedRev == r.revision {
			return Snapshot{Revision: r.renderedRev, Document: r.rendered}
		}
		return r.renderLocked()
	}
	r.layoutID = layoutID
	r.revision++
	return r.renderLocked()
}

// Refresh re-projects only if the data or layout changed since the last
// render. Unrelated state changes (navigation UI and the like) route through
// here and do not re-invoke the projector.
func (r *Renderer) Refresh() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rendered != nil && r.renderedRev == r.revision {
		return Snapshot{Revision: r.renderedRev, Document: r.rendered}
	}
	return r.renderLocked()
}

// Current returns the latest rendered snapshot, rendering once if the
// session has never rendered.
func (r *Renderer) Current() Snapshot {
	return r.Refresh()
}

// renderLocked projects the current data and notifies subscribers.
// Callers must hold r.mu.
func (r *Renderer) renderLocked() Snapshot {
	r.state = StateRendering
	doc := projector.Project(r.data, r.layoutID)
	r.rendered = doc
	r.renderedRev = r.revision
	r.state = StateRendered

	snap := Snapshot{Revision: r.renderedRev, Document: doc}
	for _, ch := range r.subscribers {
		// Latest-wins: drop the stale snapshot if the subscriber is behind.
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
	return snap
}

// Subscribe registers for rendered snapshots. The returned cancel function
// must be called when the subscriber is done.
func (r *Renderer) Subscribe() (<-chan Snapshot, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSubID
	r.nextSubID++
	ch := make(chan Snapshot, 1)
	r.subscribers[id] = ch

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if sub, ok := r.subscribers[id]; ok {
			delete(r.subscribers, id)
			close(sub)
		}
	}
	return ch, cancel
}
