package preview

import "sync"

// Hub tracks the live preview renderer for each active edit session.
// Sessions are keyed by a client-chosen identifier; each tab opens its own
// session, so there is no concurrent-writer problem within one renderer.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*Renderer
}

// NewHub creates an empty session hub.
func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*Renderer)}
}

// GetOrCreate returns the renderer for the session, creating an idle one
// with the given layout if none exists yet.
func (h *Hub) GetOrCreate(sessionID, layoutID string) *Renderer {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.sessions[sessionID]; ok {
		return r
	}
	r := NewRenderer(layoutID)
	h.sessions[sessionID] = r
	return r
}

// Get returns the renderer for the session, or nil if the session is
// unknown.
func (h *Hub) Get(sessionID string) *Renderer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[sessionID]
}

// Remove drops a session. Outstanding subscribers keep their channels until
// they cancel.
func (h *Hub) Remove(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, sessionID)
}

// Len returns the number of active sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}
