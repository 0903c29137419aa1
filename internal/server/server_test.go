package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/db"
	"github.com/jonathan/cv-builder/internal/preview"
	"github.com/jonathan/cv-builder/internal/projector"
	"github.com/jonathan/cv-builder/internal/server/ratelimit"
	"github.com/jonathan/cv-builder/internal/types"
)

// fakeStore is an in-memory DocumentStore for handler tests.
type fakeStore struct {
	docs    map[uuid.UUID]*db.CVDocument
	layouts []db.Layout
	failAll error
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[uuid.UUID]*db.CVDocument)}
}

func (f *fakeStore) CreateCV(_ context.Context, userID uuid.UUID, title, layoutID string, data *types.CVData, isPublic bool) (*db.CVDocument, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	doc := &db.CVDocument{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    title,
		LayoutID: layoutID,
		Data:     *data,
		IsPublic: isPublic,
	}
	f.docs[doc.ID] = doc
	return doc, nil
}

func (f *fakeStore) GetCV(_ context.Context, id uuid.UUID) (*db.CVDocument, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	return f.docs[id], nil
}

func (f *fakeStore) GetCVForUser(_ context.Context, id, userID uuid.UUID) (*db.CVDocument, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	doc := f.docs[id]
	if doc == nil || doc.UserID != userID {
		return nil, nil
	}
	return doc, nil
}

func (f *fakeStore) UpdateCV(_ context.Context, id, userID uuid.UUID, title, layoutID string, data *types.CVData, isPublic bool) (*db.CVDocument, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	doc := f.docs[id]
	if doc == nil || doc.UserID != userID {
		return nil, nil
	}
	doc.Title, doc.LayoutID, doc.Data, doc.IsPublic = title, layoutID, *data, isPublic
	return doc, nil
}

func (f *fakeStore) DeleteCV(_ context.Context, id, userID uuid.UUID) (bool, error) {
	if f.failAll != nil {
		return false, f.failAll
	}
	doc := f.docs[id]
	if doc == nil || doc.UserID != userID {
		return false, nil
	}
	delete(f.docs, id)
	return true, nil
}

func (f *fakeStore) ListCVs(_ context.Context, userID uuid.UUID) ([]db.CVDocument, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []db.CVDocument
	for _, doc := range f.docs {
		if doc.UserID == userID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (f *fakeStore) GetLayoutBySlug(_ context.Context, slug string) (*db.Layout, error) {
	for i := range f.layouts {
		if f.layouts[i].Slug == slug {
			return &f.layouts[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListLayouts(_ context.Context) ([]db.Layout, error) {
	return f.layouts, nil
}

// newTestServer wires a Server with in-memory fakes and no database.
func newTestServer(t *testing.T) (*Server, *fakeStore, *fakeDB) {
	t.Helper()

	fdb := newFakeDB()
	store := newFakeStore()
	userService := newTestUserService(t, fdb)
	jwtService := newTestJWTService(t)

	s := &Server{
		store:       store,
		previews:    preview.NewHub(),
		rateLimiter: ratelimit.NewLimiter(&ratelimit.Config{Enabled: false}),
		jwtService:  jwtService,
		userService: userService,
		authHandler: NewAuthHandler(userService, jwtService),
	}
	return s, store, fdb
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// registerUser creates a user through the API and returns its ID and token.
func registerUser(t *testing.T, handler http.Handler, email string) (uuid.UUID, string) {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "janedoe",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp types.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.User.ID, resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := doJSON(t, s.routes(), http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRegisterAndLogin(t *testing.T) {
	s, _, _ := newTestServer(t)
	mux := s.routes()

	_, token := registerUser(t, mux, "jane@example.com")
	assert.NotEmpty(t, token)

	rec := doJSON(t, mux, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "jane@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)
}

func TestRegister_ValidationFailure(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := doJSON(t, s.routes(), http.MethodPost, "/auth/register", "", map[string]string{
		"username": "jd",
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation error")
}

func TestLogin_WrongPassword(t *testing.T) {
	s, _, _ := newTestServer(t)
	mux := s.routes()
	registerUser(t, mux, "jane@example.com")

	rec := doJSON(t, mux, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "jane@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeEndpoint(t *testing.T) {
	s, _, _ := newTestServer(t)
	mux := s.routes()
	userID, token := registerUser(t, mux, "jane@example.com")

	rec := doJSON(t, mux, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, userID, user.ID)

	// Without a token the route is unauthorized.
	rec = doJSON(t, mux, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdatePasswordEndpoint(t *testing.T) {
	s, _, _ := newTestServer(t)
	mux := s.routes()
	_, token := registerUser(t, mux, "jane@example.com")

	rec := doJSON(t, mux, http.MethodPut, "/auth/password", token, map[string]string{
		"current_password": "password123",
		"new_password":     "newpassword456",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "jane@example.com",
		"password": "newpassword456",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListLayouts_FallsBackToBuiltins(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := doJSON(t, s.routes(), http.MethodGet, "/layouts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var layouts []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &layouts))
	require.Len(t, layouts, 3)
	assert.Equal(t, projector.LayoutA, layouts[0]["slug"])
}

func TestListLayouts_FromStore(t *testing.T) {
	s, store, _ := newTestServer(t)
	store.layouts = []db.Layout{
		{ID: uuid.New(), Slug: "layout-a", Name: "Classic Sidebar"},
	}

	rec := doJSON(t, s.routes(), http.MethodGet, "/layouts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var layouts []db.Layout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &layouts))
	require.Len(t, layouts, 1)
	assert.Equal(t, "layout-a", layouts[0].Slug)
}

func TestGetLayout_BuiltinFallbackAndNotFound(t *testing.T) {
	s, _, _ := newTestServer(t)
	mux := s.routes()

	rec := doJSON(t, mux, http.MethodGet, "/layouts/layout-b", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "layout-b")

	rec = doJSON(t, mux, http.MethodGet, "/layouts/layout-z", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatelessPreview(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := doJSON(t, s.routes(), http.MethodPost, "/preview", "", map[string]any{
		"layout_id": "layout-a",
		"data": map[string]any{
			"basicDetails": map[string]any{"firstName": "Jane", "lastName": "Doe"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var rendered projector.RenderedDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rendered))
	assert.Equal(t, projector.LayoutA, rendered.LayoutID)
	assert.Contains(t, rendered.HTML, "Jane Doe")
	assert.False(t, rendered.Missing)
}

func TestStatelessPreview_UnknownLayout(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := doJSON(t, s.routes(), http.MethodPost, "/preview", "", map[string]any{
		"layout_id": "layout-z",
	})
	require.Equal(t, http.StatusOK, rec.Code, "unknown layout is a fallback document, not an error")

	var rendered projector.RenderedDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rendered))
	assert.True(t, rendered.Missing)
	assert.Contains(t, rendered.HTML, projector.FallbackMessage)
}

func TestPreviewPushAndClose(t *testing.T) {
	s, _, _ := newTestServer(t)
	mux := s.routes()

	rec := doJSON(t, mux, http.MethodPost, "/preview/stream/tab-1", "", map[string]any{
		"data": map[string]any{
			"basicDetails": map[string]any{"firstName": "Jane"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var snap preview.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Contains(t, snap.Document.HTML, "Jane")
	assert.Equal(t, 1, s.previews.Len())

	// Layout switch on the same session bumps the revision.
	rec = doJSON(t, mux, http.MethodPost, "/preview/stream/tab-1", "", map[string]any{
		"layout_id": "layout-c",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var next preview.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &next))
	assert.Greater(t, next.Revision, snap.Revision)
	assert.Equal(t, projector.LayoutC, next.Document.LayoutID)

	rec = doJSON(t, mux, http.MethodDelete, "/preview/stream/tab-1", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, s.previews.Len())
}

func TestPreviewStream_SendsInitialSnapshot(t *testing.T) {
	s, _, _ := newTestServer(t)
	mux := s.routes()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/preview/stream/tab-1?layout_id=layout-a", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		mux.ServeHTTP(rec, req)
		close(done)
	}()

	// The handler writes the current snapshot immediately, then blocks until
	// the client goes away.
	cancel()
	<-done

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "event: rendered")
	assert.Contains(t, body, "Your Name")
}

func TestPaymentsStub(t *testing.T) {
	s, _, _ := newTestServer(t)
	mux := s.routes()
	_, token := registerUser(t, mux, "jane@example.com")

	rec := doJSON(t, mux, http.MethodPost, "/payments", token, map[string]any{"amount": 9.99})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"currency":"USD"`)

	rec = doJSON(t, mux, http.MethodPost, "/payments", token, map[string]any{"amount": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImageUpload_UnavailableWithoutUploader(t *testing.T) {
	s, _, _ := newTestServer(t)
	mux := s.routes()
	_, token := registerUser(t, mux, "jane@example.com")

	req := httptest.NewRequest(http.MethodPost, "/images", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORSPreflights(t *testing.T) {
	s, _, _ := newTestServer(t)
	handler := s.withCORS(s.routes())

	req := httptest.NewRequest(http.MethodOptions, "/cvs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRateLimitMiddleware(t *testing.T) {
	s, _, _ := newTestServer(t)
	s.rateLimiter = ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Hour,
		Whitelist:     map[string]bool{},
		Blacklist:     map[string]bool{},
	})
	handler := s.withRateLimit(s.routes())

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/layouts", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, req)
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.NotEmpty(t, last.Header().Get("X-RateLimit-Limit"))
}
