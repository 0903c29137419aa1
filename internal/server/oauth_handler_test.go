package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOAuthHandler(t *testing.T) *OAuthHandler {
	t.Helper()
	userService := newTestUserService(t, newFakeDB())
	return NewOAuthHandler("client-id", "client-secret", "http://localhost:8080/auth/google/callback", userService, newTestJWTService(t))
}

func TestNewOAuthHandler_NilWithoutClientID(t *testing.T) {
	userService := newTestUserService(t, newFakeDB())
	h := NewOAuthHandler("", "", "", userService, newTestJWTService(t))
	assert.Nil(t, h, "missing client ID disables the OAuth routes")
}

func TestOAuthRedirect(t *testing.T) {
	h := newTestOAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	rec := httptest.NewRecorder()
	h.Redirect(rec, req)

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)

	// The redirect carries the state that was set in the cookie.
	var stateCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == oauthStateCookie {
			stateCookie = c
		}
	}
	require.NotNil(t, stateCookie, "state cookie must be set")
	assert.True(t, stateCookie.HttpOnly)
	assert.NotEmpty(t, stateCookie.Value)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Contains(t, location.Host, "google.com")
	assert.Equal(t, stateCookie.Value, location.Query().Get("state"))
	assert.Equal(t, "client-id", location.Query().Get("client_id"))
}

func TestOAuthCallback_RejectsBadState(t *testing.T) {
	h := newTestOAuthHandler(t)

	tests := []struct {
		name       string
		cookie     string
		queryState string
	}{
		{"no cookie", "", "some-state"},
		{"mismatched state", "cookie-state", "different-state"},
		{"empty query state", "cookie-state", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state="+tt.queryState+"&code=abc", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			h.Callback(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestOAuthCallback_RejectsMissingCode(t *testing.T) {
	h := newTestOAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=the-state", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "the-state"})
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing authorization code")
}
