package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jonathan/cv-builder/internal/types"
)

const oauthStateCookie = "oauth_state"

// googleUserInfo is the subset of the Google userinfo response we consume.
type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// OAuthHandler implements the Google sign-in flow: redirect with a state
// cookie, then exchange the callback code for an identity and issue our own
// JWT.
type OAuthHandler struct {
	config      *oauth2.Config
	userService *UserService
	jwtService  *JWTService
	userInfoURL string
}

// NewOAuthHandler builds the Google OAuth configuration. Returns nil when no
// client ID is configured; the server then skips the routes.
func NewOAuthHandler(clientID, clientSecret, redirectURL string, userService *UserService, jwtService *JWTService) *OAuthHandler {
	if clientID == "" {
		return nil
	}
	return &OAuthHandler{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		userService: userService,
		jwtService:  jwtService,
		userInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
	}
}

// Redirect starts the OAuth flow.
func (h *OAuthHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	state, err := randomState()
	if err != nil {
		http.Error(w, "Failed to start OAuth flow", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.config.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// Callback completes the OAuth flow: verifies state, exchanges the code,
// fetches the Google identity, upserts the user and returns an auth envelope.
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	token, err := h.config.Exchange(r.Context(), code)
	if err != nil {
		http.Error(w, "Failed to exchange authorization code", http.StatusBadGateway)
		return
	}

	info, err := h.fetchUserInfo(r.Context(), token)
	if err != nil {
		http.Error(w, "Failed to fetch Google profile", http.StatusBadGateway)
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(r.Context(), info.ID, info.Email, info.Name, info.Picture)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	jwtToken, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(types.AuthResponse{User: user, Token: jwtToken}); err != nil {
		return
	}
}

func (h *OAuthHandler) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := h.config.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.userInfoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get google user info: %s", resp.Status)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.ID == "" || info.Email == "" {
		return nil, fmt.Errorf("google user info is empty")
	}
	return &info, nil
}

func randomState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
