package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/types"
)

// APIGateway persists edit sessions through the REST API with a bearer
// token. It is the gateway used by editor frontends; server-side callers can
// implement Gateway directly against the document store.
type APIGateway struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewAPIGateway creates a gateway against the given API base URL. A nil
// client falls back to http.DefaultClient.
func NewAPIGateway(baseURL, token string, client *http.Client) *APIGateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &APIGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
	}
}

// Create saves a new document through POST /cvs.
func (g *APIGateway) Create(ctx context.Context, title, layoutID string, data *types.CVData) (*types.CVDocument, error) {
	return g.save(ctx, http.MethodPost, g.baseURL+"/cvs", title, layoutID, data)
}

// Update saves an existing document through PUT /cvs/{id}.
func (g *APIGateway) Update(ctx context.Context, id uuid.UUID, title, layoutID string, data *types.CVData) (*types.CVDocument, error) {
	return g.save(ctx, http.MethodPut, g.baseURL+"/cvs/"+id.String(), title, layoutID, data)
}

func (g *APIGateway) save(ctx context.Context, method, url, title, layoutID string, data *types.CVData) (*types.CVDocument, error) {
	payload, err := json.Marshal(types.SaveCVRequest{
		Title:    title,
		LayoutID: layoutID,
		Data:     *data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode save request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("save request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("save rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var doc types.CVDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode saved document: %w", err)
	}
	return &doc, nil
}
