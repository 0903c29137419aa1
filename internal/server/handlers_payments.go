package server

import (
	"encoding/json"
	"net/http"
)

// paymentRequest is the stub payment payload.
type paymentRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// handleCreatePayment is a stub: no payment provider is wired up. It echoes
// the request in a success envelope so clients can exercise the flow.
func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Amount <= 0 {
		s.errorResponse(w, http.StatusBadRequest, "Amount must be positive")
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":  true,
		"amount":   req.Amount,
		"currency": currency,
		"note":     "payment provider not configured; mock response",
	})
}
