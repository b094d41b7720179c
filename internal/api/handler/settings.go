// internal/api/handler/settings.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"fintrack/internal/service"
	"fintrack/internal/util"
)

// SettingsHandler handles HTTP requests for user settings.
type SettingsHandler struct {
	base
	service service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(svc service.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		base:    base{logger: logger},
		service: svc,
	}
}

// Get handles the get-settings request, creating defaults on first access.
// GET /settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	settings, err := h.service.Get(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, settings)
}

// UpdateCurrencyRequest represents the request body for changing currency.
type UpdateCurrencyRequest struct {
	Currency string `json:"currency"`
}

// UpdateCurrency handles the change-currency request.
// PUT /settings/currency
func (h *SettingsHandler) UpdateCurrency(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req UpdateCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	settings, err := h.service.UpdateCurrency(r.Context(), userID, req.Currency)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, settings)
}
