// internal/api/handler/handler.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"fintrack/internal/util"
)

// DefaultTimeout bounds request handling in the router's timeout middleware.
const DefaultTimeout = 60 * time.Second

// userIDHeader carries the authenticated user id, resolved by the external
// identity provider in front of this service. The core never derives
// identity itself; it only consumes the id the boundary hands it.
const userIDHeader = "X-User-ID"

// base holds what every resource handler needs.
type base struct {
	logger *slog.Logger
}

// userID extracts the authenticated user id from the request. A missing id
// means the caller never went through the identity provider; the UI layer
// owns the sign-in redirect, this API just refuses.
func (b *base) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(userIDHeader)
	if id == "" {
		b.respondWithJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing user identity"})
		return "", false
	}
	return id, true
}

// respondWithJSON sends a JSON response.
func (b *base) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps service errors to HTTP statuses.
func (b *base) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error() // Use the error message directly for invalid input
	case util.IsError(err, util.ErrCategoryNotFound):
		statusCode = http.StatusNotFound
		message = "Category not found"
	case util.IsError(err, util.ErrTransactionNotFound):
		statusCode = http.StatusNotFound
		message = "Transaction not found"
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrDuplicateCategory):
		statusCode = http.StatusConflict
		message = "Category already exists"
	case util.IsError(err, util.ErrUnsupportedCurrency):
		statusCode = http.StatusBadRequest
		message = "Unsupported currency"
	default:
		b.logger.Error("Unhandled service error", "error", err)
	}

	b.respondWithJSON(w, statusCode, map[string]string{"error": message})
}
