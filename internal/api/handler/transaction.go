// internal/api/handler/transaction.go
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"fintrack/internal/api/types"
	"fintrack/internal/domain"
	"fintrack/internal/service"
	"fintrack/internal/util"
)

// TransactionHandler handles HTTP requests for the transaction ledger.
type TransactionHandler struct {
	base
	service service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc service.TransactionService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		base:    base{logger: logger},
		service: svc,
	}
}

// CreateTransactionRequest represents the request body for creating a transaction.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
}

// parseDate accepts an ISO calendar date or a full RFC 3339 timestamp; either
// way the core truncates to the UTC calendar date.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD or RFC 3339: %w", util.ErrInvalidInput)
}

// Create handles the record-a-transaction request.
// POST /transactions
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	transaction, err := h.service.Create(r.Context(), userID, service.CreateTransactionInput{
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
		Description: req.Description,
		Type:        domain.TransactionType(req.Type),
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":        "Transaction recorded",
		"transaction_id": transaction.ID,
	})
}

// Delete handles the remove-a-transaction request.
// DELETE /transactions/{transactionID}
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	transactionID := chi.URLParam(r, "transactionID")
	if transactionID == "" {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	if err := h.service.Delete(r.Context(), userID, transactionID); err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted"})
}

// List handles the transaction history request.
// GET /transactions?from=YYYY-MM-DD&to=YYYY-MM-DD&limit=..&offset=..
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	// Default to the trailing 30 days, matching the overview range picker.
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			h.respondWithError(w, err)
			return
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			h.respondWithError(w, err)
			return
		}
		to = parsed
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50 // Default limit
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0 // Default offset
	}

	transactions, totalCount, err := h.service.List(r.Context(), userID, from, to, limit, offset)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.PaginatedResponse[domain.Transaction]{
		Data:       transactions,
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
	})
}
