// internal/api/handler/stats.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"fintrack/internal/service"
	"fintrack/internal/util"
)

// StatsHandler handles HTTP requests for the reporting read paths.
type StatsHandler struct {
	base
	service service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(svc service.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		base:    base{logger: logger},
		service: svc,
	}
}

// Balance handles the balance stats request.
// GET /stats/balance?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *StatsHandler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	from, err := parseDate(r.URL.Query().Get("from"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	to, err := parseDate(r.URL.Query().Get("to"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	stats, err := h.service.Balance(r.Context(), userID, from, to)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, stats)
}

// Categories handles the per-category stats request.
// GET /stats/categories?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *StatsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	from, err := parseDate(r.URL.Query().Get("from"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	to, err := parseDate(r.URL.Query().Get("to"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	totals, err := h.service.Categories(r.Context(), userID, from, to)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": totals})
}

// Periods handles the history periods request.
// GET /history/periods
func (h *StatsHandler) Periods(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	years, err := h.service.Periods(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": years})
}

// History handles the chart data request.
// GET /history/data?timeframe=month|year&year=2024&month=0
func (h *StatsHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	timeframe := service.Timeframe(r.URL.Query().Get("timeframe"))

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	// month is only meaningful for the month timeframe; 0 otherwise.
	month := 0
	if v := r.URL.Query().Get("month"); v != "" {
		month, err = strconv.Atoi(v)
		if err != nil {
			h.respondWithError(w, util.ErrInvalidInput)
			return
		}
	}

	points, err := h.service.History(r.Context(), userID, timeframe, year, month)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": points})
}
