package http

import (
	"net/http"
	"strconv"

	"github.com/clockin-dev/clockin/internal/tracker/service"
	"github.com/clockin-dev/clockin/pkg/httpx"
)

type ReportsHandler struct {
	ReportService *service.ReportService
}

// HandleMe returns the caller's own summary.
//
//	@Summary		Own summary
//	@Description	Returns the authenticated user's presence flags, lifetime total and recent sessions.
//	@Tags			Reports
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int						false	"Maximum sessions to include (default 50)"
//	@Success		200		{object}	service.UserSummary		"Per-user roll-up"
//	@Failure		401		{object}	httpx.ErrorResponse		"Invalid or missing access token"
//	@Failure		404		{object}	httpx.ErrorResponse		"User not found"
//	@Failure		500		{object}	httpx.ErrorResponse		"Internal server error"
//	@Router			/v1/reports/me [get].
func (h *ReportsHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	summary, err := h.ReportService.Summary(ctx, userID, limit)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, summary)
}

// HandleStats returns the fleet-wide counters.
//
//	@Summary		Fleet statistics
//	@Description	Returns total users, users currently checked in, and the summed lifetime working minutes. Admin only.
//	@Tags			Reports
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	domain.FleetStats	"Fleet counters"
//	@Failure		401	{object}	httpx.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	httpx.ErrorResponse	"Caller is not an admin"
//	@Failure		500	{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/v1/reports/stats [get].
func (h *ReportsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.ReportService.FleetStats(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, stats)
}

// HandleDaily returns every session on one calendar day.
//
//	@Summary		Daily roll-up
//	@Description	Returns every session on the given UTC calendar day with the owning user's identity attached. Admin only.
//	@Tags			Reports
//	@Security		BearerAuth
//	@Produce		json
//	@Param			date	query		string				true	"Calendar day, YYYY-MM-DD"
//	@Success		200		{array}		service.DailyRow	"Sessions on that day"
//	@Failure		400		{object}	httpx.ErrorResponse	"Missing or malformed date"
//	@Failure		401		{object}	httpx.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	httpx.ErrorResponse	"Caller is not an admin"
//	@Failure		500		{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/v1/reports/daily [get].
func (h *ReportsHandler) HandleDaily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	date := r.URL.Query().Get("date")
	if date == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_date", "date query parameter is required")
		return
	}

	rows, err := h.ReportService.Daily(ctx, date)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, rows)
}
