package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/clockin-dev/clockin/internal/tracker/domain"
	"github.com/clockin-dev/clockin/internal/tracker/service"
	"github.com/clockin-dev/clockin/pkg/httpx"
)

type ActivityHandler struct {
	TrackerService *service.TrackerService
	ReportService  *service.ReportService
}

// ActivityRequest is one tracking event from the client. Type defaults
// to "activity" (a plain heartbeat) when omitted.
type ActivityRequest struct {
	Type     string          `json:"type,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// ActivityLogResponse is the wire form of one log entry.
type ActivityLogResponse struct {
	ID        string          `json:"id"`
	SessionID string          `json:"session_id"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// HandlePost records one tracking event against the caller's active
// session.
//
//	@Summary		Record a tracking event
//	@Description	Feeds one event into the session state machine: activity, idle-start, idle-end, manual-pause or manual-resume. An omitted type means a plain activity heartbeat.
//	@Tags			Activity
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ActivityRequest		false	"Event type and optional metadata"
//	@Success		200		{object}	SessionResponse		"The session after applying the event"
//	@Failure		400		{object}	httpx.ErrorResponse	"Unrecognized event type"
//	@Failure		401		{object}	httpx.ErrorResponse	"Invalid or missing access token"
//	@Failure		404		{object}	httpx.ErrorResponse	"No active session"
//	@Failure		500		{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/v1/activity [post].
func (h *ActivityHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)

	var req ActivityRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
			return
		}
	}
	if req.Type == "" {
		req.Type = string(domain.EventActivity)
	}

	session, err := h.TrackerService.RecordEvent(ctx, userID, domain.EventType(req.Type), req.Metadata)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSessionResponse(session))
}

// HandleGet returns the caller's recent log entries, newest first.
//
//	@Summary		List own activity log
//	@Description	Returns the authenticated user's recent tracking events, newest first.
//	@Tags			Activity
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int						false	"Maximum rows to return (default 50)"
//	@Success		200		{array}		ActivityLogResponse		"Recent log entries"
//	@Failure		401		{object}	httpx.ErrorResponse		"Invalid or missing access token"
//	@Failure		500		{object}	httpx.ErrorResponse		"Internal server error"
//	@Router			/v1/activity [get].
func (h *ActivityHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.ReportService.RecentActivity(ctx, userID, limit)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	out := make([]ActivityLogResponse, 0, len(logs))
	for _, entry := range logs {
		out = append(out, ActivityLogResponse{
			ID:        entry.ID,
			SessionID: entry.SessionID,
			Type:      string(entry.Type),
			Timestamp: entry.Timestamp,
			Metadata:  entry.Metadata,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}
