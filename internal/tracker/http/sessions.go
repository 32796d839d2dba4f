package http

import (
	"net/http"
	"strconv"

	"github.com/clockin-dev/clockin/internal/tracker/service"
	"github.com/clockin-dev/clockin/pkg/httpx"
)

type SessionsHandler struct {
	TrackerService *service.TrackerService
	ReportService  *service.ReportService
}

// HandleCheckIn opens a new work session for the caller.
//
//	@Summary		Check in
//	@Description	Opens a new work session for the authenticated user. Fails if one is already open.
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Success		201	{object}	SessionResponse		"The newly opened session"
//	@Failure		401	{object}	httpx.ErrorResponse	"Invalid or missing access token"
//	@Failure		409	{object}	httpx.ErrorResponse	"An active session already exists"
//	@Failure		500	{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/v1/sessions/check-in [post].
func (h *SessionsHandler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)

	session, err := h.TrackerService.CheckIn(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toSessionResponse(session))
}

// HandleCheckOut closes the caller's active session.
//
//	@Summary		Check out
//	@Description	Closes the active session. Accumulated active minutes are folded into the user's lifetime total.
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	SessionResponse		"The closed session with final counters"
//	@Failure		401	{object}	httpx.ErrorResponse	"Invalid or missing access token"
//	@Failure		404	{object}	httpx.ErrorResponse	"No active session"
//	@Failure		500	{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/v1/sessions/check-out [post].
func (h *SessionsHandler) HandleCheckOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)

	session, err := h.TrackerService.CheckOut(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSessionResponse(session))
}

// HandlePause suspends time crediting on the caller's active session.
//
//	@Summary		Pause the active session
//	@Description	Marks the session paused. Heartbeats are ignored until resume and the paused minutes accumulate separately.
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	SessionResponse		"The paused session"
//	@Failure		401	{object}	httpx.ErrorResponse	"Invalid or missing access token"
//	@Failure		404	{object}	httpx.ErrorResponse	"No active session"
//	@Failure		500	{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/v1/sessions/pause [post].
func (h *SessionsHandler) HandlePause(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)

	session, err := h.TrackerService.Pause(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSessionResponse(session))
}

// HandleResume lifts a pause on the caller's active session.
//
//	@Summary		Resume the active session
//	@Description	Ends the pause interval and credits its length to the session's paused minutes.
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	SessionResponse		"The resumed session"
//	@Failure		401	{object}	httpx.ErrorResponse	"Invalid or missing access token"
//	@Failure		404	{object}	httpx.ErrorResponse	"No active session"
//	@Failure		500	{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/v1/sessions/resume [post].
func (h *SessionsHandler) HandleResume(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)

	session, err := h.TrackerService.Resume(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSessionResponse(session))
}

// HandleList returns the caller's session history, newest first.
//
//	@Summary		List own sessions
//	@Description	Returns the authenticated user's sessions, newest first.
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int					false	"Maximum rows to return (default 50)"
//	@Success		200		{array}		SessionResponse		"Session history"
//	@Failure		401		{object}	httpx.ErrorResponse	"Invalid or missing access token"
//	@Failure		500		{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/v1/sessions [get].
func (h *SessionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	sessions, err := h.ReportService.SessionHistory(ctx, userID, limit)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSessionResponses(sessions))
}
