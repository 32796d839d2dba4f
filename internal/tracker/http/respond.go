package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/clockin-dev/clockin/internal/tracker/domain"
	"github.com/clockin-dev/clockin/internal/tracker/service"
	"github.com/clockin-dev/clockin/pkg/httpx"
	"github.com/clockin-dev/clockin/pkg/slogx"
)

// SessionResponse is the wire form of a work session.
type SessionResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	CheckInTime     time.Time  `json:"check_in_time"`
	CheckOutTime    *time.Time `json:"check_out_time,omitempty"`
	Date            string     `json:"date"`
	TotalActiveTime int        `json:"total_active_time"`
	IdleTime        int        `json:"idle_time"`
	PausedTime      int        `json:"paused_time"`
	ActivityCount   int        `json:"activity_count"`
	IsActive        bool       `json:"is_active"`
}

func toSessionResponse(s domain.WorkSession) SessionResponse {
	return SessionResponse{
		ID:              s.ID,
		UserID:          s.UserID,
		CheckInTime:     s.CheckInTime,
		CheckOutTime:    s.CheckOutTime,
		Date:            s.Date,
		TotalActiveTime: s.TotalActiveTime,
		IdleTime:        s.IdleTime,
		PausedTime:      s.PausedTime,
		ActivityCount:   s.ActivityCount,
		IsActive:        s.IsActive,
	}
}

func toSessionResponses(sessions []domain.WorkSession) []SessionResponse {
	out := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResponse(s))
	}
	return out
}

// UserResponse is the wire form of a user; the password hash never
// leaves the service.
type UserResponse struct {
	ID                  string     `json:"id"`
	Username            string     `json:"username"`
	Name                string     `json:"name"`
	Role                string     `json:"role"`
	IsCheckedIn         bool       `json:"is_checked_in"`
	IsPaused            bool       `json:"is_paused"`
	LastActivity        *time.Time `json:"last_activity,omitempty"`
	TotalWorkingMinutes int        `json:"total_working_minutes"`
	CreatedAt           time.Time  `json:"created_at"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Username:            u.Username,
		Name:                u.Name,
		Role:                string(u.Role),
		IsCheckedIn:         u.IsCheckedIn,
		IsPaused:            u.IsPaused,
		LastActivity:        u.LastActivity,
		TotalWorkingMinutes: u.TotalWorkingTime,
		CreatedAt:           u.CreatedAt,
	}
}

// writeServiceError translates service failures into the API's error
// vocabulary. Everything recognised here is a 4xx; the rest is a 500.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveSession):
		httpx.WriteError(w, http.StatusNotFound, "no_active_session", "no active session found")
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "user_not_found", "user not found")
	case errors.Is(err, service.ErrSessionExists):
		httpx.WriteError(w, http.StatusConflict, "session_already_active", "an active session already exists")
	case errors.Is(err, service.ErrUsernameTaken):
		httpx.WriteError(w, http.StatusConflict, "username_taken", "username already exists")
	case errors.Is(err, service.ErrInvalidEventType):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_event_type", "unrecognized activity event type")
	case errors.Is(err, service.ErrInvalidDate):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
	case errors.Is(err, service.ErrInvalidRole):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_role", "role must be user or admin")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
	default:
		slogx.FromContext(ctx).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
	}
}
