package service

import (
	"context"
	"errors"
	"time"

	"github.com/clockin-dev/clockin/internal/tracker/domain"
	"github.com/clockin-dev/clockin/internal/tracker/store"
)

// ErrInvalidDate reports a date parameter that is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid_date")

// ReportService is the read side: it derives per-user summaries and the
// admin fleet view from the ledger. Nothing is cached; every query
// recomputes from the store.
type ReportService struct {
	Store store.Store
}

// UserSummary is one user's roll-up: the stored lifetime total plus
// recent session history. An open session's accruing time is not part
// of the lifetime total until check-out.
type UserSummary struct {
	UserID              string               `json:"user_id"`
	Username            string               `json:"username"`
	Name                string               `json:"name"`
	IsCheckedIn         bool                 `json:"is_checked_in"`
	IsPaused            bool                 `json:"is_paused"`
	LastActivity        *time.Time           `json:"last_activity,omitempty"`
	TotalWorkingMinutes int                  `json:"total_working_minutes"`
	Sessions            []domain.WorkSession `json:"sessions"`
}

// DailyRow is one session in the per-day admin roll-up.
type DailyRow struct {
	UserID        string     `json:"user_id"`
	Username      string     `json:"username"`
	Name          string     `json:"name"`
	SessionID     string     `json:"session_id"`
	CheckInTime   time.Time  `json:"check_in_time"`
	CheckOutTime  *time.Time `json:"check_out_time,omitempty"`
	ActiveMinutes int        `json:"active_minutes"`
	IdleMinutes   int        `json:"idle_minutes"`
	PausedMinutes int        `json:"paused_minutes"`
	ActivityCount int        `json:"activity_count"`
	Open          bool       `json:"open"`
}

// Summary builds the roll-up for one user.
func (s *ReportService) Summary(ctx context.Context, userID string, limit int) (UserSummary, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return UserSummary{}, ErrUserNotFound
		}
		return UserSummary{}, err
	}

	if limit <= 0 {
		limit = 50
	}
	sessions, err := s.Store.Sessions().ListSessionsByUser(ctx, userID, limit)
	if err != nil {
		return UserSummary{}, err
	}

	return UserSummary{
		UserID:              user.ID,
		Username:            user.Username,
		Name:                user.Name,
		IsCheckedIn:         user.IsCheckedIn,
		IsPaused:            user.IsPaused,
		LastActivity:        user.LastActivity,
		TotalWorkingMinutes: user.TotalWorkingTime,
		Sessions:            sessions,
	}, nil
}

// FleetStats computes the admin dashboard counters across all users.
func (s *ReportService) FleetStats(ctx context.Context) (domain.FleetStats, error) {
	return s.Store.Users().AggregateStats(ctx)
}

// Daily returns every session on the given calendar day with the owning
// user's identity attached.
func (s *ReportService) Daily(ctx context.Context, date string) ([]DailyRow, error) {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	sessions, err := s.Store.Sessions().ListSessionsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	// Sessions on one day cluster on few users; resolve each user once.
	users := make(map[string]domain.User)
	rows := make([]DailyRow, 0, len(sessions))
	for _, sess := range sessions {
		user, ok := users[sess.UserID]
		if !ok {
			user, err = s.Store.Users().GetUserByID(ctx, sess.UserID)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return nil, err
			}
			users[sess.UserID] = user
		}

		rows = append(rows, DailyRow{
			UserID:        sess.UserID,
			Username:      user.Username,
			Name:          user.Name,
			SessionID:     sess.ID,
			CheckInTime:   sess.CheckInTime,
			CheckOutTime:  sess.CheckOutTime,
			ActiveMinutes: sess.TotalActiveTime,
			IdleMinutes:   sess.IdleTime,
			PausedMinutes: sess.PausedTime,
			ActivityCount: sess.ActivityCount,
			Open:          sess.Open(),
		})
	}
	return rows, nil
}

// SessionHistory returns a user's sessions newest first.
func (s *ReportService) SessionHistory(ctx context.Context, userID string, limit int) ([]domain.WorkSession, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.Store.Sessions().ListSessionsByUser(ctx, userID, limit)
}

// RecentActivity returns a user's log entries newest first.
func (s *ReportService) RecentActivity(ctx context.Context, userID string, limit int) ([]domain.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.Store.ActivityLogs().ListByUser(ctx, userID, limit)
}
