package sqlite

import (
	"context"
	"database/sql"

	"github.com/clockin-dev/clockin/internal/tracker/domain"
	"github.com/clockin-dev/clockin/internal/tracker/store"
)

type sessionsRepo struct {
	db dbtx
}

const sessionColumns = `id, user_id, check_in_time, check_out_time, date,
	total_active_time, idle_time, paused_time, activity_count, is_active,
	last_pause_time, last_resume_time, created_at, updated_at`

func scanSession(row interface{ Scan(dest ...any) error }) (domain.WorkSession, error) {
	var (
		s                               domain.WorkSession
		checkOut, lastPause, lastResume sql.NullTime
	)
	err := row.Scan(
		&s.ID, &s.UserID, &s.CheckInTime, &checkOut, &s.Date,
		&s.TotalActiveTime, &s.IdleTime, &s.PausedTime, &s.ActivityCount,
		&s.IsActive, &lastPause, &lastResume, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return domain.WorkSession{}, err
	}
	s.CheckOutTime = mapNullTime(checkOut)
	s.LastPauseTime = mapNullTime(lastPause)
	s.LastResumeTime = mapNullTime(lastResume)
	return s, nil
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.WorkSession) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO work_sessions (
			id, user_id, check_in_time, check_out_time, date,
			total_active_time, idle_time, paused_time, activity_count,
			is_active, last_pause_time, last_resume_time,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		s.ID, s.UserID, s.CheckInTime, mapTimeNull(s.CheckOutTime), s.Date,
		s.TotalActiveTime, s.IdleTime, s.PausedTime, s.ActivityCount,
		s.IsActive, mapTimeNull(s.LastPauseTime), mapTimeNull(s.LastResumeTime),
	)
	// The partial unique index on (user_id) WHERE is_active = 1 backs up
	// the one-open-session invariant at the storage layer.
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *sessionsRepo) GetSessionByID(ctx context.Context, id string) (domain.WorkSession, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM work_sessions WHERE id = ?`, id))
	if err != nil {
		return domain.WorkSession{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sessionsRepo) GetActiveSession(ctx context.Context, userID string) (domain.WorkSession, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM work_sessions
		WHERE user_id = ? AND is_active = 1`, userID))
	if err != nil {
		return domain.WorkSession{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sessionsRepo) SaveSession(ctx context.Context, s domain.WorkSession) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE work_sessions
		SET check_out_time = ?, total_active_time = ?, idle_time = ?,
			paused_time = ?, activity_count = ?, is_active = ?,
			last_pause_time = ?, last_resume_time = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		mapTimeNull(s.CheckOutTime), s.TotalActiveTime, s.IdleTime,
		s.PausedTime, s.ActivityCount, s.IsActive,
		mapTimeNull(s.LastPauseTime), mapTimeNull(s.LastResumeTime),
		s.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *sessionsRepo) ListSessionsByUser(ctx context.Context, userID string, limit int) ([]domain.WorkSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM work_sessions
		WHERE user_id = ? ORDER BY check_in_time DESC LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *sessionsRepo) ListSessionsByDate(ctx context.Context, date string) ([]domain.WorkSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM work_sessions
		WHERE date = ? ORDER BY check_in_time ASC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *sessionsRepo) ListActiveSessions(ctx context.Context) ([]domain.WorkSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM work_sessions
		WHERE is_active = 1 ORDER BY check_in_time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func collectSessions(rows *sql.Rows) ([]domain.WorkSession, error) {
	var sessions []domain.WorkSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
