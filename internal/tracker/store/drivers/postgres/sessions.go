package postgres

import (
	"context"

	"github.com/clockin-dev/clockin/internal/tracker/domain"
	"github.com/clockin-dev/clockin/internal/tracker/store"

	"github.com/jackc/pgx/v5"
)

type sessionsRepo struct {
	db dbtx
}

const sessionColumns = `id, user_id, check_in_time, check_out_time, date,
	total_active_time, idle_time, paused_time, activity_count, is_active,
	last_pause_time, last_resume_time, created_at, updated_at`

func scanSession(row pgx.Row) (domain.WorkSession, error) {
	var s domain.WorkSession
	err := row.Scan(
		&s.ID, &s.UserID, &s.CheckInTime, &s.CheckOutTime, &s.Date,
		&s.TotalActiveTime, &s.IdleTime, &s.PausedTime, &s.ActivityCount,
		&s.IsActive, &s.LastPauseTime, &s.LastResumeTime,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return domain.WorkSession{}, err
	}
	return s, nil
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.WorkSession) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO work_sessions (
			id, user_id, check_in_time, check_out_time, date,
			total_active_time, idle_time, paused_time, activity_count,
			is_active, last_pause_time, last_resume_time, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())`,
		s.ID, s.UserID, s.CheckInTime, s.CheckOutTime, s.Date,
		s.TotalActiveTime, s.IdleTime, s.PausedTime, s.ActivityCount,
		s.IsActive, s.LastPauseTime, s.LastResumeTime,
	)
	// Partial unique index on (user_id) WHERE is_active backs up the
	// one-open-session invariant at the storage layer.
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *sessionsRepo) GetSessionByID(ctx context.Context, id string) (domain.WorkSession, error) {
	s, err := scanSession(r.db.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM work_sessions WHERE id = $1`, id))
	if err != nil {
		return domain.WorkSession{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sessionsRepo) GetActiveSession(ctx context.Context, userID string) (domain.WorkSession, error) {
	s, err := scanSession(r.db.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM work_sessions
		WHERE user_id = $1 AND is_active`, userID))
	if err != nil {
		return domain.WorkSession{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sessionsRepo) SaveSession(ctx context.Context, s domain.WorkSession) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE work_sessions
		SET check_out_time = $1, total_active_time = $2, idle_time = $3,
			paused_time = $4, activity_count = $5, is_active = $6,
			last_pause_time = $7, last_resume_time = $8, updated_at = NOW()
		WHERE id = $9`,
		s.CheckOutTime, s.TotalActiveTime, s.IdleTime,
		s.PausedTime, s.ActivityCount, s.IsActive,
		s.LastPauseTime, s.LastResumeTime, s.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *sessionsRepo) ListSessionsByUser(ctx context.Context, userID string, limit int) ([]domain.WorkSession, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+sessionColumns+` FROM work_sessions
		WHERE user_id = $1 ORDER BY check_in_time DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *sessionsRepo) ListSessionsByDate(ctx context.Context, date string) ([]domain.WorkSession, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+sessionColumns+` FROM work_sessions
		WHERE date = $1 ORDER BY check_in_time ASC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *sessionsRepo) ListActiveSessions(ctx context.Context) ([]domain.WorkSession, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+sessionColumns+` FROM work_sessions
		WHERE is_active ORDER BY check_in_time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func collectSessions(rows pgx.Rows) ([]domain.WorkSession, error) {
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
