package postgres

import (
	"context"
	"time"

	"github.com/clockin-dev/clockin/internal/tracker/domain"

	"github.com/jackc/pgx/v5"
)

type activityLogsRepo struct {
	db dbtx
}

const logColumns = `id, user_id, session_id, type, timestamp, metadata, created_at`

func scanLog(row pgx.Row) (domain.ActivityLog, error) {
	var (
		e         domain.ActivityLog
		sessionID *string
		eventType string
		metadata  []byte
	)
	err := row.Scan(&e.ID, &e.UserID, &sessionID, &eventType, &e.Timestamp, &metadata, &e.CreatedAt)
	if err != nil {
		return domain.ActivityLog{}, err
	}
	if sessionID != nil {
		e.SessionID = *sessionID
	}
	e.Type = domain.EventType(eventType)
	if len(metadata) > 0 {
		e.Metadata = metadata
	}
	return e, nil
}

func (r *activityLogsRepo) Append(ctx context.Context, entry domain.ActivityLog) error {
	var sessionID *string
	if entry.SessionID != "" {
		sessionID = &entry.SessionID
	}
	var metadata []byte
	if len(entry.Metadata) > 0 {
		metadata = entry.Metadata
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO activity_logs (id, user_id, session_id, type, timestamp, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		entry.ID, entry.UserID, sessionID, string(entry.Type), entry.Timestamp, metadata,
	)
	return err
}

func (r *activityLogsRepo) LatestByType(ctx context.Context, sessionID string, t domain.EventType) (domain.ActivityLog, error) {
	e, err := scanLog(r.db.QueryRow(ctx, `
		SELECT `+logColumns+` FROM activity_logs
		WHERE session_id = $1 AND type = $2
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`,
		sessionID, string(t)))
	if err != nil {
		return domain.ActivityLog{}, mapNotFound(err)
	}
	return e, nil
}

func (r *activityLogsRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.ActivityLog, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+logColumns+` FROM activity_logs
		WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ActivityLog
	for rows.Next() {
		e, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *activityLogsRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM activity_logs WHERE timestamp < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
