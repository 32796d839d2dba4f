package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/clockin-dev/clockin/internal/tracker/domain"
)

type activityLogsRepo struct {
	db dbtx
}

const logColumns = `id, user_id, session_id, type, timestamp, metadata, created_at`

func scanLog(row interface{ Scan(dest ...any) error }) (domain.ActivityLog, error) {
	var (
		e         domain.ActivityLog
		sessionID sql.NullString
		eventType string
		metadata  sql.NullString
	)
	err := row.Scan(&e.ID, &e.UserID, &sessionID, &eventType, &e.Timestamp, &metadata, &e.CreatedAt)
	if err != nil {
		return domain.ActivityLog{}, err
	}
	e.SessionID = mapNullString(sessionID)
	e.Type = domain.EventType(eventType)
	e.Metadata = mapNullRawJSON(metadata)
	return e, nil
}

func (r *activityLogsRepo) Append(ctx context.Context, entry domain.ActivityLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_logs (id, user_id, session_id, type, timestamp, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		entry.ID, entry.UserID, mapStringNull(entry.SessionID),
		string(entry.Type), entry.Timestamp, mapRawJSONNull(entry.Metadata),
	)
	return err
}

func (r *activityLogsRepo) LatestByType(ctx context.Context, sessionID string, t domain.EventType) (domain.ActivityLog, error) {
	e, err := scanLog(r.db.QueryRowContext(ctx, `
		SELECT `+logColumns+` FROM activity_logs
		WHERE session_id = ? AND type = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`,
		sessionID, string(t)))
	if err != nil {
		return domain.ActivityLog{}, mapNotFound(err)
	}
	return e, nil
}

func (r *activityLogsRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.ActivityLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+logColumns+` FROM activity_logs
		WHERE user_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`,
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
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM activity_logs WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
