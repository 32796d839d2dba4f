package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/clockin-dev/clockin/internal/tracker/domain"
	"github.com/clockin-dev/clockin/internal/tracker/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, name, password_hash, role, is_checked_in,
	is_paused, last_activity, total_working_time, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (domain.User, error) {
	var (
		u            domain.User
		role         string
		lastActivity sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Name, &u.PasswordHash, &role,
		&u.IsCheckedIn, &u.IsPaused, &lastActivity,
		&u.TotalWorkingTime, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	u.LastActivity = mapNullTime(lastActivity)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, username, name, password_hash, role, is_checked_in,
			is_paused, last_activity, total_working_time, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		u.ID, u.Username, u.Name, u.PasswordHash, string(u.Role),
		u.IsCheckedIn, u.IsPaused, mapTimeNull(u.LastActivity), u.TotalWorkingTime,
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *usersRepo) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = ? ORDER BY created_at DESC`,
		string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) UpdateStatus(ctx context.Context, userID string, checkedIn, paused bool, lastActivity time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET is_checked_in = ?, is_paused = ?, last_activity = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		checkedIn, paused, lastActivity, userID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) AddWorkingTime(ctx context.Context, userID string, minutes int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET total_working_time = total_working_time + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		minutes, userID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) AggregateStats(ctx context.Context) (domain.FleetStats, error) {
	var stats domain.FleetStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN is_checked_in = 1 AND is_paused = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(total_working_time), 0)
		FROM users`,
	).Scan(&stats.TotalUsers, &stats.WorkingUsers, &stats.TotalWorkingMinutes)
	if err != nil {
		return domain.FleetStats{}, err
	}
	return stats, nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
