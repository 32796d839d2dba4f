package postgres

import (
	"context"
	"time"

	"github.com/clockin-dev/clockin/internal/tracker/domain"
	"github.com/clockin-dev/clockin/internal/tracker/store"

	"github.com/jackc/pgx/v5"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, name, password_hash, role, is_checked_in,
	is_paused, last_activity, total_working_time, created_at, updated_at`

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Name, &u.PasswordHash, &role,
		&u.IsCheckedIn, &u.IsPaused, &u.LastActivity,
		&u.TotalWorkingTime, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (
			id, username, name, password_hash, role, is_checked_in,
			is_paused, last_activity, total_working_time, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())`,
		u.ID, u.Username, u.Name, u.PasswordHash, string(u.Role),
		u.IsCheckedIn, u.IsPaused, u.LastActivity, u.TotalWorkingTime,
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *usersRepo) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at DESC`,
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
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET is_checked_in = $1, is_paused = $2, last_activity = $3, updated_at = NOW()
		WHERE id = $4`,
		checkedIn, paused, lastActivity, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) AddWorkingTime(ctx context.Context, userID string, minutes int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET total_working_time = total_working_time + $1, updated_at = NOW()
		WHERE id = $2`,
		minutes, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) AggregateStats(ctx context.Context) (domain.FleetStats, error) {
	var stats domain.FleetStats
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN is_checked_in AND NOT is_paused THEN 1 ELSE 0 END), 0),
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
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
