package store

import (
	"context"
	"errors"
	"time"

	"github.com/clockin-dev/clockin/internal/tracker/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable, and the state machine leans on WithTx so each event
// commits its user, session, and log writes atomically.
type Store interface {
	Users() Users
	Sessions() Sessions
	ActivityLogs() ActivityLogs

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error,
	// the transaction is rolled back; otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsersByRole returns users with the given role, newest first.
	ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)

	// UpdateStatus sets the presence flags and last-activity timestamp.
	UpdateStatus(ctx context.Context, userID string, checkedIn, paused bool, lastActivity time.Time) error

	// AddWorkingTime increments the lifetime working-time accumulator.
	AddWorkingTime(ctx context.Context, userID string, minutes int) error

	// AggregateStats computes the admin fleet roll-up.
	AggregateStats(ctx context.Context) (domain.FleetStats, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Sessions interface {
	// CreateSession inserts a new work session.
	CreateSession(ctx context.Context, s domain.WorkSession) error

	// GetSessionByID returns a session by id.
	GetSessionByID(ctx context.Context, id string) (domain.WorkSession, error)

	// GetActiveSession returns the single open session for a user, or
	// ErrNotFound when the user is checked out.
	GetActiveSession(ctx context.Context, userID string) (domain.WorkSession, error)

	// SaveSession replaces all mutable fields of an existing session.
	// The write is a full replace so a retried operation is idempotent.
	SaveSession(ctx context.Context, s domain.WorkSession) error

	// ListSessionsByUser returns a user's sessions newest first.
	ListSessionsByUser(ctx context.Context, userID string, limit int) ([]domain.WorkSession, error)

	// ListSessionsByDate returns every session on a calendar day.
	ListSessionsByDate(ctx context.Context, date string) ([]domain.WorkSession, error)

	// ListActiveSessions returns all open sessions (watchdog sweep).
	ListActiveSessions(ctx context.Context) ([]domain.WorkSession, error)
}

type ActivityLogs interface {
	// Append writes a new immutable log entry.
	Append(ctx context.Context, entry domain.ActivityLog) error

	// LatestByType returns the newest entry of the given type scoped to
	// a session, or ErrNotFound when the session has none.
	LatestByType(ctx context.Context, sessionID string, t domain.EventType) (domain.ActivityLog, error)

	// ListByUser returns a user's entries newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.ActivityLog, error)

	// DeleteOlderThan trims entries past the retention window and
	// returns the number removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
