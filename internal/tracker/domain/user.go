package domain

import "time"

// Role controls which API surface a user can reach. Admins see fleet
// reports; regular users see only their own data.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a recognised role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string // argon2 encoded
	Role         Role

	// Presence flags mutated by the session state machine.
	IsCheckedIn  bool
	IsPaused     bool
	LastActivity *time.Time // nil until the first tracked event

	// Lifetime accumulator in minutes. Only ever increases; check-out
	// folds the closed session's active time into it.
	TotalWorkingTime int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FleetStats is the admin roll-up across all users.
type FleetStats struct {
	TotalUsers          int `json:"total_users"`
	WorkingUsers        int `json:"working_users"` // checked in and not paused
	TotalWorkingMinutes int `json:"total_working_minutes"`
}
