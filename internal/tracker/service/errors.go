package service

import "errors"

// Service errors map onto 4xx outcomes at the API layer; none of them
// are fatal to the process.
var (
	// ErrNoActiveSession: an operation that requires an open session
	// found none (also covers repeating check-out on a closed session).
	ErrNoActiveSession = errors.New("no_active_session")

	// ErrSessionExists: check-in while a session is already open.
	ErrSessionExists = errors.New("session_already_active")

	ErrUserNotFound       = errors.New("user_not_found")
	ErrInvalidEventType   = errors.New("invalid_event_type")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUsernameTaken      = errors.New("username_taken")
	ErrInvalidRole        = errors.New("invalid_role")
)
