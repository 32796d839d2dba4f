package domain

import (
	"encoding/json"
	"time"
)

// EventType enumerates the activity-log entry kinds.
type EventType string

const (
	EventCheckIn      EventType = "check-in"
	EventCheckOut     EventType = "check-out"
	EventActivity     EventType = "activity"
	EventIdleStart    EventType = "idle-start"
	EventIdleEnd      EventType = "idle-end"
	EventManualPause  EventType = "manual-pause"
	EventManualResume EventType = "manual-resume"
)

// Valid reports whether t is a recognised event type.
func (t EventType) Valid() bool {
	switch t {
	case EventCheckIn, EventCheckOut, EventActivity,
		EventIdleStart, EventIdleEnd, EventManualPause, EventManualResume:
		return true
	}
	return false
}

// ActivityLog is an immutable append-only event record. Entries for a
// session, read in timestamp order, reconstruct its idle and pause
// intervals.
type ActivityLog struct {
	ID        string
	UserID    string
	SessionID string // empty when the event is not scoped to a session
	Type      EventType
	Timestamp time.Time

	// Metadata is opaque caller-supplied context, passed through
	// untouched.
	Metadata json.RawMessage

	CreatedAt time.Time
}
