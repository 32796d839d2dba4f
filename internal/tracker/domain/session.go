package domain

import "time"

// DateLayout is the calendar-day format used for session grouping.
const DateLayout = "2006-01-02"

// WorkSession is one check-in to check-out cycle. All duration counters
// are whole minutes. At most one session per user has IsActive=true.
type WorkSession struct {
	ID     string
	UserID string

	CheckInTime  time.Time
	CheckOutTime *time.Time // nil while the session is open

	// Date is the UTC calendar day of check-in. Reports group on this
	// field; it is never recomputed from the check-out time, so an
	// overnight session stays on the day it started.
	Date string

	TotalActiveTime int // minutes credited by the activity tolerance rule
	IdleTime        int // minutes between idle-start and idle-end pairs
	PausedTime      int // minutes between pause and resume pairs
	ActivityCount   int

	IsActive bool

	// Transient pause bookkeeping; LastPauseTime is cleared on resume.
	LastPauseTime  *time.Time
	LastResumeTime *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open reports whether the session is still accepting events.
func (s *WorkSession) Open() bool {
	return s.IsActive && s.CheckOutTime == nil
}
