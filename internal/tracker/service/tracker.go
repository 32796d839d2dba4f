package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/clockin-dev/clockin/internal/tracker/domain"
	"github.com/clockin-dev/clockin/internal/tracker/store"
	"github.com/clockin-dev/clockin/pkg/idx"
	"github.com/clockin-dev/clockin/pkg/slogx"
)

const (
	// ActiveTimeToleranceMinutes is the largest gap between two
	// heartbeats that still counts as active work. A stale or duplicate
	// ping after a longer gap credits nothing.
	ActiveTimeToleranceMinutes = 10

	// MinActivityCreditMinutes is credited for a sub-minute heartbeat
	// gap so rapid interaction still accrues time.
	MinActivityCreditMinutes = 1
)

// TrackerService is the session state machine. It turns the stream of
// client events (check-in, heartbeat, idle, pause, check-out) into the
// session's duration counters and the user's presence flags.
//
// Every operation serializes on a per-user mutex and commits its user,
// session, and log writes in one transaction, so a failure leaves the
// whole event unapplied and the caller can safely retry it.
type TrackerService struct {
	Store store.Store

	// Now returns the current time. Tests override it; when nil,
	// time.Now is used.
	Now func() time.Time

	locks userLocks
}

func (s *TrackerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// minutesBetween returns the whole minutes from ref to now, truncated
// toward zero and clamped at zero. The clamp is the clock-skew defence:
// an event stamped before its reference counts as a zero-length gap.
func minutesBetween(now, ref time.Time) int {
	d := now.Sub(ref)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

// RecordEvent dispatches a client activity event by type. Check-in and
// check-out have their own endpoints and are rejected here, as is any
// unrecognised type.
func (s *TrackerService) RecordEvent(ctx context.Context, userID string, t domain.EventType, metadata json.RawMessage) (domain.WorkSession, error) {
	switch t {
	case domain.EventActivity:
		return s.RecordActivity(ctx, userID, metadata)
	case domain.EventIdleStart:
		return s.IdleStart(ctx, userID)
	case domain.EventIdleEnd:
		return s.IdleEnd(ctx, userID)
	case domain.EventManualPause:
		return s.Pause(ctx, userID)
	case domain.EventManualResume:
		return s.Resume(ctx, userID)
	default:
		return domain.WorkSession{}, ErrInvalidEventType
	}
}

// CheckIn opens a new work session for the user. Fails with
// ErrSessionExists when one is already open.
func (s *TrackerService) CheckIn(ctx context.Context, userID string) (domain.WorkSession, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	now := s.now()
	var session domain.WorkSession

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if _, err := tx.Sessions().GetActiveSession(ctx, userID); err == nil {
			return ErrSessionExists
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		session = domain.WorkSession{
			ID:          idx.New().String(),
			UserID:      user.ID,
			CheckInTime: now,
			Date:        now.UTC().Format(domain.DateLayout),
			IsActive:    true,
		}
		if err := tx.Sessions().CreateSession(ctx, session); err != nil {
			// The partial unique index catches a concurrent check-in
			// that slipped past the read above.
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrSessionExists
			}
			return err
		}

		if err := tx.Users().UpdateStatus(ctx, userID, true, false, now); err != nil {
			return err
		}

		return appendLog(ctx, tx, userID, session.ID, domain.EventCheckIn, now, nil)
	})
	if err != nil {
		return domain.WorkSession{}, err
	}

	slogx.FromContext(ctx).Info("user checked in", "user_id", userID, "session_id", session.ID)
	return session, nil
}

// CheckOut closes the user's open session and folds its active time
// into the lifetime accumulator. The session is immutable afterwards;
// repeating check-out fails with ErrNoActiveSession.
func (s *TrackerService) CheckOut(ctx context.Context, userID string) (domain.WorkSession, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	now := s.now()
	var session domain.WorkSession

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		session, err = requireActiveSession(ctx, tx, userID)
		if err != nil {
			return err
		}

		session.CheckOutTime = &now
		session.IsActive = false
		if err := tx.Sessions().SaveSession(ctx, session); err != nil {
			return err
		}

		// Only active minutes count toward lifetime working time; idle
		// and paused minutes stay on the session for reporting.
		if err := tx.Users().AddWorkingTime(ctx, userID, session.TotalActiveTime); err != nil {
			return err
		}
		if err := tx.Users().UpdateStatus(ctx, userID, false, false, now); err != nil {
			return err
		}

		return appendLog(ctx, tx, userID, session.ID, domain.EventCheckOut, now, nil)
	})
	if err != nil {
		return domain.WorkSession{}, err
	}

	slogx.FromContext(ctx).Info("user checked out",
		"user_id", userID,
		"session_id", session.ID,
		"active_minutes", session.TotalActiveTime,
		"idle_minutes", session.IdleTime,
		"paused_minutes", session.PausedTime,
	)
	return session, nil
}

// RecordActivity applies a heartbeat. The gap since the user's last
// activity is credited as active time under the tolerance rule; while
// paused the heartbeat is a complete no-op (no counters, no log entry).
func (s *TrackerService) RecordActivity(ctx context.Context, userID string, metadata json.RawMessage) (domain.WorkSession, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	now := s.now()
	var session domain.WorkSession

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		session, err = requireActiveSession(ctx, tx, userID)
		if err != nil {
			return err
		}

		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.IsPaused {
			// Paused time must not accrue as active time.
			return nil
		}

		session.ActivityCount++

		ref := session.CheckInTime
		if user.LastActivity != nil {
			ref = *user.LastActivity
		}
		if gap := minutesBetween(now, ref); gap <= ActiveTimeToleranceMinutes {
			session.TotalActiveTime += max(MinActivityCreditMinutes, gap)
		}

		if err := tx.Sessions().SaveSession(ctx, session); err != nil {
			return err
		}
		if err := tx.Users().UpdateStatus(ctx, userID, true, false, now); err != nil {
			return err
		}

		return appendLog(ctx, tx, userID, session.ID, domain.EventActivity, now, metadata)
	})
	if err != nil {
		return domain.WorkSession{}, err
	}
	return session, nil
}

// IdleStart records the beginning of an idle interval. No counter moves
// here; the duration is resolved when the matching idle-end arrives.
func (s *TrackerService) IdleStart(ctx context.Context, userID string) (domain.WorkSession, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	now := s.now()
	var session domain.WorkSession

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		session, err = requireActiveSession(ctx, tx, userID)
		if err != nil {
			return err
		}
		return appendLog(ctx, tx, userID, session.ID, domain.EventIdleStart, now, nil)
	})
	if err != nil {
		return domain.WorkSession{}, err
	}
	return session, nil
}

// IdleEnd closes the most recent idle interval and adds its whole
// minutes to the session's idle counter. Unlike active time there is no
// upper tolerance: a long idle stretch is exactly what the counter is
// for. An idle-end with no prior idle-start adds zero and succeeds.
func (s *TrackerService) IdleEnd(ctx context.Context, userID string) (domain.WorkSession, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	now := s.now()
	var session domain.WorkSession

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		session, err = requireActiveSession(ctx, tx, userID)
		if err != nil {
			return err
		}

		idleStart, err := tx.ActivityLogs().LatestByType(ctx, session.ID, domain.EventIdleStart)
		switch {
		case err == nil:
			session.IdleTime += minutesBetween(now, idleStart.Timestamp)
			if err := tx.Sessions().SaveSession(ctx, session); err != nil {
				return err
			}
		case errors.Is(err, store.ErrNotFound):
			// No idle-start on record; treat the interval as zero.
		default:
			return err
		}

		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := tx.Users().UpdateStatus(ctx, userID, user.IsCheckedIn, user.IsPaused, now); err != nil {
			return err
		}

		return appendLog(ctx, tx, userID, session.ID, domain.EventIdleEnd, now, nil)
	})
	if err != nil {
		return domain.WorkSession{}, err
	}
	return session, nil
}

// Pause suspends time accrual. While paused heartbeats are ignored and
// the idle watchdog skips the session.
func (s *TrackerService) Pause(ctx context.Context, userID string) (domain.WorkSession, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	now := s.now()
	var session domain.WorkSession

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		session, err = requireActiveSession(ctx, tx, userID)
		if err != nil {
			return err
		}

		session.LastPauseTime = &now
		if err := tx.Sessions().SaveSession(ctx, session); err != nil {
			return err
		}
		if err := tx.Users().UpdateStatus(ctx, userID, true, true, now); err != nil {
			return err
		}

		return appendLog(ctx, tx, userID, session.ID, domain.EventManualPause, now, nil)
	})
	if err != nil {
		return domain.WorkSession{}, err
	}

	slogx.FromContext(ctx).Info("work paused", "user_id", userID, "session_id", session.ID)
	return session, nil
}

// Resume ends a pause, crediting the paused interval to the session's
// paused counter. Resuming without a recorded pause adds zero.
func (s *TrackerService) Resume(ctx context.Context, userID string) (domain.WorkSession, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	now := s.now()
	var session domain.WorkSession

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		session, err = requireActiveSession(ctx, tx, userID)
		if err != nil {
			return err
		}

		if session.LastPauseTime != nil {
			session.PausedTime += minutesBetween(now, *session.LastPauseTime)
			session.LastPauseTime = nil
		}
		session.LastResumeTime = &now
		if err := tx.Sessions().SaveSession(ctx, session); err != nil {
			return err
		}
		if err := tx.Users().UpdateStatus(ctx, userID, true, false, now); err != nil {
			return err
		}

		return appendLog(ctx, tx, userID, session.ID, domain.EventManualResume, now, nil)
	})
	if err != nil {
		return domain.WorkSession{}, err
	}

	slogx.FromContext(ctx).Info("work resumed", "user_id", userID, "session_id", session.ID)
	return session, nil
}

func requireActiveSession(ctx context.Context, tx store.Tx, userID string) (domain.WorkSession, error) {
	session, err := tx.Sessions().GetActiveSession(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.WorkSession{}, ErrNoActiveSession
		}
		return domain.WorkSession{}, err
	}
	return session, nil
}

func appendLog(ctx context.Context, tx store.Tx, userID, sessionID string, t domain.EventType, ts time.Time, metadata json.RawMessage) error {
	return tx.ActivityLogs().Append(ctx, domain.ActivityLog{
		ID:        idx.New().String(),
		UserID:    userID,
		SessionID: sessionID,
		Type:      t,
		Timestamp: ts,
		Metadata:  metadata,
	})
}
