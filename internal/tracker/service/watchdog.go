package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/clockin-dev/clockin/internal/tracker/domain"
	"github.com/clockin-dev/clockin/internal/tracker/store"
)

// WatchdogService is the server-side idle detector. The state machine
// itself only reacts to explicit idle-start/idle-end calls; this sweep
// loop plays the scheduler role, marking sessions idle after a stretch
// of inactivity and optionally checking them out after a much longer
// one.
//
// A periodic sweep over open sessions replaces per-session timers, so
// there is nothing to cancel on check-out or pause: closed sessions
// drop out of the scan and paused sessions are skipped.
type WatchdogService struct {
	Store   store.Store
	Tracker *TrackerService
	Logger  *slog.Logger

	Interval      time.Duration // sweep cadence
	IdleAfter     time.Duration // inactivity before idle-start fires
	CheckoutAfter time.Duration // inactivity before auto check-out; 0 disables

	// Now returns the current time. Tests override it; when nil,
	// time.Now is used.
	Now func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewWatchdogService creates a watchdog with sane defaults: a sweep
// every minute, idle after 10 minutes, auto check-out disabled.
func NewWatchdogService(st store.Store, tracker *TrackerService, logger *slog.Logger, interval, idleAfter, checkoutAfter time.Duration) *WatchdogService {
	if interval <= 0 {
		interval = time.Minute
	}
	if idleAfter <= 0 {
		idleAfter = 10 * time.Minute
	}

	return &WatchdogService{
		Store:         st,
		Tracker:       tracker,
		Logger:        logger,
		Interval:      interval,
		IdleAfter:     idleAfter,
		CheckoutAfter: checkoutAfter,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

func (s *WatchdogService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Start begins the background sweep loop. Non-blocking; call Stop to
// shut it down.
func (s *WatchdogService) Start() {
	go s.run()
	s.Logger.Info("idle watchdog started",
		"interval", s.Interval,
		"idle_after", s.IdleAfter,
		"checkout_after", s.CheckoutAfter,
	)
}

// Stop gracefully shuts down the sweep loop. Blocks until any
// in-progress sweep has finished.
func (s *WatchdogService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("idle watchdog stopped")
}

func (s *WatchdogService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep examines every open session once. Exported so tests (and hosts
// with their own scheduler) can drive it directly.
func (s *WatchdogService) Sweep(ctx context.Context) {
	now := s.now()

	sessions, err := s.Store.Sessions().ListActiveSessions(ctx)
	if err != nil {
		s.Logger.Error("watchdog: failed to list active sessions", "error", err)
		return
	}

	for _, session := range sessions {
		if err := s.inspect(ctx, session, now); err != nil {
			// One stuck session must not stop the rest of the sweep.
			s.Logger.Error("watchdog: inspect failed",
				"session_id", session.ID,
				"user_id", session.UserID,
				"error", err,
			)
		}
	}
}

func (s *WatchdogService) inspect(ctx context.Context, session domain.WorkSession, now time.Time) error {
	user, err := s.Store.Users().GetUserByID(ctx, session.UserID)
	if err != nil {
		return err
	}
	if user.IsPaused {
		// The idle clock is suspended while paused.
		return nil
	}

	lastSeen := session.CheckInTime
	if user.LastActivity != nil {
		lastSeen = *user.LastActivity
	}
	inactive := now.Sub(lastSeen)

	if s.CheckoutAfter > 0 && inactive >= s.CheckoutAfter {
		// Close a dangling idle interval first so the idle minutes are
		// credited before the session is finalized.
		if idle, err := s.isIdle(ctx, session.ID); err != nil {
			return err
		} else if idle {
			if _, err := s.Tracker.IdleEnd(ctx, session.UserID); err != nil {
				return err
			}
		}

		if _, err := s.Tracker.CheckOut(ctx, session.UserID); err != nil {
			return err
		}
		s.Logger.Info("watchdog: auto check-out",
			"user_id", session.UserID,
			"session_id", session.ID,
			"inactive", inactive,
		)
		return nil
	}

	if inactive >= s.IdleAfter {
		idle, err := s.isIdle(ctx, session.ID)
		if err != nil || idle {
			return err
		}
		if _, err := s.Tracker.IdleStart(ctx, session.UserID); err != nil {
			return err
		}
		s.Logger.Info("watchdog: marked idle",
			"user_id", session.UserID,
			"session_id", session.ID,
			"inactive", inactive,
		)
	}
	return nil
}

// isIdle reports whether the session has an idle-start without a newer
// idle-end, i.e. an idle interval is currently open.
func (s *WatchdogService) isIdle(ctx context.Context, sessionID string) (bool, error) {
	start, err := s.Store.ActivityLogs().LatestByType(ctx, sessionID, domain.EventIdleStart)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	end, err := s.Store.ActivityLogs().LatestByType(ctx, sessionID, domain.EventIdleEnd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return true, nil
		}
		return false, err
	}

	return end.Timestamp.Before(start.Timestamp), nil
}
