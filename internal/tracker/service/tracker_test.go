package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/clockin-dev/clockin/internal/tracker/domain"
	"github.com/clockin-dev/clockin/internal/tracker/store"
	"github.com/clockin-dev/clockin/internal/tracker/store/drivers/sqlite"
	"github.com/clockin-dev/clockin/pkg/idx"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests march the tracker through a day minute by minute.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "tracker.db")
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st store.Store, username string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Name:         username,
		PasswordHash: "argon2:test",
		Role:         domain.RoleUser,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func newTracker(st store.Store, clock *fakeClock) *TrackerService {
	return &TrackerService{Store: st, Now: clock.now}
}

var testBase = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestCheckIn(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	clock := &fakeClock{t: testBase}
	svc := newTracker(st, clock)
	ctx := context.Background()
	user := seedUser(t, st, "alice")

	t.Run("opens a fresh session", func(t *testing.T) {
		session, err := svc.CheckIn(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, session.IsActive)
		require.Equal(t, "2026-03-02", session.Date)
		require.Zero(t, session.TotalActiveTime)

		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, got.IsCheckedIn)
		require.False(t, got.IsPaused)
	})

	t.Run("rejects a second open session", func(t *testing.T) {
		_, err := svc.CheckIn(ctx, user.ID)
		require.ErrorIs(t, err, ErrSessionExists)
	})

	t.Run("rejects unknown users", func(t *testing.T) {
		_, err := svc.CheckIn(ctx, "no-such-user")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRecordActivity(t *testing.T) {
	t.Parallel()

	t.Run("sub-minute gap credits one minute", func(t *testing.T) {
		t.Parallel()
		st := newTestStore(t)
		clock := &fakeClock{t: testBase}
		svc := newTracker(st, clock)
		ctx := context.Background()
		user := seedUser(t, st, "alice")

		_, err := svc.CheckIn(ctx, user.ID)
		require.NoError(t, err)

		clock.advance(20 * time.Second)
		session, err := svc.RecordActivity(ctx, user.ID, nil)
		require.NoError(t, err)
		require.Equal(t, 1, session.TotalActiveTime)
		require.Equal(t, 1, session.ActivityCount)
	})

	t.Run("gap within tolerance credits the gap", func(t *testing.T) {
		t.Parallel()
		st := newTestStore(t)
		clock := &fakeClock{t: testBase}
		svc := newTracker(st, clock)
		ctx := context.Background()
		user := seedUser(t, st, "alice")

		_, err := svc.CheckIn(ctx, user.ID)
		require.NoError(t, err)

		clock.advance(5 * time.Minute)
		session, err := svc.RecordActivity(ctx, user.ID, nil)
		require.NoError(t, err)
		require.Equal(t, 5, session.TotalActiveTime)
	})

	t.Run("gap beyond tolerance credits nothing", func(t *testing.T) {
		t.Parallel()
		st := newTestStore(t)
		clock := &fakeClock{t: testBase}
		svc := newTracker(st, clock)
		ctx := context.Background()
		user := seedUser(t, st, "alice")

		_, err := svc.CheckIn(ctx, user.ID)
		require.NoError(t, err)

		clock.advance(11 * time.Minute)
		session, err := svc.RecordActivity(ctx, user.ID, nil)
		require.NoError(t, err)
		require.Zero(t, session.TotalActiveTime)
		// The heartbeat itself is still counted and recorded.
		require.Equal(t, 1, session.ActivityCount)
	})

	t.Run("event stamped before the reference credits one minute", func(t *testing.T) {
		t.Parallel()
		st := newTestStore(t)
		clock := &fakeClock{t: testBase}
		svc := newTracker(st, clock)
		ctx := context.Background()
		user := seedUser(t, st, "alice")

		_, err := svc.CheckIn(ctx, user.ID)
		require.NoError(t, err)

		// Skewed clock: the heartbeat lands before check-in. The negative
		// gap clamps to zero, which still earns the minimum credit.
		clock.advance(-2 * time.Minute)
		session, err := svc.RecordActivity(ctx, user.ID, nil)
		require.NoError(t, err)
		require.Equal(t, 1, session.TotalActiveTime)
	})

	t.Run("requires an open session", func(t *testing.T) {
		t.Parallel()
		st := newTestStore(t)
		clock := &fakeClock{t: testBase}
		svc := newTracker(st, clock)
		user := seedUser(t, st, "alice")

		_, err := svc.RecordActivity(context.Background(), user.ID, nil)
		require.ErrorIs(t, err, ErrNoActiveSession)
	})
}

func TestPausedHeartbeatIsNoOp(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	clock := &fakeClock{t: testBase}
	svc := newTracker(st, clock)
	ctx := context.Background()
	user := seedUser(t, st, "alice")

	_, err := svc.CheckIn(ctx, user.ID)
	require.NoError(t, err)

	clock.advance(2 * time.Minute)
	_, err = svc.Pause(ctx, user.ID)
	require.NoError(t, err)

	clock.advance(3 * time.Minute)
	session, err := svc.RecordActivity(ctx, user.ID, nil)
	require.NoError(t, err)
	require.Zero(t, session.TotalActiveTime)
	require.Zero(t, session.ActivityCount)

	// Not even a log entry: the paused heartbeat leaves no trace.
	logs, err := st.ActivityLogs().ListByUser(ctx, user.ID, 50)
	require.NoError(t, err)
	for _, entry := range logs {
		require.NotEqual(t, domain.EventActivity, entry.Type)
	}

	// LastActivity is untouched, so the watchdog's idle clock keeps
	// running from the pause, not from the ignored ping.
	got, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastActivity)
	require.Equal(t, testBase.Add(2*time.Minute).Unix(), got.LastActivity.Unix())
}

func TestIdleTracking(t *testing.T) {
	t.Parallel()

	t.Run("idle interval credits whole minutes", func(t *testing.T) {
		t.Parallel()
		st := newTestStore(t)
		clock := &fakeClock{t: testBase}
		svc := newTracker(st, clock)
		ctx := context.Background()
		user := seedUser(t, st, "alice")

		_, err := svc.CheckIn(ctx, user.ID)
		require.NoError(t, err)

		_, err = svc.IdleStart(ctx, user.ID)
		require.NoError(t, err)

		clock.advance(7 * time.Minute)
		session, err := svc.IdleEnd(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, 7, session.IdleTime)
	})

	t.Run("idle time has no upper tolerance", func(t *testing.T) {
		t.Parallel()
		st := newTestStore(t)
		clock := &fakeClock{t: testBase}
		svc := newTracker(st, clock)
		ctx := context.Background()
		user := seedUser(t, st, "alice")

		_, err := svc.CheckIn(ctx, user.ID)
		require.NoError(t, err)

		_, err = svc.IdleStart(ctx, user.ID)
		require.NoError(t, err)

		clock.advance(90 * time.Minute)
		session, err := svc.IdleEnd(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, 90, session.IdleTime)
	})

	t.Run("idle-end without idle-start adds zero", func(t *testing.T) {
		t.Parallel()
		st := newTestStore(t)
		clock := &fakeClock{t: testBase}
		svc := newTracker(st, clock)
		ctx := context.Background()
		user := seedUser(t, st, "alice")

		_, err := svc.CheckIn(ctx, user.ID)
		require.NoError(t, err)

		clock.advance(5 * time.Minute)
		session, err := svc.IdleEnd(ctx, user.ID)
		require.NoError(t, err)
		require.Zero(t, session.IdleTime)
	})
}

func TestPauseResume(t *testing.T) {
	t.Parallel()

	t.Run("paused interval lands in the paused counter", func(t *testing.T) {
		t.Parallel()
		st := newTestStore(t)
		clock := &fakeClock{t: testBase}
		svc := newTracker(st, clock)
		ctx := context.Background()
		user := seedUser(t, st, "alice")

		_, err := svc.CheckIn(ctx, user.ID)
		require.NoError(t, err)

		_, err = svc.Pause(ctx, user.ID)
		require.NoError(t, err)

		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, got.IsPaused)

		clock.advance(15 * time.Minute)
		session, err := svc.Resume(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, 15, session.PausedTime)
		require.Nil(t, session.LastPauseTime)

		got, err = st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.False(t, got.IsPaused)
	})

	t.Run("resume without pause adds zero", func(t *testing.T) {
		t.Parallel()
		st := newTestStore(t)
		clock := &fakeClock{t: testBase}
		svc := newTracker(st, clock)
		ctx := context.Background()
		user := seedUser(t, st, "alice")

		_, err := svc.CheckIn(ctx, user.ID)
		require.NoError(t, err)

		clock.advance(5 * time.Minute)
		session, err := svc.Resume(ctx, user.ID)
		require.NoError(t, err)
		require.Zero(t, session.PausedTime)
	})
}

func TestCheckOut(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	clock := &fakeClock{t: testBase}
	svc := newTracker(st, clock)
	ctx := context.Background()
	user := seedUser(t, st, "alice")

	// First session: 30 active minutes in 10-minute heartbeats.
	_, err := svc.CheckIn(ctx, user.ID)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		clock.advance(10 * time.Minute)
		_, err = svc.RecordActivity(ctx, user.ID, nil)
		require.NoError(t, err)
	}

	session, err := svc.CheckOut(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, session.IsActive)
	require.NotNil(t, session.CheckOutTime)
	require.Equal(t, 30, session.TotalActiveTime)

	got, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 30, got.TotalWorkingTime)
	require.False(t, got.IsCheckedIn)

	t.Run("double check-out fails without double crediting", func(t *testing.T) {
		_, err := svc.CheckOut(ctx, user.ID)
		require.ErrorIs(t, err, ErrNoActiveSession)

		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, 30, got.TotalWorkingTime)
	})

	t.Run("lifetime total accumulates across sessions", func(t *testing.T) {
		_, err := svc.CheckIn(ctx, user.ID)
		require.NoError(t, err)
		for i := 0; i < 9; i++ {
			clock.advance(5 * time.Minute)
			_, err = svc.RecordActivity(ctx, user.ID, nil)
			require.NoError(t, err)
		}

		session, err := svc.CheckOut(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, 45, session.TotalActiveTime)

		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, 75, got.TotalWorkingTime)
	})

	t.Run("idle and paused minutes stay off the lifetime total", func(t *testing.T) {
		_, err := svc.CheckIn(ctx, user.ID)
		require.NoError(t, err)

		_, err = svc.IdleStart(ctx, user.ID)
		require.NoError(t, err)
		clock.advance(20 * time.Minute)
		_, err = svc.IdleEnd(ctx, user.ID)
		require.NoError(t, err)

		session, err := svc.CheckOut(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, 20, session.IdleTime)
		require.Zero(t, session.TotalActiveTime)

		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, 75, got.TotalWorkingTime)
	})
}

// TestWorkdayScenario walks one session through every transition and
// checks the final counters line up.
func TestWorkdayScenario(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	clock := &fakeClock{t: testBase}
	svc := newTracker(st, clock)
	ctx := context.Background()
	user := seedUser(t, st, "alice")

	// T0: check in.
	_, err := svc.CheckIn(ctx, user.ID)
	require.NoError(t, err)

	// T0+3: heartbeat, credits 3.
	clock.advance(3 * time.Minute)
	_, err = svc.RecordActivity(ctx, user.ID, nil)
	require.NoError(t, err)

	// T0+4: heartbeat, credits 1.
	clock.advance(1 * time.Minute)
	_, err = svc.RecordActivity(ctx, user.ID, nil)
	require.NoError(t, err)

	// T0+4: lunch break.
	_, err = svc.Pause(ctx, user.ID)
	require.NoError(t, err)

	// T0+10: stray heartbeat while paused, ignored.
	clock.advance(6 * time.Minute)
	_, err = svc.RecordActivity(ctx, user.ID, nil)
	require.NoError(t, err)

	// T0+19: back at the desk.
	clock.advance(9 * time.Minute)
	_, err = svc.Resume(ctx, user.ID)
	require.NoError(t, err)

	// T0+20: done for the day.
	clock.advance(1 * time.Minute)
	session, err := svc.CheckOut(ctx, user.ID)
	require.NoError(t, err)

	require.Equal(t, 4, session.TotalActiveTime)
	require.Equal(t, 15, session.PausedTime)
	require.Zero(t, session.IdleTime)
	require.Equal(t, 2, session.ActivityCount)

	got, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 4, got.TotalWorkingTime)
}

func TestRecordEventDispatch(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	clock := &fakeClock{t: testBase}
	svc := newTracker(st, clock)
	ctx := context.Background()
	user := seedUser(t, st, "alice")

	_, err := svc.CheckIn(ctx, user.ID)
	require.NoError(t, err)

	t.Run("rejects unknown types", func(t *testing.T) {
		_, err := svc.RecordEvent(ctx, user.ID, domain.EventType("nonsense"), nil)
		require.ErrorIs(t, err, ErrInvalidEventType)
	})

	t.Run("rejects check-in and check-out", func(t *testing.T) {
		_, err := svc.RecordEvent(ctx, user.ID, domain.EventCheckIn, nil)
		require.ErrorIs(t, err, ErrInvalidEventType)
		_, err = svc.RecordEvent(ctx, user.ID, domain.EventCheckOut, nil)
		require.ErrorIs(t, err, ErrInvalidEventType)
	})

	t.Run("dispatches pause and resume", func(t *testing.T) {
		_, err := svc.RecordEvent(ctx, user.ID, domain.EventManualPause, nil)
		require.NoError(t, err)

		clock.advance(2 * time.Minute)
		session, err := svc.RecordEvent(ctx, user.ID, domain.EventManualResume, nil)
		require.NoError(t, err)
		require.Equal(t, 2, session.PausedTime)
	})
}

func TestConcurrentCheckIn(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	clock := &fakeClock{t: testBase}
	svc := newTracker(st, clock)
	ctx := context.Background()
	user := seedUser(t, st, "alice")

	const attempts = 8
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CheckIn(ctx, user.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, conflicted int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrSessionExists)
			conflicted++
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, attempts-1, conflicted)

	sessions, err := st.Sessions().ListActiveSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
}
