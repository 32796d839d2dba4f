package service

import "sync"

// userLocks serializes state-mutating operations per user id. A
// heartbeat racing a manual pause for the same user must not interleave,
// or the one-open-session invariant and the duration counters can
// drift. There is no cross-user contention, so one mutex per user id is
// enough; the map is bounded by the number of users ever seen.
type userLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

// lock acquires the mutex for userID and returns its unlock function.
func (l *userLocks) lock(userID string) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[string]*sync.Mutex)
	}
	um, ok := l.m[userID]
	if !ok {
		um = &sync.Mutex{}
		l.m[userID] = um
	}
	l.mu.Unlock()

	um.Lock()
	return um.Unlock
}
