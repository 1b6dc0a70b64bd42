package presence

import (
	"sync"
	"time"

	"github.com/samber/lo"
)

// DefaultWindow is how recent a heartbeat must be for a user to count as
// active.
const DefaultWindow = 5 * time.Second

// Tracker records the last heartbeat per (room, user) pair. Entries are never
// aged out individually; they stop counting once they leave the window and
// are dropped wholesale when a room is forgotten.
type Tracker struct {
	mu     sync.RWMutex
	rooms  map[string]map[string]time.Time
	window time.Duration
	now    func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithWindow overrides the active window.
func WithWindow(window time.Duration) Option {
	return func(t *Tracker) {
		if window > 0 {
			t.window = window
		}
	}
}

// WithClock overrides the time source. Used by tests to age entries without
// sleeping.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		rooms:  make(map[string]map[string]time.Time),
		window: DefaultWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Window returns the configured active window.
func (t *Tracker) Window() time.Duration {
	return t.window
}

// Touch records a heartbeat for userID in roomID. Empty ids are ignored.
func (t *Tracker) Touch(roomID, userID string) {
	if roomID == "" || userID == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	m, ok := t.rooms[roomID]
	if !ok {
		m = make(map[string]time.Time)
		t.rooms[roomID] = m
	}
	m[userID] = t.now()
}

// ActiveCount returns how many users of roomID heartbeated within the window.
func (t *Tracker) ActiveCount(roomID string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	m, ok := t.rooms[roomID]
	if !ok {
		return 0
	}

	now := t.now()
	count := 0
	for _, lastSeen := range m {
		if now.Sub(lastSeen) <= t.window {
			count++
		}
	}
	return count
}

// ActiveUsers returns the ids of roomID's users seen within the window.
func (t *Tracker) ActiveUsers(roomID string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	m, ok := t.rooms[roomID]
	if !ok {
		return []string{}
	}

	now := t.now()
	return lo.Keys(lo.PickBy(m, func(_ string, lastSeen time.Time) bool {
		return now.Sub(lastSeen) <= t.window
	}))
}

// IsActive reports whether userID heartbeated in roomID within the window.
func (t *Tracker) IsActive(roomID, userID string) bool {
	if roomID == "" || userID == "" {
		return false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	m, ok := t.rooms[roomID]
	if !ok {
		return false
	}
	lastSeen, ok := m[userID]
	if !ok {
		return false
	}
	return t.now().Sub(lastSeen) <= t.window
}

// Forget drops every presence entry of roomID. Called when the room is
// deleted so presence does not grow for the process lifetime.
func (t *Tracker) Forget(roomID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.rooms, roomID)
}
