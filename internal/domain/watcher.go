package domain

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Watcher is a connected subscriber of a room's watch stream. Events is
// buffered; a slow consumer drops updates rather than blocking the pusher.
type Watcher struct {
	ID     string
	UserID string
	Socket *websocket.Conn

	mu     sync.Mutex
	closed bool
	events chan RoomEvent
}

func NewWatcher(userID string) *Watcher {
	return &Watcher{
		ID:     uuid.New().String(),
		UserID: userID,
		events: make(chan RoomEvent, 16),
	}
}

// Events returns the channel the write pump consumes. It is closed by Close.
func (w *Watcher) Events() <-chan RoomEvent {
	return w.events
}

// EnqueueEvent offers an event to the watcher. Reports false once the
// watcher is closed so pushers know to stop.
func (w *Watcher) EnqueueEvent(event RoomEvent) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	select {
	case w.events <- event:
	default:
	}
	return true
}

// Close tears down the socket and event channel. Safe to call more than
// once.
func (w *Watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	close(w.events)
	if w.Socket != nil {
		w.Socket.Close()
	}
}
