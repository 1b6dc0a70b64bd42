package domain

// RoomEvent is a message pushed to watch-stream subscribers.
type RoomEvent struct {
	Type  string        `json:"type"`
	Room  string        `json:"room"`
	State *RoomSnapshot `json:"state,omitempty"`
}

const (
	EventState  = "state"
	EventClosed = "closed"
)
