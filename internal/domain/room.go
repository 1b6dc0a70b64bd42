package domain

import (
	"sync"
	"time"
)

// Room is a named, capacity-bounded unit that listeners join. Players is the
// historical record of everyone ever admitted; it only shrinks when the owner
// removes someone explicitly. Who is actually online right now is tracked
// separately by presence.
//
// Lookups hand out the stored room itself, so Players is guarded by the
// room's own mutex; all access goes through the methods below.
type Room struct {
	ID        string
	Name      string
	Genre     string
	Pass      string
	Capacity  int
	OwnerID   string
	CreatedAt time.Time

	mu      sync.RWMutex
	players []string
}

// NewRoom constructs a room with the given identity. If an owner is supplied
// it is registered as the first player, so a fresh room already has one
// member.
func NewRoom(id, name, genre, pass string, capacity int, ownerID string) *Room {
	if capacity < 1 {
		capacity = 1
	}

	room := &Room{
		ID:        id,
		Name:      name,
		Genre:     genre,
		Pass:      pass,
		Capacity:  capacity,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
		players:   make([]string, 0, capacity),
	}

	if ownerID != "" {
		room.players = append(room.players, ownerID)
	}

	return room
}

// HasPassword reports whether joins must present the room password.
func (r *Room) HasPassword() bool {
	return r != nil && r.Pass != ""
}

// HasPlayer reports whether userID was ever registered to the room.
func (r *Room) HasPlayer(userID string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hasPlayerLocked(userID)
}

// Belongs reports whether userID is the owner or a registered player.
func (r *Room) Belongs(userID string) bool {
	if r == nil || userID == "" {
		return false
	}
	return r.OwnerID == userID || r.HasPlayer(userID)
}

// AddPlayer registers userID to the historical player list. Reports whether
// the player was newly added.
func (r *Room) AddPlayer(userID string) bool {
	if r == nil || userID == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hasPlayerLocked(userID) {
		return false
	}
	r.players = append(r.players, userID)
	return true
}

// RemovePlayer drops userID from the player list. Reports whether a removal
// occurred.
func (r *Room) RemovePlayer(userID string) bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.players {
		if p == userID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return true
		}
	}
	return false
}

// Players returns a copy of the registered player list.
func (r *Room) Players() []string {
	if r == nil {
		return []string{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.players...)
}

func (r *Room) hasPlayerLocked(userID string) bool {
	for _, p := range r.players {
		if p == userID {
			return true
		}
	}
	return false
}
