package converter

import (
	"time"

	"listening-room/internal/domain"
)

type RoomResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Genre       string    `json:"genre"`
	Capacity    int       `json:"num"`
	OwnerID     string    `json:"ownerId"`
	Players     []string  `json:"players"`
	HasPassword bool      `json:"hasPassword"`
	CreatedAt   time.Time `json:"created_at"`
}

// RoomToApi maps a room to its API form. The password itself never leaves
// the server.
func RoomToApi(r *domain.Room) *RoomResponse {
	return &RoomResponse{
		ID:          r.ID,
		Name:        r.Name,
		Genre:       r.Genre,
		Capacity:    r.Capacity,
		OwnerID:     r.OwnerID,
		Players:     r.Players(),
		HasPassword: r.HasPassword(),
		CreatedAt:   r.CreatedAt,
	}
}

type SessionResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
}

func SessionToApi(s domain.Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		CreatedAt: s.CreatedAtDisplay(),
	}
}
