package domain

// RoomSnapshot is the externally visible state of a room at a point in time.
// UsersCount is derived from live presence, never stored.
type RoomSnapshot struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Genre       string `json:"genre"`
	UsersCount  int    `json:"usersCount"`
	MaxUsers    int    `json:"maxUsers"`
	HasPassword bool   `json:"hasPassword"`
	OwnerID     string `json:"ownerId"`
}

// RoomUsers is the listing view of a room's membership: who is online right
// now versus everyone ever registered.
type RoomUsers struct {
	OwnerID           string   `json:"ownerId"`
	ActiveUsers       []string `json:"activeUsers"`
	RegisteredPlayers []string `json:"registeredPlayers"`
}

// JoinReason classifies why a join was refused.
type JoinReason string

const (
	JoinNotFound    JoinReason = "not_found"
	JoinBadPassword JoinReason = "bad_pass"
	JoinFull        JoinReason = "full"
)

// JoinDecision is the outcome of admission control. Reason is set only when
// OK is false.
type JoinDecision struct {
	OK     bool       `json:"ok"`
	Reason JoinReason `json:"reason,omitempty"`
}
