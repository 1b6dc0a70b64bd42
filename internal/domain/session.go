package domain

import "time"

// Session is an opaque client identity. The server never stores sessions; it
// mints them and echoes well-formed ones back.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"-"`
}

const sessionTimeLayout = "02/01/2006 15:04:05"

// CreatedAtDisplay renders the creation time in the dd/mm/yyyy HH:MM:SS form
// the clients expect.
func (s Session) CreatedAtDisplay() string {
	return s.CreatedAt.Format(sessionTimeLayout)
}

// ParseSessionTime parses a display-formatted or RFC3339 timestamp. The zero
// time and false are returned for anything else.
func ParseSessionTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(sessionTimeLayout, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}
