package random

import "crypto/rand"

const (
	roomIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	roomIDLength   = 8

	sessionIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	sessionIDLength   = 15
)

// NewRoomID returns a short, readable room identifier. The id space is
// finite, so callers must check for collisions against live rooms before
// using it.
func NewRoomID() string {
	return fromAlphabet(roomIDAlphabet, roomIDLength)
}

// NewSessionID returns a session identifier for user identity. Uniqueness is
// probabilistic, not enforced.
func NewSessionID() string {
	return fromAlphabet(sessionIDAlphabet, sessionIDLength)
}

// SessionIDLength is the expected length of a well-formed session id.
func SessionIDLength() int {
	return sessionIDLength
}

func fromAlphabet(alphabet string, length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic("random: read from crypto source: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}
