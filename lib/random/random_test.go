package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRoomID(t *testing.T) {
	req := require.New(t)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewRoomID()
		req.Len(id, roomIDLength)
		for _, r := range id {
			req.True(strings.ContainsRune(roomIDAlphabet, r), "unexpected rune %q in %q", r, id)
		}
		seen[id] = struct{}{}
	}

	// collisions over 100 draws from a 36^8 space would point at a broken source
	req.Len(seen, 100)
}

func TestNewSessionID(t *testing.T) {
	req := require.New(t)

	id := NewSessionID()
	req.Len(id, SessionIDLength())
	for _, r := range id {
		req.True(strings.ContainsRune(sessionIDAlphabet, r), "unexpected rune %q in %q", r, id)
	}

	req.NotEqual(NewSessionID(), NewSessionID())
}
