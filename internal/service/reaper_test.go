package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"listening-room/internal/domain"
)

func newTestReaper(env *testEnv) *Reaper {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewReaper(env.rooms, env.tracker, log,
		WithEmptyGrace(5*time.Second),
		WithReaperClock(env.clk.Now),
	)
}

func TestReaper_RemovesRoomWhenOwnerLeaves(t *testing.T) {
	req := require.New(t)
	env := newTestEnv()
	reaper := newTestReaper(env)
	ctx := context.Background()

	room, err := env.rooms.CreateRoom(ctx, CreateRoomInput{Name: "room", Capacity: 4, OwnerID: "o1"})
	req.NoError(err)

	// owner still heartbeating: survives
	reaper.sweep(ctx)
	_, err = env.rooms.GetRoom(ctx, room.ID)
	req.NoError(err)

	// owner ages out: torn down on the next sweep, no grace
	env.clk.Advance(6 * time.Second)
	reaper.sweep(ctx)

	_, err = env.rooms.GetRoom(ctx, room.ID)
	req.ErrorIs(err, domain.ErrRoomNotFound)
	req.Empty(reaper.zeroSince)
}

func TestReaper_EmptyRoomGrace(t *testing.T) {
	req := require.New(t)
	env := newTestEnv()
	reaper := newTestReaper(env)
	ctx := context.Background()

	// anonymous room, no owner-liveness rule in play
	room, err := env.rooms.CreateRoom(ctx, CreateRoomInput{Name: "room", Capacity: 4})
	req.NoError(err)
	_, err = env.rooms.Join(ctx, room.ID, "u1", "")
	req.NoError(err)

	// u1 disconnects
	env.clk.Advance(6 * time.Second)

	// first sweep only marks the room empty
	reaper.sweep(ctx)
	_, err = env.rooms.GetRoom(ctx, room.ID)
	req.NoError(err)
	req.Contains(reaper.zeroSince, room.ID)

	// someone joins within the grace window: the mark is cleared
	env.clk.Advance(3 * time.Second)
	_, err = env.rooms.Join(ctx, room.ID, "u2", "")
	req.NoError(err)
	reaper.sweep(ctx)
	req.NotContains(reaper.zeroSince, room.ID)

	// u2 disconnects and nobody shows up past the grace: room is reaped
	env.clk.Advance(6 * time.Second)
	reaper.sweep(ctx)
	req.Contains(reaper.zeroSince, room.ID)

	env.clk.Advance(5 * time.Second)
	reaper.sweep(ctx)

	_, err = env.rooms.GetRoom(ctx, room.ID)
	req.ErrorIs(err, domain.ErrRoomNotFound)
	req.Empty(reaper.zeroSince)
}

func TestReaper_GraceResetsNotCumulative(t *testing.T) {
	req := require.New(t)
	env := newTestEnv()
	reaper := newTestReaper(env)
	ctx := context.Background()

	room, err := env.rooms.CreateRoom(ctx, CreateRoomInput{Name: "room", Capacity: 4})
	req.NoError(err)
	_, err = env.rooms.Join(ctx, room.ID, "u1", "")
	req.NoError(err)

	// empty for 4s, then active again, then empty for 4s: never reaped,
	// the grace clock restarts from each new empty observation
	env.clk.Advance(6 * time.Second)
	reaper.sweep(ctx)
	env.clk.Advance(4 * time.Second)
	_, err = env.rooms.Join(ctx, room.ID, "u2", "")
	req.NoError(err)
	reaper.sweep(ctx)

	env.clk.Advance(6 * time.Second)
	reaper.sweep(ctx)
	env.clk.Advance(4 * time.Second)
	env.rooms.TouchPresence(ctx, room.ID, "u2")
	reaper.sweep(ctx)

	_, err = env.rooms.GetRoom(ctx, room.ID)
	req.NoError(err)
}

func TestReaper_KeepsEmptyMarkWhenDeleteFails(t *testing.T) {
	req := require.New(t)
	env := newTestEnv()
	reaper := newTestReaper(env)
	ctx := context.Background()

	room, err := env.rooms.CreateRoom(ctx, CreateRoomInput{Name: "room", Capacity: 4})
	req.NoError(err)

	mark := env.clk.Now()
	reaper.zeroSince[room.ID] = mark

	// a failed delete must not restart the grace clock
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	reaper.deleteRoom(cancelled, room.ID, "empty past grace")

	req.Equal(mark, reaper.zeroSince[room.ID])
	_, err = env.rooms.GetRoom(ctx, room.ID)
	req.NoError(err)

	// once the delete goes through the mark is cleared
	reaper.deleteRoom(ctx, room.ID, "empty past grace")
	req.NotContains(reaper.zeroSince, room.ID)
	_, err = env.rooms.GetRoom(ctx, room.ID)
	req.ErrorIs(err, domain.ErrRoomNotFound)
}

func TestReaper_PurgesBookkeepingForVanishedRooms(t *testing.T) {
	req := require.New(t)
	env := newTestEnv()
	reaper := newTestReaper(env)
	ctx := context.Background()

	room, err := env.rooms.CreateRoom(ctx, CreateRoomInput{Name: "room", Capacity: 4})
	req.NoError(err)
	_, err = env.rooms.Join(ctx, room.ID, "u1", "")
	req.NoError(err)

	env.clk.Advance(6 * time.Second)
	reaper.sweep(ctx)
	req.Contains(reaper.zeroSince, room.ID)

	// the owner deletes the room out from under the reaper
	_, err = env.rooms.DeleteRoom(ctx, room.ID)
	req.NoError(err)

	reaper.sweep(ctx)
	req.Empty(reaper.zeroSince)
}

func TestReaper_RunStopsOnCancel(t *testing.T) {
	req := require.New(t)
	env := newTestEnv()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reaper := NewReaper(env.rooms, env.tracker, log, WithInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- reaper.Run(ctx)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		req.ErrorIs(err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop after cancel")
	}
}
