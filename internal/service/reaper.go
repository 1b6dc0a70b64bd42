package service

import (
	"context"
	"log/slog"
	"time"

	"listening-room/internal/domain"
	"listening-room/internal/presence"
	"listening-room/lib/logger/sl"
)

const (
	// DefaultReapInterval is how often the reaper sweeps live rooms.
	DefaultReapInterval = 5 * time.Second
	// DefaultEmptyGrace is how long a room may sit at zero active users
	// before it is torn down.
	DefaultEmptyGrace = 5 * time.Second
)

// Reaper periodically deletes rooms that lost their owner or stayed empty
// past the grace window. It runs as a single goroutine, so ticks never
// overlap and its bookkeeping needs no locking of its own.
type Reaper struct {
	rooms    *RoomService
	tracker  *presence.Tracker
	interval time.Duration
	grace    time.Duration
	log      *slog.Logger
	now      func() time.Time

	// first time a room was observed with zero active users
	zeroSince map[string]time.Time
}

type ReaperOption func(*Reaper)

func WithInterval(d time.Duration) ReaperOption {
	return func(r *Reaper) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithEmptyGrace(d time.Duration) ReaperOption {
	return func(r *Reaper) {
		if d > 0 {
			r.grace = d
		}
	}
}

func WithReaperClock(now func() time.Time) ReaperOption {
	return func(r *Reaper) {
		if now != nil {
			r.now = now
		}
	}
}

func NewReaper(rooms *RoomService, tracker *presence.Tracker, log *slog.Logger, opts ...ReaperOption) *Reaper {
	if log == nil {
		log = slog.Default()
	}
	r := &Reaper{
		rooms:     rooms,
		tracker:   tracker,
		interval:  DefaultReapInterval,
		grace:     DefaultEmptyGrace,
		log:       log,
		now:       time.Now,
		zeroSince: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run sweeps on the configured interval until ctx is cancelled.
func (r *Reaper) Run(ctx context.Context) error {
	r.log.Info("starting room reaper", "interval", r.interval, "grace", r.grace)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reaper) sweep(ctx context.Context) {
	rooms, err := r.rooms.ListRooms(ctx)
	if err != nil {
		r.log.Error("reaper failed to list rooms", sl.Err(err))
		return
	}

	now := r.now()
	for _, room := range rooms {
		r.sweepRoom(ctx, room, now)
	}

	// bookkeeping for rooms that disappeared outside the reaper
	live := make(map[string]struct{}, len(rooms))
	for _, room := range rooms {
		live[room.ID] = struct{}{}
	}
	for id := range r.zeroSince {
		if _, ok := live[id]; !ok {
			delete(r.zeroSince, id)
		}
	}
}

func (r *Reaper) sweepRoom(ctx context.Context, room *domain.Room, now time.Time) {
	// owner departure tears the room down immediately, no grace
	if room.OwnerID != "" && !r.tracker.IsActive(room.ID, room.OwnerID) {
		r.deleteRoom(ctx, room.ID, "owner left", slog.String("owner", room.OwnerID))
		return
	}

	users := r.tracker.ActiveCount(room.ID)
	if users > 0 {
		if _, marked := r.zeroSince[room.ID]; marked {
			delete(r.zeroSince, room.ID)
			r.log.Debug("room no longer empty", "room_id", room.ID)
		}
		return
	}

	since, marked := r.zeroSince[room.ID]
	if !marked {
		r.zeroSince[room.ID] = now
		r.log.Debug("room became empty", "room_id", room.ID)
		return
	}

	if now.Sub(since) >= r.grace {
		r.deleteRoom(ctx, room.ID, "empty past grace")
	}
}

func (r *Reaper) deleteRoom(ctx context.Context, roomID, cause string, attrs ...any) {
	removed, err := r.rooms.DeleteRoom(ctx, roomID)
	if err != nil {
		// a single room failing must not abort the sweep; keep the empty
		// mark so the grace clock does not restart on a transient error
		r.log.Error("reaper failed to delete room", append([]any{"room_id", roomID}, sl.Err(err))...)
		return
	}

	delete(r.zeroSince, roomID)

	r.log.Info("room reaped",
		append([]any{"room_id", roomID, "cause", cause, "removed", removed}, attrs...)...)
}
