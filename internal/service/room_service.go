package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"listening-room/internal/domain"
	"listening-room/internal/presence"
	"listening-room/internal/repository"
	"listening-room/lib/logger/sl"
	"listening-room/lib/random"
)

// CreateRoomInput carries the client-supplied fields of a new room.
type CreateRoomInput struct {
	Name     string
	Genre    string
	Pass     string
	Capacity int
	OwnerID  string
}

// RoomService is the admission and lifecycle layer over the room store and
// the presence tracker.
type RoomService struct {
	rooms   repository.RoomRepository
	tracker *presence.Tracker
	log     *slog.Logger
}

func NewRoomService(rooms repository.RoomRepository, tracker *presence.Tracker, log *slog.Logger) *RoomService {
	if log == nil {
		log = slog.Default()
	}
	return &RoomService{
		rooms:   rooms,
		tracker: tracker,
		log:     log,
	}
}

// CreateRoom mints a unique room id, stores the room and marks the owner as
// present, so a fresh room already counts its owner against capacity.
func (s *RoomService) CreateRoom(ctx context.Context, in CreateRoomInput) (*domain.Room, error) {
	const op = "service.room.create"

	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrNameRequired
	}

	for {
		room := domain.NewRoom(random.NewRoomID(), in.Name, in.Genre, in.Pass, in.Capacity, in.OwnerID)

		if err := s.rooms.Create(ctx, room); err != nil {
			if errors.Is(err, repository.ErrRoomIDExists) {
				continue
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if room.OwnerID != "" {
			s.tracker.Touch(room.ID, room.OwnerID)
		}

		s.log.Info("room created",
			"op", op,
			"room_id", room.ID,
			"name", room.Name,
			"capacity", room.Capacity,
			"owner", room.OwnerID,
			"users", len(room.Players()),
		)
		return room, nil
	}
}

func (s *RoomService) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *RoomService) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	return s.rooms.List(ctx)
}

// DeleteRoom removes the room and releases its presence state. Every
// deletion path (owner action, reaper) goes through here so the two stay
// consistent.
func (s *RoomService) DeleteRoom(ctx context.Context, id string) (bool, error) {
	const op = "service.room.delete"

	removed, err := s.rooms.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if removed {
		s.tracker.Forget(id)
	}

	s.log.Info("room deleted", "op", op, "room_id", id, "removed", removed)
	return removed, nil
}

// ValidateJoin applies admission rules in priority order: the room must
// exist, the password must match when one is set, and there must be a free
// slot among currently active users. Registered-but-inactive players do not
// occupy slots.
func (s *RoomService) ValidateJoin(ctx context.Context, id, pass string) domain.JoinDecision {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return domain.JoinDecision{OK: false, Reason: domain.JoinNotFound}
	}

	if room.HasPassword() && room.Pass != pass {
		return domain.JoinDecision{OK: false, Reason: domain.JoinBadPassword}
	}

	if room.Capacity > 0 && s.tracker.ActiveCount(id) >= room.Capacity {
		return domain.JoinDecision{OK: false, Reason: domain.JoinFull}
	}

	return domain.JoinDecision{OK: true}
}

// Join admits userID into the room: validates, registers the player and
// marks presence, then returns the room state the caller should see.
func (s *RoomService) Join(ctx context.Context, roomID, userID, pass string) (*domain.RoomSnapshot, error) {
	const op = "service.room.join"
	log := s.log.With(slog.String("op", op), slog.String("room_id", roomID))

	decision := s.ValidateJoin(ctx, roomID, pass)
	if !decision.OK {
		log.Info("join refused", "user", userID, "reason", decision.Reason)
		return nil, joinError(decision.Reason)
	}

	added, err := s.rooms.AddPlayer(ctx, roomID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.tracker.Touch(roomID, userID)

	log.Info("user joined", "user", userID, "added", added)
	return s.Snapshot(ctx, roomID)
}

// AddPlayer registers userID to the room's historical list without touching
// presence.
func (s *RoomService) AddPlayer(ctx context.Context, roomID, userID string) (bool, error) {
	return s.rooms.AddPlayer(ctx, roomID, userID)
}

// TouchPresence refreshes userID's heartbeat, but only for the owner or a
// registered player. A removed user keeps polling into the void and ages out
// of the active window.
func (s *RoomService) TouchPresence(ctx context.Context, roomID, userID string) {
	if roomID == "" || userID == "" {
		return
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return
	}
	if !room.Belongs(userID) {
		return
	}

	s.tracker.Touch(roomID, userID)
}

// Snapshot derives the public room state, counting users from live presence.
func (s *RoomService) Snapshot(ctx context.Context, id string) (*domain.RoomSnapshot, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.RoomSnapshot{
		ID:          room.ID,
		Name:        room.Name,
		Genre:       room.Genre,
		UsersCount:  s.tracker.ActiveCount(id),
		MaxUsers:    room.Capacity,
		HasPassword: room.HasPassword(),
		OwnerID:     room.OwnerID,
	}, nil
}

// ActiveUsersView returns who is online now alongside the historical player
// list.
func (s *RoomService) ActiveUsersView(ctx context.Context, id string) (*domain.RoomUsers, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.RoomUsers{
		OwnerID:           room.OwnerID,
		ActiveUsers:       s.tracker.ActiveUsers(id),
		RegisteredPlayers: room.Players(),
	}, nil
}

// RemoveUser kicks targetID out of the room. Only the owner may do this; the
// kick unregisters the player, which in turn makes TouchPresence ignore the
// target until they join again.
func (s *RoomService) RemoveUser(ctx context.Context, roomID, requesterID, targetID string) (bool, error) {
	const op = "service.room.removeUser"
	log := s.log.With(slog.String("op", op), slog.String("room_id", roomID))

	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return false, err
	}

	if room.OwnerID == "" || room.OwnerID != requesterID {
		log.Info("kick refused", "requester", requesterID, "target", targetID)
		return false, domain.ErrNotOwner
	}

	removed, err := s.rooms.RemovePlayer(ctx, roomID, targetID)
	if err != nil {
		log.Error("remove player failed", sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user removed", "target", targetID, "removed", removed)
	return removed, nil
}

func joinError(reason domain.JoinReason) error {
	switch reason {
	case domain.JoinNotFound:
		return domain.ErrRoomNotFound
	case domain.JoinBadPassword:
		return domain.ErrBadPassword
	case domain.JoinFull:
		return domain.ErrRoomFull
	default:
		return fmt.Errorf("join refused: %s", reason)
	}
}
