package service

import (
	"context"

	"listening-room/internal/domain"
)

type RoomInteractor interface {
	CreateRoom(ctx context.Context, in CreateRoomInput) (*domain.Room, error)
	GetRoom(ctx context.Context, id string) (*domain.Room, error)
	ListRooms(ctx context.Context) ([]*domain.Room, error)
	DeleteRoom(ctx context.Context, id string) (bool, error)
	ValidateJoin(ctx context.Context, id, pass string) domain.JoinDecision
	Join(ctx context.Context, roomID, userID, pass string) (*domain.RoomSnapshot, error)
	AddPlayer(ctx context.Context, roomID, userID string) (bool, error)
	TouchPresence(ctx context.Context, roomID, userID string)
	Snapshot(ctx context.Context, id string) (*domain.RoomSnapshot, error)
	ActiveUsersView(ctx context.Context, id string) (*domain.RoomUsers, error)
	RemoveUser(ctx context.Context, roomID, requesterID, targetID string) (bool, error)
}

type SessionInteractor interface {
	IssueSession(suppliedID, suppliedCreated string) domain.Session
}
