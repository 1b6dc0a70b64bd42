package repository

import (
	"context"

	"listening-room/internal/domain"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*domain.Room, error)
	AddPlayer(ctx context.Context, roomID, userID string) (bool, error)
	RemovePlayer(ctx context.Context, roomID, userID string) (bool, error)
}
