package repository

import (
	"context"
	"errors"
	"sync"

	"listening-room/internal/domain"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomIDExists = errors.New("room id already exists")
)

// InMemoryRoomRepository keeps live rooms in a map. Lookups return the stored
// room itself, not a copy; callers observing a room after a successful
// mutation see that mutation.
type InMemoryRoomRepository struct {
	mu    sync.RWMutex
	rooms map[string]*domain.Room
}

func NewInMemoryRoomRepository() *InMemoryRoomRepository {
	return &InMemoryRoomRepository{
		rooms: make(map[string]*domain.Room),
	}
}

func (r *InMemoryRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[room.ID]; ok {
		return ErrRoomIDExists
	}

	r.rooms[room.ID] = room
	return nil
}

func (r *InMemoryRoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}

	return room, nil
}

func (r *InMemoryRoomRepository) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[id]; !ok {
		return false, nil
	}

	delete(r.rooms, id)
	return true, nil
}

func (r *InMemoryRoomRepository) List(ctx context.Context) ([]*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		result = append(result, room)
	}
	return result, nil
}

// AddPlayer registers userID to the room's historical player list. Reports
// whether the player was newly added. The room's own mutex guards the player
// list, so the repository only needs a read lock on the map.
func (r *InMemoryRoomRepository) AddPlayer(ctx context.Context, roomID, userID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if roomID == "" || userID == "" {
		return false, nil
	}

	r.mu.RLock()
	room, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return false, nil
	}

	return room.AddPlayer(userID), nil
}

// RemovePlayer drops userID from the room's player list. Reports whether a
// removal occurred.
func (r *InMemoryRoomRepository) RemovePlayer(ctx context.Context, roomID, userID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	room, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return false, nil
	}

	return room.RemovePlayer(userID), nil
}
