package domain

import "context"

// Room is a bookable physical room. (Name, Building) is unique.
// swagger:model Room
type Room struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Building string `json:"building"`
}

// NewRoom returns a new Room. ID is set by the repository on create.
func NewRoom(name, building string) *Room {
	return &Room{Name: name, Building: building}
}

// RoomRepository defines the interface for room storage
type RoomRepository interface {
	List(ctx context.Context) ([]*Room, error)
	GetByID(ctx context.Context, id int64) (*Room, error)
	// Create inserts room and sets its ID. Returns ErrRoomExists on a (name, building) collision.
	Create(ctx context.Context, room *Room) error
	// Update overwrites name and building. Returns ErrNotFound or ErrRoomExists.
	Update(ctx context.Context, room *Room) error
	// Delete removes the room and, by cascade, its event associations.
	Delete(ctx context.Context, id int64) error
}

// RoomService defines the business logic for managing rooms
type RoomService interface {
	ListRooms(ctx context.Context) ([]*Room, error)
	GetRoom(ctx context.Context, id int64) (*Room, error)
	CreateRoom(ctx context.Context, name, building string) (*Room, error)
	UpdateRoom(ctx context.Context, id int64, name, building string) (*Room, error)
	DeleteRoom(ctx context.Context, id int64) error
}
