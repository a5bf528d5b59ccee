package domain

import (
	"context"
	"time"
)

// Event is a booking of one hour slot in one or more rooms.
// DateTime is always stored at the top of the hour.
// swagger:model Event
type Event struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateTime    time.Time `json:"date_time"`
	Responsible string    `json:"responsible"`
}

// NewEvent returns a new Event. ID is set by the repository on create.
func NewEvent(name, description, responsible string, dateTime time.Time) *Event {
	return &Event{
		Name:        name,
		Description: description,
		DateTime:    dateTime,
		Responsible: responsible,
	}
}

// EventRoom is one room occupied by an event, as shown in read models.
type EventRoom struct {
	ID       int64  `json:"id"`
	Building string `json:"building"`
	RoomName string `json:"room_name"`
}

// EventWithRooms is an event aggregated with every room it occupies.
type EventWithRooms struct {
	Event
	Rooms []EventRoom `json:"rooms"`
}

// EventInput carries the writable fields of an event together with the
// requested room set.
type EventInput struct {
	Name        string
	Description string
	Responsible string
	DateTime    time.Time
	RoomIDs     []int64
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	// WithinTx runs fn inside one database transaction. The transaction is
	// committed when fn returns nil and rolled back otherwise.
	WithinTx(ctx context.Context, fn func(tx EventTx) error) error
	List(ctx context.Context) ([]*EventWithRooms, error)
	// ListBetween returns events whose date_time lies in [from, to).
	ListBetween(ctx context.Context, from, to time.Time) ([]*EventWithRooms, error)
	GetByID(ctx context.Context, id int64) (*EventWithRooms, error)
	Delete(ctx context.Context, id int64) error
}

// EventTx is the set of statements the booking write path runs inside a
// transaction. An excludeEventID of 0 excludes nothing.
type EventTx interface {
	// LockEvent locks the event row. Returns ErrNotFound when absent.
	LockEvent(ctx context.Context, id int64) error
	// LockRooms locks the given room rows in id order. Returns ErrRoomNotFound
	// if any id is missing.
	LockRooms(ctx context.Context, roomIDs []int64) error
	// HasSlotConflict reports whether any event other than excludeEventID
	// occupies one of roomIDs at slot.
	HasSlotConflict(ctx context.Context, slot time.Time, roomIDs []int64, excludeEventID int64) (bool, error)
	// HasEventAt reports whether any event other than excludeEventID has
	// exactly the given date_time.
	HasEventAt(ctx context.Context, dateTime time.Time, excludeEventID int64) (bool, error)
	Insert(ctx context.Context, e *Event) error
	Update(ctx context.Context, e *Event) error
	// ReplaceRooms removes the event's room associations and inserts one per room id.
	ReplaceRooms(ctx context.Context, eventID int64, slot time.Time, roomIDs []int64) error
}

// EventService defines the booking rules for events.
type EventService interface {
	ListEvents(ctx context.Context) ([]*EventWithRooms, error)
	// ListEventsByDay lists events of the calendar day containing day; a zero day means today.
	ListEventsByDay(ctx context.Context, day time.Time) ([]*EventWithRooms, error)
	GetEvent(ctx context.Context, id int64) (*EventWithRooms, error)
	CreateEvent(ctx context.Context, in EventInput) (int64, error)
	UpdateEvent(ctx context.Context, id int64, in EventInput) (*EventWithRooms, error)
	DeleteEvent(ctx context.Context, id int64) error
}
