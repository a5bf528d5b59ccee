package domain

import "errors"

// Sentinel errors shared by repositories, services and controllers.
var (
	ErrNotFound = errors.New("not found")

	// ErrRoomNotFound is returned when an event references a room id that does not exist.
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomExists is returned when a (name, building) pair is already taken by another room.
	ErrRoomExists = errors.New("room already exists")

	// ErrPastSlot is returned when the requested hour is not strictly in the future.
	ErrPastSlot = errors.New("date is before the current date and hour")

	// ErrSlotConflict is returned when a requested room is already booked for the slot.
	ErrSlotConflict = errors.New("room already booked for this date and hour")

	// ErrDuplicateEvent is returned on update when another event has the exact same date_time.
	ErrDuplicateEvent = errors.New("event already exists")
)
