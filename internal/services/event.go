package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"roombooking/internal/domain"
)

// bookingErrors are returned unwrapped so callers can map them directly.
var bookingErrors = []error{
	domain.ErrNotFound,
	domain.ErrRoomNotFound,
	domain.ErrPastSlot,
	domain.ErrSlotConflict,
	domain.ErrDuplicateEvent,
}

type eventService struct {
	eventRepo      domain.EventRepository
	cache          domain.ListCache
	logger         *slog.Logger
	location       *time.Location
	now            func() time.Time
	contextTimeout time.Duration
}

// NewEventService returns the booking service. Slots and day boundaries are
// computed in loc.
func NewEventService(eventRepo domain.EventRepository, cache domain.ListCache, logger *slog.Logger, loc *time.Location, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		cache:          cache,
		logger:         logger,
		location:       loc,
		now:            time.Now,
		contextTimeout: timeout,
	}
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.EventWithRooms, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var events []*domain.EventWithRooms
	err := s.cache.Fetch(ctx, "all", &events, func() error {
		var err error
		events, err = s.eventRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.EventWithRooms{}
	}
	return events, nil
}

func (s *eventService) ListEventsByDay(ctx context.Context, day time.Time) ([]*domain.EventWithRooms, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if day.IsZero() {
		day = s.now()
	}
	from, to := domain.DayBounds(day, s.location)

	var events []*domain.EventWithRooms
	err := s.cache.Fetch(ctx, "day:"+from.Format(time.DateOnly), &events, func() error {
		var err error
		events, err = s.eventRepo.ListBetween(ctx, from, to)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list events by day: %w", err)
	}
	if events == nil {
		events = []*domain.EventWithRooms{}
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*domain.EventWithRooms, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// CreateEvent books the hour containing in.DateTime in every requested room.
// Either the event and all of its room associations are written, or nothing is.
func (s *eventService) CreateEvent(ctx context.Context, in domain.EventInput) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	roomIDs := uniqueRoomIDs(in.RoomIDs)
	slot := domain.SlotOf(in.DateTime.In(s.location))
	if !domain.IsFutureSlot(slot, s.now()) {
		return 0, domain.ErrPastSlot
	}

	event := domain.NewEvent(in.Name, in.Description, in.Responsible, slot)
	err := s.eventRepo.WithinTx(ctx, func(tx domain.EventTx) error {
		if err := reserveRooms(ctx, tx, slot, roomIDs, 0); err != nil {
			return err
		}
		if err := tx.Insert(ctx, event); err != nil {
			return err
		}
		return tx.ReplaceRooms(ctx, event.ID, slot, roomIDs)
	})
	if err != nil {
		return 0, bookingError("create event", err)
	}

	s.invalidate(ctx)
	s.logger.InfoContext(ctx, "event created", "event_id", event.ID, "slot", slot, "rooms", roomIDs)
	return event.ID, nil
}

// UpdateEvent moves event id to the hour containing in.DateTime and replaces
// its rooms. The event may keep its own slot and rooms.
func (s *eventService) UpdateEvent(ctx context.Context, id int64, in domain.EventInput) (*domain.EventWithRooms, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	roomIDs := uniqueRoomIDs(in.RoomIDs)
	slot := domain.SlotOf(in.DateTime.In(s.location))

	err := s.eventRepo.WithinTx(ctx, func(tx domain.EventTx) error {
		if err := tx.LockEvent(ctx, id); err != nil {
			return err
		}
		// A missing event reports ErrNotFound before any past-slot rejection.
		if !domain.IsFutureSlot(slot, s.now()) {
			return domain.ErrPastSlot
		}
		if err := reserveRooms(ctx, tx, slot, roomIDs, id); err != nil {
			return err
		}
		// Compares the raw requested instant, not the slot.
		dup, err := tx.HasEventAt(ctx, in.DateTime, id)
		if err != nil {
			return err
		}
		if dup {
			return domain.ErrDuplicateEvent
		}
		if err := tx.ReplaceRooms(ctx, id, slot, roomIDs); err != nil {
			return err
		}
		event := domain.NewEvent(in.Name, in.Description, in.Responsible, slot)
		event.ID = id
		return tx.Update(ctx, event)
	})
	if err != nil {
		return nil, bookingError("update event", err)
	}

	s.invalidate(ctx)
	s.logger.InfoContext(ctx, "event updated", "event_id", id, "slot", slot, "rooms", roomIDs)

	updated, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, bookingError("get updated event", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	s.invalidate(ctx)
	s.logger.InfoContext(ctx, "event deleted", "event_id", id)
	return nil
}

// reserveRooms locks the requested rooms and fails with ErrSlotConflict when
// another event already holds one of them at slot.
func reserveRooms(ctx context.Context, tx domain.EventTx, slot time.Time, roomIDs []int64, excludeEventID int64) error {
	if err := tx.LockRooms(ctx, roomIDs); err != nil {
		return err
	}
	conflict, err := tx.HasSlotConflict(ctx, slot, roomIDs, excludeEventID)
	if err != nil {
		return err
	}
	if conflict {
		return domain.ErrSlotConflict
	}
	return nil
}

func (s *eventService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "event cache invalidation failed", "err", err)
	}
}

func bookingError(op string, err error) error {
	for _, target := range bookingErrors {
		if errors.Is(err, target) {
			return target
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// uniqueRoomIDs drops repeated ids, keeping first-seen order.
func uniqueRoomIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
