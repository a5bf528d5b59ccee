package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"roombooking/internal/domain"
)

type roomService struct {
	roomRepo       domain.RoomRepository
	eventCache     domain.ListCache
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewRoomService returns the room store service. eventCache is invalidated on
// room updates and deletes because event listings embed room names.
func NewRoomService(roomRepo domain.RoomRepository, eventCache domain.ListCache, logger *slog.Logger, timeout time.Duration) domain.RoomService {
	return &roomService{
		roomRepo:       roomRepo,
		eventCache:     eventCache,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *roomService) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if rooms == nil {
		rooms = []*domain.Room{}
	}
	return rooms, nil
}

func (s *roomService) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return room, nil
}

func (s *roomService) CreateRoom(ctx context.Context, name, building string) (*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	room := domain.NewRoom(name, building)
	if err := s.roomRepo.Create(ctx, room); err != nil {
		if errors.Is(err, domain.ErrRoomExists) {
			return nil, domain.ErrRoomExists
		}
		return nil, fmt.Errorf("create room: %w", err)
	}
	s.logger.InfoContext(ctx, "room created", "room_id", room.ID, "building", room.Building, "name", room.Name)
	return room, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, id int64, name, building string) (*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	room := &domain.Room{ID: id, Name: name, Building: building}
	if err := s.roomRepo.Update(ctx, room); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrNotFound
		case errors.Is(err, domain.ErrRoomExists):
			return nil, domain.ErrRoomExists
		}
		return nil, fmt.Errorf("update room: %w", err)
	}
	s.invalidateEvents(ctx)
	s.logger.InfoContext(ctx, "room updated", "room_id", room.ID)
	return room, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.roomRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete room: %w", err)
	}
	s.invalidateEvents(ctx)
	s.logger.InfoContext(ctx, "room deleted", "room_id", id)
	return nil
}

func (s *roomService) invalidateEvents(ctx context.Context) {
	if err := s.eventCache.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "event cache invalidation failed", "err", err)
	}
}
