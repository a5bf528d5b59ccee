package postgres

import (
	"context"
	"database/sql"
	"errors"

	"roombooking/internal/domain"
)

type roomRepository struct {
	DB *sql.DB
}

func NewRoomRepository(db *sql.DB) domain.RoomRepository {
	return &roomRepository{
		DB: db,
	}
}

func (r *roomRepository) List(ctx context.Context) ([]*domain.Room, error) {
	query := `
		SELECT id, name, building
		FROM rooms
		ORDER BY building, name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room := &domain.Room{}
		if err := rows.Scan(&room.ID, &room.Name, &room.Building); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *roomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	query := `
		SELECT id, name, building
		FROM rooms
		WHERE id = $1
	`
	room := &domain.Room{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&room.ID, &room.Name, &room.Building)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		taken, err := roomNameTaken(ctx, tx, room.Name, room.Building, 0)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrRoomExists
		}
		query := `
			INSERT INTO rooms (name, building)
			VALUES ($1, $2)
			RETURNING id
		`
		return tx.QueryRowContext(ctx, query, room.Name, room.Building).Scan(&room.ID)
	})
	if isConstraintViolation(err, pqUniqueViolation, roomsNameBuildingKey) {
		return domain.ErrRoomExists
	}
	return err
}

func (r *roomRepository) Update(ctx context.Context, room *domain.Room) error {
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, room.ID).Scan(&id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return err
		}
		taken, err := roomNameTaken(ctx, tx, room.Name, room.Building, room.ID)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrRoomExists
		}
		_, err = tx.ExecContext(ctx, `UPDATE rooms SET name = $1, building = $2 WHERE id = $3`, room.Name, room.Building, room.ID)
		return err
	})
	if isConstraintViolation(err, pqUniqueViolation, roomsNameBuildingKey) {
		return domain.ErrRoomExists
	}
	return err
}

func (r *roomRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM rooms WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// roomNameTaken reports whether a room other than excludeID already uses the
// (name, building) pair.
func roomNameTaken(ctx context.Context, tx *sql.Tx, name, building string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM rooms
			WHERE name = $1 AND building = $2 AND id <> $3
		)
	`
	var exists bool
	if err := tx.QueryRowContext(ctx, query, name, building, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
