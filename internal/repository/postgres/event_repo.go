package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"roombooking/internal/domain"

	"github.com/lib/pq"
)

// eventWithRoomsSelect joins every event to its rooms. Events whose rooms
// were all deleted still come back, with an empty room list.
const eventWithRoomsSelect = `
	SELECT e.id, e.name, e.description, e.date_time, e.responsible, r.id, r.building, r.name
	FROM events e
	LEFT JOIN rooms_events re ON re.id_event = e.id
	LEFT JOIN rooms r ON r.id = re.id_room
`

const eventWithRoomsOrder = `
	ORDER BY e.date_time, e.id, r.building, r.name
`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) WithinTx(ctx context.Context, fn func(tx domain.EventTx) error) error {
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		return fn(&eventTx{tx: tx})
	})
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.EventWithRooms, error) {
	rows, err := r.DB.QueryContext(ctx, eventWithRoomsSelect+eventWithRoomsOrder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEventsWithRooms(rows)
}

func (r *eventRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.EventWithRooms, error) {
	query := eventWithRoomsSelect + `
	WHERE e.date_time >= $1 AND e.date_time < $2
	` + eventWithRoomsOrder
	rows, err := r.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEventsWithRooms(rows)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.EventWithRooms, error) {
	query := eventWithRoomsSelect + `
	WHERE e.id = $1
	` + eventWithRoomsOrder
	rows, err := r.DB.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events, err := scanEventsWithRooms(rows)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, domain.ErrNotFound
	}
	return events[0], nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM events WHERE id = $1`
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

// scanEventsWithRooms folds the one-row-per-room join into one item per
// event, keeping the row order of the first occurrence.
func scanEventsWithRooms(rows *sql.Rows) ([]*domain.EventWithRooms, error) {
	events := make([]*domain.EventWithRooms, 0)
	byID := make(map[int64]*domain.EventWithRooms)
	for rows.Next() {
		var e domain.Event
		var roomID sql.NullInt64
		var building, roomName sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.DateTime, &e.Responsible, &roomID, &building, &roomName); err != nil {
			return nil, err
		}
		item, ok := byID[e.ID]
		if !ok {
			item = &domain.EventWithRooms{Event: e, Rooms: []domain.EventRoom{}}
			byID[e.ID] = item
			events = append(events, item)
		}
		if roomID.Valid {
			item.Rooms = append(item.Rooms, domain.EventRoom{
				ID:       roomID.Int64,
				Building: building.String,
				RoomName: roomName.String,
			})
		}
	}
	return events, rows.Err()
}

type eventTx struct {
	tx *sql.Tx
}

func (t *eventTx) LockEvent(ctx context.Context, id int64) error {
	var got int64
	err := t.tx.QueryRowContext(ctx, `SELECT id FROM events WHERE id = $1 FOR UPDATE`, id).Scan(&got)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (t *eventTx) LockRooms(ctx context.Context, roomIDs []int64) error {
	query := `
		SELECT id FROM rooms
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`
	rows, err := t.tx.QueryContext(ctx, query, pq.Array(roomIDs))
	if err != nil {
		return err
	}
	defer rows.Close()
	found := make(map[int64]struct{}, len(roomIDs))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		found[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, id := range roomIDs {
		if _, ok := found[id]; !ok {
			return domain.ErrRoomNotFound
		}
	}
	return nil
}

func (t *eventTx) HasSlotConflict(ctx context.Context, slot time.Time, roomIDs []int64, excludeEventID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM rooms_events re
			INNER JOIN events e ON e.id = re.id_event
			WHERE re.id_room = ANY($1) AND e.date_time = $2 AND e.id <> $3
		)
	`
	var exists bool
	if err := t.tx.QueryRowContext(ctx, query, pq.Array(roomIDs), slot, excludeEventID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (t *eventTx) HasEventAt(ctx context.Context, dateTime time.Time, excludeEventID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM events WHERE date_time = $1 AND id <> $2)`
	var exists bool
	if err := t.tx.QueryRowContext(ctx, query, dateTime, excludeEventID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (t *eventTx) Insert(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, date_time, responsible)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return t.tx.QueryRowContext(ctx, query, e.Name, e.Description, e.DateTime, e.Responsible).Scan(&e.ID)
}

func (t *eventTx) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET name = $1, description = $2, date_time = $3, responsible = $4
		WHERE id = $5
	`
	result, err := t.tx.ExecContext(ctx, query, e.Name, e.Description, e.DateTime, e.Responsible, e.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t *eventTx) ReplaceRooms(ctx context.Context, eventID int64, slot time.Time, roomIDs []int64) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM rooms_events WHERE id_event = $1`, eventID); err != nil {
		return err
	}
	if len(roomIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO rooms_events (id_room, id_event, slot)
		SELECT room_id, $2, $3 FROM unnest($1::bigint[]) AS room_id
	`
	_, err := t.tx.ExecContext(ctx, query, pq.Array(roomIDs), eventID, slot)
	switch {
	case isConstraintViolation(err, pqUniqueViolation, roomsEventsRoomSlotKey):
		return domain.ErrSlotConflict
	case isConstraintViolation(err, pqForeignKeyViolation, roomsEventsRoomForeignKey):
		return domain.ErrRoomNotFound
	}
	return err
}
