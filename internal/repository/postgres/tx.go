package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation     pq.ErrorCode = "23505"
	pqForeignKeyViolation pq.ErrorCode = "23503"

	roomsNameBuildingKey      = "rooms_name_building_key"
	roomsEventsRoomSlotKey    = "rooms_events_id_room_slot_key"
	roomsEventsRoomForeignKey = "rooms_events_id_room_fkey"
)

// withTx runs fn in a transaction. The deferred Rollback is a no-op once
// Commit has succeeded.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// isConstraintViolation reports whether err is a postgres error with the given
// code raised by the named constraint.
func isConstraintViolation(err error, code pq.ErrorCode, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == code && pqErr.Constraint == constraint
}
