package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wanderbook/wanderbook/internal/entity"
)

type slotRepository struct {
	db *sql.DB
}

func NewSlotRepository(db *sql.DB) SlotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) GetByID(ctx context.Context, slotID string) (*entity.Slot, error) {
	query := `
		SELECT slot_id, experience_id, date, time, capacity, booked
		FROM slots
		WHERE slot_id = $1
	`

	var slot entity.Slot
	err := r.db.QueryRowContext(ctx, query, slotID).Scan(
		&slot.SlotID,
		&slot.ExperienceID,
		&slot.Date,
		&slot.Time,
		&slot.Capacity,
		&slot.Booked,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}

	return &slot, nil
}

// ReserveSeats performs the capacity check and the increment in one
// conditional UPDATE so concurrent requests against the same slot cannot
// interleave between check and write. Zero rows updated means either the
// slot is unknown or the remaining capacity is insufficient; a follow-up
// existence probe tells the two apart without any side effect.
func (r *slotRepository) ReserveSeats(ctx context.Context, slotID string, quantity int) (*entity.Slot, error) {
	query := `
		UPDATE slots
		SET booked = booked + $1
		WHERE slot_id = $2 AND booked + $1 <= capacity
		RETURNING slot_id, experience_id, date, time, capacity, booked
	`

	var slot entity.Slot
	err := r.db.QueryRowContext(ctx, query, quantity, slotID).Scan(
		&slot.SlotID,
		&slot.ExperienceID,
		&slot.Date,
		&slot.Time,
		&slot.Capacity,
		&slot.Booked,
	)

	if err == sql.ErrNoRows {
		var exists bool
		probe := `SELECT EXISTS (SELECT 1 FROM slots WHERE slot_id = $1)`
		if probeErr := r.db.QueryRowContext(ctx, probe, slotID).Scan(&exists); probeErr != nil {
			return nil, fmt.Errorf("failed to probe slot: %w", probeErr)
		}
		if !exists {
			return nil, entity.ErrSlotNotFound
		}
		return nil, entity.ErrCapacityExceeded
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reserve seats: %w", err)
	}

	return &slot, nil
}
