package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wanderbook/wanderbook/internal/entity"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (
			id, experience_id, slot_id, name, email, quantity,
			total_amount, promo_code, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.ExperienceID,
		booking.SlotID,
		booking.Name,
		booking.Email,
		booking.Quantity,
		booking.TotalAmount,
		booking.PromoCode,
		now,
	)

	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	booking.CreatedAt = now
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	query := `
		SELECT
			id, experience_id, slot_id, name, email, quantity,
			total_amount, promo_code, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking entity.Booking
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.ExperienceID,
		&booking.SlotID,
		&booking.Name,
		&booking.Email,
		&booking.Quantity,
		&booking.TotalAmount,
		&booking.PromoCode,
		&booking.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}
