package repository

import (
	"context"

	"github.com/wanderbook/wanderbook/internal/entity"
)

type ExperienceRepository interface {
	// GetAll returns the catalog ordered by review count descending,
	// ties broken by rating descending.
	GetAll(ctx context.Context) ([]*entity.Experience, error)
	GetByID(ctx context.Context, id string) (*entity.Experience, error)
	GetSlots(ctx context.Context, experienceID string) ([]*entity.Slot, error)
}

type SlotRepository interface {
	GetByID(ctx context.Context, slotID string) (*entity.Slot, error)

	// ReserveSeats increments the slot's booked counter by quantity if and
	// only if booked + quantity <= capacity, as a single atomic statement.
	// It returns the updated slot on success, entity.ErrSlotNotFound when
	// the slot does not exist and entity.ErrCapacityExceeded when the
	// increment was rejected. A rejected call changes nothing.
	ReserveSeats(ctx context.Context, slotID string, quantity int) (*entity.Slot, error)
}

type PromoRepository interface {
	// GetActiveByCode looks a code up case-insensitively and requires the
	// promo to be active. Unknown or inactive codes return
	// entity.ErrPromoNotValid.
	GetActiveByCode(ctx context.Context, code string) (*entity.Promo, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
}

// CatalogCache is the read cache for the experience listing. Implemented
// by the redis cache repository; failures are advisory, never fatal to a
// read path.
type CatalogCache interface {
	GetExperiences(ctx context.Context) ([]*entity.Experience, error)
	SetExperiences(ctx context.Context, experiences []*entity.Experience) error
}
