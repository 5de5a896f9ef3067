package service

import (
	"context"
	"time"

	"github.com/wanderbook/wanderbook/internal/entity"
)

// CatalogService serves the read-mostly experience catalog.
type CatalogService interface {
	ListExperiences(ctx context.Context) ([]*entity.Experience, error)
	GetExperience(ctx context.Context, id string) (*entity.ExperienceWithSlots, error)

	// RefreshCache re-reads the catalog from storage and rewrites the
	// cache entry. Used by the cache refresh worker.
	RefreshCache(ctx context.Context) error
}

// PromoService validates promo codes. An unknown or inactive code is a
// normal negative result (entity.ErrPromoNotValid), not a failure.
type PromoService interface {
	Validate(ctx context.Context, code string) (*entity.PromoDescriptor, error)
}

// PricingService produces side-effect-free quotes. The same engine
// computes the authoritative total persisted on each booking line.
type PricingService interface {
	Quote(ctx context.Context, req *QuoteRequest) (*QuoteResult, error)
}

// ReservationService atomically reserves slot capacity and creates
// booking records.
type ReservationService interface {
	Reserve(ctx context.Context, req *ReserveRequest) (*entity.Booking, error)

	// ReserveCart reserves each cart line independently. Lines that fail
	// do not roll back lines that succeeded; the per-line outcome is
	// surfaced in the result.
	ReserveCart(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error)
}

// BookingQueryService reads a booking back joined with current catalog
// data for confirmation display.
type BookingQueryService interface {
	GetBooking(ctx context.Context, id string) (*entity.BookingDetails, error)
}

// EventPublisher publishes booking audit events to the queue.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
}

// Event is a booking audit event.
type Event struct {
	ID         string
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

const EventTypeBookingCreated = "booking.created"
