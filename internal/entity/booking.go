package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking is created once as the side effect of a successful reservation
// and never updated or deleted afterwards. TotalAmount is the final
// post-discount-and-tax amount for the line, not the raw subtotal.
type Booking struct {
	ID           string          `json:"id" db:"id"`
	ExperienceID string          `json:"experienceId" db:"experience_id"`
	SlotID       string          `json:"slotId" db:"slot_id"`
	Name         string          `json:"name" db:"name"`
	Email        string          `json:"email" db:"email"`
	Quantity     int             `json:"quantity" db:"quantity"`
	TotalAmount  decimal.Decimal `json:"totalAmount" db:"total_amount"`
	PromoCode    *string         `json:"promoCode" db:"promo_code"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
}

// BookingDetails joins a booking with the current experience and slot
// records for confirmation display. The joined catalog data is read at
// query time, while quantity and total stay frozen at booking time.
type BookingDetails struct {
	Booking
	Experience *Experience `json:"experience"`
	Slot       *Slot       `json:"slot"`
}
