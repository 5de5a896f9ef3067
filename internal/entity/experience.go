package entity

import (
	"github.com/shopspring/decimal"
)

// Experience is an immutable catalog entry. It is provisioned by seeding
// and never mutated by the booking flow.
type Experience struct {
	ID               string          `json:"id" db:"id"`
	Title            string          `json:"title" db:"title"`
	ShortDescription string          `json:"shortDescription" db:"short_description"`
	Description      string          `json:"description" db:"description"`
	PricePerPerson   decimal.Decimal `json:"pricePerPerson" db:"price_per_person"`
	Currency         string          `json:"currency" db:"currency"`
	Images           []string        `json:"images" db:"images"`
	Duration         string          `json:"duration" db:"duration"`
	Location         string          `json:"location" db:"location"`
	Rating           float64         `json:"rating" db:"rating"`
	Reviews          int             `json:"reviews" db:"reviews"`
}

// Slot is a bookable time window belonging to exactly one Experience.
// Booked is the only field mutated by the booking flow and is owned
// exclusively by the slot repository's conditional increment.
type Slot struct {
	SlotID       string `json:"slotId" db:"slot_id"`
	ExperienceID string `json:"experienceId" db:"experience_id"`
	Date         string `json:"date" db:"date"`
	Time         string `json:"time" db:"time"`
	Capacity     int    `json:"capacity" db:"capacity"`
	Booked       int    `json:"booked" db:"booked"`
}

// Remaining returns how many seats the slot can still accept.
func (s *Slot) Remaining() int {
	return s.Capacity - s.Booked
}

type ExperienceWithSlots struct {
	Experience
	Slots []*Slot `json:"slots"`
}
