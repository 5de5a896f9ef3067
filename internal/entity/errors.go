package entity

import "errors"

var (
	// Catalog errors
	ErrExperienceNotFound = errors.New("experience not found")
	ErrSlotNotFound       = errors.New("slot not found")

	// Reservation errors
	ErrCapacityExceeded = errors.New("slot is full or quantity exceeds capacity")
	ErrBookingNotFound  = errors.New("booking not found")

	// Promo errors
	ErrPromoNotValid = errors.New("promo code is not valid")

	// General errors
	ErrInvalidInput       = errors.New("invalid input")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
