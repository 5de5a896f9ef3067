package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	repository "github.com/wanderbook/wanderbook/internal/database/postgres"
	"github.com/wanderbook/wanderbook/internal/entity"
)

type bookingQueryService struct {
	bookingRepo    repository.BookingRepository
	experienceRepo repository.ExperienceRepository
	slotRepo       repository.SlotRepository
}

func NewBookingQueryService(
	bookingRepo repository.BookingRepository,
	experienceRepo repository.ExperienceRepository,
	slotRepo repository.SlotRepository,
) BookingQueryService {
	return &bookingQueryService{
		bookingRepo:    bookingRepo,
		experienceRepo: experienceRepo,
		slotRepo:       slotRepo,
	}
}

// GetBooking returns the booking joined with current catalog data. The
// booking record itself is authoritative; a catalog row that has since
// disappeared leaves the corresponding detail nil rather than failing
// the whole lookup.
func (s *bookingQueryService) GetBooking(ctx context.Context, id string) (*entity.BookingDetails, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &entity.BookingDetails{Booking: *booking}

	experience, err := s.experienceRepo.GetByID(ctx, booking.ExperienceID)
	switch {
	case err == nil:
		details.Experience = experience
	case errors.Is(err, entity.ErrExperienceNotFound):
		logrus.Warnf("Booking %s references missing experience %s", booking.ID, booking.ExperienceID)
	default:
		return nil, err
	}

	slot, err := s.slotRepo.GetByID(ctx, booking.SlotID)
	switch {
	case err == nil:
		details.Slot = slot
	case errors.Is(err, entity.ErrSlotNotFound):
		logrus.Warnf("Booking %s references missing slot %s", booking.ID, booking.SlotID)
	default:
		return nil, err
	}

	return details, nil
}
