package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	repository "github.com/wanderbook/wanderbook/internal/database/postgres"
	"github.com/wanderbook/wanderbook/internal/entity"
)

// ReserveRequest carries one reservation attempt for one slot.
type ReserveRequest struct {
	ExperienceID string `json:"experienceId" binding:"required"`
	SlotID       string `json:"slotId" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
	PromoCode    string `json:"promoCode"`
}

// CartLine is one (experience, slot, quantity) tuple of a checkout cart.
type CartLine struct {
	ExperienceID string `json:"experienceId" binding:"required"`
	SlotID       string `json:"slotId" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	Name      string     `json:"name" binding:"required"`
	Email     string     `json:"email" binding:"required,email"`
	PromoCode string     `json:"promoCode"`
	Items     []CartLine `json:"items" binding:"required,min=1,dive"`
}

const (
	LineStatusBooked = "booked"
	LineStatusFailed = "failed"
)

// CheckoutLineResult reports the outcome of one cart line.
type CheckoutLineResult struct {
	ExperienceID string          `json:"experienceId"`
	SlotID       string          `json:"slotId"`
	Quantity     int             `json:"quantity"`
	Status       string          `json:"status"`
	Booking      *entity.Booking `json:"booking,omitempty"`
	Error        string          `json:"error,omitempty"`
}

type CheckoutResult struct {
	Results []CheckoutLineResult `json:"results"`
	Booked  int                  `json:"booked"`
	Failed  int                  `json:"failed"`
}

type reservationService struct {
	slotRepo       repository.SlotRepository
	bookingRepo    repository.BookingRepository
	experienceRepo repository.ExperienceRepository
	promoRepo      repository.PromoRepository
	engine         *PricingEngine
	publisher      EventPublisher
}

func NewReservationService(
	slotRepo repository.SlotRepository,
	bookingRepo repository.BookingRepository,
	experienceRepo repository.ExperienceRepository,
	promoRepo repository.PromoRepository,
	engine *PricingEngine,
	publisher EventPublisher,
) ReservationService {
	return &reservationService{
		slotRepo:       slotRepo,
		bookingRepo:    bookingRepo,
		experienceRepo: experienceRepo,
		promoRepo:      promoRepo,
		engine:         engine,
		publisher:      publisher,
	}
}

// Reserve attempts the atomic slot increment first and creates the
// booking record only after the increment committed. A rejected increment
// leaves no state behind. A booking insert that fails after the increment
// committed is NOT rolled back here; the orphaned seats are logged for
// reconciliation and the caller sees a storage error.
func (s *reservationService) Reserve(ctx context.Context, req *ReserveRequest) (*entity.Booking, error) {
	if err := validateReserveRequest(req); err != nil {
		return nil, err
	}

	experience, err := s.experienceRepo.GetByID(ctx, req.ExperienceID)
	if err != nil {
		return nil, err
	}

	// Immutable slot fields are safe to validate before the increment;
	// only the booked counter is contended.
	slot, err := s.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		return nil, err
	}
	if slot.ExperienceID != req.ExperienceID {
		return nil, fmt.Errorf("%w: slot does not belong to experience %s", entity.ErrInvalidInput, req.ExperienceID)
	}

	var promo *entity.PromoDescriptor
	var promoCode *string
	if req.PromoCode != "" {
		stored, err := s.promoRepo.GetActiveByCode(ctx, req.PromoCode)
		if err != nil {
			return nil, err
		}
		promo = stored.Descriptor()
		promoCode = &promo.Code
	}

	// The pricing engine is the authority on the persisted amount; any
	// client-supplied total is ignored.
	breakdown := s.engine.Price([]LineItem{{
		UnitPrice: experience.PricePerPerson,
		Quantity:  req.Quantity,
	}}, promo)

	updatedSlot, err := s.slotRepo.ReserveSeats(ctx, req.SlotID, req.Quantity)
	if err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		ID:           uuid.New().String(),
		ExperienceID: req.ExperienceID,
		SlotID:       req.SlotID,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Quantity:     req.Quantity,
		TotalAmount:  breakdown.FinalTotal,
		PromoCode:    promoCode,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		logrus.WithFields(logrus.Fields{
			"slot_id":  req.SlotID,
			"quantity": req.Quantity,
		}).Errorf("Slot increment committed but booking insert failed, seats need reconciliation: %v", err)
		return nil, fmt.Errorf("%w: failed to record booking", entity.ErrStorageUnavailable)
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"slot_id":    updatedSlot.SlotID,
		"booked":     updatedSlot.Booked,
		"capacity":   updatedSlot.Capacity,
	}).Info("Reservation confirmed")

	s.publishBookingCreated(ctx, booking)

	return booking, nil
}

// ReserveCart reserves lines independently, in order. Partial success is
// a valid outcome: committed lines stay committed regardless of later
// failures.
func (s *reservationService) ReserveCart(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", entity.ErrInvalidInput)
	}

	result := &CheckoutResult{
		Results: make([]CheckoutLineResult, 0, len(req.Items)),
	}

	for _, line := range req.Items {
		lineResult := CheckoutLineResult{
			ExperienceID: line.ExperienceID,
			SlotID:       line.SlotID,
			Quantity:     line.Quantity,
		}

		booking, err := s.Reserve(ctx, &ReserveRequest{
			ExperienceID: line.ExperienceID,
			SlotID:       line.SlotID,
			Name:         req.Name,
			Email:        req.Email,
			Quantity:     line.Quantity,
			PromoCode:    req.PromoCode,
		})
		if err != nil {
			lineResult.Status = LineStatusFailed
			lineResult.Error = err.Error()
			result.Failed++
		} else {
			lineResult.Status = LineStatusBooked
			lineResult.Booking = booking
			result.Booked++
		}

		result.Results = append(result.Results, lineResult)
	}

	return result, nil
}

func (s *reservationService) publishBookingCreated(ctx context.Context, booking *entity.Booking) {
	if s.publisher == nil {
		return
	}

	event := &Event{
		ID:   uuid.New().String(),
		Type: EventTypeBookingCreated,
		Data: map[string]interface{}{
			"booking_id":    booking.ID,
			"experience_id": booking.ExperienceID,
			"slot_id":       booking.SlotID,
			"quantity":      booking.Quantity,
			"total_amount":  booking.TotalAmount.String(),
		},
		OccurredAt: time.Now().UTC(),
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		logrus.Warnf("Failed to publish booking event: %v", err)
	}
}

func validateReserveRequest(req *ReserveRequest) error {
	if req.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be a positive integer", entity.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", entity.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("%w: email is required", entity.ErrInvalidInput)
	}
	if strings.TrimSpace(req.SlotID) == "" {
		return fmt.Errorf("%w: slotId is required", entity.ErrInvalidInput)
	}
	if strings.TrimSpace(req.ExperienceID) == "" {
		return fmt.Errorf("%w: experienceId is required", entity.ErrInvalidInput)
	}
	return nil
}
