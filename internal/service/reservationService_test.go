package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderbook/wanderbook/internal/entity"
)

type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[string]*entity.Slot
}

func newFakeSlotRepo(slots ...*entity.Slot) *fakeSlotRepo {
	repo := &fakeSlotRepo{slots: make(map[string]*entity.Slot)}
	for _, s := range slots {
		copied := *s
		repo.slots[s.SlotID] = &copied
	}
	return repo
}

func (r *fakeSlotRepo) GetByID(ctx context.Context, slotID string) (*entity.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[slotID]
	if !ok {
		return nil, entity.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (r *fakeSlotRepo) ReserveSeats(ctx context.Context, slotID string, quantity int) (*entity.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[slotID]
	if !ok {
		return nil, entity.ErrSlotNotFound
	}
	if slot.Booked+quantity > slot.Capacity {
		return nil, entity.ErrCapacityExceeded
	}
	slot.Booked += quantity
	copied := *slot
	return &copied, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*entity.Booking
	failNext bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*entity.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext {
		r.failNext = false
		return errors.New("connection refused")
	}
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, entity.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

type fakeExperienceRepo struct {
	experiences map[string]*entity.Experience
}

func newFakeExperienceRepo(experiences ...*entity.Experience) *fakeExperienceRepo {
	repo := &fakeExperienceRepo{experiences: make(map[string]*entity.Experience)}
	for _, e := range experiences {
		repo.experiences[e.ID] = e
	}
	return repo
}

func (r *fakeExperienceRepo) GetAll(ctx context.Context) ([]*entity.Experience, error) {
	out := make([]*entity.Experience, 0, len(r.experiences))
	for _, e := range r.experiences {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeExperienceRepo) GetByID(ctx context.Context, id string) (*entity.Experience, error) {
	e, ok := r.experiences[id]
	if !ok {
		return nil, entity.ErrExperienceNotFound
	}
	return e, nil
}

func (r *fakeExperienceRepo) GetSlots(ctx context.Context, experienceID string) ([]*entity.Slot, error) {
	return nil, nil
}

type fakePromoRepo struct {
	promos map[string]*entity.Promo
}

func newFakePromoRepo(promos ...*entity.Promo) *fakePromoRepo {
	repo := &fakePromoRepo{promos: make(map[string]*entity.Promo)}
	for _, p := range promos {
		repo.promos[p.Code] = p
	}
	return repo
}

func (r *fakePromoRepo) GetActiveByCode(ctx context.Context, code string) (*entity.Promo, error) {
	promo, ok := r.promos[strings.ToUpper(strings.TrimSpace(code))]
	if !ok || !promo.Active {
		return nil, entity.ErrPromoNotValid
	}
	return promo, nil
}

func testFixtures() (*fakeSlotRepo, *fakeBookingRepo, *fakeExperienceRepo, *fakePromoRepo) {
	slotRepo := newFakeSlotRepo(&entity.Slot{
		SlotID:       "slot-1",
		ExperienceID: "exp-1",
		Date:         "2026-10-01",
		Time:         "09:00",
		Capacity:     5,
		Booked:       0,
	})
	experienceRepo := newFakeExperienceRepo(&entity.Experience{
		ID:             "exp-1",
		Title:          "Sunrise Kayaking",
		PricePerPerson: dec("500.00"),
		Currency:       "INR",
	})
	promoRepo := newFakePromoRepo(&entity.Promo{
		Code:   "SAVE10",
		Type:   entity.PromoTypePercent,
		Amount: dec("10"),
		Active: true,
	})
	return slotRepo, newFakeBookingRepo(), experienceRepo, promoRepo
}

func newTestReservationService(slotRepo *fakeSlotRepo, bookingRepo *fakeBookingRepo, experienceRepo *fakeExperienceRepo, promoRepo *fakePromoRepo) ReservationService {
	engine := NewPricingEngine(0.18)
	return NewReservationService(slotRepo, bookingRepo, experienceRepo, promoRepo, engine, nil)
}

func validRequest() *ReserveRequest {
	return &ReserveRequest{
		ExperienceID: "exp-1",
		SlotID:       "slot-1",
		Name:         "Asha Rao",
		Email:        "asha@example.com",
		Quantity:     2,
	}
}

func TestReserveComputesTotalServerSide(t *testing.T) {
	slotRepo, bookingRepo, experienceRepo, promoRepo := testFixtures()
	svc := newTestReservationService(slotRepo, bookingRepo, experienceRepo, promoRepo)

	req := validRequest()
	req.PromoCode = "SAVE10"

	booking, err := svc.Reserve(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, booking.ID)

	// 2 x 500 = 1000, minus 10% = 900, plus 18% tax = 1062
	assert.True(t, booking.TotalAmount.Equal(dec("1062")), "total = %s", booking.TotalAmount)
	require.NotNil(t, booking.PromoCode)
	assert.Equal(t, "SAVE10", *booking.PromoCode)

	stored, err := bookingRepo.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.True(t, stored.TotalAmount.Equal(dec("1062")))
}

func TestReserveCapacityBoundary(t *testing.T) {
	slotRepo, bookingRepo, experienceRepo, promoRepo := testFixtures()
	slotRepo.slots["slot-1"].Booked = 4
	svc := newTestReservationService(slotRepo, bookingRepo, experienceRepo, promoRepo)

	req := validRequest()
	req.Quantity = 1

	// 4 booked of 5, quantity 1 exactly fills the slot
	booking, err := svc.Reserve(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID)

	slot, err := slotRepo.GetByID(context.Background(), "slot-1")
	require.NoError(t, err)
	assert.Equal(t, 5, slot.Booked)

	// the slot is now full, the next seat is rejected
	_, err = svc.Reserve(context.Background(), req)
	assert.ErrorIs(t, err, entity.ErrCapacityExceeded)
}

func TestReserveRejectionLeavesNoTrace(t *testing.T) {
	slotRepo, bookingRepo, experienceRepo, promoRepo := testFixtures()
	slotRepo.slots["slot-1"].Booked = 4
	svc := newTestReservationService(slotRepo, bookingRepo, experienceRepo, promoRepo)

	req := validRequest()
	req.Quantity = 2

	_, err := svc.Reserve(context.Background(), req)
	require.ErrorIs(t, err, entity.ErrCapacityExceeded)

	slot, err := slotRepo.GetByID(context.Background(), "slot-1")
	require.NoError(t, err)
	assert.Equal(t, 4, slot.Booked, "rejected reservation must not change the counter")
	assert.Equal(t, 0, bookingRepo.count(), "rejected reservation must not create a booking")
}

func TestReserveConcurrentNoOverbooking(t *testing.T) {
	slotRepo, bookingRepo, experienceRepo, promoRepo := testFixtures()
	svc := newTestReservationService(slotRepo, bookingRepo, experienceRepo, promoRepo)

	const workers = 20

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	rejected := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := validRequest()
			req.Quantity = 1
			_, err := svc.Reserve(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, entity.ErrCapacityExceeded):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded, "exactly capacity reservations must succeed")
	assert.Equal(t, workers-5, rejected)

	slot, err := slotRepo.GetByID(context.Background(), "slot-1")
	require.NoError(t, err)
	assert.Equal(t, 5, slot.Booked)
	assert.Equal(t, 5, bookingRepo.count())
}

func TestReserveBookingInsertFailureIsNotRolledBack(t *testing.T) {
	slotRepo, bookingRepo, experienceRepo, promoRepo := testFixtures()
	bookingRepo.failNext = true
	svc := newTestReservationService(slotRepo, bookingRepo, experienceRepo, promoRepo)

	_, err := svc.Reserve(context.Background(), validRequest())
	require.ErrorIs(t, err, entity.ErrStorageUnavailable)

	// the seats stay committed, reconciliation happens out of band
	slot, err := slotRepo.GetByID(context.Background(), "slot-1")
	require.NoError(t, err)
	assert.Equal(t, 2, slot.Booked)
	assert.Equal(t, 0, bookingRepo.count())
}

func TestReserveValidation(t *testing.T) {
	slotRepo, bookingRepo, experienceRepo, promoRepo := testFixtures()
	svc := newTestReservationService(slotRepo, bookingRepo, experienceRepo, promoRepo)

	tests := []struct {
		name    string
		mutate  func(*ReserveRequest)
		wantErr error
	}{
		{
			name:    "zero quantity",
			mutate:  func(r *ReserveRequest) { r.Quantity = 0 },
			wantErr: entity.ErrInvalidInput,
		},
		{
			name:    "negative quantity",
			mutate:  func(r *ReserveRequest) { r.Quantity = -3 },
			wantErr: entity.ErrInvalidInput,
		},
		{
			name:    "blank name",
			mutate:  func(r *ReserveRequest) { r.Name = "   " },
			wantErr: entity.ErrInvalidInput,
		},
		{
			name:    "unknown experience",
			mutate:  func(r *ReserveRequest) { r.ExperienceID = "exp-missing" },
			wantErr: entity.ErrExperienceNotFound,
		},
		{
			name:    "unknown slot",
			mutate:  func(r *ReserveRequest) { r.SlotID = "slot-missing" },
			wantErr: entity.ErrSlotNotFound,
		},
		{
			name:    "unknown promo",
			mutate:  func(r *ReserveRequest) { r.PromoCode = "NOPE" },
			wantErr: entity.ErrPromoNotValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := svc.Reserve(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, 0, bookingRepo.count())
}

func TestReserveSlotMustBelongToExperience(t *testing.T) {
	slotRepo, bookingRepo, experienceRepo, promoRepo := testFixtures()
	experienceRepo.experiences["exp-2"] = &entity.Experience{
		ID:             "exp-2",
		Title:          "Old Town Walk",
		PricePerPerson: dec("300.00"),
		Currency:       "INR",
	}
	svc := newTestReservationService(slotRepo, bookingRepo, experienceRepo, promoRepo)

	req := validRequest()
	req.ExperienceID = "exp-2"

	_, err := svc.Reserve(context.Background(), req)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestReserveCartPartialFailure(t *testing.T) {
	slotRepo, bookingRepo, experienceRepo, promoRepo := testFixtures()
	slotRepo.slots["slot-2"] = &entity.Slot{
		SlotID:       "slot-2",
		ExperienceID: "exp-1",
		Date:         "2026-10-02",
		Time:         "09:00",
		Capacity:     2,
		Booked:       2,
	}
	svc := newTestReservationService(slotRepo, bookingRepo, experienceRepo, promoRepo)

	result, err := svc.ReserveCart(context.Background(), &CheckoutRequest{
		Name:  "Asha Rao",
		Email: "asha@example.com",
		Items: []CartLine{
			{ExperienceID: "exp-1", SlotID: "slot-1", Quantity: 2},
			{ExperienceID: "exp-1", SlotID: "slot-2", Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Booked)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Results, 2)

	assert.Equal(t, LineStatusBooked, result.Results[0].Status)
	require.NotNil(t, result.Results[0].Booking)

	assert.Equal(t, LineStatusFailed, result.Results[1].Status)
	assert.Nil(t, result.Results[1].Booking)
	assert.NotEmpty(t, result.Results[1].Error)

	// the committed line stays committed
	slot, err := slotRepo.GetByID(context.Background(), "slot-1")
	require.NoError(t, err)
	assert.Equal(t, 2, slot.Booked)
	assert.Equal(t, 1, bookingRepo.count())
}

func TestReserveCartEmpty(t *testing.T) {
	slotRepo, bookingRepo, experienceRepo, promoRepo := testFixtures()
	svc := newTestReservationService(slotRepo, bookingRepo, experienceRepo, promoRepo)

	_, err := svc.ReserveCart(context.Background(), &CheckoutRequest{
		Name:  "Asha Rao",
		Email: "asha@example.com",
	})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}
