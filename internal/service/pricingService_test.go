package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderbook/wanderbook/internal/entity"
)

func TestPricingServiceQuote(t *testing.T) {
	experienceRepo := newFakeExperienceRepo(
		&entity.Experience{ID: "exp-1", Title: "Kayaking", PricePerPerson: dec("500.00")},
		&entity.Experience{ID: "exp-2", Title: "Old Town Walk", PricePerPerson: dec("250.00")},
	)
	promoRepo := newFakePromoRepo(
		&entity.Promo{Code: "SAVE10", Type: entity.PromoTypePercent, Amount: dec("10"), Active: true},
	)
	svc := NewPricingService(experienceRepo, promoRepo, NewPricingEngine(0.18))

	t.Run("promo applies to every line", func(t *testing.T) {
		quote, err := svc.Quote(context.Background(), &QuoteRequest{
			Items: []QuoteItem{
				{ExperienceID: "exp-1", Quantity: 2},
				{ExperienceID: "exp-2", Quantity: 1},
			},
			PromoCode: "SAVE10",
		})
		require.NoError(t, err)
		require.Len(t, quote.Lines, 2)

		// line 1: 1000 - 100 = 900, tax 162, total 1062
		assert.True(t, quote.Lines[0].Breakdown.FinalTotal.Equal(dec("1062")))
		// line 2: 250 - 25 = 225, tax 40.50, total 265.50
		assert.True(t, quote.Lines[1].Breakdown.FinalTotal.Equal(dec("265.50")))
		assert.True(t, quote.Total.Equal(dec("1327.50")), "total = %s", quote.Total)
	})

	t.Run("no promo", func(t *testing.T) {
		quote, err := svc.Quote(context.Background(), &QuoteRequest{
			Items: []QuoteItem{{ExperienceID: "exp-2", Quantity: 1}},
		})
		require.NoError(t, err)
		assert.True(t, quote.Total.Equal(dec("295")))
	})

	t.Run("unknown experience", func(t *testing.T) {
		_, err := svc.Quote(context.Background(), &QuoteRequest{
			Items: []QuoteItem{{ExperienceID: "exp-missing", Quantity: 1}},
		})
		assert.ErrorIs(t, err, entity.ErrExperienceNotFound)
	})

	t.Run("unknown promo fails the quote", func(t *testing.T) {
		_, err := svc.Quote(context.Background(), &QuoteRequest{
			Items:     []QuoteItem{{ExperienceID: "exp-1", Quantity: 1}},
			PromoCode: "NOPE",
		})
		assert.ErrorIs(t, err, entity.ErrPromoNotValid)
	})

	t.Run("empty cart", func(t *testing.T) {
		_, err := svc.Quote(context.Background(), &QuoteRequest{})
		assert.ErrorIs(t, err, entity.ErrInvalidInput)
	})
}
