package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	repository "github.com/wanderbook/wanderbook/internal/database/postgres"
	"github.com/wanderbook/wanderbook/internal/entity"
)

// QuoteItem names an experience and a head count. The unit price is
// always resolved server-side from the catalog.
type QuoteItem struct {
	ExperienceID string `json:"experienceId" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
}

type QuoteRequest struct {
	Items     []QuoteItem `json:"items" binding:"required,min=1,dive"`
	PromoCode string      `json:"promoCode"`
}

// QuoteLine is one independently priced cart line.
type QuoteLine struct {
	ExperienceID string    `json:"experienceId"`
	Quantity     int       `json:"quantity"`
	Breakdown    Breakdown `json:"breakdown"`
}

type QuoteResult struct {
	Lines []QuoteLine     `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

type pricingService struct {
	experienceRepo repository.ExperienceRepository
	promoRepo      repository.PromoRepository
	engine         *PricingEngine
}

func NewPricingService(
	experienceRepo repository.ExperienceRepository,
	promoRepo repository.PromoRepository,
	engine *PricingEngine,
) PricingService {
	return &pricingService{
		experienceRepo: experienceRepo,
		promoRepo:      promoRepo,
		engine:         engine,
	}
}

// Quote prices each line independently, applying the promo to every line's
// own subtotal. It has no side effects and reservation reuses the same
// engine, so a quote always matches what a booking would persist.
func (s *pricingService) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResult, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", entity.ErrInvalidInput)
	}

	var promo *entity.PromoDescriptor
	if req.PromoCode != "" {
		stored, err := s.promoRepo.GetActiveByCode(ctx, req.PromoCode)
		if err != nil {
			return nil, err
		}
		promo = stored.Descriptor()
	}

	result := &QuoteResult{
		Lines: make([]QuoteLine, 0, len(req.Items)),
		Total: decimal.Zero,
	}

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", entity.ErrInvalidInput)
		}

		experience, err := s.experienceRepo.GetByID(ctx, item.ExperienceID)
		if err != nil {
			return nil, err
		}

		breakdown := s.engine.Price([]LineItem{{
			UnitPrice: experience.PricePerPerson,
			Quantity:  item.Quantity,
		}}, promo)

		result.Lines = append(result.Lines, QuoteLine{
			ExperienceID: item.ExperienceID,
			Quantity:     item.Quantity,
			Breakdown:    breakdown,
		})
		result.Total = result.Total.Add(breakdown.FinalTotal)
	}

	return result, nil
}
