package service

import (
	"context"
	"strings"

	repository "github.com/wanderbook/wanderbook/internal/database/postgres"
	"github.com/wanderbook/wanderbook/internal/entity"
)

type promoService struct {
	promoRepo repository.PromoRepository
}

func NewPromoService(promoRepo repository.PromoRepository) PromoService {
	return &promoService{promoRepo: promoRepo}
}

func (s *promoService) Validate(ctx context.Context, code string) (*entity.PromoDescriptor, error) {
	if strings.TrimSpace(code) == "" {
		return nil, entity.ErrInvalidInput
	}

	promo, err := s.promoRepo.GetActiveByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	return promo.Descriptor(), nil
}
