package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/wanderbook/wanderbook/internal/entity"
)

type promoRepository struct {
	db *sql.DB
}

func NewPromoRepository(db *sql.DB) PromoRepository {
	return &promoRepository{db: db}
}

func (r *promoRepository) GetActiveByCode(ctx context.Context, code string) (*entity.Promo, error) {
	// Codes are stored uppercase; normalizing the input gives the
	// case-insensitive match.
	query := `
		SELECT code, type, amount, active
		FROM promos
		WHERE code = $1 AND active = TRUE
	`

	var promo entity.Promo
	err := r.db.QueryRowContext(ctx, query, strings.ToUpper(strings.TrimSpace(code))).Scan(
		&promo.Code,
		&promo.Type,
		&promo.Amount,
		&promo.Active,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrPromoNotValid
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get promo: %w", err)
	}

	return &promo, nil
}
