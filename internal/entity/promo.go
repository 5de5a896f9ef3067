package entity

import (
	"github.com/shopspring/decimal"
)

type PromoType string

const (
	PromoTypePercent PromoType = "percent"
	PromoTypeFlat    PromoType = "flat"
)

// Promo is a stored promo code. Codes are persisted uppercase and matched
// case-insensitively. Read-only from the booking flow's perspective.
type Promo struct {
	Code   string          `json:"code" db:"code"`
	Type   PromoType       `json:"type" db:"type"`
	Amount decimal.Decimal `json:"amount" db:"amount"`
	Active bool            `json:"active" db:"active"`
}

// PromoDescriptor is the discount descriptor returned by a successful
// validation and consumed by the pricing engine.
type PromoDescriptor struct {
	Code   string          `json:"code"`
	Type   PromoType       `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

func (p *Promo) Descriptor() *PromoDescriptor {
	return &PromoDescriptor{Code: p.Code, Type: p.Type, Amount: p.Amount}
}
