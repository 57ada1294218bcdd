package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxRule applies Rate to every line item whose category matches. An empty
// Category marks the store-wide default.
type TaxRule struct {
	ID        uuid.UUID       `json:"id"`
	Category  string          `json:"category"`
	Rate      decimal.Decimal `json:"rate"`
	CreatedAt time.Time       `json:"created_at"`
}

// UpsertTaxRuleRequest replaces the rate for Category. An empty Category sets
// the store-wide default.
type UpsertTaxRuleRequest struct {
	Category string          `json:"category" validate:"max=100"`
	Rate     decimal.Decimal `json:"rate"`
}
