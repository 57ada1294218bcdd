package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LineItem struct {
	ProductID  uuid.UUID       `json:"product_id"`
	VariantID  *uuid.UUID      `json:"variant_id,omitempty"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	Category   string          `json:"category"`
	StockLimit *int            `json:"stock_limit,omitempty"` // nil means unbounded
}

// SameEntry reports whether both items refer to the same (product, variant) pair.
func (i LineItem) SameEntry(productID uuid.UUID, variantID *uuid.UUID) bool {
	if i.ProductID != productID {
		return false
	}

	if i.VariantID == nil || variantID == nil {
		return i.VariantID == nil && variantID == nil
	}

	return *i.VariantID == *variantID
}

func (i LineItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type AddItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type SetCustomerRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
}

type CreateSessionRequest struct {
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
}
