package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

type Product struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity"` // nil means not tracked
	SKU           string           `json:"sku"`
	Status        ProductStatus    `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Variants      []Variant        `json:"variants,omitempty"`
}

// Variant overrides the product's price and stock when they are set.
type Variant struct {
	ID         uuid.UUID        `json:"id"`
	ProductID  uuid.UUID        `json:"product_id"`
	Name       string           `json:"name"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	StockCount *int             `json:"stock_count,omitempty"`
	SKU        string           `json:"sku"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// ResolvedItem is the effective price/stock of a product or one of its variants.
type ResolvedItem struct {
	ProductID  uuid.UUID        `json:"product_id"`
	VariantID  *uuid.UUID       `json:"variant_id,omitempty"`
	Name       string           `json:"name"`
	Category   string           `json:"category"`
	Price      *decimal.Decimal `json:"price"`
	StockLimit *int             `json:"stock_limit"`
}

type CreateProductRequest struct {
	Name          string           `json:"name" validate:"required,min=2,max=200"`
	Description   string           `json:"description,omitempty"`
	Category      string           `json:"category" validate:"required,max=100"`
	Price         *decimal.Decimal `json:"price" validate:"required"`
	StockQuantity *int             `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	SKU           string           `json:"sku" validate:"required,min=3,max=50"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description   *string          `json:"description,omitempty"`
	Category      *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	StockQuantity *int             `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	Status        *ProductStatus   `json:"status,omitempty" validate:"omitempty,oneof=active inactive discontinued"`
}

type CreateVariantRequest struct {
	Name       string           `json:"name" validate:"required,max=200"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	StockCount *int             `json:"stock_count,omitempty" validate:"omitempty,gte=0"`
	SKU        string           `json:"sku" validate:"required,min=3,max=50"`
}

type UpdateVariantRequest struct {
	Name       *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	StockCount *int             `json:"stock_count,omitempty" validate:"omitempty,gte=0"`
	SKU        *string          `json:"sku,omitempty" validate:"omitempty,min=3,max=50"`
}

// GenerateVariantsRequest creates one variant per combination of the
// non-empty option lists, all with the same price and stock.
type GenerateVariantsRequest struct {
	Colors     []string         `json:"colors,omitempty" validate:"omitempty,max=20,dive,max=50"`
	Sizes      []string         `json:"sizes,omitempty" validate:"omitempty,max=20,dive,max=50"`
	Flavors    []string         `json:"flavors,omitempty" validate:"omitempty,max=20,dive,max=50"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	StockCount *int             `json:"stock_count,omitempty" validate:"omitempty,gte=0"`
}
