package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Tier string

const (
	TierBronze Tier = "Bronze"
	TierSilver Tier = "Silver"
	TierGold   Tier = "Gold"
)

// Rank orders tiers; unknown tiers rank as Bronze.
func (t Tier) Rank() int {
	switch t {
	case TierSilver:
		return 2
	case TierGold:
		return 3
	}

	return 1
}

type Customer struct {
	ID            uuid.UUID       `json:"id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Email         string          `json:"email,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Tier          Tier            `json:"tier"`
	TotalSpend    decimal.Decimal `json:"total_spend"`
	LoyaltyPoints int64           `json:"loyalty_points"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type CreateCustomerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

type UpdateCustomerRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

type CustomerProfile struct {
	Customer        *Customer           `json:"customer"`
	TabBalance      decimal.Decimal     `json:"tab_balance"`
	TabHistory      []WalletLedgerEntry `json:"tab_history"`
	SpendToNextTier decimal.Decimal     `json:"spend_to_next_tier"`
}
