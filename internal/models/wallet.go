package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LedgerEntryType string

const LedgerEntryCharge LedgerEntryType = "charge"

type CustomerWallet struct {
	ID             uuid.UUID       `json:"id"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// WalletLedgerEntry is append-only; CurrentBalance is the sum of a wallet's entries.
type WalletLedgerEntry struct {
	ID                     uuid.UUID       `json:"id"`
	WalletID               uuid.UUID       `json:"wallet_id"`
	Amount                 decimal.Decimal `json:"amount"`
	Type                   LedgerEntryType `json:"type"`
	Description            string          `json:"description"`
	ReferenceTransactionID uuid.UUID       `json:"reference_transaction_id"`
	CreatedAt              time.Time       `json:"created_at"`
}
