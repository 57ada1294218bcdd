package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusOpen      TransactionStatus = "open"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusRefunded  TransactionStatus = "refunded"
)

type Transaction struct {
	ID              uuid.UUID         `json:"id"`
	Items           []LineItem        `json:"items"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	Tax             decimal.Decimal   `json:"tax"`
	Total           decimal.Decimal   `json:"total"`
	PaymentMethod   PaymentMethod     `json:"payment_method"`
	CustomerID      *uuid.UUID        `json:"customer_id,omitempty"`
	Status          TransactionStatus `json:"status"`
	ChargeReference string            `json:"charge_reference,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
}

func (t *Transaction) IsCompleted() bool {
	return t.Status == TransactionStatusCompleted
}

// CanTransitionTo only allows completed -> refunded once a transaction has left "open".
func (t *Transaction) CanTransitionTo(next TransactionStatus) bool {
	switch t.Status {
	case TransactionStatusOpen:
		return next == TransactionStatusCompleted
	case TransactionStatusCompleted:
		return next == TransactionStatusRefunded
	}

	return false
}

type TransactionFilter struct {
	Status        TransactionStatus
	PaymentMethod PaymentMethod
	CustomerID    *uuid.UUID
	MinimumAmount *decimal.Decimal
	MaximumAmount *decimal.Decimal
	From          *time.Time
	To            *time.Time
}

type TransactionStats struct {
	TotalSales        decimal.Decimal `json:"total_sales"`
	CompletedCount    int             `json:"completed_count"`
	OpenTabsCount     int             `json:"open_tabs_count"`
	RefundedCount     int             `json:"refunded_count"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	TopPaymentMethod  string          `json:"top_payment_method"`
}

type SendReceiptRequest struct {
	Recipient string `json:"recipient" validate:"required,email"`
	Message   string `json:"message,omitempty" validate:"max=2000"`
}
