package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is a user-visible outcome message.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

type SessionView struct {
	ID             uuid.UUID       `json:"id"`
	CustomerID     *uuid.UUID      `json:"customer_id,omitempty"`
	TabID          *uuid.UUID      `json:"tab_id,omitempty"`
	Items          []LineItem      `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
	Payment        *PaymentView    `json:"payment,omitempty"`
	ProcessorState string          `json:"processor_state"`
	Notices        []Notice        `json:"notices,omitempty"`
}

type PaymentResult struct {
	Succeeded   bool            `json:"succeeded"`
	Message     string          `json:"message"`
	Transaction *Transaction    `json:"transaction,omitempty"`
	Change      decimal.Decimal `json:"change"`
	Session     *SessionView    `json:"session"`
}

// OpenTabResult is the unpaid sale recorded when a cart is kept as an open tab.
type OpenTabResult struct {
	Transaction *Transaction `json:"transaction"`
	Session     *SessionView `json:"session"`
}

type LoadTabRequest struct {
	TransactionID uuid.UUID `json:"transaction_id" validate:"required"`
}
