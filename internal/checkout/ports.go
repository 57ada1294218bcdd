package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrWalletNotFound = errors.New("wallet not found")
	ErrNoCustomer     = errors.New("tab payments need a customer")
	ErrInvalidAmount  = errors.New("amount must be greater than zero")
)

// Gateway durably stores transactions and customer wallets.
type Gateway interface {
	InsertTransaction(ctx context.Context, tx *models.Transaction) (uuid.UUID, error)
	// SettleTab completes the open tab id with the payment recorded in tx.
	SettleTab(ctx context.Context, id uuid.UUID, tx *models.Transaction) error
	InsertWalletEntry(ctx context.Context, entry *models.WalletLedgerEntry) error
	// GetWallet returns ErrWalletNotFound when the customer has no wallet yet.
	GetWallet(ctx context.Context, customerID uuid.UUID) (*models.CustomerWallet, error)
	UpsertWallet(ctx context.Context, wallet *models.CustomerWallet) error
}

type TaxRuleSource interface {
	GetRules(ctx context.Context) ([]models.TaxRule, error)
}

type Catalog interface {
	ResolveItem(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (*models.ResolvedItem, error)
}

// Notifier surfaces user-visible outcomes. It must not block.
type Notifier interface {
	Notify(ctx context.Context, kind models.NoticeKind, message string)
}

// GiftCardRedeemer completes a gift card payment end to end, including
// whatever it needs to record.
type GiftCardRedeemer interface {
	Redeem(ctx context.Context, code string, amount decimal.Decimal) error
}

type WalletUpdater interface {
	ApplyCharge(ctx context.Context, customerID uuid.UUID, amount decimal.Decimal, transactionID uuid.UUID) error
}

// Locker provides a lease on key for at most ttl.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}
