package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const tabChargeDescription = "Added to tab during checkout"

// WalletLedger adds tab charges to a customer's running balance and appends
// a ledger entry for each one. The balance write and the entry write are
// separate steps; a failure between them is reported, never compensated.
type WalletLedger struct {
	gateway Gateway
	locker  Locker
	lockTTL time.Duration
	now     func() time.Time
}

type WalletOption func(*WalletLedger)

// WithLocker serialises the read-modify-write of one customer's wallet.
func WithLocker(locker Locker, ttl time.Duration) WalletOption {
	return func(l *WalletLedger) {
		l.locker = locker
		l.lockTTL = ttl
	}
}

func WithWalletClock(now func() time.Time) WalletOption {
	return func(l *WalletLedger) {
		l.now = now
	}
}

func NewWalletLedger(gateway Gateway, opts ...WalletOption) *WalletLedger {
	l := &WalletLedger{gateway: gateway, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *WalletLedger) ApplyCharge(ctx context.Context, customerID uuid.UUID, amount decimal.Decimal, transactionID uuid.UUID) (err error) {
	if customerID == uuid.Nil {
		return ErrNoCustomer
	}

	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if l.locker != nil {
		release, lockErr := l.locker.Lock(ctx, "wallet:"+customerID.String(), l.lockTTL)
		if lockErr != nil {
			return fmt.Errorf("failed to lock wallet: %w", lockErr)
		}

		defer func() {
			if releaseErr := release(ctx); releaseErr != nil && err == nil {
				err = fmt.Errorf("failed to release wallet lock: %w", releaseErr)
			}
		}()
	}

	now := l.now().UTC()

	wallet, err := l.gateway.GetWallet(ctx, customerID)

	switch {
	case errors.Is(err, ErrWalletNotFound):
		wallet = &models.CustomerWallet{
			ID:             uuid.New(),
			CustomerID:     customerID,
			CurrentBalance: amount,
			CreatedAt:      now,
		}
	case err != nil:
		return fmt.Errorf("failed to load wallet: %w", err)
	default:
		wallet.CurrentBalance = wallet.CurrentBalance.Add(amount)
	}

	wallet.UpdatedAt = now

	if err := l.gateway.UpsertWallet(ctx, wallet); err != nil {
		return fmt.Errorf("failed to update wallet balance: %w", err)
	}

	entry := &models.WalletLedgerEntry{
		ID:                     uuid.New(),
		WalletID:               wallet.ID,
		Amount:                 amount,
		Type:                   models.LedgerEntryCharge,
		Description:            tabChargeDescription,
		ReferenceTransactionID: transactionID,
		CreatedAt:              now,
	}

	if err := l.gateway.InsertWalletEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to append wallet ledger entry: %w", err)
	}

	return nil
}
