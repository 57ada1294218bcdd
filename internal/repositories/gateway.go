package repository

import (
	"github.com/aaravmahajanofficial/pos-platform/internal/checkout"
)

// CheckoutGateway is the Postgres-backed store the payment processor and
// wallet ledger write through.
type CheckoutGateway struct {
	TransactionRepository
	WalletRepository
}

var _ checkout.Gateway = (*CheckoutGateway)(nil)

func NewCheckoutGateway(transactions TransactionRepository, wallets WalletRepository) *CheckoutGateway {
	return &CheckoutGateway{TransactionRepository: transactions, WalletRepository: wallets}
}
