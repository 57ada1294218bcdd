package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/pos-platform/internal/checkout"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	"github.com/aaravmahajanofficial/pos-platform/internal/utils"
	"github.com/google/uuid"
)

type WalletRepository interface {
	// GetWallet returns checkout.ErrWalletNotFound when the customer has no wallet.
	GetWallet(ctx context.Context, customerID uuid.UUID) (*models.CustomerWallet, error)
	UpsertWallet(ctx context.Context, wallet *models.CustomerWallet) error
	InsertWalletEntry(ctx context.Context, entry *models.WalletLedgerEntry) error
	ListEntries(ctx context.Context, walletID uuid.UUID) ([]models.WalletLedgerEntry, error)
}

type walletRepository struct {
	DB *sql.DB
}

func NewWalletRepo(db *sql.DB) WalletRepository {
	return &walletRepository{DB: db}
}

func (r *walletRepository) GetWallet(ctx context.Context, customerID uuid.UUID) (*models.CustomerWallet, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, customer_id, current_balance, created_at, updated_at
		FROM customer_wallets
		WHERE customer_id = $1
	`

	wallet := &models.CustomerWallet{}

	err := r.DB.QueryRowContext(dbCtx, query, customerID).
		Scan(&wallet.ID, &wallet.CustomerID, &wallet.CurrentBalance, &wallet.CreatedAt, &wallet.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, checkout.ErrWalletNotFound
		}

		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	return wallet, nil
}

func (r *walletRepository) UpsertWallet(ctx context.Context, wallet *models.CustomerWallet) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO customer_wallets (id, customer_id, current_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (customer_id) DO UPDATE
		SET current_balance = EXCLUDED.current_balance, updated_at = EXCLUDED.updated_at
	`

	_, err := r.DB.ExecContext(dbCtx, query, wallet.ID, wallet.CustomerID, wallet.CurrentBalance, wallet.CreatedAt, wallet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert wallet: %w", err)
	}

	return nil
}

func (r *walletRepository) InsertWalletEntry(ctx context.Context, entry *models.WalletLedgerEntry) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO wallet_ledger_entries (id, wallet_id, amount, type, description, reference_transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(dbCtx, query, entry.ID, entry.WalletID, entry.Amount, entry.Type, entry.Description, entry.ReferenceTransactionID, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert wallet entry: %w", err)
	}

	return nil
}

func (r *walletRepository) ListEntries(ctx context.Context, walletID uuid.UUID) ([]models.WalletLedgerEntry, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, wallet_id, amount, type, description, reference_transaction_id, created_at
		FROM wallet_ledger_entries
		WHERE wallet_id = $1
		ORDER BY created_at DESC, id
	`

	rows, err := r.DB.QueryContext(dbCtx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet entries: %w", err)
	}

	defer rows.Close()

	entries := []models.WalletLedgerEntry{}

	for rows.Next() {
		var entry models.WalletLedgerEntry

		err := rows.Scan(&entry.ID, &entry.WalletID, &entry.Amount, &entry.Type, &entry.Description, &entry.ReferenceTransactionID, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet entry: %w", err)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return entries, nil
}
