package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	"github.com/aaravmahajanofficial/pos-platform/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const noPaymentMethod = "None"

type TransactionRepository interface {
	InsertTransaction(ctx context.Context, tx *models.Transaction) (uuid.UUID, error)
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	FindByChargeReference(ctx context.Context, reference string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, filter models.TransactionFilter, page, size int) ([]*models.Transaction, int, error)
	GetStats(ctx context.Context, from, to *time.Time) (*models.TransactionStats, error)
	// UpdateStatus moves a transaction from one status to the next and
	// returns ErrStaleStatus when it is no longer in the expected status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.TransactionStatus) error
	// SettleTab overwrites the open tab id with the completed sale in tx and
	// returns ErrStaleStatus when the tab is no longer open.
	SettleTab(ctx context.Context, id uuid.UUID, tx *models.Transaction) error
}

type transactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepo(db *sql.DB) TransactionRepository {
	return &transactionRepository{DB: db}
}

const transactionColumns = `id, items, subtotal, tax, total, payment_method, customer_id, status, charge_reference, created_at, completed_at`

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	tx := &models.Transaction{}

	var (
		items       []byte
		customerID  uuid.NullUUID
		completedAt sql.NullTime
	)

	err := row.Scan(&tx.ID, &items, &tx.Subtotal, &tx.Tax, &tx.Total, &tx.PaymentMethod, &customerID, &tx.Status, &tx.ChargeReference, &tx.CreatedAt, &completedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &tx.Items); err != nil {
		return nil, fmt.Errorf("failed to decode transaction items: %w", err)
	}

	tx.CustomerID = uuidPtr(customerID)

	if completedAt.Valid {
		tx.CompletedAt = &completedAt.Time
	}

	return tx, nil
}

func (r *transactionRepository) InsertTransaction(ctx context.Context, tx *models.Transaction) (uuid.UUID, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	items, err := json.Marshal(tx.Items)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode transaction items: %w", err)
	}

	var completedAt sql.NullTime
	if tx.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *tx.CompletedAt, Valid: true}
	}

	query := `
		INSERT INTO transactions (items, subtotal, tax, total, payment_method, customer_id, status, charge_reference, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id uuid.UUID

	err = r.DB.QueryRowContext(dbCtx, query, items, tx.Subtotal, tx.Tax, tx.Total, tx.PaymentMethod, uuidArg(tx.CustomerID), tx.Status, tx.ChargeReference, tx.CreatedAt, completedAt).
		Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return id, nil
}

func (r *transactionRepository) GetTransactionByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, mapReadError(err)
	}

	return tx, nil
}

func (r *transactionRepository) FindByChargeReference(ctx context.Context, reference string) (*models.Transaction, error) {
	if reference == "" {
		return nil, ErrNotFound
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE charge_reference = $1`

	tx, err := scanTransaction(r.DB.QueryRowContext(dbCtx, query, reference))
	if err != nil {
		return nil, mapReadError(err)
	}

	return tx, nil
}

// filterClause renders the WHERE clause for filter; placeholders start at $1.
func filterClause(filter models.TransactionFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	add := func(condition string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}

	if filter.PaymentMethod != "" {
		add("payment_method = $%d", filter.PaymentMethod)
	}

	if filter.CustomerID != nil {
		add("customer_id = $%d", *filter.CustomerID)
	}

	if filter.MinimumAmount != nil {
		add("total >= $%d", *filter.MinimumAmount)
	}

	if filter.MaximumAmount != nil {
		add("total <= $%d", *filter.MaximumAmount)
	}

	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}

	if filter.To != nil {
		add("created_at <= $%d", *filter.To)
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *transactionRepository) ListTransactions(ctx context.Context, filter models.TransactionFilter, page, size int) ([]*models.Transaction, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	where, args := filterClause(filter)

	var total int

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM transactions`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	offset := (page - 1) * size
	limitArgs := append(args, size, offset)

	query := fmt.Sprintf(`SELECT %s FROM transactions%s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		transactionColumns, where, len(args)+1, len(args)+2)

	rows, err := r.DB.QueryContext(dbCtx, query, limitArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}

	defer rows.Close()

	transactions := []*models.Transaction{}

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction: %w", err)
		}

		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return transactions, total, nil
}

func (r *transactionRepository) GetStats(ctx context.Context, from, to *time.Time) (*models.TransactionStats, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	where, args := filterClause(models.TransactionFilter{From: from, To: to})

	query := `
		SELECT COALESCE(SUM(total) FILTER (WHERE status = 'completed'), 0),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COUNT(*) FILTER (WHERE status = 'open'),
		       COUNT(*) FILTER (WHERE status = 'refunded')
		FROM transactions` + where

	stats := &models.TransactionStats{}

	err := r.DB.QueryRowContext(dbCtx, query, args...).
		Scan(&stats.TotalSales, &stats.CompletedCount, &stats.OpenTabsCount, &stats.RefundedCount)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}

	if stats.CompletedCount > 0 {
		stats.AverageOrderValue = stats.TotalSales.Div(decimal.NewFromInt(int64(stats.CompletedCount))).Round(2)
	}

	completed, completedArgs := filterClause(models.TransactionFilter{Status: models.TransactionStatusCompleted, From: from, To: to})

	topQuery := `SELECT payment_method FROM transactions` + completed + `
		GROUP BY payment_method
		ORDER BY COUNT(*) DESC, payment_method
		LIMIT 1`

	err = r.DB.QueryRowContext(dbCtx, topQuery, completedArgs...).Scan(&stats.TopPaymentMethod)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		stats.TopPaymentMethod = noPaymentMethod
	case err != nil:
		return nil, fmt.Errorf("failed to find top payment method: %w", err)
	}

	return stats, nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.TransactionStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE transactions SET status = $1 WHERE id = $2 AND status = $3`

	result, err := r.DB.ExecContext(dbCtx, query, to, id, from)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updated == 0 {
		return ErrStaleStatus
	}

	return nil
}

func (r *transactionRepository) SettleTab(ctx context.Context, id uuid.UUID, tx *models.Transaction) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	items, err := json.Marshal(tx.Items)
	if err != nil {
		return fmt.Errorf("failed to encode transaction items: %w", err)
	}

	var completedAt sql.NullTime
	if tx.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *tx.CompletedAt, Valid: true}
	}

	query := `
		UPDATE transactions
		SET items = $1, subtotal = $2, tax = $3, total = $4, payment_method = $5, customer_id = $6,
		    status = $7, charge_reference = $8, completed_at = $9
		WHERE id = $10 AND status = $11
	`

	result, err := r.DB.ExecContext(dbCtx, query, items, tx.Subtotal, tx.Tax, tx.Total, tx.PaymentMethod, uuidArg(tx.CustomerID),
		tx.Status, tx.ChargeReference, completedAt, id, models.TransactionStatusOpen)
	if err != nil {
		return fmt.Errorf("failed to settle tab: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updated == 0 {
		return ErrStaleStatus
	}

	return nil
}
