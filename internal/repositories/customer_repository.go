package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	"github.com/aaravmahajanofficial/pos-platform/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, customer *models.Customer) error
	ListCustomers(ctx context.Context, search string, page, size int) ([]*models.Customer, int, error)
	// AddSpend adds to the running spend and loyalty points and returns the
	// updated customer.
	AddSpend(ctx context.Context, id uuid.UUID, amount decimal.Decimal, points int64) (*models.Customer, error)
	UpdateTier(ctx context.Context, id uuid.UUID, tier models.Tier) error
}

type customerRepository struct {
	DB *sql.DB
}

func NewCustomerRepo(db *sql.DB) CustomerRepository {
	return &customerRepository{DB: db}
}

const customerColumns = `id, first_name, last_name, COALESCE(email, ''), COALESCE(phone, ''), tier, total_spend, loyalty_points, created_at, updated_at`

func scanCustomer(row rowScanner) (*models.Customer, error) {
	customer := &models.Customer{}

	err := row.Scan(&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email, &customer.Phone, &customer.Tier, &customer.TotalSpend, &customer.LoyaltyPoints, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return customer, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *customerRepository) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO customers (first_name, last_name, email, phone, tier)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, total_spend, loyalty_points, created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, customer.FirstName, customer.LastName, nullString(customer.Email), nullString(customer.Phone), customer.Tier).
		Scan(&customer.ID, &customer.TotalSpend, &customer.LoyaltyPoints, &customer.CreatedAt, &customer.UpdatedAt)

	return mapWriteError(err)
}

func (r *customerRepository) GetCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customer, err := scanCustomer(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, mapReadError(err)
	}

	return customer, nil
}

func (r *customerRepository) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE customers SET first_name = $1, last_name = $2, email = $3, phone = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, customer.FirstName, customer.LastName, nullString(customer.Email), nullString(customer.Phone), customer.ID).
		Scan(&customer.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	return mapWriteError(err)
}

func (r *customerRepository) ListCustomers(ctx context.Context, search string, page, size int) ([]*models.Customer, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	pattern := "%" + search + "%"
	where := `WHERE ($1 = '%%' OR first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1)`

	var total int

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM customers `+where, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	offset := (page - 1) * size

	query := `SELECT ` + customerColumns + ` FROM customers ` + where + `
		ORDER BY last_name, first_name, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, pattern, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query customers: %w", err)
	}

	defer rows.Close()

	customers := []*models.Customer{}

	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}

		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return customers, total, nil
}

func (r *customerRepository) AddSpend(ctx context.Context, id uuid.UUID, amount decimal.Decimal, points int64) (*models.Customer, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE customers SET total_spend = total_spend + $1, loyalty_points = loyalty_points + $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + customerColumns

	customer, err := scanCustomer(r.DB.QueryRowContext(dbCtx, query, amount, points, id))
	if err != nil {
		return nil, mapReadError(err)
	}

	return customer, nil
}

func (r *customerRepository) UpdateTier(ctx context.Context, id uuid.UUID, tier models.Tier) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE customers SET tier = $1, updated_at = NOW() WHERE id = $2`, tier, id)
	if err != nil {
		return fmt.Errorf("failed to update customer tier: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updated == 0 {
		return ErrNotFound
	}

	return nil
}
