package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	"github.com/aaravmahajanofficial/pos-platform/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type StaffRepository interface {
	CreateStaff(ctx context.Context, staff *models.Staff) error
	GetStaffByEmail(ctx context.Context, email string) (*models.Staff, error)
	GetStaffByID(ctx context.Context, id uuid.UUID) (*models.Staff, error)
}

type staffRepository struct {
	DB *sql.DB
}

func NewStaffRepo(db *sql.DB) StaffRepository {
	return &staffRepository{DB: db}
}

func (r *staffRepository) CreateStaff(ctx context.Context, staff *models.Staff) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO staff(name, email, password, role, created_at, updated_at)
		VALUES($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, staff.Name, staff.Email, staff.Password, staff.Role).
		Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)

	return mapWriteError(err)
}

func (r *staffRepository) GetStaffByEmail(ctx context.Context, email string) (*models.Staff, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	staff := &models.Staff{}
	query := `SELECT id, name, email, password, role, created_at, updated_at
			  FROM staff
			  WHERE email = $1`

	err := r.DB.QueryRowContext(dbCtx, query, email).
		Scan(&staff.ID, &staff.Name, &staff.Email, &staff.Password, &staff.Role, &staff.CreatedAt, &staff.UpdatedAt)
	if err != nil {
		return nil, mapReadError(err)
	}

	return staff, nil
}

func (r *staffRepository) GetStaffByID(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	staff := &models.Staff{}
	query := `SELECT id, name, email, role, created_at, updated_at
			  FROM staff
			  WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&staff.ID, &staff.Name, &staff.Email, &staff.Role, &staff.CreatedAt, &staff.UpdatedAt)
	if err != nil {
		return nil, mapReadError(err)
	}

	return staff, nil
}

func mapReadError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	return err
}

func mapWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicateEntry
	}

	return err
}

// requireAffected returns ErrNotFound when the statement touched no rows.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
