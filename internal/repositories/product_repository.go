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

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	// DeleteProduct removes the product and, through the foreign key, its variants.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, category string, page, size int) ([]*models.Product, int, error)
	CreateVariant(ctx context.Context, variant *models.Variant) error
	// CreateVariants inserts all variants or none of them.
	CreateVariants(ctx context.Context, variants []*models.Variant) error
	GetVariant(ctx context.Context, productID, variantID uuid.UUID) (*models.Variant, error)
	UpdateVariant(ctx context.Context, variant *models.Variant) error
	DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error
	ListVariants(ctx context.Context, productID uuid.UUID) ([]models.Variant, error)
	// DecrementStock lowers the tracked stock of the variant when it carries
	// its own count, otherwise of the product. Untracked stock is left alone.
	DecrementStock(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, quantity int) error
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const insertVariantQuery = `
	INSERT INTO product_variants (product_id, name, price, stock_count, sku)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at, updated_at
`

const productColumns = `id, name, description, category, price, stock_quantity, sku, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}

	var (
		price decimal.NullDecimal
		stock sql.NullInt64
	)

	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.Category, &price, &stock, &product.SKU, &product.Status, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	product.Price = decimalPtr(price)
	product.StockQuantity = intPtr(stock)

	return product, nil
}

func scanVariant(row rowScanner) (*models.Variant, error) {
	variant := &models.Variant{}

	var (
		price decimal.NullDecimal
		stock sql.NullInt64
	)

	err := row.Scan(&variant.ID, &variant.ProductID, &variant.Name, &price, &stock, &variant.SKU, &variant.CreatedAt, &variant.UpdatedAt)
	if err != nil {
		return nil, err
	}

	variant.Price = decimalPtr(price)
	variant.StockCount = intPtr(stock)

	return variant, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (name, description, category, price, stock_quantity, sku, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, product.Name, product.Description, product.Category, decimalArg(product.Price), intArg(product.StockQuantity), product.SKU, product.Status).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)

	return mapWriteError(err)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, mapReadError(err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET name = $1, description = $2, category = $3, price = $4, stock_quantity = $5, status = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, product.Name, product.Description, product.Category, decimalArg(product.Price), intArg(product.StockQuantity), product.Status, product.ID).
		Scan(&product.UpdatedAt)

	return mapReadError(err)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return requireAffected(result)
}

func (r *productRepository) ListProducts(ctx context.Context, category string, page, size int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products WHERE ($1 = '' OR category = $1)`

	if err := r.DB.QueryRowContext(dbCtx, countQuery, category).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (page - 1) * size

	query := `SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR category = $1)
		ORDER BY name, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, category, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}

	defer rows.Close()

	products := []*models.Product{}

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return products, total, nil
}

func (r *productRepository) CreateVariant(ctx context.Context, variant *models.Variant) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	err := r.DB.QueryRowContext(dbCtx, insertVariantQuery, variant.ProductID, variant.Name, decimalArg(variant.Price), intArg(variant.StockCount), variant.SKU).
		Scan(&variant.ID, &variant.CreatedAt, &variant.UpdatedAt)

	return mapWriteError(err)
}

func (r *productRepository) CreateVariants(ctx context.Context, variants []*models.Variant) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(dbCtx, insertVariantQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare variant insert: %w", err)
	}

	defer stmt.Close()

	for _, variant := range variants {
		err := stmt.QueryRowContext(dbCtx, variant.ProductID, variant.Name, decimalArg(variant.Price), intArg(variant.StockCount), variant.SKU).
			Scan(&variant.ID, &variant.CreatedAt, &variant.UpdatedAt)
		if err != nil {
			return mapWriteError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit variants: %w", err)
	}

	return nil
}

func (r *productRepository) GetVariant(ctx context.Context, productID, variantID uuid.UUID) (*models.Variant, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, product_id, name, price, stock_count, sku, created_at, updated_at
		FROM product_variants
		WHERE id = $1 AND product_id = $2
	`

	variant, err := scanVariant(r.DB.QueryRowContext(dbCtx, query, variantID, productID))
	if err != nil {
		return nil, mapReadError(err)
	}

	return variant, nil
}

func (r *productRepository) UpdateVariant(ctx context.Context, variant *models.Variant) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE product_variants SET name = $1, price = $2, stock_count = $3, sku = $4, updated_at = NOW()
		WHERE id = $5 AND product_id = $6
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, variant.Name, decimalArg(variant.Price), intArg(variant.StockCount), variant.SKU, variant.ID, variant.ProductID).
		Scan(&variant.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	return mapWriteError(err)
}

func (r *productRepository) DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM product_variants WHERE id = $1 AND product_id = $2`, variantID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete variant: %w", err)
	}

	return requireAffected(result)
}

func (r *productRepository) ListVariants(ctx context.Context, productID uuid.UUID) ([]models.Variant, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, product_id, name, price, stock_count, sku, created_at, updated_at
		FROM product_variants
		WHERE product_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.DB.QueryContext(dbCtx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query variants: %w", err)
	}

	defer rows.Close()

	variants := []models.Variant{}

	for rows.Next() {
		variant, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}

		variants = append(variants, *variant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return variants, nil
}

func (r *productRepository) DecrementStock(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if variantID != nil {
		query := `
			UPDATE product_variants SET stock_count = GREATEST(stock_count - $1, 0), updated_at = NOW()
			WHERE id = $2 AND product_id = $3 AND stock_count IS NOT NULL
		`

		result, err := r.DB.ExecContext(dbCtx, query, quantity, *variantID, productID)
		if err != nil {
			return fmt.Errorf("failed to decrement variant stock: %w", err)
		}

		updated, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get updated rows: %w", err)
		}

		if updated > 0 {
			return nil
		}
	}

	query := `
		UPDATE products SET stock_quantity = GREATEST(stock_quantity - $1, 0), updated_at = NOW()
		WHERE id = $2 AND stock_quantity IS NOT NULL
	`

	if _, err := r.DB.ExecContext(dbCtx, query, quantity, productID); err != nil {
		return fmt.Errorf("failed to decrement product stock: %w", err)
	}

	return nil
}

