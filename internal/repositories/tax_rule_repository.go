package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	"github.com/aaravmahajanofficial/pos-platform/internal/utils"
)

type TaxRuleRepository interface {
	// GetRules returns the rules oldest first.
	GetRules(ctx context.Context) ([]models.TaxRule, error)
	UpsertRule(ctx context.Context, rule *models.TaxRule) error
}

type taxRuleRepository struct {
	DB *sql.DB
}

func NewTaxRuleRepo(db *sql.DB) TaxRuleRepository {
	return &taxRuleRepository{DB: db}
}

func (r *taxRuleRepository) GetRules(ctx context.Context) ([]models.TaxRule, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, `SELECT id, category, rate, created_at FROM tax_rules ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax rules: %w", err)
	}

	defer rows.Close()

	rules := []models.TaxRule{}

	for rows.Next() {
		var rule models.TaxRule

		if err := rows.Scan(&rule.ID, &rule.Category, &rule.Rate, &rule.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tax rule: %w", err)
		}

		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return rules, nil
}

func (r *taxRuleRepository) UpsertRule(ctx context.Context, rule *models.TaxRule) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO tax_rules (category, rate)
		VALUES ($1, $2)
		ON CONFLICT (category) DO UPDATE SET rate = EXCLUDED.rate
		RETURNING id, created_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, rule.Category, rule.Rate).Scan(&rule.ID, &rule.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert tax rule: %w", err)
	}

	return nil
}
