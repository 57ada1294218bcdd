package repository_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	repository "github.com/aaravmahajanofficial/pos-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxRuleRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewTaxRuleRepo(db)
	ctx := t.Context()

	t.Run("GetRules", func(t *testing.T) {
		// Arrange
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, category, rate, created_at FROM tax_rules ORDER BY created_at, id`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "category", "rate", "created_at"}).
				AddRow(uuid.NewString(), "", "0.08", now).
				AddRow(uuid.NewString(), "food", "0.02", now))

		// Act
		rules, err := repo.GetRules(ctx)

		// Assert
		require.NoError(t, err)
		require.Len(t, rules, 2)
		assert.Empty(t, rules[0].Category)
		assert.True(t, rules[1].Rate.Equal(decimal.RequireFromString("0.02")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetRules_DatabaseError", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(regexp.QuoteMeta(`FROM tax_rules`)).WillReturnError(errors.New("boom"))

		// Act
		rules, err := repo.GetRules(ctx)

		// Assert
		assert.Nil(t, rules)
		assert.ErrorContains(t, err, "failed to query tax rules")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpsertRule", func(t *testing.T) {
		// Arrange
		rule := &models.TaxRule{Category: "alcohol", Rate: decimal.RequireFromString("0.15")}
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (category) DO UPDATE SET rate = EXCLUDED.rate`)).
			WithArgs(rule.Category, rule.Rate).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id.String(), time.Now()))

		// Act
		err := repo.UpsertRule(ctx, rule)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, id, rule.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
