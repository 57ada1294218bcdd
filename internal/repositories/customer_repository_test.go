package repository_test

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	repository "github.com/aaravmahajanofficial/pos-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCustomerRepo(db)
	ctx := t.Context()

	t.Run("CreateCustomer_WithoutEmail", func(t *testing.T) {
		// Arrange
		customer := &models.Customer{FirstName: "Ada", LastName: "Lovelace", Tier: models.TierBronze}
		newID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO customers (first_name, last_name, email, phone, tier)`)).
			WithArgs("Ada", "Lovelace", nil, nil, models.TierBronze).
			WillReturnRows(sqlmock.NewRows([]string{"id", "total_spend", "loyalty_points", "created_at", "updated_at"}).
				AddRow(newID.String(), "0", int64(0), now, now))

		// Act
		err := repo.CreateCustomer(ctx, customer)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, newID, customer.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CreateCustomer_DuplicateEmail", func(t *testing.T) {
		// Arrange
		customer := &models.Customer{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Tier: models.TierBronze}

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO customers`)).
			WillReturnError(&pq.Error{Code: "23505"})

		// Act
		err := repo.CreateCustomer(ctx, customer)

		// Assert
		assert.ErrorIs(t, err, repository.ErrDuplicateEntry)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateCustomer_DuplicateEmail", func(t *testing.T) {
		// Arrange
		customer := &models.Customer{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace", Email: "taken@example.com"}

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE customers SET first_name = $1`)).
			WillReturnError(&pq.Error{Code: "23505"})

		// Act
		err := repo.UpdateCustomer(ctx, customer)

		// Assert
		assert.ErrorIs(t, err, repository.ErrDuplicateEntry)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateCustomer_NotFound", func(t *testing.T) {
		// Arrange
		customer := &models.Customer{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace"}

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE customers SET first_name = $1`)).
			WillReturnError(sql.ErrNoRows)

		// Act
		err := repo.UpdateCustomer(ctx, customer)

		// Assert
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
