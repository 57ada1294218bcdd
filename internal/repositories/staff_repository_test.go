package repository_test

import (
	"database/sql"
	"errors"
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

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return db, mock
}

func TestStaffRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewStaffRepo(db)
	ctx := t.Context()

	insertSQL := regexp.QuoteMeta(`INSERT INTO staff(name, email, password, role, created_at, updated_at)`)
	selectByEmailSQL := regexp.QuoteMeta(`SELECT id, name, email, password, role, created_at, updated_at FROM staff WHERE email = $1`)

	t.Run("CreateStaff_Success", func(t *testing.T) {
		// Arrange
		staff := &models.Staff{Name: "Till One", Email: "till@example.com", Password: "hash", Role: models.RoleCashier}
		newID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(insertSQL).
			WithArgs(staff.Name, staff.Email, staff.Password, staff.Role).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(newID.String(), now, now))

		// Act
		err := repo.CreateStaff(ctx, staff)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, newID, staff.ID)
		assert.WithinDuration(t, now, staff.CreatedAt, time.Second)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CreateStaff_DuplicateEmail", func(t *testing.T) {
		// Arrange
		staff := &models.Staff{Name: "Till Two", Email: "dup@example.com", Password: "hash", Role: models.RoleCashier}

		mock.ExpectQuery(insertSQL).
			WithArgs(staff.Name, staff.Email, staff.Password, staff.Role).
			WillReturnError(&pq.Error{Code: "23505"})

		// Act
		err := repo.CreateStaff(ctx, staff)

		// Assert
		assert.ErrorIs(t, err, repository.ErrDuplicateEntry)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetStaffByEmail_Success", func(t *testing.T) {
		// Arrange
		id := uuid.New()
		now := time.Now()

		mock.ExpectQuery(selectByEmailSQL).
			WithArgs("manager@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "role", "created_at", "updated_at"}).
				AddRow(id.String(), "Manager", "manager@example.com", "hash", "manager", now, now))

		// Act
		staff, err := repo.GetStaffByEmail(ctx, "manager@example.com")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, id, staff.ID)
		assert.Equal(t, models.RoleManager, staff.Role)
		assert.Equal(t, "hash", staff.Password)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetStaffByEmail_NotFound", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(selectByEmailSQL).
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		// Act
		staff, err := repo.GetStaffByEmail(ctx, "missing@example.com")

		// Assert
		assert.Nil(t, staff)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetStaffByID_DatabaseError", func(t *testing.T) {
		// Arrange
		id := uuid.New()
		dbErr := errors.New("connection reset")

		mock.ExpectQuery(regexp.QuoteMeta(`FROM staff WHERE id = $1`)).
			WithArgs(id).
			WillReturnError(dbErr)

		// Act
		staff, err := repo.GetStaffByID(ctx, id)

		// Assert
		assert.Nil(t, staff)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
