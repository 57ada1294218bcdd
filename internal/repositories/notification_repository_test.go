package repository_test

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	repository "github.com/aaravmahajanofficial/pos-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var notificationRowColumns = []string{"id", "type", "recipient", "subject", "content", "status", "error_message", "metadata", "created_at", "updated_at", "sent_at"}

func TestNotificationRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewNotificationRepo(db)
	ctx := t.Context()

	t.Run("CreateNotification", func(t *testing.T) {
		// Arrange
		notification := &models.Notification{
			ID:        uuid.New(),
			Type:      models.NotificationTypeEmail,
			Recipient: "customer@example.com",
			Subject:   "Receipt from Transaction #1234abcd",
			Content:   "Thanks for shopping",
			Status:    models.StatusPending,
			Metadata:  json.RawMessage(`{"transaction_id":"1234"}`),
		}
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO notifications (id, type, recipient, subject, content, status, error_message, metadata, created_at, updated_at)`)).
			WithArgs(notification.ID, notification.Type, notification.Recipient, notification.Subject, notification.Content, notification.Status, "", []byte(notification.Metadata)).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		// Act
		err := repo.CreateNotification(ctx, notification)

		// Assert
		require.NoError(t, err)
		assert.WithinDuration(t, now, notification.CreatedAt, time.Second)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetNotificationByID_NotFound", func(t *testing.T) {
		// Arrange
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM notifications WHERE id = $1`)).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(notificationRowColumns))

		// Act
		notification, err := repo.GetNotificationByID(ctx, id)

		// Assert
		assert.Nil(t, notification)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateNotificationStatus_NotFound", func(t *testing.T) {
		// Arrange
		id := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE notifications SET status = $1, error_message = $2`)).
			WithArgs(models.StatusSent, "", id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.UpdateNotificationStatus(ctx, id, models.StatusSent, "")

		// Assert
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListNotifications", func(t *testing.T) {
		// Arrange
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM notifications`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC LIMIT $1 OFFSET $2`)).
			WithArgs(10, 0).
			WillReturnRows(sqlmock.NewRows(notificationRowColumns).
				AddRow(uuid.NewString(), "email", "customer@example.com", "Receipt", "Thanks", "sent", "", nil, now, now, now))

		// Act
		notifications, total, err := repo.ListNotifications(ctx, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, notifications, 1)
		assert.Equal(t, models.StatusSent, notifications[0].Status)
		assert.Nil(t, notifications[0].Metadata)
		require.NotNil(t, notifications[0].SentAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
