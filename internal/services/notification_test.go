package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/pos-platform/internal/errors"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	repository "github.com/aaravmahajanofficial/pos-platform/internal/repositories"
	"github.com/aaravmahajanofficial/pos-platform/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/pos-platform/internal/services"
	emailMocks "github.com/aaravmahajanofficial/pos-platform/pkg/sendGrid/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupNotificationServiceTest(t *testing.T) (service.NotificationService, *mocks.NotificationRepository, *emailMocks.EmailService) {
	notificationRepo := mocks.NewNotificationRepository(t)
	emailService := emailMocks.NewEmailService(t)

	return service.NewNotificationService(notificationRepo, emailService), notificationRepo, emailService
}

func TestNotificationService_SendEmail(t *testing.T) {
	ctx := context.Background()
	req := &models.EmailNotificationRequest{
		To:       "customer@example.com",
		Subject:  "Your receipt",
		Content:  "Thanks for shopping",
		Metadata: map[string]string{"transaction_id": "abc"},
	}

	t.Run("Success", func(t *testing.T) {
		notificationService, notificationRepo, emailService := setupNotificationServiceTest(t)

		notificationRepo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
			var metadata map[string]string

			return n.Status == models.StatusPending &&
				n.Recipient == req.To &&
				json.Unmarshal(n.Metadata, &metadata) == nil && metadata["transaction_id"] == "abc"
		})).Return(nil).Once()
		emailService.On("Send", mock.Anything, req).Return(nil).Once()
		notificationRepo.On("UpdateNotificationStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), models.StatusSent, "").Return(nil).Once()

		resp, err := notificationService.SendEmail(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, models.StatusSent, resp.Status)
		assert.Equal(t, req.To, resp.Recipient)
		assert.NotEqual(t, uuid.Nil, resp.ID)
	})

	t.Run("Failure - SendGrid rejects", func(t *testing.T) {
		notificationService, notificationRepo, emailService := setupNotificationServiceTest(t)

		notificationRepo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil).Once()
		emailService.On("Send", mock.Anything, req).Return(errors.New("401 unauthorized")).Once()
		notificationRepo.On("UpdateNotificationStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), models.StatusFailed, "401 unauthorized").Return(nil).Once()

		resp, err := notificationService.SendEmail(ctx, req)

		assert.Nil(t, resp)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeThirdPartyError))
	})

	t.Run("Failure - Record not created", func(t *testing.T) {
		notificationService, notificationRepo, _ := setupNotificationServiceTest(t)

		notificationRepo.On("CreateNotification", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

		resp, err := notificationService.SendEmail(ctx, req)

		assert.Nil(t, resp)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeDatabaseError))
	})
}

func TestNotificationService_GetAndList(t *testing.T) {
	ctx := context.Background()

	t.Run("Get - Not found", func(t *testing.T) {
		notificationService, notificationRepo, _ := setupNotificationServiceTest(t)
		id := uuid.New()

		notificationRepo.On("GetNotificationByID", mock.Anything, id).Return(nil, repository.ErrNotFound).Once()

		notification, err := notificationService.GetNotification(ctx, id)

		assert.Nil(t, notification)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})

	t.Run("List - Success", func(t *testing.T) {
		notificationService, notificationRepo, _ := setupNotificationServiceTest(t)
		list := []*models.Notification{{ID: uuid.New()}, {ID: uuid.New()}}

		notificationRepo.On("ListNotifications", mock.Anything, 2, 5).Return(list, 7, nil).Once()

		got, total, err := notificationService.ListNotifications(ctx, 2, 5)

		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, 7, total)
	})
}
