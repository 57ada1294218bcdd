package service

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/pos-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-platform/internal/errors"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	repository "github.com/aaravmahajanofficial/pos-platform/internal/repositories"
	"github.com/aaravmahajanofficial/pos-platform/pkg/sendGrid"
	"github.com/google/uuid"
)

type NotificationService interface {
	SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.NotificationResponse, error)
	GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	ListNotifications(ctx context.Context, page, size int) ([]*models.Notification, int, error)
}

type notificationService struct {
	repo         repository.NotificationRepository
	emailService sendGrid.EmailService
}

func NewNotificationService(repo repository.NotificationRepository, emailService sendGrid.EmailService) NotificationService {
	return &notificationService{repo: repo, emailService: emailService}
}

// SendEmail records the notification as pending before handing it to
// SendGrid, then marks it sent or failed.
func (n *notificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.NotificationResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	var metadataJSON json.RawMessage

	if req.Metadata != nil {
		metadataBytes, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, errors.BadRequestError("Invalid notification metadata").WithError(err)
		}

		metadataJSON = metadataBytes
	}

	now := time.Now().UTC()

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeEmail,
		Recipient: req.To,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    models.StatusPending,
		Metadata:  metadataJSON,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return nil, errors.DatabaseError("Failed to create notification record").WithError(err)
	}

	if err := n.emailService.Send(ctx, req); err != nil {
		logger.Error("Failed to send email", slog.String("notificationID", notification.ID.String()), slog.String("error", err.Error()))

		if updateErr := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, err.Error()); updateErr != nil {
			logger.Warn("Failed to mark notification as failed", slog.String("error", updateErr.Error()))
		}

		return nil, errors.ThirdPartyError("Failed to send email").WithError(err)
	}

	notification.Status = models.StatusSent

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, ""); err != nil {
		return nil, errors.DatabaseError("Email sent but failed to update notification status").WithError(err)
	}

	return &models.NotificationResponse{
		ID:        notification.ID,
		Type:      notification.Type,
		Status:    notification.Status,
		Recipient: notification.Recipient,
		CreatedAt: notification.CreatedAt,
	}, nil
}

func (n *notificationService) GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	notification, err := n.repo.GetNotificationByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Notification not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch notification").WithError(err)
	}

	return notification, nil
}

func (n *notificationService) ListNotifications(ctx context.Context, page, size int) ([]*models.Notification, int, error) {
	notifications, total, err := n.repo.ListNotifications(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list notifications").WithError(err)
	}

	return notifications, total, nil
}
