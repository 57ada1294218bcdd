package service

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/pos-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-platform/internal/checkout"
	"github.com/aaravmahajanofficial/pos-platform/internal/errors"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	repository "github.com/aaravmahajanofficial/pos-platform/internal/repositories"
	"github.com/aaravmahajanofficial/pos-platform/pkg/stripe"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type TransactionService interface {
	ListTransactions(ctx context.Context, filter models.TransactionFilter, page, size int) ([]*models.Transaction, int, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	GetStats(ctx context.Context, from, to *time.Time) (*models.TransactionStats, error)
	RefundTransaction(ctx context.Context, id uuid.UUID, role models.StaffRole) (*models.Transaction, error)
	SendReceipt(ctx context.Context, id uuid.UUID, req *models.SendReceiptRequest) (*models.NotificationResponse, error)
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error
}

type transactionService struct {
	repo          repository.TransactionRepository
	stripeClient  stripe.Client
	notifications NotificationService
	sanitizer     *bluemonday.Policy
}

// NewTransactionService accepts a nil stripeClient when card payments are
// simulated; card refunds then skip the processor.
func NewTransactionService(repo repository.TransactionRepository, stripeClient stripe.Client, notifications NotificationService) TransactionService {
	return &transactionService{
		repo:          repo,
		stripeClient:  stripeClient,
		notifications: notifications,
		sanitizer:     bluemonday.StrictPolicy(),
	}
}

func (s *transactionService) ListTransactions(ctx context.Context, filter models.TransactionFilter, page, size int) ([]*models.Transaction, int, error) {
	if filter.MinimumAmount != nil && filter.MaximumAmount != nil && filter.MinimumAmount.GreaterThan(*filter.MaximumAmount) {
		return nil, 0, errors.BadRequestError("minAmount must not exceed maxAmount")
	}

	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, 0, errors.BadRequestError("from must not be after to")
	}

	transactions, total, err := s.repo.ListTransactions(ctx, filter, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list transactions").WithError(err)
	}

	return transactions, total, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	tx, err := s.repo.GetTransactionByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Transaction not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch transaction").WithError(err)
	}

	return tx, nil
}

func (s *transactionService) GetStats(ctx context.Context, from, to *time.Time) (*models.TransactionStats, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, errors.BadRequestError("from must not be after to")
	}

	stats, err := s.repo.GetStats(ctx, from, to)
	if err != nil {
		return nil, errors.DatabaseError("Failed to compute transaction stats").WithError(err)
	}

	return stats, nil
}

// RefundTransaction moves a completed transaction to refunded. Card sales
// charged through Stripe are refunded there first.
func (s *transactionService) RefundTransaction(ctx context.Context, id uuid.UUID, role models.StaffRole) (*models.Transaction, error) {
	if !role.CanRefund() {
		return nil, errors.ForbiddenError("Only managers can refund transactions")
	}

	tx, err := s.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if !tx.CanTransitionTo(models.TransactionStatusRefunded) {
		return nil, errors.InvalidTransitionError(fmt.Sprintf("Cannot refund a %s transaction", tx.Status))
	}

	logger := middleware.LoggerFromContext(ctx)

	if tx.PaymentMethod == models.PaymentMethodCard && tx.ChargeReference != "" && s.stripeClient != nil {
		refund, err := s.stripeClient.RefundPayment(tx.ChargeReference, checkout.ToMinorUnits(tx.Total))
		if err != nil {
			logger.Error("Stripe refund failed", slog.String("transactionID", id.String()), slog.String("error", err.Error()))
			return nil, errors.ThirdPartyError("Failed to refund card payment").WithError(err)
		}

		logger.Info("Stripe refund created", slog.String("transactionID", id.String()), slog.String("refundID", refund.ID))
	}

	if err := s.repo.UpdateStatus(ctx, id, models.TransactionStatusCompleted, models.TransactionStatusRefunded); err != nil {
		if stdErrors.Is(err, repository.ErrStaleStatus) {
			return nil, errors.InvalidTransitionError("Transaction was modified concurrently").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to refund transaction").WithError(err)
	}

	tx.Status = models.TransactionStatusRefunded

	logger.Info("Transaction refunded", slog.String("transactionID", id.String()), slog.String("total", tx.Total.StringFixed(2)))

	return tx, nil
}

func (s *transactionService) SendReceipt(ctx context.Context, id uuid.UUID, req *models.SendReceiptRequest) (*models.NotificationResponse, error) {
	tx, err := s.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Receipt from Transaction #%s", shortID(tx.ID))

	return s.notifications.SendEmail(ctx, &models.EmailNotificationRequest{
		To:       req.Recipient,
		Subject:  subject,
		Content:  renderReceipt(tx, subject, s.sanitizer.Sanitize(req.Message)),
		Metadata: map[string]string{"transaction_id": tx.ID.String()},
	})
}

// HandleStripeWebhook marks a completed card sale as refunded when the refund
// was issued from the Stripe dashboard. Other events are ignored.
func (s *transactionService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.stripeClient == nil {
		return errors.BadRequestError("Card processor is not configured")
	}

	event, err := s.stripeClient.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return errors.BadRequestError("Invalid webhook signature").WithError(err)
	}

	logger := middleware.LoggerFromContext(ctx).With(slog.String("eventID", event.ID), slog.String("eventType", string(event.Type)))

	if string(event.Type) != stripe.EventChargeRefunded {
		logger.Debug("Ignoring webhook event")
		return nil
	}

	if event.Data == nil {
		return errors.BadRequestError("Webhook event has no data")
	}

	var charge stripe.Charge
	if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
		return errors.BadRequestError("Invalid charge payload").WithError(err)
	}

	if charge.PaymentIntent == nil || charge.PaymentIntent.ID == "" {
		logger.Warn("Refunded charge has no payment intent")
		return nil
	}

	tx, err := s.repo.FindByChargeReference(ctx, charge.PaymentIntent.ID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			logger.Warn("No transaction for refunded charge", slog.String("paymentIntentID", charge.PaymentIntent.ID))
			return nil
		}

		return errors.DatabaseError("Failed to look up transaction").WithError(err)
	}

	if !tx.CanTransitionTo(models.TransactionStatusRefunded) {
		return nil
	}

	err = s.repo.UpdateStatus(ctx, tx.ID, models.TransactionStatusCompleted, models.TransactionStatusRefunded)
	if err != nil && !stdErrors.Is(err, repository.ErrStaleStatus) {
		return errors.DatabaseError("Failed to refund transaction").WithError(err)
	}

	logger.Info("Transaction refunded from webhook", slog.String("transactionID", tx.ID.String()))

	return nil
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func renderReceipt(tx *models.Transaction, title, message string) string {
	var b strings.Builder

	b.WriteString(title + "\n")
	b.WriteString(fmt.Sprintf("Date: %s\n\n", tx.CreatedAt.UTC().Format("2006-01-02 15:04")))

	for _, item := range tx.Items {
		b.WriteString(fmt.Sprintf("%d x %s @ %s = %s\n",
			item.Quantity, item.Name, checkout.FormatCurrency(item.UnitPrice), checkout.FormatCurrency(item.LineTotal())))
	}

	b.WriteString(fmt.Sprintf("\nSubtotal: %s\n", checkout.FormatCurrency(tx.Subtotal)))
	b.WriteString(fmt.Sprintf("Tax: %s\n", checkout.FormatCurrency(tx.Tax)))
	b.WriteString(fmt.Sprintf("Total: %s\n", checkout.FormatCurrency(tx.Total)))
	b.WriteString(fmt.Sprintf("Paid by: %s\n", tx.PaymentMethod))

	if tx.Status == models.TransactionStatusRefunded {
		b.WriteString("Status: refunded\n")
	}

	if message = strings.TrimSpace(message); message != "" {
		b.WriteString("\n" + message + "\n")
	}

	return b.String()
}
