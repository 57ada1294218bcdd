package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/pos-platform/internal/errors"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	repository "github.com/aaravmahajanofficial/pos-platform/internal/repositories"
	"github.com/aaravmahajanofficial/pos-platform/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/pos-platform/internal/services"
	serviceMocks "github.com/aaravmahajanofficial/pos-platform/internal/services/mocks"
	stripeMocks "github.com/aaravmahajanofficial/pos-platform/pkg/stripe/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
)

type transactionServiceFixture struct {
	service       service.TransactionService
	repo          *mocks.TransactionRepository
	stripe        *stripeMocks.MockClient
	notifications *serviceMocks.NotificationService
}

func setupTransactionServiceTest(t *testing.T) transactionServiceFixture {
	f := transactionServiceFixture{
		repo:          mocks.NewTransactionRepository(t),
		stripe:        stripeMocks.NewMockClient(t),
		notifications: serviceMocks.NewNotificationService(t),
	}
	f.service = service.NewTransactionService(f.repo, f.stripe, f.notifications)

	return f
}

func completedTransaction(method models.PaymentMethod, reference string) *models.Transaction {
	return &models.Transaction{
		ID: uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e"),
		Items: []models.LineItem{
			{ProductID: uuid.New(), Name: "Bagel", UnitPrice: decimal.RequireFromString("2.50"), Quantity: 2},
		},
		Subtotal:        decimal.RequireFromString("5.00"),
		Tax:             decimal.RequireFromString("0.40"),
		Total:           decimal.RequireFromString("5.40"),
		PaymentMethod:   method,
		Status:          models.TransactionStatusCompleted,
		ChargeReference: reference,
		CreatedAt:       time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := setupTransactionServiceTest(t)
		filter := models.TransactionFilter{Status: models.TransactionStatusCompleted}

		f.repo.On("ListTransactions", mock.Anything, filter, 1, 10).Return([]*models.Transaction{completedTransaction(models.PaymentMethodCash, "")}, 1, nil).Once()

		list, total, err := f.service.ListTransactions(ctx, filter, 1, 10)

		require.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, 1, total)
	})

	t.Run("Failure - Inverted amount range", func(t *testing.T) {
		f := setupTransactionServiceTest(t)
		filter := models.TransactionFilter{
			MinimumAmount: ptr(decimal.NewFromInt(50)),
			MaximumAmount: ptr(decimal.NewFromInt(10)),
		}

		_, _, err := f.service.ListTransactions(ctx, filter, 1, 10)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeBadRequest))
	})
}

func TestRefundTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Card refunded through Stripe", func(t *testing.T) {
		f := setupTransactionServiceTest(t)
		tx := completedTransaction(models.PaymentMethodCard, "pi_123")

		f.repo.On("GetTransactionByID", mock.Anything, tx.ID).Return(tx, nil).Once()
		f.stripe.On("RefundPayment", "pi_123", int64(540)).Return(&stripe.Refund{ID: "re_1"}, nil).Once()
		f.repo.On("UpdateStatus", mock.Anything, tx.ID, models.TransactionStatusCompleted, models.TransactionStatusRefunded).Return(nil).Once()

		refunded, err := f.service.RefundTransaction(ctx, tx.ID, models.RoleManager)

		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusRefunded, refunded.Status)
	})

	t.Run("Success - Cash skips Stripe", func(t *testing.T) {
		f := setupTransactionServiceTest(t)
		tx := completedTransaction(models.PaymentMethodCash, "")

		f.repo.On("GetTransactionByID", mock.Anything, tx.ID).Return(tx, nil).Once()
		f.repo.On("UpdateStatus", mock.Anything, tx.ID, models.TransactionStatusCompleted, models.TransactionStatusRefunded).Return(nil).Once()

		_, err := f.service.RefundTransaction(ctx, tx.ID, models.RoleAdmin)

		require.NoError(t, err)
	})

	t.Run("Failure - Cashier forbidden", func(t *testing.T) {
		f := setupTransactionServiceTest(t)

		_, err := f.service.RefundTransaction(ctx, uuid.New(), models.RoleCashier)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeForbidden))
	})

	t.Run("Failure - Already refunded", func(t *testing.T) {
		f := setupTransactionServiceTest(t)
		tx := completedTransaction(models.PaymentMethodCash, "")
		tx.Status = models.TransactionStatusRefunded

		f.repo.On("GetTransactionByID", mock.Anything, tx.ID).Return(tx, nil).Once()

		_, err := f.service.RefundTransaction(ctx, tx.ID, models.RoleManager)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeInvalidTransition))
	})

	t.Run("Failure - Stripe error leaves status untouched", func(t *testing.T) {
		f := setupTransactionServiceTest(t)
		tx := completedTransaction(models.PaymentMethodCard, "pi_123")

		f.repo.On("GetTransactionByID", mock.Anything, tx.ID).Return(tx, nil).Once()
		f.stripe.On("RefundPayment", "pi_123", int64(540)).Return(nil, errors.New("charge already refunded")).Once()

		_, err := f.service.RefundTransaction(ctx, tx.ID, models.RoleManager)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeThirdPartyError))
	})

	t.Run("Failure - Concurrent refund", func(t *testing.T) {
		f := setupTransactionServiceTest(t)
		tx := completedTransaction(models.PaymentMethodCheck, "")

		f.repo.On("GetTransactionByID", mock.Anything, tx.ID).Return(tx, nil).Once()
		f.repo.On("UpdateStatus", mock.Anything, tx.ID, models.TransactionStatusCompleted, models.TransactionStatusRefunded).Return(repository.ErrStaleStatus).Once()

		_, err := f.service.RefundTransaction(ctx, tx.ID, models.RoleManager)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeInvalidTransition))
	})
}

func TestSendReceipt(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Sanitised message and subject", func(t *testing.T) {
		f := setupTransactionServiceTest(t)
		tx := completedTransaction(models.PaymentMethodCash, "")

		f.repo.On("GetTransactionByID", mock.Anything, tx.ID).Return(tx, nil).Once()
		f.notifications.On("SendEmail", mock.Anything, mock.MatchedBy(func(req *models.EmailNotificationRequest) bool {
			return req.To == "guest@example.com" &&
				req.Subject == "Receipt from Transaction #0f8fad5b" &&
				assert.Contains(t, req.Content, "2 x Bagel @ $2.50 = $5.00") &&
				assert.Contains(t, req.Content, "Total: $5.40") &&
				assert.Contains(t, req.Content, "See you soon") &&
				assert.NotContains(t, req.Content, "<b>") &&
				req.Metadata["transaction_id"] == tx.ID.String()
		})).Return(&models.NotificationResponse{ID: uuid.New(), Status: models.StatusSent}, nil).Once()

		resp, err := f.service.SendReceipt(ctx, tx.ID, &models.SendReceiptRequest{Recipient: "guest@example.com", Message: "<b>See you soon</b>"})

		require.NoError(t, err)
		assert.Equal(t, models.StatusSent, resp.Status)
	})

	t.Run("Failure - Unknown transaction", func(t *testing.T) {
		f := setupTransactionServiceTest(t)
		id := uuid.New()

		f.repo.On("GetTransactionByID", mock.Anything, id).Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.SendReceipt(ctx, id, &models.SendReceiptRequest{Recipient: "guest@example.com"})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})
}

func TestHandleStripeWebhook(t *testing.T) {
	ctx := context.Background()
	payload := []byte(`{"id":"evt_1"}`)

	refundedEvent := func(raw string) stripe.Event {
		return stripe.Event{ID: "evt_1", Type: "charge.refunded", Data: &stripe.EventData{Raw: json.RawMessage(raw)}}
	}

	t.Run("Success - Marks transaction refunded", func(t *testing.T) {
		f := setupTransactionServiceTest(t)
		tx := completedTransaction(models.PaymentMethodCard, "pi_123")

		f.stripe.On("VerifyWebhookSignature", payload, "sig").Return(refundedEvent(`{"id":"ch_1","payment_intent":"pi_123"}`), nil).Once()
		f.repo.On("FindByChargeReference", mock.Anything, "pi_123").Return(tx, nil).Once()
		f.repo.On("UpdateStatus", mock.Anything, tx.ID, models.TransactionStatusCompleted, models.TransactionStatusRefunded).Return(nil).Once()

		assert.NoError(t, f.service.HandleStripeWebhook(ctx, payload, "sig"))
	})

	t.Run("Success - Other events ignored", func(t *testing.T) {
		f := setupTransactionServiceTest(t)

		f.stripe.On("VerifyWebhookSignature", payload, "sig").Return(stripe.Event{ID: "evt_2", Type: "payment_intent.created"}, nil).Once()

		assert.NoError(t, f.service.HandleStripeWebhook(ctx, payload, "sig"))
	})

	t.Run("Success - Unknown charge ignored", func(t *testing.T) {
		f := setupTransactionServiceTest(t)

		f.stripe.On("VerifyWebhookSignature", payload, "sig").Return(refundedEvent(`{"id":"ch_2","payment_intent":"pi_999"}`), nil).Once()
		f.repo.On("FindByChargeReference", mock.Anything, "pi_999").Return(nil, repository.ErrNotFound).Once()

		assert.NoError(t, f.service.HandleStripeWebhook(ctx, payload, "sig"))
	})

	t.Run("Failure - Bad signature", func(t *testing.T) {
		f := setupTransactionServiceTest(t)

		f.stripe.On("VerifyWebhookSignature", payload, "bad").Return(stripe.Event{}, errors.New("signature mismatch")).Once()

		err := f.service.HandleStripeWebhook(ctx, payload, "bad")

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeBadRequest))
	})
}
