package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/pos-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	"github.com/aaravmahajanofficial/pos-platform/pkg/stripe"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CardChargeRequest struct {
	Card           models.CardPayment
	Amount         decimal.Decimal
	Description    string
	IdempotencyKey string
}

// CardCharger settles a card payment and returns the processor's reference.
type CardCharger interface {
	Charge(ctx context.Context, req CardChargeRequest) (string, error)
}

// SimulatedCardCharger always succeeds after Delay.
type SimulatedCardCharger struct {
	Delay time.Duration
}

func NewSimulatedCardCharger(delay time.Duration) *SimulatedCardCharger {
	return &SimulatedCardCharger{Delay: delay}
}

func (c *SimulatedCardCharger) Charge(ctx context.Context, req CardChargeRequest) (string, error) {
	if c.Delay > 0 {
		timer := time.NewTimer(c.Delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return "sim_" + uuid.NewString(), nil
}

type StripeCardCharger struct {
	client   stripe.Client
	currency string
}

func NewStripeCardCharger(client stripe.Client, currency string) *StripeCardCharger {
	return &StripeCardCharger{client: client, currency: currency}
}

func (c *StripeCardCharger) Charge(ctx context.Context, req CardChargeRequest) (string, error) {
	logger := middleware.LoggerFromContext(ctx)

	intent, err := c.client.CreatePaymentIntent(ToMinorUnits(req.Amount), c.currency, req.Description, req.IdempotencyKey)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	method, err := c.client.CreateCardPaymentMethod(stripe.Card{
		Number:   req.Card.CardNumber,
		ExpMonth: req.Card.ExpiryMonth,
		ExpYear:  req.Card.ExpiryYear,
		CVC:      req.Card.CVC,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create payment method: %w", err)
	}

	if err := c.client.AttachPaymentMethodToIntent(method.ID, intent.ID); err != nil {
		return "", fmt.Errorf("failed to attach payment method: %w", err)
	}

	confirmed, err := c.client.ConfirmPaymentIntent(intent.ID)
	if err != nil {
		return "", fmt.Errorf("failed to confirm payment intent: %w", err)
	}

	if confirmed.Status != stripe.StatusSucceeded {
		logger.Warn("Card charge not settled", slog.String("paymentIntentID", intent.ID), slog.String("status", string(confirmed.Status)))
		return "", fmt.Errorf("payment intent %s ended in status %s", intent.ID, confirmed.Status)
	}

	logger.Info("Card charge settled", slog.String("paymentIntentID", intent.ID))

	return intent.ID, nil
}

// ToMinorUnits converts a currency amount to cents.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(currencyPlaces).Round(0).IntPart()
}

// LoggingGiftCardRedeemer stands in for the external gift card flow and only
// records the hand-off.
type LoggingGiftCardRedeemer struct{}

func (LoggingGiftCardRedeemer) Redeem(ctx context.Context, code string, amount decimal.Decimal) error {
	if code == "" {
		return fmt.Errorf("gift card code is required")
	}

	middleware.LoggerFromContext(ctx).Info("Gift card redemption handed off",
		slog.String("code", code),
		slog.String("amount", amount.StringFixed(currencyPlaces)),
	)

	return nil
}
