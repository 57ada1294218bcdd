package stripe

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/paymentmethod"
	"github.com/stripe/stripe-go/v81/refund"
	"github.com/stripe/stripe-go/v81/webhook"
)

type (
	Charge        = stripe.Charge
	Event         = stripe.Event
	PaymentIntent = stripe.PaymentIntent
	Refund        = stripe.Refund
)

const (
	EventChargeRefunded = "charge.refunded"
	StatusSucceeded     = stripe.PaymentIntentStatusSucceeded
)

type Card struct {
	Number   string
	ExpMonth string
	ExpYear  string
	CVC      string
}

// Client is the subset of the Stripe API the till uses for card-present
// charges and refunds.
type Client interface {
	CreatePaymentIntent(amount int64, currency, description, idempotencyKey string) (*stripe.PaymentIntent, error)
	CreateCardPaymentMethod(card Card) (*stripe.PaymentMethod, error)
	AttachPaymentMethodToIntent(paymentMethodID, paymentIntentID string) error
	ConfirmPaymentIntent(paymentIntentID string) (*stripe.PaymentIntent, error)
	RefundPayment(paymentIntentID string, amount int64) (*stripe.Refund, error)
	VerifyWebhookSignature(payload []byte, signature string) (Event, error)
}

type stripeClient struct {
	webhookSecret string
}

func NewStripeClient(apiKey string, webhookSecret string) Client {
	stripe.Key = apiKey

	return &stripeClient{webhookSecret: webhookSecret}
}

func (s *stripeClient) CreatePaymentIntent(amount int64, currency, description, idempotencyKey string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		Description:        stripe.String(description),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}

	return paymentintent.New(params)
}

func (s *stripeClient) CreateCardPaymentMethod(card Card) (*stripe.PaymentMethod, error) {
	expMonth, err := strconv.ParseInt(card.ExpMonth, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid card expiration month: %w", err)
	}

	expYear, err := strconv.ParseInt(card.ExpYear, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid card expiration year: %w", err)
	}

	// two digit years are entered on the till keypad
	if expYear < 100 {
		expYear += 2000
	}

	params := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.Int64(expMonth),
			ExpYear:  stripe.Int64(expYear),
			CVC:      stripe.String(card.CVC),
		},
	}

	return paymentmethod.New(params)
}

func (s *stripeClient) AttachPaymentMethodToIntent(paymentMethodID string, paymentIntentID string) error {
	params := &stripe.PaymentIntentParams{
		PaymentMethod: stripe.String(paymentMethodID),
	}

	_, err := paymentintent.Update(paymentIntentID, params)

	return err
}

func (s *stripeClient) ConfirmPaymentIntent(paymentIntentID string) (*stripe.PaymentIntent, error) {
	return paymentintent.Confirm(paymentIntentID, &stripe.PaymentIntentConfirmParams{})
}

// RefundPayment refunds amount minor units of the intent.
func (s *stripeClient) RefundPayment(paymentIntentID string, amount int64) (*stripe.Refund, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Amount:        stripe.Int64(amount),
	}

	return refund.New(params)
}

func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	if s.webhookSecret == "" {
		return Event{}, errors.New("webhook secret not configured")
	}

	return webhook.ConstructEvent(payload, signature, s.webhookSecret)
}
