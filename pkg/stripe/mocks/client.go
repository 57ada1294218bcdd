package mocks

import (
	stripeclient "github.com/aaravmahajanofficial/pos-platform/pkg/stripe"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v81"
)

type MockClient struct {
	mock.Mock
}

func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockClient) CreatePaymentIntent(amount int64, currency, description, idempotencyKey string) (*stripe.PaymentIntent, error) {
	args := m.Called(amount, currency, description, idempotencyKey)
	pi, _ := args.Get(0).(*stripe.PaymentIntent)

	return pi, args.Error(1)
}

func (m *MockClient) CreateCardPaymentMethod(card stripeclient.Card) (*stripe.PaymentMethod, error) {
	args := m.Called(card)
	pm, _ := args.Get(0).(*stripe.PaymentMethod)

	return pm, args.Error(1)
}

func (m *MockClient) AttachPaymentMethodToIntent(paymentMethodID, paymentIntentID string) error {
	args := m.Called(paymentMethodID, paymentIntentID)

	return args.Error(0)
}

func (m *MockClient) ConfirmPaymentIntent(paymentIntentID string) (*stripe.PaymentIntent, error) {
	args := m.Called(paymentIntentID)
	pi, _ := args.Get(0).(*stripe.PaymentIntent)

	return pi, args.Error(1)
}

func (m *MockClient) RefundPayment(paymentIntentID string, amount int64) (*stripe.Refund, error) {
	args := m.Called(paymentIntentID, amount)
	r, _ := args.Get(0).(*stripe.Refund)

	return r, args.Error(1)
}

func (m *MockClient) VerifyWebhookSignature(payload []byte, signature string) (stripe.Event, error) {
	args := m.Called(payload, signature)
	event, _ := args.Get(0).(stripe.Event)

	return event, args.Error(1)
}
