package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/pos-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-platform/internal/errors"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MsgPaymentInProgress  = "A payment is already being processed"
	MsgPaymentFailed      = "Payment processing failed"
	MsgPersistenceFailed  = "Transaction completed but there was an error saving the record"
	MsgWalletUpdateFailed = "Payment recorded but the customer tab could not be updated"
	MsgCardApproved       = "Card payment processed successfully"
	MsgTabCharged         = "Transaction added to customer tab"
)

type State int

const (
	StateIdle State = iota
	StateValidating
	StateCharging
	StatePersisting
	StateSucceeded
)

var stateNames = [...]string{"idle", "validating", "charging", "persisting", "succeeded"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}

	return stateNames[s]
}

// PaymentIntent carries everything one payment attempt needs. The total is
// passed in on every attempt rather than read from the cart.
type PaymentIntent struct {
	State      models.PaymentState
	Total      decimal.Decimal
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Items      []models.LineItem
	CustomerID *uuid.UUID
	// TabID is set when the payment settles an open tab instead of
	// recording a new sale.
	TabID *uuid.UUID
}

// Outcome is the result of one payment attempt. Err is set when the payment
// did not go through; Warning is set when it did but a follow-up step failed.
type Outcome struct {
	Succeeded   bool
	Message     string
	Transaction *models.Transaction
	Change      decimal.Decimal
	Err         error
	Warning     error
}

type ProcessorOption func(*Processor)

// WithTransitionHook is called after every state change, outside the lock.
func WithTransitionHook(hook func(from, to State)) ProcessorOption {
	return func(p *Processor) {
		p.onTransition = hook
	}
}

func WithClock(now func() time.Time) ProcessorOption {
	return func(p *Processor) {
		p.now = now
	}
}

// Processor runs a payment through validation, charging and persistence.
// Only one attempt can be in flight at a time.
type Processor struct {
	gateway      Gateway
	wallet       WalletUpdater
	cards        CardCharger
	giftCards    GiftCardRedeemer
	notifier     Notifier
	onTransition func(from, to State)
	now          func() time.Time

	mu    sync.Mutex
	state State
}

func NewProcessor(gateway Gateway, wallet WalletUpdater, cards CardCharger, giftCards GiftCardRedeemer, notifier Notifier, opts ...ProcessorOption) *Processor {
	if cards == nil {
		cards = &SimulatedCardCharger{}
	}

	if giftCards == nil {
		giftCards = LoggingGiftCardRedeemer{}
	}

	if notifier == nil {
		notifier = LogNotifier{}
	}

	p := &Processor{
		gateway:   gateway,
		wallet:    wallet,
		cards:     cards,
		giftCards: giftCards,
		notifier:  notifier,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Processor) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

func (p *Processor) Submit(ctx context.Context, intent PaymentIntent) Outcome {
	if !p.begin() {
		err := errors.PaymentInProgressError(MsgPaymentInProgress)
		p.notifier.Notify(ctx, models.NoticeError, err.Message)

		return Outcome{Message: err.Message, Err: err}
	}

	if err := ValidatePayment(intent.State, intent.Total); err != nil {
		return p.fail(ctx, err)
	}

	if giftCard, ok := intent.State.(models.GiftCardPayment); ok {
		return p.redeemGiftCard(ctx, giftCard, intent.Total)
	}

	// no cancellation once money may have moved
	ctx = context.WithoutCancel(ctx)
	logger := middleware.LoggerFromContext(ctx)

	p.transition(StateCharging)

	reference, err := p.charge(ctx, intent)
	if err != nil {
		logger.Error("Payment charge failed", slog.String("method", string(intent.State.Method())), slog.String("error", err.Error()))
		return p.fail(ctx, errors.ChargeFailedError(MsgPaymentFailed).WithError(err))
	}

	p.transition(StatePersisting)

	tx := p.buildTransaction(intent, reference)

	id, err := p.persist(ctx, intent, tx)
	if err != nil {
		logger.Error("Failed to persist transaction after charge",
			slog.String("method", string(tx.PaymentMethod)),
			slog.String("total", tx.Total.StringFixed(currencyPlaces)),
			slog.String("chargeReference", reference),
			slog.String("error", err.Error()),
		)

		return p.fail(ctx, errors.PersistenceFailedError(MsgPersistenceFailed).WithError(err))
	}

	tx.ID = id

	p.transition(StateSucceeded)

	outcome := Outcome{Succeeded: true, Transaction: tx}

	if intent.State.Method() == models.PaymentMethodTab {
		if err := p.chargeTab(ctx, intent, id); err != nil {
			logger.Error("Failed to update customer tab", slog.String("transactionID", id.String()), slog.String("error", err.Error()))

			warning := errors.WalletUpdateFailedError(MsgWalletUpdateFailed).WithError(err)
			p.notifier.Notify(ctx, models.NoticeWarning, warning.Message)
			outcome.Warning = warning
		}
	}

	outcome.Message, outcome.Change = confirmation(intent)
	p.notifier.Notify(ctx, models.NoticeSuccess, outcome.Message)

	logger.Info("Payment completed", slog.String("transactionID", id.String()), slog.String("method", string(tx.PaymentMethod)))

	p.transition(StateIdle)

	return outcome
}

func (p *Processor) begin() bool {
	p.mu.Lock()

	if p.state != StateIdle {
		p.mu.Unlock()
		return false
	}

	p.state = StateValidating
	p.mu.Unlock()

	p.fire(StateIdle, StateValidating)

	return true
}

func (p *Processor) transition(to State) {
	p.mu.Lock()
	from := p.state
	p.state = to
	p.mu.Unlock()

	p.fire(from, to)
}

func (p *Processor) fire(from, to State) {
	if p.onTransition != nil {
		p.onTransition(from, to)
	}
}

func (p *Processor) fail(ctx context.Context, err error) Outcome {
	message := MsgPaymentFailed
	if appErr, ok := errors.IsAppError(err); ok {
		message = appErr.Message
	}

	p.notifier.Notify(ctx, models.NoticeError, message)
	p.transition(StateIdle)

	return Outcome{Message: message, Err: err}
}

func (p *Processor) redeemGiftCard(ctx context.Context, giftCard models.GiftCardPayment, total decimal.Decimal) Outcome {
	p.transition(StateCharging)

	if err := p.giftCards.Redeem(ctx, giftCard.CardCode, total); err != nil {
		middleware.LoggerFromContext(ctx).Error("Gift card redemption failed", slog.String("error", err.Error()))
		return p.fail(ctx, errors.ChargeFailedError(MsgPaymentFailed).WithError(err))
	}

	p.transition(StateSucceeded)

	message := fmt.Sprintf("Payment completed using gift card: %s", giftCard.CardCode)
	p.notifier.Notify(ctx, models.NoticeSuccess, message)

	p.transition(StateIdle)

	return Outcome{Succeeded: true, Message: message}
}

func (p *Processor) persist(ctx context.Context, intent PaymentIntent, tx *models.Transaction) (uuid.UUID, error) {
	if intent.TabID == nil {
		return p.gateway.InsertTransaction(ctx, tx)
	}

	if err := p.gateway.SettleTab(ctx, *intent.TabID, tx); err != nil {
		return uuid.Nil, err
	}

	return *intent.TabID, nil
}

func (p *Processor) charge(ctx context.Context, intent PaymentIntent) (string, error) {
	card, ok := intent.State.(models.CardPayment)
	if !ok {
		return "", nil
	}

	return p.cards.Charge(ctx, CardChargeRequest{
		Card:           card,
		Amount:         intent.Total,
		Description:    fmt.Sprintf("POS sale of %d line items", len(intent.Items)),
		IdempotencyKey: uuid.NewString(),
	})
}

func (p *Processor) chargeTab(ctx context.Context, intent PaymentIntent, transactionID uuid.UUID) error {
	if p.wallet == nil {
		return fmt.Errorf("no wallet ledger configured")
	}

	customerID := uuid.Nil
	if intent.CustomerID != nil {
		customerID = *intent.CustomerID
	}

	return p.wallet.ApplyCharge(ctx, customerID, intent.Total, transactionID)
}

func (p *Processor) buildTransaction(intent PaymentIntent, reference string) *models.Transaction {
	now := p.now().UTC()

	items := make([]models.LineItem, len(intent.Items))
	for i, item := range intent.Items {
		items[i] = cloneItem(item)
	}

	return &models.Transaction{
		Items:           items,
		Subtotal:        intent.Subtotal,
		Tax:             intent.Tax,
		Total:           intent.Total,
		PaymentMethod:   intent.State.Method(),
		CustomerID:      copyUUID(intent.CustomerID),
		Status:          models.TransactionStatusCompleted,
		ChargeReference: reference,
		CreatedAt:       now,
		CompletedAt:     &now,
	}
}

func confirmation(intent PaymentIntent) (string, decimal.Decimal) {
	switch s := intent.State.(type) {
	case models.CashPayment:
		change := CalculateChange(s.AmountTendered, intent.Total)
		return fmt.Sprintf("Payment complete. Change: %s", FormatCurrency(change)), change
	case models.CardPayment:
		return MsgCardApproved, decimal.Zero
	case models.CheckPayment:
		return fmt.Sprintf("Check #%s accepted", s.CheckNumber), decimal.Zero
	case models.TabPayment:
		return MsgTabCharged, decimal.Zero
	}

	return "Payment complete", decimal.Zero
}
