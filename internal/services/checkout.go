package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/pos-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-platform/internal/checkout"
	"github.com/aaravmahajanofficial/pos-platform/internal/errors"
	"github.com/aaravmahajanofficial/pos-platform/internal/metrics"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/aaravmahajanofficial/pos-platform/internal/services"

type CheckoutService interface {
	CreateSession(ctx context.Context, customerID *uuid.UUID) (*models.SessionView, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.SessionView, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	AddItem(ctx context.Context, id uuid.UUID, req *models.AddItemRequest) (*models.SessionView, error)
	SetQuantity(ctx context.Context, id uuid.UUID, index, quantity int) (*models.SessionView, error)
	RemoveItem(ctx context.Context, id uuid.UUID, index int) (*models.SessionView, error)
	ClearCart(ctx context.Context, id uuid.UUID) (*models.SessionView, error)
	SetCustomer(ctx context.Context, id uuid.UUID, customerID *uuid.UUID) (*models.SessionView, error)
	SelectPaymentMethod(ctx context.Context, id uuid.UUID, method models.PaymentMethod) (*models.SessionView, error)
	UpdatePaymentInput(ctx context.Context, id uuid.UUID, req *models.PaymentInputRequest) (*models.SessionView, error)
	PressNumpad(ctx context.Context, id uuid.UUID, key string) (*models.SessionView, error)
	SubmitPayment(ctx context.Context, id uuid.UUID) (*models.PaymentResult, error)
	OpenTab(ctx context.Context, id uuid.UUID) (*models.OpenTabResult, error)
	LoadTab(ctx context.Context, id, transactionID uuid.UUID) (*models.SessionView, error)
	ExpireIdleSessions(ctx context.Context) int
}

// InventoryUpdater is told about every completed sale.
type InventoryUpdater interface {
	DecrementStock(ctx context.Context, items []models.LineItem) error
}

type CustomerDirectory interface {
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	RecordSpend(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*models.Customer, error)
}

// TabSource looks up previously opened tabs.
type TabSource interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
}

// CheckoutDeps are the collaborators shared by every session. Cards,
// GiftCards, Inventory, Customers and Tabs may be nil.
type CheckoutDeps struct {
	Catalog   checkout.Catalog
	TaxRules  checkout.TaxRuleSource
	Gateway   checkout.Gateway
	Wallet    checkout.WalletUpdater
	Cards     checkout.CardCharger
	GiftCards checkout.GiftCardRedeemer
	Inventory InventoryUpdater
	Customers CustomerDirectory
	Tabs      TabSource
}

type CheckoutConfig struct {
	DefaultTaxRate decimal.Decimal
	IdleTimeout    time.Duration
	Clock          func() time.Time
}

type session struct {
	mu          sync.Mutex
	id          uuid.UUID
	cart        *checkout.Cart
	payment     models.PaymentState
	tabID       *uuid.UUID
	submitting  bool
	processor   *checkout.Processor
	notices     *checkout.NoticeCollector
	rules       []models.TaxRule
	defaultRate decimal.Decimal
	lastUsed    time.Time
}

type checkoutService struct {
	deps CheckoutDeps
	cfg  CheckoutConfig

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

func NewCheckoutService(deps CheckoutDeps, cfg CheckoutConfig) CheckoutService {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return &checkoutService{
		deps:     deps,
		cfg:      cfg,
		sessions: make(map[uuid.UUID]*session),
	}
}

// CreateSession loads the tax rules once for the life of the session. When
// they cannot be loaded the configured default rate applies to every item.
func (s *checkoutService) CreateSession(ctx context.Context, customerID *uuid.UUID) (*models.SessionView, error) {
	logger := middleware.LoggerFromContext(ctx)

	if customerID != nil {
		if err := s.ensureCustomer(ctx, *customerID); err != nil {
			return nil, err
		}
	}

	rules, err := s.deps.TaxRules.GetRules(ctx)
	if err != nil {
		logger.Warn("Falling back to the default tax rate", slog.String("error", err.Error()))

		rules = nil
	}

	notices := checkout.NewNoticeCollector(checkout.LogNotifier{})

	sess := &session{
		id:          uuid.New(),
		cart:        checkout.NewCart(),
		notices:     notices,
		rules:       rules,
		defaultRate: checkout.DefaultRate(rules, s.cfg.DefaultTaxRate),
		lastUsed:    s.cfg.Clock(),
	}

	sess.processor = checkout.NewProcessor(
		s.deps.Gateway,
		s.deps.Wallet,
		s.deps.Cards,
		s.deps.GiftCards,
		notices,
		checkout.WithTransitionHook(func(from, to checkout.State) {
			metrics.RecordTransition(from.String(), to.String())
		}),
		checkout.WithClock(s.cfg.Clock),
	)

	sess.cart.SetCustomer(customerID)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	metrics.SessionOpened()
	logger.Info("Checkout session opened", slog.String("sessionID", sess.id.String()), slog.Int("taxRules", len(rules)))

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.view(), nil
}

func (s *checkoutService) GetSession(ctx context.Context, id uuid.UUID) (*models.SessionView, error) {
	return s.withSession(id, false, func(sess *session) error { return nil })
}

func (s *checkoutService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]

	if ok && sess.busy() {
		s.mu.Unlock()
		return errors.PaymentInProgressError(checkout.MsgPaymentInProgress)
	}

	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return errors.NotFoundError("Checkout session not found")
	}

	metrics.SessionClosed()
	middleware.LoggerFromContext(ctx).Info("Checkout session closed", slog.String("sessionID", id.String()))

	return nil
}

func (s *checkoutService) AddItem(ctx context.Context, id uuid.UUID, req *models.AddItemRequest) (*models.SessionView, error) {
	return s.withSession(id, true, func(sess *session) error {
		_, err := sess.cart.AddItem(ctx, s.deps.Catalog, req.ProductID, req.VariantID)
		return err
	})
}

func (s *checkoutService) SetQuantity(ctx context.Context, id uuid.UUID, index, quantity int) (*models.SessionView, error) {
	return s.withSession(id, true, func(sess *session) error {
		return sess.cart.SetQuantity(index, quantity)
	})
}

func (s *checkoutService) RemoveItem(ctx context.Context, id uuid.UUID, index int) (*models.SessionView, error) {
	return s.withSession(id, true, func(sess *session) error {
		return sess.cart.RemoveItem(index)
	})
}

func (s *checkoutService) ClearCart(ctx context.Context, id uuid.UUID) (*models.SessionView, error) {
	return s.withSession(id, true, func(sess *session) error {
		sess.cart.Clear()
		sess.payment = nil
		sess.tabID = nil

		return nil
	})
}

func (s *checkoutService) SetCustomer(ctx context.Context, id uuid.UUID, customerID *uuid.UUID) (*models.SessionView, error) {
	if customerID != nil {
		if err := s.ensureCustomer(ctx, *customerID); err != nil {
			return nil, err
		}
	}

	return s.withSession(id, true, func(sess *session) error {
		sess.cart.SetCustomer(customerID)
		return nil
	})
}

// SelectPaymentMethod starts a fresh input for method. Cash starts with the
// exact total tendered.
func (s *checkoutService) SelectPaymentMethod(ctx context.Context, id uuid.UUID, method models.PaymentMethod) (*models.SessionView, error) {
	return s.withSession(id, true, func(sess *session) error {
		state := models.NewPaymentState(method)
		if state == nil {
			return errors.AddValidationError("method", "unsupported payment method")
		}

		if _, ok := state.(models.CashPayment); ok {
			state = models.CashPayment{AmountTendered: sess.total().StringFixed(2)}
		}

		sess.payment = state

		return nil
	})
}

func (s *checkoutService) UpdatePaymentInput(ctx context.Context, id uuid.UUID, req *models.PaymentInputRequest) (*models.SessionView, error) {
	return s.withSession(id, true, func(sess *session) error {
		state := req.ToState()
		if state == nil {
			return errors.AddValidationError("method", "unsupported payment method")
		}

		sess.payment = state

		return nil
	})
}

func (s *checkoutService) PressNumpad(ctx context.Context, id uuid.UUID, key string) (*models.SessionView, error) {
	return s.withSession(id, true, func(sess *session) error {
		cash, ok := sess.payment.(models.CashPayment)
		if !ok {
			return errors.BadRequestError("The numpad is only available for cash payments")
		}

		if next, changed := checkout.ApplyNumpadInput(cash.AmountTendered, key); changed {
			sess.payment = models.CashPayment{AmountTendered: next}
		}

		return nil
	})
}

// SubmitPayment snapshots the session under its lock and marks it as
// submitting, then runs the processor without holding the lock. Until the
// outcome is applied every other submit and mutation on the session is
// answered with PAYMENT_IN_PROGRESS.
func (s *checkoutService) SubmitPayment(ctx context.Context, id uuid.UUID) (*models.PaymentResult, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "checkout.SubmitPayment")
	defer span.End()

	span.SetAttributes(attribute.String("pos.session_id", id.String()))

	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	intent, err := s.beginSubmit(ctx, sess)
	if err != nil {
		return nil, err
	}

	method := string(intent.State.Method())
	span.SetAttributes(attribute.String("pos.payment_method", method), attribute.String("pos.total", intent.Total.StringFixed(2)))

	outcome := sess.processor.Submit(ctx, intent)

	view := sess.finishSubmit(outcome.Succeeded)

	if !outcome.Succeeded {
		code := errors.ErrCodeInternal
		if appErr, ok := errors.IsAppError(outcome.Err); ok {
			code = appErr.Code
		}

		metrics.RecordPayment(method, code, 0)
		span.SetStatus(codes.Error, outcome.Message)

		if outcome.Err != nil {
			span.RecordError(outcome.Err)
			return nil, outcome.Err
		}

		return nil, errors.InternalError(outcome.Message)
	}

	metrics.RecordPayment(method, "success", intent.Total.InexactFloat64())

	if outcome.Transaction != nil {
		span.SetAttributes(attribute.String("pos.transaction_id", outcome.Transaction.ID.String()))
	}

	s.afterSale(context.WithoutCancel(ctx), intent)

	return &models.PaymentResult{
		Succeeded:   true,
		Message:     outcome.Message,
		Transaction: outcome.Transaction,
		Change:      outcome.Change,
		Session:     view,
	}, nil
}

func (s *checkoutService) beginSubmit(ctx context.Context, sess *session) (checkout.PaymentIntent, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.busy() {
		sess.notices.Notify(ctx, models.NoticeError, checkout.MsgPaymentInProgress)
		return checkout.PaymentIntent{}, errors.PaymentInProgressError(checkout.MsgPaymentInProgress)
	}

	if sess.payment == nil {
		return checkout.PaymentIntent{}, errors.ValidationError("Select a payment method first")
	}

	if sess.cart.IsEmpty() {
		return checkout.PaymentIntent{}, errors.ValidationError("Cart is empty")
	}

	if sess.tabID != nil {
		switch sess.payment.Method() {
		case models.PaymentMethodTab, models.PaymentMethodGiftCard:
			return checkout.PaymentIntent{}, errors.ValidationError("An open tab must be settled with cash, card or check")
		}
	}

	sess.submitting = true
	sess.lastUsed = s.cfg.Clock()

	return checkout.PaymentIntent{
		State:      sess.payment,
		Subtotal:   sess.cart.Subtotal(),
		Tax:        sess.cart.Tax(sess.rules, sess.defaultRate),
		Total:      sess.total(),
		Items:      sess.cart.Snapshot(),
		CustomerID: sess.cart.CustomerID(),
		TabID:      copyID(sess.tabID),
	}, nil
}

// OpenTab records the cart as an unpaid sale for the session's customer and
// empties the cart. The tab is settled later through LoadTab and
// SubmitPayment.
func (s *checkoutService) OpenTab(ctx context.Context, id uuid.UUID) (*models.OpenTabResult, error) {
	logger := middleware.LoggerFromContext(ctx)

	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()

	switch {
	case sess.busy():
		sess.mu.Unlock()
		return nil, errors.PaymentInProgressError(checkout.MsgPaymentInProgress)
	case sess.tabID != nil:
		sess.mu.Unlock()
		return nil, errors.InvalidTransitionError("This tab is already open")
	case sess.cart.CustomerID() == nil:
		sess.mu.Unlock()
		return nil, errors.ValidationError("A customer is required to open a tab")
	case sess.cart.IsEmpty():
		sess.mu.Unlock()
		return nil, errors.ValidationError("Cart is empty")
	}

	tx := &models.Transaction{
		Items:         sess.cart.Snapshot(),
		Subtotal:      sess.cart.Subtotal(),
		Tax:           sess.cart.Tax(sess.rules, sess.defaultRate),
		Total:         sess.total(),
		PaymentMethod: models.PaymentMethodTab,
		CustomerID:    sess.cart.CustomerID(),
		Status:        models.TransactionStatusOpen,
		CreatedAt:     s.cfg.Clock().UTC(),
	}
	sess.submitting = true
	sess.lastUsed = s.cfg.Clock()

	sess.mu.Unlock()

	txID, err := s.deps.Gateway.InsertTransaction(context.WithoutCancel(ctx), tx)
	if err != nil {
		sess.finishSubmit(false)
		logger.Error("Failed to open tab", slog.String("sessionID", id.String()), slog.String("error", err.Error()))

		return nil, errors.PersistenceFailedError(checkout.MsgPersistenceFailed).WithError(err)
	}

	tx.ID = txID
	sess.notices.Notify(ctx, models.NoticeSuccess, "Tab opened for "+tx.Total.StringFixed(2))

	view := sess.finishSubmit(true)

	logger.Info("Tab opened", slog.String("transactionID", txID.String()), slog.String("total", tx.Total.StringFixed(2)))

	return &models.OpenTabResult{Transaction: tx, Session: view}, nil
}

// LoadTab replaces the session's cart and customer with those of an open tab
// so it can be paid.
func (s *checkoutService) LoadTab(ctx context.Context, id, transactionID uuid.UUID) (*models.SessionView, error) {
	if s.deps.Tabs == nil {
		return nil, errors.BadRequestError("Open tabs are not available")
	}

	if _, err := s.lookup(id); err != nil {
		return nil, err
	}

	tx, err := s.deps.Tabs.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if tx.Status != models.TransactionStatusOpen {
		return nil, errors.InvalidTransitionError("Only open tabs can be checked out")
	}

	return s.withSession(id, true, func(sess *session) error {
		sess.cart.Restore(tx.Items)
		sess.cart.SetCustomer(tx.CustomerID)
		sess.payment = nil
		sess.tabID = &tx.ID

		return nil
	})
}

// afterSale updates stock and the customer's spend. Neither may fail the sale.
func (s *checkoutService) afterSale(ctx context.Context, intent checkout.PaymentIntent) {
	logger := middleware.LoggerFromContext(ctx)

	if s.deps.Inventory != nil {
		if err := s.deps.Inventory.DecrementStock(ctx, intent.Items); err != nil {
			logger.Warn("Stock was not fully decremented after sale", slog.String("error", err.Error()))
		}
	}

	if s.deps.Customers != nil && intent.CustomerID != nil {
		if _, err := s.deps.Customers.RecordSpend(ctx, *intent.CustomerID, intent.Total); err != nil {
			logger.Warn("Failed to record customer spend", slog.String("customerID", intent.CustomerID.String()), slog.String("error", err.Error()))
		}
	}
}

// ExpireIdleSessions drops sessions unused for longer than the idle timeout.
// Sessions with a payment in flight are kept.
func (s *checkoutService) ExpireIdleSessions(ctx context.Context) int {
	if s.cfg.IdleTimeout <= 0 {
		return 0
	}

	cutoff := s.cfg.Clock().Add(-s.cfg.IdleTimeout)
	expired := 0

	s.mu.Lock()

	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastUsed.Before(cutoff) && !sess.busy()
		sess.mu.Unlock()

		if idle {
			delete(s.sessions, id)
			expired++
		}
	}

	s.mu.Unlock()

	for range expired {
		metrics.SessionClosed()
	}

	if expired > 0 {
		middleware.LoggerFromContext(ctx).Info("Expired idle checkout sessions", slog.Int("count", expired))
	}

	return expired
}

func (s *checkoutService) lookup(id uuid.UUID) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, errors.NotFoundError("Checkout session not found")
	}

	return sess, nil
}

// withSession runs fn under the session lock and returns the resulting view.
// Mutations are refused while a payment is being processed.
func (s *checkoutService) withSession(id uuid.UUID, mutates bool, fn func(*session) error) (*models.SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if mutates && sess.busy() {
		return nil, errors.PaymentInProgressError(checkout.MsgPaymentInProgress)
	}

	if err := fn(sess); err != nil {
		return nil, err
	}

	sess.lastUsed = s.cfg.Clock()

	return sess.view(), nil
}

func (s *checkoutService) ensureCustomer(ctx context.Context, id uuid.UUID) error {
	if s.deps.Customers == nil {
		return nil
	}

	_, err := s.deps.Customers.GetCustomer(ctx, id)

	return err
}

// busy reports whether a submit owns the session. Callers hold sess.mu.
func (sess *session) busy() bool {
	return sess.submitting || sess.processor.State() != checkout.StateIdle
}

// finishSubmit applies a submit's outcome and releases the session in one
// critical section so no other submit can observe the paid cart.
func (sess *session) finishSubmit(succeeded bool) *models.SessionView {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if succeeded {
		sess.cart.Clear()
		sess.payment = nil
		sess.tabID = nil
	}

	sess.submitting = false

	return sess.view()
}

func (sess *session) total() decimal.Decimal {
	return sess.cart.Total(sess.rules, sess.defaultRate)
}

func (sess *session) view() *models.SessionView {
	return &models.SessionView{
		ID:             sess.id,
		CustomerID:     sess.cart.CustomerID(),
		TabID:          copyID(sess.tabID),
		Items:          sess.cart.Snapshot(),
		Subtotal:       sess.cart.Subtotal(),
		Tax:            sess.cart.Tax(sess.rules, sess.defaultRate),
		Total:          sess.total(),
		Payment:        models.NewPaymentView(sess.payment),
		ProcessorState: sess.processor.State().String(),
		Notices:        sess.notices.Drain(),
	}
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}

	c := *id

	return &c
}
