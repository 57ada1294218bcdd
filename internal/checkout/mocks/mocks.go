package mocks

import (
	"context"
	"time"

	"github.com/aaravmahajanofficial/pos-platform/internal/checkout"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t testingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

type MockGateway struct {
	mock.Mock
}

func NewMockGateway(t testingT) *MockGateway {
	m := &MockGateway{}
	register(t, &m.Mock)

	return m
}

func (m *MockGateway) InsertTransaction(ctx context.Context, tx *models.Transaction) (uuid.UUID, error) {
	args := m.Called(ctx, tx)
	id, _ := args.Get(0).(uuid.UUID)

	return id, args.Error(1)
}

func (m *MockGateway) SettleTab(ctx context.Context, id uuid.UUID, tx *models.Transaction) error {
	return m.Called(ctx, id, tx).Error(0)
}

func (m *MockGateway) InsertWalletEntry(ctx context.Context, entry *models.WalletLedgerEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockGateway) GetWallet(ctx context.Context, customerID uuid.UUID) (*models.CustomerWallet, error) {
	args := m.Called(ctx, customerID)
	wallet, _ := args.Get(0).(*models.CustomerWallet)

	return wallet, args.Error(1)
}

func (m *MockGateway) UpsertWallet(ctx context.Context, wallet *models.CustomerWallet) error {
	return m.Called(ctx, wallet).Error(0)
}

type MockCatalog struct {
	mock.Mock
}

func NewMockCatalog(t testingT) *MockCatalog {
	m := &MockCatalog{}
	register(t, &m.Mock)

	return m
}

func (m *MockCatalog) ResolveItem(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (*models.ResolvedItem, error) {
	args := m.Called(ctx, productID, variantID)
	item, _ := args.Get(0).(*models.ResolvedItem)

	return item, args.Error(1)
}

type MockTaxRuleSource struct {
	mock.Mock
}

func NewMockTaxRuleSource(t testingT) *MockTaxRuleSource {
	m := &MockTaxRuleSource{}
	register(t, &m.Mock)

	return m
}

func (m *MockTaxRuleSource) GetRules(ctx context.Context) ([]models.TaxRule, error) {
	args := m.Called(ctx)
	rules, _ := args.Get(0).([]models.TaxRule)

	return rules, args.Error(1)
}

type MockCardCharger struct {
	mock.Mock
}

func NewMockCardCharger(t testingT) *MockCardCharger {
	m := &MockCardCharger{}
	register(t, &m.Mock)

	return m
}

func (m *MockCardCharger) Charge(ctx context.Context, req checkout.CardChargeRequest) (string, error) {
	args := m.Called(ctx, req)

	return args.String(0), args.Error(1)
}

type MockGiftCardRedeemer struct {
	mock.Mock
}

func NewMockGiftCardRedeemer(t testingT) *MockGiftCardRedeemer {
	m := &MockGiftCardRedeemer{}
	register(t, &m.Mock)

	return m
}

func (m *MockGiftCardRedeemer) Redeem(ctx context.Context, code string, amount decimal.Decimal) error {
	return m.Called(ctx, code, amount).Error(0)
}

type MockWalletUpdater struct {
	mock.Mock
}

func NewMockWalletUpdater(t testingT) *MockWalletUpdater {
	m := &MockWalletUpdater{}
	register(t, &m.Mock)

	return m
}

func (m *MockWalletUpdater) ApplyCharge(ctx context.Context, customerID uuid.UUID, amount decimal.Decimal, transactionID uuid.UUID) error {
	return m.Called(ctx, customerID, amount, transactionID).Error(0)
}

type MockLocker struct {
	mock.Mock
}

func NewMockLocker(t testingT) *MockLocker {
	m := &MockLocker{}
	register(t, &m.Mock)

	return m
}

func (m *MockLocker) Lock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	args := m.Called(ctx, key, ttl)
	release, _ := args.Get(0).(func(context.Context) error)

	return release, args.Error(1)
}
