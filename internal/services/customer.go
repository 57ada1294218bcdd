package service

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/pos-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-platform/internal/cache"
	"github.com/aaravmahajanofficial/pos-platform/internal/checkout"
	"github.com/aaravmahajanofficial/pos-platform/internal/errors"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	repository "github.com/aaravmahajanofficial/pos-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, req *models.UpdateCustomerRequest) (*models.Customer, error)
	ListCustomers(ctx context.Context, search string, page, size int) ([]*models.Customer, int, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*models.CustomerProfile, error)
	RecordSpend(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*models.Customer, error)
}

// Tiering holds the lifetime-spend thresholds for Silver and Gold.
type Tiering struct {
	Silver decimal.Decimal
	Gold   decimal.Decimal
}

func (t Tiering) TierForSpend(spend decimal.Decimal) models.Tier {
	switch {
	case spend.GreaterThanOrEqual(t.Gold):
		return models.TierGold
	case spend.GreaterThanOrEqual(t.Silver):
		return models.TierSilver
	}

	return models.TierBronze
}

// SpendToNextTier is zero for Gold customers.
func (t Tiering) SpendToNextTier(spend decimal.Decimal) decimal.Decimal {
	var next decimal.Decimal

	switch t.TierForSpend(spend) {
	case models.TierBronze:
		next = t.Silver
	case models.TierSilver:
		next = t.Gold
	default:
		return decimal.Zero
	}

	return next.Sub(spend)
}

type customerService struct {
	repo    repository.CustomerRepository
	wallets repository.WalletRepository
	tiering Tiering
	cache   cache.Cache
	ttl     time.Duration
}

func NewCustomerService(repo repository.CustomerRepository, wallets repository.WalletRepository, tiering Tiering, c cache.Cache, ttl time.Duration) CustomerService {
	return &customerService{
		repo:    repo,
		wallets: wallets,
		tiering: tiering,
		cache:   c,
		ttl:     ttl,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	customer := &models.Customer{
		ID:         uuid.New(),
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:      strings.TrimSpace(req.Phone),
		Tier:       models.TierBronze,
		TotalSpend: decimal.Zero,
	}

	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		if stdErrors.Is(err, repository.ErrDuplicateEntry) {
			return nil, errors.DuplicateEntryError("A customer with this email already exists").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create customer").WithError(err)
	}

	return customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := cache.Fetch(ctx, s.cache, cache.Key(cache.CustomerKeyPrefix, id.String()), s.ttl, func(ctx context.Context) (*models.Customer, error) {
		return s.repo.GetCustomerByID(ctx, id)
	})
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Customer not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch customer").WithError(err)
	}

	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := s.repo.GetCustomerByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Customer not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch customer").WithError(err)
	}

	if req.FirstName != nil {
		customer.FirstName = strings.TrimSpace(*req.FirstName)
	}

	if req.LastName != nil {
		customer.LastName = strings.TrimSpace(*req.LastName)
	}

	if req.Email != nil {
		customer.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}

	if err := s.repo.UpdateCustomer(ctx, customer); err != nil {
		if stdErrors.Is(err, repository.ErrDuplicateEntry) {
			return nil, errors.DuplicateEntryError("A customer with this email already exists").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update customer").WithError(err)
	}

	s.invalidate(ctx, id)

	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, search string, page, size int) ([]*models.Customer, int, error) {
	customers, total, err := s.repo.ListCustomers(ctx, strings.TrimSpace(search), page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list customers").WithError(err)
	}

	return customers, total, nil
}

func (s *customerService) GetProfile(ctx context.Context, id uuid.UUID) (*models.CustomerProfile, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := &models.CustomerProfile{
		Customer:        customer,
		TabBalance:      decimal.Zero,
		TabHistory:      []models.WalletLedgerEntry{},
		SpendToNextTier: s.tiering.SpendToNextTier(customer.TotalSpend),
	}

	wallet, err := s.wallets.GetWallet(ctx, id)
	if err != nil {
		if stdErrors.Is(err, checkout.ErrWalletNotFound) {
			return profile, nil
		}

		return nil, errors.DatabaseError("Failed to fetch customer tab").WithError(err)
	}

	entries, err := s.wallets.ListEntries(ctx, wallet.ID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch customer tab history").WithError(err)
	}

	profile.TabBalance = wallet.CurrentBalance
	profile.TabHistory = entries

	return profile, nil
}

// RecordSpend adds a completed sale to the customer's lifetime spend, awards
// one loyalty point per whole currency unit and upgrades the tier. Tiers are
// never downgraded here.
func (s *customerService) RecordSpend(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*models.Customer, error) {
	if !amount.IsPositive() {
		return nil, errors.AddValidationError("amount", "must be greater than zero")
	}

	points := amount.Floor().IntPart()

	customer, err := s.repo.AddSpend(ctx, id, amount, points)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Customer not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to record customer spend").WithError(err)
	}

	if tier := s.tiering.TierForSpend(customer.TotalSpend); tier.Rank() > customer.Tier.Rank() {
		if err := s.repo.UpdateTier(ctx, id, tier); err != nil {
			return nil, errors.DatabaseError("Failed to update customer tier").WithError(err)
		}

		middleware.LoggerFromContext(ctx).Info("Customer tier upgraded",
			slog.String("customerID", id.String()),
			slog.String("from", string(customer.Tier)),
			slog.String("to", string(tier)),
		)

		customer.Tier = tier
	}

	s.invalidate(ctx, id)

	return customer, nil
}

func (s *customerService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, cache.Key(cache.CustomerKeyPrefix, id.String())); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to invalidate customer cache", slog.String("customerID", id.String()), slog.String("error", err.Error()))
	}
}
