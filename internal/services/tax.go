package service

import (
	"context"
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

type TaxRuleService interface {
	checkout.TaxRuleSource
	UpsertRule(ctx context.Context, req *models.UpsertTaxRuleRequest) (*models.TaxRule, error)
}

type taxRuleService struct {
	repo  repository.TaxRuleRepository
	cache cache.Cache
	ttl   time.Duration
}

func NewTaxRuleService(repo repository.TaxRuleRepository, c cache.Cache, ttl time.Duration) TaxRuleService {
	return &taxRuleService{repo: repo, cache: c, ttl: ttl}
}

func (s *taxRuleService) GetRules(ctx context.Context) ([]models.TaxRule, error) {
	rules, err := cache.Fetch(ctx, s.cache, cache.TaxRulesKey, s.ttl, s.repo.GetRules)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load tax rules").WithError(err)
	}

	return rules, nil
}

func (s *taxRuleService) UpsertRule(ctx context.Context, req *models.UpsertTaxRuleRequest) (*models.TaxRule, error) {
	if req.Rate.IsNegative() || req.Rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, errors.AddValidationError("rate", "must be between 0 and 1")
	}

	rule := &models.TaxRule{
		ID:       uuid.New(),
		Category: strings.TrimSpace(req.Category),
		Rate:     req.Rate,
	}

	if err := s.repo.UpsertRule(ctx, rule); err != nil {
		return nil, errors.DatabaseError("Failed to save tax rule").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.TaxRulesKey); err != nil {
			middleware.LoggerFromContext(ctx).Warn("Failed to invalidate tax rule cache", slog.String("error", err.Error()))
		}
	}

	return rule, nil
}
