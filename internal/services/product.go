package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/pos-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-platform/internal/cache"
	"github.com/aaravmahajanofficial/pos-platform/internal/errors"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	repository "github.com/aaravmahajanofficial/pos-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, category string, page, size int) ([]*models.Product, int, error)
	CreateVariant(ctx context.Context, productID uuid.UUID, req *models.CreateVariantRequest) (*models.Variant, error)
	GenerateVariants(ctx context.Context, productID uuid.UUID, req *models.GenerateVariantsRequest) ([]models.Variant, error)
	UpdateVariant(ctx context.Context, productID, variantID uuid.UUID, req *models.UpdateVariantRequest) (*models.Variant, error)
	DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error
	ListVariants(ctx context.Context, productID uuid.UUID) ([]models.Variant, error)
	ResolveItem(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (*models.ResolvedItem, error)
	DecrementStock(ctx context.Context, items []models.LineItem) error
}

const (
	maxGeneratedVariants = 100
	maxSKULength         = 50
)

type productService struct {
	repo      repository.ProductRepository
	cache     cache.Cache
	ttl       time.Duration
	sanitizer *bluemonday.Policy
}

// NewProductService reads products through c when it is non-nil.
func NewProductService(repo repository.ProductRepository, c cache.Cache, ttl time.Duration) ProductService {
	return &productService{
		repo:      repo,
		cache:     c,
		ttl:       ttl,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if req.Price == nil || req.Price.IsNegative() {
		return nil, errors.AddValidationError("price", "must not be negative")
	}

	product := &models.Product{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   s.sanitizer.Sanitize(req.Description),
		Category:      req.Category,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		SKU:           req.SKU,
		Status:        models.ProductStatusActive,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		if stdErrors.Is(err, repository.ErrDuplicateEntry) {
			return nil, errors.DuplicateEntryError("A product with this SKU already exists").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

// GetProductByID returns the product with its variants.
func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := cache.Fetch(ctx, s.cache, cache.Key(cache.ProductKeyPrefix, id.String()), s.ttl, func(ctx context.Context) (*models.Product, error) {
		return s.load(ctx, id)
	})
	if err != nil {
		if _, ok := errors.IsAppError(err); ok {
			return nil, err
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

func (s *productService) load(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, err
	}

	variants, err := s.repo.ListVariants(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Variants = variants

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}

	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}

	if req.Category != nil {
		product.Category = *req.Category
	}

	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, errors.AddValidationError("price", "must not be negative")
		}

		product.Price = req.Price
	}

	if req.StockQuantity != nil {
		product.StockQuantity = req.StockQuantity
	}

	if req.Status != nil {
		product.Status = *req.Status
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidate(ctx, id)

	return product, nil
}

// DeleteProduct removes the product and its variants. Past transactions keep
// their own copy of the items sold.
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return errors.NotFoundError("Product not found").WithError(err)
		}

		return errors.DatabaseError("Failed to delete product").WithError(err)
	}

	s.invalidate(ctx, id)

	middleware.LoggerFromContext(ctx).Info("Product deleted", slog.String("productID", id.String()))

	return nil
}

func (s *productService) ListProducts(ctx context.Context, category string, page, size int) ([]*models.Product, int, error) {
	products, total, err := s.repo.ListProducts(ctx, category, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list products").WithError(err)
	}

	return products, total, nil
}

func (s *productService) CreateVariant(ctx context.Context, productID uuid.UUID, req *models.CreateVariantRequest) (*models.Variant, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, errors.AddValidationError("price", "must not be negative")
	}

	if _, err := s.repo.GetProductByID(ctx, productID); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	variant := &models.Variant{
		ID:         uuid.New(),
		ProductID:  productID,
		Name:       req.Name,
		Price:      req.Price,
		StockCount: req.StockCount,
		SKU:        req.SKU,
	}

	if err := s.repo.CreateVariant(ctx, variant); err != nil {
		if stdErrors.Is(err, repository.ErrDuplicateEntry) {
			return nil, errors.DuplicateEntryError("A variant with this SKU already exists").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create variant").WithError(err)
	}

	s.invalidate(ctx, productID)

	return variant, nil
}

// GenerateVariants creates every combination of the given colors, sizes and
// flavors in one database transaction. Names join the options with " / " and
// SKUs append them to the product's SKU.
func (s *productService) GenerateVariants(ctx context.Context, productID uuid.UUID, req *models.GenerateVariantsRequest) ([]models.Variant, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, errors.AddValidationError("price", "must not be negative")
	}

	combinations := variantCombinations(req.Colors, req.Sizes, req.Flavors)

	if len(combinations) == 0 {
		return nil, errors.ValidationError("You need to add at least one color, size, or flavor option")
	}

	if len(combinations) > maxGeneratedVariants {
		return nil, errors.AddValidationError("options", fmt.Sprintf("must not produce more than %d variants", maxGeneratedVariants))
	}

	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	variants := make([]*models.Variant, len(combinations))

	for i, options := range combinations {
		sku := product.SKU + "-" + skuSuffix(options)
		if len(sku) > maxSKULength {
			return nil, errors.AddValidationError("options", fmt.Sprintf("generated SKU %s is longer than %d characters", sku, maxSKULength))
		}

		variants[i] = &models.Variant{
			ID:         uuid.New(),
			ProductID:  productID,
			Name:       strings.Join(options, " / "),
			Price:      req.Price,
			StockCount: req.StockCount,
			SKU:        sku,
		}
	}

	if err := s.repo.CreateVariants(ctx, variants); err != nil {
		if stdErrors.Is(err, repository.ErrDuplicateEntry) {
			return nil, errors.DuplicateEntryError("A variant with one of these SKUs already exists").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create variants").WithError(err)
	}

	s.invalidate(ctx, productID)

	middleware.LoggerFromContext(ctx).Info("Variants generated", slog.String("productID", productID.String()), slog.Int("count", len(variants)))

	created := make([]models.Variant, len(variants))
	for i, variant := range variants {
		created[i] = *variant
	}

	return created, nil
}

func (s *productService) UpdateVariant(ctx context.Context, productID, variantID uuid.UUID, req *models.UpdateVariantRequest) (*models.Variant, error) {
	variant, err := s.repo.GetVariant(ctx, productID, variantID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Variant not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch variant").WithError(err)
	}

	if req.Name != nil {
		variant.Name = *req.Name
	}

	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, errors.AddValidationError("price", "must not be negative")
		}

		variant.Price = req.Price
	}

	if req.StockCount != nil {
		variant.StockCount = req.StockCount
	}

	if req.SKU != nil {
		variant.SKU = *req.SKU
	}

	if err := s.repo.UpdateVariant(ctx, variant); err != nil {
		switch {
		case stdErrors.Is(err, repository.ErrDuplicateEntry):
			return nil, errors.DuplicateEntryError("A variant with this SKU already exists").WithError(err)
		case stdErrors.Is(err, repository.ErrNotFound):
			return nil, errors.NotFoundError("Variant not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update variant").WithError(err)
	}

	s.invalidate(ctx, productID)

	return variant, nil
}

func (s *productService) DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error {
	if err := s.repo.DeleteVariant(ctx, productID, variantID); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return errors.NotFoundError("Variant not found").WithError(err)
		}

		return errors.DatabaseError("Failed to delete variant").WithError(err)
	}

	s.invalidate(ctx, productID)

	return nil
}

func (s *productService) ListVariants(ctx context.Context, productID uuid.UUID) ([]models.Variant, error) {
	product, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return product.Variants, nil
}

// ResolveItem picks the variant's price and stock where set and falls back
// to the parent product's.
func (s *productService) ResolveItem(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (*models.ResolvedItem, error) {
	product, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.Status != models.ProductStatusActive {
		return nil, errors.ItemUnavailableError(fmt.Sprintf("%s is not available for sale", product.Name))
	}

	item := &models.ResolvedItem{
		ProductID:  product.ID,
		Name:       product.Name,
		Category:   product.Category,
		Price:      product.Price,
		StockLimit: product.StockQuantity,
	}

	if variantID == nil {
		return item, nil
	}

	for _, variant := range product.Variants {
		if variant.ID != *variantID {
			continue
		}

		id := variant.ID
		item.VariantID = &id
		item.Name = fmt.Sprintf("%s - %s", product.Name, variant.Name)

		if variant.Price != nil {
			item.Price = variant.Price
		}

		if variant.StockCount != nil {
			item.StockLimit = variant.StockCount
		}

		return item, nil
	}

	return nil, errors.NotFoundError("Variant not found")
}

// DecrementStock is applied after a sale. Every item is attempted; the
// failures are joined.
func (s *productService) DecrementStock(ctx context.Context, items []models.LineItem) error {
	logger := middleware.LoggerFromContext(ctx)

	var errs []error

	touched := map[uuid.UUID]struct{}{}

	for _, item := range items {
		if err := s.repo.DecrementStock(ctx, item.ProductID, item.VariantID, item.Quantity); err != nil {
			logger.Warn("Failed to decrement stock", slog.String("productID", item.ProductID.String()), slog.String("error", err.Error()))
			errs = append(errs, err)

			continue
		}

		touched[item.ProductID] = struct{}{}
	}

	for id := range touched {
		s.invalidate(ctx, id)
	}

	return stdErrors.Join(errs...)
}

func (s *productService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, id.String())); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to invalidate product cache", slog.String("productID", id.String()), slog.String("error", err.Error()))
	}
}

// variantCombinations returns the cartesian product of the non-empty option
// lists, colors first. Blank and repeated options are dropped.
func variantCombinations(lists ...[]string) [][]string {
	var combinations [][]string

	for _, list := range lists {
		options := uniqueOptions(list)
		if len(options) == 0 {
			continue
		}

		if combinations == nil {
			combinations = [][]string{{}}
		}

		next := make([][]string, 0, len(combinations)*len(options))

		for _, prefix := range combinations {
			for _, option := range options {
				combination := make([]string, len(prefix), len(prefix)+1)
				copy(combination, prefix)
				next = append(next, append(combination, option))
			}
		}

		combinations = next
	}

	return combinations
}

func uniqueOptions(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	options := make([]string, 0, len(list))

	for _, option := range list {
		option = strings.TrimSpace(option)
		if option == "" {
			continue
		}

		key := strings.ToLower(option)
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		options = append(options, option)
	}

	return options
}

func skuSuffix(options []string) string {
	parts := make([]string, len(options))
	for i, option := range options {
		parts[i] = strings.ToUpper(strings.Join(strings.Fields(option), ""))
	}

	return strings.Join(parts, "-")
}
