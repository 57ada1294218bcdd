package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/pos-platform/internal/cache"
	appErrors "github.com/aaravmahajanofficial/pos-platform/internal/errors"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	repository "github.com/aaravmahajanofficial/pos-platform/internal/repositories"
	"github.com/aaravmahajanofficial/pos-platform/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/pos-platform/internal/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	req := &models.CreateProductRequest{
		Name:          "Cold Brew",
		Description:   `<script>alert("x")</script>Slow steeped`,
		Category:      "beverages",
		Price:         ptr(decimal.RequireFromString("4.50")),
		StockQuantity: ptr(12),
		SKU:           "BEV-001",
	}

	t.Run("Success - Create Product", func(t *testing.T) {
		// Arrange
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		mockRepo.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.Name == req.Name && p.SKU == req.SKU && p.Status == models.ProductStatusActive
		})).Return(nil).Once()

		// Act
		product, err := productService.CreateProduct(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Slow steeped", product.Description)
		assert.Equal(t, "4.5", product.Price.String())
		assert.Equal(t, 12, *product.StockQuantity)
		assert.NotEqual(t, uuid.Nil, product.ID)
	})

	t.Run("Failure - Negative Price", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		bad := *req
		bad.Price = ptr(decimal.RequireFromString("-1"))

		product, err := productService.CreateProduct(ctx, &bad)

		assert.Nil(t, product)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))
	})

	t.Run("Failure - Duplicate SKU", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		mockRepo.On("CreateProduct", mock.Anything, mock.AnythingOfType("*models.Product")).Return(repository.ErrDuplicateEntry).Once()

		product, err := productService.CreateProduct(ctx, req)

		assert.Nil(t, product)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeDuplicateEntry))
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		mockRepo.On("CreateProduct", mock.Anything, mock.AnythingOfType("*models.Product")).Return(errors.New("connection reset")).Once()

		product, err := productService.CreateProduct(ctx, req)

		assert.Nil(t, product)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeDatabaseError))
		assert.Contains(t, err.Error(), "Failed to create product")
	})
}

func TestResolveItem(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	variantID := uuid.New()
	bareVariantID := uuid.New()

	product := func() *models.Product {
		return &models.Product{
			ID:            productID,
			Name:          "T-Shirt",
			Category:      "apparel",
			Price:         ptr(decimal.RequireFromString("20.00")),
			StockQuantity: ptr(30),
			Status:        models.ProductStatusActive,
		}
	}

	variants := []models.Variant{
		{ID: variantID, ProductID: productID, Name: "Large", Price: ptr(decimal.RequireFromString("22.00")), StockCount: ptr(3)},
		{ID: bareVariantID, ProductID: productID, Name: "Small"},
	}

	setup := func(t *testing.T, p *models.Product) (service.ProductService, *mocks.ProductRepository) {
		mockRepo := mocks.NewProductRepository(t)
		mockRepo.On("GetProductByID", mock.Anything, productID).Return(p, nil).Once()
		mockRepo.On("ListVariants", mock.Anything, productID).Return(variants, nil).Once()

		return service.NewProductService(mockRepo, nil, time.Minute), mockRepo
	}

	t.Run("Success - Product price and stock", func(t *testing.T) {
		productService, _ := setup(t, product())

		item, err := productService.ResolveItem(ctx, productID, nil)

		require.NoError(t, err)
		assert.Equal(t, "T-Shirt", item.Name)
		assert.Equal(t, "apparel", item.Category)
		assert.Equal(t, "20", item.Price.String())
		assert.Equal(t, 30, *item.StockLimit)
		assert.Nil(t, item.VariantID)
	})

	t.Run("Success - Variant overrides", func(t *testing.T) {
		productService, _ := setup(t, product())

		item, err := productService.ResolveItem(ctx, productID, &variantID)

		require.NoError(t, err)
		assert.Equal(t, "T-Shirt - Large", item.Name)
		assert.Equal(t, "22", item.Price.String())
		assert.Equal(t, 3, *item.StockLimit)
		assert.Equal(t, variantID, *item.VariantID)
	})

	t.Run("Success - Variant falls back to product", func(t *testing.T) {
		productService, _ := setup(t, product())

		item, err := productService.ResolveItem(ctx, productID, &bareVariantID)

		require.NoError(t, err)
		assert.Equal(t, "20", item.Price.String())
		assert.Equal(t, 30, *item.StockLimit)
	})

	t.Run("Failure - Unknown variant", func(t *testing.T) {
		productService, _ := setup(t, product())
		unknown := uuid.New()

		item, err := productService.ResolveItem(ctx, productID, &unknown)

		assert.Nil(t, item)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})

	t.Run("Failure - Inactive product", func(t *testing.T) {
		inactive := product()
		inactive.Status = models.ProductStatusDiscontinued
		productService, _ := setup(t, inactive)

		item, err := productService.ResolveItem(ctx, productID, nil)

		assert.Nil(t, item)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeItemUnavailable))
	})

	t.Run("Failure - Product not found", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		mockRepo.On("GetProductByID", mock.Anything, productID).Return(nil, repository.ErrNotFound).Once()
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		item, err := productService.ResolveItem(ctx, productID, nil)

		assert.Nil(t, item)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})

	t.Run("Success - Second lookup served from cache", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		mockRepo.On("GetProductByID", mock.Anything, productID).Return(product(), nil).Once()
		mockRepo.On("ListVariants", mock.Anything, productID).Return(variants, nil).Once()

		memCache := newMemoryCache()
		productService := service.NewProductService(mockRepo, memCache, time.Minute)

		_, err := productService.ResolveItem(ctx, productID, nil)
		require.NoError(t, err)

		item, err := productService.ResolveItem(ctx, productID, &variantID)
		require.NoError(t, err)

		assert.Equal(t, "22", item.Price.String())
		assert.True(t, memCache.has(cache.Key(cache.ProductKeyPrefix, productID.String())))
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("Success - Partial update invalidates cache", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		memCache := newMemoryCache()
		productService := service.NewProductService(mockRepo, memCache, time.Minute)

		key := cache.Key(cache.ProductKeyPrefix, productID.String())
		require.NoError(t, memCache.Set(ctx, key, &models.Product{ID: productID}, time.Minute))

		existing := &models.Product{ID: productID, Name: "Mug", Price: ptr(decimal.RequireFromString("8")), Status: models.ProductStatusActive}
		mockRepo.On("GetProductByID", mock.Anything, productID).Return(existing, nil).Once()
		mockRepo.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.Name == "Mug" && p.Price.String() == "9.5" && p.Status == models.ProductStatusInactive
		})).Return(nil).Once()

		status := models.ProductStatusInactive
		product, err := productService.UpdateProduct(ctx, productID, &models.UpdateProductRequest{
			Price:  ptr(decimal.RequireFromString("9.50")),
			Status: &status,
		})

		require.NoError(t, err)
		assert.Equal(t, models.ProductStatusInactive, product.Status)
		assert.False(t, memCache.has(key))
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		mockRepo.On("GetProductByID", mock.Anything, productID).Return(nil, repository.ErrNotFound).Once()

		product, err := productService.UpdateProduct(ctx, productID, &models.UpdateProductRequest{Name: ptr("Cup")})

		assert.Nil(t, product)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})
}

func TestCreateVariant(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("Success - Create Variant", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		mockRepo.On("GetProductByID", mock.Anything, productID).Return(&models.Product{ID: productID}, nil).Once()
		mockRepo.On("CreateVariant", mock.Anything, mock.MatchedBy(func(v *models.Variant) bool {
			return v.ProductID == productID && v.Name == "Oat milk"
		})).Return(nil).Once()

		variant, err := productService.CreateVariant(ctx, productID, &models.CreateVariantRequest{Name: "Oat milk", SKU: "BEV-001-OAT"})

		require.NoError(t, err)
		assert.Equal(t, productID, variant.ProductID)
	})

	t.Run("Failure - Missing product", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		mockRepo.On("GetProductByID", mock.Anything, productID).Return(nil, repository.ErrNotFound).Once()

		variant, err := productService.CreateVariant(ctx, productID, &models.CreateVariantRequest{Name: "Oat milk", SKU: "BEV-001-OAT"})

		assert.Nil(t, variant)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("Success - Delete invalidates cache", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		memCache := newMemoryCache()
		productService := service.NewProductService(mockRepo, memCache, time.Minute)

		key := cache.Key(cache.ProductKeyPrefix, productID.String())
		require.NoError(t, memCache.Set(ctx, key, &models.Product{ID: productID}, time.Minute))

		mockRepo.On("DeleteProduct", mock.Anything, productID).Return(nil).Once()

		err := productService.DeleteProduct(ctx, productID)

		require.NoError(t, err)
		assert.False(t, memCache.has(key))
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		mockRepo.On("DeleteProduct", mock.Anything, productID).Return(repository.ErrNotFound).Once()

		err := productService.DeleteProduct(ctx, productID)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})
}

func TestGenerateVariants(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	product := &models.Product{ID: productID, Name: "Tee", SKU: "TEE"}

	t.Run("Success - Every combination", func(t *testing.T) {
		// Arrange
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		mockRepo.On("GetProductByID", mock.Anything, productID).Return(product, nil).Once()
		mockRepo.On("CreateVariants", mock.Anything, mock.MatchedBy(func(variants []*models.Variant) bool {
			return len(variants) == 4
		})).Return(nil).Once()

		// Act
		variants, err := productService.GenerateVariants(ctx, productID, &models.GenerateVariantsRequest{
			Colors:     []string{"Red", " navy blue ", "red"},
			Sizes:      []string{"S", "M", ""},
			Price:      ptr(decimal.RequireFromString("15.00")),
			StockCount: ptr(5),
		})

		// Assert
		require.NoError(t, err)

		names := make([]string, len(variants))
		skus := make([]string, len(variants))

		for i, variant := range variants {
			names[i] = variant.Name
			skus[i] = variant.SKU

			assert.Equal(t, productID, variant.ProductID)
			assert.Equal(t, "15", variant.Price.String())
			assert.Equal(t, 5, *variant.StockCount)
		}

		assert.Equal(t, []string{"Red / S", "Red / M", "navy blue / S", "navy blue / M"}, names)
		assert.Equal(t, []string{"TEE-RED-S", "TEE-RED-M", "TEE-NAVYBLUE-S", "TEE-NAVYBLUE-M"}, skus)
	})

	t.Run("Success - Single option list", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		mockRepo.On("GetProductByID", mock.Anything, productID).Return(product, nil).Once()
		mockRepo.On("CreateVariants", mock.Anything, mock.Anything).Return(nil).Once()

		variants, err := productService.GenerateVariants(ctx, productID, &models.GenerateVariantsRequest{Flavors: []string{"Mint", "Cocoa"}})

		require.NoError(t, err)
		require.Len(t, variants, 2)
		assert.Equal(t, "Mint", variants[0].Name)
		assert.Equal(t, "TEE-COCOA", variants[1].SKU)
	})

	t.Run("Failure - No options", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		variants, err := productService.GenerateVariants(ctx, productID, &models.GenerateVariantsRequest{Colors: []string{" "}})

		assert.Nil(t, variants)
		assert.ErrorContains(t, err, "You need to add at least one color, size, or flavor option")
	})

	t.Run("Failure - Too many combinations", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		options := make([]string, 11)
		for i := range options {
			options[i] = string(rune('A' + i))
		}

		_, err := productService.GenerateVariants(ctx, productID, &models.GenerateVariantsRequest{Colors: options, Sizes: options})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))
	})

	t.Run("Failure - Duplicate SKU", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		mockRepo.On("GetProductByID", mock.Anything, productID).Return(product, nil).Once()
		mockRepo.On("CreateVariants", mock.Anything, mock.Anything).Return(repository.ErrDuplicateEntry).Once()

		_, err := productService.GenerateVariants(ctx, productID, &models.GenerateVariantsRequest{Sizes: []string{"S"}})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeDuplicateEntry))
	})
}

func TestUpdateVariant(t *testing.T) {
	ctx := context.Background()
	productID, variantID := uuid.New(), uuid.New()

	t.Run("Success - Partial update", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		existing := &models.Variant{ID: variantID, ProductID: productID, Name: "Large", SKU: "LAT-L", StockCount: ptr(4)}
		mockRepo.On("GetVariant", mock.Anything, productID, variantID).Return(existing, nil).Once()
		mockRepo.On("UpdateVariant", mock.Anything, mock.MatchedBy(func(v *models.Variant) bool {
			return v.Name == "Large" && v.Price.String() == "4.25" && *v.StockCount == 4
		})).Return(nil).Once()

		variant, err := productService.UpdateVariant(ctx, productID, variantID, &models.UpdateVariantRequest{Price: ptr(decimal.RequireFromString("4.25"))})

		require.NoError(t, err)
		assert.Equal(t, "LAT-L", variant.SKU)
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		mockRepo.On("GetVariant", mock.Anything, productID, variantID).Return(nil, repository.ErrNotFound).Once()

		variant, err := productService.UpdateVariant(ctx, productID, variantID, &models.UpdateVariantRequest{Name: ptr("XL")})

		assert.Nil(t, variant)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})

	t.Run("Failure - Negative price", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		mockRepo.On("GetVariant", mock.Anything, productID, variantID).Return(&models.Variant{ID: variantID, ProductID: productID}, nil).Once()

		_, err := productService.UpdateVariant(ctx, productID, variantID, &models.UpdateVariantRequest{Price: ptr(decimal.RequireFromString("-1"))})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))
	})
}

func TestDeleteVariant(t *testing.T) {
	ctx := context.Background()
	productID, variantID := uuid.New(), uuid.New()

	t.Run("Success - Delete Variant", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		mockRepo.On("DeleteVariant", mock.Anything, productID, variantID).Return(nil).Once()

		assert.NoError(t, productService.DeleteVariant(ctx, productID, variantID))
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		mockRepo.On("DeleteVariant", mock.Anything, productID, variantID).Return(repository.ErrNotFound).Once()

		err := productService.DeleteVariant(ctx, productID, variantID)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})
}

func TestDecrementStock(t *testing.T) {
	ctx := context.Background()
	first, second := uuid.New(), uuid.New()
	variantID := uuid.New()

	items := []models.LineItem{
		{ProductID: first, Quantity: 2},
		{ProductID: second, VariantID: &variantID, Quantity: 1},
	}

	t.Run("Success - Every item decremented", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		mockRepo.On("DecrementStock", mock.Anything, first, (*uuid.UUID)(nil), 2).Return(nil).Once()
		mockRepo.On("DecrementStock", mock.Anything, second, &variantID, 1).Return(nil).Once()

		assert.NoError(t, productService.DecrementStock(ctx, items))
	})

	t.Run("Failure - Continues past a failing item", func(t *testing.T) {
		mockRepo := mocks.NewProductRepository(t)
		productService := service.NewProductService(mockRepo, nil, time.Minute)

		mockRepo.On("DecrementStock", mock.Anything, first, (*uuid.UUID)(nil), 2).Return(errors.New("deadlock")).Once()
		mockRepo.On("DecrementStock", mock.Anything, second, &variantID, 1).Return(nil).Once()

		assert.ErrorContains(t, productService.DecrementStock(ctx, items), "deadlock")
	})
}
