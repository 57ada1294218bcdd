package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/pos-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-platform/internal/errors"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	service "github.com/aaravmahajanofficial/pos-platform/internal/services"
	"github.com/aaravmahajanofficial/pos-platform/internal/utils"
	"github.com/aaravmahajanofficial/pos-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New()}
}

// CreateProduct godoc
//
//	@Summary		Create a product
//	@Description	Adds a product to the catalog. The description is sanitised.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		models.CreateProductRequest	true	"Product details"
//	@Success		201		{object}	models.Product
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		409		{object}	response.ErrorResponse	"Duplicate SKU"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/products [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create product input")
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.String("sku", req.SKU), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product created", slog.String("productID", product.ID.String()))
		response.Success(w, http.StatusCreated, product)
	}
}

// GetProduct godoc
//
//	@Summary		Get a product
//	@Description	Returns a product with its variants.
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"	Format(uuid)
//	@Success		200	{object}	models.Product
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Security		BearerAuth
//	@Router			/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathUUID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("id", r.PathValue("id")))
			response.Error(w, errors.BadRequestError("Invalid product ID"))
			return
		}

		product, err := h.productService.GetProductByID(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product", slog.String("productID", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// UpdateProduct godoc
//
//	@Summary		Update a product
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Product ID"	Format(uuid)
//	@Param			product	body		models.UpdateProductRequest	true	"Fields to change"
//	@Success		200		{object}	models.Product
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Security		BearerAuth
//	@Router			/products/{id} [put]
func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID"))
			return
		}

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update product input", slog.String("productID", id.String()))
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update product", slog.String("productID", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated", slog.String("productID", id.String()))
		response.Success(w, http.StatusOK, product)
	}
}

// DeleteProduct godoc
//
//	@Summary		Delete a product
//	@Description	Deletes the product and its variants. Recorded transactions are unaffected.
//	@Tags			Products
//	@Param			id	path	string	true	"Product ID"	Format(uuid)
//	@Success		204
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Security		BearerAuth
//	@Router			/products/{id} [delete]
func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID"))
			return
		}

		if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
			logger.Error("Failed to delete product", slog.String("productID", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListProducts godoc
//
//	@Summary		List products
//	@Tags			Products
//	@Produce		json
//	@Param			category	query		string	false	"Filter by category"
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			pageSize	query		int		false	"Page size"		default(10)
//	@Success		200			{object}	models.PaginatedResponse
//	@Security		BearerAuth
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		page, pageSize := utils.Pagination(r)
		category := r.URL.Query().Get("category")

		products, total, err := h.productService.ListProducts(r.Context(), category, page, pageSize)
		if err != nil {
			logger.Error("Failed to list products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     products,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// CreateVariant godoc
//
//	@Summary		Add a variant to a product
//	@Description	A variant overrides the product's price and stock when they are set.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Product ID"	Format(uuid)
//	@Param			variant	body		models.CreateVariantRequest	true	"Variant details"
//	@Success		201		{object}	models.Variant
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Failure		409		{object}	response.ErrorResponse	"Duplicate SKU"
//	@Security		BearerAuth
//	@Router			/products/{id}/variants [post]
func (h *ProductHandler) CreateVariant() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		productID, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID"))
			return
		}

		var req models.CreateVariantRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		variant, err := h.productService.CreateVariant(r.Context(), productID, &req)
		if err != nil {
			logger.Error("Failed to create variant", slog.String("productID", productID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Variant created", slog.String("productID", productID.String()), slog.String("variantID", variant.ID.String()))
		response.Success(w, http.StatusCreated, variant)
	}
}

// ListVariants godoc
//
//	@Summary	List a product's variants
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"	Format(uuid)
//	@Success	200	{array}		models.Variant
//	@Failure	404	{object}	response.ErrorResponse	"Product not found"
//	@Security	BearerAuth
//	@Router		/products/{id}/variants [get]
func (h *ProductHandler) ListVariants() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID"))
			return
		}

		variants, err := h.productService.ListVariants(r.Context(), productID)
		if err != nil {
			response.Error(w, err)
			return
		}

		if variants == nil {
			variants = []models.Variant{}
		}

		response.Success(w, http.StatusOK, variants)
	}
}

// GenerateVariants godoc
//
//	@Summary		Generate variants from option lists
//	@Description	Creates one variant per combination of the given colors, sizes and flavors.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Product ID"	Format(uuid)
//	@Param			options	body		models.GenerateVariantsRequest	true	"Options, price and stock"
//	@Success		201		{array}		models.Variant
//	@Failure		400		{object}	response.ErrorResponse	"No options or too many combinations"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Failure		409		{object}	response.ErrorResponse	"Duplicate SKU"
//	@Security		BearerAuth
//	@Router			/products/{id}/variants/generate [post]
func (h *ProductHandler) GenerateVariants() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		productID, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID"))
			return
		}

		var req models.GenerateVariantsRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		variants, err := h.productService.GenerateVariants(r.Context(), productID, &req)
		if err != nil {
			logger.Error("Failed to generate variants", slog.String("productID", productID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, variants)
	}
}

// UpdateVariant godoc
//
//	@Summary	Update a variant
//	@Tags		Products
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string						true	"Product ID"	Format(uuid)
//	@Param		variantId	path		string						true	"Variant ID"	Format(uuid)
//	@Param		variant		body		models.UpdateVariantRequest	true	"Fields to change"
//	@Success	200			{object}	models.Variant
//	@Failure	404			{object}	response.ErrorResponse	"Variant not found"
//	@Failure	409			{object}	response.ErrorResponse	"Duplicate SKU"
//	@Security	BearerAuth
//	@Router		/products/{id}/variants/{variantId} [put]
func (h *ProductHandler) UpdateVariant() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		productID, variantID, ok := variantPath(w, r)
		if !ok {
			return
		}

		var req models.UpdateVariantRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		variant, err := h.productService.UpdateVariant(r.Context(), productID, variantID, &req)
		if err != nil {
			logger.Error("Failed to update variant", slog.String("variantID", variantID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, variant)
	}
}

// DeleteVariant godoc
//
//	@Summary	Delete a variant
//	@Tags		Products
//	@Param		id			path	string	true	"Product ID"	Format(uuid)
//	@Param		variantId	path	string	true	"Variant ID"	Format(uuid)
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse	"Variant not found"
//	@Security	BearerAuth
//	@Router		/products/{id}/variants/{variantId} [delete]
func (h *ProductHandler) DeleteVariant() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, variantID, ok := variantPath(w, r)
		if !ok {
			return
		}

		if err := h.productService.DeleteVariant(r.Context(), productID, variantID); err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to delete variant", slog.String("variantID", variantID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func variantPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	productID, err := utils.PathUUID(r, "id")
	if err != nil {
		response.Error(w, errors.BadRequestError("Invalid product ID"))
		return uuid.Nil, uuid.Nil, false
	}

	variantID, err := utils.PathUUID(r, "variantId")
	if err != nil {
		response.Error(w, errors.BadRequestError("Invalid variant ID"))
		return uuid.Nil, uuid.Nil, false
	}

	return productID, variantID, true
}
