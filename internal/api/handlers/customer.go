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
)

type CustomerHandler struct {
	customerService service.CustomerService
	validator       *validator.Validate
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, validator: validator.New()}
}

// CreateCustomer godoc
//
//	@Summary		Create a customer
//	@Description	New customers start in the Bronze tier.
//	@Tags			Customers
//	@Accept			json
//	@Produce		json
//	@Param			customer	body		models.CreateCustomerRequest	true	"Customer details"
//	@Success		201			{object}	models.Customer
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Failure		409			{object}	response.ErrorResponse	"Email already in use"
//	@Security		BearerAuth
//	@Router			/customers [post]
func (h *CustomerHandler) CreateCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateCustomerRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create customer input")
			return
		}

		customer, err := h.customerService.CreateCustomer(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create customer", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Customer created", slog.String("customerID", customer.ID.String()))
		response.Success(w, http.StatusCreated, customer)
	}
}

// GetCustomer godoc
//
//	@Summary	Get a customer
//	@Tags		Customers
//	@Produce	json
//	@Param		id	path		string	true	"Customer ID"	Format(uuid)
//	@Success	200	{object}	models.Customer
//	@Failure	404	{object}	response.ErrorResponse	"Customer not found"
//	@Security	BearerAuth
//	@Router		/customers/{id} [get]
func (h *CustomerHandler) GetCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid customer ID"))
			return
		}

		customer, err := h.customerService.GetCustomer(r.Context(), id)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to get customer", slog.String("customerID", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, customer)
	}
}

// UpdateCustomer godoc
//
//	@Summary	Update a customer
//	@Tags		Customers
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string							true	"Customer ID"	Format(uuid)
//	@Param		customer	body		models.UpdateCustomerRequest	true	"Fields to change"
//	@Success	200			{object}	models.Customer
//	@Failure	404			{object}	response.ErrorResponse	"Customer not found"
//	@Security	BearerAuth
//	@Router		/customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid customer ID"))
			return
		}

		var req models.UpdateCustomerRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		customer, err := h.customerService.UpdateCustomer(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update customer", slog.String("customerID", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, customer)
	}
}

// ListCustomers godoc
//
//	@Summary	List customers
//	@Tags		Customers
//	@Produce	json
//	@Param		q			query		string	false	"Search by name, email or phone"
//	@Param		page		query		int		false	"Page number"	default(1)
//	@Param		pageSize	query		int		false	"Page size"		default(10)
//	@Success	200			{object}	models.PaginatedResponse
//	@Security	BearerAuth
//	@Router		/customers [get]
func (h *CustomerHandler) ListCustomers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize := utils.Pagination(r)

		customers, total, err := h.customerService.ListCustomers(r.Context(), r.URL.Query().Get("q"), page, pageSize)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list customers", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     customers,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// GetCustomerProfile godoc
//
//	@Summary		Get a customer's loyalty profile
//	@Description	Returns the customer with their tab balance and the spend needed for the next tier.
//	@Tags			Customers
//	@Produce		json
//	@Param			id	path		string	true	"Customer ID"	Format(uuid)
//	@Success		200	{object}	models.CustomerProfile
//	@Failure		404	{object}	response.ErrorResponse	"Customer not found"
//	@Security		BearerAuth
//	@Router			/customers/{id}/profile [get]
func (h *CustomerHandler) GetCustomerProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid customer ID"))
			return
		}

		profile, err := h.customerService.GetProfile(r.Context(), id)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to get customer profile", slog.String("customerID", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, profile)
	}
}
