package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/pos-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-platform/internal/errors"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	service "github.com/aaravmahajanofficial/pos-platform/internal/services"
	"github.com/aaravmahajanofficial/pos-platform/internal/utils"
	"github.com/aaravmahajanofficial/pos-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

// CreateSession godoc
//
//	@Summary		Open a checkout session
//	@Description	Starts an empty cart at a register, optionally attached to a customer.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			session	body		models.CreateSessionRequest	false	"Optional customer"
//	@Success		201		{object}	models.SessionView
//	@Failure		404		{object}	response.ErrorResponse	"Customer not found"
//	@Security		BearerAuth
//	@Router			/checkout/sessions [post]
func (h *CheckoutHandler) CreateSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateSessionRequest
		if r.ContentLength > 0 && !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view, err := h.checkoutService.CreateSession(r.Context(), req.CustomerID)
		if err != nil {
			logger.Warn("Failed to open checkout session", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, view)
	}
}

// GetSession godoc
//
//	@Summary		Get a checkout session
//	@Description	Returns the cart, totals, payment input and any notices queued since the last call.
//	@Tags			Checkout
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"	Format(uuid)
//	@Success		200	{object}	models.SessionView
//	@Failure		404	{object}	response.ErrorResponse	"Session not found"
//	@Security		BearerAuth
//	@Router			/checkout/sessions/{id} [get]
func (h *CheckoutHandler) GetSession() http.HandlerFunc {
	return h.sessionAction(func(r *http.Request, id uuid.UUID) (*models.SessionView, error) {
		return h.checkoutService.GetSession(r.Context(), id)
	})
}

// DeleteSession godoc
//
//	@Summary	Close a checkout session
//	@Tags		Checkout
//	@Param		id	path	string	true	"Session ID"	Format(uuid)
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse	"Session not found"
//	@Failure	409	{object}	response.ErrorResponse	"Payment in progress"
//	@Security	BearerAuth
//	@Router		/checkout/sessions/{id} [delete]
func (h *CheckoutHandler) DeleteSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}

		if err := h.checkoutService.DeleteSession(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// AddItem godoc
//
//	@Summary		Scan an item into the cart
//	@Description	Adding an item already in the cart increases its quantity.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Session ID"	Format(uuid)
//	@Param			item	body		models.AddItemRequest	true	"Product and optional variant"
//	@Success		200		{object}	models.SessionView
//	@Failure		409		{object}	response.ErrorResponse	"Stock exceeded or payment in progress"
//	@Failure		422		{object}	response.ErrorResponse	"Item unavailable"
//	@Security		BearerAuth
//	@Router			/checkout/sessions/{id}/items [post]
func (h *CheckoutHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view, err := h.checkoutService.AddItem(r.Context(), id, &req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to add item",
				slog.String("sessionID", id.String()),
				slog.String("productID", req.ProductID.String()),
				slog.String("error", err.Error()),
			)
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// UpdateQuantity godoc
//
//	@Summary		Change a line item's quantity
//	@Description	A quantity of zero or less removes the line.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string							true	"Session ID"	Format(uuid)
//	@Param			index		path		int								true	"Line index"
//	@Param			quantity	body		models.UpdateQuantityRequest	true	"New quantity"
//	@Success		200			{object}	models.SessionView
//	@Failure		409			{object}	response.ErrorResponse	"Stock exceeded"
//	@Security		BearerAuth
//	@Router			/checkout/sessions/{id}/items/{index} [patch]
func (h *CheckoutHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}

		index, ok := lineIndex(w, r)
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view, err := h.checkoutService.SetQuantity(r.Context(), id, index, req.Quantity)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// RemoveItem godoc
//
//	@Summary	Remove a line item
//	@Tags		Checkout
//	@Produce	json
//	@Param		id		path		string	true	"Session ID"	Format(uuid)
//	@Param		index	path		int		true	"Line index"
//	@Success	200		{object}	models.SessionView
//	@Security	BearerAuth
//	@Router		/checkout/sessions/{id}/items/{index} [delete]
func (h *CheckoutHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}

		index, ok := lineIndex(w, r)
		if !ok {
			return
		}

		view, err := h.checkoutService.RemoveItem(r.Context(), id, index)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// ClearCart godoc
//
//	@Summary	Empty the cart
//	@Tags		Checkout
//	@Produce	json
//	@Param		id	path		string	true	"Session ID"	Format(uuid)
//	@Success	200	{object}	models.SessionView
//	@Security	BearerAuth
//	@Router		/checkout/sessions/{id}/items [delete]
func (h *CheckoutHandler) ClearCart() http.HandlerFunc {
	return h.sessionAction(func(r *http.Request, id uuid.UUID) (*models.SessionView, error) {
		return h.checkoutService.ClearCart(r.Context(), id)
	})
}

// SetCustomer godoc
//
//	@Summary		Attach or detach a customer
//	@Description	A null customer_id detaches the current customer.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string						true	"Session ID"	Format(uuid)
//	@Param			customer	body		models.SetCustomerRequest	true	"Customer"
//	@Success		200			{object}	models.SessionView
//	@Failure		404			{object}	response.ErrorResponse	"Customer not found"
//	@Security		BearerAuth
//	@Router			/checkout/sessions/{id}/customer [put]
func (h *CheckoutHandler) SetCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.SetCustomerRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view, err := h.checkoutService.SetCustomer(r.Context(), id, req.CustomerID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// SelectPaymentMethod godoc
//
//	@Summary		Select a payment method
//	@Description	Discards any previous payment input. Cash starts with the exact total tendered.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Session ID"	Format(uuid)
//	@Param			method	body		models.SelectPaymentMethodRequest	true	"Payment method"
//	@Success		200		{object}	models.SessionView
//	@Security		BearerAuth
//	@Router			/checkout/sessions/{id}/payment/method [put]
func (h *CheckoutHandler) SelectPaymentMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.SelectPaymentMethodRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view, err := h.checkoutService.SelectPaymentMethod(r.Context(), id, req.Method)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// UpdatePaymentInput godoc
//
//	@Summary		Replace the payment input
//	@Description	Only the fields of the given method are kept.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Session ID"	Format(uuid)
//	@Param			payment	body		models.PaymentInputRequest	true	"Payment input"
//	@Success		200		{object}	models.SessionView
//	@Security		BearerAuth
//	@Router			/checkout/sessions/{id}/payment [put]
func (h *CheckoutHandler) UpdatePaymentInput() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.PaymentInputRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view, err := h.checkoutService.UpdatePaymentInput(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// PressNumpad godoc
//
//	@Summary		Press a numpad key
//	@Description	Edits the cash amount tendered. Keys: digits, ".", "clear", "backspace" and the quick amounts 10, 20, 50 and 100.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			id	path		string					true	"Session ID"	Format(uuid)
//	@Param			key	body		models.NumpadRequest	true	"Key"
//	@Success		200	{object}	models.SessionView
//	@Failure		400	{object}	response.ErrorResponse	"Not a cash payment"
//	@Security		BearerAuth
//	@Router			/checkout/sessions/{id}/payment/numpad [post]
func (h *CheckoutHandler) PressNumpad() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.NumpadRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view, err := h.checkoutService.PressNumpad(r.Context(), id, req.Key)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// SubmitPayment godoc
//
//	@Summary		Submit the payment
//	@Description	Validates, charges and records the sale. On success the cart is cleared.
//	@Tags			Checkout
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"	Format(uuid)
//	@Success		200	{object}	models.PaymentResult
//	@Failure		400	{object}	response.ErrorResponse	"Payment input is invalid"
//	@Failure		402	{object}	response.ErrorResponse	"Charge declined"
//	@Failure		409	{object}	response.ErrorResponse	"Payment in progress"
//	@Failure		500	{object}	response.ErrorResponse	"Charged but not recorded"
//	@Security		BearerAuth
//	@Router			/checkout/sessions/{id}/payment/submit [post]
func (h *CheckoutHandler) SubmitPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, ok := sessionID(w, r)
		if !ok {
			return
		}

		logger = logger.With(slog.String("sessionID", id.String()))

		result, err := h.checkoutService.SubmitPayment(r.Context(), id)
		if err != nil {
			logger.Warn("Payment not completed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if result.Transaction != nil {
			logger = logger.With(slog.String("transactionID", result.Transaction.ID.String()))
		}

		logger.Info("Payment submitted", slog.String("message", result.Message))
		response.Success(w, http.StatusOK, result)
	}
}

// OpenTab godoc
//
//	@Summary		Keep the cart as an open tab
//	@Description	Records the cart as an unpaid sale for the session's customer and empties the cart.
//	@Tags			Checkout
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"	Format(uuid)
//	@Success		201	{object}	models.OpenTabResult
//	@Failure		400	{object}	response.ErrorResponse	"No customer or empty cart"
//	@Failure		409	{object}	response.ErrorResponse	"Payment in progress"
//	@Security		BearerAuth
//	@Router			/checkout/sessions/{id}/tabs [post]
func (h *CheckoutHandler) OpenTab() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, ok := sessionID(w, r)
		if !ok {
			return
		}

		result, err := h.checkoutService.OpenTab(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to open tab", slog.String("sessionID", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, result)
	}
}

// LoadTab godoc
//
//	@Summary		Check out an open tab
//	@Description	Replaces the cart and customer with those of the open tab. The next payment settles it.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			id	path		string					true	"Session ID"	Format(uuid)
//	@Param			tab	body		models.LoadTabRequest	true	"Open tab"
//	@Success		200	{object}	models.SessionView
//	@Failure		404	{object}	response.ErrorResponse	"Tab not found"
//	@Failure		409	{object}	response.ErrorResponse	"Tab is not open or payment in progress"
//	@Security		BearerAuth
//	@Router			/checkout/sessions/{id}/tabs/load [post]
func (h *CheckoutHandler) LoadTab() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.LoadTabRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view, err := h.checkoutService.LoadTab(r.Context(), id, req.TransactionID)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to load tab",
				slog.String("sessionID", id.String()),
				slog.String("transactionID", req.TransactionID.String()),
				slog.String("error", err.Error()),
			)
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *CheckoutHandler) sessionAction(action func(r *http.Request, id uuid.UUID) (*models.SessionView, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}

		view, err := action(r, id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := utils.PathUUID(r, "id")
	if err != nil {
		response.Error(w, errors.BadRequestError("Invalid session ID"))
		return uuid.Nil, false
	}

	return id, true
}

func lineIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		response.Error(w, errors.BadRequestError("Invalid line index"))
		return 0, false
	}

	return index, true
}
