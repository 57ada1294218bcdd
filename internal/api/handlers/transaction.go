package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/aaravmahajanofficial/pos-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-platform/internal/errors"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	service "github.com/aaravmahajanofficial/pos-platform/internal/services"
	"github.com/aaravmahajanofficial/pos-platform/internal/utils"
	"github.com/aaravmahajanofficial/pos-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxWebhookBytes = 64 << 10

type TransactionHandler struct {
	transactionService service.TransactionService
	validator          *validator.Validate
}

func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, validator: validator.New()}
}

// ListTransactions godoc
//
//	@Summary		List transactions
//	@Description	Newest first. Amount bounds are inclusive; dates are RFC 3339.
//	@Tags			Transactions
//	@Produce		json
//	@Param			status		query		string	false	"open, completed or refunded"
//	@Param			method		query		string	false	"Payment method"
//	@Param			customerId	query		string	false	"Customer ID"	Format(uuid)
//	@Param			minAmount	query		string	false	"Minimum total"
//	@Param			maxAmount	query		string	false	"Maximum total"
//	@Param			from		query		string	false	"Created at or after"
//	@Param			to			query		string	false	"Created at or before"
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			pageSize	query		int		false	"Page size"		default(10)
//	@Success		200			{object}	models.PaginatedResponse
//	@Failure		400			{object}	response.ErrorResponse	"Invalid filter"
//	@Security		BearerAuth
//	@Router			/transactions [get]
func (h *TransactionHandler) ListTransactions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		filter, err := parseTransactionFilter(r.URL.Query())
		if err != nil {
			logger.Warn("Invalid transaction filter", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		page, pageSize := utils.Pagination(r)

		transactions, total, err := h.transactionService.ListTransactions(r.Context(), filter, page, pageSize)
		if err != nil {
			logger.Error("Failed to list transactions", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     transactions,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// GetTransaction godoc
//
//	@Summary	Get a transaction
//	@Tags		Transactions
//	@Produce	json
//	@Param		id	path		string	true	"Transaction ID"	Format(uuid)
//	@Success	200	{object}	models.Transaction
//	@Failure	404	{object}	response.ErrorResponse	"Transaction not found"
//	@Security	BearerAuth
//	@Router		/transactions/{id} [get]
func (h *TransactionHandler) GetTransaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid transaction ID"))
			return
		}

		tx, err := h.transactionService.GetTransaction(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, tx)
	}
}

// GetStats godoc
//
//	@Summary	Sales statistics
//	@Tags		Transactions
//	@Produce	json
//	@Param		from	query		string	false	"Created at or after (RFC 3339)"
//	@Param		to		query		string	false	"Created at or before (RFC 3339)"
//	@Success	200		{object}	models.TransactionStats
//	@Security	BearerAuth
//	@Router		/transactions/stats [get]
func (h *TransactionHandler) GetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		from, err := parseTime(query, "from")
		if err != nil {
			response.Error(w, err)
			return
		}

		to, err := parseTime(query, "to")
		if err != nil {
			response.Error(w, err)
			return
		}

		stats, err := h.transactionService.GetStats(r.Context(), from, to)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to compute stats", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, stats)
	}
}

// RefundTransaction godoc
//
//	@Summary		Refund a transaction
//	@Description	Only completed transactions can be refunded. Requires a manager or admin.
//	@Tags			Transactions
//	@Produce		json
//	@Param			id	path		string	true	"Transaction ID"	Format(uuid)
//	@Success		200	{object}	models.Transaction
//	@Failure		403	{object}	response.ErrorResponse	"Role may not refund"
//	@Failure		409	{object}	response.ErrorResponse	"Transaction is not completed"
//	@Security		BearerAuth
//	@Router			/transactions/{id}/refund [post]
func (h *TransactionHandler) RefundTransaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized refund attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid transaction ID"))
			return
		}

		tx, err := h.transactionService.RefundTransaction(r.Context(), id, claims.Role)
		if err != nil {
			logger.Warn("Refund rejected", slog.String("transactionID", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Refund issued", slog.String("transactionID", id.String()))
		response.Success(w, http.StatusOK, tx)
	}
}

// SendReceipt godoc
//
//	@Summary		Email a receipt
//	@Description	The optional message is sanitised and appended to the receipt.
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Transaction ID"	Format(uuid)
//	@Param			receipt	body		models.SendReceiptRequest	true	"Recipient and message"
//	@Success		202		{object}	models.NotificationResponse
//	@Failure		404		{object}	response.ErrorResponse	"Transaction not found"
//	@Security		BearerAuth
//	@Router			/transactions/{id}/receipt [post]
func (h *TransactionHandler) SendReceipt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid transaction ID"))
			return
		}

		var req models.SendReceiptRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		notification, err := h.transactionService.SendReceipt(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to send receipt", slog.String("transactionID", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Receipt sent", slog.String("transactionID", id.String()), slog.String("notificationID", notification.ID.String()))
		response.Success(w, http.StatusAccepted, notification)
	}
}

// StripeWebhook godoc
//
//	@Summary		Stripe webhook
//	@Description	Marks card sales refunded from the Stripe dashboard.
//	@Tags			Transactions
//	@Accept			json
//	@Param			Stripe-Signature	header	string	true	"Webhook signature"
//	@Success		200
//	@Failure		400	{object}	response.ErrorResponse	"Invalid signature or payload"
//	@Router			/webhooks/stripe [post]
func (h *TransactionHandler) StripeWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
		if err != nil {
			response.Error(w, errors.BadRequestError("Failed to read webhook body"))
			return
		}

		if err := h.transactionService.HandleStripeWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
			logger.Warn("Webhook rejected", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func parseTransactionFilter(query url.Values) (models.TransactionFilter, error) {
	filter := models.TransactionFilter{
		Status:        models.TransactionStatus(query.Get("status")),
		PaymentMethod: models.PaymentMethod(query.Get("method")),
	}

	switch filter.Status {
	case "", models.TransactionStatusOpen, models.TransactionStatusCompleted, models.TransactionStatusRefunded:
	default:
		return filter, errors.BadRequestError("Invalid status filter").WithDetail(string(filter.Status))
	}

	if filter.PaymentMethod != "" && !filter.PaymentMethod.IsValid() {
		return filter, errors.BadRequestError("Invalid payment method filter").WithDetail(string(filter.PaymentMethod))
	}

	if raw := query.Get("customerId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.BadRequestError("Invalid customerId")
		}

		filter.CustomerID = &id
	}

	var err error

	if filter.MinimumAmount, err = parseAmount(query, "minAmount"); err != nil {
		return filter, err
	}

	if filter.MaximumAmount, err = parseAmount(query, "maxAmount"); err != nil {
		return filter, err
	}

	if filter.From, err = parseTime(query, "from"); err != nil {
		return filter, err
	}

	if filter.To, err = parseTime(query, "to"); err != nil {
		return filter, err
	}

	return filter, nil
}

func parseAmount(query url.Values, key string) (*decimal.Decimal, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, errors.BadRequestError("Invalid " + key).WithDetail(err.Error())
	}

	return &amount, nil
}

func parseTime(query url.Values, key string) (*time.Time, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errors.BadRequestError("Invalid " + key).WithDetail("expected an RFC 3339 timestamp")
	}

	return &t, nil
}
