package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/pos-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	service "github.com/aaravmahajanofficial/pos-platform/internal/services"
	"github.com/aaravmahajanofficial/pos-platform/internal/utils"
	"github.com/aaravmahajanofficial/pos-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type TaxRuleHandler struct {
	taxRuleService service.TaxRuleService
	validator      *validator.Validate
}

func NewTaxRuleHandler(taxRuleService service.TaxRuleService) *TaxRuleHandler {
	return &TaxRuleHandler{taxRuleService: taxRuleService, validator: validator.New()}
}

// ListTaxRules godoc
//
//	@Summary		List tax rules
//	@Description	A rule with an empty category is the store-wide default.
//	@Tags			Tax
//	@Produce		json
//	@Success		200	{array}	models.TaxRule
//	@Security		BearerAuth
//	@Router			/tax-rules [get]
func (h *TaxRuleHandler) ListTaxRules() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rules, err := h.taxRuleService.GetRules(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to load tax rules", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if rules == nil {
			rules = []models.TaxRule{}
		}

		response.Success(w, http.StatusOK, rules)
	}
}

// UpsertTaxRule godoc
//
//	@Summary		Set the tax rate for a category
//	@Description	Managers and admins only. New rates apply to checkout sessions opened afterwards.
//	@Tags			Tax
//	@Accept			json
//	@Produce		json
//	@Param			rule	body		models.UpsertTaxRuleRequest	true	"Category and rate between 0 and 1"
//	@Success		200		{object}	models.TaxRule
//	@Failure		400		{object}	response.ErrorResponse	"Rate out of range"
//	@Security		BearerAuth
//	@Router			/tax-rules [put]
func (h *TaxRuleHandler) UpsertTaxRule() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.UpsertTaxRuleRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		rule, err := h.taxRuleService.UpsertRule(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to save tax rule", slog.String("category", req.Category), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Tax rule saved", slog.String("category", rule.Category), slog.String("rate", rule.Rate.String()))
		response.Success(w, http.StatusOK, rule)
	}
}
