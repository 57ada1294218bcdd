package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/pos-platform/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/pos-platform/internal/errors"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	"github.com/aaravmahajanofficial/pos-platform/internal/services/mocks"
	"github.com/aaravmahajanofficial/pos-platform/internal/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListTaxRules(t *testing.T) {
	t.Run("Success - Empty list", func(t *testing.T) {
		mockTaxRuleService := mocks.NewTaxRuleService(t)
		taxRuleHandler := handlers.NewTaxRuleHandler(mockTaxRuleService)

		mockTaxRuleService.On("GetRules", mock.Anything).Return(nil, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/tax-rules", nil, uuid.New(), nil)
		rr := httptest.NewRecorder()

		taxRuleHandler.ListTaxRules().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success":true,"data":[]}`, rr.Body.String())
	})

	t.Run("Failure - Unexpected error", func(t *testing.T) {
		mockTaxRuleService := mocks.NewTaxRuleService(t)
		taxRuleHandler := handlers.NewTaxRuleHandler(mockTaxRuleService)

		mockTaxRuleService.On("GetRules", mock.Anything).Return(nil, errors.New("boom")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/tax-rules", nil, uuid.New(), nil)
		rr := httptest.NewRecorder()

		taxRuleHandler.ListTaxRules().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, appErrors.ErrCodeInternal, decodeError(t, rr).Code)
	})
}

func TestUpsertTaxRule(t *testing.T) {
	t.Run("Success - Rule saved", func(t *testing.T) {
		mockTaxRuleService := mocks.NewTaxRuleService(t)
		taxRuleHandler := handlers.NewTaxRuleHandler(mockTaxRuleService)

		rate := decimal.RequireFromString("0.05")
		mockTaxRuleService.On("UpsertRule", mock.Anything, mock.MatchedBy(func(req *models.UpsertTaxRuleRequest) bool {
			return req.Category == "food" && req.Rate.Equal(rate)
		})).Return(&models.TaxRule{ID: uuid.New(), Category: "food", Rate: rate}, nil).Once()

		req := testutils.CreateTestRequestWithRole(http.MethodPut, "/tax-rules",
			jsonBody(t, models.UpsertTaxRuleRequest{Category: "food", Rate: rate}), uuid.New(), models.RoleManager, nil)
		rr := httptest.NewRecorder()

		taxRuleHandler.UpsertTaxRule().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, decodeData[models.TaxRule](t, rr).Rate.Equal(rate))
	})

	t.Run("Failure - Rate out of range", func(t *testing.T) {
		mockTaxRuleService := mocks.NewTaxRuleService(t)
		taxRuleHandler := handlers.NewTaxRuleHandler(mockTaxRuleService)

		mockTaxRuleService.On("UpsertRule", mock.Anything, mock.Anything).
			Return(nil, appErrors.AddValidationError("rate", "must be between 0 and 1")).Once()

		req := testutils.CreateTestRequestWithRole(http.MethodPut, "/tax-rules",
			jsonBody(t, models.UpsertTaxRuleRequest{Category: "food", Rate: decimal.NewFromInt(5)}), uuid.New(), models.RoleManager, nil)
		rr := httptest.NewRecorder()

		taxRuleHandler.UpsertTaxRule().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
