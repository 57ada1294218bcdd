package handlers_test

import (
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

func TestCreateCustomer(t *testing.T) {
	t.Run("Success - Customer Created", func(t *testing.T) {
		mockCustomerService := mocks.NewCustomerService(t)
		customerHandler := handlers.NewCustomerHandler(mockCustomerService)

		reqBody := models.CreateCustomerRequest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
		mockCustomerService.On("CreateCustomer", mock.Anything, &reqBody).
			Return(&models.Customer{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace", Tier: models.TierBronze}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/customers", jsonBody(t, reqBody), uuid.New(), nil)
		rr := httptest.NewRecorder()

		customerHandler.CreateCustomer().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, models.TierBronze, decodeData[models.Customer](t, rr).Tier)
	})

	t.Run("Failure - Invalid email", func(t *testing.T) {
		mockCustomerService := mocks.NewCustomerService(t)
		customerHandler := handlers.NewCustomerHandler(mockCustomerService)

		reqBody := models.CreateCustomerRequest{FirstName: "Ada", LastName: "Lovelace", Email: "ada"}
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/customers", jsonBody(t, reqBody), uuid.New(), nil)
		rr := httptest.NewRecorder()

		customerHandler.CreateCustomer().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeError(t, rr).Code)
	})
}

func TestGetCustomerProfile(t *testing.T) {
	customerID := uuid.New()
	params := map[string]string{"id": customerID.String()}

	t.Run("Success - Profile returned", func(t *testing.T) {
		mockCustomerService := mocks.NewCustomerService(t)
		customerHandler := handlers.NewCustomerHandler(mockCustomerService)

		profile := &models.CustomerProfile{
			Customer:        &models.Customer{ID: customerID, Tier: models.TierSilver, TotalSpend: decimal.NewFromInt(800)},
			TabBalance:      decimal.RequireFromString("42.50"),
			SpendToNextTier: decimal.NewFromInt(1200),
		}
		mockCustomerService.On("GetProfile", mock.Anything, customerID).Return(profile, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/customers/"+customerID.String()+"/profile", nil, uuid.New(), params)
		rr := httptest.NewRecorder()

		customerHandler.GetCustomerProfile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		got := decodeData[models.CustomerProfile](t, rr)
		assert.Equal(t, "42.50", got.TabBalance.StringFixed(2))
		assert.Equal(t, models.TierSilver, got.Customer.Tier)
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		mockCustomerService := mocks.NewCustomerService(t)
		customerHandler := handlers.NewCustomerHandler(mockCustomerService)

		mockCustomerService.On("GetProfile", mock.Anything, customerID).Return(nil, appErrors.NotFoundError("Customer not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/customers/"+customerID.String()+"/profile", nil, uuid.New(), params)
		rr := httptest.NewRecorder()

		customerHandler.GetCustomerProfile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListCustomers(t *testing.T) {
	mockCustomerService := mocks.NewCustomerService(t)
	customerHandler := handlers.NewCustomerHandler(mockCustomerService)

	mockCustomerService.On("ListCustomers", mock.Anything, "ada", 1, 10).
		Return([]*models.Customer{{ID: uuid.New(), FirstName: "Ada"}}, 1, nil).Once()

	req := testutils.CreateTestRequestWithContext(http.MethodGet, "/customers?q=ada&page=0", nil, uuid.New(), nil)
	rr := httptest.NewRecorder()

	customerHandler.ListCustomers().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decodeData[models.PaginatedResponse](t, rr).Page)
}
