package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/pos-platform/internal/errors"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	repository "github.com/aaravmahajanofficial/pos-platform/internal/repositories"
	"github.com/aaravmahajanofficial/pos-platform/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/pos-platform/internal/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var staffJWTKey = []byte("staff-test-key")

func setupStaffServiceTest(t *testing.T) (service.StaffService, *mocks.StaffRepository, *mocks.RateLimitRepository) {
	staffRepo := mocks.NewStaffRepository(t)
	rateLimitRepo := mocks.NewRateLimitRepository(t)

	return service.NewStaffService(staffRepo, rateLimitRepo, staffJWTKey, 12*time.Hour), staffRepo, rateLimitRepo
}

func TestRegisterStaff(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Defaults to cashier", func(t *testing.T) {
		staffService, staffRepo, _ := setupStaffServiceTest(t)

		staffRepo.On("GetStaffByEmail", mock.Anything, "till@example.com").Return(nil, repository.ErrNotFound).Once()
		staffRepo.On("CreateStaff", mock.Anything, mock.MatchedBy(func(s *models.Staff) bool {
			return s.Role == models.RoleCashier && bcrypt.CompareHashAndPassword([]byte(s.Password), []byte("secret1")) == nil
		})).Return(nil).Once()

		staff, err := staffService.Register(ctx, &models.RegisterRequest{Email: "Till@Example.com", Password: "secret1", Name: "Till"})

		require.NoError(t, err)
		assert.Equal(t, "till@example.com", staff.Email)
		assert.Equal(t, models.RoleCashier, staff.Role)
	})

	t.Run("Failure - Email taken", func(t *testing.T) {
		staffService, staffRepo, _ := setupStaffServiceTest(t)

		staffRepo.On("GetStaffByEmail", mock.Anything, "till@example.com").Return(&models.Staff{ID: uuid.New()}, nil).Once()

		staff, err := staffService.Register(ctx, &models.RegisterRequest{Email: "till@example.com", Password: "secret1", Name: "Till"})

		assert.Nil(t, staff)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeDuplicateEntry))
	})
}

func TestLoginStaff(t *testing.T) {
	ctx := context.Background()
	staffID := uuid.New()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &models.Staff{ID: staffID, Email: "boss@example.com", Password: string(hash), Role: models.RoleManager}

	t.Run("Success - Token carries role", func(t *testing.T) {
		staffService, staffRepo, rateLimitRepo := setupStaffServiceTest(t)

		rateLimitRepo.On("CheckLoginRateLimit", mock.Anything, "boss@example.com").Return(true, 4, 0, nil).Once()
		staffRepo.On("GetStaffByEmail", mock.Anything, "boss@example.com").Return(stored, nil).Once()

		resp, err := staffService.Login(ctx, &models.LoginRequest{Email: "boss@example.com", Password: "secret1"})

		require.NoError(t, err)
		require.True(t, resp.Success)
		assert.Equal(t, int((12 * time.Hour).Seconds()), resp.ExpiresIn)

		claims := &models.Claims{}
		_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (any, error) { return staffJWTKey, nil })
		require.NoError(t, err)
		assert.Equal(t, staffID, claims.UserID)
		assert.Equal(t, models.RoleManager, claims.Role)
	})

	t.Run("Failure - Wrong password", func(t *testing.T) {
		staffService, staffRepo, rateLimitRepo := setupStaffServiceTest(t)

		rateLimitRepo.On("CheckLoginRateLimit", mock.Anything, "boss@example.com").Return(true, 3, 0, nil).Once()
		staffRepo.On("GetStaffByEmail", mock.Anything, "boss@example.com").Return(stored, nil).Once()

		resp, err := staffService.Login(ctx, &models.LoginRequest{Email: "boss@example.com", Password: "wrong"})

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, 3, resp.RemainingTries)
		assert.Empty(t, resp.Token)
	})

	t.Run("Failure - Unknown email", func(t *testing.T) {
		staffService, staffRepo, rateLimitRepo := setupStaffServiceTest(t)

		rateLimitRepo.On("CheckLoginRateLimit", mock.Anything, "ghost@example.com").Return(true, 4, 0, nil).Once()
		staffRepo.On("GetStaffByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound).Once()

		resp, err := staffService.Login(ctx, &models.LoginRequest{Email: "ghost@example.com", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, "Invalid email or password", resp.Message)
	})

	t.Run("Failure - Rate limited", func(t *testing.T) {
		staffService, _, rateLimitRepo := setupStaffServiceTest(t)

		rateLimitRepo.On("CheckLoginRateLimit", mock.Anything, "boss@example.com").Return(false, 0, 15, nil).Once()

		resp, err := staffService.Login(ctx, &models.LoginRequest{Email: "boss@example.com", Password: "secret1"})

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, 15, resp.RetryAfter)
	})

	t.Run("Failure - Rate limiter down", func(t *testing.T) {
		staffService, _, rateLimitRepo := setupStaffServiceTest(t)

		rateLimitRepo.On("CheckLoginRateLimit", mock.Anything, "boss@example.com").Return(false, 0, 0, errors.New("redis down")).Once()

		resp, err := staffService.Login(ctx, &models.LoginRequest{Email: "boss@example.com", Password: "secret1"})

		assert.Nil(t, resp)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeThirdPartyError))
	})
}

func TestGetStaffByID(t *testing.T) {
	staffService, staffRepo, _ := setupStaffServiceTest(t)
	id := uuid.New()

	staffRepo.On("GetStaffByID", mock.Anything, id).Return(nil, repository.ErrNotFound).Once()

	staff, err := staffService.GetStaffByID(context.Background(), id)

	assert.Nil(t, staff)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
}
