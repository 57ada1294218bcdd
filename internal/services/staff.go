package service

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/pos-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-platform/internal/errors"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	repository "github.com/aaravmahajanofficial/pos-platform/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type StaffService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Staff, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	GetStaffByID(ctx context.Context, id uuid.UUID) (*models.Staff, error)
}

type staffService struct {
	repo      repository.StaffRepository
	rateLimit repository.RateLimitRepository
	jwtKey    []byte
	tokenTTL  time.Duration
}

func NewStaffService(repo repository.StaffRepository, rateLimit repository.RateLimitRepository, jwtKey []byte, tokenTTL time.Duration) StaffService {
	return &staffService{
		repo:      repo,
		rateLimit: rateLimit,
		jwtKey:    jwtKey,
		tokenTTL:  tokenTTL,
	}
}

func (s *staffService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Staff, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.GetStaffByEmail(ctx, email)
	if err != nil && !stdErrors.Is(err, repository.ErrNotFound) {
		return nil, errors.DatabaseError("Failed to check existing staff").WithError(err)
	}

	if existing != nil {
		return nil, errors.DuplicateEntryError("Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleCashier
	}

	staff := &models.Staff{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := s.repo.CreateStaff(ctx, staff); err != nil {
		if stdErrors.Is(err, repository.ErrDuplicateEntry) {
			return nil, errors.DuplicateEntryError("Email already registered").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create staff member").WithError(err)
	}

	return staff, nil
}

func (s *staffService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	allowed, remaining, retryAfter, err := s.rateLimit.CheckLoginRateLimit(ctx, email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		middleware.LoggerFromContext(ctx).Warn("Login rate limited", slog.Int("retryAfter", retryAfter))

		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	staff, err := s.repo.GetStaffByEmail(ctx, email)
	if err != nil && !stdErrors.Is(err, repository.ErrNotFound) {
		return nil, errors.DatabaseError("Failed to fetch staff member").WithError(err)
	}

	if staff == nil || bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(req.Password)) != nil {
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid email or password",
			RemainingTries: remaining,
		}, nil
	}

	now := time.Now()

	claims := &models.Claims{
		UserID: staff.ID,
		Email:  staff.Email,
		Role:   staff.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   staff.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		ExpiresIn: int(s.tokenTTL.Seconds()),
	}, nil
}

func (s *staffService) GetStaffByID(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	staff, err := s.repo.GetStaffByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Staff member not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch staff member").WithError(err)
	}

	return staff, nil
}
