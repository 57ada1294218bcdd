package handlers

import (
	"fmt"
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
)

type StaffHandler struct {
	staffService service.StaffService
	validator    *validator.Validate
}

func NewStaffHandler(staffService service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService, validator: validator.New()}
}

// Register godoc
//
//	@Summary		Register a staff member
//	@Description	Admins only. The role defaults to cashier.
//	@Tags			Staff
//	@Accept			json
//	@Produce		json
//	@Param			staff	body		models.RegisterRequest	true	"Staff details"
//	@Success		201		{object}	models.Staff
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		409		{object}	response.ErrorResponse	"Email already registered"
//	@Security		BearerAuth
//	@Router			/staff/register [post]
func (h *StaffHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid registration input")
			return
		}

		staff, err := h.staffService.Register(r.Context(), &req)
		if err != nil {
			logger.Error("Staff registration failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Staff member registered", slog.String("staffID", staff.ID.String()), slog.String("role", string(staff.Role)))
		response.Success(w, http.StatusCreated, staff)
	}
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Returns a bearer token. Attempts are rate limited per email.
//	@Tags			Staff
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest	true	"Email and password"
//	@Success		200			{object}	models.LoginResponse
//	@Failure		401			{object}	response.ErrorResponse	"Invalid credentials"
//	@Failure		429			{object}	response.ErrorResponse	"Too many attempts"
//	@Router			/staff/login [post]
func (h *StaffHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.staffService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			if resp.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfter))
				response.Error(w, errors.TooManyRequestsError(resp.Message).WithDetail(fmt.Sprintf("retry after %d seconds", resp.RetryAfter)))

				return
			}

			logger.Warn("Invalid login attempt", slog.Int("remainingTries", resp.RemainingTries))
			response.Error(w, errors.UnauthorizedError(resp.Message).WithDetail(fmt.Sprintf("%d attempts remaining", resp.RemainingTries)))

			return
		}

		logger.Info("Staff member logged in")
		response.Success(w, http.StatusOK, resp)
	}
}

// Profile godoc
//
//	@Summary	Current staff member
//	@Tags		Staff
//	@Produce	json
//	@Success	200	{object}	models.Staff
//	@Failure	401	{object}	response.ErrorResponse	"Authentication required"
//	@Security	BearerAuth
//	@Router		/staff/me [get]
func (h *StaffHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		staff, err := h.staffService.GetStaffByID(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, staff)
	}
}
