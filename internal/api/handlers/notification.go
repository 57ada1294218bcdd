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
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GetNotification godoc
//
//	@Summary	Get a sent notification
//	@Tags		Notifications
//	@Produce	json
//	@Param		id	path		string	true	"Notification ID"	Format(uuid)
//	@Success	200	{object}	models.Notification
//	@Failure	404	{object}	response.ErrorResponse	"Notification not found"
//	@Security	BearerAuth
//	@Router		/notifications/{id} [get]
func (h *NotificationHandler) GetNotification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid notification ID"))
			return
		}

		notification, err := h.notificationService.GetNotification(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, notification)
	}
}

// ListNotifications godoc
//
//	@Summary	List sent notifications
//	@Tags		Notifications
//	@Produce	json
//	@Param		page		query		int	false	"Page number"	default(1)
//	@Param		pageSize	query		int	false	"Page size"		default(10)
//	@Success	200			{object}	models.PaginatedResponse
//	@Security	BearerAuth
//	@Router		/notifications [get]
func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize := utils.Pagination(r)

		logger := middleware.LoggerFromContext(r.Context()).With(slog.Int("page", page), slog.Int("pageSize", pageSize))

		notifications, total, err := h.notificationService.ListNotifications(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list notifications", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Debug("Notifications listed", slog.Int("count", len(notifications)), slog.Int("total", total))
		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     notifications,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}
