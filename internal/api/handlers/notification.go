package handlers

import (
	"log/slog"
	"net/http"

	"github.com/inkwell/bookstore/internal/api/middleware"
	"github.com/inkwell/bookstore/internal/errors"
	"github.com/inkwell/bookstore/internal/models"
	service "github.com/inkwell/bookstore/internal/services"
	"github.com/inkwell/bookstore/internal/utils"
	"github.com/inkwell/bookstore/internal/utils/response"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, pageSize := utils.Pagination(r)

		notifications, total, err := h.notificationService.ListNotifications(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list notifications", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     notifications,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}
