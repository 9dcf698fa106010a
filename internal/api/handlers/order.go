package handlers

import (
	"log/slog"
	"net/http"

	"github.com/inkwell/bookstore/internal/api/middleware"
	"github.com/inkwell/bookstore/internal/errors"
	"github.com/inkwell/bookstore/internal/metrics"
	"github.com/inkwell/bookstore/internal/models"
	service "github.com/inkwell/bookstore/internal/services"
	"github.com/inkwell/bookstore/internal/utils"
	"github.com/inkwell/bookstore/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func checkoutOutcome(err error) string {
	appErr, ok := errors.IsAppError(err)
	if !ok {
		return "error"
	}

	switch appErr.Code {
	case errors.ErrCodeEmptyCart:
		return "empty_cart"
	case errors.ErrCodeInsufficientStock:
		return "insufficient_stock"
	default:
		return "error"
	}
}

// Checkout converts the caller's cart into an order. No request body: the
// cart is the input.
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized checkout attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		order, err := h.orderService.Checkout(r.Context(), claims.UserID)
		if err != nil {
			metrics.ObserveCheckout(checkoutOutcome(err))
			logger.Error("Checkout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		metrics.ObserveCheckout("success")
		logger.Info("Checkout completed",
			slog.String("orderId", order.ID.String()),
			slog.String("total", order.TotalPrice.StringFixed(2)))
		response.Success(w, http.StatusCreated, order)
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized order access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseUUID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrderByID(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get order", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		// Customers see only their own orders; admins see everything.
		if order.CustomerID != claims.UserID && !claims.IsAdmin {
			logger.Warn("Attempted to access another user's order",
				slog.String("requesterId", claims.UserID.String()),
				slog.String("ownerId", order.CustomerID.String()))
			response.Error(w, errors.ForbiddenError("You don't have permission to access this order"))
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized order list attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, pageSize := utils.Pagination(r)

		orders, total, err := h.orderService.ListOrdersByCustomer(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     orders,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}
