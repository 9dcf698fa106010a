package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log/slog"

	"github.com/inkwell/bookstore/internal/api/middleware"
	"github.com/inkwell/bookstore/internal/errors"
	"github.com/inkwell/bookstore/internal/models"
	repository "github.com/inkwell/bookstore/internal/repositories"
	"github.com/google/uuid"
)

type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error)
}

type orderService struct {
	orderRepo     repository.OrderRepository
	userRepo      repository.UserRepository
	notifications NotificationService
}

func NewOrderService(orderRepo repository.OrderRepository, userRepo repository.UserRepository, notifications NotificationService) OrderService {
	return &orderService{orderRepo: orderRepo, userRepo: userRepo, notifications: notifications}
}

// Checkout converts the user's cart into an order. The repository runs the
// whole transition in one transaction; this layer translates its failures and
// fires the confirmation email after the commit.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx)

	order, err := s.orderRepo.CreateOrderFromCart(ctx, userID)
	if err != nil {

		var stockErr *repository.InsufficientStockError

		switch {
		case stderrors.Is(err, repository.ErrCartNotFound), stderrors.Is(err, repository.ErrEmptyCart):
			return nil, errors.EmptyCartError().WithError(err)
		case stderrors.As(err, &stockErr):
			return nil, errors.InsufficientStockError(stockErr.BookID).WithError(err)
		default:
			return nil, errors.DatabaseError("Checkout failed").WithError(err)
		}
	}

	// Best effort: the order is already committed, a failed email must not
	// surface as a checkout failure.
	if user, err := s.userRepo.GetUserByID(ctx, userID); err == nil {
		if err := s.notifications.SendOrderConfirmation(ctx, user, order); err != nil {
			logger.Warn("Order confirmation email failed",
				slog.String("orderId", order.ID.String()), slog.Any("error", err))
		}
	} else {
		logger.Warn("Could not load user for order confirmation", slog.Any("error", err))
	}

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

func (s *orderService) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 10
	}

	orders, total, err := s.orderRepo.ListOrdersByCustomer(ctx, customerID, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}
