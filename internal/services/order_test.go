package service_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	appErrors "github.com/inkwell/bookstore/internal/errors"
	"github.com/inkwell/bookstore/internal/models"
	repository "github.com/inkwell/bookstore/internal/repositories"
	"github.com/inkwell/bookstore/internal/repositories/mocks"
	service "github.com/inkwell/bookstore/internal/services"
	sendgridMocks "github.com/inkwell/bookstore/pkg/sendgrid/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupOrderServiceTest(t *testing.T) (service.OrderService, *mocks.OrderRepository, *mocks.UserRepository, *mocks.NotificationRepository, *sendgridMocks.EmailService) {
	mockOrderRepo := mocks.NewOrderRepository(t)
	mockUserRepo := mocks.NewUserRepository(t)
	mockNotificationRepo := mocks.NewNotificationRepository(t)
	mockEmail := new(sendgridMocks.EmailService)

	notificationService := service.NewNotificationService(mockNotificationRepo, mockEmail)
	orderService := service.NewOrderService(mockOrderRepo, mockUserRepo, notificationService)

	return orderService, mockOrderRepo, mockUserRepo, mockNotificationRepo, mockEmail
}

func TestCheckout(t *testing.T) {
	ctx := t.Context()
	customerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, mockUserRepo, mockNotificationRepo, mockEmail := setupOrderServiceTest(t)

		expectedOrder := &models.Order{
			ID:         uuid.New(),
			CustomerID: customerID,
			TotalPrice: decimal.RequireFromString("65.00"),
			Items: []models.OrderItem{
				{BookID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("12.50")},
				{BookID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("40.00")},
			},
		}
		user := &models.User{ID: customerID, Username: "reader42", Email: "reader42@example.com"}

		mockOrderRepo.On("CreateOrderFromCart", mock.Anything, customerID).Return(expectedOrder, nil).Once()
		mockUserRepo.On("GetUserByID", mock.Anything, customerID).Return(user, nil).Once()
		mockNotificationRepo.On("CreateNotification", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil).Once()
		mockEmail.On("Send", mock.Anything, mock.AnythingOfType("*sendgrid.Email")).Return(nil).Once()
		mockNotificationRepo.On("UpdateStatus", mock.Anything, mock.Anything, models.NotificationStatusSent, "").Return(nil).Once()

		// Act
		order, err := orderService.Checkout(ctx, customerID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, expectedOrder, order)
		mockEmail.AssertExpectations(t)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _, _ := setupOrderServiceTest(t)

		mockOrderRepo.On("CreateOrderFromCart", mock.Anything, customerID).Return(nil, repository.ErrEmptyCart).Once()

		// Act
		order, err := orderService.Checkout(ctx, customerID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, order)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeEmptyCart, appErr.Code)
		assert.ErrorIs(t, appErr.Unwrap(), repository.ErrEmptyCart)
	})

	t.Run("CartNeverCreated", func(t *testing.T) {
		// Arrange: a user who never added anything checks out. Same outcome
		// as an emptied cart.
		orderService, mockOrderRepo, _, _, _ := setupOrderServiceTest(t)

		mockOrderRepo.On("CreateOrderFromCart", mock.Anything, customerID).Return(nil, repository.ErrCartNotFound).Once()

		// Act
		order, err := orderService.Checkout(ctx, customerID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, order)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeEmptyCart, appErr.Code)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _, _ := setupOrderServiceTest(t)

		stockErr := &repository.InsufficientStockError{BookID: 7, Requested: 5, Available: 2}
		mockOrderRepo.On("CreateOrderFromCart", mock.Anything, customerID).Return(nil, stockErr).Once()

		// Act
		order, err := orderService.Checkout(ctx, customerID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, order)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInsufficientStock, appErr.Code)
		assert.Contains(t, appErr.Detail, "book_id=7")
	})

	t.Run("RepoError", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _, _ := setupOrderServiceTest(t)

		mockErr := errors.New("serialization failure")
		mockOrderRepo.On("CreateOrderFromCart", mock.Anything, customerID).Return(nil, mockErr).Once()

		// Act
		order, err := orderService.Checkout(ctx, customerID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, order)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		assert.ErrorIs(t, appErr.Unwrap(), mockErr)
	})

	t.Run("EmailFailureDoesNotFailCheckout", func(t *testing.T) {
		// Arrange: the order is committed before the email goes out, so a
		// delivery failure is logged and swallowed.
		orderService, mockOrderRepo, mockUserRepo, mockNotificationRepo, mockEmail := setupOrderServiceTest(t)

		expectedOrder := &models.Order{ID: uuid.New(), CustomerID: customerID, TotalPrice: decimal.NewFromInt(10)}
		user := &models.User{ID: customerID, Username: "reader42", Email: "reader42@example.com"}
		sendErr := errors.New("sendgrid unavailable")

		mockOrderRepo.On("CreateOrderFromCart", mock.Anything, customerID).Return(expectedOrder, nil).Once()
		mockUserRepo.On("GetUserByID", mock.Anything, customerID).Return(user, nil).Once()
		mockNotificationRepo.On("CreateNotification", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil).Once()
		mockEmail.On("Send", mock.Anything, mock.AnythingOfType("*sendgrid.Email")).Return(sendErr).Once()
		mockNotificationRepo.On("UpdateStatus", mock.Anything, mock.Anything, models.NotificationStatusFailed, sendErr.Error()).Return(nil).Once()

		// Act
		order, err := orderService.Checkout(ctx, customerID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, expectedOrder, order)
		mockEmail.AssertExpectations(t)
	})
}

func TestGetOrderByIDService(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _, _ := setupOrderServiceTest(t)
		orderID := uuid.New()
		expectedOrder := &models.Order{ID: orderID, CustomerID: uuid.New()}

		mockOrderRepo.On("GetOrderByID", mock.Anything, orderID).Return(expectedOrder, nil).Once()

		// Act
		order, err := orderService.GetOrderByID(ctx, orderID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, expectedOrder, order)
	})

	t.Run("NotFound", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _, _ := setupOrderServiceTest(t)
		orderID := uuid.New()

		mockOrderRepo.On("GetOrderByID", mock.Anything, orderID).Return(nil, sql.ErrNoRows).Once()

		// Act
		order, err := orderService.GetOrderByID(ctx, orderID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, order)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestListOrdersByCustomerService(t *testing.T) {
	ctx := t.Context()
	customerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _, _ := setupOrderServiceTest(t)
		expectedOrders := []models.Order{
			{ID: uuid.New(), CustomerID: customerID},
			{ID: uuid.New(), CustomerID: customerID},
		}

		mockOrderRepo.On("ListOrdersByCustomer", mock.Anything, customerID, 1, 5).Return(expectedOrders, 12, nil).Once()

		// Act
		orders, total, err := orderService.ListOrdersByCustomer(ctx, customerID, 1, 5)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, expectedOrders, orders)
		assert.Equal(t, 12, total)
	})

	t.Run("PaginationDefaults", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _, _ := setupOrderServiceTest(t)

		mockOrderRepo.On("ListOrdersByCustomer", mock.Anything, customerID, 1, 10).Return([]models.Order{}, 0, nil).Once()

		// Act
		orders, total, err := orderService.ListOrdersByCustomer(ctx, customerID, 0, 500)

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, orders)
		assert.Equal(t, 0, total)
	})

	t.Run("RepoError", func(t *testing.T) {
		// Arrange
		orderService, mockOrderRepo, _, _, _ := setupOrderServiceTest(t)
		mockErr := errors.New("mock repo list error")

		mockOrderRepo.On("ListOrdersByCustomer", mock.Anything, customerID, 1, 10).Return(nil, 0, mockErr).Once()

		// Act
		orders, total, err := orderService.ListOrdersByCustomer(ctx, customerID, 1, 10)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, orders)
		assert.Equal(t, 0, total)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		assert.ErrorIs(t, appErr.Unwrap(), mockErr)
	})
}
