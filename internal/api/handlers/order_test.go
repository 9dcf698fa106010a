package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/inkwell/bookstore/internal/api/handlers"
	appErrors "github.com/inkwell/bookstore/internal/errors"
	"github.com/inkwell/bookstore/internal/models"
	"github.com/inkwell/bookstore/internal/services/mocks"
	"github.com/inkwell/bookstore/internal/testutils"
	"github.com/inkwell/bookstore/internal/utils/response"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupOrderTest() (*mocks.OrderService, *handlers.OrderHandler) {
	mockOrderService := new(mocks.OrderService)
	orderHandler := handlers.NewOrderHandler(mockOrderService)

	return mockOrderService, orderHandler
}

func TestCheckoutHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()
		userID := uuid.New()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders", nil, userID, nil)
		recorder := httptest.NewRecorder()

		order := &models.Order{
			ID:         uuid.New(),
			CustomerID: userID,
			TotalPrice: decimal.RequireFromString("65.00"),
		}
		mockOrderService.On("Checkout", mock.Anything, userID).Return(order, nil).Once()

		// Act
		orderHandler.Checkout()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		mockOrderService.AssertExpectations(t)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()
		userID := uuid.New()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders", nil, userID, nil)
		recorder := httptest.NewRecorder()

		mockOrderService.On("Checkout", mock.Anything, userID).Return(nil, appErrors.EmptyCartError()).Once()

		// Act
		orderHandler.Checkout()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeEmptyCart, resp.Error.Code)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()
		userID := uuid.New()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders", nil, userID, nil)
		recorder := httptest.NewRecorder()

		mockOrderService.On("Checkout", mock.Anything, userID).Return(nil, appErrors.InsufficientStockError(7)).Once()

		// Act
		orderHandler.Checkout()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusConflict, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeInsufficientStock, resp.Error.Code)
		require.NotEmpty(t, resp.Error.Details)
		assert.Contains(t, resp.Error.Details[0], "book_id=7")
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/orders", nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		orderHandler.Checkout()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockOrderService.AssertNotCalled(t, "Checkout")
	})
}

func TestGetOrderHandler(t *testing.T) {
	t.Run("OwnerCanRead", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()
		userID := uuid.New()
		orderID := uuid.New()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, userID,
			map[string]string{"id": orderID.String()})
		recorder := httptest.NewRecorder()

		order := &models.Order{ID: orderID, CustomerID: userID}
		mockOrderService.On("GetOrderByID", mock.Anything, orderID).Return(order, nil).Once()

		// Act
		orderHandler.GetOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("OtherUsersOrderIsForbidden", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()
		orderID := uuid.New()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, uuid.New(),
			map[string]string{"id": orderID.String()})
		recorder := httptest.NewRecorder()

		order := &models.Order{ID: orderID, CustomerID: uuid.New()}
		mockOrderService.On("GetOrderByID", mock.Anything, orderID).Return(order, nil).Once()

		// Act
		orderHandler.GetOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("AdminCanReadAnyOrder", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()
		orderID := uuid.New()

		req := testutils.CreateTestAdminRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, uuid.New(),
			map[string]string{"id": orderID.String()})
		recorder := httptest.NewRecorder()

		order := &models.Order{ID: orderID, CustomerID: uuid.New()}
		mockOrderService.On("GetOrderByID", mock.Anything, orderID).Return(order, nil).Once()

		// Act
		orderHandler.GetOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/not-a-uuid", nil, uuid.New(),
			map[string]string{"id": "not-a-uuid"})
		recorder := httptest.NewRecorder()

		// Act
		orderHandler.GetOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockOrderService.AssertNotCalled(t, "GetOrderByID")
	})
}

func TestListOrdersHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()
		userID := uuid.New()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders?page=2&pageSize=5", nil, userID, nil)
		recorder := httptest.NewRecorder()

		orders := []models.Order{{ID: uuid.New(), CustomerID: userID}}
		mockOrderService.On("ListOrdersByCustomer", mock.Anything, userID, 2, 5).Return(orders, 6, nil).Once()

		// Act
		orderHandler.ListOrders()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockOrderService.AssertExpectations(t)
	})
}
