package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/inkwell/bookstore/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func NewCartRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CartRepository {
	m := &CartRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartRepository) UpsertItem(ctx context.Context, cartID uuid.UUID, bookID int64, quantity int) (*models.CartItem, error) {
	args := m.Called(ctx, cartID, bookID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *CartRepository) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, bookID int64, quantity int) error {
	args := m.Called(ctx, cartID, bookID, quantity)

	return args.Error(0)
}

func (m *CartRepository) DeleteItem(ctx context.Context, cartID uuid.UUID, bookID int64) error {
	args := m.Called(ctx, cartID, bookID)

	return args.Error(0)
}

func (m *CartRepository) GetItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.CartItem), args.Error(1)
}
