package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/inkwell/bookstore/internal/models"
	"github.com/stretchr/testify/mock"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) SendOrderConfirmation(ctx context.Context, user *models.User, order *models.Order) error {
	args := m.Called(ctx, user, order)

	return args.Error(0)
}

func (m *NotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Notification, int, error) {
	args := m.Called(ctx, userID, page, size)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]*models.Notification), args.Int(1), args.Error(2)
}
