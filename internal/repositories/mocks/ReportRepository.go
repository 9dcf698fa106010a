package mocks

import (
	"context"

	"github.com/inkwell/bookstore/internal/models"
	"github.com/stretchr/testify/mock"
)

type ReportRepository struct {
	mock.Mock
}

func NewReportRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReportRepository {
	m := &ReportRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *ReportRepository) AllOrders(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *ReportRepository) AllBooks(ctx context.Context) ([]models.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *ReportRepository) UserActivity(ctx context.Context) ([]models.UserActivity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.UserActivity), args.Error(1)
}
