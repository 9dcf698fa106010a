package mocks

import (
	"context"

	"github.com/inkwell/bookstore/internal/models"
	"github.com/stretchr/testify/mock"
)

type ReportService struct {
	mock.Mock
}

func (m *ReportService) SalesReport(ctx context.Context) (*models.SalesReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.SalesReport), args.Error(1)
}

func (m *ReportService) InventoryReport(ctx context.Context) (*models.InventoryReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.InventoryReport), args.Error(1)
}

func (m *ReportService) UserActivityReport(ctx context.Context) (*models.UserActivityReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.UserActivityReport), args.Error(1)
}
