package service

import (
	"context"

	"github.com/inkwell/bookstore/internal/errors"
	"github.com/inkwell/bookstore/internal/models"
	repository "github.com/inkwell/bookstore/internal/repositories"
	"github.com/shopspring/decimal"
)

// ReportService backs the admin reports. All methods are read-only; the
// routes sit behind the admin middleware and the handlers re-check the
// claims before calling in.
type ReportService interface {
	SalesReport(ctx context.Context) (*models.SalesReport, error)
	InventoryReport(ctx context.Context) (*models.InventoryReport, error)
	UserActivityReport(ctx context.Context) (*models.UserActivityReport, error)
}

type reportService struct {
	repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo: repo}
}

func (s *reportService) SalesReport(ctx context.Context) (*models.SalesReport, error) {

	orders, err := s.repo.AllOrders(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to build sales report").WithError(err)
	}

	revenue := decimal.Zero

	for _, order := range orders {
		revenue = revenue.Add(order.TotalPrice)
	}

	return &models.SalesReport{
		Orders:       orders,
		OrderCount:   len(orders),
		TotalRevenue: revenue,
	}, nil
}

func (s *reportService) InventoryReport(ctx context.Context) (*models.InventoryReport, error) {

	books, err := s.repo.AllBooks(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to build inventory report").WithError(err)
	}

	report := &models.InventoryReport{
		Books:       books,
		TitlesCount: len(books),
	}

	for _, book := range books {
		report.TotalUnits += book.QuantityInStock
		if book.QuantityInStock == 0 {
			report.OutOfStock++
		}
	}

	return report, nil
}

func (s *reportService) UserActivityReport(ctx context.Context) (*models.UserActivityReport, error) {

	users, err := s.repo.UserActivity(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to build user activity report").WithError(err)
	}

	return &models.UserActivityReport{Users: users}, nil
}
