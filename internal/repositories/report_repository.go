package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/inkwell/bookstore/internal/models"
	"github.com/inkwell/bookstore/internal/utils"
)

// ReportRepository serves the admin back-office. Read-only; authorization is
// enforced before any of these are reachable.
type ReportRepository interface {
	AllOrders(ctx context.Context) ([]models.Order, error)
	AllBooks(ctx context.Context) ([]models.Book, error)
	UserActivity(ctx context.Context) ([]models.UserActivity, error)
}

type reportRepository struct {
	DB *sql.DB
}

func NewReportRepo(db *sql.DB) ReportRepository {
	return &reportRepository{DB: db}
}

func (r *reportRepository) AllOrders(ctx context.Context) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, customer_id, total_price, created_at
		FROM orders
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		var order models.Order

		if err := rows.Scan(&order.ID, &order.CustomerID, &order.TotalPrice, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *reportRepository) AllBooks(ctx context.Context) ([]models.Book, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, title, author, category, price, quantity_in_stock, created_at, updated_at
		FROM books
		ORDER BY id
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	defer rows.Close()

	var books []models.Book

	for rows.Next() {
		var book models.Book

		err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.Category, &book.Price, &book.QuantityInStock, &book.CreatedAt, &book.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}

		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return books, nil
}

// UserActivity aggregates order and post counts per user with explicit
// LEFT JOINs; no per-user follow-up queries.
func (r *reportRepository) UserActivity(ctx context.Context) ([]models.UserActivity, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT u.id, u.username, u.email, u.is_admin, u.created_at, u.updated_at,
		       COUNT(DISTINCT o.id), COUNT(DISTINCT p.id)
		FROM users u
		LEFT JOIN orders o ON o.customer_id = u.id
		LEFT JOIN posts p ON p.user_id = u.id
		GROUP BY u.id, u.username, u.email, u.is_admin, u.created_at, u.updated_at
		ORDER BY u.username
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user activity: %w", err)
	}

	defer rows.Close()

	var activity []models.UserActivity

	for rows.Next() {
		var a models.UserActivity

		err := rows.Scan(&a.User.ID, &a.User.Username, &a.User.Email, &a.User.IsAdmin, &a.User.CreatedAt, &a.User.UpdatedAt,
			&a.OrderCount, &a.PostCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user activity: %w", err)
		}

		activity = append(activity, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return activity, nil
}
