package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inkwell/bookstore/internal/models"
	"github.com/inkwell/bookstore/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrCartNotFound: the user has never added anything to a cart.
	ErrCartNotFound = errors.New("cart not found")

	// ErrEmptyCart: a cart row exists but holds no items.
	ErrEmptyCart = errors.New("cart is empty")
)

// InsufficientStockError reports the first line item whose requested quantity
// exceeds the available stock. Checkout fails whole, nothing is written.
type InsufficientStockError struct {
	BookID    int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for book %d: requested %d, available %d", e.BookID, e.Requested, e.Available)
}

type OrderRepository interface {
	CreateOrderFromCart(ctx context.Context, customerID uuid.UUID) (*models.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// CreateOrderFromCart is the cart→order transition. It runs as a single
// serializable transaction: lock the books, verify stock for every line
// before touching anything, insert the order and its items with the price
// captured at this moment, decrement stock, empty the cart. Any failure
// rolls the whole thing back.
func (r *orderRepository) CreateOrderFromCart(ctx context.Context, customerID uuid.UUID) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("failed to begin checkout transaction: %w", err)
	}

	defer tx.Rollback()

	var cartID uuid.UUID

	err = tx.QueryRowContext(dbCtx, `SELECT id FROM carts WHERE user_id = $1`, customerID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	// Lock the referenced book rows in id order so concurrent checkouts
	// acquire locks in the same sequence and cannot deadlock.
	lockQuery := `
		SELECT ci.book_id, ci.quantity, b.price, b.quantity_in_stock
		FROM cart_items ci
		JOIN books b ON ci.book_id = b.id
		WHERE ci.cart_id = $1
		ORDER BY ci.book_id
		FOR UPDATE OF b
	`

	rows, err := tx.QueryContext(dbCtx, lockQuery, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock cart books: %w", err)
	}

	type line struct {
		bookID    int64
		quantity  int
		unitPrice decimal.Decimal
		inStock   int
	}

	var lines []line

	for rows.Next() {
		var l line
		if err := rows.Scan(&l.bookID, &l.quantity, &l.unitPrice, &l.inStock); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, l)
	}

	rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Fail-fast stock check across every line before any mutation.
	for _, l := range lines {
		if l.inStock < l.quantity {
			return nil, &InsufficientStockError{BookID: l.bookID, Requested: l.quantity, Available: l.inStock}
		}
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.unitPrice.Mul(decimalFromInt(l.quantity)))
	}

	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		TotalPrice: total,
	}

	err = tx.QueryRowContext(dbCtx,
		`INSERT INTO orders (id, customer_id, total_price) VALUES ($1, $2, $3) RETURNING created_at`,
		order.ID, order.CustomerID, order.TotalPrice).Scan(&order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, l := range lines {

		item := models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			BookID:    l.bookID,
			Quantity:  l.quantity,
			UnitPrice: l.unitPrice,
		}

		err = tx.QueryRowContext(dbCtx,
			`INSERT INTO order_items (id, order_id, book_id, quantity, unit_price) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
			item.ID, item.OrderID, item.BookID, item.Quantity, item.UnitPrice).Scan(&item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}

		// The WHERE guard backs up the fail-fast check; with the rows
		// locked above it can only miss if something else broke.
		result, err := tx.ExecContext(dbCtx,
			`UPDATE books SET quantity_in_stock = quantity_in_stock - $1, updated_at = NOW()
			 WHERE id = $2 AND quantity_in_stock >= $1`,
			l.quantity, l.bookID)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement stock: %w", err)
		}

		updated, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to get updated rows: %w", err)
		}

		if updated == 0 {
			return nil, &InsufficientStockError{BookID: l.bookID, Requested: l.quantity, Available: 0}
		}

		order.Items = append(order.Items, item)
	}

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}

	return order, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{ID: id}

	query := `
		SELECT customer_id, total_price, created_at
		FROM orders
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&order.CustomerID, &order.TotalPrice, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	items, err := r.getOrderItems(dbCtx, id)
	if err != nil {
		return nil, err
	}

	order.Items = items

	return order, nil
}

func (r *orderRepository) getOrderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {

	query := `
		SELECT id, book_id, quantity, unit_price, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get the order items: %w", err)
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {

		var item models.OrderItem

		if err := rows.Scan(&item.ID, &item.BookID, &item.Quantity, &item.UnitPrice, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		item.OrderID = orderID

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *orderRepository) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM orders WHERE customer_id = $1`

	if err := r.DB.QueryRowContext(dbCtx, countQuery, customerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT id, total_price, created_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, customerID, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {

		order := models.Order{CustomerID: customerID}

		if err := rows.Scan(&order.ID, &order.TotalPrice, &order.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan the orders: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range orders {

		items, err := r.getOrderItems(dbCtx, orders[i].ID)
		if err != nil {
			return nil, 0, err
		}

		orders[i].Items = items
	}

	return orders, total, nil
}
