package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inkwell/bookstore/internal/models"
	"github.com/inkwell/bookstore/internal/utils"
	"github.com/google/uuid"
)

type CartRepository interface {
	GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	UpsertItem(ctx context.Context, cartID uuid.UUID, bookID int64, quantity int) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, bookID int64, quantity int) error
	DeleteItem(ctx context.Context, cartID uuid.UUID, bookID int64) error
	GetItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`

	cart := &models.Cart{}

	err := r.DB.QueryRowContext(dbCtx, query, userID).
		Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return cart, nil
}

// GetOrCreateCart is idempotent: the unique index on user_id guarantees at
// most one cart per user, and a concurrent insert race resolves to the
// existing row via ON CONFLICT.
func (r *cartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO carts (id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING id, user_id, created_at, updated_at
	`

	cart := &models.Cart{}

	err := r.DB.QueryRowContext(dbCtx, query, uuid.New(), userID).
		Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	return cart, nil
}

// UpsertItem adds quantity to the existing (cart, book) line or creates it.
// Repeated add-to-cart accumulates, never duplicates rows.
func (r *cartRepository) UpsertItem(ctx context.Context, cartID uuid.UUID, bookID int64, quantity int) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_items (id, cart_id, book_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, book_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, cart_id, book_id, quantity, created_at, updated_at
	`

	item := &models.CartItem{}

	err := r.DB.QueryRowContext(dbCtx, query, uuid.New(), cartID, bookID, quantity).
		Scan(&item.ID, &item.CartID, &item.BookID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return item, nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, bookID int64, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE cart_id = $2 AND book_id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, quantity, cartID, bookID)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID uuid.UUID, bookID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE cart_id = $1 AND book_id = $2`, cartID, bookID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deleted == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// GetItems joins each line with the current book record; ordered by insertion.
func (r *cartRepository) GetItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ci.id, ci.cart_id, ci.book_id, ci.quantity, ci.created_at, ci.updated_at,
		       b.id, b.title, b.author, b.category, b.price, b.quantity_in_stock, b.created_at, b.updated_at
		FROM cart_items ci
		JOIN books b ON ci.book_id = b.id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at, ci.id
	`

	rows, err := r.DB.QueryContext(dbCtx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	defer rows.Close()

	var items []models.CartItem

	for rows.Next() {
		var item models.CartItem
		book := &models.Book{}

		err := rows.Scan(
			&item.ID, &item.CartID, &item.BookID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
			&book.ID, &book.Title, &book.Author, &book.Category, &book.Price, &book.QuantityInStock, &book.CreatedAt, &book.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		item.Book = book
		subtotal := book.Price.Mul(decimalFromInt(item.Quantity))
		item.Subtotal = &subtotal

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
