package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/inkwell/bookstore/internal/models"
	"github.com/inkwell/bookstore/internal/utils"
)

// ErrBookReferenced signals a delete attempt on a book that appears in
// historical order items. Order history must survive catalog edits.
var ErrBookReferenced = errors.New("book is referenced by existing order items")

type BookRepository interface {
	CreateBook(ctx context.Context, book *models.Book) error
	GetBookByID(ctx context.Context, id int64) (*models.Book, error)
	UpdateBook(ctx context.Context, book *models.Book) error
	DeleteBook(ctx context.Context, id int64) error
	ListBooks(ctx context.Context, filter models.BookFilter, page, size int) ([]*models.Book, int, error)
}

type bookRepository struct {
	DB *sql.DB
}

func NewBookRepo(db *sql.DB) BookRepository {
	return &bookRepository{DB: db}
}

func (r *bookRepository) CreateBook(ctx context.Context, book *models.Book) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO books (title, author, category, price, quantity_in_stock)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, book.Title, book.Author, book.Category, book.Price, book.QuantityInStock).
		Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
}

func (r *bookRepository) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	book := &models.Book{}

	query := `
		SELECT id, title, author, category, price, quantity_in_stock, created_at, updated_at
		FROM books
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&book.ID, &book.Title, &book.Author, &book.Category, &book.Price, &book.QuantityInStock, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return book, nil
}

func (r *bookRepository) UpdateBook(ctx context.Context, book *models.Book) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE books SET title = $1, author = $2, category = $3, price = $4, quantity_in_stock = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, book.Title, book.Author, book.Category, book.Price, book.QuantityInStock, book.ID).
		Scan(&book.UpdatedAt)
}

func (r *bookRepository) DeleteBook(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var referenced bool

	refQuery := `SELECT EXISTS (SELECT 1 FROM order_items WHERE book_id = $1)`

	if err := r.DB.QueryRowContext(dbCtx, refQuery, id).Scan(&referenced); err != nil {
		return fmt.Errorf("checking order history: %w", err)
	}

	if referenced {
		return ErrBookReferenced
	}

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
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

func (r *bookRepository) ListBooks(ctx context.Context, filter models.BookFilter, page, size int) ([]*models.Book, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	where, args := buildBookFilter(filter)

	var total int

	countQuery := `SELECT COUNT(*) FROM books` + where

	if err := r.DB.QueryRowContext(dbCtx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT id, title, author, category, price, quantity_in_stock, created_at, updated_at
		FROM books` + where + `
		ORDER BY id
		LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)

	rows, err := r.DB.QueryContext(dbCtx, query, append(args, size, offset)...)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var books []*models.Book

	for rows.Next() {
		book := &models.Book{}

		err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.Category, &book.Price, &book.QuantityInStock, &book.CreatedAt, &book.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}

		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// buildBookFilter renders the WHERE clause for catalog listings. Search is a
// case-insensitive substring match over title, author and category and
// composes with the price/category filters.
func buildBookFilter(filter models.BookFilter) (string, []any) {

	var clauses []string
	var args []any

	next := func() string { return "$" + strconv.Itoa(len(args)) }

	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, "category = "+next())
	}

	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		clauses = append(clauses, "price >= "+next())
	}

	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		clauses = append(clauses, "price <= "+next())
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		p := next()
		clauses = append(clauses, "(title ILIKE "+p+" OR author ILIKE "+p+" OR category ILIKE "+p+")")
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}
