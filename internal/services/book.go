package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log/slog"
	"strconv"

	"github.com/inkwell/bookstore/internal/api/middleware"
	"github.com/inkwell/bookstore/internal/cache"
	"github.com/inkwell/bookstore/internal/errors"
	"github.com/inkwell/bookstore/internal/models"
	repository "github.com/inkwell/bookstore/internal/repositories"
)

type BookService interface {
	ListBooks(ctx context.Context, filter models.BookFilter, page, size int) ([]*models.Book, int, error)
	GetBook(ctx context.Context, id int64) (*models.Book, error)
	AddBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error)
	UpdateBook(ctx context.Context, id int64, req *models.UpdateBookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

type bookService struct {
	repo  repository.BookRepository
	cache cache.Cache
}

func NewBookService(repo repository.BookRepository, bookCache cache.Cache) BookService {
	return &bookService{repo: repo, cache: bookCache}
}

func (s *bookService) ListBooks(ctx context.Context, filter models.BookFilter, page, size int) ([]*models.Book, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 10
	}

	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, 0, errors.ValidationError("minPrice cannot exceed maxPrice")
	}

	books, total, err := s.repo.ListBooks(ctx, filter, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list books").WithError(err)
	}

	return books, total, nil
}

func (s *bookService) GetBook(ctx context.Context, id int64) (*models.Book, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.BookKeyPrefix, strconv.FormatInt(id, 10))

	var cached models.Book

	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		// Cache trouble never blocks a catalog read.
		logger.Warn("Book cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	if hit {
		return &cached, nil
	}

	book, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Book not found").WithError(err)
	}

	if err := s.cache.Set(ctx, key, book, 0); err != nil {
		logger.Warn("Book cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return book, nil
}

func (s *bookService) AddBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error) {

	if req.Price.IsNegative() {
		return nil, errors.ValidationError("Price cannot be negative")
	}

	book := &models.Book{
		Title:           req.Title,
		Author:          req.Author,
		Category:        req.Category,
		Price:           req.Price,
		QuantityInStock: req.QuantityInStock,
	}

	if err := s.repo.CreateBook(ctx, book); err != nil {
		return nil, errors.DatabaseError("Failed to create book").WithError(err)
	}

	return book, nil
}

func (s *bookService) UpdateBook(ctx context.Context, id int64, req *models.UpdateBookRequest) (*models.Book, error) {

	book, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Book not found").WithError(err)
	}

	if req.Title != nil {
		book.Title = *req.Title
	}

	if req.Author != nil {
		book.Author = *req.Author
	}

	if req.Category != nil {
		book.Category = *req.Category
	}

	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, errors.ValidationError("Price cannot be negative")
		}
		book.Price = *req.Price
	}

	if req.QuantityInStock != nil {
		book.QuantityInStock = *req.QuantityInStock
	}

	if err := s.repo.UpdateBook(ctx, book); err != nil {
		return nil, errors.DatabaseError("Failed to update book").WithError(err)
	}

	s.invalidate(ctx, id)

	return book, nil
}

func (s *bookService) DeleteBook(ctx context.Context, id int64) error {

	err := s.repo.DeleteBook(ctx, id)
	if err != nil {

		switch {
		case stderrors.Is(err, repository.ErrBookReferenced):
			return errors.ConflictError("Book appears in past orders and cannot be deleted").WithError(err)
		case stderrors.Is(err, sql.ErrNoRows):
			return errors.NotFoundError("Book not found").WithError(err)
		default:
			return errors.DatabaseError("Failed to delete book").WithError(err)
		}
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *bookService) invalidate(ctx context.Context, id int64) {

	key := cache.Key(cache.BookKeyPrefix, strconv.FormatInt(id, 10))

	if err := s.cache.Delete(ctx, key); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Book cache invalidation failed",
			slog.String("key", key), slog.Any("error", err))
	}
}
