package mocks

import (
	"context"

	"github.com/inkwell/bookstore/internal/models"
	"github.com/stretchr/testify/mock"
)

type BookService struct {
	mock.Mock
}

func (m *BookService) ListBooks(ctx context.Context, filter models.BookFilter, page, size int) ([]*models.Book, int, error) {
	args := m.Called(ctx, filter, page, size)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]*models.Book), args.Int(1), args.Error(2)
}

func (m *BookService) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *BookService) AddBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *BookService) UpdateBook(ctx context.Context, id int64, req *models.UpdateBookRequest) (*models.Book, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *BookService) DeleteBook(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
