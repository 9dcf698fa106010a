package mocks

import (
	"context"

	"github.com/inkwell/bookstore/internal/models"
	"github.com/stretchr/testify/mock"
)

type BookRepository struct {
	mock.Mock
}

func NewBookRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *BookRepository {
	m := &BookRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *BookRepository) CreateBook(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)

	return args.Error(0)
}

func (m *BookRepository) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *BookRepository) UpdateBook(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)

	return args.Error(0)
}

func (m *BookRepository) DeleteBook(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *BookRepository) ListBooks(ctx context.Context, filter models.BookFilter, page, size int) ([]*models.Book, int, error) {
	args := m.Called(ctx, filter, page, size)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]*models.Book), args.Int(1), args.Error(2)
}
