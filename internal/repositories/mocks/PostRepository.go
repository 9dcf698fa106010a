package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/inkwell/bookstore/internal/models"
	"github.com/stretchr/testify/mock"
)

type PostRepository struct {
	mock.Mock
}

func NewPostRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *PostRepository {
	m := &PostRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *PostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)

	return args.Error(0)
}

func (m *PostRepository) GetPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *PostRepository) ListPosts(ctx context.Context, page, size int) ([]*models.Post, int, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]*models.Post), args.Int(1), args.Error(2)
}
