package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/inkwell/bookstore/internal/errors"
	"github.com/inkwell/bookstore/internal/models"
	repository "github.com/inkwell/bookstore/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uuid.UUID, req *models.CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	ListPosts(ctx context.Context, page, size int) ([]*models.Post, int, error)
}

type postService struct {
	repo      repository.PostRepository
	sanitizer *bluemonday.Policy
}

func NewPostService(repo repository.PostRepository) PostService {
	// UGCPolicy allows basic formatting but strips scripts and event
	// handlers; post content is rendered back to other users.
	return &postService{repo: repo, sanitizer: bluemonday.UGCPolicy()}
}

func (s *postService) CreatePost(ctx context.Context, userID uuid.UUID, req *models.CreatePostRequest) (*models.Post, error) {

	content := strings.TrimSpace(s.sanitizer.Sanitize(req.Content))
	if content == "" {
		return nil, errors.ValidationError("Post content is empty after sanitization")
	}

	post := &models.Post{
		UserID:  userID,
		Title:   s.sanitizer.Sanitize(req.Title),
		Content: content,
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, errors.DatabaseError("Failed to create post").WithError(err)
	}

	return post, nil
}

func (s *postService) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {

	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Post not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch post").WithError(err)
	}

	return post, nil
}

func (s *postService) ListPosts(ctx context.Context, page, size int) ([]*models.Post, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 10
	}

	posts, total, err := s.repo.ListPosts(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list posts").WithError(err)
	}

	return posts, total, nil
}
