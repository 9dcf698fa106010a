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

type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	ListPosts(ctx context.Context, page, size int) ([]*models.Post, int, error)
}

type postRepository struct {
	DB *sql.DB
}

func NewPostRepo(db *sql.DB) PostRepository {
	return &postRepository{DB: db}
}

func (r *postRepository) CreatePost(ctx context.Context, post *models.Post) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO posts (id, user_id, title, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}

	return r.DB.QueryRowContext(dbCtx, query, post.ID, post.UserID, post.Title, post.Content).
		Scan(&post.CreatedAt, &post.UpdatedAt)
}

func (r *postRepository) GetPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	post := &models.Post{}

	query := `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM posts
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&post.ID, &post.UserID, &post.Title, &post.Content, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return post, nil
}

func (r *postRepository) ListPosts(ctx context.Context, page, size int) ([]*models.Post, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var posts []*models.Post

	for rows.Next() {
		post := &models.Post{}

		err := rows.Scan(&post.ID, &post.UserID, &post.Title, &post.Content, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}

		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}
