package service_test

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	appErrors "github.com/inkwell/bookstore/internal/errors"
	"github.com/inkwell/bookstore/internal/models"
	"github.com/inkwell/bookstore/internal/repositories/mocks"
	service "github.com/inkwell/bookstore/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPostServiceTest(t *testing.T) (service.PostService, *mocks.PostRepository) {
	mockRepo := mocks.NewPostRepository(t)
	postService := service.NewPostService(mockRepo)

	return postService, mockRepo
}

func TestCreatePost(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		postService, mockRepo := setupPostServiceTest(t)

		req := &models.CreatePostRequest{Title: "Reading list", Content: "Some <b>bold</b> thoughts"}

		mockRepo.On("CreatePost", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
			return p.UserID == userID && p.Title == "Reading list"
		})).Return(nil).Once()

		// Act
		post, err := postService.CreatePost(ctx, userID, req)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, post)
		assert.Contains(t, post.Content, "<b>bold</b>", "harmless formatting survives")
	})

	t.Run("ScriptTagsStripped", func(t *testing.T) {
		// Arrange
		postService, mockRepo := setupPostServiceTest(t)

		req := &models.CreatePostRequest{
			Title:   "Hi",
			Content: `Check this <script>alert("xss")</script> out`,
		}

		mockRepo.On("CreatePost", mock.Anything, mock.AnythingOfType("*models.Post")).Return(nil).Once()

		// Act
		post, err := postService.CreatePost(ctx, userID, req)

		// Assert
		require.NoError(t, err)
		assert.NotContains(t, post.Content, "<script>")
		assert.NotContains(t, post.Content, "alert")
	})

	t.Run("EmptyAfterSanitization", func(t *testing.T) {
		// Arrange: content that is nothing but markup collapses to an empty
		// post, which is rejected.
		postService, _ := setupPostServiceTest(t)

		req := &models.CreatePostRequest{Title: "Hi", Content: `<script>alert("xss")</script>`}

		// Act
		post, err := postService.CreatePost(ctx, userID, req)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, post)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})
}

func TestGetPost(t *testing.T) {
	ctx := t.Context()

	t.Run("NotFound", func(t *testing.T) {
		// Arrange
		postService, mockRepo := setupPostServiceTest(t)
		postID := uuid.New()

		mockRepo.On("GetPostByID", mock.Anything, postID).Return(nil, sql.ErrNoRows).Once()

		// Act
		post, err := postService.GetPost(ctx, postID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, post)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestListPosts(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		postService, mockRepo := setupPostServiceTest(t)

		expected := []*models.Post{{ID: uuid.New(), Title: "One"}, {ID: uuid.New(), Title: "Two"}}
		mockRepo.On("ListPosts", mock.Anything, 1, 10).Return(expected, 2, nil).Once()

		// Act
		posts, total, err := postService.ListPosts(ctx, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, expected, posts)
		assert.Equal(t, 2, total)
	})
}
