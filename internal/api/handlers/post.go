package handlers

import (
	"log/slog"
	"net/http"

	"github.com/inkwell/bookstore/internal/api/middleware"
	"github.com/inkwell/bookstore/internal/errors"
	"github.com/inkwell/bookstore/internal/models"
	service "github.com/inkwell/bookstore/internal/services"
	"github.com/inkwell/bookstore/internal/utils"
	"github.com/inkwell/bookstore/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type PostHandler struct {
	postService service.PostService
	validator   *validator.Validate
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService, validator: validator.New()}
}

func (h *PostHandler) CreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreatePostRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		post, err := h.postService.CreatePost(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to create post", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Post created", slog.String("postId", post.ID.String()))
		response.Success(w, http.StatusCreated, post)
	}
}

func (h *PostHandler) GetPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseUUID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		post, err := h.postService.GetPost(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get post", slog.String("postId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, post)
	}
}

func (h *PostHandler) ListPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, pageSize := utils.Pagination(r)

		posts, total, err := h.postService.ListPosts(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list posts", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     posts,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}
