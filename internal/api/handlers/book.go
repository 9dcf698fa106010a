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
	"github.com/shopspring/decimal"
)

type BookHandler struct {
	bookService service.BookService
	validator   *validator.Validate
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService, validator: validator.New()}
}

// ListBooks serves the public catalog. Filter and search compose:
// ?category=&minPrice=&maxPrice=&search=&page=&pageSize=
func (h *BookHandler) ListBooks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		query := r.URL.Query()

		filter := models.BookFilter{
			Category: query.Get("category"),
			Search:   query.Get("search"),
		}

		if raw := query.Get("minPrice"); raw != "" {
			price, err := decimal.NewFromString(raw)
			if err != nil {
				response.Error(w, errors.BadRequestError("Invalid minPrice").WithError(err))
				return
			}
			filter.MinPrice = &price
		}

		if raw := query.Get("maxPrice"); raw != "" {
			price, err := decimal.NewFromString(raw)
			if err != nil {
				response.Error(w, errors.BadRequestError("Invalid maxPrice").WithError(err))
				return
			}
			filter.MaxPrice = &price
		}

		page, pageSize := utils.Pagination(r)

		books, total, err := h.bookService.ListBooks(r.Context(), filter, page, pageSize)
		if err != nil {
			logger.Error("Failed to list books", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     books,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

func (h *BookHandler) GetBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseInt64(r, "id")
		if err != nil {
			logger.Warn("Invalid book id", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		book, err := h.bookService.GetBook(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get book", slog.Int64("bookId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, book)
	}
}

// requireAdmin re-checks the admin claim inside the handler. The routes are
// already behind middleware.RequireAdmin; this keeps the core safe if a route
// is ever wired without it.
func requireAdmin(w http.ResponseWriter, r *http.Request) *models.Claims {

	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return nil
	}

	if !claims.IsAdmin {
		response.Error(w, errors.ForbiddenError("Administrator access required"))
		return nil
	}

	return claims
}

func (h *BookHandler) AddBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if requireAdmin(w, r) == nil {
			return
		}

		var req models.CreateBookRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		book, err := h.bookService.AddBook(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to add book", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Book added", slog.Int64("bookId", book.ID))
		response.Success(w, http.StatusCreated, book)
	}
}

func (h *BookHandler) UpdateBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if requireAdmin(w, r) == nil {
			return
		}

		id, err := utils.ParseInt64(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateBookRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		book, err := h.bookService.UpdateBook(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update book", slog.Int64("bookId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Book updated", slog.Int64("bookId", id))
		response.Success(w, http.StatusOK, book)
	}
}

func (h *BookHandler) DeleteBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if requireAdmin(w, r) == nil {
			return
		}

		id, err := utils.ParseInt64(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.bookService.DeleteBook(r.Context(), id); err != nil {
			logger.Error("Failed to delete book", slog.Int64("bookId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Book deleted", slog.Int64("bookId", id))
		response.Success(w, http.StatusOK, map[string]int64{"id": id})
	}
}
