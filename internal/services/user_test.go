package service_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	appErrors "github.com/inkwell/bookstore/internal/errors"
	"github.com/inkwell/bookstore/internal/models"
	repository "github.com/inkwell/bookstore/internal/repositories"
	"github.com/inkwell/bookstore/internal/repositories/mocks"
	service "github.com/inkwell/bookstore/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testJWTKey = []byte("test-signing-key")

func setupUserServiceTest(t *testing.T) (service.UserService, *mocks.UserRepository, *mocks.RateLimitRepository) {
	mockRepo := mocks.NewUserRepository(t)
	mockRateLimit := mocks.NewRateLimitRepository(t)
	userService := service.NewUserService(mockRepo, mockRateLimit, testJWTKey, time.Hour)

	return userService, mockRepo, mockRateLimit
}

func TestRegister(t *testing.T) {
	ctx := t.Context()

	req := &models.RegisterRequest{
		Username: "reader42",
		Email:    "reader42@example.com",
		Password: "s3cret-pass",
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService, mockRepo, _ := setupUserServiceTest(t)

		mockRepo.On("GetUserByUsername", mock.Anything, req.Username).Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("GetUserByEmail", mock.Anything, req.Email).Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Username == req.Username && u.Email == req.Email
		})).Return(nil).Once()

		// Act
		user, err := userService.Register(ctx, req)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, req.Username, user.Username)
		assert.NotEqual(t, req.Password, user.Password, "password must be stored hashed")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)))
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		// Arrange
		userService, mockRepo, _ := setupUserServiceTest(t)

		existing := &models.User{ID: uuid.New(), Username: req.Username}
		mockRepo.On("GetUserByUsername", mock.Anything, req.Username).Return(existing, nil).Once()

		// Act
		user, err := userService.Register(ctx, req)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, user)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		assert.Contains(t, appErr.Error(), "Username")
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		// Arrange
		userService, mockRepo, _ := setupUserServiceTest(t)

		existing := &models.User{ID: uuid.New(), Email: req.Email}
		mockRepo.On("GetUserByUsername", mock.Anything, req.Username).Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("GetUserByEmail", mock.Anything, req.Email).Return(existing, nil).Once()

		// Act
		user, err := userService.Register(ctx, req)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, user)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		assert.Contains(t, appErr.Error(), "Email")
	})

	t.Run("DuplicateRaceOnInsert", func(t *testing.T) {
		// Arrange: both pre-checks pass but a concurrent registration wins
		// the insert, so the unique constraint fires.
		userService, mockRepo, _ := setupUserServiceTest(t)

		mockRepo.On("GetUserByUsername", mock.Anything, req.Username).Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("GetUserByEmail", mock.Anything, req.Email).Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).Return(repository.ErrDuplicateUser).Once()

		// Act
		user, err := userService.Register(ctx, req)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, user)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
	})
}

func TestLogin(t *testing.T) {
	ctx := t.Context()

	password := "s3cret-pass"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := &models.User{
		ID:       uuid.New(),
		Username: "reader42",
		Email:    "reader42@example.com",
		Password: string(hash),
		IsAdmin:  true,
	}

	req := &models.LoginRequest{Username: "reader42", Password: password}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService, mockRepo, mockRateLimit := setupUserServiceTest(t)

		mockRateLimit.On("CheckLoginRateLimit", mock.Anything, req.Username).Return(true, 4, 0, nil).Once()
		mockRepo.On("GetUserByUsername", mock.Anything, req.Username).Return(storedUser, nil).Once()

		// Act
		resp, err := userService.Login(ctx, req)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		assert.Positive(t, resp.ExpiresIn)

		// The token must carry the identity and role used by the middleware.
		claims := &models.Claims{}
		_, parseErr := jwt.ParseWithClaims(resp.Token, claims, func(token *jwt.Token) (any, error) {
			return testJWTKey, nil
		})
		require.NoError(t, parseErr)
		assert.Equal(t, storedUser.ID, claims.UserID)
		assert.Equal(t, storedUser.Username, claims.Username)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		// Arrange
		userService, mockRepo, mockRateLimit := setupUserServiceTest(t)

		mockRateLimit.On("CheckLoginRateLimit", mock.Anything, req.Username).Return(true, 3, 0, nil).Once()
		mockRepo.On("GetUserByUsername", mock.Anything, req.Username).Return(storedUser, nil).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Username: "reader42", Password: "wrong"})

		// Assert
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.False(t, resp.Success)
		assert.Empty(t, resp.Token)
		assert.Equal(t, 3, resp.RemainingTries)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		// Arrange: same response shape as a wrong password, so usernames
		// cannot be probed.
		userService, mockRepo, mockRateLimit := setupUserServiceTest(t)

		mockRateLimit.On("CheckLoginRateLimit", mock.Anything, "ghost").Return(true, 4, 0, nil).Once()
		mockRepo.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, sql.ErrNoRows).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Username: "ghost", Password: password})

		// Assert
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid username or password", resp.Message)
	})

	t.Run("RateLimited", func(t *testing.T) {
		// Arrange
		userService, _, mockRateLimit := setupUserServiceTest(t)

		mockRateLimit.On("CheckLoginRateLimit", mock.Anything, req.Username).Return(false, 0, 120, nil).Once()

		// Act
		resp, err := userService.Login(ctx, req)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.False(t, resp.Success)
		assert.Equal(t, 120, resp.RetryAfter)
	})

	t.Run("RateLimitBackendError", func(t *testing.T) {
		// Arrange
		userService, _, mockRateLimit := setupUserServiceTest(t)

		mockErr := errors.New("redis down")
		mockRateLimit.On("CheckLoginRateLimit", mock.Anything, req.Username).Return(false, 0, 0, mockErr).Once()

		// Act
		resp, err := userService.Login(ctx, req)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, resp)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)
	})
}

func TestGetUserByIDService(t *testing.T) {
	ctx := t.Context()

	t.Run("NotFound", func(t *testing.T) {
		// Arrange
		userService, mockRepo, _ := setupUserServiceTest(t)
		userID := uuid.New()

		mockRepo.On("GetUserByID", mock.Anything, userID).Return(nil, sql.ErrNoRows).Once()

		// Act
		user, err := userService.GetUserByID(ctx, userID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, user)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
