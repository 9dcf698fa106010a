package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwell/bookstore/internal/errors"
	"github.com/inkwell/bookstore/internal/models"
	repository "github.com/inkwell/bookstore/internal/repositories"
	"github.com/inkwell/bookstore/pkg/sendgrid"
	"github.com/google/uuid"
)

type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, user *models.User, order *models.Order) error
	ListNotifications(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Notification, int, error)
}

type notificationService struct {
	repo  repository.NotificationRepository
	email sendgrid.EmailService
}

func NewNotificationService(repo repository.NotificationRepository, email sendgrid.EmailService) NotificationService {
	return &notificationService{repo: repo, email: email}
}

// SendOrderConfirmation records the notification first, then attempts the
// send and stores the outcome. Callers treat failures as advisory; the order
// itself is already committed.
func (s *notificationService) SendOrderConfirmation(ctx context.Context, user *models.User, order *models.Order) error {

	var lines []string
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("%d x book #%d @ %s", item.Quantity, item.BookID, item.UnitPrice.StringFixed(2)))
	}

	content := fmt.Sprintf("Thanks for your order %s.\n\n%s\n\nTotal: %s",
		order.ID, strings.Join(lines, "\n"), order.TotalPrice.StringFixed(2))

	notification := &models.Notification{
		ID:        uuid.New(),
		UserID:    user.ID,
		Type:      models.NotificationTypeEmail,
		Recipient: user.Email,
		Subject:   fmt.Sprintf("Order confirmation %s", order.ID),
		Content:   content,
		Status:    models.NotificationStatusPending,
	}

	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		return errors.DatabaseError("Failed to record notification").WithError(err)
	}

	sendErr := s.email.Send(ctx, &sendgrid.Email{
		To:      user.Email,
		Subject: notification.Subject,
		Content: notification.Content,
	})

	status := models.NotificationStatusSent
	errorMessage := ""

	if sendErr != nil {
		status = models.NotificationStatusFailed
		errorMessage = sendErr.Error()
	}

	if err := s.repo.UpdateStatus(ctx, notification.ID, status, errorMessage); err != nil {
		return errors.DatabaseError("Failed to update notification status").WithError(err)
	}

	if sendErr != nil {
		return errors.ThirdPartyError("Failed to send confirmation email").WithError(sendErr)
	}

	return nil
}

func (s *notificationService) ListNotifications(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Notification, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 10
	}

	notifications, total, err := s.repo.ListByUser(ctx, userID, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list notifications").WithError(err)
	}

	return notifications, total, nil
}
