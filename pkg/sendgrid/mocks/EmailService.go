package mocks

import (
	"context"

	"github.com/inkwell/bookstore/pkg/sendgrid"
	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) Send(ctx context.Context, email *sendgrid.Email) error {
	args := m.Called(ctx, email)

	return args.Error(0)
}
