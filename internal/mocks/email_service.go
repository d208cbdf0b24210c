package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendComplaintAssigned(ctx context.Context, toEmail, handlerName, customerName, inquiryType string) error {
	args := m.Called(ctx, toEmail, handlerName, customerName, inquiryType)
	return args.Error(0)
}

func (m *EmailService) SendComplaintStatusChanged(ctx context.Context, toEmail, creatorName, inquiryType, status, department, resolution string) error {
	args := m.Called(ctx, toEmail, creatorName, inquiryType, status, department, resolution)
	return args.Error(0)
}
