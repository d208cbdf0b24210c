package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"complaint-desk/internal/domain"
	"complaint-desk/internal/service/attachment"
)

type AttachmentService struct {
	mock.Mock
}

func (m *AttachmentService) Check(files []attachment.Upload) ([]attachment.Upload, error) {
	args := m.Called(files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]attachment.Upload), args.Error(1)
}

func (m *AttachmentService) Store(ctx context.Context, complaintID uuid.UUID, files []attachment.Upload) ([]domain.Attachment, error) {
	args := m.Called(ctx, complaintID, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attachment), args.Error(1)
}

func (m *AttachmentService) Remove(ctx context.Context, attachments []domain.Attachment) error {
	args := m.Called(ctx, attachments)
	return args.Error(0)
}
