package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"complaint-desk/internal/domain"
)

type ComplaintRepository struct {
	mock.Mock
}

func (m *ComplaintRepository) CreateWithAttachments(ctx context.Context, complaint *domain.Complaint, attachments []domain.Attachment, notif *domain.Notification) error {
	args := m.Called(ctx, complaint, attachments, notif)
	return args.Error(0)
}

func (m *ComplaintRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Complaint), args.Error(1)
}

func (m *ComplaintRepository) List(ctx context.Context, assignedTo *uuid.UUID) ([]domain.Complaint, error) {
	args := m.Called(ctx, assignedTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Complaint), args.Error(1)
}

func (m *ComplaintRepository) ApplyTransition(ctx context.Context, complaint *domain.Complaint, notifs []*domain.Notification) error {
	args := m.Called(ctx, complaint, notifs)
	return args.Error(0)
}

func (m *ComplaintRepository) Delete(ctx context.Context, id uuid.UUID) ([]domain.Attachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attachment), args.Error(1)
}

func (m *ComplaintRepository) ListAttachments(ctx context.Context, complaintIDs []uuid.UUID) ([]domain.Attachment, error) {
	args := m.Called(ctx, complaintIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attachment), args.Error(1)
}
