package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"complaint-desk/internal/domain"
	"complaint-desk/internal/service/attachment"
)

type ComplaintService struct {
	mock.Mock
}

func (m *ComplaintService) Create(ctx context.Context, caller domain.Identity, input domain.CreateComplaintInput, files []attachment.Upload) (*domain.CreateComplaintResult, error) {
	args := m.Called(ctx, caller, input, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreateComplaintResult), args.Error(1)
}

func (m *ComplaintService) List(ctx context.Context, caller domain.Identity) ([]domain.ComplaintView, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ComplaintView), args.Error(1)
}

func (m *ComplaintService) Get(ctx context.Context, caller domain.Identity, id uuid.UUID) (*domain.ComplaintView, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplaintView), args.Error(1)
}

func (m *ComplaintService) Update(ctx context.Context, caller domain.Identity, id uuid.UUID, input domain.UpdateComplaintInput) (*domain.Complaint, error) {
	args := m.Called(ctx, caller, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Complaint), args.Error(1)
}

func (m *ComplaintService) Delete(ctx context.Context, caller domain.Identity, id uuid.UUID) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}
