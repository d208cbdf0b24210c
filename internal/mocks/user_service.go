package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"complaint-desk/internal/domain"
)

type UserService struct {
	mock.Mock
}

func (m *UserService) List(ctx context.Context, caller domain.Identity) ([]domain.User, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *UserService) Get(ctx context.Context, caller domain.Identity, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserService) Create(ctx context.Context, caller domain.Identity, input domain.CreateUserInput) (*domain.User, error) {
	args := m.Called(ctx, caller, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserService) Update(ctx context.Context, caller domain.Identity, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error) {
	args := m.Called(ctx, caller, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserService) Delete(ctx context.Context, caller domain.Identity, id uuid.UUID) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *UserService) EnsureUser(ctx context.Context, input domain.CreateUserInput) (*domain.User, bool, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Bool(1), args.Error(2)
}
