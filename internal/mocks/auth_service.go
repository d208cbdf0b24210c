package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"complaint-desk/internal/domain"
)

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Login(ctx context.Context, input domain.LoginInput) (*domain.LoginResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResult), args.Error(1)
}

func (m *AuthService) IssueToken(user *domain.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *AuthService) ParseToken(token string) (domain.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(domain.Identity), args.Error(1)
}

func (m *AuthService) Me(ctx context.Context, id domain.Identity) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *AuthService) ChangePassword(ctx context.Context, id domain.Identity, input domain.ChangePasswordInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}
