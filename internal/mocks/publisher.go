package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"complaint-desk/internal/outbox"
)

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, msg outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
