package notification

import (
	"context"

	"github.com/google/uuid"

	"complaint-desk/internal/domain"
	"complaint-desk/internal/repository"
)

// Service exposes a user's own notifications. Every operation is scoped to
// the caller; rows owned by someone else behave as missing.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	notifRepo repository.NotificationRepository
}

func NewService(notifRepo repository.NotificationRepository) Service {
	return &service{notifRepo: notifRepo}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	params.Normalize()

	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.Delete(ctx, id, userID)
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}
