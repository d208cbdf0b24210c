package service

import (
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"complaint-desk/internal/config"
	"complaint-desk/internal/domain"
	"complaint-desk/internal/outbox"
	"complaint-desk/internal/policy"
	"complaint-desk/internal/repository"
	"complaint-desk/internal/service/attachment"
	"complaint-desk/internal/service/auth"
	"complaint-desk/internal/service/complaint"
	"complaint-desk/internal/service/notification"
	"complaint-desk/internal/service/report"
	"complaint-desk/internal/service/user"
	"complaint-desk/internal/validation"
)

type Services struct {
	Policy       *policy.Policy
	Auth         auth.Service
	User         user.Service
	Complaint    complaint.Service
	Attachment   attachment.Service
	Notification notification.Service
	Report       report.Service
}

// NewServices wires the services. redis may be nil, in which case reports
// are not cached.
func NewServices(
	repos *repository.Repositories,
	redis *redis.Client,
	store attachment.ObjectStore,
	publisher outbox.Publisher,
	cfg *config.Config,
	logger zerolog.Logger,
) *Services {
	deleteRoles := make([]domain.Role, 0, len(cfg.ComplaintDeleteRoles))
	for _, r := range cfg.ComplaintDeleteRoles {
		deleteRoles = append(deleteRoles, domain.Role(r))
	}
	pol := policy.New(deleteRoles)
	validator := validation.New()

	attachmentService := attachment.NewService(store, cfg)

	return &Services{
		Policy:       pol,
		Auth:         auth.NewService(repos.User, validator, cfg),
		User:         user.NewService(repos.User, pol, validator, cfg),
		Complaint:    complaint.NewService(repos.Complaint, repos.User, attachmentService, publisher, pol, validator, logger),
		Attachment:   attachmentService,
		Notification: notification.NewService(repos.Notification),
		Report:       report.NewService(repos.Report, redis, cfg.ReportCacheTTL, logger),
	}
}
