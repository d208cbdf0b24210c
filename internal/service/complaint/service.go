package complaint

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"complaint-desk/internal/domain"
	"complaint-desk/internal/outbox"
	"complaint-desk/internal/policy"
	"complaint-desk/internal/repository"
	"complaint-desk/internal/service/attachment"
	"complaint-desk/internal/validation"
)

type Service interface {
	Create(ctx context.Context, caller domain.Identity, input domain.CreateComplaintInput, files []attachment.Upload) (*domain.CreateComplaintResult, error)
	List(ctx context.Context, caller domain.Identity) ([]domain.ComplaintView, error)
	Get(ctx context.Context, caller domain.Identity, id uuid.UUID) (*domain.ComplaintView, error)
	Update(ctx context.Context, caller domain.Identity, id uuid.UUID, input domain.UpdateComplaintInput) (*domain.Complaint, error)
	Delete(ctx context.Context, caller domain.Identity, id uuid.UUID) error
}

type service struct {
	complaintRepo repository.ComplaintRepository
	userRepo      repository.UserRepository
	attachments   attachment.Service
	outbox        outbox.Publisher
	policy        *policy.Policy
	validator     *validation.Validator
	logger        zerolog.Logger
}

func NewService(
	complaintRepo repository.ComplaintRepository,
	userRepo repository.UserRepository,
	attachments attachment.Service,
	publisher outbox.Publisher,
	pol *policy.Policy,
	validator *validation.Validator,
	logger zerolog.Logger,
) Service {
	return &service{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		attachments:   attachments,
		outbox:        publisher,
		policy:        pol,
		validator:     validator,
		logger:        logger.With().Str("component", "complaint").Logger(),
	}
}

func (s *service) Create(ctx context.Context, caller domain.Identity, input domain.CreateComplaintInput, files []attachment.Upload) (*domain.CreateComplaintResult, error) {
	if err := s.policy.Authorize(caller, policy.ComplaintCreate, policy.Facts{}); err != nil {
		return nil, err
	}

	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.CustomerPhone = strings.TrimSpace(input.CustomerPhone)
	input.InquiryType = strings.TrimSpace(input.InquiryType)
	input.Details = strings.TrimSpace(input.Details)
	input.Channel = trimmedOrNil(input.Channel)
	input.ResolutionDetails = trimmedOrNil(input.ResolutionDetails)
	input.ForwardTo = trimmedOrNil(input.ForwardTo)

	verr := &validation.Error{}
	if err := collect(verr, s.validator.Struct(input)); err != nil {
		return nil, err
	}
	checked, err := s.attachments.Check(files)
	if err := collect(verr, err); err != nil {
		return nil, err
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	department, handler, err := s.route(ctx, input)
	if err != nil {
		return nil, err
	}

	c := &domain.Complaint{
		ID:                  uuid.New(),
		CustomerName:        input.CustomerName,
		CustomerPhone:       input.CustomerPhone,
		Channel:             input.Channel,
		InquiryType:         input.InquiryType,
		Details:             input.Details,
		Status:              domain.StatusPending,
		AssignedTo:          &handler.ID,
		CreatedBy:           caller.ID,
		AttemptedResolution: input.AttemptedResolution,
		ResolutionDetails:   input.ResolutionDetails,
	}
	if input.ForwardTo != nil {
		c.ForwardedFrom = &caller.ID
	}

	stored, err := s.attachments.Store(ctx, c.ID, checked)
	if err != nil {
		return nil, err
	}

	notif := assignmentNotification(handler.ID, c)
	if err := s.complaintRepo.CreateWithAttachments(ctx, c, stored, notif); err != nil {
		if rmErr := s.attachments.Remove(ctx, stored); rmErr != nil {
			s.logger.Error().Err(rmErr).Str("complaint_id", c.ID.String()).Msg("failed to clean up attachments")
		}
		return nil, fmt.Errorf("create complaint: %w", err)
	}

	complaintsCreated.WithLabelValues(department).Inc()
	s.publish(ctx, outbox.ComplaintAssigned(c.ID, handler.Email, handler.Name, c.CustomerName, c.InquiryType))

	return &domain.CreateComplaintResult{
		ID:         c.ID,
		Department: department,
		Message:    fmt.Sprintf("Complaint registered successfully and forwarded to %s!", department),
	}, nil
}

// route picks the department and the handler a new complaint is assigned to.
func (s *service) route(ctx context.Context, input domain.CreateComplaintInput) (string, *domain.User, error) {
	if input.ForwardTo != nil {
		handler, err := s.userRepo.FindHandlerByDepartment(ctx, *input.ForwardTo)
		if err != nil {
			return "", nil, err
		}
		if handler == nil {
			return "", nil, domain.ErrDepartmentNotFound
		}
		return *input.ForwardTo, handler, nil
	}

	department := DepartmentFor(input.InquiryType)
	handler, err := s.userRepo.FindHandlerByDepartment(ctx, department)
	if err != nil {
		return "", nil, err
	}
	if handler == nil {
		return "", nil, domain.ErrNoHandlerAvailable
	}
	return department, handler, nil
}

func (s *service) List(ctx context.Context, caller domain.Identity) ([]domain.ComplaintView, error) {
	if err := s.policy.Authorize(caller, policy.ComplaintList, policy.Facts{}); err != nil {
		return nil, err
	}

	var assignedTo *uuid.UUID
	if caller.Is(domain.RoleHandler) {
		assignedTo = &caller.ID
	}

	complaints, err := s.complaintRepo.List(ctx, assignedTo)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, complaints)
}

func (s *service) Get(ctx context.Context, caller domain.Identity, id uuid.UUID) (*domain.ComplaintView, error) {
	c, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrComplaintNotFound
	}
	if err := s.policy.Authorize(caller, policy.ComplaintRead, policy.Facts{Complaint: c}); err != nil {
		return nil, err
	}

	views, err := s.enrich(ctx, []domain.Complaint{*c})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *service) Update(ctx context.Context, caller domain.Identity, id uuid.UUID, input domain.UpdateComplaintInput) (*domain.Complaint, error) {
	input.Status = strings.TrimSpace(input.Status)
	input.Resolution = trimmedOrNil(input.Resolution)
	input.ForwardTo = trimmedOrNil(input.ForwardTo)

	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	if input.Status == domain.StatusResolved && input.Resolution == nil {
		return nil, validation.Newf("resolution", "resolution is required when status is %s", domain.StatusResolved)
	}
	var forwardTo *uuid.UUID
	if input.ForwardTo != nil {
		target, err := uuid.Parse(*input.ForwardTo)
		if err != nil {
			return nil, validation.Newf("forwardTo", "forwardTo must be a valid user id")
		}
		forwardTo = &target
	}

	c, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrComplaintNotFound
	}
	if err := s.policy.Authorize(caller, policy.ComplaintUpdate, policy.Facts{Complaint: c}); err != nil {
		return nil, err
	}

	previous := c.Status
	var newHandler *domain.User

	switch {
	case caller.Is(domain.RoleOfficer) && input.Status == domain.StatusResolved:
		c.Status = input.Status
		c.Resolution = input.Resolution
		c.AssignedTo = nil
	case forwardTo != nil:
		target, err := s.userRepo.GetByID(ctx, *forwardTo)
		if err != nil {
			return nil, err
		}
		if target == nil || target.Role != domain.RoleHandler {
			return nil, domain.ErrForwardTargetInvalid
		}
		c.Status = input.Status
		c.Resolution = input.Resolution
		c.AssignedTo = &target.ID
		c.ForwardedFrom = &caller.ID
		newHandler = target
	default:
		c.Status = input.Status
		c.Resolution = input.Resolution
	}

	resolved := c.Status == domain.StatusResolved
	notifyCreator := resolved || (c.Status == domain.StatusInProgress && previous == domain.StatusPending)

	var people map[uuid.UUID]domain.UserSummary
	department := caller.Department
	if notifyCreator {
		people = s.participants(ctx, c.CreatedBy, caller.ID)
		if u, ok := people[caller.ID]; ok && u.Department != "" {
			department = u.Department
		}
	}
	if department == "" {
		department = "Department"
	}

	var notifs []*domain.Notification
	switch {
	case resolved:
		notifs = append(notifs, domain.NewComplaintNotification(c.CreatedBy, c.ID, domain.NotifResolution,
			"Complaint Resolved",
			fmt.Sprintf("Complaint #%s has been resolved by %s.", c.ID, department)))
	case notifyCreator:
		notifs = append(notifs, domain.NewComplaintNotification(c.CreatedBy, c.ID, domain.NotifUpdate,
			"Complaint Updated",
			fmt.Sprintf("Complaint #%s status updated to %s.", c.ID, domain.StatusInProgress)))
	}
	if newHandler != nil {
		notifs = append(notifs, assignmentNotification(newHandler.ID, c))
	}

	if err := s.complaintRepo.ApplyTransition(ctx, c, notifs); err != nil {
		return nil, fmt.Errorf("update complaint: %w", err)
	}

	if notifyCreator {
		s.publishStatusChange(ctx, c, people, department)
	}
	if newHandler != nil {
		s.publish(ctx, outbox.ComplaintAssigned(c.ID, newHandler.Email, newHandler.Name, c.CustomerName, c.InquiryType))
	}

	return c, nil
}

func (s *service) Delete(ctx context.Context, caller domain.Identity, id uuid.UUID) error {
	if err := s.policy.Authorize(caller, policy.ComplaintDelete, policy.Facts{}); err != nil {
		return err
	}

	removed, err := s.complaintRepo.Delete(ctx, id)
	if err != nil {
		return err
	}

	if err := s.attachments.Remove(ctx, removed); err != nil {
		s.logger.Warn().Err(err).Str("complaint_id", id.String()).Msg("failed to remove attachment objects")
	}
	return nil
}

// enrich attaches files and user summaries with one query each.
func (s *service) enrich(ctx context.Context, complaints []domain.Complaint) ([]domain.ComplaintView, error) {
	views := make([]domain.ComplaintView, len(complaints))
	if len(complaints) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, len(complaints))
	userSet := make(map[uuid.UUID]struct{})
	for i, c := range complaints {
		ids[i] = c.ID
		userSet[c.CreatedBy] = struct{}{}
		if c.AssignedTo != nil {
			userSet[*c.AssignedTo] = struct{}{}
		}
	}
	userIDs := make([]uuid.UUID, 0, len(userSet))
	for id := range userSet {
		userIDs = append(userIDs, id)
	}

	attachments, err := s.complaintRepo.ListAttachments(ctx, ids)
	if err != nil {
		return nil, err
	}
	byComplaint := make(map[uuid.UUID][]domain.Attachment, len(complaints))
	for _, a := range attachments {
		byComplaint[a.ComplaintID] = append(byComplaint[a.ComplaintID], a)
	}

	users, err := s.userRepo.GetSummaries(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	for i, c := range complaints {
		v := domain.ComplaintView{Complaint: c, Attachments: byComplaint[c.ID]}
		if v.Attachments == nil {
			v.Attachments = []domain.Attachment{}
		}
		if c.AssignedTo != nil {
			if u, ok := users[*c.AssignedTo]; ok {
				v.AssignedToUser = &u
			}
		}
		if u, ok := users[c.CreatedBy]; ok {
			v.CreatedByUser = &domain.UserSummary{ID: u.ID, Name: u.Name}
		}
		views[i] = v
	}
	return views, nil
}

// participants loads the complaint creator and the acting user. The caller's
// department is read from the store since the token claim may be stale.
// Failures are logged and yield an empty map.
func (s *service) participants(ctx context.Context, creatorID, callerID uuid.UUID) map[uuid.UUID]domain.UserSummary {
	ids := []uuid.UUID{creatorID}
	if callerID != creatorID {
		ids = append(ids, callerID)
	}
	users, err := s.userRepo.GetSummaries(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Str("creator_id", creatorID.String()).Msg("failed to load complaint participants")
		return map[uuid.UUID]domain.UserSummary{}
	}
	return users
}

func (s *service) publishStatusChange(ctx context.Context, c *domain.Complaint, people map[uuid.UUID]domain.UserSummary, department string) {
	creator, ok := people[c.CreatedBy]
	if !ok {
		return
	}

	resolution := ""
	if c.Resolution != nil {
		resolution = *c.Resolution
	}
	s.publish(ctx, outbox.ComplaintStatusChanged(c.ID, creator.Email, creator.Name, c.InquiryType, c.Status, department, resolution))
}

func (s *service) publish(ctx context.Context, msg outbox.Message) {
	if err := s.outbox.Publish(ctx, msg); err != nil {
		s.logger.Error().Err(err).
			Str("kind", string(msg.Kind)).
			Str("complaint_id", msg.ComplaintID.String()).
			Msg("failed to publish email")
	}
}

func assignmentNotification(handlerID uuid.UUID, c *domain.Complaint) *domain.Notification {
	return domain.NewComplaintNotification(handlerID, c.ID, domain.NotifAssignment,
		"New Complaint Assigned",
		fmt.Sprintf("You have been assigned a new complaint from %s regarding %s.", c.CustomerName, c.InquiryType))
}

// collect folds validation failures into verr and returns any other error.
func collect(verr *validation.Error, err error) error {
	if err == nil {
		return nil
	}
	var fe *validation.Error
	if !errors.As(err, &fe) {
		return err
	}
	verr.Fields = append(verr.Fields, fe.Fields...)
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
