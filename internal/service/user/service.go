package user

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"complaint-desk/internal/config"
	"complaint-desk/internal/domain"
	"complaint-desk/internal/policy"
	"complaint-desk/internal/repository"
	"complaint-desk/internal/service/auth"
	"complaint-desk/internal/validation"
)

type Service interface {
	List(ctx context.Context, caller domain.Identity) ([]domain.User, error)
	Get(ctx context.Context, caller domain.Identity, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, caller domain.Identity, input domain.CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, caller domain.Identity, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, caller domain.Identity, id uuid.UUID) error
	// EnsureUser creates the user unless the email is already registered.
	// It reports whether a user was created.
	EnsureUser(ctx context.Context, input domain.CreateUserInput) (*domain.User, bool, error)
}

type service struct {
	userRepo  repository.UserRepository
	policy    *policy.Policy
	validator *validation.Validator
	cfg       *config.Config
}

func NewService(userRepo repository.UserRepository, pol *policy.Policy, validator *validation.Validator, cfg *config.Config) Service {
	return &service{
		userRepo:  userRepo,
		policy:    pol,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *service) List(ctx context.Context, caller domain.Identity) ([]domain.User, error) {
	if err := s.policy.Authorize(caller, policy.UserList, policy.Facts{}); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}

func (s *service) Get(ctx context.Context, caller domain.Identity, id uuid.UUID) (*domain.User, error) {
	if err := s.policy.Authorize(caller, policy.UserRead, policy.Facts{SubjectUserID: id}); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *service) Create(ctx context.Context, caller domain.Identity, input domain.CreateUserInput) (*domain.User, error) {
	if err := s.policy.Authorize(caller, policy.UserCreate, policy.Facts{}); err != nil {
		return nil, err
	}
	return s.create(ctx, input)
}

func (s *service) EnsureUser(ctx context.Context, input domain.CreateUserInput) (*domain.User, bool, error) {
	existing, err := s.userRepo.GetByEmail(ctx, auth.NormalizeEmail(input.Email))
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	user, err := s.create(ctx, input)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *service) create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = auth.NormalizeEmail(input.Email)
	input.Department = strings.TrimSpace(input.Department)

	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	if !auth.InDomain(input.Email, s.cfg.OrgEmailDomain) {
		return nil, domain.ErrEmailDomain
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailExists
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.Role(input.Role),
		Department:   input.Department,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Update(ctx context.Context, caller domain.Identity, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error) {
	if err := s.policy.Authorize(caller, policy.UserUpdate, policy.Facts{SubjectUserID: id}); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	roleChanged := input.Role != nil && domain.Role(*input.Role) != user.Role
	deptChanged := input.Department != nil && strings.TrimSpace(*input.Department) != user.Department
	if roleChanged || deptChanged {
		if err := s.policy.Authorize(caller, policy.UserChangeRole, policy.Facts{SubjectUserID: id}); err != nil {
			return nil, err
		}
	}

	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name != "" {
			user.Name = name
		}
	}
	if input.Email != nil {
		email := auth.NormalizeEmail(*input.Email)
		if email != user.Email {
			if !auth.InDomain(email, s.cfg.OrgEmailDomain) {
				return nil, domain.ErrEmailDomain
			}
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrEmailExists
			}
			user.Email = email
		}
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if roleChanged {
		user.Role = domain.Role(*input.Role)
	}
	if deptChanged {
		user.Department = strings.TrimSpace(*input.Department)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Delete(ctx context.Context, caller domain.Identity, id uuid.UUID) error {
	if err := s.policy.Authorize(caller, policy.UserDelete, policy.Facts{}); err != nil {
		return err
	}
	if caller.ID == id {
		return domain.ErrCannotDeleteSelf
	}
	return s.userRepo.Delete(ctx, id)
}
