package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"complaint-desk/internal/config"
	"complaint-desk/internal/domain"
	"complaint-desk/internal/repository"
	"complaint-desk/internal/validation"
)

type Service interface {
	Login(ctx context.Context, input domain.LoginInput) (*domain.LoginResult, error)
	IssueToken(user *domain.User) (string, error)
	ParseToken(token string) (domain.Identity, error)
	Me(ctx context.Context, id domain.Identity) (*domain.User, error)
	ChangePassword(ctx context.Context, id domain.Identity, input domain.ChangePasswordInput) error
}

// Claims carry the whole identity so requests never need a user lookup.
type Claims struct {
	UserID     uuid.UUID   `json:"id"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	Department string      `json:"department"`
	jwt.RegisteredClaims
}

type service struct {
	userRepo  repository.UserRepository
	validator *validation.Validator
	cfg       *config.Config
	now       func() time.Time
}

func NewService(userRepo repository.UserRepository, validator *validation.Validator, cfg *config.Config) Service {
	return &service{
		userRepo:  userRepo,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.LoginResult, error) {
	input.Email = NormalizeEmail(input.Email)
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	if !InDomain(input.Email, s.cfg.OrgEmailDomain) {
		return nil, validation.Newf("email", "email must be a @%s address", s.cfg.OrgEmailDomain)
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResult{Token: token, User: user}, nil
}

func (s *service) IssueToken(user *domain.User) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       user.Role,
		Department: user.Department,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *service) ParseToken(tokenString string) (domain.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	if claims.UserID == uuid.Nil || !claims.Role.IsValid() {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{
		ID:         claims.UserID,
		Email:      claims.Email,
		Role:       claims.Role,
		Department: claims.Department,
	}, nil
}

func (s *service) Me(ctx context.Context, id domain.Identity) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *service) ChangePassword(ctx context.Context, id domain.Identity, input domain.ChangePasswordInput) error {
	if err := s.validator.Struct(input); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, id.ID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return domain.ErrWrongPassword
	}

	hash, err := HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, hash)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// InDomain reports whether email belongs to the organization domain.
func InDomain(email, domainName string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	return strings.EqualFold(email[at+1:], domainName)
}

