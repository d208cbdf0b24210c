package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleOfficer Role = "customer_relations_officer"
	RoleHandler Role = "complaints_handler"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOfficer, RoleHandler:
		return true
	default:
		return false
	}
}

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	Department   string    `json:"department" db:"department"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserSummary is the slice of a user embedded in complaint responses.
type UserSummary struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"-" db:"email"`
	Department string    `json:"department,omitempty" db:"department"`
}

type CreateUserInput struct {
	Name       string `json:"name" validate:"required,max=255"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	Role       string `json:"role" validate:"required,oneof=admin customer_relations_officer complaints_handler"`
	Department string `json:"department" validate:"required,max=255"`
}

type UpdateUserInput struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Role       *string `json:"role,omitempty" validate:"omitempty,oneof=admin customer_relations_officer complaints_handler"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=255"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
