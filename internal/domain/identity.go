package domain

import "github.com/google/uuid"

// Identity is the authenticated caller as decoded from a bearer token.
type Identity struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Department string    `json:"department"`
}

func (i Identity) Is(role Role) bool {
	return i.Role == role
}
