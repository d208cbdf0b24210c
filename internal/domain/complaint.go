package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

type Complaint struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	CustomerName        string     `json:"customer_name" db:"customer_name"`
	CustomerPhone       string     `json:"customer_phone" db:"customer_phone"`
	Channel             *string    `json:"channel" db:"channel"`
	InquiryType         string     `json:"inquiry_type" db:"inquiry_type"`
	Details             string     `json:"details" db:"details"`
	Status              string     `json:"status" db:"status"`
	Resolution          *string    `json:"resolution" db:"resolution"`
	AssignedTo          *uuid.UUID `json:"assigned_to" db:"assigned_to"`
	CreatedBy           uuid.UUID  `json:"created_by" db:"created_by"`
	AttemptedResolution bool       `json:"attempted_resolution" db:"attempted_resolution"`
	ResolutionDetails   *string    `json:"resolution_details" db:"resolution_details"`
	ForwardedFrom       *uuid.UUID `json:"forwarded_from" db:"forwarded_from"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// IsAssignedTo reports whether userID is the complaint's current assignee.
func (c *Complaint) IsAssignedTo(userID uuid.UUID) bool {
	return c.AssignedTo != nil && *c.AssignedTo == userID
}

// ComplaintView is a complaint enriched for API responses.
type ComplaintView struct {
	Complaint
	Attachments    []Attachment `json:"attachments"`
	AssignedToUser *UserSummary `json:"assigned_to_user"`
	CreatedByUser  *UserSummary `json:"created_by_user,omitempty"`
}

type CreateComplaintInput struct {
	CustomerName        string  `json:"customerName" form:"customerName" validate:"required,max=255"`
	CustomerPhone       string  `json:"customerPhone" form:"customerPhone" validate:"required,max=50"`
	Channel             *string `json:"channel" form:"channel" validate:"omitempty,max=100"`
	InquiryType         string  `json:"inquiryType" form:"inquiryType" validate:"required,max=255"`
	Details             string  `json:"details" form:"details" validate:"required"`
	AttemptedResolution bool    `json:"attemptedResolution" form:"attemptedResolution"`
	ResolutionDetails   *string `json:"resolutionDetails" form:"resolutionDetails"`
	ForwardTo           *string `json:"forwardTo" form:"forwardTo" validate:"omitempty,max=255"`
}

type UpdateComplaintInput struct {
	Status     string     `json:"status" validate:"required,max=50"`
	Resolution *string    `json:"resolution"`
	ForwardTo  *string    `json:"forwardTo" validate:"omitempty,max=64"`
}

type CreateComplaintResult struct {
	ID         uuid.UUID `json:"id"`
	Department string    `json:"department"`
	Message    string    `json:"message"`
}
