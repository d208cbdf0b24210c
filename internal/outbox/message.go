// Package outbox decouples outbound email from the request path. Workflow code
// publishes messages; a Dispatcher delivers them in the background.
package outbox

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindComplaintAssigned Kind = "complaint.assigned"
	KindComplaintStatus   Kind = "complaint.status"
)

type Message struct {
	ID          uuid.UUID `json:"id"`
	Kind        Kind      `json:"kind"`
	Attempt     int       `json:"attempt"`
	CreatedAt   time.Time `json:"created_at"`
	ComplaintID uuid.UUID `json:"complaint_id"`
	// NotBefore holds back a retried message until its backoff has elapsed.
	NotBefore time.Time `json:"not_before,omitzero"`

	To            string `json:"to"`
	RecipientName string `json:"recipient_name"`

	CustomerName string `json:"customer_name,omitempty"`
	InquiryType  string `json:"inquiry_type"`
	Status       string `json:"status,omitempty"`
	Department   string `json:"department,omitempty"`
	Resolution   string `json:"resolution,omitempty"`
}

// ComplaintAssigned tells a handler a complaint is now theirs.
func ComplaintAssigned(complaintID uuid.UUID, to, handlerName, customerName, inquiryType string) Message {
	return Message{
		ID:            uuid.New(),
		Kind:          KindComplaintAssigned,
		CreatedAt:     time.Now().UTC(),
		ComplaintID:   complaintID,
		To:            to,
		RecipientName: handlerName,
		CustomerName:  customerName,
		InquiryType:   inquiryType,
	}
}

// ComplaintStatusChanged tells the complaint's creator about a new status.
func ComplaintStatusChanged(complaintID uuid.UUID, to, creatorName, inquiryType, status, department, resolution string) Message {
	return Message{
		ID:            uuid.New(),
		Kind:          KindComplaintStatus,
		CreatedAt:     time.Now().UTC(),
		ComplaintID:   complaintID,
		To:            to,
		RecipientName: creatorName,
		InquiryType:   inquiryType,
		Status:        status,
		Department:    department,
		Resolution:    resolution,
	}
}
