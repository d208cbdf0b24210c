package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Data      json.RawMessage  `json:"data,omitempty" db:"data"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifAssignment NotificationType = "assignment"
	NotifResolution NotificationType = "resolution"
	NotifUpdate     NotificationType = "update"
)

// NewComplaintNotification builds an unsaved notification that links back to
// the complaint it is about.
func NewComplaintNotification(userID, complaintID uuid.UUID, typ NotificationType, title, message string) *Notification {
	data, _ := json.Marshal(map[string]string{"complaint_id": complaintID.String()})
	return &Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Data:    json.RawMessage(data),
	}
}
