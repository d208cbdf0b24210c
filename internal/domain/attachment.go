package domain

import (
	"time"

	"github.com/google/uuid"
)

type Attachment struct {
	ID               uuid.UUID `json:"id" db:"id"`
	ComplaintID      uuid.UUID `json:"complaint_id" db:"complaint_id"`
	Filename         string    `json:"-" db:"filename"`
	OriginalFilename string    `json:"name" db:"original_filename"`
	FileType         string    `json:"type" db:"file_type"`
	FileSize         int64     `json:"size" db:"file_size"`
	FileURL          string    `json:"url" db:"file_url"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
