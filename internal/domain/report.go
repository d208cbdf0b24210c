package domain

import (
	"time"

	"github.com/google/uuid"
)

type CategoryCount struct {
	Category string `json:"category" db:"category"`
	Count    int64  `json:"count" db:"count"`
}

type DepartmentResolutionTime struct {
	Department   string  `json:"department" db:"department"`
	AverageHours float64 `json:"average_hours" db:"average_hours"`
}

type StatusCount struct {
	Status string `json:"status" db:"status"`
	Count  int64  `json:"count" db:"count"`
}

type MonthlyCount struct {
	Month string `json:"month" db:"month"`
	Count int64  `json:"count" db:"count"`
}

type DepartmentPerformance struct {
	Department         string  `json:"department" db:"department"`
	TotalComplaints    int64   `json:"total_complaints" db:"total_complaints"`
	ResolvedComplaints int64   `json:"resolved_complaints" db:"resolved_complaints"`
	ResolutionRate     float64 `json:"resolution_rate" db:"resolution_rate"`
	AvgResolutionTime  float64 `json:"avg_resolution_time" db:"avg_resolution_time"`
}

// RangedComplaint is one row of the time-range listing.
type RangedComplaint struct {
	ID           uuid.UUID `json:"id" db:"id"`
	CustomerName string    `json:"customer_name" db:"customer_name"`
	InquiryType  string    `json:"inquiry_type" db:"inquiry_type"`
	Status       string    `json:"status" db:"status"`
	Department   *string   `json:"department" db:"department"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type ComplaintRangeReport struct {
	From       time.Time         `json:"from"`
	To         time.Time         `json:"to"`
	Total      int               `json:"total"`
	ByStatus   map[string]int    `json:"by_status"`
	Complaints []RangedComplaint `json:"complaints"`
}
