package report

import (
	"fmt"
	"time"

	"complaint-desk/internal/domain"
)

const (
	RangeLast7Days     = "last_7_days"
	RangePrevious7Days = "previous_7_days"
	RangeThisMonth     = "this_month"
	RangeLastQuarter   = "last_quarter"
	RangeThisYear      = "this_year"

	dateLayout = "2006-01-02"
)

// Range is a half-open creation window [From, To).
type Range struct {
	From time.Time
	To   time.Time
}

// ResolveRange turns a named preset or an explicit from/to pair of
// YYYY-MM-DD dates into a window. Explicit dates win over the preset and the
// to date is inclusive. With neither, the last seven days are used.
func ResolveRange(preset, from, to string, now time.Time) (Range, error) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if from != "" || to != "" {
		if from == "" || to == "" {
			return Range{}, fmt.Errorf("%w: both from and to are required", domain.ErrInvalidReportRange)
		}
		start, err := time.Parse(dateLayout, from)
		if err != nil {
			return Range{}, fmt.Errorf("%w: from must be a YYYY-MM-DD date", domain.ErrInvalidReportRange)
		}
		end, err := time.Parse(dateLayout, to)
		if err != nil {
			return Range{}, fmt.Errorf("%w: to must be a YYYY-MM-DD date", domain.ErrInvalidReportRange)
		}
		if start.After(end) {
			return Range{}, fmt.Errorf("%w: from must not be after to", domain.ErrInvalidReportRange)
		}
		return Range{From: start, To: end.AddDate(0, 0, 1)}, nil
	}

	switch preset {
	case "", RangeLast7Days:
		return Range{From: today.AddDate(0, 0, -6), To: today.AddDate(0, 0, 1)}, nil
	case RangePrevious7Days:
		return Range{From: today.AddDate(0, 0, -13), To: today.AddDate(0, 0, -6)}, nil
	case RangeThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Range{From: start, To: start.AddDate(0, 1, 0)}, nil
	case RangeLastQuarter:
		return Range{From: today.AddDate(0, -3, 0), To: today.AddDate(0, 0, 1)}, nil
	case RangeThisYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return Range{From: start, To: start.AddDate(1, 0, 0)}, nil
	default:
		return Range{}, fmt.Errorf("%w: unknown range %q", domain.ErrInvalidReportRange, preset)
	}
}
