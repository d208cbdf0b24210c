package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"complaint-desk/internal/domain"
)

type ReportRepository struct {
	mock.Mock
}

func (m *ReportRepository) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryCount), args.Error(1)
}

func (m *ReportRepository) ResolutionTimeByDepartment(ctx context.Context) ([]domain.DepartmentResolutionTime, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepartmentResolutionTime), args.Error(1)
}

func (m *ReportRepository) StatusDistribution(ctx context.Context) ([]domain.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusCount), args.Error(1)
}

func (m *ReportRepository) MonthlyTrend(ctx context.Context, months int) ([]domain.MonthlyCount, error) {
	args := m.Called(ctx, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyCount), args.Error(1)
}

func (m *ReportRepository) DepartmentPerformance(ctx context.Context) ([]domain.DepartmentPerformance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepartmentPerformance), args.Error(1)
}

func (m *ReportRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.RangedComplaint, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RangedComplaint), args.Error(1)
}
