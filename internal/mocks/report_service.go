package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"complaint-desk/internal/domain"
	"complaint-desk/internal/service/report"
)

type ReportService struct {
	mock.Mock
}

func (m *ReportService) ComplaintsByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryCount), args.Error(1)
}

func (m *ReportService) ResolutionTimeByDepartment(ctx context.Context) ([]domain.DepartmentResolutionTime, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepartmentResolutionTime), args.Error(1)
}

func (m *ReportService) StatusDistribution(ctx context.Context) ([]domain.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusCount), args.Error(1)
}

func (m *ReportService) MonthlyTrend(ctx context.Context, months int) ([]domain.MonthlyCount, error) {
	args := m.Called(ctx, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyCount), args.Error(1)
}

func (m *ReportService) DepartmentPerformance(ctx context.Context) ([]domain.DepartmentPerformance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepartmentPerformance), args.Error(1)
}

func (m *ReportService) ComplaintsInRange(ctx context.Context, r report.Range) (*domain.ComplaintRangeReport, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplaintRangeReport), args.Error(1)
}
