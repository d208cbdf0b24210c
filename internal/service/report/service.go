package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"complaint-desk/internal/domain"
	"complaint-desk/internal/repository"
	"complaint-desk/internal/validation"
)

const (
	DefaultTrendMonths = 6
	MaxTrendMonths     = 24

	cachePrefix = "report:"
)

type Service interface {
	ComplaintsByCategory(ctx context.Context) ([]domain.CategoryCount, error)
	ResolutionTimeByDepartment(ctx context.Context) ([]domain.DepartmentResolutionTime, error)
	StatusDistribution(ctx context.Context) ([]domain.StatusCount, error)
	MonthlyTrend(ctx context.Context, months int) ([]domain.MonthlyCount, error)
	DepartmentPerformance(ctx context.Context) ([]domain.DepartmentPerformance, error)
	ComplaintsInRange(ctx context.Context, r Range) (*domain.ComplaintRangeReport, error)
}

type service struct {
	reportRepo repository.ReportRepository
	redis      *redis.Client
	ttl        time.Duration
	logger     zerolog.Logger
}

// NewService builds the report service. A nil redis client disables caching.
func NewService(reportRepo repository.ReportRepository, redis *redis.Client, ttl time.Duration, logger zerolog.Logger) Service {
	return &service{
		reportRepo: reportRepo,
		redis:      redis,
		ttl:        ttl,
		logger:     logger.With().Str("component", "report").Logger(),
	}
}

func (s *service) ComplaintsByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	return cached(ctx, s, "complaints-by-category", func() ([]domain.CategoryCount, error) {
		return s.reportRepo.CountByCategory(ctx)
	})
}

func (s *service) ResolutionTimeByDepartment(ctx context.Context) ([]domain.DepartmentResolutionTime, error) {
	return cached(ctx, s, "resolution-time-by-department", func() ([]domain.DepartmentResolutionTime, error) {
		return s.reportRepo.ResolutionTimeByDepartment(ctx)
	})
}

func (s *service) StatusDistribution(ctx context.Context) ([]domain.StatusCount, error) {
	return cached(ctx, s, "complaint-status-distribution", func() ([]domain.StatusCount, error) {
		return s.reportRepo.StatusDistribution(ctx)
	})
}

func (s *service) MonthlyTrend(ctx context.Context, months int) ([]domain.MonthlyCount, error) {
	if months < 1 || months > MaxTrendMonths {
		return nil, validation.Newf("months", "months must be between 1 and %d", MaxTrendMonths)
	}

	key := fmt.Sprintf("monthly-complaint-trend:%d", months)
	return cached(ctx, s, key, func() ([]domain.MonthlyCount, error) {
		return s.reportRepo.MonthlyTrend(ctx, months)
	})
}

func (s *service) DepartmentPerformance(ctx context.Context) ([]domain.DepartmentPerformance, error) {
	return cached(ctx, s, "department-performance", func() ([]domain.DepartmentPerformance, error) {
		return s.reportRepo.DepartmentPerformance(ctx)
	})
}

func (s *service) ComplaintsInRange(ctx context.Context, r Range) (*domain.ComplaintRangeReport, error) {
	key := fmt.Sprintf("weekly-complaints:%d:%d", r.From.Unix(), r.To.Unix())
	return cached(ctx, s, key, func() (*domain.ComplaintRangeReport, error) {
		rows, err := s.reportRepo.ListCreatedBetween(ctx, r.From, r.To)
		if err != nil {
			return nil, err
		}

		byStatus := make(map[string]int)
		for _, row := range rows {
			byStatus[row.Status]++
		}

		return &domain.ComplaintRangeReport{
			From:       r.From,
			To:         r.To,
			Total:      len(rows),
			ByStatus:   byStatus,
			Complaints: rows,
		}, nil
	})
}

// cached serves key from redis when possible and stores fresh results for the
// configured ttl. Cache failures only cost a database round trip.
func cached[T any](ctx context.Context, s *service, key string, load func() (T, error)) (T, error) {
	key = cachePrefix + key

	if s.redis != nil {
		if raw, err := s.redis.Get(ctx, key).Bytes(); err == nil {
			var out T
			if json.Unmarshal(raw, &out) == nil {
				return out, nil
			}
		}
	}

	out, err := load()
	if err != nil {
		return out, err
	}

	if s.redis != nil && s.ttl > 0 {
		if data, err := json.Marshal(out); err == nil {
			if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Str("key", key).Msg("failed to cache report")
			}
		}
	}

	return out, nil
}
