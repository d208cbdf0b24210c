package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"complaint-desk/internal/domain"
)

type ReportRepository interface {
	CountByCategory(ctx context.Context) ([]domain.CategoryCount, error)
	ResolutionTimeByDepartment(ctx context.Context) ([]domain.DepartmentResolutionTime, error)
	StatusDistribution(ctx context.Context) ([]domain.StatusCount, error)
	MonthlyTrend(ctx context.Context, months int) ([]domain.MonthlyCount, error)
	DepartmentPerformance(ctx context.Context) ([]domain.DepartmentPerformance, error)
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.RangedComplaint, error)
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	rows := []domain.CategoryCount{}
	query := `
		SELECT inquiry_type AS category, COUNT(*) AS count
		FROM complaints
		GROUP BY inquiry_type
		ORDER BY count DESC, category`
	err := r.db.SelectContext(ctx, &rows, query)
	return rows, err
}

// ResolutionTimeByDepartment attributes resolved complaints to the department
// of the handler still assigned to them.
func (r *reportRepository) ResolutionTimeByDepartment(ctx context.Context) ([]domain.DepartmentResolutionTime, error) {
	rows := []domain.DepartmentResolutionTime{}
	query := `
		SELECT u.department,
			ROUND(AVG(EXTRACT(EPOCH FROM (c.updated_at - c.created_at)) / 3600)::numeric, 2)::float8 AS average_hours
		FROM complaints c
		JOIN users u ON c.assigned_to = u.id
		WHERE c.status = $1
		GROUP BY u.department
		ORDER BY u.department`
	err := r.db.SelectContext(ctx, &rows, query, domain.StatusResolved)
	return rows, err
}

func (r *reportRepository) StatusDistribution(ctx context.Context) ([]domain.StatusCount, error) {
	rows := []domain.StatusCount{}
	query := `
		SELECT status, COUNT(*) AS count
		FROM complaints
		GROUP BY status
		ORDER BY count DESC, status`
	err := r.db.SelectContext(ctx, &rows, query)
	return rows, err
}

// MonthlyTrend counts complaints per calendar month for the current month and
// the months-1 before it.
func (r *reportRepository) MonthlyTrend(ctx context.Context, months int) ([]domain.MonthlyCount, error) {
	rows := []domain.MonthlyCount{}
	query := `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month, COUNT(*) AS count
		FROM complaints
		WHERE created_at >= date_trunc('month', NOW()) - make_interval(months => $1::int - 1)
		GROUP BY 1
		ORDER BY 1`
	err := r.db.SelectContext(ctx, &rows, query, months)
	return rows, err
}

func (r *reportRepository) DepartmentPerformance(ctx context.Context) ([]domain.DepartmentPerformance, error) {
	rows := []domain.DepartmentPerformance{}
	query := `
		SELECT u.department,
			COUNT(c.id) AS total_complaints,
			COUNT(c.id) FILTER (WHERE c.status = $1) AS resolved_complaints,
			COALESCE(ROUND(
				COUNT(c.id) FILTER (WHERE c.status = $1)::numeric * 100 / NULLIF(COUNT(c.id), 0), 2
			), 0)::float8 AS resolution_rate,
			COALESCE(ROUND(
				(AVG(EXTRACT(EPOCH FROM (c.updated_at - c.created_at)) / 3600) FILTER (WHERE c.status = $1))::numeric, 2
			), 0)::float8 AS avg_resolution_time
		FROM complaints c
		JOIN users u ON c.assigned_to = u.id
		GROUP BY u.department
		ORDER BY total_complaints DESC, u.department`
	err := r.db.SelectContext(ctx, &rows, query, domain.StatusResolved)
	return rows, err
}

func (r *reportRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.RangedComplaint, error) {
	rows := []domain.RangedComplaint{}
	query := `
		SELECT c.id, c.customer_name, c.inquiry_type, c.status, u.department, c.created_at
		FROM complaints c
		LEFT JOIN users u ON c.assigned_to = u.id
		WHERE c.created_at >= $1 AND c.created_at < $2
		ORDER BY c.created_at DESC`
	err := r.db.SelectContext(ctx, &rows, query, from, to)
	return rows, err
}
