package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oakline/propmaint-api/internal/models"
	appErrors "github.com/oakline/propmaint-api/pkg/errors"
)

type reportRepository interface {
	MaintenanceCost(ctx context.Context, rng models.ReportRange, byBuilding bool) ([]models.CostRow, error)
	Revenue(ctx context.Context, rng models.ReportRange, multiplier int, includeVacant, byBuilding bool) ([]models.RevenueRow, error)
	Vacancies(ctx context.Context, byBuilding bool) ([]models.VacancyRow, error)
	IssueTypeCounts(ctx context.Context, rng models.ReportRange, issueType string, desc bool) ([]models.IssueTypeCountRow, error)
	BuildingActivity(ctx context.Context, rng models.ReportRange, building string, activeOnly, desc bool) ([]models.BuildingActivityRow, error)
	ActiveRequests(ctx context.Context) ([]models.MaintenanceRequest, error)
}

// RevenueOptions selects the revenue projection.
type RevenueOptions struct {
	Interval     string
	IncludeEmpty bool
	ByBuilding   bool
}

// ActivityOptions filters the building-activity report.
type ActivityOptions struct {
	Building   string
	ActiveOnly bool
	Desc       bool
}

// ReportService computes aggregate reports with a cache-then-query path.
type ReportService struct {
	repo  reportRepository
	cache *CacheService
}

// NewReportService constructs the report service.
func NewReportService(repo reportRepository, cache *CacheService) *ReportService {
	return &ReportService{repo: repo, cache: cache}
}

// MaintenanceCost sums part costs over requests completed in the range.
func (s *ReportService) MaintenanceCost(ctx context.Context, rng models.ReportRange, byBuilding bool) ([]models.CostRow, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("reports:cost:%s:%s:%t", rng.From.Format("2006-01-02"), rng.To.Format("2006-01-02"), byBuilding)
	var rows []models.CostRow
	if s.cache.Get(ctx, key, &rows) {
		return rows, nil
	}

	rows, err := s.repo.MaintenanceCost(ctx, rng, byBuilding)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute maintenance cost")
	}
	if rows == nil {
		rows = []models.CostRow{}
	}
	s.cache.Set(ctx, key, rows)
	return rows, nil
}

// Revenue projects rental revenue for occupied apartments rented within the
// range. Yearly interval multiplies the monthly rent by twelve.
func (s *ReportService) Revenue(ctx context.Context, rng models.ReportRange, opts RevenueOptions) ([]models.RevenueRow, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}

	multiplier := 1
	switch strings.ToLower(opts.Interval) {
	case "", strings.ToLower(models.IntervalMonth):
	case strings.ToLower(models.IntervalYear):
		multiplier = 12
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "interval must be Month or Year")
	}

	key := fmt.Sprintf("reports:revenue:%s:%s:%d:%t:%t",
		rng.From.Format("2006-01-02"), rng.To.Format("2006-01-02"), multiplier, opts.IncludeEmpty, opts.ByBuilding)
	var rows []models.RevenueRow
	if s.cache.Get(ctx, key, &rows) {
		return rows, nil
	}

	rows, err := s.repo.Revenue(ctx, rng, multiplier, opts.IncludeEmpty, opts.ByBuilding)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute revenue")
	}
	if rows == nil {
		rows = []models.RevenueRow{}
	}
	s.cache.Set(ctx, key, rows)
	return rows, nil
}

// Vacancies counts unoccupied apartments, optionally per building.
func (s *ReportService) Vacancies(ctx context.Context, byBuilding bool) ([]models.VacancyRow, error) {
	key := fmt.Sprintf("reports:vacancies:%t", byBuilding)
	var rows []models.VacancyRow
	if s.cache.Get(ctx, key, &rows) {
		return rows, nil
	}

	rows, err := s.repo.Vacancies(ctx, byBuilding)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute vacancies")
	}
	if rows == nil {
		rows = []models.VacancyRow{}
	}
	s.cache.Set(ctx, key, rows)
	return rows, nil
}

// AverageMonthlyRequests divides per-issue-type request counts by the number
// of calendar months the range spans, counted inclusively.
func (s *ReportService) AverageMonthlyRequests(ctx context.Context, rng models.ReportRange, issueType string, desc bool) ([]models.IssueTypeAverageRow, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}
	months := monthsInRange(rng.From, rng.To)
	if months <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date range must span at least one month")
	}

	key := fmt.Sprintf("reports:avgmonthly:%s:%s:%s:%t", rng.From.Format("2006-01-02"), rng.To.Format("2006-01-02"), issueType, desc)
	var rows []models.IssueTypeAverageRow
	if s.cache.Get(ctx, key, &rows) {
		return rows, nil
	}

	counts, err := s.repo.IssueTypeCounts(ctx, rng, issueType, desc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute request averages")
	}

	rows = make([]models.IssueTypeAverageRow, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, models.IssueTypeAverageRow{
			IssueType:           c.IssueType,
			TotalRequests:       c.TotalRequests,
			AvgRequestsPerMonth: float64(c.TotalRequests) / float64(months),
		})
	}
	s.cache.Set(ctx, key, rows)
	return rows, nil
}

// BuildingActivity compares request workload across buildings.
func (s *ReportService) BuildingActivity(ctx context.Context, rng models.ReportRange, opts ActivityOptions) ([]models.BuildingActivityRow, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("reports:activity:%s:%s:%s:%t:%t",
		rng.From.Format("2006-01-02"), rng.To.Format("2006-01-02"), opts.Building, opts.ActiveOnly, opts.Desc)
	var rows []models.BuildingActivityRow
	if s.cache.Get(ctx, key, &rows) {
		return rows, nil
	}

	rows, err := s.repo.BuildingActivity(ctx, rng, opts.Building, opts.ActiveOnly, opts.Desc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute building activity")
	}
	if rows == nil {
		rows = []models.BuildingActivityRow{}
	}
	s.cache.Set(ctx, key, rows)
	return rows, nil
}

// ActiveRequests lists requests that are neither completed nor canceled.
func (s *ReportService) ActiveRequests(ctx context.Context) ([]models.MaintenanceRequest, error) {
	requests, err := s.repo.ActiveRequests(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list active requests")
	}
	if requests == nil {
		requests = []models.MaintenanceRequest{}
	}
	return requests, nil
}

func validateRange(rng models.ReportRange) error {
	if rng.From.IsZero() || rng.To.IsZero() {
		return appErrors.Clone(appErrors.ErrValidation, "from and to dates are required")
	}
	if rng.To.Before(rng.From) {
		return appErrors.Clone(appErrors.ErrValidation, "to must not precede from")
	}
	return nil
}

// monthsInRange counts calendar months touched by the window, boundaries
// inclusive: January 15 through March 2 spans three months.
func monthsInRange(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month()) + 1
}
