package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oakline/propmaint-api/internal/models"
	"github.com/oakline/propmaint-api/pkg/config"
	appErrors "github.com/oakline/propmaint-api/pkg/errors"
)

type mockReportRepo struct {
	costRows     []models.CostRow
	costCalls    int
	revenueRows  []models.RevenueRow
	lastMult     int
	lastVacant   bool
	counts       []models.IssueTypeCountRow
	activityRows []models.BuildingActivityRow
	active       []models.MaintenanceRequest
}

func (m *mockReportRepo) MaintenanceCost(ctx context.Context, rng models.ReportRange, byBuilding bool) ([]models.CostRow, error) {
	m.costCalls++
	return m.costRows, nil
}

func (m *mockReportRepo) Revenue(ctx context.Context, rng models.ReportRange, multiplier int, includeVacant, byBuilding bool) ([]models.RevenueRow, error) {
	m.lastMult = multiplier
	m.lastVacant = includeVacant
	return m.revenueRows, nil
}

func (m *mockReportRepo) Vacancies(ctx context.Context, byBuilding bool) ([]models.VacancyRow, error) {
	return nil, nil
}

func (m *mockReportRepo) IssueTypeCounts(ctx context.Context, rng models.ReportRange, issueType string, desc bool) ([]models.IssueTypeCountRow, error) {
	return m.counts, nil
}

func (m *mockReportRepo) BuildingActivity(ctx context.Context, rng models.ReportRange, building string, activeOnly, desc bool) ([]models.BuildingActivityRow, error) {
	return m.activityRows, nil
}

func (m *mockReportRepo) ActiveRequests(ctx context.Context) ([]models.MaintenanceRequest, error) {
	return m.active, nil
}

type stubCacheRepo struct {
	store map[string][]byte
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	s.store = make(map[string][]byte)
	return nil
}

func rangeFor(t *testing.T, from, to string) models.ReportRange {
	t.Helper()
	f, err := time.Parse("2006-01-02", from)
	require.NoError(t, err)
	u, err := time.Parse("2006-01-02", to)
	require.NoError(t, err)
	return models.ReportRange{From: f, To: u}
}

func enabledCache() *CacheService {
	cfg := config.ReportsConfig{CacheEnabled: true, CacheTTL: time.Minute}
	return NewCacheService(&stubCacheRepo{}, cfg, nil, nil)
}

func TestReportServiceMonthsInRangeInclusive(t *testing.T) {
	// January 15 through March 2 touches three calendar months.
	from, _ := time.Parse("2006-01-02", "2025-01-15")
	to, _ := time.Parse("2006-01-02", "2025-03-02")
	require.Equal(t, 3, monthsInRange(from, to))

	// A same-month range is one month.
	sameFrom, _ := time.Parse("2006-01-02", "2025-05-01")
	sameTo, _ := time.Parse("2006-01-02", "2025-05-31")
	require.Equal(t, 1, monthsInRange(sameFrom, sameTo))

	// Year boundary.
	dec, _ := time.Parse("2006-01-02", "2024-12-01")
	feb, _ := time.Parse("2006-01-02", "2025-02-28")
	require.Equal(t, 3, monthsInRange(dec, feb))
}

func TestReportServiceAverageDividesByMonths(t *testing.T) {
	repo := &mockReportRepo{counts: []models.IssueTypeCountRow{
		{IssueType: "plumbing", TotalRequests: 9},
		{IssueType: "electrical", TotalRequests: 3},
	}}
	svc := NewReportService(repo, nil)

	rows, err := svc.AverageMonthlyRequests(context.Background(), rangeFor(t, "2025-01-01", "2025-03-31"), "", false)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.InDelta(t, 3.0, rows[0].AvgRequestsPerMonth, 0.001)
	require.InDelta(t, 1.0, rows[1].AvgRequestsPerMonth, 0.001)
}

func TestReportServiceRejectsInvertedRange(t *testing.T) {
	svc := NewReportService(&mockReportRepo{}, nil)

	_, err := svc.MaintenanceCost(context.Background(), rangeFor(t, "2025-06-01", "2025-01-01"), false)
	requireStatus(t, err, 400)
}

func TestReportServiceRejectsMissingRange(t *testing.T) {
	svc := NewReportService(&mockReportRepo{}, nil)

	_, err := svc.MaintenanceCost(context.Background(), models.ReportRange{}, false)
	requireStatus(t, err, 400)
}

func TestReportServiceRevenueYearMultiplier(t *testing.T) {
	repo := &mockReportRepo{revenueRows: []models.RevenueRow{{TotalRevenue: 114000}}}
	svc := NewReportService(repo, nil)

	rng := rangeFor(t, "2025-01-01", "2025-12-31")
	_, err := svc.Revenue(context.Background(), rng, RevenueOptions{Interval: models.IntervalYear, IncludeEmpty: true})
	require.NoError(t, err)
	require.Equal(t, 12, repo.lastMult)
	require.True(t, repo.lastVacant)

	_, err = svc.Revenue(context.Background(), rng, RevenueOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, repo.lastMult)

	_, err = svc.Revenue(context.Background(), rng, RevenueOptions{Interval: "Decade"})
	requireStatus(t, err, 400)
}

func TestReportServiceCostUsesCache(t *testing.T) {
	repo := &mockReportRepo{costRows: []models.CostRow{{TotalCost: 314.5}}}
	svc := NewReportService(repo, enabledCache())

	rng := rangeFor(t, "2025-01-01", "2025-06-30")
	first, err := svc.MaintenanceCost(context.Background(), rng, false)
	require.NoError(t, err)
	require.Equal(t, 1, repo.costCalls)

	second, err := svc.MaintenanceCost(context.Background(), rng, false)
	require.NoError(t, err)
	require.Equal(t, 1, repo.costCalls)
	require.Equal(t, first, second)
}
