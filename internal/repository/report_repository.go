package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/oakline/propmaint-api/internal/models"
)

// ReportRepository exposes read-only aggregate queries for the reporting
// endpoints. Reads are not isolated from in-flight writes; totals reflect
// whatever is committed at query time.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs a ReportRepository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// MaintenanceCost sums part costs for requests completed inside the range,
// optionally grouped per building.
func (r *ReportRepository) MaintenanceCost(ctx context.Context, rng models.ReportRange, byBuilding bool) ([]models.CostRow, error) {
	const joins = `FROM maintenance_requests m
        JOIN parts_used pu ON pu.request_id = m.id
        JOIN parts p ON p.id = pu.part_id
        JOIN buildings b ON b.id = m.building_id
        WHERE m.date_completed BETWEEN $1 AND $2`

	var query string
	if byBuilding {
		query = `SELECT b.id AS building_id, b.address, SUM(p.cost) AS total_cost ` + joins +
			` GROUP BY b.id, b.address ORDER BY total_cost DESC`
	} else {
		query = `SELECT COALESCE(SUM(p.cost), 0) AS total_cost ` + joins
	}

	var rows []models.CostRow
	if err := r.db.SelectContext(ctx, &rows, query, rng.From, rng.To); err != nil {
		return nil, fmt.Errorf("query maintenance cost: %w", err)
	}
	return rows, nil
}

// Revenue sums rental cost for apartments rented inside the range, scaled by
// the interval multiplier. includeVacant folds unrented apartments into the
// total as well; byBuilding groups per building.
func (r *ReportRepository) Revenue(ctx context.Context, rng models.ReportRange, multiplier int, includeVacant, byBuilding bool) ([]models.RevenueRow, error) {
	occupied := "(a.renter_id IS NOT NULL AND a.date_rented BETWEEN $2 AND $3)"
	if includeVacant {
		occupied = "(" + occupied + " OR a.renter_id IS NULL)"
	}

	base := `FROM apartments a JOIN buildings b ON b.id = a.building_id WHERE ` + occupied

	var query string
	if byBuilding {
		query = `SELECT b.id AS building_id, b.address, SUM(a.rental_cost * $1) AS total_revenue ` + base +
			` GROUP BY b.id, b.address ORDER BY total_revenue DESC`
	} else {
		query = `SELECT COALESCE(SUM(a.rental_cost * $1), 0) AS total_revenue ` + base
	}

	var rows []models.RevenueRow
	if err := r.db.SelectContext(ctx, &rows, query, multiplier, rng.From, rng.To); err != nil {
		return nil, fmt.Errorf("query revenue: %w", err)
	}
	return rows, nil
}

// Vacancies counts unrented apartments, optionally grouped per building.
func (r *ReportRepository) Vacancies(ctx context.Context, byBuilding bool) ([]models.VacancyRow, error) {
	const base = `FROM apartments a JOIN buildings b ON b.id = a.building_id WHERE a.renter_id IS NULL`

	var query string
	if byBuilding {
		query = `SELECT b.id AS building_id, b.address, COUNT(*) AS vacancies ` + base +
			` GROUP BY b.id, b.address ORDER BY vacancies DESC`
	} else {
		query = `SELECT COUNT(*) AS vacancies ` + base
	}

	var rows []models.VacancyRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("query vacancies: %w", err)
	}
	return rows, nil
}

// IssueTypeCounts returns request counts per issue type inside the range;
// the service layer turns counts into monthly averages.
func (r *ReportRepository) IssueTypeCounts(ctx context.Context, rng models.ReportRange, issueType string, desc bool) ([]models.IssueTypeCountRow, error) {
	query := `SELECT m.issue_type, COUNT(*) AS total_requests
        FROM maintenance_requests m
        WHERE m.date_requested BETWEEN $1 AND $2`
	args := []interface{}{rng.From, rng.To}

	if issueType != "" {
		args = append(args, issueType)
		query += fmt.Sprintf(" AND m.issue_type = $%d", len(args))
	}
	query += " GROUP BY m.issue_type ORDER BY total_requests"
	if desc {
		query += " DESC"
	}

	var rows []models.IssueTypeCountRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query issue type counts: %w", err)
	}
	return rows, nil
}

// BuildingActivity compares per-building request volume inside the range.
// Zero-day completions are nulled out so same-day fixes do not drag the
// average down; completions outside the day grain count as completed but
// contribute nothing to the average.
func (r *ReportRepository) BuildingActivity(ctx context.Context, rng models.ReportRange, building string, activeOnly, desc bool) ([]models.BuildingActivityRow, error) {
	query := `SELECT b.id AS building_id, b.address,
        COUNT(*) AS total_requests,
        COUNT(m.date_completed) AS completed_requests,
        AVG(NULLIF(FLOOR(EXTRACT(EPOCH FROM (m.date_completed - m.date_requested)) / 86400), 0)) AS avg_days_to_complete
        FROM maintenance_requests m
        JOIN buildings b ON b.id = m.building_id
        WHERE m.date_requested BETWEEN $1 AND $2`
	args := []interface{}{rng.From, rng.To}

	if building != "" {
		args = append(args, building)
		query += fmt.Sprintf(" AND b.address = $%d", len(args))
	}
	if activeOnly {
		args = append(args, models.StatusCompleted, models.StatusCanceled)
		query += fmt.Sprintf(" AND m.active_status NOT IN ($%d, $%d)", len(args)-1, len(args))
	}
	query += " GROUP BY b.id, b.address ORDER BY total_requests"
	if desc {
		query += " DESC"
	}

	var rows []models.BuildingActivityRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query building activity: %w", err)
	}
	return rows, nil
}

// ActiveRequests lists requests still in flight, newest first.
func (r *ReportRepository) ActiveRequests(ctx context.Context) ([]models.MaintenanceRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM maintenance_requests r
        WHERE r.active_status NOT IN ($1, $2)
        ORDER BY r.date_requested DESC`, requestColumns)

	var requests []models.MaintenanceRequest
	if err := r.db.SelectContext(ctx, &requests, query, models.StatusCompleted, models.StatusCanceled); err != nil {
		return nil, fmt.Errorf("query active requests: %w", err)
	}
	return requests, nil
}
