package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/oakline/propmaint-api/internal/models"
)

// BuildingRepository manages persistence for buildings.
type BuildingRepository struct {
	db *sqlx.DB
}

// NewBuildingRepository constructs a BuildingRepository.
func NewBuildingRepository(db *sqlx.DB) *BuildingRepository {
	return &BuildingRepository{db: db}
}

// ListSummaries returns one row per building with apartment, vacancy and
// request counters. Left joins keep buildings with no apartments or requests
// in the result with zero counts.
func (r *BuildingRepository) ListSummaries(ctx context.Context) ([]models.BuildingSummary, error) {
	const query = `SELECT b.id, b.address,
        COUNT(DISTINCT a.apt_number) AS num_apartments,
        COUNT(DISTINCT CASE WHEN a.renter_id IS NULL THEN a.apt_number END) AS vacancies,
        COUNT(DISTINCT m.id) AS total_requests
        FROM buildings b
        LEFT JOIN apartments a ON a.building_id = b.id
        LEFT JOIN maintenance_requests m ON m.building_id = b.id
        GROUP BY b.id, b.address
        ORDER BY b.id`

	var summaries []models.BuildingSummary
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	return summaries, nil
}

// Create inserts a building and fills in the generated ID.
func (r *BuildingRepository) Create(ctx context.Context, building *models.Building) error {
	const query = `INSERT INTO buildings (address, manager_id) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, building.Address, building.ManagerID).Scan(&building.ID); err != nil {
		return fmt.Errorf("create building: %w", err)
	}
	return nil
}

// Update applies the present patch fields. It returns sql.ErrNoRows when the
// building does not exist.
func (r *BuildingRepository) Update(ctx context.Context, id int64, patch models.BuildingPatch) error {
	sets := []string{}
	args := []interface{}{}

	if patch.Address != nil {
		args = append(args, *patch.Address)
		sets = append(sets, fmt.Sprintf("address = $%d", len(args)))
	}
	if patch.ManagerID != nil {
		args = append(args, *patch.ManagerID)
		sets = append(sets, fmt.Sprintf("manager_id = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE buildings SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update building: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update building: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
