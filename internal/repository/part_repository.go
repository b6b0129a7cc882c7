package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/oakline/propmaint-api/internal/models"
)

// PartRepository manages persistence for the parts inventory.
type PartRepository struct {
	db *sqlx.DB
}

// NewPartRepository constructs a PartRepository.
func NewPartRepository(db *sqlx.DB) *PartRepository {
	return &PartRepository{db: db}
}

// List returns the full inventory ordered by name.
func (r *PartRepository) List(ctx context.Context) ([]models.Part, error) {
	const query = `SELECT id, name, cost, quantity FROM parts ORDER BY name`
	var parts []models.Part
	if err := r.db.SelectContext(ctx, &parts, query); err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	return parts, nil
}

// Find fetches a part by ID.
func (r *PartRepository) Find(ctx context.Context, id int64) (*models.Part, error) {
	const query = `SELECT id, name, cost, quantity FROM parts WHERE id = $1`
	var part models.Part
	if err := r.db.GetContext(ctx, &part, query, id); err != nil {
		return nil, err
	}
	return &part, nil
}

// Create inserts a part and fills in the generated ID.
func (r *PartRepository) Create(ctx context.Context, part *models.Part) error {
	const query = `INSERT INTO parts (name, cost, quantity) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, part.Name, part.Cost, part.Quantity).Scan(&part.ID); err != nil {
		return fmt.Errorf("create part: %w", err)
	}
	return nil
}

// Update applies the present patch fields. It returns sql.ErrNoRows when the
// part does not exist.
func (r *PartRepository) Update(ctx context.Context, id int64, patch models.PartPatch) error {
	sets := []string{}
	args := []interface{}{}

	if patch.Name != nil {
		args = append(args, *patch.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.Cost != nil {
		args = append(args, *patch.Cost)
		sets = append(sets, fmt.Sprintf("cost = $%d", len(args)))
	}
	if patch.Quantity != nil {
		args = append(args, *patch.Quantity)
		sets = append(sets, fmt.Sprintf("quantity = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE parts SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Usage returns the consumption history of a part joined through requests
// and buildings, newest request first.
func (r *PartRepository) Usage(ctx context.Context, id int64) ([]models.PartUsage, error) {
	const query = `SELECT pu.request_id, m.issue_type, m.date_requested, m.date_completed,
        b.address AS building_address, m.apt_number
        FROM parts_used pu
        JOIN maintenance_requests m ON m.id = pu.request_id
        JOIN buildings b ON b.id = m.building_id
        WHERE pu.part_id = $1
        ORDER BY m.date_requested DESC`
	var usage []models.PartUsage
	if err := r.db.SelectContext(ctx, &usage, query, id); err != nil {
		return nil, fmt.Errorf("list part usage: %w", err)
	}
	return usage, nil
}

// AdjustQuantity applies a signed delta to the stock count. Negative stock is
// representable; the schema does not floor at zero. It returns sql.ErrNoRows
// when the part does not exist.
func (r *PartRepository) AdjustQuantity(ctx context.Context, id int64, delta int) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE parts SET quantity = quantity + $1 WHERE id = $2", delta, id)
	if err != nil {
		return fmt.Errorf("adjust part quantity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjust part quantity: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
