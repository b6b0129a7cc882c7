package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/oakline/propmaint-api/internal/models"
)

// ApartmentRepository manages persistence for apartments.
type ApartmentRepository struct {
	db *sqlx.DB
}

// NewApartmentRepository constructs an ApartmentRepository.
func NewApartmentRepository(db *sqlx.DB) *ApartmentRepository {
	return &ApartmentRepository{db: db}
}

// ListByBuilding returns every apartment of a building ordered by number.
func (r *ApartmentRepository) ListByBuilding(ctx context.Context, buildingID int64) ([]models.Apartment, error) {
	const query = `SELECT a.building_id, a.apt_number, a.rental_cost, a.renter_id, a.date_rented,
        (a.renter_id IS NULL) AS is_vacant
        FROM apartments a
        WHERE a.building_id = $1
        ORDER BY a.apt_number`

	var apartments []models.Apartment
	if err := r.db.SelectContext(ctx, &apartments, query, buildingID); err != nil {
		return nil, fmt.Errorf("list apartments: %w", err)
	}
	return apartments, nil
}

// Find fetches a single apartment by its composite key.
func (r *ApartmentRepository) Find(ctx context.Context, buildingID int64, aptNumber int) (*models.Apartment, error) {
	const query = `SELECT a.building_id, a.apt_number, a.rental_cost, a.renter_id, a.date_rented,
        (a.renter_id IS NULL) AS is_vacant
        FROM apartments a
        WHERE a.building_id = $1 AND a.apt_number = $2`

	var apartment models.Apartment
	if err := r.db.GetContext(ctx, &apartment, query, buildingID, aptNumber); err != nil {
		return nil, err
	}
	return &apartment, nil
}

// Update applies the present patch fields. It returns sql.ErrNoRows when the
// apartment does not exist.
func (r *ApartmentRepository) Update(ctx context.Context, buildingID int64, aptNumber int, patch models.ApartmentPatch) error {
	sets := []string{}
	args := []interface{}{}

	if patch.RentalCost != nil {
		args = append(args, *patch.RentalCost)
		sets = append(sets, fmt.Sprintf("rental_cost = $%d", len(args)))
	}
	if patch.RenterID != nil {
		args = append(args, *patch.RenterID)
		sets = append(sets, fmt.Sprintf("renter_id = $%d", len(args)))
	}
	if patch.DateRented != nil {
		args = append(args, *patch.DateRented)
		sets = append(sets, fmt.Sprintf("date_rented = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, buildingID, aptNumber)
	query := fmt.Sprintf("UPDATE apartments SET %s WHERE building_id = $%d AND apt_number = $%d",
		strings.Join(sets, ", "), len(args)-1, len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update apartment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update apartment: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetOccupant assigns a renter and stamps the rental date server-side.
func (r *ApartmentRepository) SetOccupant(ctx context.Context, buildingID int64, aptNumber int, renterID int64) error {
	const query = `UPDATE apartments SET renter_id = $1, date_rented = CURRENT_DATE
        WHERE building_id = $2 AND apt_number = $3`
	return r.execVacancy(ctx, query, renterID, buildingID, aptNumber)
}

// ClearOccupant vacates the apartment, clearing renter and rental date
// together to preserve the vacancy invariant.
func (r *ApartmentRepository) ClearOccupant(ctx context.Context, buildingID int64, aptNumber int) error {
	const query = `UPDATE apartments SET renter_id = NULL, date_rented = NULL
        WHERE building_id = $1 AND apt_number = $2`
	return r.execVacancy(ctx, query, buildingID, aptNumber)
}

func (r *ApartmentRepository) execVacancy(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set vacancy: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set vacancy: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
