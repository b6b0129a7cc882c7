package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/oakline/propmaint-api/internal/models"
)

// SchemaRepository inspects the connected schema for optional tables. The
// photo/note/history tables are not guaranteed to exist in every deployment;
// resolving their presence once at startup turns degrade-to-empty behaviour
// into an explicit branch instead of per-request error swallowing.
type SchemaRepository struct {
	db *sqlx.DB
}

// NewSchemaRepository constructs a SchemaRepository.
func NewSchemaRepository(db *sqlx.DB) *SchemaRepository {
	return &SchemaRepository{db: db}
}

// Capabilities probes for the optional request tables.
func (r *SchemaRepository) Capabilities(ctx context.Context) (models.Capabilities, error) {
	caps := models.Capabilities{}

	var err error
	if caps.Photos, err = r.tableExists(ctx, "request_photos"); err != nil {
		return caps, err
	}
	if caps.Notes, err = r.tableExists(ctx, "request_notes"); err != nil {
		return caps, err
	}
	if caps.History, err = r.tableExists(ctx, "request_history"); err != nil {
		return caps, err
	}
	return caps, nil
}

func (r *SchemaRepository) tableExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, "SELECT to_regclass($1) IS NOT NULL", name); err != nil {
		return false, fmt.Errorf("probe table %s: %w", name, err)
	}
	return exists, nil
}
