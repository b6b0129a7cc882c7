package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/oakline/propmaint-api/internal/models"
)

const requestColumns = `r.id, r.issue_type, r.issue_description, r.active_status, r.priority,
        r.date_requested, r.date_completed, r.building_id, r.apt_number, r.student_requesting_id,
        r.photo_url, r.notes`

// RequestRepository manages persistence for maintenance requests and their
// related collections.
type RequestRepository struct {
	db *sqlx.DB
}

// NewRequestRepository constructs a RequestRepository.
func NewRequestRepository(db *sqlx.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// List returns requests matching the provided filters, newest first.
func (r *RequestRepository) List(ctx context.Context, filter models.RequestFilter) ([]models.MaintenanceRequest, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.StudentID != nil {
		args = append(args, *filter.StudentID)
		conditions = append(conditions, fmt.Sprintf("r.student_requesting_id = $%d", len(args)))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM request_assignments ra WHERE ra.request_id = r.id AND ra.employee_id = $%d)", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("r.active_status = $%d", len(args)))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		conditions = append(conditions, fmt.Sprintf("r.priority = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("r.date_requested >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("r.date_requested <= $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`SELECT %s FROM maintenance_requests r WHERE %s
        ORDER BY r.date_requested DESC LIMIT %d OFFSET %d`,
		requestColumns, where, filter.Limit, filter.Offset)

	var requests []models.MaintenanceRequest
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list requests: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM maintenance_requests r WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count requests: %w", err)
	}
	return requests, total, nil
}

// Create inserts a request and fills in the sequence-generated ID.
func (r *RequestRepository) Create(ctx context.Context, req *models.MaintenanceRequest) error {
	const query = `INSERT INTO maintenance_requests
        (issue_type, issue_description, active_status, priority, date_requested, building_id, apt_number, student_requesting_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		req.IssueType, req.Description, req.ActiveStatus, req.Priority,
		req.DateRequested, req.BuildingID, req.AptNumber, req.StudentRequestingID,
	).Scan(&req.ID)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return nil
}

type requestDetailRow struct {
	models.MaintenanceRequest
	BuildingAddress *string `db:"building_address"`
}

// Find fetches the request row together with its building address.
func (r *RequestRepository) Find(ctx context.Context, id int64) (*models.RequestDetail, error) {
	query := fmt.Sprintf(`SELECT %s, b.address AS building_address
        FROM maintenance_requests r
        LEFT JOIN buildings b ON b.id = r.building_id
        WHERE r.id = $1`, requestColumns)

	var row requestDetailRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return &models.RequestDetail{
		MaintenanceRequest: row.MaintenanceRequest,
		BuildingAddress:    row.BuildingAddress,
	}, nil
}

// Photos lists attachment rows for a request, newest first.
func (r *RequestRepository) Photos(ctx context.Context, requestID int64) ([]models.RequestPhoto, error) {
	const query = `SELECT id, file_path, uploaded_at FROM request_photos
        WHERE request_id = $1 ORDER BY uploaded_at DESC`
	var photos []models.RequestPhoto
	if err := r.db.SelectContext(ctx, &photos, query, requestID); err != nil {
		return nil, fmt.Errorf("list request photos: %w", err)
	}
	return photos, nil
}

// Notes lists comment rows for a request, newest first.
func (r *RequestRepository) Notes(ctx context.Context, requestID int64) ([]models.RequestNote, error) {
	const query = `SELECT id, author_id, body, created_at FROM request_notes
        WHERE request_id = $1 ORDER BY created_at DESC`
	var notes []models.RequestNote
	if err := r.db.SelectContext(ctx, &notes, query, requestID); err != nil {
		return nil, fmt.Errorf("list request notes: %w", err)
	}
	return notes, nil
}

// History lists status transitions for a request, newest first.
func (r *RequestRepository) History(ctx context.Context, requestID int64) ([]models.RequestHistoryEntry, error) {
	const query = `SELECT id, old_status, new_status, changed_by, changed_at, note FROM request_history
        WHERE request_id = $1 ORDER BY changed_at DESC`
	var history []models.RequestHistoryEntry
	if err := r.db.SelectContext(ctx, &history, query, requestID); err != nil {
		return nil, fmt.Errorf("list request history: %w", err)
	}
	return history, nil
}

// AssignedEmployees lists employees linked through the assignment table.
func (r *RequestRepository) AssignedEmployees(ctx context.Context, requestID int64) ([]models.Employee, error) {
	const query = `SELECT e.id, e.first_name, e.last_name, e.role
        FROM employees e
        JOIN request_assignments ra ON ra.employee_id = e.id
        WHERE ra.request_id = $1
        ORDER BY e.id`
	var employees []models.Employee
	if err := r.db.SelectContext(ctx, &employees, query, requestID); err != nil {
		return nil, fmt.Errorf("list assigned employees: %w", err)
	}
	return employees, nil
}

// PartsUsed lists parts consumed by a request.
func (r *RequestRepository) PartsUsed(ctx context.Context, requestID int64) ([]models.RequestPart, error) {
	const query = `SELECT p.id AS part_id, p.name, pu.quantity, p.cost
        FROM parts_used pu
        JOIN parts p ON p.id = pu.part_id
        WHERE pu.request_id = $1
        ORDER BY p.id`
	var parts []models.RequestPart
	if err := r.db.SelectContext(ctx, &parts, query, requestID); err != nil {
		return nil, fmt.Errorf("list parts used: %w", err)
	}
	return parts, nil
}

// Update applies the present patch fields. It returns sql.ErrNoRows when the
// request does not exist.
func (r *RequestRepository) Update(ctx context.Context, id int64, patch models.RequestPatch) error {
	sets := []string{}
	args := []interface{}{}

	if patch.IssueType != nil {
		args = append(args, *patch.IssueType)
		sets = append(sets, fmt.Sprintf("issue_type = $%d", len(args)))
	}
	if patch.Description != nil {
		args = append(args, *patch.Description)
		sets = append(sets, fmt.Sprintf("issue_description = $%d", len(args)))
	}
	if patch.ActiveStatus != nil {
		args = append(args, *patch.ActiveStatus)
		sets = append(sets, fmt.Sprintf("active_status = $%d", len(args)))
	}
	if patch.Priority != nil {
		args = append(args, *patch.Priority)
		sets = append(sets, fmt.Sprintf("priority = $%d", len(args)))
	}
	if patch.BuildingID != nil {
		args = append(args, *patch.BuildingID)
		sets = append(sets, fmt.Sprintf("building_id = $%d", len(args)))
	}
	if patch.AptNumber != nil {
		args = append(args, *patch.AptNumber)
		sets = append(sets, fmt.Sprintf("apt_number = $%d", len(args)))
	}
	if patch.DateCompleted != nil {
		args = append(args, *patch.DateCompleted)
		sets = append(sets, fmt.Sprintf("date_completed = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE maintenance_requests SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ReplaceAssignment re-links an employee to a request. Delete-then-insert in
// one transaction keeps repeated assignment calls idempotent: exactly one
// row per (request, employee) pair afterwards.
func (r *RequestRepository) ReplaceAssignment(ctx context.Context, requestID, employeeID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin assignment tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM request_assignments WHERE request_id = $1 AND employee_id = $2",
		requestID, employeeID); err != nil {
		return fmt.Errorf("clear assignment: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO request_assignments (request_id, employee_id) VALUES ($1, $2)",
		requestID, employeeID); err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit assignment tx: %w", err)
	}
	return nil
}

// Exists reports whether a request row is present.
func (r *RequestRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM maintenance_requests WHERE id = $1 LIMIT 1", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check request: %w", err)
	}
	return true, nil
}

// Cancel soft-deletes a request by flipping its status. The row is never
// removed. It returns sql.ErrNoRows when the request does not exist.
func (r *RequestRepository) Cancel(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE maintenance_requests SET active_status = $1 WHERE id = $2",
		models.StatusCanceled, id)
	if err != nil {
		return fmt.Errorf("cancel request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancel request: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// InsertHistory appends a status-transition row. Callers treat failures as
// best-effort and must not roll back the primary write.
func (r *RequestRepository) InsertHistory(ctx context.Context, requestID int64, entry models.RequestHistoryEntry) error {
	const query = `INSERT INTO request_history (request_id, old_status, new_status, changed_by, changed_at, note)
        VALUES ($1, $2, $3, $4, NOW(), $5)`
	if _, err := r.db.ExecContext(ctx, query,
		requestID, entry.OldStatus, entry.NewStatus, entry.ChangedBy, entry.Note); err != nil {
		return fmt.Errorf("insert request history: %w", err)
	}
	return nil
}
