package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/oakline/propmaint-api/internal/models"
)

var requestRows = []string{
	"id", "issue_type", "issue_description", "active_status", "priority",
	"date_requested", "date_completed", "building_id", "apt_number",
	"student_requesting_id", "photo_url", "notes",
}

func TestRequestRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	employeeID := int64(3)
	rows := sqlmock.NewRows(requestRows).
		AddRow(11, "plumbing", "leaking sink", "open", "high",
			time.Now(), nil, 1, 4, nil, nil, nil)
	// args follow condition build order: employeeID precedes status
	mock.ExpectQuery(`(?s)SELECT r\.id, .+EXISTS \(SELECT 1 FROM request_assignments`).
		WithArgs(employeeID, "open").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM maintenance_requests r")).
		WithArgs(employeeID, "open").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	filter := models.RequestFilter{EmployeeID: &employeeID, Status: "open", Limit: 100}
	requests, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	require.Equal(t, 1, total)
	require.Equal(t, "plumbing", requests[0].IssueType)
}

func TestRequestRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO maintenance_requests")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))

	req := &models.MaintenanceRequest{
		IssueType:     "electrical",
		Description:   "outlet sparking",
		ActiveStatus:  models.StatusOpen,
		Priority:      models.DefaultPriority,
		DateRequested: time.Now(),
		BuildingID:    2,
	}
	require.NoError(t, repo.Create(context.Background(), req))
	require.Equal(t, int64(101), req.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryFindJoinsAddress(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	cols := append(append([]string{}, requestRows...), "building_address")
	rows := sqlmock.NewRows(cols).
		AddRow(11, "plumbing", "leaking sink", "open", "normal",
			time.Now(), nil, 1, 4, nil, nil, nil, "12 Oak St")
	mock.ExpectQuery(`(?s)SELECT r\.id, .+b\.address AS building_address`).
		WithArgs(int64(11)).
		WillReturnRows(rows)

	detail, err := repo.Find(context.Background(), 11)
	require.NoError(t, err)
	require.NotNil(t, detail.BuildingAddress)
	require.Equal(t, "12 Oak St", *detail.BuildingAddress)
}

func TestRequestRepositoryFindMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	mock.ExpectQuery(`SELECT r\.id`).WithArgs(int64(404)).WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), 404)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRequestRepositoryUpdateMapsColumns(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	status := models.StatusCompleted
	completed := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE maintenance_requests SET active_status = $1, date_completed = $2 WHERE id = $3")).
		WithArgs(status, completed, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	patch := models.RequestPatch{ActiveStatus: &status, DateCompleted: &completed}
	require.NoError(t, repo.Update(context.Background(), 11, patch))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryReplaceAssignmentTx(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM request_assignments")).
		WithArgs(int64(11), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO request_assignments")).
		WithArgs(int64(11), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceAssignment(context.Background(), 11, 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryReplaceAssignmentRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM request_assignments")).
		WithArgs(int64(11), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO request_assignments")).
		WithArgs(int64(11), int64(3)).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	require.Error(t, repo.ReplaceAssignment(context.Background(), 11, 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryCancel(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRequestRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE maintenance_requests SET active_status = $1 WHERE id = $2")).
		WithArgs(models.StatusCanceled, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Cancel(context.Background(), 11))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE maintenance_requests SET active_status = $1 WHERE id = $2")).
		WithArgs(models.StatusCanceled, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.Cancel(context.Background(), 404), sql.ErrNoRows)
}
