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

func TestPartRepositoryAdjustQuantityAdditive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPartRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE parts SET quantity = quantity + $1 WHERE id = $2")).
		WithArgs(-3, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AdjustQuantity(context.Background(), 7, -3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPartRepositoryAdjustQuantityMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPartRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE parts SET quantity = quantity + $1")).
		WithArgs(5, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.AdjustQuantity(context.Background(), 404, 5), sql.ErrNoRows)
}

func TestPartRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPartRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO parts (name, cost, quantity)")).
		WithArgs("faucet", 19.99, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	part := &models.Part{Name: "faucet", Cost: 19.99}
	require.NoError(t, repo.Create(context.Background(), part))
	require.Equal(t, int64(9), part.ID)
}

func TestPartRepositoryUsageJoins(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPartRepository(db)
	rows := sqlmock.NewRows([]string{"request_id", "issue_type", "date_requested", "date_completed", "building_address", "apt_number"}).
		AddRow(11, "plumbing", time.Now(), nil, "12 Oak St", 4)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT pu.request_id, m.issue_type")).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	usage, err := repo.Usage(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, usage, 1)
	require.Equal(t, "12 Oak St", usage[0].BuildingAddress)
}
