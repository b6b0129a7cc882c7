package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/oakline/propmaint-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestBuildingRepositoryListSummaries(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBuildingRepository(db)
	rows := sqlmock.NewRows([]string{"id", "address", "num_apartments", "vacancies", "total_requests"}).
		AddRow(1, "12 Oak St", 10, 3, 25).
		AddRow(2, "9 Elm Ave", 0, 0, 0)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT b.id, b.address")).WillReturnRows(rows)

	summaries, err := repo.ListSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, 3, summaries[0].Vacancies)
	// Buildings without apartments still appear.
	require.Equal(t, int64(2), summaries[1].ID)
	require.Zero(t, summaries[1].NumApartments)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildingRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBuildingRepository(db)
	managerID := int64(7)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO buildings (address, manager_id)")).
		WithArgs("12 Oak St", managerID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	building := &models.Building{Address: "12 Oak St", ManagerID: &managerID}
	require.NoError(t, repo.Create(context.Background(), building))
	require.Equal(t, int64(42), building.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildingRepositoryUpdatePartial(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBuildingRepository(db)
	address := "1 New Rd"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE buildings SET address = $1 WHERE id = $2")).
		WithArgs(address, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), 5, models.BuildingPatch{Address: &address}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildingRepositoryUpdateMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBuildingRepository(db)
	address := "1 New Rd"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE buildings SET")).
		WithArgs(address, int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), 999, models.BuildingPatch{Address: &address})
	require.ErrorIs(t, err, sql.ErrNoRows)
}
