package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestApartmentRepositoryFindComputesVacancy(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewApartmentRepository(db)
	rows := sqlmock.NewRows([]string{"building_id", "apt_number", "rental_cost", "renter_id", "date_rented", "is_vacant"}).
		AddRow(1, 4, 950.0, nil, nil, true)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT a.building_id, a.apt_number")).
		WithArgs(int64(1), 4).
		WillReturnRows(rows)

	apartment, err := repo.Find(context.Background(), 1, 4)
	require.NoError(t, err)
	require.True(t, apartment.IsVacant)
	require.Nil(t, apartment.RenterID)
	require.Nil(t, apartment.DateRented)
}

func TestApartmentRepositorySetOccupantStampsDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewApartmentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE apartments SET renter_id = $1, date_rented = CURRENT_DATE")).
		WithArgs(int64(55), int64(1), 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetOccupant(context.Background(), 1, 4, 55))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApartmentRepositoryClearOccupantClearsBoth(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewApartmentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE apartments SET renter_id = NULL, date_rented = NULL")).
		WithArgs(int64(1), 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ClearOccupant(context.Background(), 1, 4))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApartmentRepositorySetOccupantMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewApartmentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE apartments SET renter_id = $1")).
		WithArgs(int64(55), int64(1), 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.SetOccupant(context.Background(), 1, 99, 55), sql.ErrNoRows)
}
