package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oakline/propmaint-api/internal/models"
)

type mockPartRepo struct {
	part      *models.Part
	findErr   error
	createdID int64
	adjustErr error
	lastDelta int
}

func (m *mockPartRepo) List(ctx context.Context) ([]models.Part, error) {
	return nil, nil
}

func (m *mockPartRepo) Find(ctx context.Context, id int64) (*models.Part, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.part, nil
}

func (m *mockPartRepo) Create(ctx context.Context, part *models.Part) error {
	part.ID = m.createdID
	return nil
}

func (m *mockPartRepo) Update(ctx context.Context, id int64, patch models.PartPatch) error {
	return nil
}

func (m *mockPartRepo) Usage(ctx context.Context, id int64) ([]models.PartUsage, error) {
	return nil, nil
}

func (m *mockPartRepo) AdjustQuantity(ctx context.Context, id int64, delta int) error {
	m.lastDelta = delta
	return m.adjustErr
}

func TestPartServiceCreateDefaultsQuantityToZero(t *testing.T) {
	repo := &mockPartRepo{createdID: 9}
	svc := NewPartService(repo, nil)

	cost := 19.99
	part, err := svc.Create(context.Background(), CreatePartRequest{Name: "faucet", Cost: &cost})
	require.NoError(t, err)
	require.Equal(t, int64(9), part.ID)
	require.Zero(t, part.Quantity)
}

func TestPartServiceCreateRequiresNameAndCost(t *testing.T) {
	svc := NewPartService(&mockPartRepo{}, nil)

	_, err := svc.Create(context.Background(), CreatePartRequest{Name: "faucet"})
	requireStatus(t, err, 400)

	cost := 19.99
	_, err = svc.Create(context.Background(), CreatePartRequest{Cost: &cost})
	requireStatus(t, err, 400)
}

func TestPartServiceAdjustQuantityAllowsNegativeDelta(t *testing.T) {
	repo := &mockPartRepo{part: &models.Part{ID: 7, Name: "faucet", Quantity: 2}}
	svc := NewPartService(repo, nil)

	delta := -3
	part, err := svc.AdjustQuantity(context.Background(), 7, AdjustQuantityRequest{QuantityDelta: &delta})
	require.NoError(t, err)
	require.Equal(t, -3, repo.lastDelta)
	require.NotNil(t, part)
}

func TestPartServiceAdjustQuantityRequiresDelta(t *testing.T) {
	svc := NewPartService(&mockPartRepo{}, nil)

	_, err := svc.AdjustQuantity(context.Background(), 7, AdjustQuantityRequest{})
	requireStatus(t, err, 400)
}

func TestPartServiceAdjustQuantityMissingIs404(t *testing.T) {
	repo := &mockPartRepo{adjustErr: sql.ErrNoRows}
	svc := NewPartService(repo, nil)

	delta := 5
	_, err := svc.AdjustQuantity(context.Background(), 404, AdjustQuantityRequest{QuantityDelta: &delta})
	requireStatus(t, err, 404)
}

func TestPartServiceGetMissingIs404(t *testing.T) {
	repo := &mockPartRepo{findErr: sql.ErrNoRows}
	svc := NewPartService(repo, nil)

	_, err := svc.Get(context.Background(), 404)
	requireStatus(t, err, 404)
}

func TestPartServiceUpdateRejectsEmptyPatch(t *testing.T) {
	svc := NewPartService(&mockPartRepo{}, nil)

	err := svc.Update(context.Background(), 7, UpdatePartRequest{})
	requireStatus(t, err, 400)
}
