package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oakline/propmaint-api/internal/models"
	"github.com/oakline/propmaint-api/pkg/config"
)

type mockRequestRepo struct {
	requests []models.MaintenanceRequest
	total    int

	detail  *models.RequestDetail
	findErr error

	photos     []models.RequestPhoto
	photosErr  error
	notes      []models.RequestNote
	history    []models.RequestHistoryEntry
	employees  []models.Employee
	partsErr   error
	exists     bool

	createdID int64

	patches     []models.RequestPatch
	updateErr   error
	assignments [][2]int64
	assignErr   error

	cancelErr    error
	historyRows  []models.RequestHistoryEntry
	insertHistErr error
}

func (m *mockRequestRepo) List(ctx context.Context, filter models.RequestFilter) ([]models.MaintenanceRequest, int, error) {
	return m.requests, m.total, nil
}

func (m *mockRequestRepo) Create(ctx context.Context, req *models.MaintenanceRequest) error {
	req.ID = m.createdID
	return nil
}

func (m *mockRequestRepo) Find(ctx context.Context, id int64) (*models.RequestDetail, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.detail, nil
}

func (m *mockRequestRepo) Photos(ctx context.Context, requestID int64) ([]models.RequestPhoto, error) {
	return m.photos, m.photosErr
}

func (m *mockRequestRepo) Notes(ctx context.Context, requestID int64) ([]models.RequestNote, error) {
	return m.notes, nil
}

func (m *mockRequestRepo) History(ctx context.Context, requestID int64) ([]models.RequestHistoryEntry, error) {
	return m.history, nil
}

func (m *mockRequestRepo) AssignedEmployees(ctx context.Context, requestID int64) ([]models.Employee, error) {
	return m.employees, nil
}

func (m *mockRequestRepo) PartsUsed(ctx context.Context, requestID int64) ([]models.RequestPart, error) {
	return nil, m.partsErr
}

func (m *mockRequestRepo) Update(ctx context.Context, id int64, patch models.RequestPatch) error {
	m.patches = append(m.patches, patch)
	return m.updateErr
}

func (m *mockRequestRepo) ReplaceAssignment(ctx context.Context, requestID, employeeID int64) error {
	m.assignments = append(m.assignments, [2]int64{requestID, employeeID})
	return m.assignErr
}

func (m *mockRequestRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return m.exists, nil
}

func (m *mockRequestRepo) Cancel(ctx context.Context, id int64) error {
	return m.cancelErr
}

func (m *mockRequestRepo) InsertHistory(ctx context.Context, requestID int64, entry models.RequestHistoryEntry) error {
	m.historyRows = append(m.historyRows, entry)
	return m.insertHistErr
}

func newRequestService(repo *mockRequestRepo, caps models.Capabilities) *RequestService {
	cfg := config.RequestsConfig{DefaultLimit: 100, MaxLimit: 1000}
	return NewRequestService(repo, caps, nil, cfg, nil, nil)
}

func baseDetail() *models.RequestDetail {
	return &models.RequestDetail{
		MaintenanceRequest: models.MaintenanceRequest{
			ID:            11,
			IssueType:     "plumbing",
			Description:   "leaking sink",
			ActiveStatus:  models.StatusOpen,
			Priority:      models.DefaultPriority,
			DateRequested: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
			BuildingID:    1,
		},
	}
}

func TestRequestServiceListAppliesPagingDefaults(t *testing.T) {
	repo := &mockRequestRepo{total: 5}
	svc := newRequestService(repo, models.Capabilities{})

	_, pagination, err := svc.List(context.Background(), models.RequestFilter{})
	require.NoError(t, err)
	require.Equal(t, 100, pagination.Limit)
	require.Zero(t, pagination.Offset)
	require.Equal(t, 5, pagination.TotalCount)

	_, pagination, err = svc.List(context.Background(), models.RequestFilter{Limit: 99999, Offset: -5})
	require.NoError(t, err)
	require.Equal(t, 1000, pagination.Limit)
	require.Zero(t, pagination.Offset)
}

func TestRequestServiceCreateDefaults(t *testing.T) {
	repo := &mockRequestRepo{createdID: 101}
	svc := newRequestService(repo, models.Capabilities{})

	buildingID := int64(2)
	request, err := svc.Create(context.Background(), CreateRequestRequest{
		IssueType:   "electrical",
		Description: "outlet sparking",
		BuildingID:  &buildingID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(101), request.ID)
	require.Equal(t, models.StatusOpen, request.ActiveStatus)
	require.Equal(t, models.DefaultPriority, request.Priority)
	require.WithinDuration(t, time.Now().UTC(), request.DateRequested, time.Minute)
}

func TestRequestServiceCreateRequiresFields(t *testing.T) {
	svc := newRequestService(&mockRequestRepo{}, models.Capabilities{})

	_, err := svc.Create(context.Background(), CreateRequestRequest{IssueType: "plumbing"})
	requireStatus(t, err, 400)
}

func TestRequestServiceCreateCoercesAptNumber(t *testing.T) {
	repo := &mockRequestRepo{createdID: 101}
	svc := newRequestService(repo, models.Capabilities{})

	var apt models.FlexInt
	require.NoError(t, json.Unmarshal([]byte(`"12"`), &apt))

	buildingID := int64(2)
	request, err := svc.Create(context.Background(), CreateRequestRequest{
		IssueType:   "plumbing",
		Description: "leaking sink",
		BuildingID:  &buildingID,
		AptNumber:   &apt,
	})
	require.NoError(t, err)
	require.NotNil(t, request.AptNumber)
	require.Equal(t, 12, *request.AptNumber)
}

func TestRequestServiceDetailMissingIs404(t *testing.T) {
	repo := &mockRequestRepo{findErr: sql.ErrNoRows}
	svc := newRequestService(repo, models.Capabilities{})

	_, err := svc.Detail(context.Background(), 404)
	requireStatus(t, err, 404)
}

func TestRequestServiceDetailFallsBackToInlineColumns(t *testing.T) {
	detail := baseDetail()
	photoURL := "/uploads/sink.jpg"
	inline := "tenant reports recurring leak"
	detail.PhotoURL = &photoURL
	detail.InlineNotes = &inline

	repo := &mockRequestRepo{detail: detail}
	svc := newRequestService(repo, models.Capabilities{})

	got, err := svc.Detail(context.Background(), 11)
	require.NoError(t, err)
	require.Len(t, got.Photos, 1)
	require.Equal(t, photoURL, got.Photos[0].FilePath)
	require.Len(t, got.Notes, 1)
	require.Equal(t, inline, got.Notes[0].Body)
	// No history table means an empty list, not nil.
	require.NotNil(t, got.History)
	require.Empty(t, got.History)
}

func TestRequestServiceDetailDegradesIndependently(t *testing.T) {
	repo := &mockRequestRepo{
		detail:    baseDetail(),
		photosErr: errors.New("photos table corrupt"),
		partsErr:  errors.New("parts join failed"),
		employees: []models.Employee{{ID: 3, FirstName: "Dana", LastName: "Reyes", Role: "maintenance"}},
	}
	svc := newRequestService(repo, models.Capabilities{Photos: true, Notes: true, History: true})

	got, err := svc.Detail(context.Background(), 11)
	require.NoError(t, err)
	require.Empty(t, got.Photos)
	require.Empty(t, got.Parts)
	require.Len(t, got.AssignedEmployees, 1)
}

func TestRequestServiceUpdateRejectsUnknownStatus(t *testing.T) {
	svc := newRequestService(&mockRequestRepo{}, models.Capabilities{})

	status := "exploded"
	err := svc.Update(context.Background(), 11, UpdateRequestRequest{Status: &status})
	requireStatus(t, err, 400)
}

func TestRequestServiceUpdateCompletionStampsDate(t *testing.T) {
	repo := &mockRequestRepo{}
	svc := newRequestService(repo, models.Capabilities{})

	status := "Completed"
	require.NoError(t, svc.Update(context.Background(), 11, UpdateRequestRequest{Status: &status}))
	require.Len(t, repo.patches, 1)
	require.Equal(t, models.StatusCompleted, *repo.patches[0].ActiveStatus)
	require.NotNil(t, repo.patches[0].DateCompleted)
}

func TestRequestServiceUpdateEmptyPayloadRejected(t *testing.T) {
	svc := newRequestService(&mockRequestRepo{}, models.Capabilities{})

	err := svc.Update(context.Background(), 11, UpdateRequestRequest{})
	requireStatus(t, err, 400)
}

func TestRequestServiceUpdateAssignmentOnly(t *testing.T) {
	repo := &mockRequestRepo{exists: true}
	svc := newRequestService(repo, models.Capabilities{})

	employeeID := int64(3)
	require.NoError(t, svc.Update(context.Background(), 11, UpdateRequestRequest{AssignedEmployeeID: &employeeID}))
	require.Empty(t, repo.patches)
	require.Equal(t, [][2]int64{{11, 3}}, repo.assignments)
}

func TestRequestServiceUpdateAssignmentMissingRequest(t *testing.T) {
	repo := &mockRequestRepo{exists: false}
	svc := newRequestService(repo, models.Capabilities{})

	employeeID := int64(3)
	err := svc.Update(context.Background(), 404, UpdateRequestRequest{AssignedEmployeeID: &employeeID})
	requireStatus(t, err, 404)
	require.Empty(t, repo.assignments)
}

func TestRequestServiceCancelWritesHistory(t *testing.T) {
	repo := &mockRequestRepo{detail: baseDetail()}
	svc := newRequestService(repo, models.Capabilities{History: true})

	userID := int64(9)
	require.NoError(t, svc.Cancel(context.Background(), 11, CancelRequestRequest{Reason: "duplicate", UserID: &userID}))
	require.Len(t, repo.historyRows, 1)
	require.Equal(t, models.StatusOpen, repo.historyRows[0].OldStatus)
	require.Equal(t, models.StatusCanceled, repo.historyRows[0].NewStatus)
	require.Equal(t, "duplicate", repo.historyRows[0].Note)
}

func TestRequestServiceCancelHistoryFailureIsBestEffort(t *testing.T) {
	repo := &mockRequestRepo{detail: baseDetail(), insertHistErr: errors.New("history table locked")}
	svc := newRequestService(repo, models.Capabilities{History: true})

	require.NoError(t, svc.Cancel(context.Background(), 11, CancelRequestRequest{}))
}

func TestRequestServiceCancelSkipsHistoryWithoutTable(t *testing.T) {
	repo := &mockRequestRepo{detail: baseDetail()}
	svc := newRequestService(repo, models.Capabilities{})

	require.NoError(t, svc.Cancel(context.Background(), 11, CancelRequestRequest{}))
	require.Empty(t, repo.historyRows)
}

func TestRequestServiceCancelMissingIs404(t *testing.T) {
	repo := &mockRequestRepo{findErr: sql.ErrNoRows}
	svc := newRequestService(repo, models.Capabilities{})

	err := svc.Cancel(context.Background(), 404, CancelRequestRequest{})
	requireStatus(t, err, 404)
}
