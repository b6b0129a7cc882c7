package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	c.Request = req
	return c, w
}

func TestReportHandlerCostRequiresRange(t *testing.T) {
	handler := NewReportHandler(nil, nil)

	c, w := newTestContext(t, http.MethodGet, "/reports/cost")
	handler.Cost(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandlerCostRejectsMalformedDates(t *testing.T) {
	handler := NewReportHandler(nil, nil)

	c, w := newTestContext(t, http.MethodGet, "/reports/cost?from=January&to=2025-06-30")
	handler.Cost(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandlerRevenueRequiresRange(t *testing.T) {
	handler := NewReportHandler(nil, nil)

	c, w := newTestContext(t, http.MethodGet, "/reports/revenue?interval=Year")
	handler.Revenue(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandlerActivityRequiresRange(t *testing.T) {
	handler := NewReportHandler(nil, nil)

	c, w := newTestContext(t, http.MethodGet, "/reports/building-activity?building=12+Oak+St")
	handler.BuildingActivity(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
