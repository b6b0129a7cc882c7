package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oakline/propmaint-api/internal/models"
	"github.com/oakline/propmaint-api/internal/service"
	appErrors "github.com/oakline/propmaint-api/pkg/errors"
	"github.com/oakline/propmaint-api/pkg/export"
	"github.com/oakline/propmaint-api/pkg/response"
)

// ReportHandler manages the aggregate report endpoints.
type ReportHandler struct {
	reports  *service.ReportService
	exporter *service.ExportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports *service.ReportService, exporter *service.ExportService) *ReportHandler {
	return &ReportHandler{reports: reports, exporter: exporter}
}

// Cost godoc
// @Summary Maintenance cost over a date range
// @Tags Reports
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param by_build query bool false "Group per building"
// @Param format query string false "json, csv or pdf"
// @Success 200 {object} response.Envelope
// @Router /reports/cost [get]
func (h *ReportHandler) Cost(c *gin.Context) {
	rng, ok := reportRange(c)
	if !ok {
		return
	}
	rows, err := h.reports.MaintenanceCost(c.Request.Context(), rng, boolQuery(c, "by_build"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, "Maintenance Cost", rows, func() export.Dataset { return h.exporter.CostDataset(rows) })
}

// Revenue godoc
// @Summary Rental revenue over a date range
// @Tags Reports
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param interval query string false "Month or Year"
// @Param include_empty query bool false "Include vacant apartments"
// @Param by_build query bool false "Group per building"
// @Param format query string false "json, csv or pdf"
// @Success 200 {object} response.Envelope
// @Router /reports/revenue [get]
func (h *ReportHandler) Revenue(c *gin.Context) {
	rng, ok := reportRange(c)
	if !ok {
		return
	}
	opts := service.RevenueOptions{
		Interval:     c.Query("interval"),
		IncludeEmpty: boolQuery(c, "include_empty"),
		ByBuilding:   boolQuery(c, "by_build"),
	}
	rows, err := h.reports.Revenue(c.Request.Context(), rng, opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, "Rental Revenue", rows, func() export.Dataset { return h.exporter.RevenueDataset(rows) })
}

// Vacancies godoc
// @Summary Current vacancy counts
// @Tags Reports
// @Produce json
// @Param by_build query bool false "Group per building"
// @Param format query string false "json, csv or pdf"
// @Success 200 {object} response.Envelope
// @Router /reports/vacancies [get]
func (h *ReportHandler) Vacancies(c *gin.Context) {
	rows, err := h.reports.Vacancies(c.Request.Context(), boolQuery(c, "by_build"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, "Vacancies", rows, func() export.Dataset { return h.exporter.VacancyDataset(rows) })
}

// AverageMonthlyRequests godoc
// @Summary Average requests per month by issue type
// @Tags Reports
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param type query string false "Filter by issue type"
// @Param desc query bool false "Order descending"
// @Param format query string false "json, csv or pdf"
// @Success 200 {object} response.Envelope
// @Router /reports/average-monthly-requests [get]
func (h *ReportHandler) AverageMonthlyRequests(c *gin.Context) {
	rng, ok := reportRange(c)
	if !ok {
		return
	}
	rows, err := h.reports.AverageMonthlyRequests(c.Request.Context(), rng, c.Query("type"), boolQuery(c, "desc"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, "Average Monthly Requests", rows, func() export.Dataset { return h.exporter.AverageDataset(rows) })
}

// BuildingActivity godoc
// @Summary Request workload per building
// @Tags Reports
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param building query string false "Filter by building address"
// @Param active query bool false "Exclude completed requests"
// @Param desc query bool false "Order descending"
// @Param format query string false "json, csv or pdf"
// @Success 200 {object} response.Envelope
// @Router /reports/building-activity [get]
func (h *ReportHandler) BuildingActivity(c *gin.Context) {
	rng, ok := reportRange(c)
	if !ok {
		return
	}
	opts := service.ActivityOptions{
		Building:   c.Query("building"),
		ActiveOnly: boolQuery(c, "active"),
		Desc:       boolQuery(c, "desc"),
	}
	rows, err := h.reports.BuildingActivity(c.Request.Context(), rng, opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, "Building Activity", rows, func() export.Dataset { return h.exporter.ActivityDataset(rows) })
}

// ActiveRequests godoc
// @Summary Requests that are neither completed nor canceled
// @Tags Reports
// @Produce json
// @Param format query string false "json, csv or pdf"
// @Success 200 {object} response.Envelope
// @Router /reports/active-requests [get]
func (h *ReportHandler) ActiveRequests(c *gin.Context) {
	rows, err := h.reports.ActiveRequests(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, "Active Requests", rows, func() export.Dataset { return h.exporter.ActiveRequestDataset(rows) })
}

// respond serves JSON by default and streams CSV/PDF when requested.
func (h *ReportHandler) respond(c *gin.Context, title string, rows interface{}, dataset func() export.Dataset) {
	format := c.DefaultQuery("format", service.FormatJSON)
	if format == service.FormatJSON {
		response.JSON(c, http.StatusOK, rows, nil)
		return
	}
	payload, contentType, err := h.exporter.Render(format, title, dataset())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, payload)
}

func reportRange(c *gin.Context) (models.ReportRange, bool) {
	from, errFrom := time.Parse("2006-01-02", c.Query("from"))
	to, errTo := time.Parse("2006-01-02", c.Query("to"))
	if errFrom != nil || errTo != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "from and to query parameters are required (YYYY-MM-DD)"))
		return models.ReportRange{}, false
	}
	return models.ReportRange{From: from, To: to}, true
}

func boolQuery(c *gin.Context, name string) bool {
	return c.Query(name) == "true"
}
