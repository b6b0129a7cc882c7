package service

import (
	"fmt"
	"strconv"

	"github.com/oakline/propmaint-api/internal/models"
	appErrors "github.com/oakline/propmaint-api/pkg/errors"
	"github.com/oakline/propmaint-api/pkg/export"
)

// Supported export formats for report endpoints.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// ExportService turns report rows into downloadable CSV or PDF documents.
type ExportService struct {
	csv *export.CSVExporter
	pdf *export.PDFExporter
}

// NewExportService constructs the export service.
func NewExportService() *ExportService {
	return &ExportService{csv: export.NewCSVExporter(), pdf: export.NewPDFExporter()}
}

// Render serialises a dataset into the requested format. JSON is handled by
// the caller; this only covers csv and pdf.
func (s *ExportService) Render(format, title string, data export.Dataset) ([]byte, string, error) {
	switch format {
	case FormatCSV:
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	case FormatPDF:
		payload, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be json, csv or pdf")
	}
}

// CostDataset flattens cost report rows for export.
func (s *ExportService) CostDataset(rows []models.CostRow) export.Dataset {
	ds := export.Dataset{Headers: []string{"Building ID", "Address", "Total Cost"}}
	for _, row := range rows {
		ds.Rows = append(ds.Rows, map[string]string{
			"Building ID": formatNullableID(row.BuildingID),
			"Address":     formatNullableString(row.Address),
			"Total Cost":  fmt.Sprintf("%.2f", row.TotalCost),
		})
	}
	return ds
}

// RevenueDataset flattens revenue report rows for export.
func (s *ExportService) RevenueDataset(rows []models.RevenueRow) export.Dataset {
	ds := export.Dataset{Headers: []string{"Building ID", "Address", "Total Revenue"}}
	for _, row := range rows {
		ds.Rows = append(ds.Rows, map[string]string{
			"Building ID":   formatNullableID(row.BuildingID),
			"Address":       formatNullableString(row.Address),
			"Total Revenue": fmt.Sprintf("%.2f", row.TotalRevenue),
		})
	}
	return ds
}

// VacancyDataset flattens vacancy report rows for export.
func (s *ExportService) VacancyDataset(rows []models.VacancyRow) export.Dataset {
	ds := export.Dataset{Headers: []string{"Building ID", "Address", "Vacancies"}}
	for _, row := range rows {
		ds.Rows = append(ds.Rows, map[string]string{
			"Building ID": formatNullableID(row.BuildingID),
			"Address":     formatNullableString(row.Address),
			"Vacancies":   strconv.Itoa(row.Vacancies),
		})
	}
	return ds
}

// AverageDataset flattens average-monthly-request rows for export.
func (s *ExportService) AverageDataset(rows []models.IssueTypeAverageRow) export.Dataset {
	ds := export.Dataset{Headers: []string{"Issue Type", "Total Requests", "Avg Requests / Month"}}
	for _, row := range rows {
		ds.Rows = append(ds.Rows, map[string]string{
			"Issue Type":           row.IssueType,
			"Total Requests":       strconv.Itoa(row.TotalRequests),
			"Avg Requests / Month": fmt.Sprintf("%.2f", row.AvgRequestsPerMonth),
		})
	}
	return ds
}

// ActivityDataset flattens building-activity rows for export.
func (s *ExportService) ActivityDataset(rows []models.BuildingActivityRow) export.Dataset {
	ds := export.Dataset{Headers: []string{"Building ID", "Address", "Total Requests", "Completed", "Avg Days To Complete"}}
	for _, row := range rows {
		avg := ""
		if row.AvgDaysToComplete != nil {
			avg = fmt.Sprintf("%.1f", *row.AvgDaysToComplete)
		}
		ds.Rows = append(ds.Rows, map[string]string{
			"Building ID":          strconv.FormatInt(row.BuildingID, 10),
			"Address":              row.Address,
			"Total Requests":       strconv.Itoa(row.TotalRequests),
			"Completed":            strconv.Itoa(row.CompletedRequests),
			"Avg Days To Complete": avg,
		})
	}
	return ds
}

// ActiveRequestDataset flattens active maintenance requests for export.
func (s *ExportService) ActiveRequestDataset(rows []models.MaintenanceRequest) export.Dataset {
	ds := export.Dataset{Headers: []string{"Request ID", "Issue Type", "Status", "Priority", "Building ID", "Date Requested"}}
	for _, row := range rows {
		ds.Rows = append(ds.Rows, map[string]string{
			"Request ID":     strconv.FormatInt(row.ID, 10),
			"Issue Type":     row.IssueType,
			"Status":         row.ActiveStatus,
			"Priority":       row.Priority,
			"Building ID":    strconv.FormatInt(row.BuildingID, 10),
			"Date Requested": row.DateRequested.Format("2006-01-02"),
		})
	}
	return ds
}

func formatNullableID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func formatNullableString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
