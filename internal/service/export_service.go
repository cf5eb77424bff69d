package service

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ejm-support/registrations-dashboard-api/internal/dataset"
	"github.com/ejm-support/registrations-dashboard-api/internal/models"
	"github.com/ejm-support/registrations-dashboard-api/pkg/export"
)

type csvRenderer interface {
	Render(data export.Table) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Table, title string) ([]byte, error)
}

// ExportService renders the filtered registration set as CSV and the summary
// statistics block as PDF.
type ExportService struct {
	data   *dataset.Dataset
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(data *dataset.Dataset, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{data: data, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

var registrationHeaders = []string{
	"enrolldate", "date_last_login", "degreetype", "primary_field",
	"country", "tier", "academic_year", "login_academic_year",
}

// RegistrationsCSV renders the filtered registrations and returns the payload
// with a suggested filename.
func (s *ExportService) RegistrationsCSV(sel models.Selection, mode models.ViewMode) ([]byte, string, error) {
	filtered := dataset.Filter(s.data.Records(), sel, mode)

	table := export.Table{Headers: registrationHeaders, Rows: make([]map[string]string, 0, len(filtered))}
	for _, rec := range filtered {
		tier := ""
		if rec.Tier != nil {
			tier = strconv.Itoa(*rec.Tier)
		}
		table.Rows = append(table.Rows, map[string]string{
			"enrolldate":          rec.EnrollDate.Format("2006-01-02"),
			"date_last_login":     rec.LastLoginDate.Format("2006-01-02"),
			"degreetype":          rec.DegreeType,
			"primary_field":       rec.PrimaryField,
			"country":             rec.Country,
			"tier":                tier,
			"academic_year":       strconv.Itoa(rec.AcademicYear),
			"login_academic_year": strconv.Itoa(rec.LoginAcademicYear),
		})
	}

	payload, err := s.csv.Render(table)
	if err != nil {
		return nil, "", fmt.Errorf("render registrations csv: %w", err)
	}
	return payload, s.filename("registrations", "csv"), nil
}

// SummaryPDF renders the stats block for the current selection.
func (s *ExportService) SummaryPDF(sel models.Selection, mode models.ViewMode) ([]byte, string, error) {
	filtered := dataset.Filter(s.data.Records(), sel, mode)

	total := s.data.Total()
	var percentage float64
	if total > 0 {
		percentage = float64(len(filtered)) / float64(total) * 100
	}

	table := export.Table{
		Headers: []string{"metric", "value"},
		Rows: []map[string]string{
			{"metric": "Total", "value": strconv.Itoa(total)},
			{"metric": "Filtered", "value": strconv.Itoa(len(filtered))},
			{"metric": "% of Total", "value": fmt.Sprintf("%.1f%%", percentage)},
		},
	}
	for _, entry := range breakdown(filtered, sel.Years, mode) {
		table.Rows = append(table.Rows, map[string]string{
			"metric": entry.Label,
			"value":  strconv.Itoa(entry.Count),
		})
	}

	payload, err := s.pdf.Render(table, "Registration Summary")
	if err != nil {
		return nil, "", fmt.Errorf("render summary pdf: %w", err)
	}
	return payload, s.filename("registration-summary", "pdf"), nil
}

func (s *ExportService) filename(prefix, ext string) string {
	return fmt.Sprintf("%s-%s.%s", prefix, s.now().UTC().Format("20060102-150405"), ext)
}
