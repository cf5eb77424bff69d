package service

import (
	"github.com/ejm-support/registrations-dashboard-api/internal/dataset"
	"github.com/ejm-support/registrations-dashboard-api/internal/dto"
	"github.com/ejm-support/registrations-dashboard-api/internal/models"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// RegistrationService serves the paginated filtered registration listing.
type RegistrationService struct {
	data *dataset.Dataset
}

// NewRegistrationService constructs a registration listing service.
func NewRegistrationService(data *dataset.Dataset) *RegistrationService {
	return &RegistrationService{data: data}
}

// List returns one page of the filtered registrations in dataset order.
func (s *RegistrationService) List(sel models.Selection, mode models.ViewMode, page, pageSize int) ([]dto.RegistrationView, *models.Pagination) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filtered := dataset.Filter(s.data.Records(), sel, mode)
	pagination := &models.Pagination{Page: page, PageSize: pageSize, TotalCount: len(filtered)}

	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return []dto.RegistrationView{}, pagination
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	views := make([]dto.RegistrationView, 0, end-start)
	for _, rec := range filtered[start:end] {
		views = append(views, toView(rec))
	}
	return views, pagination
}

func toView(rec models.Registration) dto.RegistrationView {
	return dto.RegistrationView{
		EnrollDate:        rec.EnrollDate.Format("2006-01-02"),
		LastLoginDate:     rec.LastLoginDate.Format("2006-01-02"),
		DegreeType:        rec.DegreeType,
		PrimaryField:      rec.PrimaryField,
		Country:           rec.Country,
		Tier:              rec.Tier,
		AcademicYear:      rec.AcademicYear,
		LoginAcademicYear: rec.LoginAcademicYear,
	}
}
