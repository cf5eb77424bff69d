package service

import (
	"fmt"

	"github.com/ejm-support/registrations-dashboard-api/internal/dataset"
	"github.com/ejm-support/registrations-dashboard-api/internal/dto"
	"github.com/ejm-support/registrations-dashboard-api/internal/models"
	"github.com/ejm-support/registrations-dashboard-api/pkg/academic"
)

// FilterOptionsService exposes the selectable values for the dashboard
// filter controls. Dimension options are fixed at load time; year options
// follow the requested view mode. Selections made under one mode are never
// cleared when the mode changes — year values are simply reinterpreted
// against the other mode's year column, matching the original dashboard.
type FilterOptionsService struct {
	data *dataset.Dataset
}

// NewFilterOptionsService constructs a filter options service.
func NewFilterOptionsService(data *dataset.Dataset) *FilterOptionsService {
	return &FilterOptionsService{data: data}
}

// Options returns the filter option lists for the given view mode.
func (s *FilterOptionsService) Options(mode models.ViewMode) *dto.FilterOptionsResponse {
	years := s.data.Years(mode)
	yearOptions := make([]dto.IntOption, len(years))
	for i, year := range years {
		yearOptions[i] = dto.IntOption{Label: academic.Label(year), Value: year}
	}

	tiers := s.data.Tiers()
	tierOptions := make([]dto.IntOption, len(tiers))
	for i, tier := range tiers {
		tierOptions[i] = dto.IntOption{Label: fmt.Sprintf("Tier %d", tier), Value: tier}
	}

	return &dto.FilterOptionsResponse{
		Mode:          string(mode),
		Years:         yearOptions,
		DegreeTypes:   s.data.DegreeTypes(),
		PrimaryFields: s.data.PrimaryFields(),
		Countries:     s.data.Countries(),
		Tiers:         tierOptions,
	}
}
