package dataset

import "github.com/ejm-support/registrations-dashboard-api/internal/models"

// Filter returns the subsequence of records satisfying every non-empty
// constraint in the selection. The year constraint is evaluated against the
// academic-year column selected by mode. Input order is preserved; an empty
// result is valid.
func Filter(records []models.Registration, sel models.Selection, mode models.ViewMode) []models.Registration {
	if sel.IsEmpty() {
		return records
	}

	yearSet := intSet(sel.Years)
	degreeSet := stringSet(sel.DegreeTypes)
	fieldSet := stringSet(sel.PrimaryFields)
	countrySet := stringSet(sel.Countries)
	tierSet := intSet(sel.Tiers)

	out := make([]models.Registration, 0, len(records))
	for _, rec := range records {
		if yearSet != nil {
			if _, ok := yearSet[rec.ActiveYear(mode)]; !ok {
				continue
			}
		}
		if degreeSet != nil {
			if _, ok := degreeSet[rec.DegreeType]; !ok {
				continue
			}
		}
		if fieldSet != nil {
			if _, ok := fieldSet[rec.PrimaryField]; !ok {
				continue
			}
		}
		if countrySet != nil {
			if _, ok := countrySet[rec.Country]; !ok {
				continue
			}
		}
		if tierSet != nil {
			if rec.Tier == nil {
				continue
			}
			if _, ok := tierSet[*rec.Tier]; !ok {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

func stringSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func intSet(values []int) map[int]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[int]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
