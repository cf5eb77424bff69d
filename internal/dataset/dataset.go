// Package dataset builds and queries the immutable in-memory registration
// collection. The dataset is constructed once at startup and is safe for
// concurrent reads without synchronisation; nothing mutates it afterwards.
package dataset

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ejm-support/registrations-dashboard-api/internal/models"
	"github.com/ejm-support/registrations-dashboard-api/internal/upstream"
	"github.com/ejm-support/registrations-dashboard-api/pkg/academic"
)

// Accepted layouts for upstream date fields.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Dataset holds the retained registrations plus the distinct-value indexes
// that back the filter option lists.
type Dataset struct {
	records []models.Registration

	degreeTypes   []string
	primaryFields []string
	countries     []string
	tiers         []int
	enrollYears   []int
	loginYears    []int
}

// Build normalises raw upstream records into a Dataset. Records whose dates
// fail to parse, or fall before the retention cutoff on either column, are
// dropped permanently here rather than filtered later.
func Build(raw []upstream.Record, cutoff time.Time, logger *zap.Logger) *Dataset {
	if logger == nil {
		logger = zap.NewNop()
	}

	records := make([]models.Registration, 0, len(raw))
	dropped := 0
	for _, r := range raw {
		enroll, ok := parseDate(r.EnrollDate)
		if !ok {
			dropped++
			continue
		}
		login, ok := parseDate(r.LastLoginDate)
		if !ok {
			dropped++
			continue
		}
		if enroll.Before(cutoff) || login.Before(cutoff) {
			dropped++
			continue
		}

		rec := models.Registration{
			EnrollDate:        enroll,
			LastLoginDate:     login,
			DegreeType:        deref(r.DegreeType),
			PrimaryField:      deref(r.PrimaryField),
			Country:           deref(r.Country),
			AcademicYear:      academic.YearOf(enroll),
			LoginAcademicYear: academic.YearOf(login),
		}
		if r.Tier != nil {
			// Upstream occasionally delivers fractional tiers; the
			// dashboard has always labelled them as integers, so
			// truncate at the door.
			tier := int(*r.Tier)
			rec.Tier = &tier
		}
		records = append(records, rec)
	}

	d := &Dataset{records: records}
	d.index()

	logger.Info("dataset loaded",
		zap.Int("received", len(raw)),
		zap.Int("retained", len(records)),
		zap.Int("dropped", dropped),
		zap.String("cutoff", cutoff.Format("2006-01-02")),
	)
	return d
}

// Records returns the retained registrations. Callers must not mutate the
// returned slice.
func (d *Dataset) Records() []models.Registration {
	return d.records
}

// Total is the retained record count.
func (d *Dataset) Total() int {
	return len(d.records)
}

// DegreeTypes returns distinct degree types, lexicographically sorted.
func (d *Dataset) DegreeTypes() []string { return d.degreeTypes }

// PrimaryFields returns distinct primary fields, lexicographically sorted.
func (d *Dataset) PrimaryFields() []string { return d.primaryFields }

// Countries returns distinct countries, lexicographically sorted.
func (d *Dataset) Countries() []string { return d.countries }

// Tiers returns distinct tiers, ascending.
func (d *Dataset) Tiers() []int { return d.tiers }

// Years returns the distinct academic years present for the given view mode,
// ascending.
func (d *Dataset) Years(mode models.ViewMode) []int {
	if mode == models.ModeLastLogin {
		return d.loginYears
	}
	return d.enrollYears
}

func (d *Dataset) index() {
	degreeSet := map[string]struct{}{}
	fieldSet := map[string]struct{}{}
	countrySet := map[string]struct{}{}
	tierSet := map[int]struct{}{}
	enrollYearSet := map[int]struct{}{}
	loginYearSet := map[int]struct{}{}

	for _, rec := range d.records {
		if rec.DegreeType != "" {
			degreeSet[rec.DegreeType] = struct{}{}
		}
		if rec.PrimaryField != "" {
			fieldSet[rec.PrimaryField] = struct{}{}
		}
		if rec.Country != "" {
			countrySet[rec.Country] = struct{}{}
		}
		if rec.Tier != nil {
			tierSet[*rec.Tier] = struct{}{}
		}
		enrollYearSet[rec.AcademicYear] = struct{}{}
		loginYearSet[rec.LoginAcademicYear] = struct{}{}
	}

	d.degreeTypes = sortedStrings(degreeSet)
	d.primaryFields = sortedStrings(fieldSet)
	d.countries = sortedStrings(countrySet)
	d.tiers = sortedInts(tierSet)
	d.enrollYears = sortedInts(enrollYearSet)
	d.loginYears = sortedInts(loginYearSet)
}

func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func sortedStrings(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func sortedInts(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
