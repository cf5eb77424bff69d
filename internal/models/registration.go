package models

import "time"

// ViewMode selects which date column drives year bucketing, filtering and the
// chart timeline.
type ViewMode string

const (
	// ModeEnrollment buckets records by enrollment date.
	ModeEnrollment ViewMode = "enrolldate"
	// ModeLastLogin buckets records by last login date.
	ModeLastLogin ViewMode = "date_last_login"
)

// Valid reports whether the mode is one of the two supported values.
func (m ViewMode) Valid() bool {
	return m == ModeEnrollment || m == ModeLastLogin
}

// Registration is one applicant registration, normalised at load time.
// Records are immutable once the dataset is built.
type Registration struct {
	EnrollDate    time.Time `json:"enrolldate"`
	LastLoginDate time.Time `json:"date_last_login"`
	DegreeType    string    `json:"degreetype,omitempty"`
	PrimaryField  string    `json:"primary_field,omitempty"`
	Country       string    `json:"country,omitempty"`
	Tier          *int      `json:"tier,omitempty"`

	// Derived once at load time.
	AcademicYear      int `json:"academic_year"`
	LoginAcademicYear int `json:"login_academic_year"`
}

// ActiveDate returns the date column selected by mode.
func (r Registration) ActiveDate(mode ViewMode) time.Time {
	if mode == ModeLastLogin {
		return r.LastLoginDate
	}
	return r.EnrollDate
}

// ActiveYear returns the derived academic year for the selected mode.
func (r Registration) ActiveYear(mode ViewMode) int {
	if mode == ModeLastLogin {
		return r.LoginAcademicYear
	}
	return r.AcademicYear
}
