package dto

// RegistrationView is one registration row in the paginated listing.
type RegistrationView struct {
	EnrollDate        string `json:"enrolldate"`
	LastLoginDate     string `json:"date_last_login"`
	DegreeType        string `json:"degreetype,omitempty"`
	PrimaryField      string `json:"primary_field,omitempty"`
	Country           string `json:"country,omitempty"`
	Tier              *int   `json:"tier,omitempty"`
	AcademicYear      int    `json:"academic_year"`
	LoginAcademicYear int    `json:"login_academic_year"`
}
