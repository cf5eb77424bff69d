package dto

// FilterOptionsResponse lists the selectable values for every filter control.
// Year options depend on the requested view mode; the other dimensions are
// fixed at load time.
type FilterOptionsResponse struct {
	Mode          string      `json:"mode"`
	Years         []IntOption `json:"years"`
	DegreeTypes   []string    `json:"degreeTypes"`
	PrimaryFields []string    `json:"primaryFields"`
	Countries     []string    `json:"countries"`
	Tiers         []IntOption `json:"tiers"`
}

// IntOption is a labelled integer option for dropdown population.
type IntOption struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}
