package dto

// SummaryResponse is the sidebar stats block.
type SummaryResponse struct {
	Mode       string      `json:"mode"`
	Total      int         `json:"total"`
	Filtered   int         `json:"filtered"`
	Percentage float64     `json:"percentage"`
	Breakdown  []YearCount `json:"breakdown"`
}

// YearCount is one per-year breakdown line, labelled "2022-2023" style.
type YearCount struct {
	Year  int    `json:"year"`
	Label string `json:"label"`
	Count int    `json:"count"`
}
