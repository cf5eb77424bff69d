package dto

// ChartResponse is the full payload the front end needs to render the
// cumulative registrations chart.
type ChartResponse struct {
	Title      string        `json:"title"`
	Subtitle   string        `json:"subtitle"`
	Mode       string        `json:"mode"`
	XAxis      AxisSpec      `json:"xAxis"`
	YAxisTitle string        `json:"yAxisTitle"`
	Series     []ChartSeries `json:"series"`
	NoData     bool          `json:"noData"`
}

// AxisSpec positions the twelve academic-month ticks on the day axis.
type AxisSpec struct {
	Title      string   `json:"title"`
	TickValues []int    `json:"tickValues"`
	TickLabels []string `json:"tickLabels"`
	Range      [2]int   `json:"range"`
}

// ChartSeries is one line-plus-marker trace for a single academic year.
// ColorIndex is the series' position in display order so clients can map a
// cyclic palette stably.
type ChartSeries struct {
	Year       int           `json:"year"`
	Label      string        `json:"label"`
	ColorIndex int           `json:"colorIndex"`
	Points     []SeriesPoint `json:"points"`
}

// SeriesPoint pairs an academic-day offset with a running cumulative count.
type SeriesPoint struct {
	Day   int `json:"day"`
	Count int `json:"count"`
}
