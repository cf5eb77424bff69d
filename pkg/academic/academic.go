// Package academic maps calendar dates onto the June-May academic cycle used
// by the registration dashboard.
package academic

import (
	"fmt"
	"time"
)

// An academic year runs June 1 through May 31 and is identified by the
// calendar year it starts in.
const startMonth = time.June

// MonthLabels are the axis tick labels for one academic year.
var MonthLabels = []string{"Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec", "Jan", "Feb", "Mar", "Apr", "May"}

// MonthOffsets are the day offsets of each month start on the academic axis.
var MonthOffsets = []int{0, 30, 61, 92, 122, 153, 183, 214, 245, 273, 304, 334}

// AxisMax is the displayed upper bound of the academic-day axis.
const AxisMax = 365

// YearOf returns the academic year containing t. June 1 belongs to the new
// academic year.
func YearOf(t time.Time) int {
	if t.Month() >= startMonth {
		return t.Year()
	}
	return t.Year() - 1
}

// Start returns June 1 of the given academic year in UTC.
func Start(year int) time.Time {
	return time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
}

// DayOffset returns the whole-day distance from June 1 of the given academic
// year to t. Callers pass dates whose own academic year equals year, which
// keeps the result within [0, 365].
func DayOffset(t time.Time, year int) int {
	return int(t.Sub(Start(year)).Hours() / 24)
}

// Label renders an academic year as "2022-2023".
func Label(year int) string {
	return fmt.Sprintf("%d-%d", year, year+1)
}
