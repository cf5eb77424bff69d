package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ejm-support/registrations-dashboard-api/internal/dataset"
	"github.com/ejm-support/registrations-dashboard-api/internal/dto"
	"github.com/ejm-support/registrations-dashboard-api/internal/models"
	"github.com/ejm-support/registrations-dashboard-api/pkg/academic"
)

// ChartService builds per-academic-year cumulative registration series from
// the shared dataset.
type ChartService struct {
	data    *dataset.Dataset
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewChartService constructs a chart service.
func NewChartService(data *dataset.Dataset, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *ChartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChartService{data: data, cache: cache, metrics: metrics, logger: logger}
}

// Chart computes the cumulative chart payload for the given selection and
// view mode. The boolean indicates whether the payload came from cache.
func (s *ChartService) Chart(ctx context.Context, sel models.Selection, mode models.ViewMode) (*dto.ChartResponse, bool, error) {
	cacheKey := fmt.Sprintf("dash:chart:%s:%s", mode, sel.CacheKey())
	if s.cache != nil {
		// Cache failures are recoverable: the payload is cheap to recompute
		// from the in-memory dataset, so fall through on any lookup error.
		var cached dto.ChartResponse
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	start := time.Now()
	resp := s.compose(sel, mode)
	if s.metrics != nil {
		s.metrics.ObserveComputation("chart", time.Since(start))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, resp, 0); err != nil {
			s.logger.Warn("cache chart", zap.Error(err))
		}
	}
	return resp, false, nil
}

func (s *ChartService) compose(sel models.Selection, mode models.ViewMode) *dto.ChartResponse {
	filtered := dataset.Filter(s.data.Records(), sel, mode)
	eligible := dropMissingDate(filtered, mode)

	resp := &dto.ChartResponse{
		Mode:       string(mode),
		Subtitle:   subtitle(mode),
		YAxisTitle: "Cumulative Count",
		XAxis: dto.AxisSpec{
			Title:      "Timeline",
			TickValues: academic.MonthOffsets,
			TickLabels: academic.MonthLabels,
			Range:      [2]int{0, academic.AxisMax},
		},
	}

	if len(eligible) == 0 {
		// Explicit no-data state: axes stay populated so the client can
		// still render an empty, well-formed chart.
		resp.NoData = true
		resp.Title = "No data available for selected filters"
		resp.XAxis.Title = "Time"
		resp.Series = []dto.ChartSeries{}
		return resp
	}

	years := yearsToShow(sel.Years, eligible, mode)
	resp.Title = chartTitle(mode, sel.Years)
	resp.Series = buildSeries(eligible, mode, years)
	return resp
}

// buildSeries partitions eligible records by the active year column, sorts
// each partition chronologically and assigns cumulative counts 1..N projected
// onto the academic-day axis. Years with no eligible records yield no series.
func buildSeries(records []models.Registration, mode models.ViewMode, years []int) []dto.ChartSeries {
	byYear := make(map[int][]models.Registration, len(years))
	for _, rec := range records {
		year := rec.ActiveYear(mode)
		byYear[year] = append(byYear[year], rec)
	}

	series := make([]dto.ChartSeries, 0, len(years))
	for i, year := range years {
		yearRecords := byYear[year]
		if len(yearRecords) == 0 {
			continue
		}
		sort.SliceStable(yearRecords, func(a, b int) bool {
			return yearRecords[a].ActiveDate(mode).Before(yearRecords[b].ActiveDate(mode))
		})
		points := make([]dto.SeriesPoint, len(yearRecords))
		for j, rec := range yearRecords {
			points[j] = dto.SeriesPoint{
				Day:   academic.DayOffset(rec.ActiveDate(mode), year),
				Count: j + 1,
			}
		}
		series = append(series, dto.ChartSeries{
			Year:       year,
			Label:      academic.Label(year),
			ColorIndex: i,
			Points:     points,
		})
	}
	return series
}

func dropMissingDate(records []models.Registration, mode models.ViewMode) []models.Registration {
	out := make([]models.Registration, 0, len(records))
	for _, rec := range records {
		if rec.ActiveDate(mode).IsZero() {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// yearsToShow honours an explicit year selection (ascending); otherwise it
// derives the distinct years present on the active column.
func yearsToShow(selected []int, records []models.Registration, mode models.ViewMode) []int {
	if len(selected) > 0 {
		years := append([]int(nil), selected...)
		sort.Ints(years)
		return years
	}
	seen := map[int]struct{}{}
	var years []int
	for _, rec := range records {
		year := rec.ActiveYear(mode)
		if _, ok := seen[year]; ok {
			continue
		}
		seen[year] = struct{}{}
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

func subtitle(mode models.ViewMode) string {
	if mode == models.ModeLastLogin {
		return "Growth curve based on last login date"
	}
	return "Growth curve based on enrollment date"
}

func chartTitle(mode models.ViewMode, selectedYears []int) string {
	base := "Cumulative Count by Enrollment Date"
	multi := "Years"
	if mode == models.ModeLastLogin {
		base = "Cumulative Count by Last Login Date"
		multi = "Selected Years"
	}
	switch len(selectedYears) {
	case 0:
		return base + " - All Years"
	case 1:
		return base + " - " + academic.Label(selectedYears[0])
	default:
		return base + " - " + multi
	}
}
