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

// SummaryService computes the sidebar statistics block.
type SummaryService struct {
	data    *dataset.Dataset
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewSummaryService constructs a summary service.
func NewSummaryService(data *dataset.Dataset, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *SummaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryService{data: data, cache: cache, metrics: metrics, logger: logger}
}

// Summarize returns total/filtered counts, the filtered percentage and a
// per-year breakdown. The boolean indicates cache utilisation.
func (s *SummaryService) Summarize(ctx context.Context, sel models.Selection, mode models.ViewMode) (*dto.SummaryResponse, bool, error) {
	cacheKey := fmt.Sprintf("dash:summary:%s:%s", mode, sel.CacheKey())
	if s.cache != nil {
		// Lookup failures degrade to a recompute; the dataset is in memory.
		var cached dto.SummaryResponse
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	start := time.Now()
	resp := s.compose(sel, mode)
	if s.metrics != nil {
		s.metrics.ObserveComputation("summary", time.Since(start))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, resp, 0); err != nil {
			s.logger.Warn("cache summary", zap.Error(err))
		}
	}
	return resp, false, nil
}

func (s *SummaryService) compose(sel models.Selection, mode models.ViewMode) *dto.SummaryResponse {
	filtered := dataset.Filter(s.data.Records(), sel, mode)

	total := s.data.Total()
	var percentage float64
	if total > 0 {
		percentage = float64(len(filtered)) / float64(total) * 100
	}

	return &dto.SummaryResponse{
		Mode:       string(mode),
		Total:      total,
		Filtered:   len(filtered),
		Percentage: percentage,
		Breakdown:  breakdown(filtered, sel.Years, mode),
	}
}

// breakdown counts filtered records per academic year, newest year first.
// Explicitly selected years are always listed, even at zero; otherwise only
// years present in the filtered set appear.
func breakdown(filtered []models.Registration, selectedYears []int, mode models.ViewMode) []dto.YearCount {
	counts := map[int]int{}
	for _, rec := range filtered {
		counts[rec.ActiveYear(mode)]++
	}

	var years []int
	if len(selectedYears) > 0 {
		years = append([]int(nil), selectedYears...)
	} else {
		for year := range counts {
			years = append(years, year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	out := make([]dto.YearCount, 0, len(years))
	for _, year := range years {
		out = append(out, dto.YearCount{
			Year:  year,
			Label: academic.Label(year),
			Count: counts[year],
		})
	}
	return out
}
