package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ejm-support/registrations-dashboard-api/internal/dataset"
	"github.com/ejm-support/registrations-dashboard-api/internal/models"
	"github.com/ejm-support/registrations-dashboard-api/internal/upstream"
	appErrors "github.com/ejm-support/registrations-dashboard-api/pkg/errors"
)

var testCutoff = time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC)

type stubCacheRepo struct {
	store map[string][]byte
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = map[string][]byte{}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = raw
	return nil
}

// failingCacheRepo simulates a cache backend that is down.
type failingCacheRepo struct{}

func (failingCacheRepo) Get(context.Context, string, interface{}) error {
	return errors.New("redis: connection refused")
}

func (failingCacheRepo) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("redis: connection refused")
}

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

func testData(t *testing.T) *dataset.Dataset {
	t.Helper()
	raw := []upstream.Record{
		{EnrollDate: "2022-07-01", LastLoginDate: "2022-08-01", DegreeType: strPtr("PhD"), PrimaryField: strPtr("Macro"), Country: strPtr("Canada"), Tier: f64Ptr(1)},
		{EnrollDate: "2022-07-15", LastLoginDate: "2023-01-10", DegreeType: strPtr("PhD"), PrimaryField: strPtr("Labor"), Country: strPtr("Germany"), Tier: f64Ptr(2)},
		{EnrollDate: "2023-01-05", LastLoginDate: "2023-02-01", DegreeType: strPtr("Masters"), PrimaryField: strPtr("Macro"), Country: strPtr("Canada"), Tier: f64Ptr(1)},
		{EnrollDate: "2023-07-01", LastLoginDate: "2023-08-01", DegreeType: strPtr("PhD"), PrimaryField: strPtr("Micro"), Country: strPtr("France")},
	}
	return dataset.Build(raw, testCutoff, zap.NewNop())
}

func TestChartCumulativeCountsPerYear(t *testing.T) {
	svc := NewChartService(testData(t), nil, nil, zap.NewNop())

	sel := models.Selection{Tiers: []int{1}}
	chart, cacheHit, err := svc.Chart(context.Background(), sel, models.ModeEnrollment)
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.False(t, chart.NoData)

	// Both tier-1 records map to academic year 2022; the January date
	// belongs to 2022's June-May cycle.
	require.Len(t, chart.Series, 1)
	series := chart.Series[0]
	assert.Equal(t, 2022, series.Year)
	assert.Equal(t, "2022-2023", series.Label)
	assert.Equal(t, 0, series.ColorIndex)

	require.Len(t, series.Points, 2)
	assert.Equal(t, 30, series.Points[0].Day) // 2022-07-01
	assert.Equal(t, 1, series.Points[0].Count)
	assert.Equal(t, 218, series.Points[1].Day) // 2023-01-05
	assert.Equal(t, 2, series.Points[1].Count)
}

func TestChartCumulativeSequenceIsOneToN(t *testing.T) {
	svc := NewChartService(testData(t), nil, nil, zap.NewNop())

	chart, _, err := svc.Chart(context.Background(), models.Selection{}, models.ModeEnrollment)
	require.NoError(t, err)
	for _, series := range chart.Series {
		for i, point := range series.Points {
			assert.Equal(t, i+1, point.Count)
		}
	}
}

func TestChartDerivedYearsAscendingWithOrdinalColors(t *testing.T) {
	svc := NewChartService(testData(t), nil, nil, zap.NewNop())

	chart, _, err := svc.Chart(context.Background(), models.Selection{}, models.ModeEnrollment)
	require.NoError(t, err)
	require.Len(t, chart.Series, 2)
	assert.Equal(t, 2022, chart.Series[0].Year)
	assert.Equal(t, 2023, chart.Series[1].Year)
	assert.Equal(t, 0, chart.Series[0].ColorIndex)
	assert.Equal(t, 1, chart.Series[1].ColorIndex)
	assert.Equal(t, "Cumulative Count by Enrollment Date - All Years", chart.Title)
}

func TestChartExplicitYearsSkipEmptyOnes(t *testing.T) {
	svc := NewChartService(testData(t), nil, nil, zap.NewNop())

	sel := models.Selection{Years: []int{2023, 2022, 2019}}
	chart, _, err := svc.Chart(context.Background(), sel, models.ModeEnrollment)
	require.NoError(t, err)

	// 2019 has no records and yields no series, not a placeholder.
	require.Len(t, chart.Series, 2)
	assert.Equal(t, 2022, chart.Series[0].Year)
	assert.Equal(t, 2023, chart.Series[1].Year)
	assert.Equal(t, "Cumulative Count by Enrollment Date - Years", chart.Title)
}

func TestChartSingleYearTitle(t *testing.T) {
	svc := NewChartService(testData(t), nil, nil, zap.NewNop())

	sel := models.Selection{Years: []int{2022}}
	chart, _, err := svc.Chart(context.Background(), sel, models.ModeEnrollment)
	require.NoError(t, err)
	assert.Equal(t, "Cumulative Count by Enrollment Date - 2022-2023", chart.Title)
}

func TestChartLastLoginMode(t *testing.T) {
	svc := NewChartService(testData(t), nil, nil, zap.NewNop())

	sel := models.Selection{Years: []int{2022, 2023}}
	chart, _, err := svc.Chart(context.Background(), sel, models.ModeLastLogin)
	require.NoError(t, err)
	assert.Equal(t, "Cumulative Count by Last Login Date - Selected Years", chart.Title)
	assert.Equal(t, "Growth curve based on last login date", chart.Subtitle)
	require.Len(t, chart.Series, 2)
	assert.Len(t, chart.Series[0].Points, 3)
	assert.Len(t, chart.Series[1].Points, 1)
}

func TestChartNoDataState(t *testing.T) {
	svc := NewChartService(testData(t), nil, nil, zap.NewNop())

	sel := models.Selection{Countries: []string{"Atlantis"}}
	chart, _, err := svc.Chart(context.Background(), sel, models.ModeEnrollment)
	require.NoError(t, err)

	assert.True(t, chart.NoData)
	assert.Equal(t, "No data available for selected filters", chart.Title)
	assert.Empty(t, chart.Series)
	// Axes stay populated so the client can render an empty chart.
	assert.Len(t, chart.XAxis.TickValues, 12)
	assert.Equal(t, [2]int{0, 365}, chart.XAxis.Range)
	assert.Equal(t, "Cumulative Count", chart.YAxisTitle)
}

func TestChartUsesCacheOnSecondCall(t *testing.T) {
	cacheSvc := NewCacheService(&stubCacheRepo{}, nil, time.Minute, zap.NewNop(), true)
	svc := NewChartService(testData(t), cacheSvc, nil, zap.NewNop())

	ctx := context.Background()
	sel := models.Selection{Tiers: []int{1}}

	first, hit1, err := svc.Chart(ctx, sel, models.ModeEnrollment)
	require.NoError(t, err)
	assert.False(t, hit1)

	second, hit2, err := svc.Chart(ctx, sel, models.ModeEnrollment)
	require.NoError(t, err)
	assert.True(t, hit2)
	assert.Equal(t, first.Series, second.Series)
}

func TestChartServesWhenCacheUnavailable(t *testing.T) {
	cacheSvc := NewCacheService(failingCacheRepo{}, nil, time.Minute, zap.NewNop(), true)
	svc := NewChartService(testData(t), cacheSvc, nil, zap.NewNop())

	chart, cacheHit, err := svc.Chart(context.Background(), models.Selection{}, models.ModeEnrollment)
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Len(t, chart.Series, 2)
}

func TestChartMonthTicks(t *testing.T) {
	svc := NewChartService(testData(t), nil, nil, zap.NewNop())

	chart, _, err := svc.Chart(context.Background(), models.Selection{}, models.ModeEnrollment)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 30, 61, 92, 122, 153, 183, 214, 245, 273, 304, 334}, chart.XAxis.TickValues)
	assert.Equal(t, []string{"Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec", "Jan", "Feb", "Mar", "Apr", "May"}, chart.XAxis.TickLabels)
}
