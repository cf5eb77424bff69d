package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ejm-support/registrations-dashboard-api/internal/dto"
	"github.com/ejm-support/registrations-dashboard-api/internal/models"
	appErrors "github.com/ejm-support/registrations-dashboard-api/pkg/errors"
)

type fakeChartSrv struct {
	resp     *dto.ChartResponse
	hit      bool
	err      error
	lastSel  models.Selection
	lastMode models.ViewMode
}

func (f *fakeChartSrv) Chart(_ context.Context, sel models.Selection, mode models.ViewMode) (*dto.ChartResponse, bool, error) {
	f.lastSel = sel
	f.lastMode = mode
	return f.resp, f.hit, f.err
}

type fakeSummarySrv struct {
	resp     *dto.SummaryResponse
	hit      bool
	err      error
	lastMode models.ViewMode
}

func (f *fakeSummarySrv) Summarize(_ context.Context, _ models.Selection, mode models.ViewMode) (*dto.SummaryResponse, bool, error) {
	f.lastMode = mode
	return f.resp, f.hit, f.err
}

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Meta  map[string]interface{} `json:"meta"`
	Error map[string]interface{} `json:"error"`
}

func TestDashboardHandlerChartSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	charts := &fakeChartSrv{resp: &dto.ChartResponse{Title: "chart"}, hit: true}
	handler := NewDashboardHandler(charts, &fakeSummarySrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/chart?years=2022&years=2023&tiers=1", nil)

	handler.Chart(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{2022, 2023}, charts.lastSel.Years)
	assert.Equal(t, []int{1}, charts.lastSel.Tiers)
	assert.Equal(t, models.ModeEnrollment, charts.lastMode)

	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")
	assert.Equal(t, "chart", envelope.Data["title"])
}

func TestDashboardHandlerChartInvalidMode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeChartSrv{}, &fakeSummarySrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/chart?mode=bogus", nil)

	handler.Chart(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error["code"])
}

func TestDashboardHandlerChartInvalidYear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeChartSrv{}, &fakeSummarySrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/chart?years=12", nil)

	handler.Chart(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardHandlerChartServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeChartSrv{err: appErrors.ErrInternal}, &fakeSummarySrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/chart", nil)

	handler.Chart(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDashboardHandlerSummarySuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	summaries := &fakeSummarySrv{resp: &dto.SummaryResponse{Total: 10, Filtered: 4}}
	handler := NewDashboardHandler(&fakeChartSrv{}, summaries)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/summary?mode=date_last_login", nil)

	handler.Summary(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ModeLastLogin, summaries.lastMode)

	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, false, envelope.Meta["cache_hit"])
	assert.Equal(t, float64(10), envelope.Data["total"])
}
