package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ejm-support/registrations-dashboard-api/internal/dto"
	"github.com/ejm-support/registrations-dashboard-api/internal/middleware"
	"github.com/ejm-support/registrations-dashboard-api/internal/models"
	appErrors "github.com/ejm-support/registrations-dashboard-api/pkg/errors"
	"github.com/ejm-support/registrations-dashboard-api/pkg/response"
)

type chartService interface {
	Chart(ctx context.Context, sel models.Selection, mode models.ViewMode) (*dto.ChartResponse, bool, error)
}

type summaryService interface {
	Summarize(ctx context.Context, sel models.Selection, mode models.ViewMode) (*dto.SummaryResponse, bool, error)
}

// DashboardHandler wires the chart and summary services to HTTP endpoints.
type DashboardHandler struct {
	charts    chartService
	summaries summaryService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(charts chartService, summaries summaryService) *DashboardHandler {
	return &DashboardHandler{charts: charts, summaries: summaries}
}

// Chart godoc
// @Summary Cumulative registrations chart
// @Tags Dashboard
// @Produce json
// @Param mode query string false "View mode (enrolldate|date_last_login)"
// @Param years query []int false "Academic years" collectionFormat(multi)
// @Param degreeTypes query []string false "Degree types" collectionFormat(multi)
// @Param fields query []string false "Primary fields" collectionFormat(multi)
// @Param countries query []string false "Countries" collectionFormat(multi)
// @Param tiers query []int false "University tiers" collectionFormat(multi)
// @Success 200 {object} response.Envelope
// @Router /dashboard/chart [get]
func (h *DashboardHandler) Chart(c *gin.Context) {
	if h.charts == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	sel, mode, err := bindSelection(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	chart, cacheHit, err := h.charts.Chart(c.Request.Context(), sel, mode)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, chart, nil, meta)
}

// Summary godoc
// @Summary Registration summary statistics
// @Tags Dashboard
// @Produce json
// @Param mode query string false "View mode (enrolldate|date_last_login)"
// @Success 200 {object} response.Envelope
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	if h.summaries == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	sel, mode, err := bindSelection(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	summary, cacheHit, err := h.summaries.Summarize(c.Request.Context(), sel, mode)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, summary, nil, meta)
}
