package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ejm-support/registrations-dashboard-api/internal/dto"
	"github.com/ejm-support/registrations-dashboard-api/internal/models"
	appErrors "github.com/ejm-support/registrations-dashboard-api/pkg/errors"
	"github.com/ejm-support/registrations-dashboard-api/pkg/response"
)

type filterOptionsService interface {
	Options(mode models.ViewMode) *dto.FilterOptionsResponse
}

// FiltersHandler serves the filter option lists. Year options are
// repopulated per view mode; the client keeps whatever year values were
// selected before a mode switch, as the original dashboard did.
type FiltersHandler struct {
	options filterOptionsService
}

// NewFiltersHandler constructs the handler.
func NewFiltersHandler(options filterOptionsService) *FiltersHandler {
	return &FiltersHandler{options: options}
}

// Options godoc
// @Summary Filter control options
// @Tags Dashboard
// @Produce json
// @Param mode query string false "View mode (enrolldate|date_last_login)"
// @Success 200 {object} response.Envelope
// @Router /dashboard/filters [get]
func (h *FiltersHandler) Options(c *gin.Context) {
	if h.options == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	_, mode, err := bindSelection(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.options.Options(mode), nil)
}
