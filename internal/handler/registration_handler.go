package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ejm-support/registrations-dashboard-api/internal/dto"
	"github.com/ejm-support/registrations-dashboard-api/internal/models"
	appErrors "github.com/ejm-support/registrations-dashboard-api/pkg/errors"
	"github.com/ejm-support/registrations-dashboard-api/pkg/response"
)

type registrationLister interface {
	List(sel models.Selection, mode models.ViewMode, page, pageSize int) ([]dto.RegistrationView, *models.Pagination)
}

type exportService interface {
	RegistrationsCSV(sel models.Selection, mode models.ViewMode) ([]byte, string, error)
	SummaryPDF(sel models.Selection, mode models.ViewMode) ([]byte, string, error)
}

// RegistrationHandler serves the filtered registration listing and exports.
type RegistrationHandler struct {
	registrations registrationLister
	exports       exportService
}

// NewRegistrationHandler constructs the handler.
func NewRegistrationHandler(registrations registrationLister, exports exportService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations, exports: exports}
}

// List godoc
// @Summary Paginated filtered registrations
// @Tags Registrations
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /registrations [get]
func (h *RegistrationHandler) List(c *gin.Context) {
	if h.registrations == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	sel, mode, err := bindSelection(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := positiveIntQuery(c, "page", 1)
	if err != nil {
		response.Error(c, err)
		return
	}
	pageSize, err := positiveIntQuery(c, "pageSize", 0)
	if err != nil {
		response.Error(c, err)
		return
	}

	views, pagination := h.registrations.List(sel, mode, page, pageSize)
	response.JSON(c, http.StatusOK, views, pagination)
}

// Export godoc
// @Summary Export filtered registrations (CSV) or summary (PDF)
// @Tags Registrations
// @Produce octet-stream
// @Param format query string false "csv or pdf (default csv)"
// @Success 200 {file} binary
// @Router /registrations/export [get]
func (h *RegistrationHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	sel, mode, err := bindSelection(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "csv")))
	var (
		payload     []byte
		filename    string
		contentType string
	)
	switch format {
	case "csv":
		payload, filename, err = h.exports.RegistrationsCSV(sel, mode)
		contentType = "text/csv"
	case "pdf":
		payload, filename, err = h.exports.SummaryPDF(sel, mode)
		contentType = "application/pdf"
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}

func positiveIntQuery(c *gin.Context, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, appErrors.Clone(appErrors.ErrValidation, key+" must be a positive integer")
	}
	return value, nil
}
