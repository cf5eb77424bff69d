package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ejm-support/registrations-dashboard-api/internal/models"
	appErrors "github.com/ejm-support/registrations-dashboard-api/pkg/errors"
)

// dashboardQuery captures the filter controls as request parameters. Multi
// value filters repeat the key (years=2022&years=2023). Omitting every filter
// parameter is the clear-all state; omitting mode keeps the enrollment view.
type dashboardQuery struct {
	Mode        string   `form:"mode" binding:"omitempty,oneof=enrolldate date_last_login"`
	Years       []int    `form:"years" binding:"omitempty,dive,gte=1900,lte=2200"`
	DegreeTypes []string `form:"degreeTypes"`
	Fields      []string `form:"fields"`
	Countries   []string `form:"countries"`
	Tiers       []int    `form:"tiers" binding:"omitempty,dive,gte=0"`
}

// bindSelection parses and validates the shared filter parameters.
func bindSelection(c *gin.Context) (models.Selection, models.ViewMode, error) {
	var q dashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return models.Selection{}, "", appErrors.Clone(appErrors.ErrValidation, validationMessage(err))
	}

	mode := models.ModeEnrollment
	if q.Mode != "" {
		mode = models.ViewMode(q.Mode)
	}

	sel := models.Selection{
		Years:         q.Years,
		DegreeTypes:   q.DegreeTypes,
		PrimaryFields: q.Fields,
		Countries:     q.Countries,
		Tiers:         q.Tiers,
	}
	return sel, mode, nil
}

func validationMessage(err error) string {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) && len(verr) > 0 {
		field := verr[0]
		return fmt.Sprintf("invalid value for %s (%s)", field.Field(), field.Tag())
	}
	return "invalid query parameters"
}
