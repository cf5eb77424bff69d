package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ejm-support/registrations-dashboard-api/internal/models"
)

func TestRegistrationsCSV(t *testing.T) {
	svc := NewExportService(testData(t), nil, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 11, 10, 7, 0, 0, 0, time.UTC) }

	payload, filename, err := svc.RegistrationsCSV(models.Selection{Tiers: []int{1}}, models.ModeEnrollment)
	require.NoError(t, err)
	assert.Equal(t, "registrations-20241110-070000.csv", filename)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "enrolldate,date_last_login,degreetype,primary_field,country,tier,academic_year,login_academic_year", lines[0])
	assert.Contains(t, lines[1], "2022-07-01")
	assert.Contains(t, lines[1], "Canada")
}

func TestSummaryPDF(t *testing.T) {
	svc := NewExportService(testData(t), nil, nil, zap.NewNop())

	payload, filename, err := svc.SummaryPDF(models.Selection{}, models.ModeEnrollment)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
	require.NotEmpty(t, payload)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestRegistrationsCSVEmptyFilterResult(t *testing.T) {
	svc := NewExportService(testData(t), nil, nil, zap.NewNop())

	payload, _, err := svc.RegistrationsCSV(models.Selection{Countries: []string{"Atlantis"}}, models.ModeEnrollment)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	assert.Len(t, lines, 1) // header only
}
