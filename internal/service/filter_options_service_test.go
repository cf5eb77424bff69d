package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ejm-support/registrations-dashboard-api/internal/dataset"
	"github.com/ejm-support/registrations-dashboard-api/internal/models"
	"github.com/ejm-support/registrations-dashboard-api/internal/upstream"
)

func TestOptionsStaticDimensions(t *testing.T) {
	svc := NewFilterOptionsService(testData(t))

	opts := svc.Options(models.ModeEnrollment)
	assert.Equal(t, []string{"Masters", "PhD"}, opts.DegreeTypes)
	assert.Equal(t, []string{"Labor", "Macro", "Micro"}, opts.PrimaryFields)
	assert.Equal(t, []string{"Canada", "France", "Germany"}, opts.Countries)

	require.Len(t, opts.Tiers, 2)
	assert.Equal(t, "Tier 1", opts.Tiers[0].Label)
	assert.Equal(t, 1, opts.Tiers[0].Value)
	assert.Equal(t, "Tier 2", opts.Tiers[1].Label)
}

func TestOptionsYearsFollowViewMode(t *testing.T) {
	raw := []upstream.Record{
		{EnrollDate: "2022-07-01", LastLoginDate: "2023-08-01"},
		{EnrollDate: "2023-07-01", LastLoginDate: "2024-08-01"},
	}
	svc := NewFilterOptionsService(dataset.Build(raw, testCutoff, zap.NewNop()))

	enroll := svc.Options(models.ModeEnrollment)
	require.Len(t, enroll.Years, 2)
	assert.Equal(t, "2022-2023", enroll.Years[0].Label)
	assert.Equal(t, 2022, enroll.Years[0].Value)

	login := svc.Options(models.ModeLastLogin)
	require.Len(t, login.Years, 2)
	assert.Equal(t, 2023, login.Years[0].Value)
	assert.Equal(t, 2024, login.Years[1].Value)
}
