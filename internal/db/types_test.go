package db

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmya/grifter-or-pro/internal/types"
)

func TestNewReportSummary(t *testing.T) {
	id := uuid.New()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	report := &types.Report{Projects: []types.ProjectAnalysis{
		{Name: "a", Status: types.StatusVerified},
		{Name: "b", Status: types.StatusUnverifiable},
		{Name: "c", Status: types.StatusVerified},
		{Name: "d", Status: types.StatusFailed},
	}}

	s := NewReportSummary(id, now, "octo", report)

	assert.Equal(t, id, s.ID)
	assert.Equal(t, now, s.CreatedAt)
	assert.Equal(t, "octo", s.GitHubUsername)
	assert.Equal(t, 4, s.ProjectCount)
	assert.Equal(t, 2, s.VerifiedCount)
	assert.Empty(t, s.Message)
}

func TestNewReportSummary_MessageOnly(t *testing.T) {
	report := &types.Report{Projects: []types.ProjectAnalysis{}, Message: "could not find all links"}

	s := NewReportSummary(uuid.New(), time.Now(), "", report)
	assert.Zero(t, s.ProjectCount)
	assert.Zero(t, s.VerifiedCount)
	assert.Equal(t, "could not find all links", s.Message)
}

func TestReportRecord_JSON(t *testing.T) {
	record := ReportRecord{
		ID:        uuid.MustParse("6f1c2a9e-5d0b-4c1e-9a57-3c2d1e0f4b8a"),
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Report:    types.Report{Projects: []types.ProjectAnalysis{}},
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":"6f1c2a9e-5d0b-4c1e-9a57-3c2d1e0f4b8a"`)
	assert.Contains(t, string(data), `"report":{"projects":[]}`)
}

func TestDefaultListLimit(t *testing.T) {
	assert.Positive(t, DefaultListLimit)
}
