package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/harmya/grifter-or-pro/internal/types"
)

// DefaultListLimit caps ListReports when no positive limit is given.
const DefaultListLimit = 20

// ReportRecord is an archived analysis report.
type ReportRecord struct {
	ID             uuid.UUID    `json:"id"`
	CreatedAt      time.Time    `json:"created_at"`
	GitHubUsername string       `json:"github_username"`
	Report         types.Report `json:"report"`
}

// ReportSummary is a report row without its body, for listings.
type ReportSummary struct {
	ID             uuid.UUID `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	GitHubUsername string    `json:"github_username"`
	ProjectCount   int       `json:"project_count"`
	VerifiedCount  int       `json:"verified_count"`
	Message        string    `json:"message,omitempty"`
}

// NewReportSummary derives the listing columns from a report.
func NewReportSummary(id uuid.UUID, createdAt time.Time, username string, report *types.Report) ReportSummary {
	return ReportSummary{
		ID:             id,
		CreatedAt:      createdAt,
		GitHubUsername: username,
		ProjectCount:   len(report.Projects),
		VerifiedCount:  report.Counts()[types.StatusVerified],
		Message:        report.Message,
	}
}
