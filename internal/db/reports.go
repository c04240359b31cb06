package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/harmya/grifter-or-pro/internal/types"
)

// SaveReport archives a report and returns its generated ID.
func (db *DB) SaveReport(ctx context.Context, githubUsername string, report *types.Report) (uuid.UUID, error) {
	body, err := json.Marshal(report)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	summary := NewReportSummary(uuid.New(), time.Now().UTC(), githubUsername, report)
	_, err = db.pool.Exec(ctx,
		`INSERT INTO reports (id, created_at, github_username, project_count, verified_count, message, report)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		summary.ID, summary.CreatedAt, summary.GitHubUsername,
		summary.ProjectCount, summary.VerifiedCount, summary.Message, body,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save report: %w", err)
	}
	return summary.ID, nil
}

// GetReport loads an archived report. It returns nil, nil when the ID is unknown.
func (db *DB) GetReport(ctx context.Context, id uuid.UUID) (*ReportRecord, error) {
	var (
		record ReportRecord
		body   []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, created_at, github_username, report FROM reports WHERE id = $1`,
		id,
	).Scan(&record.ID, &record.CreatedAt, &record.GitHubUsername, &body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report %s: %w", id, err)
	}

	if err := json.Unmarshal(body, &record.Report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report %s: %w", id, err)
	}
	return &record, nil
}

// ListReports returns the most recent report summaries, newest first.
func (db *DB) ListReports(ctx context.Context, limit int) ([]ReportSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, created_at, github_username, project_count, verified_count, message
		 FROM reports ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	summaries := []ReportSummary{}
	for rows.Next() {
		var s ReportSummary
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.GitHubUsername, &s.ProjectCount, &s.VerifiedCount, &s.Message); err != nil {
			return nil, fmt.Errorf("failed to scan report summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return summaries, nil
}
