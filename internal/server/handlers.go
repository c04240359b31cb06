package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harmya/grifter-or-pro/internal/db"
	"github.com/harmya/grifter-or-pro/internal/types"
)

// maxListLimit caps ?limit on the report listing.
const maxListLimit = 100

// Response envelope statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// AnalyzeResponse is the response body of /api/analyze-resume.
type AnalyzeResponse struct {
	Status   string       `json:"status"`
	Analysis types.Report `json:"analysis"`
	ReportID string       `json:"report_id,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// handleParseResume extracts projects from an uploaded resume file (multipart field "file").
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.maxUpload {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "file exceeds upload limit")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "file exceeds upload limit")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "a resume file is required in the 'file' field")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read upload: "+err.Error())
		return
	}

	parsed, err := s.parser.Parse(r.Context(), header.Filename, data)
	if err != nil {
		s.logger.Warn("resume parse failed", zap.String("filename", header.Filename), zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, parsed)
}

// handleAnalyzeResume verifies every project of a parsed resume and archives the report.
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	var req types.ParsedResume
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, (&ErrValidation{Field: "projects", Message: err.Error()}).Error())
		return
	}

	report := s.analyzer.AnalyzeResume(r.Context(), req)
	resp := AnalyzeResponse{Status: StatusSuccess, Analysis: report}

	if s.store != nil {
		id, err := s.store.SaveReport(r.Context(), req.GitHubUsername, &report)
		if err != nil {
			// The analysis is still returned when archiving fails.
			s.logger.Error("saving report", zap.Error(err))
		} else {
			resp.ReportID = id.String()
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGetReport returns an archived report
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.respondError(w, &ErrUnavailable{Feature: "report archive"})
		return
	}

	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	record, err := s.store.GetReport(r.Context(), id)
	if err != nil {
		s.logger.Error("loading report", zap.String("id", idStr), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to load report")
		return
	}
	if record == nil {
		s.respondError(w, &ErrNotFound{Resource: "report", ID: idStr})
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

// handleListReports returns the newest archived report summaries (?limit=N)
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.respondError(w, &ErrUnavailable{Feature: "report archive"})
		return
	}

	limit := db.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.respondError(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = min(n, maxListLimit)
	}

	summaries, err := s.store.ListReports(r.Context(), limit)
	if err != nil {
		s.logger.Error("listing reports", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list reports")
		return
	}
	if summaries == nil {
		summaries = []db.ReportSummary{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"reports": summaries})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}
