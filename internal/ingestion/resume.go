package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/harmya/grifter-or-pro/internal/llm"
	"github.com/harmya/grifter-or-pro/internal/prompts"
	"github.com/harmya/grifter-or-pro/internal/schemas"
	"github.com/harmya/grifter-or-pro/internal/types"
)

const (
	// MaxResumeChars bounds the resume text sent to the extractor.
	MaxResumeChars = 30000

	extractTemperature = 0.3
	extractMaxTokens   = 1024
)

// ErrEmptyResume is returned when a document holds no extractable text.
var ErrEmptyResume = errors.New("resume has no extractable text")

// ParseResume asks the LLM to extract the GitHub username and side projects from
// resume text. The reply must match the resume schema.
func ParseResume(ctx context.Context, client llm.Client, text string) (*types.ParsedResume, error) {
	text = CleanText(text)
	if text == "" {
		return nil, ErrEmptyResume
	}
	if r := []rune(text); len(r) > MaxResumeChars {
		text = string(r[:MaxResumeChars])
	}

	req := llm.ChatRequest{
		System: prompts.MustGet("resume.json", "extract-projects-system-v1"),
		User: prompts.Format(prompts.MustGet("resume.json", "extract-projects-user-v1"), map[string]string{
			"ResumeText": text,
		}),
		Tier:            llm.TierLite,
		Temperature:     extractTemperature,
		MaxOutputTokens: extractMaxTokens,
	}

	jsonResp, err := client.GenerateJSON(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume: %w", err)
	}

	if err := schemas.Validate(schemas.ResumeSchema, jsonResp); err != nil {
		return nil, fmt.Errorf("resume extraction returned invalid JSON: %w", err)
	}

	var parsed types.ParsedResume
	if err := json.Unmarshal([]byte(jsonResp), &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume JSON: %w", err)
	}

	normalize(&parsed)
	if err := parsed.Validate(); err != nil {
		return nil, fmt.Errorf("resume extraction failed validation: %w", err)
	}
	return &parsed, nil
}

func normalize(r *types.ParsedResume) {
	r.GitHubUsername = strings.TrimPrefix(strings.TrimSpace(r.GitHubUsername), "@")
	if r.Projects == nil {
		r.Projects = []types.Project{}
	}
	for i := range r.Projects {
		p := &r.Projects[i]
		p.Name = strings.TrimSpace(p.Name)
		p.Description = strings.TrimSpace(p.Description)
		p.URL = strings.TrimSpace(p.URL)
	}
}

// Parser extracts and parses uploaded resume files with an LLM client.
type Parser struct {
	client llm.Client
}

// NewParser creates a Parser.
func NewParser(client llm.Client) *Parser {
	return &Parser{client: client}
}

// Parse extracts the document text and parses it into projects.
func (p *Parser) Parse(ctx context.Context, filename string, data []byte) (*types.ParsedResume, error) {
	doc, err := ExtractDocument(filename, data)
	if err != nil {
		return nil, err
	}
	return ParseResume(ctx, p.client, doc.Text)
}
