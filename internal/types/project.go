// Package types provides type definitions for structured data used throughout the grifter-or-pro system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Project is a side project as stated on a resume. URL may be empty or malformed and
// Description may be empty; both are handled downstream rather than rejected here.
type Project struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	URL         string `json:"url" validate:"max=2048"`
}

// ParsedResume is the structured output of resume extraction and the request body
// of the analyze endpoint.
type ParsedResume struct {
	FoundAllLinks  bool      `json:"found_all_links"`
	GitHubUsername string    `json:"github_username"`
	Projects       []Project `json:"projects" validate:"max=25,dive"`
}

// Validate validates the ParsedResume using the validator.
func (r *ParsedResume) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates a single Project using the validator.
func (p *Project) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
