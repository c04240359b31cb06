package types

// Status labels the outcome of verifying one project.
type Status string

// Verification outcomes
const (
	// StatusVerified means the oracle produced an analysis of sampled code
	StatusVerified Status = "verified"
	// StatusUnverifiable means no judgment could be produced (bad URL, fetch failure, nothing to sample)
	StatusUnverifiable Status = "unverifiable"
	// StatusFailed means the oracle call itself failed
	StatusFailed Status = "failed"
)

// VerificationResult is the terminal output of one project's verification.
// Analysis is the oracle's raw text and is never parsed or validated.
type VerificationResult struct {
	Status   Status       `json:"status"`
	Analysis string       `json:"analysis,omitempty"`
	Reason   string       `json:"reason,omitempty"`
	Samples  []SampleLink `json:"samples"`
}

// ProjectAnalysis is one entry of a Report, in the shape the frontend consumes.
type ProjectAnalysis struct {
	Name        string       `json:"name"`
	Status      Status       `json:"status"`
	Analysis    []string     `json:"analysis"`
	CodeSamples []SampleLink `json:"code_samples"`
	Reason      string       `json:"reason,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// Report collects one ProjectAnalysis per requested project, in request order.
type Report struct {
	Projects []ProjectAnalysis `json:"projects"`
	Message  string            `json:"message,omitempty"`
}

// NewProjectAnalysis converts a verification result into a report entry.
func NewProjectAnalysis(name string, result VerificationResult) ProjectAnalysis {
	entry := ProjectAnalysis{
		Name:        name,
		Status:      result.Status,
		Analysis:    []string{},
		CodeSamples: result.Samples,
		Reason:      result.Reason,
	}
	if entry.CodeSamples == nil {
		entry.CodeSamples = []SampleLink{}
	}
	if result.Analysis != "" {
		entry.Analysis = append(entry.Analysis, result.Analysis)
	}
	return entry
}

// FailedProjectAnalysis builds the report entry for a project whose verification errored.
func FailedProjectAnalysis(name string, err error) ProjectAnalysis {
	return ProjectAnalysis{
		Name:        name,
		Status:      StatusFailed,
		Analysis:    []string{},
		CodeSamples: []SampleLink{},
		Reason:      "analysis failed",
		Error:       err.Error(),
	}
}

// Counts returns how many entries carry each status.
func (r *Report) Counts() map[Status]int {
	counts := make(map[Status]int)
	for _, p := range r.Projects {
		counts[p.Status]++
	}
	return counts
}
