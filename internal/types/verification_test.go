package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProjectAnalysis_Verified(t *testing.T) {
	result := VerificationResult{
		Status:   StatusVerified,
		Analysis: "Grift Rating: 3/10",
		Samples: []SampleLink{
			{FilePath: "main.go", FileURL: "https://github.com/a/b/blob/main/main.go"},
		},
	}

	entry := NewProjectAnalysis("b", result)
	assert.Equal(t, "b", entry.Name)
	assert.Equal(t, StatusVerified, entry.Status)
	assert.Equal(t, []string{"Grift Rating: 3/10"}, entry.Analysis)
	assert.Len(t, entry.CodeSamples, 1)
	assert.Empty(t, entry.Reason)
}

func TestNewProjectAnalysis_UnverifiableHasEmptySlices(t *testing.T) {
	entry := NewProjectAnalysis("x", VerificationResult{
		Status: StatusUnverifiable,
		Reason: "could not parse repository URL",
	})

	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"analysis":[]`)
	assert.Contains(t, string(data), `"code_samples":[]`)
	assert.Contains(t, string(data), `"reason":"could not parse repository URL"`)
}

func TestFailedProjectAnalysis(t *testing.T) {
	entry := FailedProjectAnalysis("x", errors.New("oracle unavailable"))
	assert.Equal(t, StatusFailed, entry.Status)
	assert.Equal(t, "oracle unavailable", entry.Error)
	assert.NotNil(t, entry.Analysis)
	assert.NotNil(t, entry.CodeSamples)
}

func TestReport_Counts(t *testing.T) {
	r := Report{Projects: []ProjectAnalysis{
		{Status: StatusVerified},
		{Status: StatusUnverifiable},
		{Status: StatusVerified},
		{Status: StatusFailed},
	}}
	counts := r.Counts()
	assert.Equal(t, 2, counts[StatusVerified])
	assert.Equal(t, 1, counts[StatusUnverifiable])
	assert.Equal(t, 1, counts[StatusFailed])
}

func TestCodeSample_Link(t *testing.T) {
	s := CodeSample{FilePath: "src/app.ts", Content: "x", SourceLink: "https://github.com/a/b/blob/dev/src/app.ts"}
	assert.Equal(t, SampleLink{FilePath: "src/app.ts", FileURL: "https://github.com/a/b/blob/dev/src/app.ts"}, s.Link())
}
