package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantOK    bool
		wantOwner string
		wantName  string
	}{
		{"plain repo", "https://github.com/harmya/grifter", true, "harmya", "grifter"},
		{"trailing slash", "https://github.com/harmya/grifter/", true, "harmya", "grifter"},
		{"deep link keeps first two segments", "https://github.com/a/b/tree/main/src", true, "a", "b"},
		{"surrounding whitespace", "  https://github.com/a/b  ", true, "a", "b"},
		{"query string ignored", "https://github.com/a/b?tab=readme", true, "a", "b"},
		{"owner only", "https://github.com/harmya", false, "", ""},
		{"host only", "https://github.com", false, "", ""},
		{"empty", "", false, "", ""},
		{"empty middle segment", "https://github.com//grifter", false, "", ""},
		{"unparseable", "http://[::1", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := ParseRepoURL(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantOwner, ref.Owner)
			assert.Equal(t, tt.wantName, ref.Name)
		})
	}
}

func TestParseRepoURL_DoesNotValidateHost(t *testing.T) {
	ref, ok := ParseRepoURL("https://gitlab.com/owner/project")
	assert.True(t, ok)
	assert.Equal(t, "owner/project", ref.String())
}
