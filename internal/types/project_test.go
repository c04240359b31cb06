package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsedResume_Validate(t *testing.T) {
	t.Run("valid with empty url and description", func(t *testing.T) {
		r := ParsedResume{
			FoundAllLinks: true,
			Projects: []Project{
				{Name: "todo-app"},
				{Name: "ray-tracer", Description: "A ray tracer in Rust", URL: "https://github.com/a/rt"},
			},
		}
		assert.NoError(t, r.Validate())
	})

	t.Run("missing project name", func(t *testing.T) {
		r := ParsedResume{Projects: []Project{{URL: "https://github.com/a/b"}}}
		err := r.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Name")
	})

	t.Run("too many projects", func(t *testing.T) {
		projects := make([]Project, 26)
		for i := range projects {
			projects[i] = Project{Name: "p"}
		}
		r := ParsedResume{Projects: projects}
		assert.Error(t, r.Validate())
	})

	t.Run("oversized url", func(t *testing.T) {
		p := Project{Name: "p", URL: "https://github.com/" + strings.Repeat("a", 2048)}
		assert.Error(t, p.Validate())
	})
}

func TestRepositoryRef_String(t *testing.T) {
	assert.Equal(t, "octocat/hello", RepositoryRef{Owner: "octocat", Name: "hello"}.String())
}
