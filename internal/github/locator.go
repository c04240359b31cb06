package github

import (
	"net/url"
	"strings"

	"github.com/harmya/grifter-or-pro/internal/types"
)

// ParseRepoURL extracts the owner and repository name from a repository URL.
// It returns false for anything without two leading non-empty path segments;
// malformed input is never an error.
func ParseRepoURL(raw string) (types.RepositoryRef, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return types.RepositoryRef{}, false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return types.RepositoryRef{}, false
	}
	return types.RepositoryRef{Owner: segments[0], Name: segments[1]}, true
}
