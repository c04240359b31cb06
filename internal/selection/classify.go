package selection

import (
	"strings"

	"github.com/harmya/grifter-or-pro/internal/types"
)

// relevantExtensions are the source file suffixes worth sampling.
var relevantExtensions = []string{
	".py", ".js", ".java", ".cpp", ".go", ".rs", ".ts", ".jsx", ".tsx",
	".php", ".rb", ".swift", ".kt", ".cs", ".scala", ".clj",
}

// excludedSubstrings mark config, dependency, build, docs, test and editor files.
// Matching is a plain case-sensitive substring test anywhere in the path.
var excludedSubstrings = []string{
	"config", "package-lock.json", "yarn.lock", "package.json",
	"requirements.txt", "setup.py", "Dockerfile", ".gitignore",
	"__pycache__", ".github", "node_modules", "dist", "build",
	"LICENSE", "README", "CHANGELOG", ".env", ".DS_Store",
	"test_", "spec.", ".test.", ".spec.", "test/", "tests/",
	"venv/", "env/", ".vscode", ".idea", "coverage",
}

// IsRelevant reports whether path looks like hand-written source code.
func IsRelevant(path string) bool {
	hasExtension := false
	for _, ext := range relevantExtensions {
		if strings.HasSuffix(path, ext) {
			hasExtension = true
			break
		}
	}
	if !hasExtension {
		return false
	}

	for _, pattern := range excludedSubstrings {
		if strings.Contains(path, pattern) {
			return false
		}
	}
	return true
}

// RelevantPaths returns the distinct blob paths of tree that pass IsRelevant, in tree order.
func RelevantPaths(tree []types.TreeEntry) []string {
	seen := make(map[string]struct{}, len(tree))
	paths := make([]string, 0, len(tree))
	for _, entry := range tree {
		if entry.Type != types.EntryBlob || !IsRelevant(entry.Path) {
			continue
		}
		if _, dup := seen[entry.Path]; dup {
			continue
		}
		seen[entry.Path] = struct{}{}
		paths = append(paths, entry.Path)
	}
	return paths
}
