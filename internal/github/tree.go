package github

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/harmya/grifter-or-pro/internal/types"
)

// FallbackBranch is used whenever the default branch cannot be resolved.
const FallbackBranch = "main"

type repoResponse struct {
	DefaultBranch string `json:"default_branch"`
}

type treeResponse struct {
	SHA       string          `json:"sha"`
	Tree      []treeEntryJSON `json:"tree"`
	Truncated bool            `json:"truncated"`
}

type treeEntryJSON struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// DefaultBranch resolves the repository's default branch. Resolution is best-effort:
// any failure is logged and FallbackBranch is returned.
func (c *Client) DefaultBranch(ctx context.Context, ref types.RepositoryRef) string {
	var repo repoResponse
	if err := c.getJSON(ctx, repoPath(ref.Owner, ref.Name), nil, &repo); err != nil {
		c.logger.Warn("default branch lookup failed, using fallback",
			zap.String("repo", ref.String()),
			zap.String("fallback", FallbackBranch),
			zap.Error(err))
		return FallbackBranch
	}
	if repo.DefaultBranch == "" {
		return FallbackBranch
	}
	return repo.DefaultBranch
}

// Tree lists every entry of the branch's tree recursively, in API order.
// Entries other than blobs and trees (e.g. submodule commits) are dropped.
func (c *Client) Tree(ctx context.Context, ref types.RepositoryRef, branch string) ([]types.TreeEntry, error) {
	var resp treeResponse
	path := repoPath(ref.Owner, ref.Name) + "/git/trees/" + url.PathEscape(branch)
	if err := c.getJSON(ctx, path, url.Values{"recursive": {"1"}}, &resp); err != nil {
		return nil, err
	}

	if resp.Truncated {
		c.logger.Warn("repository tree listing truncated by API",
			zap.String("repo", ref.String()),
			zap.Int("entries", len(resp.Tree)))
	}

	entries := make([]types.TreeEntry, 0, len(resp.Tree))
	for _, e := range resp.Tree {
		if e.Path == "" {
			continue
		}
		switch types.EntryType(e.Type) {
		case types.EntryBlob, types.EntryTree:
			entries = append(entries, types.TreeEntry{Path: e.Path, Type: types.EntryType(e.Type)})
		}
	}

	c.logger.Debug("fetched repository tree",
		zap.String("repo", ref.String()),
		zap.String("branch", branch),
		zap.Int("entries", len(entries)))
	return entries, nil
}
