package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/harmya/grifter-or-pro/internal/types"
)

const (
	// DefaultMaxLines is the number of lines kept from each sampled file.
	DefaultMaxLines = 100
	// TruncationMarker is appended as an extra line once the line cap is reached.
	TruncationMarker = "... (truncated)"
	// maxRawBytes caps downloads of files too large for the contents API.
	maxRawBytes = 1 << 20
)

type contentResponse struct {
	Type     string `json:"type"`
	Encoding string `json:"encoding"`
	Content     string `json:"content"`
	DownloadURL string `json:"download_url"`
}

// FileContent fetches and decodes a file at the given branch.
func (c *Client) FileContent(ctx context.Context, ref types.RepositoryRef, branch, path string) (string, error) {
	var resp contentResponse
	apiPath := repoPath(ref.Owner, ref.Name) + "/contents/" + escapePath(path)

	var query url.Values
	if branch != "" {
		query = url.Values{"ref": {branch}}
	}
	if err := c.getJSON(ctx, apiPath, query, &resp); err != nil {
		return "", err
	}

	if resp.Type != "" && resp.Type != "file" {
		return "", fmt.Errorf("%s is a %s, not a file", path, resp.Type)
	}

	var raw []byte
	switch resp.Encoding {
	case "base64":
		// The API wraps base64 at 60 columns; the decoder skips the newlines.
		decoded, err := base64.StdEncoding.DecodeString(resp.Content)
		if err != nil {
			return "", fmt.Errorf("decoding %s: %w", path, err)
		}
		raw = decoded
	case "none":
		// Files over 1 MB come without inline content.
		if resp.DownloadURL == "" {
			c.logger.Debug("large file has no download URL", zap.String("path", path))
			return "", nil
		}
		body, err := c.getRaw(ctx, resp.DownloadURL, maxRawBytes)
		if err != nil {
			return "", err
		}
		raw = body
	default:
		return "", fmt.Errorf("unsupported content encoding %q for %s", resp.Encoding, path)
	}

	content := string(raw)
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "�")
	}
	return content, nil
}

// FileURL builds the browsable link for a file at a branch.
func (c *Client) FileURL(ref types.RepositoryRef, branch, path string) string {
	return fmt.Sprintf("%s/%s/%s/blob/%s/%s", c.webURL,
		url.PathEscape(ref.Owner), url.PathEscape(ref.Name), escapePath(branch), escapePath(path))
}

// FetchSamples fetches every path and truncates it to the configured line cap.
// The first failure discards everything fetched so far: the result is all or nothing.
func (c *Client) FetchSamples(ctx context.Context, ref types.RepositoryRef, branch string, paths []string) ([]types.CodeSample, error) {
	samples := make([]types.CodeSample, 0, len(paths))
	for _, p := range paths {
		content, err := c.FileContent(ctx, ref, branch, p)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", p, err)
		}
		samples = append(samples, types.CodeSample{
			FilePath:   p,
			Content:    TruncateLines(content, c.maxLines),
			SourceLink: c.FileURL(ref, branch, p),
		})
	}
	return samples, nil
}

// TruncateLines keeps at most maxLines lines of content. When the kept line count
// reaches maxLines, TruncationMarker is appended as one more line.
func TruncateLines(content string, maxLines int) string {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	out := strings.Join(lines, "\n")
	if len(lines) == maxLines {
		out += "\n" + TruncationMarker
	}
	return out
}
