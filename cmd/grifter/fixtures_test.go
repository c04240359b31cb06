package main

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harmya/grifter-or-pro/internal/config"
)

const (
	judgment       = "Surprisingly competent. Grift Rating: 3/10"
	extractionJSON = `{"found_all_links": true, "github_username": "jane", "projects": [
		{"name": "Grifter", "description": "Roasts resumes with AI", "url": "https://github.com/jane/grifter"},
		{"name": "Vaporware", "description": "Revolutionary blockchain", "url": "not a url"}
	]}`
)

var repoFiles = map[string]string{
	"main.go":    "package main\n\nfunc main() {}\n",
	"src/app.py": "print('hello')\n",
}

// fakeGitHub serves one repository, jane/grifter, on branch main.
func fakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/jane/grifter", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"default_branch":"main"}`))
	})
	mux.HandleFunc("GET /repos/jane/grifter/git/trees/main", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"truncated":false,"tree":[
			{"path":"README.md","type":"blob"},
			{"path":"src","type":"tree"},
			{"path":"main.go","type":"blob"},
			{"path":"src/app.py","type":"blob"}
		]}`))
	})
	mux.HandleFunc("GET /repos/jane/grifter/contents/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/repos/jane/grifter/contents/")
		content, ok := repoFiles[path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"type":"file","encoding":"base64","content":"` +
			base64.StdEncoding.EncodeToString([]byte(content)) + `"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type fakeOpenAI struct {
	*httptest.Server
	judgments   atomic.Int32
	extractions atomic.Int32
	fail        atomic.Bool
}

// newFakeOpenAI answers JSON-mode requests with extractionJSON and all others with judgment.
func newFakeOpenAI(t *testing.T) *fakeOpenAI {
	t.Helper()
	f := &fakeOpenAI{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"model overloaded","type":"server_error"}}`))
			return
		}

		var req struct {
			ResponseFormat *struct {
				Type string `json:"type"`
			} `json:"response_format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		content := judgment
		if req.ResponseFormat != nil {
			f.extractions.Add(1)
			content = extractionJSON
		} else {
			f.judgments.Add(1)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(f.Close)
	return f
}

func testConfig(t *testing.T, gh *httptest.Server, oa *fakeOpenAI) config.Config {
	t.Helper()
	cfg := config.Config{
		GitHubAPIURL: gh.URL,
		OpenAIAPIKey: "sk-test",
		OpenAIAPIURL: oa.URL,
	}
	return cfg.MergeWithDefaults(config.Defaults())
}

// writeResume writes a minimal DOCX resume and returns its path.
func writeResume(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/></Types>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p><w:p><w:r><w:t>Grifter - roasts resumes</w:t></w:r></w:p></w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://github.com/jane/grifter" TargetMode="External"/></Relationships>`,
	}
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "resume.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}
