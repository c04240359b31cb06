package verify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harmya/grifter-or-pro/internal/llm"
	"github.com/harmya/grifter-or-pro/internal/types"
)

func TestBuildJudgmentPrompt(t *testing.T) {
	samples := []types.CodeSample{
		{FilePath: "src/app.py", Content: "print('hi')"},
		{FilePath: "src/db.py", Content: "import sqlite3"},
	}

	req := BuildJudgmentPrompt("A blockchain-powered todo list", samples)

	assert.Contains(t, req.System, "FunnyCodeReviewer")
	assert.Contains(t, req.User, "Project Description: A blockchain-powered todo list")
	assert.Contains(t, req.User, "File: src/app.py\n```\nprint('hi')...\n```\n\nFile: src/db.py\n```\nimport sqlite3...\n```")
	assert.Contains(t, req.User, "Grift Rating out of 10")
	assert.Contains(t, req.User, "under 350 words")
	assert.Equal(t, llm.TierStandard, req.Tier)
	assert.InDelta(t, 0.3, req.Temperature, 0.0001)
	assert.Equal(t, 500, req.MaxOutputTokens)
}

func TestFormatSamples_ExcerptIsCharacterBased(t *testing.T) {
	content := strings.Repeat("é", ExcerptChars+200)
	got := FormatSamples([]types.CodeSample{{FilePath: "a.go", Content: content}})

	body := strings.TrimSuffix(strings.TrimPrefix(got, "File: a.go\n```\n"), "...\n```")
	assert.Equal(t, ExcerptChars, len([]rune(body)))
}

func TestFormatSamples_ShortContentKeepsEllipsis(t *testing.T) {
	got := FormatSamples([]types.CodeSample{{FilePath: "a.go", Content: "package a"}})
	assert.Equal(t, "File: a.go\n```\npackage a...\n```", got)
}

func TestFormatSamples_Empty(t *testing.T) {
	assert.Equal(t, "", FormatSamples(nil))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "abc", excerpt("abcdef", 3))
	assert.Equal(t, "ab", excerpt("ab", 3))
	assert.Equal(t, "日本", excerpt("日本語", 2))
	assert.Equal(t, "", excerpt("", 3))
}
