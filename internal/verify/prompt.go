package verify

import (
	"fmt"
	"strings"

	"github.com/harmya/grifter-or-pro/internal/llm"
	"github.com/harmya/grifter-or-pro/internal/prompts"
	"github.com/harmya/grifter-or-pro/internal/types"
)

const (
	// ExcerptChars is how many characters of each sample reach the prompt.
	ExcerptChars = 1000
	// JudgeTemperature keeps the critique focused without making it robotic.
	JudgeTemperature = 0.3
	// JudgeMaxTokens bounds the critique length.
	JudgeMaxTokens = 500

	promptFile      = "verification.json"
	systemPromptKey = "judge-system-v1"
	userPromptKey   = "judge-user-v1"
)

// BuildJudgmentPrompt assembles the reviewer persona and the user message holding
// the project description and an excerpt of every sample.
func BuildJudgmentPrompt(description string, samples []types.CodeSample) llm.ChatRequest {
	return llm.ChatRequest{
		System: prompts.MustGet(promptFile, systemPromptKey),
		User: prompts.Format(prompts.MustGet(promptFile, userPromptKey), map[string]string{
			"Description": description,
			"CodeSamples": FormatSamples(samples),
		}),
		Tier:            llm.TierStandard,
		Temperature:     JudgeTemperature,
		MaxOutputTokens: JudgeMaxTokens,
	}
}

// FormatSamples renders each sample as a fenced block of its first ExcerptChars
// characters followed by "...", separated by blank lines.
func FormatSamples(samples []types.CodeSample) string {
	blocks := make([]string, 0, len(samples))
	for _, s := range samples {
		blocks = append(blocks, fmt.Sprintf("File: %s\n```\n%s...\n```", s.FilePath, excerpt(s.Content, ExcerptChars)))
	}
	return strings.Join(blocks, "\n\n")
}

// excerpt returns the first n characters of s, counting runes rather than bytes.
func excerpt(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
