package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/harmya/grifter-or-pro/internal/config"
	"github.com/harmya/grifter-or-pro/internal/db"
	"github.com/harmya/grifter-or-pro/internal/github"
	"github.com/harmya/grifter-or-pro/internal/llm"
	"github.com/harmya/grifter-or-pro/internal/selection"
	"github.com/harmya/grifter-or-pro/internal/verify"
)

// errNoDatabase is returned by commands that need the report archive.
var errNoDatabase = errors.New("DATABASE_URL is not configured")

// newLLMClient creates the client for the configured provider.
func newLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	apiKey := cfg.LLMAPIKey()
	if apiKey == "" {
		envVar := "OPENAI_API_KEY"
		if cfg.Provider() == llm.ProviderGemini {
			envVar = "GEMINI_API_KEY"
		}
		return nil, fmt.Errorf("API key is required (set %s)", envVar)
	}
	client, err := llm.NewClient(ctx, cfg.LLMConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// newVerifier wires the GitHub client, the file selector and the oracle.
func newVerifier(cfg config.Config, client llm.Client, onProgress verify.Progress, logger *zap.Logger) (*verify.Verifier, error) {
	host := github.NewClient(&github.Options{
		Token:  cfg.GitHubToken,
		APIURL: cfg.GitHubAPIURL,
	}, logger.Named("github"))

	selector, err := selection.New(cfg.SelectionStrategy, client, nil, logger.Named("selection"))
	if err != nil {
		return nil, err
	}

	return verify.New(host, selector, client, verify.Options{
		SampleCount: cfg.SampleCount,
		Concurrency: cfg.Concurrency,
		OnProgress:  onProgress,
	}, logger.Named("verify")), nil
}

// openArchive connects to the report archive and makes sure its table exists.
func openArchive(ctx context.Context, cfg config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, errNoDatabase
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
