package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harmya/grifter-or-pro/internal/config"
	"github.com/harmya/grifter-or-pro/internal/github"
	"github.com/harmya/grifter-or-pro/internal/observability"
	"github.com/harmya/grifter-or-pro/internal/types"
)

type verifyOptions struct {
	URL         string
	Description string
	Name        string
	JSON        bool
}

var verifyOpts verifyOptions

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Judge a single repository",
	Long:  "Sample a few files from one GitHub repository and print the LLM's critique of how well they back up the project description.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runVerify(cmd.Context(), cmd.OutOrStdout(), appConfig, verifyOpts, logger)
	},
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyOpts.URL, "url", "u", "", "GitHub repository URL (required)")
	verifyCmd.Flags().StringVarP(&verifyOpts.Description, "description", "d", "", "Project description as written on the resume")
	verifyCmd.Flags().StringVarP(&verifyOpts.Name, "name", "n", "", "Project name (defaults to the repository name)")
	verifyCmd.Flags().BoolVar(&verifyOpts.JSON, "json", false, "Print the result as JSON")
	_ = verifyCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(ctx context.Context, out io.Writer, cfg config.Config, opts verifyOptions, logger *zap.Logger) error {
	if strings.TrimSpace(opts.URL) == "" {
		return fmt.Errorf("--url is required")
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	verifier, err := newVerifier(cfg, client, nil, logger)
	if err != nil {
		return err
	}

	project := types.Project{Name: projectName(opts), Description: opts.Description, URL: opts.URL}
	var entry types.ProjectAnalysis
	result, err := verifier.Verify(ctx, project)
	if err != nil {
		entry = types.FailedProjectAnalysis(project.Name, err)
	} else {
		entry = types.NewProjectAnalysis(project.Name, result)
	}

	if opts.JSON {
		if err := writeJSON(out, entry); err != nil {
			return err
		}
	} else {
		observability.NewPrinter(out).PrintProjectAnalysis(&entry)
	}

	if entry.Status == types.StatusFailed {
		return fmt.Errorf("analysis failed: %s", entry.Error)
	}
	return nil
}

func projectName(opts verifyOptions) string {
	if opts.Name != "" {
		return opts.Name
	}
	if ref, ok := github.ParseRepoURL(opts.URL); ok {
		return ref.Name
	}
	return "project"
}
