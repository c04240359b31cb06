package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harmya/grifter-or-pro/internal/config"
	"github.com/harmya/grifter-or-pro/internal/ingestion"
	"github.com/harmya/grifter-or-pro/internal/observability"
	"github.com/harmya/grifter-or-pro/internal/server"
	"github.com/harmya/grifter-or-pro/internal/types"
)

type analyzeOptions struct {
	JSON      bool
	ParseOnly bool
	Save      bool
}

var analyzeOpts analyzeOptions

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume.pdf|resume.docx>",
	Short: "Analyze every project on a resume",
	Long:  "Extract the projects from a PDF or DOCX resume, sample each linked repository and print a grift report.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), appConfig, args[0], analyzeOpts, logger)
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeOpts.JSON, "json", false, "Print the result as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeOpts.ParseOnly, "parse-only", false, "Stop after extracting the projects")
	analyzeCmd.Flags().BoolVar(&analyzeOpts.Save, "save", false, "Archive the report in the database")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(ctx context.Context, out, errOut io.Writer, cfg config.Config, path string, opts analyzeOptions, logger *zap.Logger) error {
	doc, err := ingestion.IngestFromFile(path)
	if err != nil {
		return err
	}
	logger.Debug("resume extracted",
		zap.String("format", string(doc.Format)),
		zap.Int("chars", len(doc.Text)),
		zap.Int("links", len(doc.Links)))

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	parsed, err := ingestion.ParseResume(ctx, client, doc.Text)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(out)
	if opts.ParseOnly {
		if opts.JSON {
			return writeJSON(out, parsed)
		}
		printer.PrintParsedResume(parsed)
		return nil
	}
	if !opts.JSON {
		printer.PrintParsedResume(parsed)
	}

	progress := observability.NewPrinter(errOut)
	verifier, err := newVerifier(cfg, client, progress.PrintProgress, logger)
	if err != nil {
		return err
	}

	report := verifier.AnalyzeResume(ctx, *parsed)
	resp := server.AnalyzeResponse{Status: server.StatusSuccess, Analysis: report}

	if opts.Save {
		id, err := saveReport(ctx, cfg, parsed.GitHubUsername, &report)
		if err != nil {
			return err
		}
		resp.ReportID = id
		_, _ = fmt.Fprintf(errOut, "Report saved: %s\n", id)
	}

	if opts.JSON {
		return writeJSON(out, resp)
	}
	printer.PrintReport(&report)
	return nil
}

func saveReport(ctx context.Context, cfg config.Config, username string, report *types.Report) (string, error) {
	database, err := openArchive(ctx, cfg)
	if err != nil {
		return "", err
	}
	defer database.Close()

	id, err := database.SaveReport(ctx, username, report)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
