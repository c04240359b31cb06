package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harmya/grifter-or-pro/internal/config"
	"github.com/harmya/grifter-or-pro/internal/db"
	"github.com/harmya/grifter-or-pro/internal/observability"
)

var (
	reportsLimit int
	reportsJSON  bool
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Browse archived reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent reports",
	RunE: func(cmd *cobra.Command, _ []string) error {
		database, err := openArchive(cmd.Context(), appConfig)
		if err != nil {
			return err
		}
		defer database.Close()

		summaries, err := database.ListReports(cmd.Context(), reportsLimit)
		if err != nil {
			return err
		}
		if reportsJSON {
			return writeJSON(cmd.OutOrStdout(), summaries)
		}
		return printSummaries(cmd.OutOrStdout(), summaries)
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one archived report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShowReport(cmd.Context(), cmd.OutOrStdout(), appConfig, args[0], reportsJSON)
	},
}

func init() {
	reportsListCmd.Flags().IntVar(&reportsLimit, "limit", db.DefaultListLimit, "Maximum number of reports")
	reportsCmd.PersistentFlags().BoolVar(&reportsJSON, "json", false, "Print as JSON")
	reportsCmd.AddCommand(reportsListCmd, reportsShowCmd)
	rootCmd.AddCommand(reportsCmd)
}

func runShowReport(ctx context.Context, out io.Writer, cfg config.Config, rawID string, asJSON bool) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid report ID %q: %w", rawID, err)
	}

	database, err := openArchive(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	record, err := database.GetReport(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("report not found: %s", id)
	}

	if asJSON {
		return writeJSON(out, record)
	}
	_, _ = fmt.Fprintf(out, "Report %s (%s, %s)\n", record.ID, record.GitHubUsername, record.CreatedAt.Format("2006-01-02 15:04"))
	observability.NewPrinter(out).PrintReport(&record.Report)
	return nil
}

func printSummaries(out io.Writer, summaries []db.ReportSummary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(out, "No reports archived yet.")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tCREATED\tUSER\tPROJECTS\tVERIFIED")
	for _, s := range summaries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.GitHubUsername, s.ProjectCount, s.VerifiedCount)
	}
	return tw.Flush()
}
