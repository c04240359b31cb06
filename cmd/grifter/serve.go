package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harmya/grifter-or-pro/internal/config"
	"github.com/harmya/grifter-or-pro/internal/ingestion"
	"github.com/harmya/grifter-or-pro/internal/server"
)

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server exposing the resume parsing and analysis endpoints used by the web frontend.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := appConfig
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if cmd.Flags().Changed("host") {
			cfg.Host = serveHost
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cfg, logger)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringVar(&serveHost, "host", config.DefaultHost, "Interface to bind (overrides HOST)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	verifier, err := newVerifier(cfg, client, nil, logger)
	if err != nil {
		return err
	}

	// A typed nil *db.DB must not reach the server as a non-nil interface.
	var store server.ReportStore
	if cfg.DatabaseURL != "" {
		database, err := openArchive(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		store = database
	} else {
		logger.Warn("DATABASE_URL not set, reports will not be archived")
	}

	srv := server.New(server.Config{
		Addr:           cfg.Addr(),
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      cfg.RateLimitRPM,
	}, verifier, ingestion.NewParser(client), store, logger)

	return srv.Start(ctx)
}
