// Package main provides the grifter command: it samples the code behind the side projects
// on a resume and asks an LLM how much of it is grift.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harmya/grifter-or-pro/internal/config"
	"github.com/harmya/grifter-or-pro/internal/logging"
)

var (
	configPath string
	verbose    bool
	logLevel   string

	// Populated by loadRuntime before any subcommand runs.
	appConfig config.Config
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:               "grifter",
	Short:             "Grifter or Pro resume analyzer",
	Long:              "Grifter or Pro samples the code behind the projects on a resume and asks an LLM for a brutally honest credibility review.",
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func loadRuntime(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath, os.Getenv)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	cfg.Verbose = cfg.Verbose || verbose

	l, err := logging.New(cfg.LogLevel, cfg.Verbose)
	if err != nil {
		return err
	}
	appConfig = cfg
	logger = l
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
