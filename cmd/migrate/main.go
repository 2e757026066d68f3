// Command migrate is the one-shot legacy job-data migration CLI.
//
// Usage:
//
//	jobportal-migrate run --db-host localhost:5432 --db-user root --db-password secret \
//	    --api-url http://localhost:8000 --api-key your_api_key
//	jobportal-migrate run --sources kls,ks --sources-file sources.yaml
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jobportal/legacy-migrate/internal/config"
	"github.com/jobportal/legacy-migrate/internal/legacy"
	"github.com/jobportal/legacy-migrate/internal/migrate"
	"github.com/jobportal/legacy-migrate/internal/portal"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "jobportal-migrate",
		Short: "Migrate legacy scraped job data into the JobPortal API",
	}

	root.AddCommand(runCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	cfg := config.FromEnv()
	var timeoutSeconds int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full migration for every enabled legacy source",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("http-timeout") {
				cfg.HTTPTimeout = time.Duration(timeoutSeconds) * time.Second
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runMigration(cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.DBHost, "db-host", cfg.DBHost, "Legacy database host (host or host:port)")
	cmd.Flags().StringVar(&cfg.DBUser, "db-user", cfg.DBUser, "Legacy database user")
	cmd.Flags().StringVar(&cfg.DBPassword, "db-password", cfg.DBPassword, "Legacy database password")
	cmd.Flags().StringVar(&cfg.DBName, "db-name", cfg.DBName, "Legacy database name")
	cmd.Flags().StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "JobPortal API base URL (e.g. http://localhost:8000)")
	cmd.Flags().StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "API key with write permission")
	cmd.Flags().StringSliceVar(&cfg.Sources, "sources", cfg.Sources, "Source prefixes to migrate (default: the enabled set)")
	cmd.Flags().StringVar(&cfg.SourcesFile, "sources-file", cfg.SourcesFile, "YAML file overriding the built-in source registry")
	cmd.Flags().IntVar(&timeoutSeconds, "http-timeout", int(cfg.HTTPTimeout/time.Second), "HTTP timeout in seconds for API submissions")
	cmd.Flags().IntVar(&cfg.RequestsPerMinute, "rpm", cfg.RequestsPerMinute, "Maximum API submissions per minute")
	cmd.Flags().IntVar(&cfg.ProgressEvery, "progress-every", cfg.ProgressEvery, "Log a progress line every N submissions (0 disables)")

	return cmd
}

// runMigration connects, migrates every enabled source, and prints the
// summary. Only configuration and connection failures produce a non-zero
// exit; per-record and per-source errors are absorbed into the statistics.
func runMigration(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	registry, err := config.LoadRegistry(cfg.SourcesFile)
	if err != nil {
		return fmt.Errorf("load source registry: %w", err)
	}

	prefixes := cfg.Sources
	if len(prefixes) == 0 {
		prefixes = config.DefaultEnabledSources
	}

	db, err := legacy.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(context.Background())
	logger.Info("connected to legacy database", "host", cfg.DBHost, "db", cfg.DBName)

	client := portal.NewClient(cfg.APIURL, cfg.APIKey, cfg.RequestsPerMinute, cfg.HTTPTimeout, logger)
	migrator := migrate.New(registry, db, client, cfg.ProgressEvery, logger)

	start := time.Now()
	stats := migrator.Run(ctx, prefixes)
	logger.Info("migration finished", "duration", time.Since(start).Round(time.Second))

	stats.WriteSummary(os.Stdout)
	return nil
}
