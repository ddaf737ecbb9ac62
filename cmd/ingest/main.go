// Command ingest pulls NBA game logs and moon positions into Postgres.
//
// Usage:
//
//	nba-lunar-ingest run --seasons 2020-21,2021-22
//	nba-lunar-ingest logs
//	nba-lunar-ingest teams
//	nba-lunar-ingest moon
//	nba-lunar-ingest export
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/nba-lunar/internal/app"
	"github.com/riskibarqy/nba-lunar/internal/config"
	"github.com/riskibarqy/nba-lunar/internal/observability"
	"github.com/riskibarqy/nba-lunar/internal/platform/logging"
	"github.com/riskibarqy/nba-lunar/internal/usecase"
)

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "nba-lunar-ingest",
		Short:         "NBA game log and moon position ingestion",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var seasons []string
	root.PersistentFlags().StringSliceVar(&seasons, "seasons", nil, "Seasons to ingest (YYYY-YY), overrides INGEST_SEASONS")

	root.AddCommand(
		stageCmd(app.StageRun, "Run every ingestion stage in order", &seasons),
		stageCmd(app.StageLogs, "Ingest player and team game logs", &seasons),
		stageCmd(app.StageTeams, "Ingest team details and backfill arena coordinates", &seasons),
		stageCmd(app.StageMoon, "Ingest moon positions for every home game", &seasons),
		stageCmd(app.StageExport, "Export the joined tables to CSV", &seasons),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func stageCmd(stage, short string, seasons *[]string) *cobra.Command {
	return &cobra.Command{
		Use:   stage,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStage(cmd.Context(), stage, *seasons)
		},
	}
}

func runStage(parent context.Context, stage string, seasons []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if len(seasons) > 0 {
		if cfg, err = cfg.WithSeasons(seasons); err != nil {
			return err
		}
	}

	logger := logging.New(cfg.LogFormat, cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"env", cfg.AppEnv,
		"stage", stage,
	)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if err := app.RequireStage(cfg, stage); err != nil {
		return err
	}

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("shutdown uptrace", "error", err)
		}
	}()

	stopProfiling, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return fmt.Errorf("init pyroscope: %w", err)
	}
	defer func() {
		if err := stopProfiling(); err != nil {
			logger.Warn("stop pyroscope", "error", err)
		}
	}()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, err := app.NewPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			logger.Warn("close database", "error", err)
		}
	}()

	start := time.Now()
	reports, runErr := dispatch(ctx, pipeline, stage, cfg, logger)
	for _, report := range reports {
		logger.InfoContext(ctx, "stage finished",
			"name", report.Stage,
			"requests", report.Requests,
			"responses", report.Responses,
			"rows", report.Rows,
			"added", report.Result.Added,
			"skipped", report.Result.Skipped,
			"failures", report.Failures,
		)
	}
	if runErr != nil {
		logger.ErrorContext(ctx, "ingestion finished with errors", "duration", time.Since(start).Round(time.Millisecond), "error", runErr)
		return runErr
	}
	logger.InfoContext(ctx, "ingestion finished", "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

func dispatch(ctx context.Context, p *app.Pipeline, stage string, cfg config.Config, logger *logging.Logger) ([]usecase.StageReport, error) {
	switch stage {
	case app.StageRun:
		return p.Ingestion.Run(ctx, usecase.IngestRequest{Seasons: cfg.Seasons})
	case app.StageLogs:
		report, err := p.Ingestion.IngestGameLogs(ctx, cfg.Seasons)
		return []usecase.StageReport{report}, err
	case app.StageTeams:
		details, err := p.Ingestion.IngestTeamDetails(ctx)
		if err != nil {
			return []usecase.StageReport{details}, err
		}
		backfill, err := p.Ingestion.BackfillTeamLocations(ctx)
		return []usecase.StageReport{details, backfill}, err
	case app.StageMoon:
		report, err := p.Ingestion.IngestMoonEvents(ctx)
		return []usecase.StageReport{report}, err
	case app.StageExport:
		path, count, err := p.Export.Export(ctx)
		if err != nil {
			return nil, err
		}
		logger.InfoContext(ctx, "export written", "path", path, "rows", count)
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown stage %q (want one of %s)", stage, strings.Join([]string{
			app.StageRun, app.StageLogs, app.StageTeams, app.StageMoon, app.StageExport,
		}, ", "))
	}
}
