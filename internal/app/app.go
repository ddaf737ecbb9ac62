package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/nba-lunar/external/astronomy"
	"github.com/riskibarqy/nba-lunar/external/nbastats"
	"github.com/riskibarqy/nba-lunar/internal/config"
	"github.com/riskibarqy/nba-lunar/internal/domain/apirequest"
	"github.com/riskibarqy/nba-lunar/internal/domain/gamelog"
	"github.com/riskibarqy/nba-lunar/internal/infrastructure/arenacsv"
	repocache "github.com/riskibarqy/nba-lunar/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/nba-lunar/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/nba-lunar/internal/infrastructure/responsecache"
	basecache "github.com/riskibarqy/nba-lunar/internal/platform/cache"
	"github.com/riskibarqy/nba-lunar/internal/platform/logging"
	"github.com/riskibarqy/nba-lunar/internal/usecase"
)

// Pipeline holds the wired services of one CLI invocation.
type Pipeline struct {
	DB        *sqlx.DB
	Ingestion *usecase.IngestionService
	Export    *usecase.ExportService
}

func (p *Pipeline) Close() error {
	if p == nil || p.DB == nil {
		return nil
	}
	return p.DB.Close()
}

// NewPipeline opens the database and wires clients, cache and repositories
// from cfg.
func NewPipeline(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := OpenDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	fetcher := usecase.NewFetcher(
		responsecache.NewFileStore(cfg.CacheDir, logger),
		map[apirequest.Source]apirequest.Transport{
			apirequest.SourceNBAStats: nbastats.NewClient(nbastats.ClientConfig{
				BaseURL:        cfg.NBABaseURL,
				Timeout:        cfg.NBATimeout,
				Logger:         logger,
				CircuitBreaker: cfg.NBACircuit,
			}),
			apirequest.SourceAstronomy: astronomy.NewClient(astronomy.ClientConfig{
				BaseURL:        cfg.AstronomyBaseURL,
				AppID:          cfg.AstronomyAppID,
				AppSecret:      cfg.AstronomyAppSecret,
				Timeout:        cfg.AstronomyTimeout,
				Logger:         logger,
				CircuitBreaker: cfg.AstronomyCircuit,
			}),
		},
		logger,
	)

	var (
		source    gamelog.SourceRepository   = postgres.NewSourceRepository(db)
		locations gamelog.LocationRepository = postgres.NewLocationRepository(db)
	)
	if cfg.LocationCacheEnabled {
		cached := repocache.NewTeamLocationRepository(source, locations, basecache.NewStore[[]gamelog.TeamLocation](cfg.LocationCacheTTL))
		source, locations = cached, cached
	}

	ingestion := usecase.NewIngestionService(
		fetcher,
		postgres.NewUpsertRepository(db, cfg.InsertBatchSize),
		source,
		locations,
		arenacsv.NewReader(cfg.ArenaLocationsCSV),
		logger,
	)
	export := usecase.NewExportService(postgres.NewExportRepository(db), cfg.ExportDir, logger)

	logger.InfoContext(ctx, "pipeline ready",
		"cache_dir", cfg.CacheDir,
		"location_cache", cfg.LocationCacheEnabled,
		"insert_batch_size", cfg.InsertBatchSize,
	)
	return &Pipeline{DB: db, Ingestion: ingestion, Export: export}, nil
}

// RequireStage checks the credentials a stage needs before any work starts.
func RequireStage(cfg config.Config, stage string) error {
	switch stage {
	case StageRun, StageMoon:
		if err := cfg.RequireAstronomyCredentials(); err != nil {
			return fmt.Errorf("stage %s: %w", stage, err)
		}
	}
	return nil
}

const (
	StageRun    = "run"
	StageLogs   = "logs"
	StageTeams  = "teams"
	StageMoon   = "moon"
	StageExport = "export"
)
