package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/nba-lunar/internal/domain/apirequest"
	"github.com/riskibarqy/nba-lunar/internal/domain/gamelog"
	"github.com/riskibarqy/nba-lunar/internal/domain/moonevent"
	"github.com/riskibarqy/nba-lunar/internal/domain/table"
	"github.com/riskibarqy/nba-lunar/internal/platform/logging"
)

// ResponseFetcher is satisfied by *Fetcher.
type ResponseFetcher interface {
	Fetch(ctx context.Context, d apirequest.Descriptor) ([]byte, bool)
}

// StageReport summarises one ingestion stage.
type StageReport struct {
	Stage     string
	Requests  int
	Responses int
	Rows      int
	Failures  int
	Result    table.Result
}

func (r *StageReport) add(res table.Result) {
	r.Result.Added += res.Added
	r.Result.Skipped += res.Skipped
}

type IngestRequest struct {
	Seasons []string `validate:"required,min=1,dive,len=7"`
}

type IngestionService struct {
	fetcher   ResponseFetcher
	tables    table.Repository
	source    gamelog.SourceRepository
	locations gamelog.LocationRepository
	arenas    gamelog.ArenaSource
	validate  *validator.Validate
	logger    *logging.Logger
}

func NewIngestionService(
	fetcher ResponseFetcher,
	tables table.Repository,
	source gamelog.SourceRepository,
	locations gamelog.LocationRepository,
	arenas gamelog.ArenaSource,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		fetcher:   fetcher,
		tables:    tables,
		source:    source,
		locations: locations,
		arenas:    arenas,
		validate:  validator.New(),
		logger:    logger.Named("ingestion"),
	}
}

// Run executes every stage in order: game logs, team details, arena
// backfill and moon events. A failing stage is logged and the next one still
// runs; the returned error joins every stage failure.
func (s *IngestionService) Run(ctx context.Context, req IngestRequest) ([]StageReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Run")
	defer span.End()

	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		reports []StageReport
		errs    []error
	)
	record := func(stage string, fn func() (StageReport, error)) {
		if ctx.Err() != nil {
			return
		}
		report, err := fn()
		reports = append(reports, report)
		if err != nil {
			s.logger.ErrorContext(ctx, "stage failed", "stage", stage, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", stage, err))
			return
		}
		s.logger.DebugContext(ctx, "stage done",
			"stage", stage,
			"requests", report.Requests,
			"responses", report.Responses,
			"rows", report.Rows,
			"added", report.Result.Added,
			"skipped", report.Result.Skipped,
			"failures", report.Failures,
		)
	}

	record("game_logs", func() (StageReport, error) { return s.IngestGameLogs(ctx, req.Seasons) })
	record("team_details", func() (StageReport, error) { return s.IngestTeamDetails(ctx) })
	record("arena_locations", func() (StageReport, error) { return s.BackfillTeamLocations(ctx) })
	record("moon_events", func() (StageReport, error) { return s.IngestMoonEvents(ctx) })

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return reports, errors.Join(errs...)
}

// IngestGameLogs fetches player and team game logs for every season.
func (s *IngestionService) IngestGameLogs(ctx context.Context, seasons []string) (StageReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestGameLogs")
	defer span.End()

	report := StageReport{Stage: "game_logs"}
	targets := []struct {
		endpoint apirequest.Endpoint
		target   table.Target
	}{
		{apirequest.EndpointPlayerGameLogs, table.PlayerGameLogs},
		{apirequest.EndpointTeamGameLogs, table.TeamGameLogs},
	}

	for _, season := range seasons {
		season = strings.TrimSpace(season)
		for _, t := range targets {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			d := apirequest.New(t.endpoint, apirequest.ParamSeason, season)
			s.ingestResultSet(ctx, &report, d, t.target)
		}
	}
	return report, nil
}

// IngestTeamDetails fetches the background of every team seen in
// team_game_logs.
func (s *IngestionService) IngestTeamDetails(ctx context.Context) (StageReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestTeamDetails")
	defer span.End()

	report := StageReport{Stage: "team_details"}
	teamIDs, err := s.source.ListTeamIDs(ctx)
	if err != nil {
		return report, fmt.Errorf("list team ids: %w", err)
	}
	for _, teamID := range teamIDs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		d := apirequest.New(apirequest.EndpointTeamDetails, apirequest.ParamTeamID, teamID)
		s.ingestResultSet(ctx, &report, d, table.TeamDetails)
	}
	return report, nil
}

// BackfillTeamLocations copies arena coordinates from the arena source onto
// team_details rows with the same abbreviation.
func (s *IngestionService) BackfillTeamLocations(ctx context.Context) (StageReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.BackfillTeamLocations")
	defer span.End()

	report := StageReport{Stage: "arena_locations"}
	arenas, err := s.arenas.ReadArenaLocations(ctx)
	if err != nil {
		return report, fmt.Errorf("read arena locations: %w", err)
	}
	report.Rows = len(arenas)

	updated, err := s.locations.UpdateTeamLocations(ctx, arenas)
	if err != nil {
		return report, fmt.Errorf("update team locations: %w", err)
	}
	report.Result.Added = updated
	report.Result.Skipped = int64(len(arenas)) - updated
	return report, nil
}

// IngestMoonEvents derives game sites from the stored game logs, batches
// them per location and year, and stores the moon positions of each batch.
func (s *IngestionService) IngestMoonEvents(ctx context.Context) (StageReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestMoonEvents")
	defer span.End()

	report := StageReport{Stage: "moon_events"}
	matchups, err := s.source.ListGameMatchups(ctx)
	if err != nil {
		return report, fmt.Errorf("list game matchups: %w", err)
	}
	locations, err := s.source.ListTeamLocations(ctx)
	if err != nil {
		return report, fmt.Errorf("list team locations: %w", err)
	}

	sites, siteReport := BuildGameSites(ctx, s.validate, s.logger, matchups, locations)
	s.logger.InfoContext(ctx, "game sites resolved", "report", siteReport.String())

	batches := GroupLocationYears(sites)
	for _, batch := range batches {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		d := MoonDescriptor(batch)
		report.Requests++
		body, ok := s.fetcher.Fetch(ctx, d)
		if !ok {
			report.Failures++
			continue
		}
		report.Responses++

		target, rows, err := TransformMoonPositions(body, batch.GameIDsByPositionDate())
		if err != nil {
			report.Failures++
			s.logger.WarnContext(ctx, "skip malformed moon response", "batch", batch.String(), "error", err)
			continue
		}
		s.persist(ctx, &report, target, rows, batch.String())
	}
	return report, nil
}

// MoonDescriptor is the astronomy request covering batch.
func MoonDescriptor(batch moonevent.Batch) apirequest.Descriptor {
	return apirequest.New(apirequest.EndpointMoonPositions,
		apirequest.ParamLatitude, batch.LatitudeString(),
		apirequest.ParamLongitude, batch.LongitudeString(),
		apirequest.ParamFromDate, batch.FromDateString(),
		apirequest.ParamToDate, batch.ToDateString(),
		apirequest.ParamTime, "00:00:00",
	)
}

func (s *IngestionService) ingestResultSet(ctx context.Context, report *StageReport, d apirequest.Descriptor, target table.Target) {
	spec, _ := apirequest.Lookup(d.Endpoint)

	report.Requests++
	body, ok := s.fetcher.Fetch(ctx, d)
	if !ok {
		report.Failures++
		return
	}
	report.Responses++

	filled, rows, issues, err := TransformResultSet(body, spec.ResultSet, target)
	if err != nil {
		report.Failures++
		s.logger.WarnContext(ctx, "skip malformed stats response", "request", d.String(), "error", err)
		return
	}
	if issues.Any() {
		s.logger.WarnContext(ctx, "stats response has malformed records",
			"request", d.String(),
			"padded", issues.Padded,
			"dropped", issues.Dropped,
		)
	}
	s.persist(ctx, report, filled, rows, d.String())
}

func (s *IngestionService) persist(ctx context.Context, report *StageReport, target table.Target, rows []table.Row, source string) {
	report.Rows += len(rows)
	if len(rows) == 0 {
		return
	}

	res, err := s.tables.Persist(ctx, target, rows)
	if err != nil {
		report.Failures++
		s.logger.ErrorContext(ctx, "persist rows failed", "table", target.Name, "source", source, "rows", len(rows), "error", err)
		return
	}
	report.add(res)
	s.logger.InfoContext(ctx, "rows persisted", "table", target.Name, "source", source, "added", res.Added, "skipped", res.Skipped)
}
