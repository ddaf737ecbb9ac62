package cache

import (
	"context"

	"github.com/riskibarqy/nba-lunar/internal/domain/gamelog"
	basecache "github.com/riskibarqy/nba-lunar/internal/platform/cache"
)

const teamLocationsKey = "team:locations"

// TeamLocationRepository memoizes ListTeamLocations and drops the memo
// whenever locations are written through it.
type TeamLocationRepository struct {
	source   gamelog.SourceRepository
	location gamelog.LocationRepository
	cache    *basecache.Store[[]gamelog.TeamLocation]
}

var (
	_ gamelog.SourceRepository   = (*TeamLocationRepository)(nil)
	_ gamelog.LocationRepository = (*TeamLocationRepository)(nil)
)

func NewTeamLocationRepository(
	source gamelog.SourceRepository,
	location gamelog.LocationRepository,
	cache *basecache.Store[[]gamelog.TeamLocation],
) *TeamLocationRepository {
	return &TeamLocationRepository{source: source, location: location, cache: cache}
}

func (r *TeamLocationRepository) ListGameMatchups(ctx context.Context) ([]gamelog.Matchup, error) {
	return r.source.ListGameMatchups(ctx)
}

func (r *TeamLocationRepository) ListTeamIDs(ctx context.Context) ([]string, error) {
	return r.source.ListTeamIDs(ctx)
}

func (r *TeamLocationRepository) ListTeamLocations(ctx context.Context) ([]gamelog.TeamLocation, error) {
	items, err := r.cache.GetOrLoad(ctx, teamLocationsKey, func(ctx context.Context) ([]gamelog.TeamLocation, error) {
		items, err := r.source.ListTeamLocations(ctx)
		if err != nil {
			return nil, err
		}
		return append([]gamelog.TeamLocation(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]gamelog.TeamLocation(nil), items...), nil
}

func (r *TeamLocationRepository) UpdateTeamLocations(ctx context.Context, locations []gamelog.ArenaLocation) (int64, error) {
	updated, err := r.location.UpdateTeamLocations(ctx, locations)
	r.cache.Delete(ctx, teamLocationsKey)
	return updated, err
}
