package gamelog

import "context"

// SourceRepository reads the already ingested game logs and team details.
type SourceRepository interface {
	ListGameMatchups(ctx context.Context) ([]Matchup, error)
	ListTeamIDs(ctx context.Context) ([]string, error)
	ListTeamLocations(ctx context.Context) ([]TeamLocation, error)
}

// LocationRepository writes arena coordinates onto team_details.
type LocationRepository interface {
	UpdateTeamLocations(ctx context.Context, locations []ArenaLocation) (int64, error)
}

// ArenaSource reads arena coordinates keyed by team abbreviation.
type ArenaSource interface {
	ReadArenaLocations(ctx context.Context) ([]ArenaLocation, error)
}
