package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/nba-lunar/internal/domain/gamelog"
	"github.com/riskibarqy/nba-lunar/internal/domain/table"
	qb "github.com/riskibarqy/nba-lunar/internal/platform/querybuilder"
)

// SourceRepository reads back the stored game logs and team details.
type SourceRepository struct {
	db *sqlx.DB
}

var _ gamelog.SourceRepository = (*SourceRepository)(nil)

func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

func (r *SourceRepository) ListGameMatchups(ctx context.Context) ([]gamelog.Matchup, error) {
	columns, err := qb.ModelColumns(gamelog.Matchup{})
	if err != nil {
		return nil, fmt.Errorf("matchup columns: %w", err)
	}
	query, args, err := qb.Select(columns...).
		Distinct().
		From(table.TeamGameLogs.Name).
		Where(
			qb.NotNull("game_id"),
			qb.NotNull("matchup"),
			qb.NotNull("game_date"),
		).
		OrderBy("game_date", "game_id", "matchup").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select game matchups query: %w", err)
	}

	var rows []gamelog.Matchup
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select game matchups: %w", err)
	}
	return rows, nil
}

func (r *SourceRepository) ListTeamIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("team_id::text").
		Distinct().
		From(table.TeamGameLogs.Name).
		Where(qb.NotNull("team_id")).
		OrderBy("team_id::text").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team ids query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select team ids: %w", err)
	}
	out := ids[:0]
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *SourceRepository) ListTeamLocations(ctx context.Context) ([]gamelog.TeamLocation, error) {
	columns, err := qb.ModelColumns(gamelog.TeamLocation{})
	if err != nil {
		return nil, fmt.Errorf("team location columns: %w", err)
	}
	query, args, err := qb.Select(columns...).
		From(table.TeamDetails.Name).
		Where(qb.NotNull("abbreviation")).
		OrderBy("abbreviation").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team locations query: %w", err)
	}

	var rows []gamelog.TeamLocation
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team locations: %w", err)
	}
	return rows, nil
}
