package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/nba-lunar/internal/domain/table"
	qb "github.com/riskibarqy/nba-lunar/internal/platform/querybuilder"
)

// ExportRepository streams the full outer join of every ingested table.
type ExportRepository struct {
	db *sqlx.DB
}

var _ table.Exporter = (*ExportRepository)(nil)

func NewExportRepository(db *sqlx.DB) *ExportRepository {
	return &ExportRepository{db: db}
}

func exportQuery() (string, []any, error) {
	return qb.Select("pgl.*", "tgl.*", "td.*", "me.*").
		From(table.PlayerGameLogs.Name+" pgl").
		Join("full outer", table.TeamGameLogs.Name+" tgl", "pgl.team_id_game_id = tgl.team_id_game_id").
		Join("full outer", table.TeamDetails.Name+" td", "tgl.team_id = td.team_id").
		Join("full outer", table.MoonEvents.Name+" me", "tgl.game_id = me.game_id").
		ToSQL()
}

func (r *ExportRepository) ExportAll(ctx context.Context, w table.RowWriter) (int64, error) {
	query, args, err := exportQuery()
	if err != nil {
		return 0, fmt.Errorf("build export query: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("query export: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return 0, fmt.Errorf("export columns: %w", err)
	}
	if err := w.WriteHeader(columns); err != nil {
		return 0, fmt.Errorf("write export header: %w", err)
	}

	var count int64
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return count, fmt.Errorf("scan export row %d: %w", count, err)
		}
		if err := w.WriteRow(values); err != nil {
			return count, fmt.Errorf("write export row %d: %w", count, err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return count, fmt.Errorf("iterate export rows: %w", err)
	}
	return count, nil
}
