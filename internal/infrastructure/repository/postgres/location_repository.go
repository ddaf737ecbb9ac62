package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/nba-lunar/internal/domain/gamelog"
	"github.com/riskibarqy/nba-lunar/internal/domain/table"
	qb "github.com/riskibarqy/nba-lunar/internal/platform/querybuilder"
)

const arenaKeyColumn = "abbreviation"

// LocationRepository copies arena CSV columns onto team_details. Only CSV
// columns that also exist on the table are written; the key is never updated.
type LocationRepository struct {
	db *sqlx.DB
}

var _ gamelog.LocationRepository = (*LocationRepository)(nil)

func NewLocationRepository(db *sqlx.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) UpdateTeamLocations(ctx context.Context, locations []gamelog.ArenaLocation) (int64, error) {
	if len(locations) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx update team locations: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	tableColumns, err := listColumns(ctx, tx, table.TeamDetails.Name)
	if err != nil {
		return 0, err
	}

	var updated int64
	for _, loc := range locations {
		columns := updatableColumns(loc.Columns, tableColumns)
		if len(columns) == 0 || strings.TrimSpace(loc.Abbreviation) == "" {
			continue
		}

		b := qb.Update(quoteIdent(table.TeamDetails.Name))
		for _, col := range columns {
			b.Set(quoteIdent(col), nullableText(loc.Columns[col]))
		}
		query, args, err := b.Where(qb.Eq(quoteIdent(arenaKeyColumn), loc.Abbreviation)).ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build update team location query: %w", err)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("update team location %s: %w", loc.Abbreviation, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected for %s: %w", loc.Abbreviation, err)
		}
		updated += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit update team locations: %w", err)
	}
	return updated, nil
}

func listColumns(ctx context.Context, tx *sqlx.Tx, tableName string) (map[string]struct{}, error) {
	query, args, err := qb.Select("column_name").
		From("information_schema.columns").
		Where(
			qb.Expr("table_schema = current_schema()"),
			qb.Eq("table_name", tableName),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list columns query: %w", err)
	}

	var names []string
	if err := tx.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("list columns of %s: %w", tableName, err)
	}
	out := make(map[string]struct{}, len(names))
	for _, name := range names {
		out[name] = struct{}{}
	}
	return out, nil
}

// updatableColumns returns the sorted intersection of CSV and table columns
// without the key column.
func updatableColumns(csvColumns map[string]string, tableColumns map[string]struct{}) []string {
	out := make([]string, 0, len(csvColumns))
	for col := range csvColumns {
		if col == arenaKeyColumn {
			continue
		}
		if _, ok := tableColumns[col]; ok {
			out = append(out, col)
		}
	}
	sort.Strings(out)
	return out
}
