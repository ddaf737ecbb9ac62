package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/nba-lunar/internal/domain/table"
	qb "github.com/riskibarqy/nba-lunar/internal/platform/querybuilder"
)

const defaultInsertBatchSize = 500

// UpsertRepository inserts rows with ON CONFLICT (pk) DO NOTHING and reports
// how many were new. Each call runs on its own connection in one transaction;
// any failing statement rolls the whole call back.
type UpsertRepository struct {
	db        *sqlx.DB
	batchSize int
}

var _ table.Repository = (*UpsertRepository)(nil)

func NewUpsertRepository(db *sqlx.DB, batchSize int) *UpsertRepository {
	if batchSize <= 0 {
		batchSize = defaultInsertBatchSize
	}
	return &UpsertRepository{db: db, batchSize: batchSize}
}

func (r *UpsertRepository) Persist(ctx context.Context, target table.Target, rows []table.Row) (table.Result, error) {
	if err := target.Validate(); err != nil {
		return table.Result{}, err
	}
	if len(rows) == 0 {
		return table.Result{}, nil
	}
	for i, row := range rows {
		if len(row) != len(target.Headers) {
			return table.Result{}, fmt.Errorf("table %s row %d has %d values, expected %d", target.Name, i, len(row), len(target.Headers))
		}
	}

	conn, err := r.db.Connx(ctx)
	if err != nil {
		return table.Result{}, fmt.Errorf("acquire connection for %s: %w", target.Name, err)
	}
	defer conn.Close()

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return table.Result{}, fmt.Errorf("begin tx persist %s: %w", target.Name, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	before, err := countRows(ctx, tx, target.Name)
	if err != nil {
		return table.Result{}, err
	}

	columns := quoteIdents(target.Headers)
	chunk := qb.RowsPerStatement(len(columns), r.batchSize)
	for start := 0; start < len(rows); start += chunk {
		end := min(start+chunk, len(rows))
		values := make([][]any, 0, end-start)
		for _, row := range rows[start:end] {
			values = append(values, row)
		}

		query, args, err := qb.InsertInto(quoteIdent(target.Name)).
			Columns(columns...).
			Rows(values).
			OnConflictDoNothing(quoteIdent(target.PrimaryKey)).
			ToSQL()
		if err != nil {
			return table.Result{}, fmt.Errorf("build insert %s query: %w", target.Name, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return table.Result{}, fmt.Errorf("insert %s rows %d-%d: %w", target.Name, start, end-1, err)
		}
	}

	after, err := countRows(ctx, tx, target.Name)
	if err != nil {
		return table.Result{}, err
	}
	if err := tx.Commit(); err != nil {
		return table.Result{}, fmt.Errorf("commit persist %s: %w", target.Name, err)
	}

	added := after - before
	return table.Result{Added: added, Skipped: int64(len(rows)) - added}, nil
}

func countRows(ctx context.Context, tx *sqlx.Tx, tableName string) (int64, error) {
	query, args, err := qb.Select("COUNT(*)").From(quoteIdent(tableName)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count %s query: %w", tableName, err)
	}
	var n int64
	if err := tx.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", tableName, err)
	}
	return n, nil
}
