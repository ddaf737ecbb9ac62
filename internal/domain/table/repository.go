package table

import "context"

// Repository inserts rows idempotently: rows whose primary key already exists
// are skipped, never updated.
type Repository interface {
	Persist(ctx context.Context, target Target, rows []Row) (Result, error)
}

// RowWriter receives the joined export one row at a time.
type RowWriter interface {
	WriteHeader(columns []string) error
	WriteRow(values []any) error
}

// Exporter streams every joined record across the four tables.
type Exporter interface {
	ExportAll(ctx context.Context, w RowWriter) (int64, error)
}
