package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/riskibarqy/nba-lunar/internal/domain/table"
	"github.com/riskibarqy/nba-lunar/internal/platform/logging"
)

// ExportFileName is the CSV written by ExportService.
const ExportFileName = "all_nba_moon_data.csv"

type ExportService struct {
	exporter table.Exporter
	dir      string
	logger   *logging.Logger
}

func NewExportService(exporter table.Exporter, dir string, logger *logging.Logger) *ExportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ExportService{
		exporter: exporter,
		dir:      dir,
		logger:   logger.Named("export"),
	}
}

// Export writes the joined view of all four tables to dir/ExportFileName and
// returns the file path and row count.
func (s *ExportService) Export(ctx context.Context) (string, int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.Export")
	defer span.End()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(s.dir, ExportFileName)
	file, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	writer := NewCSVRowWriter(file)
	count, err := s.exporter.ExportAll(ctx, writer)
	if err != nil {
		return "", 0, fmt.Errorf("export rows: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return "", 0, fmt.Errorf("flush export file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", 0, fmt.Errorf("close export file: %w", err)
	}

	s.logger.InfoContext(ctx, "export written", "path", path, "rows", count)
	return path, count, nil
}

// CSVRowWriter adapts encoding/csv to table.RowWriter.
type CSVRowWriter struct {
	w      *csv.Writer
	record []string
}

var _ table.RowWriter = (*CSVRowWriter)(nil)

func NewCSVRowWriter(w io.Writer) *CSVRowWriter {
	return &CSVRowWriter{w: csv.NewWriter(w)}
}

func (c *CSVRowWriter) WriteHeader(columns []string) error {
	return c.w.Write(columns)
}

func (c *CSVRowWriter) WriteRow(values []any) error {
	c.record = c.record[:0]
	for _, v := range values {
		c.record = append(c.record, formatCSVValue(v))
	}
	return c.w.Write(c.record)
}

func (c *CSVRowWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

func formatCSVValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case []byte:
		return string(value)
	case time.Time:
		return value.Format("2006-01-02 15:04:05")
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprint(value)
	}
}
