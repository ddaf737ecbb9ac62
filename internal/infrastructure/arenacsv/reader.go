package arenacsv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/riskibarqy/nba-lunar/internal/domain/gamelog"
)

const keyColumn = "abbreviation"

// Reader loads arena rows from a CSV file whose header names team_details
// columns, case-insensitively. The abbreviation column is required.
type Reader struct {
	path string
}

var _ gamelog.ArenaSource = (*Reader)(nil)

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

func (r *Reader) ReadArenaLocations(ctx context.Context) ([]gamelog.ArenaLocation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open arena csv: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads every record of an arena CSV.
func Parse(src io.Reader) ([]gamelog.ArenaLocation, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read arena csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff")))
	}
	keyIdx := -1
	for i, h := range header {
		if h == keyColumn {
			keyIdx = i
			break
		}
	}
	if keyIdx < 0 {
		return nil, fmt.Errorf("arena csv has no %s column", keyColumn)
	}

	var out []gamelog.ArenaLocation
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read arena csv line %d: %w", line, err)
		}

		abbreviation := strings.ToUpper(strings.TrimSpace(record[keyIdx]))
		if abbreviation == "" {
			continue
		}
		columns := make(map[string]string, len(header)-1)
		for i, h := range header {
			if i == keyIdx || h == "" {
				continue
			}
			columns[h] = strings.TrimSpace(record[i])
		}
		out = append(out, gamelog.ArenaLocation{Abbreviation: abbreviation, Columns: columns})
	}
	return out, nil
}
