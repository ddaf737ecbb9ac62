package usecase

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/nba-lunar/internal/domain/moonevent"
	"github.com/riskibarqy/nba-lunar/internal/domain/table"
)

var statsJSON = sonic.Config{UseNumber: true}.Froze()

type statsEnvelope struct {
	ResultSets []statsResultSet `json:"resultSets"`
}

type statsResultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

// DeriveKey joins two key parts into a synthetic primary key.
func DeriveKey(a, b string) string {
	return a + "_" + b
}

// RowIssues counts records that did not map cleanly onto the headers.
type RowIssues struct {
	// Padded rows were shorter than the headers; missing values became nil.
	Padded int
	// Dropped rows had more values than headers or an empty key part.
	Dropped int
}

func (r RowIssues) Any() bool {
	return r.Padded > 0 || r.Dropped > 0
}

// TransformResultSet extracts the named result set from a stats API body and
// returns target with its headers filled in, plus rows aligned to them.
// Headers are lowercased, numbers become int64 or float64 and game_date values
// are parsed into time.Time. When target has KeyParts, the composite key
// column is appended to every row. Short records are padded with nil; records
// that cannot be keyed are dropped and counted in RowIssues. A body without
// the result set yields ErrMalformedResponse.
func TransformResultSet(body []byte, resultSet string, target table.Target) (table.Target, []table.Row, RowIssues, error) {
	var issues RowIssues

	var envelope statsEnvelope
	if err := statsJSON.Unmarshal(body, &envelope); err != nil {
		return target, nil, issues, fmt.Errorf("%w: decode stats body: %v", ErrMalformedResponse, err)
	}

	var set *statsResultSet
	for i := range envelope.ResultSets {
		if envelope.ResultSets[i].Name == resultSet {
			set = &envelope.ResultSets[i]
			break
		}
	}
	if set == nil {
		return target, nil, issues, fmt.Errorf("%w: no result set named %q", ErrMalformedResponse, resultSet)
	}

	headers := make([]string, 0, len(set.Headers)+1)
	for _, h := range set.Headers {
		headers = append(headers, strings.ToLower(h))
	}
	gameDateIdx := indexOf(headers, "game_date")

	keyA, keyB := -1, -1
	derived := target.KeyParts[0] != "" && target.KeyParts[1] != ""
	if derived {
		keyA = indexOf(headers, target.KeyParts[0])
		keyB = indexOf(headers, target.KeyParts[1])
		if keyA < 0 || keyB < 0 {
			return target, nil, issues, fmt.Errorf("%w: result set %q lacks key columns %s, %s",
				ErrMalformedResponse, resultSet, target.KeyParts[0], target.KeyParts[1])
		}
		headers = append(headers, DeriveKey(target.KeyParts[0], target.KeyParts[1]))
	}

	rows := make([]table.Row, 0, len(set.RowSet))
	for _, record := range set.RowSet {
		if len(record) > len(set.Headers) {
			issues.Dropped++
			continue
		}

		row := make(table.Row, 0, len(headers))
		for _, value := range record {
			row = append(row, normalizeStatsValue(value))
		}
		if len(record) < len(set.Headers) {
			issues.Padded++
			for len(row) < len(set.Headers) {
				row = append(row, nil)
			}
		}
		if gameDateIdx >= 0 {
			row[gameDateIdx] = parseGameDate(row[gameDateIdx])
		}
		if derived {
			a, aok := keyPart(row[keyA])
			b, bok := keyPart(row[keyB])
			if !aok || !bok {
				issues.Dropped++
				continue
			}
			row = append(row, DeriveKey(a, b))
		}
		rows = append(rows, row)
	}

	return target.WithHeaders(headers), rows, issues, nil
}

// normalizeStatsValue turns decoded numbers into int64 when they are exact
// integers and float64 otherwise, so "-5.0" can still land in an INT column.
func normalizeStatsValue(v any) any {
	value, ok := v.(json.Number)
	if !ok {
		return v
	}
	if n, err := value.Int64(); err == nil {
		return n
	}
	f, err := value.Float64()
	if err != nil {
		return value.String()
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return f
}

// parseGameDate leaves empty or unparseable values untouched.
func parseGameDate(v any) any {
	raw, ok := v.(string)
	if !ok || raw == "" {
		return v
	}
	parsed, err := time.Parse(moonevent.GameDateLayout, raw)
	if err != nil {
		return v
	}
	return parsed
}

func keyPart(v any) (string, bool) {
	switch value := v.(type) {
	case nil:
		return "", false
	case string:
		return value, value != ""
	default:
		return fmt.Sprint(value), true
	}
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}
