package postgres

import (
	"strings"

	"github.com/lib/pq"
)

func quoteIdent(name string) string {
	return pq.QuoteIdentifier(name)
}

func quoteIdents(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, quoteIdent(name))
	}
	return out
}

func nullableText(v string) any {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return v
}
