package arenacsv

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_LowercasesHeadersAndDropsKey(t *testing.T) {
	t.Parallel()

	src := "\ufeffTeam,Abbreviation,Latitude,Longitude\nLos Angeles Lakers, lal ,34.043,-118.267\nUnknown,,1,2\n"
	got, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one location, got %d", len(got))
	}
	loc := got[0]
	if loc.Abbreviation != "LAL" {
		t.Fatalf("unexpected abbreviation %q", loc.Abbreviation)
	}
	if loc.Columns["latitude"] != "34.043" || loc.Columns["longitude"] != "-118.267" || loc.Columns["team"] != "Los Angeles Lakers" {
		t.Fatalf("unexpected columns %v", loc.Columns)
	}
	if _, ok := loc.Columns["abbreviation"]; ok {
		t.Fatalf("key column must not be in Columns")
	}
}

func TestParse_RequiresKeyColumn(t *testing.T) {
	t.Parallel()

	if _, err := Parse(strings.NewReader("team,latitude\nx,1\n")); err == nil {
		t.Fatalf("expected missing key column error")
	}
}

func TestReader_ReadArenaLocations(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "arenas.csv")
	if err := os.WriteFile(path, []byte("abbreviation,latitude,longitude\nBOS,42.366,-71.062\n"), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	got, err := NewReader(path).ReadArenaLocations(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 || got[0].Abbreviation != "BOS" {
		t.Fatalf("unexpected locations %+v", got)
	}

	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.csv")).ReadArenaLocations(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
