package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/nba-lunar/internal/domain/moonevent"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestGroupLocationYears_SplitsAcrossYears(t *testing.T) {
	t.Parallel()

	const lat, lon = 38.775867, -84.39733
	sites := []moonevent.GameSite{
		moonevent.NewGameSite("0022100001", day(2021, time.March, 1), lat, lon),
		moonevent.NewGameSite("0022000400", day(2020, time.December, 20), lat, lon),
		moonevent.NewGameSite("0022000500", day(2021, time.January, 5), lat, lon),
		moonevent.NewGameSite("0022000500", day(2021, time.January, 5), lat, lon),
	}

	batches := GroupLocationYears(sites)
	if len(batches) != 2 {
		t.Fatalf("expected 2 batches, got %d: %v", len(batches), batches)
	}

	first, second := batches[0], batches[1]
	if first.Year != 2020 || first.FromDateString() != "2020-01-01" || first.ToDateString() != "2020-12-31" {
		t.Fatalf("unexpected first batch window: %s %s..%s", first, first.FromDateString(), first.ToDateString())
	}
	if len(first.Games) != 1 || first.Games[0].GameID != "0022000400" {
		t.Fatalf("unexpected first batch games: %+v", first.Games)
	}
	if second.Year != 2021 || second.FromDateString() != "2021-01-01" || second.ToDateString() != "2021-12-31" {
		t.Fatalf("unexpected second batch window: %s", second)
	}
	if len(second.Games) != 2 || second.Games[0].GameID != "0022000500" || second.Games[1].GameID != "0022100001" {
		t.Fatalf("expected 2021 games sorted by date without duplicates, got %+v", second.Games)
	}
}

func TestGroupLocationYears_IsExactPartition(t *testing.T) {
	t.Parallel()

	sites := []moonevent.GameSite{
		moonevent.NewGameSite("a", day(2019, time.November, 2), 34.043, -118.267),
		moonevent.NewGameSite("b", day(2019, time.November, 2), 42.366, -71.062),
		moonevent.NewGameSite("c", day(2019, time.November, 4), 34.043, -118.267),
		moonevent.NewGameSite("d", day(2020, time.February, 9), 34.043, -118.267),
		moonevent.NewGameSite("e", day(2019, time.November, 4), 34.043, -118.267),
	}

	batches := GroupLocationYears(sites)
	seen := map[string]int{}
	for _, b := range batches {
		for _, g := range b.Games {
			seen[g.GameID]++
			if g.Date.Year() != b.Year {
				t.Fatalf("game %s dated %s inside %d batch", g.GameID, g.Date, b.Year)
			}
		}
	}
	for _, s := range sites {
		if seen[s.GameID] != 1 {
			t.Fatalf("game %s appears %d times", s.GameID, seen[s.GameID])
		}
	}

	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	if batches[0].Latitude != 34.043 || batches[0].Year != 2019 || batches[1].Year != 2020 || batches[2].Latitude != 42.366 {
		t.Fatalf("unexpected batch order: %v", batches)
	}
	g := batches[0].Games
	if len(g) != 3 || g[0].GameID != "a" || g[1].GameID != "c" || g[2].GameID != "e" {
		t.Fatalf("expected games ordered by date then id, got %+v", g)
	}
}

func TestGroupLocationYears_SingleGameGetsFullYear(t *testing.T) {
	t.Parallel()

	batches := GroupLocationYears([]moonevent.GameSite{
		moonevent.NewGameSite("x", day(2022, time.June, 16), 37.768, -122.387),
	})
	if len(batches) != 1 {
		t.Fatalf("expected one batch, got %d", len(batches))
	}
	if batches[0].FromDateString() != "2022-01-01" || batches[0].ToDateString() != "2022-12-31" {
		t.Fatalf("unexpected window %s..%s", batches[0].FromDateString(), batches[0].ToDateString())
	}
	if len(GroupLocationYears(nil)) != 0 {
		t.Fatalf("expected no batches for empty input")
	}
}
