package gamelog

import (
	"fmt"
	"strings"
	"time"
)

// Matchup is one distinct (game, matchup, date) row of team_game_logs.
type Matchup struct {
	GameID   string    `db:"game_id"`
	Matchup  string    `db:"matchup"`
	GameDate time.Time `db:"game_date"`
}

// HomeTeam returns the home team abbreviation of a stats API matchup:
// "LAL @ LAC" is played at LAC, "LAL vs. LAC" at LAL.
func HomeTeam(matchup string) (string, error) {
	if _, home, ok := strings.Cut(matchup, " @ "); ok {
		return strings.TrimSpace(home), nil
	}
	if home, _, ok := strings.Cut(matchup, " vs. "); ok {
		return strings.TrimSpace(home), nil
	}
	return "", fmt.Errorf("unknown matchup format %q", matchup)
}

// TeamLocation is the arena position of a team. Coordinates stay nil until
// backfilled from the arena CSV.
type TeamLocation struct {
	Abbreviation string   `db:"abbreviation"`
	Latitude     *float64 `db:"latitude"`
	Longitude    *float64 `db:"longitude"`
}

func (l TeamLocation) Coordinates() (lat, lon float64, ok bool) {
	if l.Latitude == nil || l.Longitude == nil {
		return 0, 0, false
	}
	return *l.Latitude, *l.Longitude, true
}

// ArenaLocation is one row of the arena CSV. Columns holds every CSV column
// other than the key, lowercased, with its raw value.
type ArenaLocation struct {
	Abbreviation string
	Columns      map[string]string
}
