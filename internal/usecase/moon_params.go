package usecase

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/nba-lunar/internal/domain/gamelog"
	"github.com/riskibarqy/nba-lunar/internal/domain/moonevent"
	"github.com/riskibarqy/nba-lunar/internal/platform/logging"
)

// SiteReport counts why games were or were not turned into sites.
type SiteReport struct {
	Games              int
	Sites              int
	UnknownMatchup     int
	MissingCoordinates int
	Invalid            int
}

// BuildGameSites resolves every distinct game to the arena of its home team.
// Games whose home team cannot be resolved, or whose team has no coordinates
// yet, are skipped and counted.
func BuildGameSites(
	ctx context.Context,
	validate *validator.Validate,
	logger *logging.Logger,
	matchups []gamelog.Matchup,
	locations []gamelog.TeamLocation,
) ([]moonevent.GameSite, SiteReport) {
	byAbbreviation := make(map[string]gamelog.TeamLocation, len(locations))
	for _, loc := range locations {
		byAbbreviation[loc.Abbreviation] = loc
	}

	report := SiteReport{Games: len(matchups)}
	set := moonevent.NewSiteSet()
	for _, m := range matchups {
		home, err := gamelog.HomeTeam(m.Matchup)
		if err != nil {
			report.UnknownMatchup++
			logger.WarnContext(ctx, "skip game with unknown matchup", "game_id", m.GameID, "matchup", m.Matchup)
			continue
		}

		lat, lon, ok := byAbbreviation[home].Coordinates()
		if !ok {
			report.MissingCoordinates++
			logger.WarnContext(ctx, "skip game without home team coordinates", "game_id", m.GameID, "home_team", home)
			continue
		}

		site := moonevent.NewGameSite(m.GameID, m.GameDate, lat, lon)
		if err := validate.StructCtx(ctx, site); err != nil {
			report.Invalid++
			logger.WarnContext(ctx, "skip invalid game site", "game_id", m.GameID, "error", err)
			continue
		}
		set.Add(site)
	}

	report.Sites = set.Len()
	return set.Slice(), report
}

func (r SiteReport) String() string {
	return fmt.Sprintf("games=%d sites=%d unknown_matchup=%d missing_coordinates=%d invalid=%d",
		r.Games, r.Sites, r.UnknownMatchup, r.MissingCoordinates, r.Invalid)
}
