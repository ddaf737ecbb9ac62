package moonevent

import (
	"fmt"
	"strconv"
	"time"
)

// UnmatchedGameID is stored in moon_events.game_id when a position date has
// no game at that site.
const UnmatchedGameID = "null"

// GameDateLayout is how the stats API renders game_date.
const GameDateLayout = "2006-01-02T15:04:05"

// positionDateSuffix is appended literally: the astronomy API reports midnight
// positions with this fixed fractional part and offset.
const positionDateSuffix = ".000-01:00"

const windowDateLayout = "2006-01-02"

// GameSite is one game played at a location. It is a comparable value so a
// SiteSet can dedupe on all four fields.
type GameSite struct {
	GameID    string    `validate:"required"`
	GameDate  time.Time `validate:"required"`
	Latitude  float64   `validate:"latitude"`
	Longitude float64   `validate:"longitude"`
}

// NewGameSite keeps the wall clock of date and drops its location so sites
// read from different sources compare equal.
func NewGameSite(gameID string, date time.Time, lat, lon float64) GameSite {
	return GameSite{
		GameID:    gameID,
		GameDate:  time.Date(date.Year(), date.Month(), date.Day(), date.Hour(), date.Minute(), date.Second(), 0, time.UTC),
		Latitude:  lat,
		Longitude: lon,
	}
}

// PositionDateKey renders GameDate the way the astronomy API labels the
// matching position.
func (s GameSite) PositionDateKey() string {
	return PositionDateKey(s.GameDate)
}

func PositionDateKey(t time.Time) string {
	return t.Format(GameDateLayout) + positionDateSuffix
}

// GameDate pairs a game with its date inside a batch.
type GameDate struct {
	GameID string
	Date   time.Time
}

// Batch is one astronomy request: every game at a location in one calendar
// year.
type Batch struct {
	Latitude  float64
	Longitude float64
	Year      int
	FromDate  time.Time
	ToDate    time.Time
	Games     []GameDate
}

func NewBatch(lat, lon float64, year int, games []GameDate) Batch {
	return Batch{
		Latitude:  lat,
		Longitude: lon,
		Year:      year,
		FromDate:  time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		ToDate:    time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		Games:     games,
	}
}

func (b Batch) FromDateString() string {
	return b.FromDate.Format(windowDateLayout)
}

func (b Batch) ToDateString() string {
	return b.ToDate.Format(windowDateLayout)
}

func (b Batch) LatitudeString() string {
	return strconv.FormatFloat(b.Latitude, 'f', -1, 64)
}

func (b Batch) LongitudeString() string {
	return strconv.FormatFloat(b.Longitude, 'f', -1, 64)
}

// GameIDsByPositionDate indexes the batch games by PositionDateKey.
func (b Batch) GameIDsByPositionDate() map[string]string {
	out := make(map[string]string, len(b.Games))
	for _, g := range b.Games {
		out[PositionDateKey(g.Date)] = g.GameID
	}
	return out
}

func (b Batch) String() string {
	return fmt.Sprintf("(%s,%s) %d games=%d", b.LatitudeString(), b.LongitudeString(), b.Year, len(b.Games))
}
