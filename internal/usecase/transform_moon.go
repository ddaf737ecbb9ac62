package usecase

import (
	"fmt"
	"math"
	"strconv"

	"github.com/riskibarqy/nba-lunar/internal/domain/moonevent"
	"github.com/riskibarqy/nba-lunar/internal/domain/table"
	"github.com/riskibarqy/nba-lunar/internal/platform/optional"
)

// TransformMoonPositions flattens an astronomy positions response into
// moon_events rows, one per (body, position). gameIDs maps a position date
// label to the game played at the observer site on that date; positions
// without a game get moonevent.UnmatchedGameID.
func TransformMoonPositions(body []byte, gameIDs map[string]string) (table.Target, []table.Row, error) {
	root := optional.Parse(body)
	if !root.Exists() {
		return table.MoonEvents, nil, fmt.Errorf("%w: astronomy body is not valid json", ErrMalformedResponse)
	}

	location := root.Path("data", "observer", "location")
	lat := optional.Get(location, "latitude")
	lon := optional.Get(location, "longitude")
	latText := coordinateText(location.Path("latitude"))
	lonText := coordinateText(location.Path("longitude"))

	var rows []table.Row
	for _, entry := range root.Path("data", "rows").Array() {
		bodyID := optional.Get(entry, "body", "id")
		bodyName := optional.Get(entry, "body", "name")

		for _, position := range entry.Path("positions").Array() {
			date, _ := position.Path("date").String()
			gameID, ok := gameIDs[date]
			if !ok {
				gameID = moonevent.UnmatchedGameID
			}

			rows = append(rows, table.Row{
				fmt.Sprintf("%s_%s_%s", date, latText, lonText),
				optional.Get(position, "date"),
				lat,
				lon,
				bodyID,
				bodyName,
				optional.Get(position, "distance", "fromEarth", "au"),
				optional.Get(position, "distance", "fromEarth", "km"),
				optional.Get(position, "position", "horizontal", "altitude", "degrees"),
				optional.Get(position, "position", "horizontal", "azimuth", "degrees"),
				optional.Get(position, "position", "equatorial", "rightAscension", "hours"),
				optional.Get(position, "position", "equatorial", "declination", "degrees"),
				optional.Get(position, "position", "constellation", "name"),
				optional.Get(position, "extraInfo", "elongation"),
				optional.Get(position, "extraInfo", "magnitude"),
				optional.Get(position, "extraInfo", "phase", "string"),
				gameID,
			})
		}
	}
	return table.MoonEvents, rows, nil
}

// coordinateText formats a coordinate for moon_event_id. Whole numbers keep a
// trailing ".0" so ids match the ones already stored for -84.0 style sites.
func coordinateText(n optional.Node) string {
	f, ok := n.Value().(float64)
	if !ok {
		text, _ := n.String()
		return text
	}
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
