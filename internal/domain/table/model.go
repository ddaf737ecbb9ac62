package table

import "fmt"

// Row is one record aligned to Target.Headers.
type Row []any

// Target is a destination table. Headers may be filled from the response for
// tables whose columns come from the upstream result set.
type Target struct {
	Name       string
	PrimaryKey string
	Headers    []string
	// KeyParts are the source columns joined into PrimaryKey, if derived.
	KeyParts [2]string
}

func (t Target) WithHeaders(headers []string) Target {
	t.Headers = append([]string(nil), headers...)
	return t
}

func (t Target) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("table name is required")
	}
	if t.PrimaryKey == "" {
		return fmt.Errorf("table %s: primary key is required", t.Name)
	}
	if len(t.Headers) == 0 {
		return fmt.Errorf("table %s: headers are required", t.Name)
	}
	for _, h := range t.Headers {
		if h == t.PrimaryKey {
			return nil
		}
	}
	return fmt.Errorf("table %s: headers do not include primary key %s", t.Name, t.PrimaryKey)
}

// Result counts the outcome of one Persist call.
type Result struct {
	Added   int64
	Skipped int64
}

var (
	PlayerGameLogs = Target{
		Name:       "player_game_logs",
		PrimaryKey: "player_id_game_id",
		KeyParts:   [2]string{"player_id", "game_id"},
	}
	TeamGameLogs = Target{
		Name:       "team_game_logs",
		PrimaryKey: "team_id_game_id",
		KeyParts:   [2]string{"team_id", "game_id"},
	}
	TeamDetails = Target{
		Name:       "team_details",
		PrimaryKey: "team_id",
	}
	MoonEvents = Target{
		Name:       "moon_events",
		PrimaryKey: "moon_event_id",
		Headers: []string{
			"moon_event_id", "date", "latitude", "longitude", "body_id",
			"body_name", "distance_from_earth_au", "distance_from_earth_km",
			"horizontal_position_altitude_degrees",
			"horizontal_position_azimuth_degrees",
			"equatorial_position_right_ascension",
			"equatorial_position_declination",
			"position_constellation_name", "elongation", "magnitude",
			"phase_string", "game_id",
		},
	}
)
