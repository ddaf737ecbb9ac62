package apirequest

// Endpoint names one upstream request shape. The value is also the cache
// namespace, so renaming one invalidates its stored responses.
type Endpoint string

const (
	EndpointPlayerGameLogs Endpoint = "playergamelogs"
	EndpointTeamGameLogs   Endpoint = "teamgamelogs"
	EndpointTeamDetails    Endpoint = "teamdetails"
	EndpointMoonPositions  Endpoint = "moon_data"
)

type Source string

const (
	SourceNBAStats  Source = "nbastats"
	SourceAstronomy Source = "astronomy"
)

// Param names used in descriptors.
const (
	ParamSeason    = "season_nullable"
	ParamTeamID    = "team_id"
	ParamLatitude  = "latitude"
	ParamLongitude = "longitude"
	ParamFromDate  = "from_date"
	ParamToDate    = "to_date"
	ParamTime      = "time"
)

// EndpointSpec is the static description of an endpoint.
type EndpointSpec struct {
	Endpoint Endpoint
	Source   Source
	// Resource is the upstream path segment, e.g. "PlayerGameLogs".
	Resource string
	// ResultSet is the stats API result set holding the rows.
	ResultSet string
	Required  []string
	// QueryNames maps descriptor param names to upstream query names.
	QueryNames map[string]string
}

var endpointSpecs = map[Endpoint]EndpointSpec{
	EndpointPlayerGameLogs: {
		Endpoint:   EndpointPlayerGameLogs,
		Source:     SourceNBAStats,
		Resource:   "PlayerGameLogs",
		ResultSet:  "PlayerGameLogs",
		Required:   []string{ParamSeason},
		QueryNames: map[string]string{ParamSeason: "SeasonNullable"},
	},
	EndpointTeamGameLogs: {
		Endpoint:   EndpointTeamGameLogs,
		Source:     SourceNBAStats,
		Resource:   "TeamGameLogs",
		ResultSet:  "TeamGameLogs",
		Required:   []string{ParamSeason},
		QueryNames: map[string]string{ParamSeason: "SeasonNullable"},
	},
	EndpointTeamDetails: {
		Endpoint:   EndpointTeamDetails,
		Source:     SourceNBAStats,
		Resource:   "TeamDetails",
		ResultSet:  "TeamBackground",
		Required:   []string{ParamTeamID},
		QueryNames: map[string]string{ParamTeamID: "TeamID"},
	},
	EndpointMoonPositions: {
		Endpoint: EndpointMoonPositions,
		Source:   SourceAstronomy,
		Resource: "bodies/positions/moon",
		Required: []string{ParamLatitude, ParamLongitude, ParamFromDate, ParamToDate},
		QueryNames: map[string]string{
			ParamLatitude:  "latitude",
			ParamLongitude: "longitude",
			ParamFromDate:  "from_date",
			ParamToDate:    "to_date",
			ParamTime:      "time",
		},
	},
}

// Lookup returns the static EndpointSpec of e.
func Lookup(e Endpoint) (EndpointSpec, bool) {
	spec, ok := endpointSpecs[e]
	return spec, ok
}

// QueryName maps a descriptor param to the upstream query parameter. Unknown
// params are passed through unchanged.
func (s EndpointSpec) QueryName(param string) string {
	if name, ok := s.QueryNames[param]; ok {
		return name
	}
	return param
}
