package usecase

import (
	"sort"

	"github.com/riskibarqy/nba-lunar/internal/domain/moonevent"
)

type locationKey struct {
	lat, lon float64
}

// GroupLocationYears partitions the unique sites by (latitude, longitude) and
// then by calendar year, emitting one full-year batch per partition. Batches
// are ordered by latitude, longitude and year; games inside a batch by date
// and then game id.
func GroupLocationYears(sites []moonevent.GameSite) []moonevent.Batch {
	unique := moonevent.NewSiteSet(sites...)

	partitions := make(map[locationKey]map[int][]moonevent.GameDate)
	for site := range unique {
		key := locationKey{lat: site.Latitude, lon: site.Longitude}
		years, ok := partitions[key]
		if !ok {
			years = make(map[int][]moonevent.GameDate)
			partitions[key] = years
		}
		year := site.GameDate.Year()
		years[year] = append(years[year], moonevent.GameDate{GameID: site.GameID, Date: site.GameDate})
	}

	batches := make([]moonevent.Batch, 0, len(partitions))
	for key, years := range partitions {
		for year, games := range years {
			sort.Slice(games, func(i, j int) bool {
				if !games[i].Date.Equal(games[j].Date) {
					return games[i].Date.Before(games[j].Date)
				}
				return games[i].GameID < games[j].GameID
			})
			batches = append(batches, moonevent.NewBatch(key.lat, key.lon, year, games))
		}
	}

	sort.Slice(batches, func(i, j int) bool {
		a, b := batches[i], batches[j]
		if a.Latitude != b.Latitude {
			return a.Latitude < b.Latitude
		}
		if a.Longitude != b.Longitude {
			return a.Longitude < b.Longitude
		}
		return a.Year < b.Year
	})
	return batches
}
