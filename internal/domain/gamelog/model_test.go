package gamelog

import "testing"

func TestHomeTeam(t *testing.T) {
	t.Parallel()

	cases := []struct {
		matchup string
		want    string
		wantErr bool
	}{
		{matchup: "LAL vs. LAC", want: "LAL"},
		{matchup: "LAL @ LAC", want: "LAC"},
		{matchup: "LAL v LAC", wantErr: true},
		{matchup: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := HomeTeam(tc.matchup)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("HomeTeam(%q): expected error", tc.matchup)
			}
			continue
		}
		if err != nil {
			t.Fatalf("HomeTeam(%q): %v", tc.matchup, err)
		}
		if got != tc.want {
			t.Fatalf("HomeTeam(%q) = %q, want %q", tc.matchup, got, tc.want)
		}
	}
}

func TestTeamLocation_Coordinates(t *testing.T) {
	t.Parallel()

	lat, lon := 34.043, -118.267
	if _, _, ok := (TeamLocation{Abbreviation: "LAL", Latitude: &lat}).Coordinates(); ok {
		t.Fatalf("expected missing longitude to report false")
	}
	gotLat, gotLon, ok := TeamLocation{Abbreviation: "LAL", Latitude: &lat, Longitude: &lon}.Coordinates()
	if !ok || gotLat != lat || gotLon != lon {
		t.Fatalf("unexpected coordinates %v,%v ok=%v", gotLat, gotLon, ok)
	}
}
