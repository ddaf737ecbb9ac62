package table

import "testing"

func TestTarget_Validate(t *testing.T) {
	t.Parallel()

	if err := MoonEvents.Validate(); err != nil {
		t.Fatalf("moon events target should be valid: %v", err)
	}
	if len(MoonEvents.Headers) != 17 {
		t.Fatalf("expected 17 moon headers, got %d", len(MoonEvents.Headers))
	}
	if err := PlayerGameLogs.Validate(); err == nil {
		t.Fatalf("expected error for target without headers")
	}
	withHeaders := PlayerGameLogs.WithHeaders([]string{"player_id", "game_id", "player_id_game_id"})
	if err := withHeaders.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(PlayerGameLogs.Headers) != 0 {
		t.Fatalf("WithHeaders must not mutate the shared target")
	}
	if err := TeamDetails.WithHeaders([]string{"abbreviation"}).Validate(); err == nil {
		t.Fatalf("expected error when primary key is not among headers")
	}
}
