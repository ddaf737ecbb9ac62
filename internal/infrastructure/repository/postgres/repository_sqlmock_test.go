package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/nba-lunar/internal/domain/gamelog"
	"github.com/riskibarqy/nba-lunar/internal/domain/table"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sql expectations: %v", err)
		}
		_ = db.Close()
	})
	return sqlx.NewDb(db, "postgres"), mock
}

var moonTarget = table.Target{
	Name:       "moon_events",
	PrimaryKey: "moon_event_id",
	Headers:    []string{"moon_event_id", "game_id"},
}

func TestUpsertRepository_PersistCountsAddedAndSkipped(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT(*) FROM "moon_events"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec(`INSERT INTO "moon_events" ("moon_event_id", "game_id") VALUES ($1, $2), ($3, $4) ON CONFLICT ("moon_event_id") DO NOTHING`).
		WithArgs("a", "g1", "b", "null").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "moon_events" ("moon_event_id", "game_id") VALUES ($1, $2) ON CONFLICT ("moon_event_id") DO NOTHING`).
		WithArgs("c", "g2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT(*) FROM "moon_events"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectCommit()

	repo := NewUpsertRepository(db, 2)
	res, err := repo.Persist(context.Background(), moonTarget, []table.Row{
		{"a", "g1"}, {"b", "null"}, {"c", "g2"},
	})
	if err != nil {
		t.Fatalf("persist: %v", err)
	}
	if res.Added != 1 || res.Skipped != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestUpsertRepository_FailingChunkRollsBack(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT(*) FROM "moon_events"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "moon_events" ("moon_event_id", "game_id") VALUES ($1, $2) ON CONFLICT ("moon_event_id") DO NOTHING`).
		WithArgs("a", "g1").
		WillReturnError(errors.New("pq: invalid input syntax for type numeric"))
	mock.ExpectRollback()

	repo := NewUpsertRepository(db, 0)
	if _, err := repo.Persist(context.Background(), moonTarget, []table.Row{{"a", "g1"}}); err == nil {
		t.Fatalf("expected insert error")
	}
}

func TestUpsertRepository_ConnectionFailureReportsNothing(t *testing.T) {
	raw, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	mock.ExpectClose()
	if err := raw.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	repo := NewUpsertRepository(sqlx.NewDb(raw, "postgres"), 0)
	res, err := repo.Persist(context.Background(), moonTarget, []table.Row{{"a", "g1"}})
	if err == nil {
		t.Fatalf("expected connection error")
	}
	if res != (table.Result{}) {
		t.Fatalf("expected empty result on connection failure, got %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected no statements after close: %v", err)
	}
}

func TestUpsertRepository_RejectsMisalignedRowsWithoutTouchingDB(t *testing.T) {
	db, _ := newMockDB(t)

	repo := NewUpsertRepository(db, 0)
	if _, err := repo.Persist(context.Background(), moonTarget, []table.Row{{"only-key"}}); err == nil {
		t.Fatalf("expected misaligned row error")
	}
	if _, err := repo.Persist(context.Background(), table.Target{Name: "t", PrimaryKey: "id", Headers: []string{"x"}}, []table.Row{{1}}); err == nil {
		t.Fatalf("expected invalid target error")
	}
	if res, err := repo.Persist(context.Background(), moonTarget, nil); err != nil || res != (table.Result{}) {
		t.Fatalf("expected empty result for no rows, got %+v %v", res, err)
	}
}

func TestSourceRepository_ListGameMatchups(t *testing.T) {
	db, mock := newMockDB(t)

	date := time.Date(2021, 10, 19, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT DISTINCT game_id, matchup, game_date FROM team_game_logs WHERE game_id IS NOT NULL AND matchup IS NOT NULL AND game_date IS NOT NULL ORDER BY game_date, game_id, matchup`).
		WillReturnRows(sqlmock.NewRows([]string{"game_id", "matchup", "game_date"}).
			AddRow("0022100001", "GSW @ LAL", date).
			AddRow("0022100001", "LAL vs. GSW", date))

	got, err := NewSourceRepository(db).ListGameMatchups(context.Background())
	if err != nil {
		t.Fatalf("list matchups: %v", err)
	}
	if len(got) != 2 || got[1].Matchup != "LAL vs. GSW" || !got[0].GameDate.Equal(date) {
		t.Fatalf("unexpected matchups %+v", got)
	}
}

func TestSourceRepository_ListTeamIDsAndLocations(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT DISTINCT team_id::text FROM team_game_logs WHERE team_id IS NOT NULL ORDER BY team_id::text`).
		WillReturnRows(sqlmock.NewRows([]string{"team_id"}).AddRow("1610612744").AddRow("1610612747"))
	mock.ExpectQuery(`SELECT abbreviation, latitude, longitude FROM team_details WHERE abbreviation IS NOT NULL ORDER BY abbreviation`).
		WillReturnRows(sqlmock.NewRows([]string{"abbreviation", "latitude", "longitude"}).
			AddRow("GSW", nil, nil).
			AddRow("LAL", 34.043, -118.267))

	repo := NewSourceRepository(db)
	ids, err := repo.ListTeamIDs(context.Background())
	if err != nil {
		t.Fatalf("list team ids: %v", err)
	}
	if len(ids) != 2 || ids[1] != "1610612747" {
		t.Fatalf("unexpected ids %v", ids)
	}

	locations, err := repo.ListTeamLocations(context.Background())
	if err != nil {
		t.Fatalf("list locations: %v", err)
	}
	if _, _, ok := locations[0].Coordinates(); ok {
		t.Fatalf("expected GSW without coordinates")
	}
	if lat, lon, ok := locations[1].Coordinates(); !ok || lat != 34.043 || lon != -118.267 {
		t.Fatalf("unexpected LAL coordinates %v %v %v", lat, lon, ok)
	}
}

func TestLocationRepository_UpdateTeamLocations(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1`).
		WithArgs("team_details").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).
			AddRow("team_id").AddRow("abbreviation").AddRow("latitude").AddRow("longitude"))
	mock.ExpectExec(`UPDATE "team_details" SET "latitude" = $1, "longitude" = $2 WHERE "abbreviation" = $3`).
		WithArgs("34.043", "-118.267", "LAL").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "team_details" SET "latitude" = $1, "longitude" = $2 WHERE "abbreviation" = $3`).
		WithArgs("47.622", nil, "SEA").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	updated, err := NewLocationRepository(db).UpdateTeamLocations(context.Background(), []gamelog.ArenaLocation{
		{Abbreviation: "LAL", Columns: map[string]string{"latitude": "34.043", "longitude": "-118.267", "arena": "ignored"}},
		{Abbreviation: "SEA", Columns: map[string]string{"latitude": "47.622", "longitude": ""}},
		{Abbreviation: "XXX", Columns: map[string]string{"arena": "no shared columns"}},
	})
	if err != nil {
		t.Fatalf("update team locations: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected one updated row, got %d", updated)
	}
}

func TestExportRepository_ExportAll(t *testing.T) {
	db, mock := newMockDB(t)

	query, _, err := exportQuery()
	if err != nil {
		t.Fatalf("build export query: %v", err)
	}
	want := "SELECT pgl.*, tgl.*, td.*, me.* FROM player_game_logs pgl" +
		" FULL OUTER JOIN team_game_logs tgl ON pgl.team_id_game_id = tgl.team_id_game_id" +
		" FULL OUTER JOIN team_details td ON tgl.team_id = td.team_id" +
		" FULL OUTER JOIN moon_events me ON tgl.game_id = me.game_id"
	if query != want {
		t.Fatalf("unexpected export query:\nwant: %s\ngot:  %s", want, query)
	}

	mock.ExpectQuery(want).
		WillReturnRows(sqlmock.NewRows([]string{"game_id", "moon_event_id"}).
			AddRow("0022100001", "2021-10-19T00:00:00.000-01:00_34.043_-118.267").
			AddRow(nil, "2021-10-20T00:00:00.000-01:00_34.043_-118.267"))

	w := &recordingWriter{}
	count, err := NewExportRepository(db).ExportAll(context.Background(), w)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if count != 2 || len(w.rows) != 2 || w.header[1] != "moon_event_id" {
		t.Fatalf("unexpected export count=%d header=%v rows=%v", count, w.header, w.rows)
	}
	if w.rows[1][0] != nil {
		t.Fatalf("expected null game id from outer join, got %#v", w.rows[1][0])
	}
}

type recordingWriter struct {
	header []string
	rows   [][]any
}

func (w *recordingWriter) WriteHeader(columns []string) error {
	w.header = columns
	return nil
}

func (w *recordingWriter) WriteRow(values []any) error {
	w.rows = append(w.rows, values)
	return nil
}
