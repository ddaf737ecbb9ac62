package nbastats

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/nba-lunar/internal/domain/apirequest"
	"github.com/riskibarqy/nba-lunar/internal/platform/resilience"
	"github.com/riskibarqy/nba-lunar/internal/usecase"
)

func TestClientFetch_MapsParamsAndHeaders(t *testing.T) {
	t.Parallel()

	var gotPath, gotSeason, gotLeague, gotReferer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSeason = r.URL.Query().Get("SeasonNullable")
		gotLeague = r.URL.Query().Get("LeagueID")
		gotReferer = r.Header.Get("Referer")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultSets":[{"name":"PlayerGameLogs","headers":[],"rowSet":[]}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Timeout: time.Second})
	body, err := client.Fetch(context.Background(), apirequest.New(apirequest.EndpointPlayerGameLogs, apirequest.ParamSeason, "2021-22"))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(body) == 0 {
		t.Fatalf("expected body")
	}
	if gotPath != "/PlayerGameLogs" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotSeason != "2021-22" || gotLeague != "00" {
		t.Fatalf("unexpected query season=%q league=%q", gotSeason, gotLeague)
	}
	if gotReferer != "https://www.nba.com/" {
		t.Fatalf("unexpected referer %q", gotReferer)
	}
}

func TestClientFetch_TeamDetailsQuery(t *testing.T) {
	t.Parallel()

	var gotTeamID string
	var hasLeague bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTeamID = r.URL.Query().Get("TeamID")
		hasLeague = r.URL.Query().Has("LeagueID")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	if _, err := client.Fetch(context.Background(), apirequest.New(apirequest.EndpointTeamDetails, apirequest.ParamTeamID, "1610612747")); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotTeamID != "1610612747" || hasLeague {
		t.Fatalf("unexpected query team=%q league=%v", gotTeamID, hasLeague)
	}
}

func TestClientFetch_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad season"))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	if _, err := client.Fetch(context.Background(), apirequest.New(apirequest.EndpointTeamGameLogs, apirequest.ParamSeason, "1900-01")); err == nil {
		t.Fatalf("expected error on 400")
	}
}

func TestClientFetch_TimeoutIsBounded(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(ClientConfig{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	started := time.Now()
	_, err := client.Fetch(context.Background(), apirequest.New(apirequest.EndpointTeamGameLogs, apirequest.ParamSeason, "2021-22"))
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if time.Since(started) > 2*time.Second {
		t.Fatalf("timeout was not enforced")
	}
}

func TestClientFetch_CircuitOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
	d := apirequest.New(apirequest.EndpointTeamGameLogs, apirequest.ParamSeason, "2021-22")

	for i := 0; i < 2; i++ {
		if _, err := client.Fetch(context.Background(), d); err == nil {
			t.Fatalf("expected upstream error")
		}
	}
	_, err := client.Fetch(context.Background(), d)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable once open, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected breaker to stop the third call, got %d upstream calls", got)
	}
}

func TestClientFetch_RejectsForeignEndpoint(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1"})
	_, err := client.Fetch(context.Background(), apirequest.New(apirequest.EndpointMoonPositions))
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
