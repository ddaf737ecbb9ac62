package astronomy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/nba-lunar/internal/domain/apirequest"
	"github.com/riskibarqy/nba-lunar/internal/usecase"
)

func moonDescriptor() apirequest.Descriptor {
	return apirequest.New(apirequest.EndpointMoonPositions,
		apirequest.ParamLatitude, "38.775867",
		apirequest.ParamLongitude, "-84.39733",
		apirequest.ParamFromDate, "2021-01-01",
		apirequest.ParamToDate, "2021-12-31",
		apirequest.ParamTime, "00:00:00",
	)
}

func TestClientFetch_SendsAuthAndFixedParams(t *testing.T) {
	t.Parallel()

	var gotAuth, gotPath string
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		_, _ = w.Write([]byte(`{"data":{"rows":[]}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, AppID: "app", AppSecret: "secret", Timeout: time.Second})
	body, err := client.Fetch(context.Background(), moonDescriptor())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(body) != `{"data":{"rows":[]}}` {
		t.Fatalf("unexpected body %s", body)
	}
	if gotAuth != "Basic YXBwOnNlY3JldA==" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotPath != "/api/v2/bodies/positions/moon" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	want := map[string]string{
		"latitude":  "38.775867",
		"longitude": "-84.39733",
		"elevation": "0",
		"from_date": "2021-01-01",
		"to_date":   "2021-12-31",
		"time":      "00:00:00",
		"output":    "rows",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Fatalf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestClientFetch_Unauthorized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad credentials"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, AppID: "x", AppSecret: "y"})
	if _, err := client.Fetch(context.Background(), moonDescriptor()); err == nil {
		t.Fatalf("expected error on 401")
	}
}

func TestClientFetch_Timeout(t *testing.T) {
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
	if _, err := client.Fetch(context.Background(), moonDescriptor()); err == nil {
		t.Fatalf("expected timeout error")
	}
	if time.Since(started) > 2*time.Second {
		t.Fatalf("timeout was not enforced")
	}
}

func TestClientFetch_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1"})
	if _, err := client.Fetch(ctx, moonDescriptor()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestClientFetch_RejectsStatsEndpoint(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	_, err := client.Fetch(context.Background(), apirequest.New(apirequest.EndpointTeamDetails, apirequest.ParamTeamID, "1"))
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBasicAuth(t *testing.T) {
	t.Parallel()

	if got := BasicAuth(" app ", "secret"); got != "Basic YXBwOnNlY3JldA==" {
		t.Fatalf("unexpected header %q", got)
	}
}
