package nbastats

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/nba-lunar/internal/domain/apirequest"
	"github.com/riskibarqy/nba-lunar/internal/platform/logging"
	"github.com/riskibarqy/nba-lunar/internal/platform/resilience"
	"github.com/riskibarqy/nba-lunar/internal/usecase"
)

const (
	defaultBaseURL   = "https://stats.nba.com/stats"
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 64 << 20
	userAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var errStatsTransient = crerr.New("nba stats transient failure")

// leagueScoped resources are filtered to the NBA league id.
var leagueScoped = map[string]bool{
	"PlayerGameLogs": true,
	"TeamGameLogs":   true,
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches raw stats.nba.com responses. Each Fetch is a single attempt.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

var _ apirequest.Transport = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("nbastats")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
		breaker: resilience.NewNamedCircuitBreaker("nbastats", cfg.CircuitBreaker, func(name string, from, to resilience.CircuitState) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
		}),
	}
}

// Fetch performs one GET for d and returns the raw body on a 2xx response.
func (c *Client) Fetch(ctx context.Context, d apirequest.Descriptor) ([]byte, error) {
	spec, ok := apirequest.Lookup(d.Endpoint)
	if !ok || spec.Source != apirequest.SourceNBAStats {
		return nil, fmt.Errorf("%w: endpoint %q is not served by stats.nba.com", usecase.ErrInvalidInput, d.Endpoint)
	}

	fullURL := c.BuildURL(spec, d)
	var body []byte
	err := c.breaker.Execute(func() error {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		body = raw
		return reqErr
	}, isStatsCircuitFailure)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "nba stats circuit breaker rejected request", "endpoint", d.Endpoint, "state", c.breaker.State())
		return nil, fmt.Errorf("%w: nba stats is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

// BuildURL renders the request URL for d using the upstream param names.
func (c *Client) BuildURL(spec apirequest.EndpointSpec, d apirequest.Descriptor) string {
	values := url.Values{}
	if leagueScoped[spec.Resource] {
		values.Set("LeagueID", "00")
	}
	for name, value := range d.Params {
		values.Set(spec.QueryName(name), value)
	}

	fullURL := c.baseURL + "/" + spec.Resource
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	return fullURL
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("Origin", "https://www.nba.com")
	req.Header.Set("User-Agent", userAgent)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errStatsTransient, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errStatsTransient, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if isRetryableStatus(resp.StatusCode) {
			return nil, fmt.Errorf("%w: status=%d body=%s", errStatsTransient, resp.StatusCode, abbreviateBody(raw))
		}
		return nil, fmt.Errorf("nba stats status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	}

	c.logger.DebugContext(ctx, "nba stats response", "url", fullURL, "status", resp.StatusCode, "bytes", len(raw), "elapsed", time.Since(started))
	return raw, nil
}

func isStatsCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errStatsTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
