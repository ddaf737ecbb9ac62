package astronomy

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/nba-lunar/internal/domain/apirequest"
	"github.com/riskibarqy/nba-lunar/internal/platform/logging"
	"github.com/riskibarqy/nba-lunar/internal/platform/resilience"
	"github.com/riskibarqy/nba-lunar/internal/usecase"
)

const (
	defaultBaseURL   = "https://api.astronomyapi.com"
	defaultTimeout   = 10 * time.Second
	positionsPath    = "/api/v2/"
	defaultElevation = "0"
	defaultTime      = "00:00:00"
	outputRows       = "rows"
	maxResponseBytes = 16 << 20
)

var errAstronomyTransient = crerr.New("astronomy api transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	AppID          string
	AppSecret      string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches body positions from api.astronomyapi.com with Basic auth.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	authHeader string
	timeout    time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

var _ apirequest.Transport = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("astronomy")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "nba-lunar",
			MaxResponseBodySize: maxResponseBytes,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		authHeader: BasicAuth(cfg.AppID, cfg.AppSecret),
		timeout:    timeout,
		logger:     logger,
		breaker: resilience.NewNamedCircuitBreaker("astronomy", cfg.CircuitBreaker, func(name string, from, to resilience.CircuitState) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
		}),
	}
}

// BasicAuth renders the Authorization header value for id:secret.
func BasicAuth(appID, appSecret string) string {
	userpass := strings.TrimSpace(appID) + ":" + strings.TrimSpace(appSecret)
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(userpass))
}

// Fetch performs one GET of the positions endpoint for d.
func (c *Client) Fetch(ctx context.Context, d apirequest.Descriptor) ([]byte, error) {
	spec, ok := apirequest.Lookup(d.Endpoint)
	if !ok || spec.Source != apirequest.SourceAstronomy {
		return nil, fmt.Errorf("%w: endpoint %q is not served by the astronomy api", usecase.ErrInvalidInput, d.Endpoint)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullURL := c.BuildURL(spec, d)
	var body []byte
	err := c.breaker.Execute(func() error {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		body = raw
		return reqErr
	}, isAstronomyCircuitFailure)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "astronomy circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("%w: astronomy api is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

// BuildURL renders the request URL. Elevation and output format are fixed;
// time defaults to midnight when the descriptor does not carry one.
func (c *Client) BuildURL(spec apirequest.EndpointSpec, d apirequest.Descriptor) string {
	values := url.Values{}
	for name, value := range d.Params {
		values.Set(spec.QueryName(name), value)
	}
	values.Set("elevation", defaultElevation)
	values.Set("output", outputRows)
	if values.Get("time") == "" {
		values.Set("time", defaultTime)
	}
	return c.baseURL + positionsPath + spec.Resource + "?" + values.Encode()
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAuthorization, c.authHeader)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	started := time.Now()
	if err := c.httpClient.DoTimeout(req, resp, timeout); err != nil {
		if stderrors.Is(err, fasthttp.ErrTimeout) {
			return nil, fmt.Errorf("%w: request timed out after %s", errAstronomyTransient, timeout)
		}
		return nil, fmt.Errorf("%w: send request: %v", errAstronomyTransient, err)
	}

	status := resp.StatusCode()
	raw := append([]byte(nil), resp.Body()...)
	if status < 200 || status >= 300 {
		if isRetryableStatus(status) {
			return nil, fmt.Errorf("%w: status=%d body=%s", errAstronomyTransient, status, abbreviateBody(raw))
		}
		return nil, fmt.Errorf("astronomy api status=%d body=%s", status, abbreviateBody(raw))
	}

	c.logger.DebugContext(ctx, "astronomy response", "url", fullURL, "status", status, "bytes", len(raw), "elapsed", time.Since(started))
	return raw, nil
}

func isAstronomyCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errAstronomyTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
