package usecase

import (
	"context"
	"errors"

	"github.com/riskibarqy/nba-lunar/internal/domain/apirequest"
	"github.com/riskibarqy/nba-lunar/internal/platform/logging"
)

// Fetcher resolves a descriptor to a response body: from the response cache
// when present, otherwise with one network call through the endpoint's
// transport. Failures are logged and reported as (nil, false).
type Fetcher struct {
	cache      apirequest.ResponseCache
	transports map[apirequest.Source]apirequest.Transport
	logger     *logging.Logger
}

func NewFetcher(cache apirequest.ResponseCache, transports map[apirequest.Source]apirequest.Transport, logger *logging.Logger) *Fetcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Fetcher{
		cache:      cache,
		transports: transports,
		logger:     logger.Named("fetcher"),
	}
}

func (f *Fetcher) Fetch(ctx context.Context, d apirequest.Descriptor) ([]byte, bool) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Fetcher.Fetch")
	defer span.End()

	spec, ok := apirequest.Lookup(d.Endpoint)
	if !ok {
		f.logger.WarnContext(ctx, "unknown endpoint", "endpoint", d.Endpoint)
		return nil, false
	}
	if missing := d.Missing(); len(missing) > 0 {
		f.logger.WarnContext(ctx, "descriptor missing required params", "endpoint", d.Endpoint, "missing", missing)
		return nil, false
	}

	if f.cache.Exists(ctx, d) {
		body, err := f.cache.Load(ctx, d)
		if err == nil {
			f.logger.DebugContext(ctx, "cache hit", "request", d.String())
			return body, true
		}
		if errors.Is(err, apirequest.ErrCacheCorrupt) {
			f.logger.WarnContext(ctx, "corrupt cache entry, refetching", "request", d.String(), "error", err)
		} else {
			f.logger.WarnContext(ctx, "cache read failed, refetching", "request", d.String(), "error", err)
		}
	}

	transport, ok := f.transports[spec.Source]
	if !ok || transport == nil {
		f.logger.ErrorContext(ctx, "no transport configured", "source", spec.Source, "endpoint", d.Endpoint)
		return nil, false
	}

	body, err := transport.Fetch(ctx, d)
	if err != nil {
		f.logger.ErrorContext(ctx, "fetch failed", "request", d.String(), "error", err)
		return nil, false
	}

	if err := f.cache.Store(ctx, d, body); err != nil {
		f.logger.WarnContext(ctx, "store response in cache failed", "request", d.String(), "error", err)
	}
	f.logger.InfoContext(ctx, "fetched", "endpoint", d.Endpoint, "bytes", len(body))
	return body, true
}
