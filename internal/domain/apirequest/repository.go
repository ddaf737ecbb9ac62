package apirequest

import "context"

// ResponseCache is the durable, append-only store of raw response bodies.
type ResponseCache interface {
	Exists(ctx context.Context, d Descriptor) bool
	Load(ctx context.Context, d Descriptor) ([]byte, error)
	Store(ctx context.Context, d Descriptor, body []byte) error
}

// Transport performs exactly one network call for d. Implementations bound
// the call with a timeout and never retry.
type Transport interface {
	Fetch(ctx context.Context, d Descriptor) ([]byte, error)
}
