package apirequest

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

// ErrCacheCorrupt is matched by errors.Is for every CacheCorruptError.
var ErrCacheCorrupt = crerr.New("cached response is corrupt")

// CacheCorruptError reports a stored entry whose bytes are not valid JSON.
type CacheCorruptError struct {
	Digest string
	Cause  error
}

func NewCacheCorruptError(digest string, cause error) *CacheCorruptError {
	return &CacheCorruptError{Digest: digest, Cause: cause}
}

func (e *CacheCorruptError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("cache entry %s: %v", e.Digest, ErrCacheCorrupt)
	}
	return fmt.Sprintf("cache entry %s: %v: %v", e.Digest, ErrCacheCorrupt, e.Cause)
}

func (e *CacheCorruptError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrCacheCorrupt}
	}
	return []error{ErrCacheCorrupt, e.Cause}
}
