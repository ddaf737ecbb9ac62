package apirequest

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// Descriptor identifies one outbound request. Two descriptors are equal when
// their Canonical forms are byte-equal, regardless of param insertion order.
type Descriptor struct {
	Endpoint Endpoint
	Params   map[string]string
}

func New(endpoint Endpoint, kv ...string) Descriptor {
	d := Descriptor{Endpoint: endpoint, Params: make(map[string]string, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		d.Params[kv[i]] = kv[i+1]
	}
	return d
}

func (d Descriptor) Param(name string) string {
	return d.Params[name]
}

// Canonical renders "<endpoint>_<k1>=<v1>&<k2>=<v2>" with params sorted by name
// and values query-escaped.
func (d Descriptor) Canonical() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	d.writeCanonical(buf)
	return buf.String()
}

// Digest is the hex SHA-256 of Canonical, used as the cache key.
func (d Descriptor) Digest() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	d.writeCanonical(buf)
	sum := sha256.Sum256(buf.B)
	return hex.EncodeToString(sum[:])
}

// Missing lists required params that are absent or blank, in the order the endpoint declares them.
func (d Descriptor) Missing() []string {
	spec, ok := Lookup(d.Endpoint)
	if !ok {
		return nil
	}
	var missing []string
	for _, name := range spec.Required {
		if strings.TrimSpace(d.Params[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

func (d Descriptor) String() string {
	return d.Canonical()
}

func (d Descriptor) writeCanonical(buf *bytebufferpool.ByteBuffer) {
	keys := make([]string, 0, len(d.Params))
	for k := range d.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	_, _ = buf.WriteString(string(d.Endpoint))
	_ = buf.WriteByte('_')
	for i, k := range keys {
		if i > 0 {
			_ = buf.WriteByte('&')
		}
		_, _ = buf.WriteString(url.QueryEscape(k))
		_ = buf.WriteByte('=')
		_, _ = buf.WriteString(url.QueryEscape(d.Params[k]))
	}
}
