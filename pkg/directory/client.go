// Package directory consults external metadata directories (package
// registries such as crates.io and PyPI) to corroborate or supply
// additional datums. A directory behaves like any other guesser: it
// proposes annotated datums and the merge engine decides.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mkrale/upmeta/pkg/cache"
	"github.com/mkrale/upmeta/pkg/httputil"
)

var (
	// ErrNotFound is returned when a package does not exist in the directory.
	ErrNotFound = errors.New("package not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection
	// errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Client provides shared HTTP plumbing for directory lookups: response
// caching, retry with backoff and common headers.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	prefix  string
	ttl     time.Duration
	headers map[string]string
}

// NewClient creates a Client backed by the given cache. Keys are
// namespaced with prefix; pass nil headers when none are needed.
func NewClient(backend cache.Cache, prefix string, ttl time.Duration, headers map[string]string) *Client {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Client{
		http:    &http.Client{Timeout: httputil.RequestTimeout},
		cache:   backend,
		prefix:  prefix,
		ttl:     ttl,
		headers: headers,
	}
}

// GetJSON fetches url into v through the cache, retrying transient
// failures with backoff.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	key := c.prefix + url
	if data, hit, _ := c.cache.Get(ctx, key); hit {
		return json.Unmarshal(data, v)
	}

	var body []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		var err error
		body, err = c.fetch(ctx, url)
		return err
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return err
	}
	_ = c.cache.Set(ctx, key, body, c.ttl)
	return nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, httputil.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 500:
		return nil, httputil.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode))
	default:
		return nil, fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
