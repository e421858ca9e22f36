package httputil

import (
	"context"
	"net/http"
	"time"
)

// RequestTimeout bounds every network probe. Lookups that exceed it
// report "unresolved" instead of blocking the caller.
const RequestTimeout = 10 * time.Second

var probeClient = &http.Client{Timeout: RequestTimeout}

// ProbeURL reports whether url answers with a non-error status. It
// issues a HEAD request first and falls back to GET for servers that
// reject HEAD. Any transport failure or timeout reports false.
func ProbeURL(ctx context.Context, url string) bool {
	var ok bool
	err := submit(ctx, func() {
		ok = probe(ctx, url)
	})
	return err == nil && ok
}

// ResolveRedirect follows redirects from url and returns the final
// location. The second return value is false when the URL could not be
// resolved (bad URL, transport failure, error status); callers should
// keep their original URL in that case.
func ResolveRedirect(ctx context.Context, url string) (string, bool) {
	var (
		final string
		ok    bool
	)
	err := submit(ctx, func() {
		final, ok = resolve(ctx, url)
	})
	if err != nil || !ok {
		return "", false
	}
	return final, true
}

func probe(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	for _, method := range []string{http.MethodHead, http.MethodGet} {
		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return false
		}
		resp, err := probeClient.Do(req)
		if err != nil {
			return false
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusMethodNotAllowed {
			continue
		}
		return resp.StatusCode < 400
	}
	return false
}

func resolve(ctx context.Context, url string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false
	}
	resp, err := probeClient.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", false
	}
	return resp.Request.URL.String(), true
}
