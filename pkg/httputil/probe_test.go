package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

func TestProbeURL(t *testing.T) {
	var sawHead atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			if r.Method == http.MethodHead {
				sawHead.Store(true)
			}
			w.WriteHeader(http.StatusOK)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		case "/no-head":
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	if !ProbeURL(ctx, srv.URL+"/ok") {
		t.Error("reachable URL should probe true")
	}
	if !sawHead.Load() {
		t.Error("probe should try HEAD first")
	}
	if ProbeURL(ctx, srv.URL+"/gone") {
		t.Error("404 should probe false")
	}
	if !ProbeURL(ctx, srv.URL+"/no-head") {
		t.Error("probe should fall back to GET when HEAD is rejected")
	}
	if ProbeURL(ctx, "http://127.0.0.1:1/nothing-here") {
		t.Error("connection failure should probe false")
	}
}

func TestResolveRedirect(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/old":
			http.Redirect(w, r, srv.URL+"/new", http.StatusMovedPermanently)
		case "/new":
			w.WriteHeader(http.StatusOK)
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	final, ok := ResolveRedirect(ctx, srv.URL+"/old")
	if !ok {
		t.Fatal("redirect should resolve")
	}
	if final != srv.URL+"/new" {
		t.Errorf("final = %q, want %q", final, srv.URL+"/new")
	}

	// A URL that does not redirect resolves to itself.
	final, ok = ResolveRedirect(ctx, srv.URL+"/new")
	if !ok || final != srv.URL+"/new" {
		t.Errorf("non-redirect resolve = %q, %v", final, ok)
	}

	if _, ok := ResolveRedirect(ctx, srv.URL+"/missing"); ok {
		t.Error("error status should not resolve")
	}
	if _, ok := ResolveRedirect(ctx, "http://127.0.0.1:1/x"); ok {
		t.Error("connection failure should not resolve")
	}
}

func TestPoolConcurrentUse(t *testing.T) {
	// Many concurrent submissions share the fixed pool without deadlock.
	ctx := context.Background()
	var wg sync.WaitGroup
	var ran atomic.Int32
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = submit(ctx, func() { ran.Add(1) })
		}()
	}
	wg.Wait()
	if got := ran.Load(); got != 32 {
		t.Errorf("ran = %d, want 32", got)
	}
}
