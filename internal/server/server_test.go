package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	charmlog "github.com/charmbracelet/log"

	"github.com/mkrale/upmeta/pkg/cache"
	"github.com/mkrale/upmeta/pkg/guess"
	"github.com/mkrale/upmeta/pkg/vcs"
)

func newTestServer() *Server {
	logger := charmlog.New(io.Discard)
	return New(logger, guess.Options{
		Net:   vcs.NetDenied,
		Cache: cache.NewNullCache(),
	})
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(newTestServer().Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if id := resp.Header.Get("X-Request-ID"); id == "" {
		t.Error("response should carry X-Request-ID")
	}
}

func TestRequestIDEchoed(t *testing.T) {
	srv := httptest.NewServer(newTestServer().Router())
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set("X-Request-ID", "my-id")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "my-id" {
		t.Errorf("X-Request-ID = %q, want my-id", got)
	}
}

func TestMetadataEndpoint(t *testing.T) {
	dir := t.TempDir()
	manifest := `{"name": "demo", "version": "1.0.0", "homepage": "https://demo.example.org"}`
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	srv := httptest.NewServer(newTestServer().Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/metadata?path=" + dir)
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body struct {
		Fields []struct {
			Field     string `json:"field"`
			Value     any    `json:"value"`
			Certainty string `json:"certainty"`
		} `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}

	got := map[string]any{}
	for _, f := range body.Fields {
		got[f.Field] = f.Value
	}
	if got["Name"] != "demo" {
		t.Errorf("Name = %v", got["Name"])
	}
	if got["Version"] != "1.0.0" {
		t.Errorf("Version = %v", got["Version"])
	}
	if got["Homepage"] != "https://demo.example.org" {
		t.Errorf("Homepage = %v", got["Homepage"])
	}
}

func TestMetadataMissingPath(t *testing.T) {
	srv := httptest.NewServer(newTestServer().Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/metadata")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestMetadataBadPath(t *testing.T) {
	srv := httptest.NewServer(newTestServer().Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/metadata?path=%2Ftmp%2Ffoo%00bar")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestMetadataNotADirectory(t *testing.T) {
	srv := httptest.NewServer(newTestServer().Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/metadata?path=/does/not/exist")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
