package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mkrale/upmeta/pkg/upstream"
)

func TestNormalizePackageName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Requests", "requests"},
		{"zope.interface", "zope-interface"},
		{"my_package", "my-package"},
		{"  Flask  ", "flask"},
		{"already-normal", "already-normal"},
	}
	for _, tt := range tests {
		if got := NormalizePackageName(tt.in); got != tt.want {
			t.Errorf("NormalizePackageName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

const pypiFixture = `{
  "info": {
    "name": "requests",
    "version": "2.32.3",
    "summary": "Python HTTP for Humans.",
    "home_page": "https://requests.readthedocs.io",
    "license": "Apache-2.0",
    "author": "Kenneth Reitz",
    "author_email": "me@kennethreitz.org",
    "project_urls": {
      "Source": "https://github.com/psf/requests",
      "Documentation": "https://requests.readthedocs.io",
      "Bug Tracker": "https://github.com/psf/requests/issues"
    }
  }
}`

func TestPyPILookup(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(pypiFixture))
	}))
	defer srv.Close()

	p := NewPyPI(nil, time.Hour)
	p.baseURL = srv.URL

	// The package name is normalized before hitting the API.
	data, err := p.Lookup(context.Background(), "Requests")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if gotPath != "/requests/json" {
		t.Errorf("path = %q, want /requests/json", gotPath)
	}

	got := map[upstream.Field]upstream.Datum{}
	for _, d := range data {
		got[d.Field] = d
		if d.Certainty != upstream.CertaintyConfident {
			t.Errorf("%s certainty = %v, want confident", d.Field, d.Certainty)
		}
	}

	checks := map[upstream.Field]string{
		upstream.FieldName:        "requests",
		upstream.FieldVersion:     "2.32.3",
		upstream.FieldSummary:     "Python HTTP for Humans.",
		upstream.FieldHomepage:    "https://requests.readthedocs.io",
		upstream.FieldLicense:     "Apache-2.0",
		upstream.FieldRepository:  "https://github.com/psf/requests",
		upstream.FieldBugDatabase: "https://github.com/psf/requests/issues",
	}
	for f, want := range checks {
		d, ok := got[f]
		if !ok {
			t.Errorf("missing field %s", f)
			continue
		}
		if d.Text() != want {
			t.Errorf("%s = %q, want %q", f, d.Text(), want)
		}
	}

	author, ok := got[upstream.FieldAuthor]
	if !ok {
		t.Fatal("missing Author")
	}
	people := author.People()
	if len(people) != 1 || people[0].Name != "Kenneth Reitz" || people[0].Email != "me@kennethreitz.org" {
		t.Errorf("Author = %+v", people)
	}
}

func TestPyPIRepoLabelPreference(t *testing.T) {
	// "Repository" beats "Source" when both are present.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"info": {"name": "x", "project_urls": {
			"Source": "https://example.org/source",
			"Repository": "https://example.org/repo"
		}}}`))
	}))
	defer srv.Close()

	p := NewPyPI(nil, time.Hour)
	p.baseURL = srv.URL

	data, err := p.Lookup(context.Background(), "x")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	for _, d := range data {
		if d.Field == upstream.FieldRepository && d.Text() != "https://example.org/repo" {
			t.Errorf("Repository = %q", d.Text())
		}
	}
}
