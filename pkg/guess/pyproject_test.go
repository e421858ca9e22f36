package guess

import (
	"context"
	"testing"

	"github.com/mkrale/upmeta/pkg/upstream"
)

func TestPyprojectPEP621(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pyproject.toml", `
[project]
name = "httpx"
version = "0.28.1"
description = "The next generation HTTP client."
license = {text = "BSD-3-Clause"}
keywords = ["http", "client"]
authors = [{name = "Tom Christie", email = "tom@tomchristie.com"}]

[project.urls]
Homepage = "https://www.python-httpx.org"
Source = "https://github.com/encode/httpx"
Documentation = "https://www.python-httpx.org/docs"
"Bug Tracker" = "https://github.com/encode/httpx/issues"
`)

	data, err := (&Pyproject{}).Guess(context.Background(), dir)
	if err != nil {
		t.Fatalf("Guess error: %v", err)
	}

	got := byField(data)
	checks := map[upstream.Field]string{
		upstream.FieldName:        "httpx",
		upstream.FieldVersion:     "0.28.1",
		upstream.FieldSummary:     "The next generation HTTP client.",
		upstream.FieldLicense:     "BSD-3-Clause",
		upstream.FieldHomepage:    "https://www.python-httpx.org",
		upstream.FieldRepository:  "https://github.com/encode/httpx",
		upstream.FieldBugDatabase: "https://github.com/encode/httpx/issues",
	}
	for f, want := range checks {
		if d, ok := got[f]; !ok || d.Text() != want {
			t.Errorf("%s = %q, want %q", f, d.Text(), want)
		}
	}

	authors := got[upstream.FieldAuthor].People()
	if len(authors) != 1 || authors[0].Name != "Tom Christie" {
		t.Errorf("Author = %+v", authors)
	}
	docs := got[upstream.FieldDocumentation].List()
	if len(docs) != 1 || docs[0] != "https://www.python-httpx.org/docs" {
		t.Errorf("Documentation = %v", docs)
	}
}

func TestPyprojectPoetryFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pyproject.toml", `
[tool.poetry]
name = "poetry-proj"
version = "2.1.0"
description = "Managed by poetry"
homepage = "https://poetry.example.org"
repository = "https://github.com/u/poetry-proj"
license = "MIT"
authors = ["Jane Doe <jane@example.org>"]
`)

	data, err := (&Pyproject{}).Guess(context.Background(), dir)
	if err != nil {
		t.Fatalf("Guess error: %v", err)
	}

	got := byField(data)
	checks := map[upstream.Field]string{
		upstream.FieldName:       "poetry-proj",
		upstream.FieldVersion:    "2.1.0",
		upstream.FieldSummary:    "Managed by poetry",
		upstream.FieldHomepage:   "https://poetry.example.org",
		upstream.FieldRepository: "https://github.com/u/poetry-proj",
		upstream.FieldLicense:    "MIT",
	}
	for f, want := range checks {
		if d, ok := got[f]; !ok || d.Text() != want {
			t.Errorf("%s = %q, want %q", f, d.Text(), want)
		}
	}

	authors := got[upstream.FieldAuthor].People()
	if len(authors) != 1 || authors[0].Email != "jane@example.org" {
		t.Errorf("Author = %+v", authors)
	}
}

func TestPyprojectStringLicense(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pyproject.toml", `
[project]
name = "x"
license = "Apache-2.0"
`)
	data, err := (&Pyproject{}).Guess(context.Background(), dir)
	if err != nil {
		t.Fatalf("Guess error: %v", err)
	}
	if d := byField(data)[upstream.FieldLicense]; d.Text() != "Apache-2.0" {
		t.Errorf("License = %q", d.Text())
	}
}
