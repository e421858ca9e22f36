package directory

import (
	"context"
	"strings"
	"time"

	"github.com/mkrale/upmeta/pkg/cache"
	"github.com/mkrale/upmeta/pkg/upstream"
)

// PyPI looks up package metadata on pypi.org.
type PyPI struct {
	client  *Client
	baseURL string
}

// NewPyPI creates a PyPI directory with the given cache backend.
func NewPyPI(backend cache.Cache, ttl time.Duration) *PyPI {
	return &PyPI{
		client:  NewClient(backend, "pypi:", ttl, nil),
		baseURL: "https://pypi.org/pypi",
	}
}

// Name identifies this directory in origins and logs.
func (p *PyPI) Name() string { return "pypi" }

// NormalizePackageName applies PEP 503 normalization (lowercase,
// underscores and dots to hyphens).
func NormalizePackageName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "-")
	return strings.ReplaceAll(name, ".", "-")
}

type pypiResponse struct {
	Info struct {
		Name        string            `json:"name"`
		Version     string            `json:"version"`
		Summary     string            `json:"summary"`
		HomePage    string            `json:"home_page"`
		License     string            `json:"license"`
		Author      string            `json:"author"`
		AuthorEmail string            `json:"author_email"`
		ProjectURLs map[string]string `json:"project_urls"`
	} `json:"info"`
}

// Project URL labels that point at the repository, in preference order.
var pypiRepoLabels = []string{"Repository", "Source", "Source Code", "Code"}

// Lookup fetches the package record and converts it to candidate
// datums at confident certainty.
func (p *PyPI) Lookup(ctx context.Context, pkg string) ([]upstream.Datum, error) {
	pkg = NormalizePackageName(pkg)

	var resp pypiResponse
	if err := p.client.GetJSON(ctx, p.baseURL+"/"+pkg+"/json", &resp); err != nil {
		return nil, err
	}

	origin := upstream.Origin(p.Name())
	annotate := func(d upstream.Datum) upstream.Datum {
		return d.With(upstream.CertaintyConfident, origin)
	}

	var out []upstream.Datum
	info := resp.Info
	if info.Name != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldName, info.Name)))
	}
	if info.Version != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldVersion, info.Version)))
	}
	if info.Summary != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldSummary, info.Summary)))
	}
	if info.HomePage != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldHomepage, info.HomePage)))
	}
	if info.License != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldLicense, info.License)))
	}
	if info.Author != "" || info.AuthorEmail != "" {
		person := upstream.Person{Name: info.Author, Email: info.AuthorEmail}
		out = append(out, annotate(upstream.NewPeople(upstream.FieldAuthor, []upstream.Person{person})))
	}
	for _, label := range pypiRepoLabels {
		if u, ok := info.ProjectURLs[label]; ok && u != "" {
			out = append(out, annotate(upstream.NewText(upstream.FieldRepository, u)))
			break
		}
	}
	if u, ok := info.ProjectURLs["Documentation"]; ok && u != "" {
		out = append(out, annotate(upstream.NewList(upstream.FieldDocumentation, []string{u})))
	}
	if u, ok := info.ProjectURLs["Bug Tracker"]; ok && u != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldBugDatabase, u)))
	}
	return out, nil
}
