package directory

import (
	"context"
	"time"

	"github.com/mkrale/upmeta/pkg/cache"
	"github.com/mkrale/upmeta/pkg/upstream"
)

// Crates looks up crate metadata on crates.io.
//
// crates.io requires a User-Agent header; the client sets one.
type Crates struct {
	client  *Client
	baseURL string
}

// NewCrates creates a crates.io directory with the given cache backend.
func NewCrates(backend cache.Cache, ttl time.Duration) *Crates {
	headers := map[string]string{
		"User-Agent": "upmeta/1.0 (https://github.com/mkrale/upmeta)",
	}
	return &Crates{
		client:  NewClient(backend, "crates:", ttl, headers),
		baseURL: "https://crates.io/api/v1",
	}
}

// Name identifies this directory in origins and logs.
func (c *Crates) Name() string { return "crates.io" }

type cratesResponse struct {
	Crate struct {
		Name          string `json:"name"`
		MaxVersion    string `json:"max_version"`
		Description   string `json:"description"`
		Homepage      string `json:"homepage"`
		Documentation string `json:"documentation"`
		Repository    string `json:"repository"`
	} `json:"crate"`
}

// Lookup fetches the crate record and converts it to candidate datums.
// Registry data is maintained but can lag the project itself, so
// everything merges at confident, not certain.
func (c *Crates) Lookup(ctx context.Context, crate string) ([]upstream.Datum, error) {
	var resp cratesResponse
	if err := c.client.GetJSON(ctx, c.baseURL+"/crates/"+crate, &resp); err != nil {
		return nil, err
	}

	origin := upstream.Origin(c.Name())
	annotate := func(d upstream.Datum) upstream.Datum {
		return d.With(upstream.CertaintyConfident, origin)
	}

	var out []upstream.Datum
	info := resp.Crate
	if info.Name != "" {
		out = append(out,
			annotate(upstream.NewText(upstream.FieldCargoCrate, info.Name)),
			annotate(upstream.NewText(upstream.FieldName, info.Name)),
		)
	}
	if info.MaxVersion != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldVersion, info.MaxVersion)))
	}
	if info.Description != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldSummary, info.Description)))
	}
	if info.Homepage != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldHomepage, info.Homepage)))
	}
	if info.Documentation != "" {
		out = append(out, annotate(upstream.NewList(upstream.FieldDocumentation, []string{info.Documentation})))
	}
	if info.Repository != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldRepository, info.Repository)))
	}
	return out, nil
}
