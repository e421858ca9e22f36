package guess

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mkrale/upmeta/pkg/upstream"
)

// PackageJSON reads npm's package.json. Several fields there accept
// both a shorthand string and a structured object; both notations are
// handled.
type PackageJSON struct{}

func (*PackageJSON) Name() string { return "package.json" }

type packageJSONFile struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description string          `json:"description"`
	Homepage    string          `json:"homepage"`
	Repository  json.RawMessage `json:"repository"`
	Bugs        json.RawMessage `json:"bugs"`
	Author      json.RawMessage `json:"author"`
	License     string          `json:"license"`
	Keywords    []string        `json:"keywords"`
}

func (g *PackageJSON) Guess(_ context.Context, dir string) ([]upstream.Datum, error) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var pkg packageJSONFile
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}

	origin := upstream.Origin("./package.json")
	annotate := func(d upstream.Datum) upstream.Datum {
		return d.With(upstream.CertaintyCertain, origin)
	}

	var out []upstream.Datum
	if pkg.Name != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldName, pkg.Name)))
	}
	if pkg.Version != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldVersion, pkg.Version)))
	}
	if pkg.Description != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldSummary, pkg.Description)))
	}
	if pkg.Homepage != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldHomepage, pkg.Homepage)))
	}
	if pkg.License != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldLicense, pkg.License)))
	}
	if len(pkg.Keywords) > 0 {
		out = append(out, annotate(upstream.NewList(upstream.FieldKeywords, pkg.Keywords)))
	}
	if repo := stringOrURLField(pkg.Repository); repo != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldRepository, repo)))
	}
	if bugs := stringOrURLField(pkg.Bugs); bugs != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldBugDatabase, bugs)))
	}
	if person, ok := personField(pkg.Author); ok {
		out = append(out, annotate(upstream.NewPeople(upstream.FieldAuthor, []upstream.Person{person})))
	}
	return out, nil
}

// stringOrURLField decodes either "https://..." or {"url": "https://..."}.
func stringOrURLField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var obj struct {
		URL string `json:"url"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		return obj.URL
	}
	return ""
}

// personField decodes either "Name <email>" or {"name": ..., "email": ..., "url": ...}.
func personField(raw json.RawMessage) (upstream.Person, bool) {
	if len(raw) == 0 {
		return upstream.Person{}, false
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if s == "" {
			return upstream.Person{}, false
		}
		return upstream.ParsePerson(s), true
	}
	var p upstream.Person
	if json.Unmarshal(raw, &p) == nil && (p.Name != "" || p.Email != "" || p.URL != "") {
		return p, true
	}
	return upstream.Person{}, false
}
