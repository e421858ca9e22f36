package guess

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mkrale/upmeta/pkg/upstream"
)

// Cargo reads the [package] section of Cargo.toml. Values there are
// stated by the project itself, so everything merges at certain.
type Cargo struct{}

func (*Cargo) Name() string { return "cargo" }

type cargoFile struct {
	Package struct {
		Name          string   `toml:"name"`
		Version       string   `toml:"version"`
		Description   string   `toml:"description"`
		Homepage      string   `toml:"homepage"`
		Repository    string   `toml:"repository"`
		Documentation string   `toml:"documentation"`
		License       string   `toml:"license"`
		Keywords      []string `toml:"keywords"`
		Authors       []string `toml:"authors"`
	} `toml:"package"`
}

func (g *Cargo) Guess(_ context.Context, dir string) ([]upstream.Datum, error) {
	data, err := os.ReadFile(filepath.Join(dir, "Cargo.toml"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cargo cargoFile
	if err := toml.Unmarshal(data, &cargo); err != nil {
		return nil, err
	}

	origin := upstream.Origin("./Cargo.toml")
	annotate := func(d upstream.Datum) upstream.Datum {
		return d.With(upstream.CertaintyCertain, origin)
	}

	pkg := cargo.Package
	var out []upstream.Datum
	if pkg.Name != "" {
		out = append(out,
			annotate(upstream.NewText(upstream.FieldName, pkg.Name)),
			annotate(upstream.NewText(upstream.FieldCargoCrate, pkg.Name)),
		)
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
	if pkg.Repository != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldRepository, pkg.Repository)))
	}
	if pkg.Documentation != "" {
		out = append(out, annotate(upstream.NewList(upstream.FieldDocumentation, []string{pkg.Documentation})))
	}
	if pkg.License != "" {
		out = append(out, annotate(upstream.NewText(upstream.FieldLicense, pkg.License)))
	}
	if len(pkg.Keywords) > 0 {
		out = append(out, annotate(upstream.NewList(upstream.FieldKeywords, pkg.Keywords)))
	}
	if len(pkg.Authors) > 0 {
		people := make([]upstream.Person, 0, len(pkg.Authors))
		for _, a := range pkg.Authors {
			people = append(people, upstream.ParsePerson(a))
		}
		out = append(out, annotate(upstream.NewPeople(upstream.FieldAuthor, people)))
	}
	return out, nil
}
