package guess

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mkrale/upmeta/pkg/upstream"
)

// Pyproject reads pyproject.toml, preferring PEP 621 [project] data and
// falling back to the legacy [tool.poetry] table.
type Pyproject struct{}

func (*Pyproject) Name() string { return "pyproject" }

type pyprojectFile struct {
	Project struct {
		Name        string `toml:"name"`
		Version     string `toml:"version"`
		Description string `toml:"description"`
		License     any    `toml:"license"`
		Authors     []struct {
			Name  string `toml:"name"`
			Email string `toml:"email"`
		} `toml:"authors"`
		Keywords []string          `toml:"keywords"`
		URLs     map[string]string `toml:"urls"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name          string   `toml:"name"`
			Version       string   `toml:"version"`
			Description   string   `toml:"description"`
			Homepage      string   `toml:"homepage"`
			Repository    string   `toml:"repository"`
			Documentation string   `toml:"documentation"`
			License       string   `toml:"license"`
			Keywords      []string `toml:"keywords"`
			Authors       []string `toml:"authors"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func (g *Pyproject) Guess(_ context.Context, dir string) ([]upstream.Datum, error) {
	data, err := os.ReadFile(filepath.Join(dir, "pyproject.toml"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var py pyprojectFile
	if err := toml.Unmarshal(data, &py); err != nil {
		return nil, err
	}

	origin := upstream.Origin("./pyproject.toml")
	annotate := func(d upstream.Datum) upstream.Datum {
		return d.With(upstream.CertaintyCertain, origin)
	}

	var out []upstream.Datum
	emitText := func(f upstream.Field, v string) {
		if v != "" {
			out = append(out, annotate(upstream.NewText(f, v)))
		}
	}

	project := py.Project
	emitText(upstream.FieldName, project.Name)
	emitText(upstream.FieldVersion, project.Version)
	emitText(upstream.FieldSummary, project.Description)
	emitText(upstream.FieldLicense, licenseString(project.License))
	if len(project.Keywords) > 0 {
		out = append(out, annotate(upstream.NewList(upstream.FieldKeywords, project.Keywords)))
	}
	if len(project.Authors) > 0 {
		people := make([]upstream.Person, 0, len(project.Authors))
		for _, a := range project.Authors {
			people = append(people, upstream.Person{Name: a.Name, Email: a.Email})
		}
		out = append(out, annotate(upstream.NewPeople(upstream.FieldAuthor, people)))
	}
	emitText(upstream.FieldHomepage, project.URLs["Homepage"])
	for _, label := range []string{"Repository", "Source", "Source Code"} {
		if u := project.URLs[label]; u != "" {
			emitText(upstream.FieldRepository, u)
			break
		}
	}
	if u := project.URLs["Documentation"]; u != "" {
		out = append(out, annotate(upstream.NewList(upstream.FieldDocumentation, []string{u})))
	}
	emitText(upstream.FieldBugDatabase, project.URLs["Bug Tracker"])

	poetry := py.Tool.Poetry
	if project.Name == "" {
		emitText(upstream.FieldName, poetry.Name)
	}
	if project.Version == "" {
		emitText(upstream.FieldVersion, poetry.Version)
	}
	if project.Description == "" {
		emitText(upstream.FieldSummary, poetry.Description)
	}
	emitText(upstream.FieldHomepage, poetry.Homepage)
	emitText(upstream.FieldRepository, poetry.Repository)
	if poetry.Documentation != "" {
		out = append(out, annotate(upstream.NewList(upstream.FieldDocumentation, []string{poetry.Documentation})))
	}
	if project.License == nil {
		emitText(upstream.FieldLicense, poetry.License)
	}
	if len(project.Keywords) == 0 && len(poetry.Keywords) > 0 {
		out = append(out, annotate(upstream.NewList(upstream.FieldKeywords, poetry.Keywords)))
	}
	if len(project.Authors) == 0 && len(poetry.Authors) > 0 {
		people := make([]upstream.Person, 0, len(poetry.Authors))
		for _, a := range poetry.Authors {
			people = append(people, upstream.ParsePerson(a))
		}
		out = append(out, annotate(upstream.NewPeople(upstream.FieldAuthor, people)))
	}
	return out, nil
}

// licenseString handles the two PEP 621 license notations: a plain
// SPDX string or a {text = "..."} table.
func licenseString(v any) string {
	switch l := v.(type) {
	case string:
		return l
	case map[string]any:
		if text, ok := l["text"].(string); ok {
			return text
		}
	}
	return ""
}
