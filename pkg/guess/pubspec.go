package guess

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/mkrale/upmeta/pkg/upstream"
)

// Pubspec reads Dart/Flutter pubspec.yaml files.
type Pubspec struct{}

func (*Pubspec) Name() string { return "pubspec" }

type pubspecFile struct {
	Name          string `yaml:"name"`
	Version       string `yaml:"version"`
	Description   string `yaml:"description"`
	Homepage      string `yaml:"homepage"`
	Repository    string `yaml:"repository"`
	IssueTracker  string `yaml:"issue_tracker"`
	Documentation string `yaml:"documentation"`
}

func (g *Pubspec) Guess(_ context.Context, dir string) ([]upstream.Datum, error) {
	data, err := os.ReadFile(filepath.Join(dir, "pubspec.yaml"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var spec pubspecFile
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}

	origin := upstream.Origin("./pubspec.yaml")
	annotate := func(d upstream.Datum) upstream.Datum {
		return d.With(upstream.CertaintyCertain, origin)
	}

	var out []upstream.Datum
	emitText := func(f upstream.Field, v string) {
		if v != "" {
			out = append(out, annotate(upstream.NewText(f, v)))
		}
	}
	emitText(upstream.FieldName, spec.Name)
	emitText(upstream.FieldVersion, spec.Version)
	emitText(upstream.FieldSummary, spec.Description)
	emitText(upstream.FieldHomepage, spec.Homepage)
	emitText(upstream.FieldRepository, spec.Repository)
	emitText(upstream.FieldBugDatabase, spec.IssueTracker)
	if spec.Documentation != "" {
		out = append(out, annotate(upstream.NewList(upstream.FieldDocumentation, []string{spec.Documentation})))
	}
	return out, nil
}
