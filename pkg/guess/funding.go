package guess

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/mkrale/upmeta/pkg/upstream"
)

// Funding reads GitHub's .github/FUNDING.yml (or FUNDING.yml at the
// root) and proposes one Funding URL from the first platform listed.
type Funding struct{}

func (*Funding) Name() string { return "funding" }

type fundingFile struct {
	GitHub         stringList `yaml:"github"`
	Patreon        string     `yaml:"patreon"`
	OpenCollective string     `yaml:"open_collective"`
	KoFi           string     `yaml:"ko_fi"`
	Liberapay      string     `yaml:"liberapay"`
	Custom         stringList `yaml:"custom"`
}

// stringList accepts FUNDING.yml's scalar-or-sequence notation.
type stringList []string

func (s *stringList) UnmarshalYAML(unmarshal func(any) error) error {
	var one string
	if err := unmarshal(&one); err == nil {
		*s = stringList{one}
		return nil
	}
	var many []string
	if err := unmarshal(&many); err != nil {
		return err
	}
	*s = stringList(many)
	return nil
}

func (g *Funding) Guess(_ context.Context, dir string) ([]upstream.Datum, error) {
	var data []byte
	var err error
	var found string
	for _, rel := range []string{filepath.Join(".github", "FUNDING.yml"), "FUNDING.yml"} {
		data, err = os.ReadFile(filepath.Join(dir, rel))
		if err == nil {
			found = rel
			break
		}
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var funding fundingFile
	if err := yaml.Unmarshal(data, &funding); err != nil {
		return nil, err
	}

	url := fundingURL(funding)
	if url == "" {
		return nil, nil
	}
	origin := upstream.Origin("./" + filepath.ToSlash(found))
	return []upstream.Datum{
		upstream.NewText(upstream.FieldFunding, url).With(upstream.CertaintyCertain, origin),
	}, nil
}

func fundingURL(f fundingFile) string {
	switch {
	case len(f.GitHub) > 0:
		return "https://github.com/sponsors/" + f.GitHub[0]
	case f.Patreon != "":
		return "https://www.patreon.com/" + f.Patreon
	case f.OpenCollective != "":
		return "https://opencollective.com/" + f.OpenCollective
	case f.KoFi != "":
		return "https://ko-fi.com/" + f.KoFi
	case f.Liberapay != "":
		return "https://liberapay.com/" + f.Liberapay
	case len(f.Custom) > 0:
		return f.Custom[0]
	}
	return ""
}
