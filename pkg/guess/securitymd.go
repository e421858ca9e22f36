package guess

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mkrale/upmeta/pkg/upstream"
)

// SecurityMD records the presence of a security policy file.
type SecurityMD struct{}

func (*SecurityMD) Name() string { return "security-md" }

var securityPaths = []string{
	"SECURITY.md",
	filepath.Join(".github", "SECURITY.md"),
	filepath.Join("docs", "SECURITY.md"),
}

func (g *SecurityMD) Guess(_ context.Context, dir string) ([]upstream.Datum, error) {
	for _, rel := range securityPaths {
		if _, err := os.Stat(filepath.Join(dir, rel)); err == nil {
			origin := upstream.Origin("./" + filepath.ToSlash(rel))
			return []upstream.Datum{
				upstream.NewText(upstream.FieldSecurityMD, filepath.ToSlash(rel)).
					With(upstream.CertaintyCertain, origin),
			}, nil
		}
	}
	return nil, nil
}
