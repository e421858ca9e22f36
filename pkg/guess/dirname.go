package guess

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/mkrale/upmeta/pkg/upstream"
)

// DirName falls back to the project directory's name. Directory names
// often carry version suffixes ("foo-1.2.3"), which are stripped.
type DirName struct{}

func (*DirName) Name() string { return "dirname" }

func (g *DirName) Guess(_ context.Context, dir string) ([]upstream.Datum, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	name := stripVersionSuffix(filepath.Base(abs))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, nil
	}
	return []upstream.Datum{
		upstream.NewText(upstream.FieldName, name).
			With(upstream.CertaintyPossible, upstream.Origin("./")),
	}, nil
}

// stripVersionSuffix removes a trailing "-1.2.3" style version from a
// tarball-extracted directory name.
func stripVersionSuffix(name string) string {
	i := strings.LastIndex(name, "-")
	if i <= 0 {
		return name
	}
	suffix := name[i+1:]
	for _, r := range suffix {
		if (r < '0' || r > '9') && r != '.' {
			return name
		}
	}
	if suffix == "" {
		return name
	}
	return name[:i]
}
