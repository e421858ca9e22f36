package guess

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mkrale/upmeta/pkg/upstream"
)

// GoMod derives metadata from the module directive of go.mod. The
// import path is explicit; the project name and repository are derived
// from it and merge at likely.
type GoMod struct{}

func (*GoMod) Name() string { return "go.mod" }

// Hosts where the module path doubles as the repository URL.
var goRepoHosts = map[string]bool{
	"github.com":    true,
	"gitlab.com":    true,
	"codeberg.org":  true,
	"bitbucket.org": true,
}

func (g *GoMod) Guess(_ context.Context, dir string) ([]upstream.Datum, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	modPath := modulePath(data)
	if modPath == "" {
		return nil, nil
	}

	origin := upstream.Origin("./go.mod")
	out := []upstream.Datum{
		upstream.NewText(upstream.FieldGoImportPath, modPath).With(upstream.CertaintyCertain, origin),
		upstream.NewText(upstream.FieldName, path.Base(modPath)).With(upstream.CertaintyLikely, origin),
	}

	segments := strings.Split(modPath, "/")
	if len(segments) >= 3 && goRepoHosts[segments[0]] {
		repo := "https://" + strings.Join(segments[:3], "/")
		out = append(out, upstream.NewText(upstream.FieldRepository, repo).With(upstream.CertaintyLikely, origin))
	}
	return out, nil
}

func modulePath(data []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, "module "); ok {
			return strings.Trim(strings.TrimSpace(rest), `"`)
		}
	}
	return ""
}
