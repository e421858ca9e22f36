package upstream

import (
	"net/url"
	"strings"
)

// Values heuristics are known to emit when a template was never filled in.
var placeholderNames = map[string]bool{
	"":        true,
	"unknown": true,
	"package": true,
	"project": true,
	"example": true,
	"test":    true,
	"todo":    true,
}

// Hosting sites whose bare roots show up as bogus Homepage or Repository
// guesses when a heuristic truncates a URL too aggressively.
var hostingRoots = map[string]bool{
	"github.com":      true,
	"gitlab.com":      true,
	"bitbucket.org":   true,
	"sourceforge.net": true,
	"pypi.org":        true,
	"crates.io":       true,
}

// KnownBadGuess reports whether d carries a value that heuristics are
// known to produce erroneously: unexpanded template placeholders, bare
// hosting-site roots, example URLs and the like. The merge engine
// discards such guesses regardless of their certainty; constructors do
// not consult this predicate.
func KnownBadGuess(d Datum) bool {
	switch d.Field {
	case FieldName, FieldCargoCrate, FieldPeclPackage, FieldHaskellPackage, FieldSourceForgeProject:
		v := strings.ToLower(strings.TrimSpace(d.text))
		if placeholderNames[v] {
			return true
		}
		return hasTemplateMarker(d.text)
	case FieldVersion:
		v := strings.ToLower(strings.TrimSpace(d.text))
		if v == "" || v == "unknown" || v == "version" {
			return true
		}
		return hasTemplateMarker(d.text)
	case FieldHomepage, FieldRepository, FieldRepositoryBrowse,
		FieldBugDatabase, FieldBugSubmit, FieldDownload, FieldWiki:
		return badURLGuess(d.text)
	case FieldAuthor, FieldMaintainer:
		if len(d.people) == 0 {
			return true
		}
		for _, p := range d.people {
			if placeholderNames[strings.ToLower(p.Name)] && p.Email == "" && p.URL == "" {
				return true
			}
		}
		return false
	case FieldKeywords, FieldCopyright, FieldDocumentation, FieldScreenshots:
		return len(d.list) == 0
	default:
		if d.Field.Shape() == ShapeText {
			return strings.TrimSpace(d.text) == ""
		}
		return false
	}
}

func badURLGuess(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" || hasTemplateMarker(raw) {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		// Not a URL at all; leave that to validation, not to the
		// bad-guess filter.
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host == "example.com" || strings.HasSuffix(host, ".example.com") {
		return true
	}
	path := strings.Trim(u.Path, "/")
	if hostingRoots[host] && path == "" {
		return true
	}
	// Tutorial-style "github.com/example/..." paths.
	if segments := strings.Split(path, "/"); len(segments) > 0 {
		if hostingRoots[host] && (segments[0] == "example" || segments[0] == "user") {
			return true
		}
	}
	return false
}

func hasTemplateMarker(s string) bool {
	for _, marker := range []string{"%(", "${", "{{", "@NAME@", "@VERSION@", "@PACKAGE@"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	// Autoconf-style fully uppercase placeholders.
	trimmed := strings.TrimSpace(s)
	return trimmed == "PACKAGE" || trimmed == "VERSION" || trimmed == "PACKAGE_NAME"
}
