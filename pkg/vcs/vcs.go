// Package vcs normalizes version-control repository locations: scheme
// cleanup, canonical host/path forms, secure and public mirror
// discovery, and legacy CVS/rcp notation. Transformations are pure given
// their network-access flag and always fall back to their input when a
// network step fails or is disallowed.
package vcs

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidURL is returned where a syntactically valid URL is mandatory.
var ErrInvalidURL = errors.New("invalid URL")

// NetAccess controls whether a transformation may touch the network.
// It is threaded explicitly through every network-capable call; there is
// no global switch.
type NetAccess int

const (
	// NetDefault behaves like NetAllowed; callers that did not decide
	// get the permissive default, matching the library's historic API.
	NetDefault NetAccess = iota
	// NetAllowed permits network lookups.
	NetAllowed
	// NetDenied forces pure, offline behavior.
	NetDenied
)

// Allowed reports whether network lookups may run.
func (n NetAccess) Allowed() bool { return n != NetDenied }

// Location is a repository location triple: where the code lives, and
// optionally which branch and subdirectory inside it.
type Location struct {
	URL     string
	Branch  string
	Subpath string
}

// Hosts whose URL layout we understand well enough to canonicalize
// offline: the first two path segments identify the repository.
var knownGitHosts = map[string]bool{
	"github.com":             true,
	"gitlab.com":             true,
	"codeberg.org":           true,
	"bitbucket.org":          true,
	"salsa.debian.org":       true,
	"gitlab.gnome.org":       true,
	"gitlab.freedesktop.org": true,
	"invent.kde.org":         true,
}

func knownGitHost(host string) bool {
	return knownGitHosts[strings.TrimPrefix(strings.ToLower(host), "www.")]
}

func parseHTTPish(raw string) (*url.URL, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, false
	}
	return u, true
}
