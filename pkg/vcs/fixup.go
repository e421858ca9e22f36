package vcs

import (
	"context"
	"regexp"
	"strings"
)

// rcp-style remote: [user@]host:path, as accepted by git and scp.
// The path must not look like a port number or a second scheme.
var rcpStyleRE = regexp.MustCompile(`^(?:([^@:/]+)@)?([A-Za-z0-9._-]+):(/?[^:/][^:]*)$`)

// FixupRCPStyleGitRepoURL reinterprets legacy shorthand remote syntax
// ("git@github.com:user/repo.git") as a standard ssh:// URL addressing
// the same host and path. Inputs that are not rcp-style are returned
// unchanged.
func FixupRCPStyleGitRepoURL(rawURL string) string {
	if strings.Contains(rawURL, "://") {
		return rawURL
	}
	m := rcpStyleRE.FindStringSubmatch(rawURL)
	if m == nil {
		return rawURL
	}
	user, host, path := m[1], m[2], m[3]
	if !strings.Contains(host, ".") {
		// Bare words like "origin:main" are not remotes.
		return rawURL
	}
	out := "ssh://"
	if user != "" {
		out += user + "@"
	}
	return out + host + "/" + strings.TrimPrefix(path, "/")
}

var gitURLReplacer = strings.NewReplacer(
	"git://github.com/", "https://github.com/",
	"git://gitlab.com/", "https://gitlab.com/",
	"http://github.com/", "https://github.com/",
)

// FixupGitURL repairs common defects in hand-written repository URLs:
// surrounding whitespace, rcp-style shorthand, the dead git:// protocol
// on hosts that dropped it, and missing schemes for well-known hosts.
func FixupGitURL(rawURL string) string {
	u := strings.TrimSpace(rawURL)
	u = FixupRCPStyleGitRepoURL(u)
	u = gitURLReplacer.Replace(u)
	if !strings.Contains(u, "://") {
		if host, _, ok := strings.Cut(u, "/"); ok && knownGitHost(host) {
			u = "https://" + u
		}
	}
	return strings.TrimRight(u, "/")
}

// Path markers web UIs insert between the repository and a branch.
var branchMarkers = map[string]bool{"tree": true, "blob": true, "src": true, "-": true}

// FixupGitLocation corrects a repository location triple. The URL is
// repaired and canonicalized first; when it turns out to be a web view
// deep link (".../tree/<branch>/<subpath>"), the branch and subpath are
// re-derived from the resolved form, overriding stale values.
func FixupGitLocation(ctx context.Context, loc Location, net NetAccess) Location {
	fixed := loc
	fixed.URL = FixupGitURL(loc.URL)

	if u, ok := parseHTTPish(fixed.URL); ok && knownGitHost(u.Host) {
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(segments) > 3 && branchMarkers[segments[2]] {
			marker := 2
			if segments[2] == "-" && len(segments) > 4 && branchMarkers[segments[3]] {
				// GitLab inserts "/-/" before the marker.
				marker = 3
			}
			if len(segments) > marker+1 {
				fixed.Branch = segments[marker+1]
				fixed.Subpath = strings.Join(segments[marker+2:], "/")
			}
		}
	}

	if canonical, err := CanonicalGitRepoURL(ctx, fixed.URL, net); err == nil {
		fixed.URL = canonical
	}
	return fixed
}
