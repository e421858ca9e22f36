package vcs

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkrale/upmeta/pkg/httputil"
)

// CanonicalGitRepoURL normalizes a git repository URL to its standard
// host/path form: lowercased host, the two path segments that identify
// the repository on known hosts, no trailing ".git" or slash. Input
// that is not a syntactically valid URL fails with [ErrInvalidURL].
// When net access is allowed, redirects (renamed or transferred
// repositories) are resolved over the network; on any resolution
// failure the offline canonical form is returned unchanged.
func CanonicalGitRepoURL(ctx context.Context, rawURL string, net NetAccess) (string, error) {
	u, ok := parseHTTPish(rawURL)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawQuery = ""

	if knownGitHost(u.Host) {
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(segments) >= 2 {
			u.Path = "/" + segments[0] + "/" + strings.TrimSuffix(segments[1], ".git")
		}
	} else {
		u.Path = strings.TrimRight(u.Path, "/")
	}
	canonical := u.String()

	if net.Allowed() && (u.Scheme == "http" || u.Scheme == "https") {
		if resolved, ok := httputil.ResolveRedirect(ctx, canonical); ok {
			return strings.TrimSuffix(strings.TrimRight(resolved, "/"), ".git"), nil
		}
	}
	return canonical, nil
}

// BrowseURLFromRepoURL derives the web view of a repository URL, when
// one can be determined offline. Returns "" when no browse form is
// known for the host.
func BrowseURLFromRepoURL(rawURL string) string {
	u, ok := parseHTTPish(DropVCSInScheme(rawURL))
	if !ok {
		return ""
	}
	if !knownGitHost(u.Host) {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 {
		return ""
	}
	return "https://" + strings.ToLower(u.Host) + "/" + segments[0] + "/" + strings.TrimSuffix(segments[1], ".git")
}
