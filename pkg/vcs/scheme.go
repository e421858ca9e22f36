package vcs

import "strings"

// VCS prefixes that collapse to the bare transport scheme. "svn+ssh" is
// a real scheme of its own and is deliberately not listed.
var vcsSchemePrefixes = []string{"git+", "hg+", "bzr+"}

// DropVCSInScheme strips a VCS marker from a compound URL scheme, so
// "git+https://example.org/repo.git" becomes
// "https://example.org/repo.git". URLs without such a marker are
// returned unchanged.
func DropVCSInScheme(rawURL string) string {
	scheme, rest, ok := strings.Cut(rawURL, "://")
	if !ok {
		return rawURL
	}
	lower := strings.ToLower(scheme)
	for _, prefix := range vcsSchemePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return scheme[len(prefix):] + "://" + rest
		}
	}
	return rawURL
}
