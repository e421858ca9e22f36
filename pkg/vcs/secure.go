package vcs

import (
	"context"
	"strings"

	"github.com/mkrale/upmeta/pkg/httputil"
)

// FindSecureRepoURL upgrades an insecure (http:// or git://) repository
// URL to https. A URL that is already secure is returned as-is. For
// known hosts the upgrade happens offline; for anything else the https
// variant is verified over the network when allowed. When branch is
// given and the network is available, the branch's web view is probed
// as an extra sanity check. Returns ok=false when no secure form could
// be established.
func FindSecureRepoURL(ctx context.Context, rawURL, branch string, net NetAccess) (string, bool) {
	u, ok := parseHTTPish(rawURL)
	if !ok {
		return "", false
	}
	switch u.Scheme {
	case "https":
		return rawURL, true
	case "http", "git":
	default:
		return "", false
	}
	u.Scheme = "https"
	secure := u.String()

	if knownGitHost(u.Host) {
		return secure, true
	}
	if !net.Allowed() {
		return "", false
	}
	target := secure
	if branch != "" {
		target = strings.TrimSuffix(strings.TrimSuffix(secure, "/"), ".git") + "/tree/" + branch
	}
	if httputil.ProbeURL(ctx, target) {
		return secure, true
	}
	return "", false
}

// FindPublicRepoURL discovers a public-facing mirror for a private or
// internal repository URL: ssh remotes on public hosts map to their
// https equivalent, and unknown hosts are probed over the network when
// allowed. Returns ok=false when no public form is found.
func FindPublicRepoURL(ctx context.Context, rawURL string, net NetAccess) (string, bool) {
	raw := FixupRCPStyleGitRepoURL(rawURL)
	u, ok := parseHTTPish(raw)
	if !ok {
		return "", false
	}
	switch u.Scheme {
	case "https", "http":
		return raw, true
	case "ssh", "git":
	default:
		return "", false
	}

	public := "https://" + u.Host + u.Path
	if knownGitHost(u.Host) {
		return public, true
	}
	if net.Allowed() && httputil.ProbeURL(ctx, public) {
		return public, true
	}
	return "", false
}
