package upstream

import (
	"context"
	"net/url"
	"strings"

	"github.com/mkrale/upmeta/pkg/vcs"
)

// FixMetadata normalizes a merged collection in place: repository URLs
// are stripped of VCS scheme markers, repaired and canonicalized, an
// insecure repository transport is upgraded when a secure form exists,
// and a missing Repository-Browse is derived from the repository. Each
// fixup degrades to leaving the value alone when it cannot improve it;
// certainty and origin annotations are preserved.
func FixMetadata(ctx context.Context, md *Metadata, net vcs.NetAccess) {
	if d, ok := md.Get(FieldRepository); ok {
		fixed := vcs.DropVCSInScheme(strings.TrimSpace(d.Text()))
		fixed = vcs.FixupGitURL(fixed)
		if canonical, err := vcs.CanonicalGitRepoURL(ctx, fixed, net); err == nil {
			fixed = canonical
		}
		if secure, ok := vcs.FindSecureRepoURL(ctx, fixed, "", net); ok {
			fixed = secure
		}
		if fixed != d.Text() {
			md.Set(NewText(FieldRepository, fixed).With(d.Certainty, d.Origin))
		}
		if !md.Contains(FieldRepositoryBrowse) {
			if browse := vcs.BrowseURLFromRepoURL(fixed); browse != "" {
				certainty := min(d.Certainty, CertaintyLikely)
				md.Set(NewText(FieldRepositoryBrowse, browse).With(certainty, d.Origin))
			}
		}
	}

	for _, f := range []Field{FieldHomepage, FieldBugDatabase, FieldBugSubmit, FieldDownload} {
		d, ok := md.Get(f)
		if !ok {
			continue
		}
		trimmed := strings.TrimSpace(d.Text())
		if trimmed != d.Text() {
			md.Set(NewText(f, trimmed).With(d.Certainty, d.Origin))
		}
	}
}

// plausibleURL is the structural URL test used by the validation
// pipeline for fields where a URL is mandatory.
func plausibleURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ssh", "git", "ftp":
		return true
	default:
		return strings.HasPrefix(u.Scheme, "cvs+")
	}
}
