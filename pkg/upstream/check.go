package upstream

import (
	"context"
	"fmt"

	"github.com/mkrale/upmeta/pkg/httputil"
	"github.com/mkrale/upmeta/pkg/vcs"
)

// Finding is one non-fatal result from the validation pipeline.
type Finding struct {
	Field   Field
	Check   string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s [%s]: %s", f.Field, f.Check, f.Message)
}

type checker func(ctx context.Context, md *Metadata, expectedVersion string, net vcs.NetAccess) []Finding

// The battery runs in order and always to completion; a failing check
// never stops the ones after it. Each check touches only its own field.
var checkers = []checker{
	checkRepository,
	checkRepositoryBrowse,
	checkHomepage,
	checkBugDatabase,
	checkVersion,
}

// CheckMetadata runs consistency checks over a merged collection,
// optionally against an expected version string. Checks may downgrade
// or remove the entry they own; all findings are accumulated and
// returned, never raised as errors.
func CheckMetadata(ctx context.Context, md *Metadata, expectedVersion string, net vcs.NetAccess) []Finding {
	var findings []Finding
	for _, check := range checkers {
		findings = append(findings, check(ctx, md, expectedVersion, net)...)
	}
	return findings
}

func checkRepository(ctx context.Context, md *Metadata, _ string, net vcs.NetAccess) []Finding {
	return checkRepoShaped(ctx, md, FieldRepository, "repository", net)
}

func checkRepositoryBrowse(ctx context.Context, md *Metadata, _ string, net vcs.NetAccess) []Finding {
	return checkRepoShaped(ctx, md, FieldRepositoryBrowse, "repository-browse", net)
}

// checkRepoShaped validates URL shape offline and reachability online.
// A malformed URL removes the entry; an unreachable one only downgrades
// it, since outages are common and temporary.
func checkRepoShaped(ctx context.Context, md *Metadata, field Field, name string, net vcs.NetAccess) []Finding {
	d, ok := md.Get(field)
	if !ok {
		return nil
	}
	cleaned := vcs.DropVCSInScheme(d.Text())
	browse := vcs.BrowseURLFromRepoURL(cleaned)
	if browse == "" && !plausibleURL(cleaned) {
		md.Delete(field)
		return []Finding{{Field: field, Check: name, Message: fmt.Sprintf("not a valid URL: %q", d.Text())}}
	}
	if net.Allowed() && browse != "" && !httputil.ProbeURL(ctx, browse) {
		downgrade(md, field, CertaintyLikely)
		return []Finding{{Field: field, Check: name, Message: fmt.Sprintf("unreachable: %s", browse)}}
	}
	return nil
}

func checkHomepage(ctx context.Context, md *Metadata, _ string, net vcs.NetAccess) []Finding {
	return checkReachable(ctx, md, FieldHomepage, "homepage", net)
}

func checkBugDatabase(ctx context.Context, md *Metadata, _ string, net vcs.NetAccess) []Finding {
	return checkReachable(ctx, md, FieldBugDatabase, "bug-database", net)
}

func checkReachable(ctx context.Context, md *Metadata, field Field, name string, net vcs.NetAccess) []Finding {
	d, ok := md.Get(field)
	if !ok {
		return nil
	}
	if !plausibleURL(d.Text()) {
		md.Delete(field)
		return []Finding{{Field: field, Check: name, Message: fmt.Sprintf("not a valid URL: %q", d.Text())}}
	}
	if net.Allowed() && !httputil.ProbeURL(ctx, d.Text()) {
		downgrade(md, field, CertaintyLikely)
		return []Finding{{Field: field, Check: name, Message: fmt.Sprintf("unreachable: %s", d.Text())}}
	}
	return nil
}

func checkVersion(_ context.Context, md *Metadata, expectedVersion string, _ vcs.NetAccess) []Finding {
	if expectedVersion == "" {
		return nil
	}
	d, ok := md.Get(FieldVersion)
	if !ok || d.Text() == expectedVersion {
		return nil
	}
	downgrade(md, FieldVersion, CertaintyPossible)
	return []Finding{{
		Field:   FieldVersion,
		Check:   "version",
		Message: fmt.Sprintf("guessed %q, expected %q", d.Text(), expectedVersion),
	}}
}

// downgrade caps the certainty of the entry for f at max.
func downgrade(md *Metadata, f Field, max Certainty) {
	d, ok := md.Get(f)
	if !ok || d.Certainty <= max {
		return
	}
	d.Certainty = max
	md.Set(d)
}
