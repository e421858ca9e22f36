package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkrale/upmeta/pkg/vcs"
)

// fixupOpts holds the command-line flags for the fixup command.
type fixupOpts struct {
	net    bool   // allow network probing
	secure bool   // also upgrade to an https URL
	public bool   // also convert to an anonymously accessible URL
	branch string // branch hint for secure upgrades
}

// newFixupCmd creates the fixup command, which runs a single repository
// URL through the normalization pipeline and prints the result.
func newFixupCmd() *cobra.Command {
	opts := fixupOpts{net: true}

	cmd := &cobra.Command{
		Use:   "fixup <repository-url>",
		Short: "Normalize a VCS repository URL",
		Long: `Normalize a VCS repository URL.

Strips VCS prefixes from hybrid schemes (git+https://), rewrites
rcp-style SSH shorthand (git@github.com:user/repo.git), canonicalizes
known hosting sites, and optionally upgrades to a secure or public URL.

Examples:
  upmeta fixup git+https://github.com/User/Repo.git
  upmeta fixup git@github.com:user/repo.git
  upmeta fixup --secure http://github.com/user/repo
  upmeta fixup --public ssh://git@example.org/repo.git`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixup(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.net, "net", opts.net, "allow network access for canonicalization probes")
	cmd.Flags().BoolVar(&opts.secure, "secure", false, "upgrade to an https URL where possible")
	cmd.Flags().BoolVar(&opts.public, "public", false, "convert to an anonymously accessible URL where possible")
	cmd.Flags().StringVar(&opts.branch, "branch", "", "branch hint used when probing secure variants")

	return cmd
}

func runFixup(ctx context.Context, rawURL string, opts *fixupOpts) error {
	net := vcs.NetAllowed
	if !opts.net {
		net = vcs.NetDenied
	}

	url := vcs.DropVCSInScheme(rawURL)
	url = vcs.FixupGitURL(url)
	url, err := vcs.CanonicalGitRepoURL(ctx, url, net)
	if err != nil {
		return err
	}

	if opts.public {
		if fixed, ok := vcs.FindPublicRepoURL(ctx, url, net); ok {
			url = fixed
		} else {
			printWarning("no public form found for %s", url)
		}
	}
	if opts.secure {
		if fixed, ok := vcs.FindSecureRepoURL(ctx, url, opts.branch, net); ok {
			url = fixed
		} else {
			printWarning("no secure form found for %s", url)
		}
	}

	if url != rawURL {
		printURLChange(rawURL, url)
	} else {
		printDetail("already canonical")
	}
	fmt.Println(url)
	return nil
}
