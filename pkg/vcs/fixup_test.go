package vcs

import (
	"context"
	"testing"
)

func TestFixupRCPStyleGitRepoURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"github shorthand", "git@github.com:user/repo.git", "ssh://git@github.com/user/repo.git"},
		{"no user", "example.org:path/to/repo", "ssh://example.org/path/to/repo"},
		{"absolute path", "git@example.org:/srv/git/repo", "ssh://git@example.org/srv/git/repo"},
		{"already a url", "ssh://git@github.com/user/repo", "ssh://git@github.com/user/repo"},
		{"https untouched", "https://github.com/user/repo", "https://github.com/user/repo"},
		{"bare word colon", "origin:main", "origin:main"},
		{"no colon", "github.com/user/repo", "github.com/user/repo"},
		{"windows drive-ish", "c:/repo", "c:/repo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixupRCPStyleGitRepoURL(tt.in); got != tt.want {
				t.Errorf("FixupRCPStyleGitRepoURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFixupGitURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"whitespace", "  https://github.com/u/r  ", "https://github.com/u/r"},
		{"trailing slash", "https://github.com/u/r/", "https://github.com/u/r"},
		{"dead git protocol github", "git://github.com/u/r.git", "https://github.com/u/r.git"},
		{"dead git protocol gitlab", "git://gitlab.com/u/r", "https://gitlab.com/u/r"},
		{"plain http github", "http://github.com/u/r", "https://github.com/u/r"},
		{"schemeless known host", "github.com/u/r", "https://github.com/u/r"},
		{"schemeless unknown host", "example.org/u/r", "example.org/u/r"},
		{"rcp shorthand", "git@github.com:u/r.git", "ssh://git@github.com/u/r.git"},
		{"git protocol elsewhere kept", "git://git.example.org/r", "git://git.example.org/r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixupGitURL(tt.in); got != tt.want {
				t.Errorf("FixupGitURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFixupGitLocation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		in   Location
		want Location
	}{
		{
			"github tree deep link",
			Location{URL: "https://github.com/user/repo/tree/main/pkg/sub"},
			Location{URL: "https://github.com/user/repo", Branch: "main", Subpath: "pkg/sub"},
		},
		{
			"github blob deep link",
			Location{URL: "https://github.com/user/repo/blob/devel/README.md"},
			Location{URL: "https://github.com/user/repo", Branch: "devel", Subpath: "README.md"},
		},
		{
			"gitlab dash tree",
			Location{URL: "https://gitlab.com/user/repo/-/tree/main/src"},
			Location{URL: "https://gitlab.com/user/repo", Branch: "main", Subpath: "src"},
		},
		{
			"plain repo untouched",
			Location{URL: "https://github.com/user/repo", Branch: "main"},
			Location{URL: "https://github.com/user/repo", Branch: "main"},
		},
		{
			"unknown host untouched",
			Location{URL: "https://git.example.org/repo/tree/main"},
			Location{URL: "https://git.example.org/repo/tree/main"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FixupGitLocation(ctx, tt.in, NetDenied)
			if got != tt.want {
				t.Errorf("FixupGitLocation(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
