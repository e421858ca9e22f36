package vcs

import "testing"

func TestDropVCSInScheme(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"git+https", "git+https://github.com/u/r.git", "https://github.com/u/r.git"},
		{"git+ssh", "git+ssh://git@example.org/repo", "ssh://git@example.org/repo"},
		{"hg+https", "hg+https://hg.example.org/repo", "https://hg.example.org/repo"},
		{"bzr+http", "bzr+http://bzr.example.org/repo", "http://bzr.example.org/repo"},
		{"plain https untouched", "https://github.com/u/r", "https://github.com/u/r"},
		{"svn+ssh kept", "svn+ssh://svn.example.org/repo", "svn+ssh://svn.example.org/repo"},
		{"no scheme", "github.com/u/r", "github.com/u/r"},
		{"uppercase marker", "GIT+HTTPS://github.com/u/r", "HTTPS://github.com/u/r"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DropVCSInScheme(tt.in); got != tt.want {
				t.Errorf("DropVCSInScheme(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
