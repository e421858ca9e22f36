package vcs

import "strings"

// cvsMethods maps CVSROOT access methods to URL schemes.
var cvsMethods = map[string]string{
	"pserver": "cvs+pserver",
	"extssh":  "cvs+ssh",
	"ext":     "cvs+ssh",
}

// ConvertCVSListToStr collapses a legacy two-element CVS repository
// description ([CVSROOT, module]) into one canonical URL string, e.g.
//
//	[":pserver:anonymous@cvs.example.org:/cvsroot/foo", "foo"]
//	  -> "cvs+pserver://anonymous@cvs.example.org/cvsroot/foo#foo"
//
// Returns ok=false when the input has no canonical form (wrong arity,
// unknown access method, malformed root).
func ConvertCVSListToStr(urls []string) (string, bool) {
	if len(urls) != 2 {
		return "", false
	}
	root, module := urls[0], urls[1]
	if !strings.HasPrefix(root, ":") {
		return "", false
	}
	parts := strings.SplitN(root[1:], ":", 3)
	if len(parts) != 3 {
		return "", false
	}
	scheme, ok := cvsMethods[parts[0]]
	if !ok {
		return "", false
	}
	hostPart, path := parts[1], parts[2]
	if hostPart == "" || path == "" {
		return "", false
	}
	return scheme + "://" + hostPart + "/" + strings.TrimPrefix(path, "/") + "#" + module, true
}
