package upstream

import (
	"regexp"
	"strings"
)

// Person is a structured contact record used by person-shaped fields
// such as Author and Maintainer. Any subset of the fields may be set.
type Person struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

var personRE = regexp.MustCompile(`^(.*?)\s*<([^<>]+@[^<>]+)>$`)

// ParsePerson interprets the common "Name <email>" contact notation.
// A bare email becomes Email, a bare URL becomes URL, anything else
// is treated as a name.
func ParsePerson(s string) Person {
	s = strings.TrimSpace(s)
	if m := personRE.FindStringSubmatch(s); m != nil {
		return Person{Name: strings.TrimSpace(m[1]), Email: m[2]}
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return Person{URL: s}
	}
	if strings.Contains(s, "@") && !strings.Contains(s, " ") {
		return Person{Email: s}
	}
	return Person{Name: s}
}

// String renders the person in "Name <email>" notation where possible.
func (p Person) String() string {
	switch {
	case p.Name != "" && p.Email != "":
		return p.Name + " <" + p.Email + ">"
	case p.Name != "":
		return p.Name
	case p.Email != "":
		return p.Email
	default:
		return p.URL
	}
}
