package upstream

import (
	"errors"
	"fmt"
)

// ErrInvalidCertainty is returned by ParseCertainty for unrecognized input.
var ErrInvalidCertainty = errors.New("invalid certainty level")

// Certainty ranks how much a heuristic trusts a guessed value. Levels are
// totally ordered; plain comparison operators work on them. The zero value
// means "no certainty recorded" and sorts below every named level.
type Certainty int8

const (
	certaintyUnset Certainty = iota

	// CertaintyPossible marks values from weak heuristics (filename
	// guesses, directory names).
	CertaintyPossible

	// CertaintyLikely marks values derived indirectly from project files.
	CertaintyLikely

	// CertaintyConfident marks values read from machine-readable metadata
	// that may still be stale.
	CertaintyConfident

	// CertaintyCertain marks values stated explicitly by the project.
	CertaintyCertain
)

var certaintyNames = map[Certainty]string{
	CertaintyPossible:  "possible",
	CertaintyLikely:    "likely",
	CertaintyConfident: "confident",
	CertaintyCertain:   "certain",
}

// ParseCertainty parses the canonical string form of a certainty level.
func ParseCertainty(s string) (Certainty, error) {
	for c, name := range certaintyNames {
		if name == s {
			return c, nil
		}
	}
	return certaintyUnset, fmt.Errorf("%w: %q", ErrInvalidCertainty, s)
}

// String returns the canonical name, or "" for the unset value.
func (c Certainty) String() string { return certaintyNames[c] }

// Known reports whether c is one of the named levels.
func (c Certainty) Known() bool { return c > certaintyUnset && c <= CertaintyCertain }

// AtLeast reports whether c meets the minimum threshold min. An unset
// minimum accepts everything; an unset c only meets an unset minimum.
func (c Certainty) AtLeast(min Certainty) bool { return c >= min }
