package upstream

import "iter"

// UpdateFromGuesses reconciles a stream of candidate datums into md,
// consuming guesses in arrival order in a single pass.
//
// For each guess: known-bad values are discarded outright; otherwise the
// guess is accepted when the field has no entry yet or the guess's
// certainty is at least the stored one. On equal certainty the later
// guess wins, except that a guess identical to the stored entry is a
// no-op and is not re-reported. Rejected guesses leave md unchanged and
// are dropped silently.
//
// The returned slice lists the accepted guesses in acceptance order,
// for change tracking and re-guessing loops. A malformed individual
// guess never aborts the pass.
func UpdateFromGuesses(md *Metadata, guesses iter.Seq[Datum]) []Datum {
	var accepted []Datum
	for guess := range guesses {
		if !guess.Field.Known() || KnownBadGuess(guess) {
			continue
		}
		if existing, ok := md.Get(guess.Field); ok {
			if guess.SameValue(existing) && guess.Certainty == existing.Certainty {
				continue
			}
			if guess.Certainty < existing.Certainty {
				continue
			}
		}
		md.Set(guess)
		accepted = append(accepted, guess)
	}
	return accepted
}

// FilterByCertainty drops guesses strictly below min before they reach
// the merge engine. An unset min passes everything through.
func FilterByCertainty(guesses iter.Seq[Datum], min Certainty) iter.Seq[Datum] {
	return func(yield func(Datum) bool) {
		for g := range guesses {
			if !g.Certainty.AtLeast(min) {
				continue
			}
			if !yield(g) {
				return
			}
		}
	}
}
