package upstream

import (
	"iter"
	"sort"
)

// Metadata holds at most one datum per field: the current authoritative
// value for each piece of project metadata.
//
// Metadata is not safe for concurrent mutation. One logical writer at a
// time; concurrent reads are fine while no writer is active. Callers
// that need more add their own serialization.
type Metadata struct {
	items map[Field]Datum
}

// NewMetadata creates an empty collection.
func NewMetadata() *Metadata {
	return &Metadata{items: make(map[Field]Datum)}
}

// FromData bulk-builds a collection from an unordered set of datums.
// Datums without a certainty are annotated with defaultCertainty first.
// When the same field appears more than once, the merge engine's
// acceptance policy decides which value wins.
func FromData(data []Datum, defaultCertainty Certainty) *Metadata {
	md := NewMetadata()
	annotated := make([]Datum, 0, len(data))
	for _, d := range data {
		if !d.Certainty.Known() {
			d.Certainty = defaultCertainty
		}
		annotated = append(annotated, d)
	}
	UpdateFromGuesses(md, func(yield func(Datum) bool) {
		for _, d := range annotated {
			if !yield(d) {
				return
			}
		}
	})
	return md
}

// Get returns the datum stored for f, if any.
func (m *Metadata) Get(f Field) (Datum, bool) {
	d, ok := m.items[f]
	return d, ok
}

// Set stores d under its own field, replacing any existing entry.
// The datum's field must be known; Set panics on a zero Datum, which is
// a caller contract violation.
func (m *Metadata) Set(d Datum) {
	if !d.Field.Known() {
		panic("upstream: Set with unknown field " + string(d.Field))
	}
	m.items[d.Field] = d
}

// Delete removes the entry for f, if present.
func (m *Metadata) Delete(f Field) { delete(m.items, f) }

// Contains reports whether an entry exists for f.
func (m *Metadata) Contains(f Field) bool {
	_, ok := m.items[f]
	return ok
}

// Len returns the number of stored entries.
func (m *Metadata) Len() int { return len(m.items) }

// All iterates over the stored datums in unspecified order.
func (m *Metadata) All() iter.Seq[Datum] {
	return func(yield func(Datum) bool) {
		for _, d := range m.items {
			if !yield(d) {
				return
			}
		}
	}
}

// Sorted returns the stored datums in field declaration order, for
// deterministic output.
func (m *Metadata) Sorted() []Datum {
	out := make([]Datum, 0, len(m.items))
	for _, d := range m.items {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return fieldRank[out[i].Field] < fieldRank[out[j].Field]
	})
	return out
}
