// Package upstream models metadata about an external software project
// as collected from unreliable heuristic sources.
//
// A [Datum] is one typed fact (field plus value) annotated with a
// [Certainty] ranking and an [Origin] marker. A [Metadata] collection
// holds one authoritative datum per field. [UpdateFromGuesses]
// reconciles a stream of candidate guesses into a collection, keeping
// the most certain value per field; [CheckMetadata] and [FixMetadata]
// then sanity-check and normalize the merged record.
//
// The field schema is closed: see [Fields] for the full set and
// [Field.Shape] for the value shape each field accepts.
package upstream
