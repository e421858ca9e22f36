package upstream

// Origin records where a datum came from: typically the path of the file
// a heuristic read (e.g. "./Cargo.toml") or the name of an external
// directory (e.g. "crates.io"). It is purely informational and carries
// no ordering semantics.
type Origin string

// Empty reports whether no origin was recorded.
func (o Origin) Empty() bool { return o == "" }

func (o Origin) String() string { return string(o) }
