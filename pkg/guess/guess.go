// Package guess scans a project tree for metadata. Each Guesser reads
// one kind of source (Cargo.toml, package.json, go.mod, ...) and
// proposes annotated datums; the merge engine in package upstream
// reconciles them into one authoritative record.
package guess

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/mkrale/upmeta/pkg/cache"
	"github.com/mkrale/upmeta/pkg/directory"
	"github.com/mkrale/upmeta/pkg/upstream"
	"github.com/mkrale/upmeta/pkg/vcs"
)

// DefaultCacheTTL is how long directory responses are cached.
const DefaultCacheTTL = 24 * time.Hour

// Guesser produces candidate datums for the project at dir. Sources
// that do not apply (missing file) return an empty result, not an
// error; the proposal order reflects discovery order, not reliability.
type Guesser interface {
	// Name returns the guesser's identifier (e.g. "cargo", "go.mod").
	Name() string
	// Guess reads the guesser's source under dir and proposes datums.
	Guess(ctx context.Context, dir string) ([]upstream.Datum, error)
}

// Options configures a gathering run.
type Options struct {
	Net              vcs.NetAccess        // Network policy for directories, checks and fixups
	MinimumCertainty upstream.Certainty   // Guesses below this never reach the merge engine
	ConsultDirectory bool                 // Also ask external metadata directories
	Check            bool                 // Run the validation pipeline after merging
	ExpectedVersion  string               // Version to validate against (optional)
	Cache            cache.Cache          // Backend for directory lookups (default: file cache)
	CacheTTL         time.Duration        // Directory response TTL (default: 24h)
	Logger           func(string, ...any) // Progress/error callback (optional)
}

// WithDefaults returns a copy of o with zero values replaced.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Cache == nil {
		if fc, err := cache.NewFileCache(""); err == nil {
			opts.Cache = fc
		} else {
			opts.Cache = cache.NewNullCache()
		}
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// DefaultGuessers returns the full set of file heuristics.
func DefaultGuessers() []Guesser {
	return []Guesser{
		&Cargo{},
		&PackageJSON{},
		&Pyproject{},
		&Pubspec{},
		&GoMod{},
		&Funding{},
		&SecurityMD{},
		&DirName{},
	}
}

// Scan lazily yields candidate datums from every applicable guesser,
// in discovery order. A failing guesser is logged and skipped; it never
// aborts the scan.
func Scan(ctx context.Context, dir string, opts Options) iter.Seq[upstream.Datum] {
	opts = opts.WithDefaults()
	return func(yield func(upstream.Datum) bool) {
		for _, g := range DefaultGuessers() {
			if ctx.Err() != nil {
				return
			}
			data, err := g.Guess(ctx, dir)
			if err != nil {
				opts.Logger("guesser %s: %v", g.Name(), err)
				continue
			}
			for _, d := range data {
				if !yield(d) {
					return
				}
			}
		}
	}
}

// ExtendMetadata scans dir and merges the results into md, consulting
// external directories when enabled. Guesses below the minimum
// certainty are dropped before merging. Returns the accepted datums in
// acceptance order.
func ExtendMetadata(ctx context.Context, md *upstream.Metadata, dir string, opts Options) []upstream.Datum {
	opts = opts.WithDefaults()

	accepted := upstream.UpdateFromGuesses(md,
		upstream.FilterByCertainty(Scan(ctx, dir, opts), opts.MinimumCertainty))

	if opts.ConsultDirectory && opts.Net.Allowed() {
		accepted = append(accepted, consultDirectories(ctx, md, dir, opts)...)
	}
	return accepted
}

// GuessMetadata gathers, normalizes and optionally validates metadata
// for the project at dir. Findings are only produced when opts.Check
// is set.
func GuessMetadata(ctx context.Context, dir string, opts Options) (*upstream.Metadata, []upstream.Finding, error) {
	opts = opts.WithDefaults()
	if _, err := os.Stat(dir); err != nil {
		return nil, nil, err
	}

	md := upstream.NewMetadata()
	ExtendMetadata(ctx, md, dir, opts)
	upstream.FixMetadata(ctx, md, opts.Net)

	var findings []upstream.Finding
	if opts.Check {
		findings = upstream.CheckMetadata(ctx, md, opts.ExpectedVersion, opts.Net)
	}
	return md, findings, nil
}

// consultDirectories asks the registries that plausibly know this
// project, based on what the file scan already established.
func consultDirectories(ctx context.Context, md *upstream.Metadata, dir string, opts Options) []upstream.Datum {
	var proposals []upstream.Datum

	if d, ok := md.Get(upstream.FieldCargoCrate); ok {
		crates := directory.NewCrates(opts.Cache, opts.CacheTTL)
		data, err := crates.Lookup(ctx, d.Text())
		if err != nil {
			opts.Logger("directory %s: %v", crates.Name(), err)
		} else {
			proposals = append(proposals, data...)
		}
	}

	if name, ok := md.Get(upstream.FieldName); ok && pythonProject(dir) {
		pypi := directory.NewPyPI(opts.Cache, opts.CacheTTL)
		data, err := pypi.Lookup(ctx, name.Text())
		if err != nil {
			opts.Logger("directory %s: %v", pypi.Name(), err)
		} else {
			proposals = append(proposals, data...)
		}
	}

	if len(proposals) == 0 {
		return nil
	}
	filtered := upstream.FilterByCertainty(func(yield func(upstream.Datum) bool) {
		for _, d := range proposals {
			if !yield(d) {
				return
			}
		}
	}, opts.MinimumCertainty)
	return upstream.UpdateFromGuesses(md, filtered)
}

func pythonProject(dir string) bool {
	for _, name := range []string{"pyproject.toml", "setup.py", "setup.cfg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
