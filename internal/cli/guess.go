package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/mkrale/upmeta/pkg/cache"
	"github.com/mkrale/upmeta/pkg/guess"
	"github.com/mkrale/upmeta/pkg/upstream"
	"github.com/mkrale/upmeta/pkg/vcs"
)

// guessOpts holds the command-line flags for the guess command.
type guessOpts struct {
	net             bool   // allow network lookups
	directory       bool   // consult external package directories
	check           bool   // verify gathered values after fixup
	minCertainty    string // discard guesses below this confidence
	expectedVersion string // version the Version field is checked against
	jsonOut         bool   // emit JSON instead of styled text
	yamlOut         bool   // emit a YAML document of field: value pairs
	noCache         bool   // bypass the HTTP response cache
	redisAddr       string // use a Redis cache backend instead of files
	review          bool   // interactively review fields before printing
}

// guesserOptions converts guessOpts into guess.Options.
func (o *guessOpts) guesserOptions(ctx context.Context) (guess.Options, error) {
	opts := guess.Options{
		ConsultDirectory: o.directory,
		Check:            o.check,
		ExpectedVersion:  o.expectedVersion,
	}
	if !o.net {
		opts.Net = vcs.NetDenied
	}
	if o.minCertainty != "" {
		c, err := upstream.ParseCertainty(o.minCertainty)
		if err != nil {
			return opts, err
		}
		opts.MinimumCertainty = c
	}
	backend, err := newCacheBackend(ctx, o.noCache, o.redisAddr)
	if err != nil {
		return opts, err
	}
	opts.Cache = backend
	logger := loggerFromContext(ctx)
	opts.Logger = func(msg string, args ...any) { logger.Warnf(msg, args...) }
	return opts, nil
}

// newGuessCmd creates the guess command.
//
// Default options:
//   - net: true (URL probing and redirect resolution allowed)
//   - directory: false (no crates.io/PyPI lookups unless requested)
//   - check: false (no post-fixup verification pass)
func newGuessCmd() *cobra.Command {
	opts := guessOpts{net: true}

	cmd := &cobra.Command{
		Use:   "guess [directory]",
		Short: "Guess upstream metadata from a project tree",
		Long: `Guess upstream metadata from a project tree.

Scans the directory for package manifests (Cargo.toml, package.json,
pyproject.toml, pubspec.yaml, go.mod and more), merges the findings by
confidence, and repairs repository URLs.

Examples:
  upmeta guess                          # Current directory
  upmeta guess ~/src/requests           # Explicit directory
  upmeta guess --directory --check      # Consult PyPI/crates.io and verify
  upmeta guess --net=false --json       # Offline, machine-readable output`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runGuess(cmd.Context(), dir, &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.net, "net", opts.net, "allow network access for URL checks")
	cmd.Flags().BoolVar(&opts.directory, "directory", false, "consult external package directories (crates.io, PyPI)")
	cmd.Flags().BoolVar(&opts.check, "check", false, "verify gathered metadata after fixup")
	cmd.Flags().StringVar(&opts.minCertainty, "min-certainty", "", "discard guesses below this confidence (possible, likely, confident, certain)")
	cmd.Flags().StringVar(&opts.expectedVersion, "expected-version", "", "version the Version field is checked against")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit JSON")
	cmd.Flags().BoolVar(&opts.yamlOut, "yaml", false, "emit YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the HTTP response cache")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the HTTP response cache (e.g. localhost:6379)")
	cmd.Flags().BoolVar(&opts.review, "review", false, "interactively review fields before printing")

	return cmd
}

func runGuess(ctx context.Context, dir string, opts *guessOpts) error {
	logger := loggerFromContext(ctx)
	gopts, err := opts.guesserOptions(ctx)
	if err != nil {
		return err
	}
	if c := gopts.Cache; c != nil {
		defer c.Close()
	}

	var sp *Spinner
	if opts.net && !opts.jsonOut && !opts.yamlOut {
		sp = newSpinnerWithContext(ctx, "Gathering metadata")
		sp.Start()
	}

	prog := newProgress(logger)
	md, findings, err := guess.GuessMetadata(ctx, dir, gopts)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Guessed %d fields", md.Len()))

	data := md.Sorted()
	if opts.review {
		data, err = reviewData(data)
		if err != nil {
			return err
		}
	}

	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	if opts.yamlOut {
		return writeYAML(os.Stdout, data)
	}

	printMetadata(data)
	for _, f := range findings {
		printWarning("%s: %s", f.Field, f.Message)
	}
	return nil
}

// writeYAML emits the gathered fields as a flat YAML mapping in field
// order, with person lists rendered in their string notation.
func writeYAML(w io.Writer, data []upstream.Datum) error {
	doc := make(yaml.MapSlice, 0, len(data))
	for _, d := range data {
		value := d.Value()
		if people := d.People(); people != nil {
			names := make([]string, len(people))
			for i, p := range people {
				names[i] = p.String()
			}
			value = names
		}
		doc = append(doc, yaml.MapItem{Key: string(d.Field), Value: value})
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// printMetadata renders each field as an aligned key/value line with the
// confidence and origin dimmed on the right.
func printMetadata(data []upstream.Datum) {
	if len(data) == 0 {
		printInfo("No metadata found")
		return
	}
	width := 0
	for _, d := range data {
		if len(d.Field) > width {
			width = len(d.Field)
		}
	}
	for _, d := range data {
		value := d.String()
		if isURLField(d.Field) {
			value = StyleLink.Render(value)
		} else {
			value = StyleValue.Render(value)
		}
		annot := d.Certainty.String()
		if !d.Origin.Empty() {
			annot += " · " + d.Origin.String()
		}
		fmt.Printf("%-*s  %s  %s\n", width, StyleHighlight.Render(string(d.Field)), value, StyleDim.Render(annot))
	}
}

func isURLField(f upstream.Field) bool {
	switch f {
	case upstream.FieldHomepage, upstream.FieldRepository, upstream.FieldRepositoryBrowse,
		upstream.FieldBugDatabase, upstream.FieldBugSubmit, upstream.FieldDownload,
		upstream.FieldWiki, upstream.FieldFunding, upstream.FieldWebservice,
		upstream.FieldDonation, upstream.FieldFAQ, upstream.FieldMailingList:
		return true
	}
	return f == upstream.FieldDocumentation || strings.HasSuffix(string(f), "-Page")
}

// newCacheBackend picks the HTTP response cache backend for a command run.
// Backend failures degrade to the null cache rather than failing the command.
func newCacheBackend(ctx context.Context, noCache bool, redisAddr string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		c, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return c, nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return c, nil
}
