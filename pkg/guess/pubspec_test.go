package guess

import (
	"context"
	"testing"

	"github.com/mkrale/upmeta/pkg/upstream"
)

func TestPubspecGuess(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pubspec.yaml", `
name: provider
version: 6.1.2
description: A wrapper around InheritedWidget.
homepage: https://github.com/rrousselGit/provider
repository: https://github.com/rrousselGit/provider
issue_tracker: https://github.com/rrousselGit/provider/issues
documentation: https://pub.dev/documentation/provider/latest/
environment:
  sdk: ">=2.17.0 <4.0.0"
`)

	data, err := (&Pubspec{}).Guess(context.Background(), dir)
	if err != nil {
		t.Fatalf("Guess error: %v", err)
	}

	got := byField(data)
	checks := map[upstream.Field]string{
		upstream.FieldName:        "provider",
		upstream.FieldVersion:     "6.1.2",
		upstream.FieldSummary:     "A wrapper around InheritedWidget.",
		upstream.FieldHomepage:    "https://github.com/rrousselGit/provider",
		upstream.FieldRepository:  "https://github.com/rrousselGit/provider",
		upstream.FieldBugDatabase: "https://github.com/rrousselGit/provider/issues",
	}
	for f, want := range checks {
		if d, ok := got[f]; !ok || d.Text() != want {
			t.Errorf("%s = %q, want %q", f, d.Text(), want)
		}
	}
	docs := got[upstream.FieldDocumentation].List()
	if len(docs) != 1 || docs[0] != "https://pub.dev/documentation/provider/latest/" {
		t.Errorf("Documentation = %v", docs)
	}
}

func TestPubspecMissing(t *testing.T) {
	data, err := (&Pubspec{}).Guess(context.Background(), t.TempDir())
	if err != nil || len(data) != 0 {
		t.Errorf("missing file: data=%v err=%v", data, err)
	}
}
