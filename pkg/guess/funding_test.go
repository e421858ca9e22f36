package guess

import (
	"context"
	"testing"

	"github.com/mkrale/upmeta/pkg/upstream"
)

func TestFundingGitHubSponsors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".github/FUNDING.yml", "github: [octocat, hubot]\n")

	data, err := (&Funding{}).Guess(context.Background(), dir)
	if err != nil {
		t.Fatalf("Guess error: %v", err)
	}
	if len(data) != 1 {
		t.Fatalf("data = %d datums, want 1", len(data))
	}
	d := data[0]
	if d.Field != upstream.FieldFunding || d.Text() != "https://github.com/sponsors/octocat" {
		t.Errorf("Funding = %q", d.Text())
	}
	if d.Origin != "./.github/FUNDING.yml" {
		t.Errorf("Origin = %q", d.Origin)
	}
}

func TestFundingScalarNotation(t *testing.T) {
	// github accepts a scalar as well as a sequence.
	dir := t.TempDir()
	writeFile(t, dir, ".github/FUNDING.yml", "github: octocat\n")

	data, err := (&Funding{}).Guess(context.Background(), dir)
	if err != nil {
		t.Fatalf("Guess error: %v", err)
	}
	if len(data) != 1 || data[0].Text() != "https://github.com/sponsors/octocat" {
		t.Errorf("data = %v", data)
	}
}

func TestFundingPlatformPreference(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "FUNDING.yml", "patreon: creator\ncustom: https://example.org/donate\n")

	data, err := (&Funding{}).Guess(context.Background(), dir)
	if err != nil {
		t.Fatalf("Guess error: %v", err)
	}
	if len(data) != 1 || data[0].Text() != "https://www.patreon.com/creator" {
		t.Errorf("data = %v", data)
	}
	if data[0].Origin != "./FUNDING.yml" {
		t.Errorf("Origin = %q", data[0].Origin)
	}
}

func TestFundingMissing(t *testing.T) {
	data, err := (&Funding{}).Guess(context.Background(), t.TempDir())
	if err != nil || len(data) != 0 {
		t.Errorf("missing file: data=%v err=%v", data, err)
	}
}

func TestSecurityMD(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".github/SECURITY.md", "# Security Policy\n")

	data, err := (&SecurityMD{}).Guess(context.Background(), dir)
	if err != nil {
		t.Fatalf("Guess error: %v", err)
	}
	if len(data) != 1 {
		t.Fatalf("data = %d datums, want 1", len(data))
	}
	if data[0].Field != upstream.FieldSecurityMD || data[0].Text() != ".github/SECURITY.md" {
		t.Errorf("Security-MD = %q", data[0].Text())
	}
}

func TestSecurityMDPrefersRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "SECURITY.md", "root\n")
	writeFile(t, dir, ".github/SECURITY.md", "nested\n")

	data, err := (&SecurityMD{}).Guess(context.Background(), dir)
	if err != nil {
		t.Fatalf("Guess error: %v", err)
	}
	if len(data) != 1 || data[0].Text() != "SECURITY.md" {
		t.Errorf("data = %v", data)
	}
}

func TestSecurityMDMissing(t *testing.T) {
	data, err := (&SecurityMD{}).Guess(context.Background(), t.TempDir())
	if err != nil || len(data) != 0 {
		t.Errorf("missing file: data=%v err=%v", data, err)
	}
}
