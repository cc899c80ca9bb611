package texts

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"typingracer/internal/model"
)

func mustDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	return c
}

func TestDefault_FivePassagesPerTier(t *testing.T) {
	c := mustDefault(t)
	for _, d := range model.Difficulties() {
		if n := len(c.Passages(d)); n != 5 {
			t.Errorf("tier %q has %d passages, want 5", d, n)
		}
	}
}

func TestPracticeText_EchoesKnownTiers(t *testing.T) {
	c := mustDefault(t)
	for _, d := range model.Difficulties() {
		for i := 0; i < 20; i++ {
			got := c.PracticeText(string(d))
			if got.Difficulty != d {
				t.Fatalf("PracticeText(%q).Difficulty = %q", d, got.Difficulty)
			}
			if got.Text == "" {
				t.Fatalf("PracticeText(%q) returned empty text", d)
			}
			if !slices.Contains(c.Passages(d), got.Text) {
				t.Fatalf("PracticeText(%q) returned %q, not in tier", d, got.Text)
			}
		}
	}
}

func TestPracticeText_FallsBackToMedium(t *testing.T) {
	c := mustDefault(t)
	for _, in := range []string{"", "invalid", "EASY", "Hard", " medium", "extreme"} {
		got := c.PracticeText(in)
		if got.Difficulty != model.Medium {
			t.Errorf("PracticeText(%q).Difficulty = %q, want medium", in, got.Difficulty)
		}
		if !slices.Contains(c.Passages(model.Medium), got.Text) {
			t.Errorf("PracticeText(%q) text not drawn from medium tier", in)
		}
	}
}

func TestPracticeText_IsRandom(t *testing.T) {
	c := mustDefault(t)
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		seen[c.PracticeText("hard").Text] = true
	}
	// 200 draws from 5 passages all landing on one is ~5^-199
	if len(seen) < 2 {
		t.Errorf("saw %d distinct passages over 200 draws, want more than 1", len(seen))
	}
}

func TestPracticeText_UsesInjectedSource(t *testing.T) {
	c := mustDefault(t)
	c.intn = func(n int) int { return n - 1 }

	got := c.PracticeText("easy")
	want := c.Passages(model.Easy)[4]
	if got.Text != want {
		t.Errorf("Text = %q, want last easy passage %q", got.Text, want)
	}
}

func TestNormalizeDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want model.Difficulty
	}{
		{"easy", model.Easy},
		{"medium", model.Medium},
		{"hard", model.Hard},
		{"", model.Medium},
		{"invalid", model.Medium},
		{"EASY", model.Medium},
	}
	for _, tt := range tests {
		if got := NormalizeDifficulty(tt.in); got != tt.want {
			t.Errorf("NormalizeDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse_MissingTier(t *testing.T) {
	_, err := Parse(`
easy = ["a"]
medium = ["b"]
`)
	if err == nil {
		t.Error("Parse() should fail when a tier is missing")
	}
}

func TestParse_BlankPassage(t *testing.T) {
	_, err := Parse(`
easy = ["a"]
medium = ["  "]
hard = ["c"]
`)
	if err == nil {
		t.Error("Parse() should fail on a blank passage")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	content := `
easy = ["one"]
medium = ["two"]
hard = ["three"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if got := c.PracticeText("hard"); got.Text != "three" {
		t.Errorf("Text = %q, want %q", got.Text, "three")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Error("LoadFile() should fail for a missing file")
	}
}
