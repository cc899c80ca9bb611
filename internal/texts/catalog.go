// Package texts holds the static practice-text catalog.
package texts

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"typingracer/internal/model"
)

//go:embed catalog.toml
var defaultCatalog string

type catalogFile struct {
	Easy   []string `toml:"easy"`
	Medium []string `toml:"medium"`
	Hard   []string `toml:"hard"`
}

// Catalog maps each difficulty tier to a fixed list of passages. It is
// read-only after construction and safe for concurrent use.
type Catalog struct {
	passages map[model.Difficulty][]string
	intn     func(n int) int
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a catalog from a TOML file on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Parse(string(data))
}

// Parse decodes a TOML catalog. Every tier must have at least one passage and
// no passage may be blank.
func Parse(data string) (*Catalog, error) {
	var f catalogFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	tiers := map[model.Difficulty][]string{
		model.Easy:   f.Easy,
		model.Medium: f.Medium,
		model.Hard:   f.Hard,
	}
	for _, d := range model.Difficulties() {
		list := tiers[d]
		if len(list) == 0 {
			return nil, fmt.Errorf("catalog tier %q has no passages", d)
		}
		for i, p := range list {
			if strings.TrimSpace(p) == "" {
				return nil, fmt.Errorf("catalog tier %q: passage %d is empty", d, i)
			}
		}
	}

	return &Catalog{passages: tiers, intn: rand.IntN}, nil
}

// NormalizeDifficulty maps anything outside the known tiers to medium.
// The match is exact and case-sensitive.
func NormalizeDifficulty(s string) model.Difficulty {
	switch d := model.Difficulty(s); d {
	case model.Easy, model.Medium, model.Hard:
		return d
	default:
		return model.Medium
	}
}

// PracticeText picks a passage uniformly at random from the requested tier.
func (c *Catalog) PracticeText(difficulty string) model.PracticeText {
	d := NormalizeDifficulty(difficulty)
	list := c.passages[d]
	return model.PracticeText{
		Text:       list[c.intn(len(list))],
		Difficulty: d,
	}
}

// Passages returns a copy of the passages for a tier.
func (c *Catalog) Passages(d model.Difficulty) []string {
	return append([]string(nil), c.passages[d]...)
}
