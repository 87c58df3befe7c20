// Package catalog loads card templates from YAML and builds fight cards from
// them.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/Mouthless-Stoat/Leshy/fight"
	"gopkg.in/yaml.v3"
)

// ErrUnknownCard indicates a card name missing from the catalog.
var ErrUnknownCard = errors.New("unknown card")

// Entry is one card as written in a catalog file.
type Entry struct {
	Name   string   `yaml:"name"`
	Power  int      `yaml:"power"`
	Health int      `yaml:"health"`
	Sigils []string `yaml:"sigils"`
}

type document struct {
	Cards []Entry `yaml:"cards"`
}

// Decode reads a catalog document and validates its entries.
func Decode(r io.Reader) ([]Entry, error) {
	var doc document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validate(doc.Cards); err != nil {
		return nil, err
	}
	return doc.Cards, nil
}

// LoadFile decodes the catalog at path.
func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func validate(entries []Entry) error {
	seen := make(map[string]struct{}, len(entries))
	for i := range entries {
		entries[i].Name = strings.TrimSpace(entries[i].Name)
		name := entries[i].Name
		if name == "" {
			return fmt.Errorf("card %d: name is required", i+1)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("card %q: duplicate name", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Catalog maps card names to shared templates.
type Catalog[S comparable] struct {
	cards map[string]*fight.CardData[S]
}

// Build converts entries into templates, translating sigil names with parse.
func Build[S comparable](entries []Entry, parse func(string) (S, error)) (*Catalog[S], error) {
	c := &Catalog[S]{cards: make(map[string]*fight.CardData[S], len(entries))}
	for _, entry := range entries {
		sigils := make([]S, 0, len(entry.Sigils))
		for _, name := range entry.Sigils {
			sigil, err := parse(name)
			if err != nil {
				return nil, fmt.Errorf("card %q: %w", entry.Name, err)
			}
			sigils = append(sigils, sigil)
		}
		c.cards[entry.Name] = fight.NewCardData(entry.Name, entry.Power, entry.Health, sigils...)
	}
	return c, nil
}

// StringSigil accepts any non-empty sigil name as is.
func StringSigil(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("sigil name is required")
	}
	return name, nil
}

// Data returns the template for name.
func (c *Catalog[S]) Data(name string) (*fight.CardData[S], error) {
	data, ok := c.cards[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCard, name)
	}
	return data, nil
}

// NewCard creates a fresh card instance of name for owner.
func (c *Catalog[S]) NewCard(name string, owner fight.PlayerID) (*fight.Card[S], error) {
	data, err := c.Data(name)
	if err != nil {
		return nil, err
	}
	return fight.NewCard(data, owner), nil
}

// Names returns every card name in sorted order.
func (c *Catalog[S]) Names() []string {
	names := make([]string, 0, len(c.cards))
	for name := range c.cards {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
