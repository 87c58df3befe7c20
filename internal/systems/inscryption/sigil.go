// Package inscryption is a reference sigil set for the fight engine, modelled
// on the sigils of Inscryption. Only a handful have effects; the rest exist so
// catalogs can name them.
package inscryption

import (
	"fmt"
	"strings"
)

// Sigil identifies one ability.
type Sigil int

const (
	BifurcatedStrike Sigil = iota + 1
	BoneKing
	BombLatch
	Amorphous
	RabbitHole
	DamBuilder
	BeesWithin
	LooseTail
	Sprinter
	Waterborne
	Guardian
	Burrower
)

var sigilNames = map[Sigil]string{
	BifurcatedStrike: "Bifurcated Strike",
	BoneKing:         "Bone King",
	BombLatch:        "Bomb Latch",
	Amorphous:        "Amorphous",
	RabbitHole:       "Rabbit Hole",
	DamBuilder:       "Dam Builder",
	BeesWithin:       "Bees Within",
	LooseTail:        "Loose Tail",
	Sprinter:         "Sprinter",
	Waterborne:       "Waterborne",
	Guardian:         "Guardian",
	Burrower:         "Burrower",
}

// Sigils lists every sigil in declaration order.
func Sigils() []Sigil {
	sigils := make([]Sigil, 0, len(sigilNames))
	for s := BifurcatedStrike; s <= Burrower; s++ {
		sigils = append(sigils, s)
	}
	return sigils
}

func (s Sigil) String() string {
	if name, ok := sigilNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Sigil(%d)", int(s))
}

// ParseSigil accepts a display name in any case, with or without spaces,
// hyphens, or underscores between words.
func ParseSigil(value string) (Sigil, error) {
	key := sigilKey(value)
	if key == "" {
		return 0, fmt.Errorf("sigil must not be empty")
	}
	for sigil, name := range sigilNames {
		if sigilKey(name) == key {
			return sigil, nil
		}
	}
	return 0, fmt.Errorf("sigil %q is not supported", strings.TrimSpace(value))
}

func sigilKey(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(value)))
}
