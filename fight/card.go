package fight

import "slices"

// CardData is the immutable template a Card is created from. One CardData is
// shared by every copy of the card in a fight.
type CardData[S comparable] struct {
	name   string
	power  int
	health int
	sigils []S
}

// NewCardData creates a card template. The sigil list is copied.
func NewCardData[S comparable](name string, power, health int, sigils ...S) *CardData[S] {
	return &CardData[S]{
		name:   name,
		power:  power,
		health: health,
		sigils: slices.Clone(sigils),
	}
}

// Name is the display name of the card.
func (d *CardData[S]) Name() string { return d.name }

// Power is the unmodified power of the card.
func (d *CardData[S]) Power() int { return d.power }

// Health is the unmodified health of the card. Damage and healing never change
// it; they accumulate in Card.HealthMod instead.
func (d *CardData[S]) Health() int { return d.health }

// Sigils returns a copy of the printed sigils.
func (d *CardData[S]) Sigils() []S { return slices.Clone(d.sigils) }

// Card is one copy of a card in a deck, hand, or board slot.
type Card[S comparable] struct {
	// PowerMod is added to the base power.
	PowerMod int
	// HealthMod is added to the base health. Negative values are damage.
	HealthMod int
	// Owner is the player the card belongs to.
	Owner PlayerID

	data   *CardData[S]
	sigils []S
}

// NewCard creates a card instance whose working sigils are seeded from data.
func NewCard[S comparable](data *CardData[S], owner PlayerID) *Card[S] {
	return &Card[S]{
		Owner:  owner,
		data:   data,
		sigils: slices.Clone(data.sigils),
	}
}

// Data returns the shared template for the card.
func (c *Card[S]) Data() *CardData[S] { return c.data }

// Name is shorthand for Data().Name().
func (c *Card[S]) Name() string { return c.data.name }

// Power is the effective power: base power plus PowerMod.
func (c *Card[S]) Power() int { return c.data.power + c.PowerMod }

// Health is the effective health: base health plus HealthMod.
func (c *Card[S]) Health() int { return c.data.health + c.HealthMod }

// Dead reports whether the effective health has dropped to zero or below.
func (c *Card[S]) Dead() bool { return c.Health() <= 0 }

// Sigils returns a copy of the card's working sigils in activation order.
func (c *Card[S]) Sigils() []S { return slices.Clone(c.sigils) }

// SetSigils replaces the working sigils with a copy of sigils.
func (c *Card[S]) SetSigils(sigils []S) { c.sigils = slices.Clone(sigils) }

// HasSigil reports whether the card currently carries sigil.
func (c *Card[S]) HasSigil(sigil S) bool { return slices.Contains(c.sigils, sigil) }

// AddSigil appends sigil to the working sigils.
func (c *Card[S]) AddSigil(sigil S) { c.sigils = append(c.sigils, sigil) }

// RemoveSigil removes the first occurrence of sigil and reports whether one
// was found.
func (c *Card[S]) RemoveSigil(sigil S) bool {
	i := slices.Index(c.sigils, sigil)
	if i < 0 {
		return false
	}
	c.sigils = slices.Delete(c.sigils, i, i+1)
	return true
}

// ReplaceSigil swaps the first occurrence of old for replacement in place and
// reports whether old was found.
func (c *Card[S]) ReplaceSigil(old, replacement S) bool {
	i := slices.Index(c.sigils, old)
	if i < 0 {
		return false
	}
	c.sigils[i] = replacement
	return true
}

// takeSigils hands the current sigils to the caller as a snapshot and leaves the
// card with an independent working copy.
func (c *Card[S]) takeSigils() []S {
	snapshot := c.sigils
	c.sigils = slices.Clone(snapshot)
	return snapshot
}
