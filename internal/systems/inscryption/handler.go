package inscryption

import (
	"math/rand/v2"

	"github.com/Mouthless-Stoat/Leshy/fight"
)

// Token cards created by sigil effects.
var (
	Bee    = fight.NewCardData[Sigil]("Bee", 1, 1)
	Rabbit = fight.NewCardData[Sigil]("Rabbit", 0, 1)
)

// Handler applies the sigils that have effects:
//
//   - Bees Within: a Bee joins the owner's hand when the holder is damaged.
//   - Rabbit Hole: a Rabbit joins the owner's hand when the holder is played.
//   - Bone King: the scale tips one toward the owner when the holder dies.
//   - Amorphous: becomes a random other sigil when the holder is played.
type Handler struct {
	// IntN returns a value in [0, n). It defaults to math/rand/v2.IntN.
	IntN func(n int) int
}

var _ fight.Handler[Sigil] = (*Handler)(nil)

// NewHandler creates a handler drawing randomness from intn. A nil intn uses
// the global source.
func NewHandler(intn func(n int) int) *Handler {
	if intn == nil {
		intn = rand.IntN
	}
	return &Handler{IntN: intn}
}

// NewSeededHandler creates a handler whose randomness is reproducible.
func NewSeededHandler(seed uint64) *Handler {
	rng := rand.New(rand.NewPCG(seed, seed))
	return NewHandler(rng.IntN)
}

// Activate implements fight.Handler.
func (h *Handler) Activate(sigil Sigil, holder *fight.Card[Sigil], ctx *fight.Context[Sigil], m *fight.Manager[Sigil]) {
	if !ctx.Causes(holder) {
		return
	}
	switch sigil {
	case BeesWithin:
		if ctx.Event == fight.Damage {
			addToHand(m, holder.Owner, Bee)
		}
	case RabbitHole:
		if ctx.Event == fight.Play {
			addToHand(m, holder.Owner, Rabbit)
		}
	case BoneKing:
		if ctx.Event == fight.Death {
			m.Tip(holder.Owner, 1)
		}
	case Amorphous:
		if ctx.Event == fight.Play {
			holder.ReplaceSigil(Amorphous, h.randomSigil())
		}
	}
}

func (h *Handler) randomSigil() Sigil {
	pool := make([]Sigil, 0, len(sigilNames)-1)
	for _, s := range Sigils() {
		if s != Amorphous {
			pool = append(pool, s)
		}
	}
	intn := h.IntN
	if intn == nil {
		intn = rand.IntN
	}
	return pool[intn(len(pool))]
}

func addToHand(m *fight.Manager[Sigil], id fight.PlayerID, data *fight.CardData[Sigil]) {
	player := m.Player(id)
	player.Hand = append(player.Hand, fight.NewCard(data, id))
}
