package fight

// PlayerID identifies one side of a fight.
type PlayerID int

const (
	// First is the player who owns the top half of the scale.
	First PlayerID = iota
	// Second is the other player.
	Second
)

// Opponent returns the other player.
func (id PlayerID) Opponent() PlayerID {
	if id == First {
		return Second
	}
	return First
}

func (id PlayerID) String() string {
	switch id {
	case First:
		return "first"
	case Second:
		return "second"
	default:
		return "unknown"
	}
}

// Valid reports whether id is First or Second.
func (id PlayerID) Valid() bool { return id == First || id == Second }

// Player holds the cards a player has not yet put on the board.
type Player[S comparable] struct {
	// Hand is ordered by arrival; the last card is the most recently drawn.
	Hand []*Card[S]
	// Deck is drawn from the front.
	Deck []*Card[S]
}

// NewPlayer creates a player with an empty hand and deck.
func NewPlayer[S comparable]() *Player[S] {
	return &Player[S]{}
}

// AddToDeck puts cards at the bottom of the deck, in order.
func (p *Player[S]) AddToDeck(cards ...*Card[S]) {
	p.Deck = append(p.Deck, cards...)
}

// Top returns the next card to be drawn without removing it.
func (p *Player[S]) Top() (*Card[S], bool) {
	if len(p.Deck) == 0 {
		return nil, false
	}
	return p.Deck[0], true
}

// popDeck removes and returns the front of the deck.
func (p *Player[S]) popDeck() (*Card[S], bool) {
	if len(p.Deck) == 0 {
		return nil, false
	}
	card := p.Deck[0]
	p.Deck[0] = nil
	p.Deck = p.Deck[1:]
	return card, true
}
