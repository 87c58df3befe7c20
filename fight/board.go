package fight

// Lanes is the number of slots in each player's row.
const Lanes = 4

// OpposingLane maps a lane in one row to the lane it faces in the other row.
// Rows are stored from each owner's own perspective, so lane 0 faces lane 3.
func OpposingLane(lane int) int {
	return Lanes - 1 - lane
}

// Slot is one board position. The zero Slot is blank.
type Slot[S comparable] struct {
	card *Card[S]
}

// Blank reports whether the slot holds no card.
func (s Slot[S]) Blank() bool { return s.card == nil }

// Card returns the occupying card, or nil when blank.
func (s Slot[S]) Card() *Card[S] { return s.card }

// Position addresses a slot on the board.
type Position struct {
	Player PlayerID
	Lane   int
}

// Board holds both players' rows.
type Board[S comparable] struct {
	rows [2][Lanes]Slot[S]
}

// NewBoard creates a board with every slot blank.
func NewBoard[S comparable]() *Board[S] {
	return &Board[S]{}
}

// Row returns a copy of a player's row, indexed from that player's perspective.
func (b *Board[S]) Row(id PlayerID) [Lanes]Slot[S] {
	return b.rows[id]
}

// At returns the card in a slot, or nil when the slot is blank.
func (b *Board[S]) At(id PlayerID, lane int) *Card[S] {
	return b.rows[id][lane].card
}

// Occupied reports whether a slot holds a card.
func (b *Board[S]) Occupied(id PlayerID, lane int) bool {
	return b.rows[id][lane].card != nil
}

// Place puts card into a slot and returns whatever was there before. Placing
// nil blanks the slot.
func (b *Board[S]) Place(id PlayerID, lane int, card *Card[S]) *Card[S] {
	prev := b.rows[id][lane].card
	b.rows[id][lane].card = card
	return prev
}

// Take removes and returns the card in a slot, leaving it blank.
func (b *Board[S]) Take(id PlayerID, lane int) *Card[S] {
	return b.Place(id, lane, nil)
}

// Opposing returns the card facing the given slot from the other row.
func (b *Board[S]) Opposing(id PlayerID, lane int) *Card[S] {
	return b.At(id.Opponent(), OpposingLane(lane))
}

// Find locates card on the board.
func (b *Board[S]) Find(card *Card[S]) (Position, bool) {
	if card == nil {
		return Position{}, false
	}
	for _, id := range []PlayerID{First, Second} {
		for lane := 0; lane < Lanes; lane++ {
			if b.rows[id][lane].card == card {
				return Position{Player: id, Lane: lane}, true
			}
		}
	}
	return Position{}, false
}
