package fight

// Draw moves the front card of id's deck to the back of id's hand.
//
// The drawn card is the causing card of a Draw pass over the whole board, run
// before it reaches the hand; sigils can only reach it through the context
// during that pass. An empty deck broadcasts PlayerStarve(id) instead and
// returns a *StarveError.
func (m *Manager[S]) Draw(id PlayerID) error {
	player := m.Player(id)
	card, ok := player.popDeck()
	if !ok {
		m.HandleSigils(PlayerStarve(id), nil)
		return &StarveError{Player: id}
	}
	m.HandleSigils(Draw, card)
	player.Hand = append(player.Hand, card)
	return nil
}
