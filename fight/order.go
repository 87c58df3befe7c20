package fight

// sequence lists every board position in activation order for active: its own
// row from lane 0, then the other row from lane 0.
func sequence(active PlayerID) [2 * Lanes]Position {
	var order [2 * Lanes]Position
	for i, id := range [2]PlayerID{active, active.Opponent()} {
		for lane := 0; lane < Lanes; lane++ {
			order[i*Lanes+lane] = Position{Player: id, Lane: lane}
		}
	}
	return order
}

// ActivationOrder returns the occupied positions in the order the next pass
// would activate them.
func (m *Manager[S]) ActivationOrder() []Position {
	order := make([]Position, 0, 2*Lanes)
	for _, pos := range sequence(m.active) {
		if m.Board.Occupied(pos.Player, pos.Lane) {
			order = append(order, pos)
		}
	}
	return order
}

// HandleSigils runs one dispatch pass of evt over the board. causing may be nil.
//
// Positions are visited in activation order and each slot is read when it is
// reached, so a card removed earlier in the pass is not activated. A card's
// sigils are snapshotted when its slot starts activating: sigils it gains during
// the pass wait for the next pass, and sigils it loses still finish this one.
func (m *Manager[S]) HandleSigils(evt Event, causing *Card[S]) {
	pass := Pass{Event: evt, Depth: m.depth, Active: m.active, Causing: causing != nil}
	if m.maxDepth > 0 && m.depth >= m.maxDepth {
		m.logger.Printf("fight: skip %s pass at depth %d (max %d)", evt, m.depth, m.maxDepth)
		for _, o := range m.observers {
			o.PassSkipped(pass)
		}
		return
	}
	for _, o := range m.observers {
		o.PassStarted(pass)
	}

	base := Context[S]{Event: evt, Causing: causing, Depth: m.depth}
	m.depth++
	func() {
		defer func() { m.depth-- }()
		for _, pos := range sequence(pass.Active) {
			holder := m.Board.At(pos.Player, pos.Lane)
			if holder == nil {
				continue
			}
			for _, sigil := range holder.takeSigils() {
				ctx := base
				m.handler.Activate(sigil, holder, &ctx, m)
				pass.Activations++
			}
		}
	}()

	m.logger.Printf("fight: %s pass depth=%d active=%s activations=%d", evt, pass.Depth, pass.Active, pass.Activations)
	for _, o := range m.observers {
		o.PassFinished(pass)
	}
}
