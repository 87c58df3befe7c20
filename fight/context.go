package fight

// Context is what a sigil sees when it is activated.
type Context[S comparable] struct {
	// Event is the event being broadcast.
	Event Event
	// Causing is the card whose involvement triggered the event, or nil. It may
	// be the card being activated. During a Draw pass it is the drawn card,
	// which is in no container until the pass finishes.
	Causing *Card[S]
	// Depth is 0 for an outermost pass and grows by one per nested pass.
	Depth int
}

// Causes reports whether card is the causing card of this context.
func (c *Context[S]) Causes(card *Card[S]) bool {
	return c.Causing != nil && c.Causing == card
}
