package fight

// Handler is the embedding game's sigil behaviour.
//
// Activate is called once for every sigil on every activating card, for every
// event; filtering by event is the handler's job. holder is the card carrying
// the sigil. The handler may mutate holder, any other card, the board, the
// players, or the scale through m, and may dispatch nested passes. m must not be
// retained after Activate returns.
type Handler[S comparable] interface {
	Activate(sigil S, holder *Card[S], ctx *Context[S], m *Manager[S])
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[S comparable] func(sigil S, holder *Card[S], ctx *Context[S], m *Manager[S])

// Activate calls f.
func (f HandlerFunc[S]) Activate(sigil S, holder *Card[S], ctx *Context[S], m *Manager[S]) {
	f(sigil, holder, ctx, m)
}
