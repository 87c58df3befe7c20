package luasigil

import (
	"io"
	"log"

	"github.com/Mouthless-Stoat/Leshy/fight"
	"github.com/Shopify/go-lua"
)

// Handler dispatches fight activations to Lua sigil functions. It is not safe
// for concurrent use.
type Handler struct {
	registry *Registry
	logger   *log.Logger
	missing  map[string]bool
}

var _ fight.Handler[string] = (*Handler)(nil)

// NewHandler creates a handler over registry. A nil logger discards output.
func NewHandler(registry *Registry, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Handler{
		registry: registry,
		logger:   logger,
		missing:  make(map[string]bool),
	}
}

// Activate calls the Lua function registered for sigil as fn(ctx, holder, fight).
//
// A sigil without a function is ignored, and a script error is logged; neither
// interrupts the pass.
func (h *Handler) Activate(sigil string, holder *fight.Card[string], ctx *fight.Context[string], m *fight.Manager[string]) {
	slot, err := h.registry.Lookup(sigil)
	if err != nil {
		if !h.missing[sigil] {
			h.missing[sigil] = true
			h.logger.Printf("luasigil: %v", err)
		}
		return
	}

	state := h.registry.state
	top := state.Top()
	defer state.SetTop(top)

	act := &activation{}
	defer func() { act.done = true }()

	h.registry.push(slot)
	pushContext(state, holder, ctx, act)
	pushCard(state, holder, act)
	pushFight(state, m, act)
	if err := state.ProtectedCall(3, 0, 0); err != nil {
		h.logger.Printf("luasigil: %s on %s during %s: %v", sigil, holder.Name(), ctx.Event, err)
	}
}

func pushContext(state *lua.State, holder *fight.Card[string], ctx *fight.Context[string], act *activation) {
	state.NewTable()
	state.PushString(EventName(ctx.Event))
	state.SetField(-2, "event")
	if ctx.Event.Kind == fight.EventPlayerStarve {
		state.PushString(ctx.Event.Player.String())
		state.SetField(-2, "player")
	}
	state.PushInteger(ctx.Depth)
	state.SetField(-2, "depth")
	state.PushBoolean(ctx.Causes(holder))
	state.SetField(-2, "self_caused")
	if ctx.Causing != nil {
		pushCard(state, ctx.Causing, act)
		state.SetField(-2, "causing")
	}
}
