package fight

import (
	"io"
	"log"
)

// Manager is the state of one fight and the entry point for every action in it.
// It is not safe for concurrent use; dispatch is synchronous and re-entrant.
type Manager[S comparable] struct {
	// Board is mutated by actions and sigils alike.
	Board *Board[S]
	// Scale is positive when the fight favours First and negative when it
	// favours Second.
	Scale int

	players   [2]*Player[S]
	active    PlayerID
	handler   Handler[S]
	logger    *log.Logger
	observers []Observer
	maxDepth  int
	depth     int
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	logger    *log.Logger
	observers []Observer
	maxDepth  int
}

// WithLogger sets the logger used for pass diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver registers an observer for dispatch passes. It may be given more
// than once; observers are notified in registration order.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observers = append(o.observers, observer)
		}
	}
}

// WithMaxDepth bounds how deeply passes may nest. A pass that would run at depth
// n or deeper is skipped. Zero, the default, means unbounded.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// NewManager creates a fight with a blank board, a neutral scale, two empty
// players, and active as the player whose row activates first. A nil handler
// ignores every sigil.
func NewManager[S comparable](handler Handler[S], active PlayerID, opts ...Option) *Manager[S] {
	o := options{logger: log.New(io.Discard, "", 0)}
	for _, opt := range opts {
		opt(&o)
	}
	if handler == nil {
		handler = HandlerFunc[S](func(S, *Card[S], *Context[S], *Manager[S]) {})
	}
	return &Manager[S]{
		Board:     NewBoard[S](),
		players:   [2]*Player[S]{NewPlayer[S](), NewPlayer[S]()},
		active:    active,
		handler:   handler,
		logger:    o.logger,
		observers: o.observers,
		maxDepth:  o.maxDepth,
	}
}

// Player returns the state of player id.
func (m *Manager[S]) Player(id PlayerID) *Player[S] {
	return m.players[id]
}

// Active returns the player whose row activates first.
func (m *Manager[S]) Active() PlayerID { return m.active }

// SetActive changes the player whose row activates first. Passes already
// running keep the order they started with.
func (m *Manager[S]) SetActive(id PlayerID) { m.active = id }

// Depth returns the number of passes currently running.
func (m *Manager[S]) Depth() int { return m.depth }

// Tip moves the scale by n in favour of id.
func (m *Manager[S]) Tip(id PlayerID, n int) {
	if id == Second {
		n = -n
	}
	m.Scale += n
}
