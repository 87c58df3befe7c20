package fight

// Pass describes one dispatch pass for observers.
type Pass struct {
	Event Event
	// Depth is 0 for an outermost pass.
	Depth int
	// Active is the player whose row activated first.
	Active PlayerID
	// Causing reports whether the pass had a causing card.
	Causing bool
	// Activations counts sigil activations; it is only final in PassFinished.
	Activations int
}

// Observer is notified around every dispatch pass. Nested passes start and
// finish inside their parent.
type Observer interface {
	PassStarted(Pass)
	PassFinished(Pass)
	// PassSkipped is called instead of the other two when the pass would exceed
	// the manager's depth bound.
	PassSkipped(Pass)
}
