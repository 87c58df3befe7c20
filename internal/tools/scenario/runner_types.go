package scenario

import "github.com/Mouthless-Stoat/Leshy/fight"

type scenarioState[S comparable] struct {
	fight *fight.Manager[S]
	// lastDraw is the outcome of the most recent draw step.
	lastDraw *drawOutcome
}

type drawOutcome struct {
	player  fight.PlayerID
	starved bool
}
