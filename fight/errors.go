package fight

import (
	"errors"
	"fmt"
)

// ErrPlayerStarve indicates a draw from an empty deck.
var ErrPlayerStarve = errors.New("player starve")

// StarveError reports which player failed to draw. It matches ErrPlayerStarve
// with errors.Is.
type StarveError struct {
	Player PlayerID
}

func (e *StarveError) Error() string {
	return fmt.Sprintf("%s player cannot draw: deck is empty", e.Player)
}

// Unwrap returns ErrPlayerStarve.
func (e *StarveError) Unwrap() error { return ErrPlayerStarve }
