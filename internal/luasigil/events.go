package luasigil

import (
	"fmt"
	"strings"

	"github.com/Mouthless-Stoat/Leshy/fight"
)

// ParsePlayer maps "first" or "second" to a player.
func ParsePlayer(name string) (fight.PlayerID, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "first":
		return fight.First, nil
	case "second":
		return fight.Second, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
	}
}

// EventName returns the snake_case name of the event kind, without the player
// payload.
func EventName(evt fight.Event) string {
	return evt.Kind.String()
}

// ParseEvent maps an event name back to an event. Starvation is written with
// its player, as in "player_starve(first)".
func ParseEvent(name string) (fight.Event, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if rest, ok := strings.CutPrefix(name, fight.EventPlayerStarve.String()); ok {
		player, found := strings.CutPrefix(rest, "(")
		if !found || !strings.HasSuffix(player, ")") {
			return fight.Event{}, fmt.Errorf("%w: %q needs a player", ErrUnknownEvent, name)
		}
		id, err := ParsePlayer(strings.TrimSuffix(player, ")"))
		if err != nil {
			return fight.Event{}, fmt.Errorf("parse event %q: %w", name, err)
		}
		return fight.PlayerStarve(id), nil
	}
	for _, kind := range fight.EventKinds() {
		if kind == fight.EventPlayerStarve {
			continue
		}
		if kind.String() == name {
			return fight.Event{Kind: kind}, nil
		}
	}
	return fight.Event{}, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}
