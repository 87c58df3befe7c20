package fight

import "fmt"

// EventKind is the closed set of things a sigil can be told about.
type EventKind int

const (
	EventAttack EventKind = iota
	EventActivate
	EventDeath
	EventDraw
	EventPlay
	EventSacrifice
	EventDamage
	EventTurnEnd
	EventPlayerStarve
)

var eventKindNames = [...]string{
	EventAttack:       "attack",
	EventActivate:     "activate",
	EventDeath:        "death",
	EventDraw:         "draw",
	EventPlay:         "play",
	EventSacrifice:    "sacrifice",
	EventDamage:       "damage",
	EventTurnEnd:      "turn_end",
	EventPlayerStarve: "player_starve",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("event(%d)", int(k))
	}
	return eventKindNames[k]
}

// EventKinds lists every kind in declaration order.
func EventKinds() []EventKind {
	kinds := make([]EventKind, len(eventKindNames))
	for i := range kinds {
		kinds[i] = EventKind(i)
	}
	return kinds
}

// Event is one broadcastable game event. Player is only meaningful for
// EventPlayerStarve, where it names the player who could not draw.
type Event struct {
	Kind   EventKind
	Player PlayerID
}

// Events without a payload.
var (
	Attack    = Event{Kind: EventAttack}
	Activate  = Event{Kind: EventActivate}
	Death     = Event{Kind: EventDeath}
	Draw      = Event{Kind: EventDraw}
	Play      = Event{Kind: EventPlay}
	Sacrifice = Event{Kind: EventSacrifice}
	Damage    = Event{Kind: EventDamage}
	TurnEnd   = Event{Kind: EventTurnEnd}
)

// PlayerStarve is broadcast when id tries to draw from an empty deck.
func PlayerStarve(id PlayerID) Event {
	return Event{Kind: EventPlayerStarve, Player: id}
}

func (e Event) String() string {
	if e.Kind == EventPlayerStarve {
		return fmt.Sprintf("%s(%s)", e.Kind, e.Player)
	}
	return e.Kind.String()
}
