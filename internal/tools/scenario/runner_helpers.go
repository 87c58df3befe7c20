package scenario

import (
	"fmt"
	"strings"

	"github.com/Mouthless-Stoat/Leshy/fight"
	"github.com/Mouthless-Stoat/Leshy/internal/luasigil"
)

func (r *Runner[S]) failf(format string, args ...any) error {
	return r.assertions.Failf(format, args...)
}

func (r *Runner[S]) assertf(format string, args ...any) error {
	return r.assertions.Assertf(format, args...)
}

func (r *Runner[S]) requiredPlayer(args map[string]any) (fight.PlayerID, error) {
	id, err := luasigil.ParsePlayer(requiredString(args, "player"))
	if err != nil {
		return 0, r.failf("player: %v", err)
	}
	return id, nil
}

func (r *Runner[S]) requiredPosition(args map[string]any) (fight.Position, error) {
	id, err := r.requiredPlayer(args)
	if err != nil {
		return fight.Position{}, err
	}
	lane, ok := args["lane"].(int)
	if !ok {
		return fight.Position{}, r.failf("lane is required")
	}
	if lane < 0 || lane >= fight.Lanes {
		return fight.Position{}, r.failf("lane %d is out of range", lane)
	}
	return fight.Position{Player: id, Lane: lane}, nil
}

func (r *Runner[S]) playerCards(args map[string]any) (fight.PlayerID, []*fight.Card[S], error) {
	id, err := r.requiredPlayer(args)
	if err != nil {
		return 0, nil, err
	}
	names := stringList(args["cards"])
	cards := make([]*fight.Card[S], 0, len(names))
	for _, name := range names {
		card, err := r.system.Catalog.NewCard(name, id)
		if err != nil {
			return 0, nil, err
		}
		cards = append(cards, card)
	}
	return id, cards, nil
}

func (r *Runner[S]) sigilNames(card *fight.Card[S]) []string {
	sigils := card.Sigils()
	names := make([]string, 0, len(sigils))
	for _, sigil := range sigils {
		names = append(names, r.system.SigilName(sigil))
	}
	return names
}

func requiredString(args map[string]any, key string) string {
	value, ok := args[key]
	if !ok {
		return ""
	}
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func optionalInt(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func stringList(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, strings.TrimSpace(fmt.Sprint(item)))
	}
	return out
}
