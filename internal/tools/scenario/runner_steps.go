package scenario

import (
	"errors"
	"slices"
	"strings"

	"github.com/Mouthless-Stoat/Leshy/fight"
	"github.com/Mouthless-Stoat/Leshy/internal/luasigil"
)

func (r *Runner[S]) runStep(state *scenarioState[S], step Step) error {
	switch step.Kind {
	case "set_active":
		return r.runSetActiveStep(state, step)
	case "deck":
		return r.runDeckStep(state, step)
	case "hand":
		return r.runHandStep(state, step)
	case "place":
		return r.runPlaceStep(state, step, false)
	case "play":
		return r.runPlaceStep(state, step, true)
	case "damage":
		return r.runDamageStep(state, step)
	case "draw":
		return r.runDrawStep(state, step)
	case "broadcast":
		return r.runBroadcastStep(state, step)
	case "expect_scale":
		return r.runExpectScaleStep(state, step)
	case "expect_hand":
		return r.runExpectCountStep(state, step, "hand")
	case "expect_deck":
		return r.runExpectCountStep(state, step, "deck")
	case "expect_card":
		return r.runExpectCardStep(state, step)
	case "expect_empty":
		return r.runExpectEmptyStep(state, step)
	case "expect_starve":
		return r.runExpectStarveStep(state, step)
	default:
		return r.failf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner[S]) runSetActiveStep(state *scenarioState[S], step Step) error {
	id, err := r.requiredPlayer(step.Args)
	if err != nil {
		return err
	}
	state.fight.SetActive(id)
	return nil
}

func (r *Runner[S]) runDeckStep(state *scenarioState[S], step Step) error {
	id, cards, err := r.playerCards(step.Args)
	if err != nil {
		return err
	}
	state.fight.Player(id).AddToDeck(cards...)
	return nil
}

func (r *Runner[S]) runHandStep(state *scenarioState[S], step Step) error {
	id, cards, err := r.playerCards(step.Args)
	if err != nil {
		return err
	}
	player := state.fight.Player(id)
	player.Hand = append(player.Hand, cards...)
	return nil
}

func (r *Runner[S]) runPlaceStep(state *scenarioState[S], step Step, play bool) error {
	pos, err := r.requiredPosition(step.Args)
	if err != nil {
		return err
	}
	name := requiredString(step.Args, "card")
	if name == "" {
		return r.failf("card is required")
	}
	card, err := r.system.Catalog.NewCard(name, pos.Player)
	if err != nil {
		return err
	}
	if prev := state.fight.Board.Place(pos.Player, pos.Lane, card); prev != nil {
		r.logf("%s replaced %s at %s lane %d", name, prev.Name(), pos.Player, pos.Lane)
	}
	if play {
		state.fight.HandleSigils(fight.Play, card)
	}
	return nil
}

// runDamageStep lowers a card's health and broadcasts Damage with it as the
// cause. A card that dies is broadcast as the cause of Death and then removed.
func (r *Runner[S]) runDamageStep(state *scenarioState[S], step Step) error {
	pos, err := r.requiredPosition(step.Args)
	if err != nil {
		return err
	}
	card := state.fight.Board.At(pos.Player, pos.Lane)
	if card == nil {
		return r.failf("no card at %s lane %d", pos.Player, pos.Lane)
	}
	card.HealthMod -= optionalInt(step.Args, "amount", 1)
	state.fight.HandleSigils(fight.Damage, card)
	if card.Dead() {
		state.fight.HandleSigils(fight.Death, card)
		if found, ok := state.fight.Board.Find(card); ok {
			state.fight.Board.Take(found.Player, found.Lane)
		}
	}
	return nil
}

func (r *Runner[S]) runDrawStep(state *scenarioState[S], step Step) error {
	id, err := r.requiredPlayer(step.Args)
	if err != nil {
		return err
	}
	err = state.fight.Draw(id)
	state.lastDraw = &drawOutcome{player: id, starved: errors.Is(err, fight.ErrPlayerStarve)}
	if state.lastDraw.starved {
		r.logf("%v", err)
		if r.onStarve != nil {
			r.onStarve(id)
		}
		return nil
	}
	return err
}

func (r *Runner[S]) runBroadcastStep(state *scenarioState[S], step Step) error {
	evt, err := luasigil.ParseEvent(requiredString(step.Args, "event"))
	if err != nil {
		return r.failf("broadcast: %v", err)
	}
	var causing *fight.Card[S]
	if _, ok := step.Args["lane"]; ok {
		pos, err := r.requiredPosition(step.Args)
		if err != nil {
			return err
		}
		causing = state.fight.Board.At(pos.Player, pos.Lane)
		if causing == nil {
			return r.failf("no causing card at %s lane %d", pos.Player, pos.Lane)
		}
	}
	state.fight.HandleSigils(evt, causing)
	return nil
}

func (r *Runner[S]) runExpectScaleStep(state *scenarioState[S], step Step) error {
	want := optionalInt(step.Args, "value", 0)
	if got := state.fight.Scale; got != want {
		return r.assertf("scale = %d, want %d", got, want)
	}
	return nil
}

func (r *Runner[S]) runExpectCountStep(state *scenarioState[S], step Step, pile string) error {
	id, err := r.requiredPlayer(step.Args)
	if err != nil {
		return err
	}
	want := optionalInt(step.Args, "count", 0)
	player := state.fight.Player(id)
	got := len(player.Hand)
	if pile == "deck" {
		got = len(player.Deck)
	}
	if got != want {
		return r.assertf("%s %s size = %d, want %d", id, pile, got, want)
	}
	return nil
}

func (r *Runner[S]) runExpectCardStep(state *scenarioState[S], step Step) error {
	pos, err := r.requiredPosition(step.Args)
	if err != nil {
		return err
	}
	card := state.fight.Board.At(pos.Player, pos.Lane)
	if card == nil {
		return r.assertf("%s lane %d is empty, want a card", pos.Player, pos.Lane)
	}
	if name, ok := step.Args["name"].(string); ok && card.Name() != name {
		if err := r.assertf("%s lane %d name = %s, want %s", pos.Player, pos.Lane, card.Name(), name); err != nil {
			return err
		}
	}
	if _, ok := step.Args["power"]; ok {
		if want := optionalInt(step.Args, "power", 0); card.Power() != want {
			if err := r.assertf("%s lane %d power = %d, want %d", pos.Player, pos.Lane, card.Power(), want); err != nil {
				return err
			}
		}
	}
	if _, ok := step.Args["health"]; ok {
		if want := optionalInt(step.Args, "health", 0); card.Health() != want {
			if err := r.assertf("%s lane %d health = %d, want %d", pos.Player, pos.Lane, card.Health(), want); err != nil {
				return err
			}
		}
	}
	if raw, ok := step.Args["sigils"]; ok {
		want := stringList(raw)
		got := r.sigilNames(card)
		if !slices.Equal(got, want) {
			return r.assertf("%s lane %d sigils = [%s], want [%s]", pos.Player, pos.Lane, strings.Join(got, ", "), strings.Join(want, ", "))
		}
	}
	return nil
}

func (r *Runner[S]) runExpectEmptyStep(state *scenarioState[S], step Step) error {
	pos, err := r.requiredPosition(step.Args)
	if err != nil {
		return err
	}
	if card := state.fight.Board.At(pos.Player, pos.Lane); card != nil {
		return r.assertf("%s lane %d holds %s, want empty", pos.Player, pos.Lane, card.Name())
	}
	return nil
}

func (r *Runner[S]) runExpectStarveStep(state *scenarioState[S], step Step) error {
	if state.lastDraw == nil {
		return r.failf("expect_starve needs a draw step before it")
	}
	if !state.lastDraw.starved {
		return r.assertf("%s drew a card, want starve", state.lastDraw.player)
	}
	if _, ok := step.Args["player"]; ok {
		id, err := r.requiredPlayer(step.Args)
		if err != nil {
			return err
		}
		if id != state.lastDraw.player {
			return r.assertf("%s starved, want %s", state.lastDraw.player, id)
		}
	}
	return nil
}
