package luasigil

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Mouthless-Stoat/Leshy/fight"
)

const testScript = `
sigil("Scalebearer", function(ctx, holder, fight)
  if ctx.event == "draw" then fight:tip(1) end
end)

sigil("Feeder", function(ctx, holder, fight)
  if ctx.event == "draw" and ctx.causing ~= nil then
    ctx.causing:add_power(2)
    ctx.causing:add_sigil("Fed")
  end
end)

sigil("Fleeting", function(ctx, holder, fight)
  holder:remove_sigil("Fleeting")
end)

sigil("Keeper", function(ctx, holder, fight)
  saved = holder
end)

sigil("Echo", function(ctx, holder, fight)
  if ctx.event == "turn_end" then
    fight:broadcast("death", holder)
  elseif ctx.event == "death" and ctx.self_caused then
    holder:add_health(-1)
  end
end)

sigil("Hungry", function(ctx, holder, fight)
  if ctx.event == "attack" and not fight:draw("second") then
    fight:tip(5, "second")
  end
end)

sigil("Boom", function(ctx, holder, fight)
  error("kaboom")
end)

sigil("Watcher", function(ctx, holder, fight)
  local facing = fight:opposing(holder:owner(), 0)
  if facing ~= nil and facing:name() == "Target" then
    facing:add_health(-facing:health())
  end
end)
`

func newTestHandler(t *testing.T) (*Registry, *Handler, *bytes.Buffer) {
	t.Helper()
	registry := NewRegistry()
	if err := registry.LoadString(testScript); err != nil {
		t.Fatalf("load script: %v", err)
	}
	var logs bytes.Buffer
	return registry, NewHandler(registry, log.New(&logs, "", 0)), &logs
}

func newCard(name string, owner fight.PlayerID, sigils ...string) *fight.Card[string] {
	return fight.NewCard(fight.NewCardData(name, 1, 2, sigils...), owner)
}

func TestRegistryNames(t *testing.T) {
	registry, _, _ := newTestHandler(t)
	want := []string{"Boom", "Echo", "Feeder", "Fleeting", "Hungry", "Keeper", "Scalebearer", "Watcher"}
	if got := registry.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	if _, err := registry.Lookup("Missing"); !errors.Is(err, ErrSigilNotFound) {
		t.Fatalf("lookup error = %v, want %v", err, ErrSigilNotFound)
	}
}

func TestRegistryRejectsDuplicateSigil(t *testing.T) {
	registry := NewRegistry()
	err := registry.LoadString(`
sigil("Twice", function() end)
sigil("Twice", function() end)
`)
	if err == nil || !strings.Contains(err.Error(), ErrSigilAlreadyRegistered.Error()) {
		t.Fatalf("error = %v, want %v", err, ErrSigilAlreadyRegistered)
	}
	if !registry.Has("Twice") {
		t.Fatal("first registration should be kept")
	}
}

func TestRegistryLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sigils.lua")
	if err := os.WriteFile(path, []byte(`sigil("FromFile", function() end)`), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}
	registry := NewRegistry()
	if err := registry.LoadFile(path); err != nil {
		t.Fatalf("load file: %v", err)
	}
	if !registry.Has("FromFile") {
		t.Fatal("expected FromFile to be registered")
	}
	if err := registry.LoadFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestHandlerTipsScaleOnDraw(t *testing.T) {
	_, handler, _ := newTestHandler(t)
	m := fight.NewManager[string](handler, fight.First)
	m.Board.Place(fight.First, 0, newCard("Bearer", fight.First, "Scalebearer"))
	m.Player(fight.First).AddToDeck(newCard("Stoat", fight.First))

	if err := m.Draw(fight.First); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if m.Scale != 1 {
		t.Fatalf("scale = %d, want 1", m.Scale)
	}
}

func TestHandlerMutatesCausingCard(t *testing.T) {
	_, handler, _ := newTestHandler(t)
	m := fight.NewManager[string](handler, fight.First)
	m.Board.Place(fight.Second, 1, newCard("Cook", fight.Second, "Feeder"))
	m.Player(fight.First).AddToDeck(newCard("Squirrel", fight.First))

	if err := m.Draw(fight.First); err != nil {
		t.Fatalf("draw: %v", err)
	}
	drawn := m.Player(fight.First).Hand[0]
	if drawn.Power() != 3 {
		t.Fatalf("power = %d, want 3", drawn.Power())
	}
	if !drawn.HasSigil("Fed") {
		t.Fatalf("sigils = %v, want Fed", drawn.Sigils())
	}
}

func TestHandlerSelfRemovingSigil(t *testing.T) {
	_, handler, _ := newTestHandler(t)
	m := fight.NewManager[string](handler, fight.First)
	card := newCard("Ghost", fight.First, "Fleeting", "Scalebearer")
	m.Board.Place(fight.First, 2, card)

	m.HandleSigils(fight.Draw, nil)
	if got := card.Sigils(); !reflect.DeepEqual(got, []string{"Scalebearer"}) {
		t.Fatalf("sigils = %v, want [Scalebearer]", got)
	}
	if m.Scale != 1 {
		t.Fatalf("scale = %d, want 1", m.Scale)
	}
}

func TestHandlerExpiresHandles(t *testing.T) {
	registry, handler, _ := newTestHandler(t)
	m := fight.NewManager[string](handler, fight.First)
	m.Board.Place(fight.First, 0, newCard("Hoarder", fight.First, "Keeper"))

	m.HandleSigils(fight.Play, nil)

	err := registry.LoadString(`return saved:power()`)
	if err == nil || !strings.Contains(err.Error(), ErrHandleExpired.Error()) {
		t.Fatalf("error = %v, want %v", err, ErrHandleExpired)
	}
}

func TestHandlerNestedBroadcast(t *testing.T) {
	_, handler, _ := newTestHandler(t)
	m := fight.NewManager[string](handler, fight.First)
	card := newCard("Echoer", fight.First, "Echo")
	m.Board.Place(fight.First, 3, card)

	m.HandleSigils(fight.TurnEnd, nil)
	if card.Health() != 1 {
		t.Fatalf("health = %d, want 1", card.Health())
	}
}

func TestHandlerDrawReportsStarve(t *testing.T) {
	_, handler, _ := newTestHandler(t)
	m := fight.NewManager[string](handler, fight.First)
	m.Board.Place(fight.First, 0, newCard("Glutton", fight.First, "Hungry"))

	m.HandleSigils(fight.Attack, nil)
	if m.Scale != -5 {
		t.Fatalf("scale = %d, want -5", m.Scale)
	}
}

func TestHandlerOpposingLookup(t *testing.T) {
	_, handler, _ := newTestHandler(t)
	m := fight.NewManager[string](handler, fight.First)
	m.Board.Place(fight.First, 1, newCard("Sentry", fight.First, "Watcher"))
	target := newCard("Target", fight.Second)
	m.Board.Place(fight.Second, 3, target)

	m.HandleSigils(fight.Attack, nil)
	if !target.Dead() {
		t.Fatalf("target health = %d, want dead", target.Health())
	}
}

func TestHandlerScriptErrorDoesNotStopPass(t *testing.T) {
	_, handler, logs := newTestHandler(t)
	m := fight.NewManager[string](handler, fight.First)
	m.Board.Place(fight.First, 0, newCard("Bomb", fight.First, "Boom", "Scalebearer"))

	m.HandleSigils(fight.Draw, nil)
	if m.Scale != 1 {
		t.Fatalf("scale = %d, want 1", m.Scale)
	}
	if !strings.Contains(logs.String(), "kaboom") {
		t.Fatalf("logs = %q, want script error", logs.String())
	}
}

func TestHandlerLogsUnknownSigilOnce(t *testing.T) {
	_, handler, logs := newTestHandler(t)
	m := fight.NewManager[string](handler, fight.First)
	m.Board.Place(fight.First, 0, newCard("Mystery", fight.First, "Unwritten"))

	m.HandleSigils(fight.Attack, nil)
	m.HandleSigils(fight.Attack, nil)
	if got := strings.Count(logs.String(), "Unwritten"); got != 1 {
		t.Fatalf("log mentions = %d, want 1", got)
	}
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name    string
		want    fight.Event
		wantErr error
	}{
		{name: "attack", want: fight.Attack},
		{name: " Turn_End ", want: fight.TurnEnd},
		{name: "player_starve(second)", want: fight.PlayerStarve(fight.Second)},
		{name: "player_starve", wantErr: ErrUnknownEvent},
		{name: "player_starve(third)", wantErr: ErrUnknownPlayer},
		{name: "explode", wantErr: ErrUnknownEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEvent(tt.name)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got != tt.want {
				t.Fatalf("event = %v, want %v", got, tt.want)
			}
		})
	}
	for _, kind := range fight.EventKinds() {
		evt := fight.Event{Kind: kind}
		if kind == fight.EventPlayerStarve {
			continue
		}
		if got, err := ParseEvent(EventName(evt)); err != nil || got != evt {
			t.Fatalf("round trip %v = %v, %v", evt, got, err)
		}
	}
}

func TestRegistryDispatchesEachFunctionAcrossLoads(t *testing.T) {
	registry, handler, logs := newTestHandler(t)
	if err := registry.LoadString(`
sigil("Forager", function(ctx, holder, fight)
  if ctx.event == "turn_end" then fight:draw(holder:owner()) end
end)
`); err != nil {
		t.Fatalf("load second script: %v", err)
	}
	forager, err := registry.Lookup("Forager")
	if err != nil {
		t.Fatalf("lookup Forager: %v", err)
	}
	scalebearer, err := registry.Lookup("Scalebearer")
	if err != nil {
		t.Fatalf("lookup Scalebearer: %v", err)
	}
	if forager == scalebearer {
		t.Fatalf("Forager and Scalebearer share slot %d", forager)
	}

	m := fight.NewManager[string](handler, fight.First)
	m.Board.Place(fight.First, 0, newCard("Forager", fight.First, "Forager"))
	m.Board.Place(fight.First, 1, newCard("Scalebearer", fight.First, "Scalebearer"))
	m.Board.Place(fight.First, 2, newCard("Feeder", fight.First, "Feeder"))
	drawn := newCard("Squirrel", fight.First)
	m.Player(fight.First).AddToDeck(drawn)

	m.HandleSigils(fight.TurnEnd, nil)
	if m.Scale != 1 {
		t.Fatalf("scale = %d, want 1", m.Scale)
	}
	if got := len(m.Player(fight.First).Hand); got != 1 {
		t.Fatalf("hand = %d, want 1", got)
	}
	if drawn.Power() != 3 || !drawn.HasSigil("Fed") {
		t.Fatalf("drawn card = power %d sigils %v, want power 3 with Fed", drawn.Power(), drawn.Sigils())
	}
	if logs.Len() != 0 {
		t.Fatalf("unexpected logs: %s", logs.String())
	}
}
