package scenario

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/Mouthless-Stoat/Leshy/fight"
	"github.com/Mouthless-Stoat/Leshy/internal/catalog"
	"github.com/Mouthless-Stoat/Leshy/internal/journal"
	"github.com/Mouthless-Stoat/Leshy/internal/luasigil"
	"github.com/Mouthless-Stoat/Leshy/internal/systems/inscryption"
)

const testCatalog = `
cards:
  - name: Stoat
    power: 1
    health: 3
  - name: Scalebearer
    power: 0
    health: 2
    sigils: [Tipper]
  - name: Penitent
    power: 0
    health: 1
    sigils: [Penance]
`

const testSigils = `
sigil("Tipper", function(ctx, holder, fight)
  if ctx.event == "draw" then fight:tip(1, holder:owner()) end
end)

sigil("Penance", function(ctx, holder, fight)
  if ctx.event == "player_starve" then fight:tip(2, ctx.player) end
end)
`

func newLuaRunner(t *testing.T, cfg Config) *Runner[string] {
	t.Helper()
	entries, err := catalog.Decode(strings.NewReader(testCatalog))
	if err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	cards, err := catalog.Build(entries, catalog.StringSigil)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	registry := luasigil.NewRegistry()
	if err := registry.LoadString(testSigils); err != nil {
		t.Fatalf("load sigils: %v", err)
	}
	runner, err := NewRunner(cfg, System[string]{
		Handler: luasigil.NewHandler(registry, nil),
		Catalog: cards,
	})
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	return runner
}

func runSource(t *testing.T, runner *Runner[string], src string) (*fight.Manager[string], error) {
	t.Helper()
	scenario, err := LoadScenarioFromString(src)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	return runner.RunScenario(context.Background(), scenario)
}

func TestRunnerScaleScenario(t *testing.T) {
	runner := newLuaRunner(t, DefaultConfig())
	m, err := runSource(t, runner, `
local d = Duel.new("scale")
d:place("first", 0, "Scalebearer")
d:deck("first", {"Stoat", "Stoat"})
d:draw("first")
d:expect_scale(1)
d:expect_hand("first", 1)
d:expect_deck("first", 1)
d:expect_card("first", 0, {name = "Scalebearer", power = 0, health = 2, sigils = {"Tipper"}})
return d
`)
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	if m.Scale != 1 {
		t.Fatalf("scale = %d, want 1", m.Scale)
	}
}

func TestRunnerStarveScenario(t *testing.T) {
	recorder := journal.NewRecorder("starve")
	cfg := DefaultConfig()
	cfg.Observers = []fight.Observer{recorder}
	var starved []fight.PlayerID
	cfg.OnStarve = func(id fight.PlayerID) { starved = append(starved, id) }
	runner := newLuaRunner(t, cfg)

	_, err := runSource(t, runner, `
local d = Duel.new("starve")
d:place("second", 1, "Penitent")
d:hand("first", {"Stoat"})
d:draw("first")
d:expect_starve("first")
d:expect_hand("first", 1)
d:expect_deck("first", 0)
d:expect_scale(2)
return d
`)
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	passes := recorder.Passes()
	if len(passes) != 1 || passes[0].Event != "player_starve" || passes[0].Player != "first" || passes[0].Causing {
		t.Fatalf("passes = %+v, want one player_starve(first) pass without a cause", passes)
	}
	if len(starved) != 1 || starved[0] != fight.First {
		t.Fatalf("starved = %v, want [first]", starved)
	}
}

func TestRunnerStrictAssertionFails(t *testing.T) {
	runner := newLuaRunner(t, DefaultConfig())
	_, err := runSource(t, runner, `
local d = Duel.new("wrong")
d:expect_scale(3)
return d
`)
	if !errors.Is(err, ErrExpectationFailed) {
		t.Fatalf("error = %v, want %v", err, ErrExpectationFailed)
	}
	if !strings.Contains(err.Error(), "step 1 (expect_scale)") {
		t.Fatalf("error = %v, want step context", err)
	}
}

func TestRunnerLogOnlyAssertions(t *testing.T) {
	var logs bytes.Buffer
	cfg := Config{Assertions: AssertionLogOnly, Logger: log.New(&logs, "", 0)}
	runner := newLuaRunner(t, cfg)
	_, err := runSource(t, runner, `
local d = Duel.new("lenient")
d:expect_scale(3)
d:expect_empty("first", 0)
return d
`)
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	if !strings.Contains(logs.String(), "expectation: scale = 0, want 3") {
		t.Fatalf("logs = %q, want logged expectation", logs.String())
	}
}

func TestRunnerRejectsBrokenSteps(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "unknown card", src: `local d = Duel.new() d:deck("first", {"Mantis God"}) return d`, want: catalog.ErrUnknownCard.Error()},
		{name: "bad player", src: `local d = Duel.new() d:draw("third") return d`, want: "unknown player"},
		{name: "bad lane", src: `local d = Duel.new() d:place("first", 4, "Stoat") return d`, want: "out of range"},
		{name: "starve before draw", src: `local d = Duel.new() d:expect_starve() return d`, want: "needs a draw"},
		{name: "bad event", src: `local d = Duel.new() d:broadcast("explode") return d`, want: "unknown event"},
		{name: "damage empty slot", src: `local d = Duel.new() d:damage("first", 0, 1) return d`, want: "no card"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newLuaRunner(t, Config{Assertions: AssertionLogOnly, Logger: log.New(&bytes.Buffer{}, "", 0)})
			_, err := runSource(t, runner, tt.src)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestRunnerStopsOnCancelledContext(t *testing.T) {
	runner := newLuaRunner(t, DefaultConfig())
	scenario, err := LoadScenarioFromString(`local d = Duel.new() d:draw("first") return d`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.RunScenario(ctx, scenario); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want %v", err, context.Canceled)
	}
}

func TestRunnerWithInscryptionSystem(t *testing.T) {
	entries, err := catalog.Decode(strings.NewReader(`
cards:
  - name: Warren
    power: 0
    health: 2
    sigils: [Rabbit Hole]
  - name: Beehive
    power: 0
    health: 2
    sigils: [Bees Within]
  - name: Bone Lord
    power: 1
    health: 1
    sigils: [Bone King]
`))
	if err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	cards, err := catalog.Build(entries, inscryption.ParseSigil)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	runner, err := NewRunner(DefaultConfig(), System[inscryption.Sigil]{
		Handler:   inscryption.NewSeededHandler(1),
		Catalog:   cards,
		SigilName: inscryption.Sigil.String,
	})
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	scenario, err := LoadScenarioFromString(`
local d = Duel.new("inscryption")
d:play("first", 0, "Warren")
d:expect_hand("first", 1)
d:place("second", 0, "Beehive")
d:damage("second", 0, 1)
d:expect_hand("second", 1)
d:expect_card("second", 0, {health = 1, sigils = {"Bees Within"}})
d:place("second", 1, "Bone Lord")
d:damage("second", 1, 1)
d:expect_empty("second", 1)
d:expect_scale(-1)
return d
`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if _, err := runner.RunScenario(context.Background(), scenario); err != nil {
		t.Fatalf("run scenario: %v", err)
	}
}

func TestNewRunnerValidatesSystem(t *testing.T) {
	if _, err := NewRunner(DefaultConfig(), System[string]{}); err == nil {
		t.Fatal("expected error for missing handler")
	}
}
