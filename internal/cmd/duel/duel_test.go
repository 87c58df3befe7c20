package duel

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Mouthless-Stoat/Leshy/internal/catalog"
	storagesqlite "github.com/Mouthless-Stoat/Leshy/internal/storage/sqlite"
	"github.com/Mouthless-Stoat/Leshy/internal/tools/importer"
	"github.com/Mouthless-Stoat/Leshy/internal/tools/scenario"
)

const luaCatalog = `
cards:
  - name: Stoat
    power: 1
    health: 3
  - name: Scalebearer
    power: 0
    health: 2
    sigils: [Tipper]
`

const luaSigils = `
sigil("Tipper", function(ctx, holder, fight)
  if ctx.event == "draw" then fight:tip(1, holder:owner()) end
end)
`

const scaleScenario = `
local d = Duel.new("scale")
d:place("first", 0, "Scalebearer")
d:deck("first", {"Stoat"})
d:draw("first")
d:expect_scale(1)
return d
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseConfig(t *testing.T) {
	t.Setenv("LESHY_SYSTEM", "inscryption")
	t.Setenv("LESHY_MAX_DEPTH", "8")
	fs := flag.NewFlagSet("duel", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-scenario", "fight.lua", "-lang", "pt-BR", "-assert=false"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Scenario != "fight.lua" || cfg.Lang != "pt-BR" || cfg.Assertions {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.System != SystemInscryption || cfg.MaxDepth != 8 {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestRunValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "missing scenario", cfg: Config{}, want: "scenario path is required"},
		{name: "negative depth", cfg: Config{Scenario: "x.lua", MaxDepth: -1}, want: "max depth"},
		{name: "missing cards", cfg: Config{Scenario: "x.lua"}, want: "catalog path or db path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Run(context.Background(), tt.cfg, nil, nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestRunLuaSystemJournalsPasses(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Scenario:   writeFile(t, dir, "scale.lua", scaleScenario),
		Sigils:     writeFile(t, dir, "sigils.lua", luaSigils),
		Catalog:    writeFile(t, dir, "cards.yaml", luaCatalog),
		DBPath:     filepath.Join(dir, "leshy.db"),
		FightID:    "fight-1",
		Lang:       "en",
		System:     SystemLua,
		Assertions: true,
	}
	var out, errOut bytes.Buffer
	if err := Run(context.Background(), cfg, &out, &errOut); err != nil {
		t.Fatalf("run: %v\n%s", err, errOut.String())
	}
	if !strings.Contains(out.String(), "Scale: 1 in favour of First") {
		t.Fatalf("output = %q, want scale line", out.String())
	}
	if !strings.Contains(errOut.String(), "journaled fight fight-1") {
		t.Fatalf("log = %q, want journal notice", errOut.String())
	}

	store, err := storagesqlite.Open(cfg.DBPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	passes, err := store.ListPasses(context.Background(), "fight-1")
	if err != nil {
		t.Fatalf("list passes: %v", err)
	}
	if len(passes) != 1 || passes[0].Event != "draw" || passes[0].Activations != 1 {
		t.Fatalf("passes = %+v, want one draw pass with one activation", passes)
	}
}

func TestRunLuaSystemRequiresSigils(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Scenario: writeFile(t, dir, "scale.lua", scaleScenario),
		Catalog:  writeFile(t, dir, "cards.yaml", luaCatalog),
		System:   SystemLua,
	}
	if err := Run(context.Background(), cfg, nil, nil); err == nil || !strings.Contains(err.Error(), "sigils path") {
		t.Fatalf("error = %v, want sigils path error", err)
	}
}

func TestRunInscryptionSystemFromStoredCards(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "leshy.db")
	store, err := storagesqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	entries := []catalog.Entry{{Name: "Warren", Power: 0, Health: 2, Sigils: []string{"Rabbit Hole"}}}
	if err := importer.Import(context.Background(), store, entries, time.Now()); err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	cfg := Config{
		Scenario: writeFile(t, dir, "warren.lua", `
local d = Duel.new("warren")
d:play("first", 2, "Warren")
d:expect_hand("first", 1)
return d
`),
		DBPath:     dbPath,
		Lang:       "pt-BR",
		System:     SystemInscryption,
		Seed:       7,
		Assertions: true,
	}
	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "[Warren 0/2 Rabbit Hole]") {
		t.Fatalf("output = %q, want Warren on the board", out.String())
	}
	if !strings.Contains(out.String(), "Primeiro: 1") {
		t.Fatalf("output = %q, want localized hand count", out.String())
	}
}

func TestRunPrintsStarveNotice(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Scenario: writeFile(t, dir, "starve.lua", `
local d = Duel.new("starve")
d:draw("second")
d:expect_starve("second")
return d
`),
		Sigils:     writeFile(t, dir, "sigils.lua", luaSigils),
		Catalog:    writeFile(t, dir, "cards.yaml", luaCatalog),
		Lang:       "en",
		Assertions: true,
	}
	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Second could not draw: deck is empty\n") {
		t.Fatalf("output = %q, want starve notice first", out.String())
	}
}

func TestRunRendersBoardWhenExpectationFails(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Scenario: writeFile(t, dir, "wrong.lua", `
local d = Duel.new("wrong")
d:place("first", 0, "Stoat")
d:expect_scale(3)
return d
`),
		Sigils:     writeFile(t, dir, "sigils.lua", luaSigils),
		Catalog:    writeFile(t, dir, "cards.yaml", luaCatalog),
		Assertions: true,
	}
	var out bytes.Buffer
	err := Run(context.Background(), cfg, &out, nil)
	if !errors.Is(err, scenario.ErrExpectationFailed) {
		t.Fatalf("error = %v, want %v", err, scenario.ErrExpectationFailed)
	}
	if !strings.Contains(out.String(), "[Stoat 1/3]") {
		t.Fatalf("output = %q, want final board", out.String())
	}
}

func TestRunRejectsUnknownSystem(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Scenario: writeFile(t, dir, "scale.lua", scaleScenario),
		Catalog:  writeFile(t, dir, "cards.yaml", luaCatalog),
		System:   "chess",
	}
	if err := Run(context.Background(), cfg, nil, nil); err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Fatalf("error = %v, want unsupported system", err)
	}
}

func TestRunBundledScenarios(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "scenarios")
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "opening",
			cfg: Config{
				Scenario: filepath.Join(dir, "opening.lua"),
				Sigils:   filepath.Join(dir, "sigils.lua"),
				Catalog:  filepath.Join(dir, "cards.yaml"),
				System:   SystemLua,
			},
		},
		{
			name: "burrows",
			cfg: Config{
				Scenario: filepath.Join(dir, "burrows.lua"),
				Catalog:  filepath.Join(dir, "inscryption.yaml"),
				System:   SystemInscryption,
				Seed:     1,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Assertions = true
			var errOut bytes.Buffer
			if err := Run(context.Background(), tt.cfg, nil, &errOut); err != nil {
				t.Fatalf("run: %v\n%s", err, errOut.String())
			}
		})
	}
}
