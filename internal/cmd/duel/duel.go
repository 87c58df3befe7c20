// Package duel wires the duel command: it loads a card catalog and a sigil
// system, plays a scenario, prints the final board, and journals the passes.
package duel

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mouthless-Stoat/Leshy/fight"
	"github.com/Mouthless-Stoat/Leshy/internal/catalog"
	"github.com/Mouthless-Stoat/Leshy/internal/journal"
	"github.com/Mouthless-Stoat/Leshy/internal/luasigil"
	platformcmd "github.com/Mouthless-Stoat/Leshy/internal/platform/cmd"
	"github.com/Mouthless-Stoat/Leshy/internal/random"
	"github.com/Mouthless-Stoat/Leshy/internal/render"
	storagesqlite "github.com/Mouthless-Stoat/Leshy/internal/storage/sqlite"
	"github.com/Mouthless-Stoat/Leshy/internal/systems/inscryption"
	"github.com/Mouthless-Stoat/Leshy/internal/tools/importer"
	"github.com/Mouthless-Stoat/Leshy/internal/tools/scenario"
)

// Sigil systems the command can play with.
const (
	SystemLua         = "lua"
	SystemInscryption = "inscryption"
)

// Config holds duel command configuration.
type Config struct {
	Scenario string `env:"SCENARIO_FILE"`
	Sigils   string `env:"SIGILS_FILE"`
	Catalog  string `env:"CATALOG_FILE"`
	// DBPath enables the pass journal. Without Catalog, cards are read from
	// the same database.
	DBPath     string `env:"DB_PATH"`
	FightID    string `env:"FIGHT_ID"`
	Lang       string `env:"LANG"            envDefault:"en"`
	System     string `env:"SYSTEM"          envDefault:"lua"`
	Seed       uint64 `env:"SEED"`
	MaxDepth   int    `env:"MAX_DEPTH"`
	Assertions bool   `env:"SCENARIO_ASSERT" envDefault:"true"`
	Verbose    bool   `env:"VERBOSE"`
}

// ParseConfig parses env and then flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	err := platformcmd.ParseConfigFromArgs(&cfg, fs, args, func(cfg *Config, fs *flag.FlagSet) {
		fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
		fs.StringVar(&cfg.Sigils, "sigils", cfg.Sigils, "path to lua sigil definitions")
		fs.StringVar(&cfg.Catalog, "catalog", cfg.Catalog, "path to YAML card catalog")
		fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database for cards and the pass journal")
		fs.StringVar(&cfg.FightID, "fight-id", cfg.FightID, "journal id for this fight")
		fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "language of the board view")
		fs.StringVar(&cfg.System, "system", cfg.System, "sigil system (lua or inscryption)")
		fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for the inscryption system (0 picks one)")
		fs.IntVar(&cfg.MaxDepth, "max-depth", cfg.MaxDepth, "maximum nested pass depth (0 is unbounded)")
		fs.BoolVar(&cfg.Assertions, "assert", cfg.Assertions, "enable assertions (disable to log expectations)")
		fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	})
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the duel command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", cfg.MaxDepth)
	}
	logger := log.New(errOut, "", 0)

	var store *storagesqlite.Store
	if cfg.DBPath != "" {
		var err error
		store, err = storagesqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()
	}

	entries, err := loadEntries(ctx, cfg, store)
	if err != nil {
		return err
	}

	script, err := scenario.LoadScenarioFromFile(cfg.Scenario)
	if err != nil {
		return err
	}
	fightID := cfg.FightID
	if fightID == "" {
		fightID = fmt.Sprintf("%s-%s", script.Name, time.Now().UTC().Format("20060102T150405.000"))
	}
	recorder := journal.NewRecorder(fightID)

	mode := scenario.AssertionStrict
	if !cfg.Assertions {
		mode = scenario.AssertionLogOnly
	}
	runCfg := scenario.Config{
		Assertions: mode,
		Verbose:    cfg.Verbose,
		Logger:     logger,
		MaxDepth:   cfg.MaxDepth,
		Observers:  []fight.Observer{recorder, journal.NewTracer(ctx, nil)},
	}
	renderer := render.NewRenderer(render.Printer(render.ResolveTag(cfg.Lang)))
	runCfg.OnStarve = func(id fight.PlayerID) {
		fmt.Fprintln(out, renderer.Starved(id))
	}

	var runErr error
	switch strings.ToLower(strings.TrimSpace(cfg.System)) {
	case "", SystemLua:
		runErr = playLua(ctx, cfg, entries, runCfg, script, renderer, out)
	case SystemInscryption:
		runErr = playInscryption(ctx, cfg, entries, runCfg, script, renderer, out)
	default:
		return fmt.Errorf("system %q is not supported", cfg.System)
	}

	if store != nil {
		if err := recorder.Flush(ctx, store); err != nil {
			return errors.Join(runErr, fmt.Errorf("journal fight %s: %w", fightID, err))
		}
		logger.Printf("journaled fight %s", fightID)
	}
	return runErr
}

func loadEntries(ctx context.Context, cfg Config, store *storagesqlite.Store) ([]catalog.Entry, error) {
	if cfg.Catalog != "" {
		return catalog.LoadFile(cfg.Catalog)
	}
	if store == nil {
		return nil, errors.New("catalog path or db path is required")
	}
	records, err := store.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	return importer.Entries(records), nil
}

func playLua(ctx context.Context, cfg Config, entries []catalog.Entry, runCfg scenario.Config, script *scenario.Scenario, renderer *render.Renderer, out io.Writer) error {
	if cfg.Sigils == "" {
		return errors.New("sigils path is required for the lua system")
	}
	registry := luasigil.NewRegistry()
	if err := registry.LoadFile(cfg.Sigils); err != nil {
		return err
	}
	if runCfg.Verbose {
		runCfg.Logger.Printf("loaded sigils from %s: %s", filepath.Base(cfg.Sigils), strings.Join(registry.Names(), ", "))
	}
	cards, err := catalog.Build(entries, catalog.StringSigil)
	if err != nil {
		return err
	}
	return play(ctx, runCfg, scenario.System[string]{
		Handler:   luasigil.NewHandler(registry, runCfg.Logger),
		Catalog:   cards,
		SigilName: func(s string) string { return s },
	}, script, renderer, out)
}

func playInscryption(ctx context.Context, cfg Config, entries []catalog.Entry, runCfg scenario.Config, script *scenario.Scenario, renderer *render.Renderer, out io.Writer) error {
	cards, err := catalog.Build(entries, inscryption.ParseSigil)
	if err != nil {
		return err
	}
	seed := cfg.Seed
	if seed == 0 {
		if seed, err = random.NewSeed(); err != nil {
			return err
		}
	}
	runCfg.Logger.Printf("inscryption seed %d", seed)
	return play(ctx, runCfg, scenario.System[inscryption.Sigil]{
		Handler:   inscryption.NewSeededHandler(seed),
		Catalog:   cards,
		SigilName: inscryption.Sigil.String,
	}, script, renderer, out)
}

// play runs script and prints the board it ends on, even when a step failed.
func play[S comparable](ctx context.Context, runCfg scenario.Config, system scenario.System[S], script *scenario.Scenario, renderer *render.Renderer, out io.Writer) error {
	runner, err := scenario.NewRunner(runCfg, system)
	if err != nil {
		return err
	}
	m, runErr := runner.RunScenario(ctx, script)
	if m == nil {
		return runErr
	}
	if err := renderer.Write(out, render.Capture(m, system.SigilName)); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}
