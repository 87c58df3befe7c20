// Package scenario runs Lua duel scripts against the fight engine.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Mouthless-Stoat/Leshy/fight"
	"github.com/Mouthless-Stoat/Leshy/internal/catalog"
)

// Config controls scenario execution.
type Config struct {
	Assertions AssertionMode
	Verbose    bool
	Logger     *log.Logger
	// MaxDepth bounds nested dispatch passes; zero is unbounded.
	MaxDepth int
	// Observers are attached to every fight the runner creates.
	Observers []fight.Observer
	// OnStarve is called when a draw step finds an empty deck.
	OnStarve func(fight.PlayerID)
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{Assertions: AssertionStrict}
}

// System is the sigil set a scenario is played with.
type System[S comparable] struct {
	Handler fight.Handler[S]
	Catalog *catalog.Catalog[S]
	// SigilName names a sigil for expectations and logs.
	SigilName func(S) string
}

// Runner executes scenarios against fresh fights.
type Runner[S comparable] struct {
	system     System[S]
	assertions Assertions
	logger     *log.Logger
	verbose    bool
	maxDepth   int
	observers  []fight.Observer
	onStarve   func(fight.PlayerID)
}

// NewRunner validates system and applies config defaults.
func NewRunner[S comparable](cfg Config, system System[S]) (*Runner[S], error) {
	if system.Handler == nil {
		return nil, errors.New("sigil handler is required")
	}
	if system.Catalog == nil {
		return nil, errors.New("card catalog is required")
	}
	if system.SigilName == nil {
		system.SigilName = func(s S) string { return fmt.Sprint(s) }
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	return &Runner[S]{
		system:     system,
		assertions: Assertions{Mode: cfg.Assertions, Logger: logger},
		logger:     logger,
		verbose:    cfg.Verbose,
		maxDepth:   cfg.MaxDepth,
		observers:  cfg.Observers,
		onStarve:   cfg.OnStarve,
	}, nil
}

// RunFile loads and executes a scenario file.
func (r *Runner[S]) RunFile(ctx context.Context, path string) (*fight.Manager[S], error) {
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return nil, err
	}
	return r.RunScenario(ctx, scenario)
}

// RunScenario plays the steps against a new fight and returns the fight in its
// final state. First is active unless the scenario says otherwise.
func (r *Runner[S]) RunScenario(ctx context.Context, scenario *Scenario) (*fight.Manager[S], error) {
	if scenario == nil {
		return nil, errors.New("scenario is required")
	}
	r.logf("scenario start: %s (%d steps)", scenario.Name, len(scenario.Steps))

	opts := []fight.Option{fight.WithMaxDepth(r.maxDepth)}
	if r.verbose {
		opts = append(opts, fight.WithLogger(r.logger))
	} else {
		opts = append(opts, fight.WithLogger(log.New(io.Discard, "", 0)))
	}
	for _, o := range r.observers {
		opts = append(opts, fight.WithObserver(o))
	}
	state := &scenarioState[S]{fight: fight.NewManager(r.system.Handler, fight.First, opts...)}

	for index, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return state.fight, err
		}
		stepNumber := index + 1
		r.logf("step %d/%d start: %s", stepNumber, len(scenario.Steps), step.Kind)
		stepStart := time.Now()
		if err := r.runStep(state, step); err != nil {
			return state.fight, fmt.Errorf("step %d (%s): %w", stepNumber, step.Kind, err)
		}
		r.logf("step %d/%d done: %s (%s)", stepNumber, len(scenario.Steps), step.Kind, time.Since(stepStart))
	}
	r.logf("scenario done: %s", scenario.Name)
	return state.fight, nil
}

func (r *Runner[S]) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}
