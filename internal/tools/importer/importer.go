// Package importer validates YAML card catalogs and stores them in SQLite.
package importer

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mouthless-Stoat/Leshy/internal/catalog"
	platformcmd "github.com/Mouthless-Stoat/Leshy/internal/platform/cmd"
	"github.com/Mouthless-Stoat/Leshy/internal/storage"
	storagesqlite "github.com/Mouthless-Stoat/Leshy/internal/storage/sqlite"
	"github.com/Mouthless-Stoat/Leshy/internal/systems/inscryption"
)

// Config holds configuration for the catalog importer.
type Config struct {
	File   string `env:"CATALOG_FILE"`
	DBPath string `env:"DB_PATH"`
	// System names the sigil set catalog sigils are checked against. "lua"
	// accepts any name, since scripts are loaded at fight time.
	System string `env:"SYSTEM" envDefault:"lua"`
	DryRun bool
}

// ParseConfig reads env defaults and then CLI flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	err := platformcmd.ParseConfigFromArgs(&cfg, fs, args, func(cfg *Config, fs *flag.FlagSet) {
		if cfg.DBPath == "" {
			cfg.DBPath = filepath.Join("data", "leshy.db")
		}
		fs.StringVar(&cfg.File, "file", cfg.File, "YAML catalog to import")
		fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
		fs.StringVar(&cfg.System, "system", cfg.System, "sigil set to validate against (lua or inscryption)")
		fs.BoolVar(&cfg.DryRun, "dry-run", false, "validate without writing to the database")
	})
	if err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.File) == "" {
		return Config{}, errors.New("file is required")
	}
	return cfg, nil
}

// Run imports the catalog named by cfg.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	entries, err := catalog.LoadFile(cfg.File)
	if err != nil {
		return err
	}
	if err := Validate(cfg.System, entries); err != nil {
		return err
	}
	if cfg.DryRun {
		_, err := fmt.Fprintf(out, "validated %d card(s)\n", len(entries))
		return err
	}

	store, err := storagesqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open card store: %w", err)
	}
	defer store.Close()

	if err := Import(ctx, store, entries, time.Now().UTC()); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "imported %d card(s) into %s\n", len(entries), cfg.DBPath)
	return err
}

// Validate checks every sigil in entries against the named sigil set.
func Validate(system string, entries []catalog.Entry) error {
	switch strings.ToLower(strings.TrimSpace(system)) {
	case "", "lua":
		_, err := catalog.Build(entries, catalog.StringSigil)
		return err
	case "inscryption":
		_, err := catalog.Build(entries, inscryption.ParseSigil)
		return err
	default:
		return fmt.Errorf("system %q is not supported", system)
	}
}

// Import upserts entries into store in one transaction, stamping them with now.
func Import(ctx context.Context, store storage.CardStore, entries []catalog.Entry, now time.Time) error {
	records := make([]storage.CardRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, storage.CardRecord{
			Name:      entry.Name,
			Power:     entry.Power,
			Health:    entry.Health,
			Sigils:    entry.Sigils,
			UpdatedAt: now,
		})
	}
	if err := store.PutCards(ctx, records); err != nil {
		return fmt.Errorf("import catalog: %w", err)
	}
	return nil
}

// Entries converts stored cards back into catalog entries.
func Entries(records []storage.CardRecord) []catalog.Entry {
	entries := make([]catalog.Entry, 0, len(records))
	for _, record := range records {
		entries = append(entries, catalog.Entry{
			Name:   record.Name,
			Power:  record.Power,
			Health: record.Health,
			Sigils: record.Sigils,
		})
	}
	return entries
}
