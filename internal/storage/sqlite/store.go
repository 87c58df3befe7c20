// Package sqlite provides SQLite-backed card and pass journal persistence.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/Mouthless-Stoat/Leshy/internal/platform/storage/sqlitemigrate"
	"github.com/Mouthless-Stoat/Leshy/internal/storage"
	"github.com/Mouthless-Stoat/Leshy/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store implements storage.CardStore and storage.PassStore.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite store at path and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.ApplyFS(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// PutCard inserts or replaces a card template.
func (s *Store) PutCard(ctx context.Context, card storage.CardRecord) error {
	return s.PutCards(ctx, []storage.CardRecord{card})
}

// PutCards inserts or replaces templates in one transaction. Nothing is stored
// when any card fails.
func (s *Store) PutCards(ctx context.Context, cards []storage.CardRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if len(cards) == 0 {
		return nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put cards: %w", err)
	}
	for _, card := range cards {
		if err := s.putCard(ctx, tx, card); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cards: %w", err)
	}
	return nil
}

// Health is signed like power; a negative base is a valid template.
func (s *Store) putCard(ctx context.Context, tx *sql.Tx, card storage.CardRecord) error {
	card.Name = strings.TrimSpace(card.Name)
	if card.Name == "" {
		return fmt.Errorf("card name is required")
	}
	if card.Sigils == nil {
		card.Sigils = []string{}
	}
	sigils, err := json.Marshal(card.Sigils)
	if err != nil {
		return fmt.Errorf("encode sigils for %q: %w", card.Name, err)
	}
	if card.UpdatedAt.IsZero() {
		card.UpdatedAt = s.now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO cards (name, power, health, sigils_json, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	power = excluded.power,
	health = excluded.health,
	sigils_json = excluded.sigils_json,
	updated_at = excluded.updated_at
`,
		card.Name,
		card.Power,
		card.Health,
		string(sigils),
		card.UpdatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put card %q: %w", card.Name, err)
	}
	return nil
}

// GetCard returns the template stored under name.
func (s *Store) GetCard(ctx context.Context, name string) (storage.CardRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.CardRecord{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT name, power, health, sigils_json, updated_at
FROM cards
WHERE name = ?
`, strings.TrimSpace(name))
	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.CardRecord{}, fmt.Errorf("card %q: %w", name, storage.ErrNotFound)
	}
	if err != nil {
		return storage.CardRecord{}, fmt.Errorf("get card: %w", err)
	}
	return card, nil
}

// ListCards lists every template ordered by name.
func (s *Store) ListCards(ctx context.Context) ([]storage.CardRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT name, power, health, sigils_json, updated_at
FROM cards
ORDER BY name
`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []storage.CardRecord
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return cards, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCard(row scanner) (storage.CardRecord, error) {
	var card storage.CardRecord
	var sigils string
	var updatedAt int64
	if err := row.Scan(&card.Name, &card.Power, &card.Health, &sigils, &updatedAt); err != nil {
		return storage.CardRecord{}, err
	}
	if err := json.Unmarshal([]byte(sigils), &card.Sigils); err != nil {
		return storage.CardRecord{}, fmt.Errorf("decode sigils for %q: %w", card.Name, err)
	}
	card.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return card, nil
}

// AppendPasses stores passes in one transaction.
func (s *Store) AppendPasses(ctx context.Context, passes []storage.PassRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if len(passes) == 0 {
		return nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append passes: %w", err)
	}
	for _, pass := range passes {
		pass.FightID = strings.TrimSpace(pass.FightID)
		if pass.FightID == "" {
			_ = tx.Rollback()
			return fmt.Errorf("fight id is required")
		}
		if strings.TrimSpace(pass.Event) == "" {
			_ = tx.Rollback()
			return fmt.Errorf("pass %d: event is required", pass.Seq)
		}
		if pass.CreatedAt.IsZero() {
			pass.CreatedAt = s.now().UTC()
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO fight_passes (
	fight_id,
	seq,
	event,
	player,
	depth,
	active,
	causing,
	activations,
	skipped,
	created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
			pass.FightID,
			pass.Seq,
			pass.Event,
			pass.Player,
			pass.Depth,
			pass.Active,
			boolToInt(pass.Causing),
			pass.Activations,
			boolToInt(pass.Skipped),
			pass.CreatedAt.UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("append pass %d: %w", pass.Seq, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit passes: %w", err)
	}
	return nil
}

// ListPasses lists the passes of one fight ordered by seq.
func (s *Store) ListPasses(ctx context.Context, fightID string) ([]storage.PassRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	fightID = strings.TrimSpace(fightID)
	if fightID == "" {
		return nil, fmt.Errorf("fight id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT
	id,
	fight_id,
	seq,
	event,
	player,
	depth,
	active,
	causing,
	activations,
	skipped,
	created_at
FROM fight_passes
WHERE fight_id = ?
ORDER BY seq
`, fightID)
	if err != nil {
		return nil, fmt.Errorf("list passes: %w", err)
	}
	defer rows.Close()

	var passes []storage.PassRecord
	for rows.Next() {
		var pass storage.PassRecord
		var causing, skipped int
		var createdAt int64
		if err := rows.Scan(
			&pass.ID,
			&pass.FightID,
			&pass.Seq,
			&pass.Event,
			&pass.Player,
			&pass.Depth,
			&pass.Active,
			&causing,
			&pass.Activations,
			&skipped,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan pass: %w", err)
		}
		pass.Causing = causing != 0
		pass.Skipped = skipped != 0
		pass.CreatedAt = time.UnixMilli(createdAt).UTC()
		passes = append(passes, pass)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate passes: %w", err)
	}
	return passes, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

var (
	_ storage.CardStore = (*Store)(nil)
	_ storage.PassStore = (*Store)(nil)
)
