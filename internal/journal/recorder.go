package journal

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Mouthless-Stoat/Leshy/fight"
	"github.com/Mouthless-Stoat/Leshy/internal/storage"
)

// Recorder buffers one PassRecord per finished or skipped pass of a fight.
// Nested passes finish before the pass that started them, so Seq follows finish
// order.
type Recorder struct {
	// Now stamps records. It defaults to time.Now.
	Now func() time.Time

	fightID string
	seq     int
	passes  []storage.PassRecord
}

var _ fight.Observer = (*Recorder)(nil)

// NewRecorder creates a recorder for fightID.
func NewRecorder(fightID string) *Recorder {
	return &Recorder{Now: time.Now, fightID: fightID}
}

// FightID returns the fight the recorder journals.
func (r *Recorder) FightID() string { return r.fightID }

// PassStarted implements fight.Observer.
func (r *Recorder) PassStarted(fight.Pass) {}

// PassFinished implements fight.Observer.
func (r *Recorder) PassFinished(p fight.Pass) { r.record(p, false) }

// PassSkipped implements fight.Observer.
func (r *Recorder) PassSkipped(p fight.Pass) { r.record(p, true) }

func (r *Recorder) record(p fight.Pass, skipped bool) {
	r.seq++
	record := storage.PassRecord{
		FightID:     r.fightID,
		Seq:         r.seq,
		Event:       p.Event.Kind.String(),
		Depth:       p.Depth,
		Active:      p.Active.String(),
		Causing:     p.Causing,
		Activations: p.Activations,
		Skipped:     skipped,
		CreatedAt:   r.now(),
	}
	if p.Event.Kind == fight.EventPlayerStarve {
		record.Player = p.Event.Player.String()
	}
	r.passes = append(r.passes, record)
}

func (r *Recorder) now() time.Time {
	if r.Now == nil {
		return time.Now().UTC()
	}
	return r.Now().UTC()
}

// Passes returns the buffered records.
func (r *Recorder) Passes() []storage.PassRecord {
	return slices.Clone(r.passes)
}

// Flush persists the buffered records and clears the buffer. Seq keeps counting
// across flushes.
func (r *Recorder) Flush(ctx context.Context, store storage.PassStore) error {
	if store == nil {
		return errors.New("pass store is required")
	}
	if len(r.passes) == 0 {
		return nil
	}
	if err := store.AppendPasses(ctx, r.passes); err != nil {
		return fmt.Errorf("flush journal: %w", err)
	}
	r.passes = nil
	return nil
}
