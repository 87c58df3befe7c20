// Package storage defines persistence contracts for card catalogs and fight
// pass journals.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// CardRecord is one stored card template.
type CardRecord struct {
	Name      string
	Power     int
	Health    int
	Sigils    []string
	UpdatedAt time.Time
}

// PassRecord is one journaled dispatch pass.
type PassRecord struct {
	ID      int64
	FightID string
	// Seq orders passes within a fight by the time they finished.
	Seq         int
	Event       string
	Player      string
	Depth       int
	Active      string
	Causing     bool
	Activations int
	// Skipped marks a pass that was refused by the depth bound.
	Skipped   bool
	CreatedAt time.Time
}

// CardStore persists card templates.
type CardStore interface {
	PutCard(ctx context.Context, card CardRecord) error
	// PutCards stores every card or none of them.
	PutCards(ctx context.Context, cards []CardRecord) error
	GetCard(ctx context.Context, name string) (CardRecord, error)
	ListCards(ctx context.Context) ([]CardRecord, error)
}

// PassStore persists pass journals.
type PassStore interface {
	AppendPasses(ctx context.Context, passes []PassRecord) error
	ListPasses(ctx context.Context, fightID string) ([]PassRecord, error)
}
