// Package render prints localized text views of a fight.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Mouthless-Stoat/Leshy/fight"
	"golang.org/x/text/message"
)

// Localizer is the message-printer contract the renderer needs.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// CardView is the printable state of one card.
type CardView struct {
	Name   string
	Power  int
	Health int
	Sigils []string
}

// Snapshot is the printable state of a fight.
type Snapshot struct {
	Active fight.PlayerID
	Scale  int
	// Rows holds each player's lanes from that player's perspective; nil is a
	// blank slot.
	Rows [2][fight.Lanes]*CardView
	Hand [2]int
	Deck [2]int
}

// Capture copies the state of m into a Snapshot, naming sigils with name.
func Capture[S comparable](m *fight.Manager[S], name func(S) string) Snapshot {
	snap := Snapshot{Active: m.Active(), Scale: m.Scale}
	for _, id := range []fight.PlayerID{fight.First, fight.Second} {
		player := m.Player(id)
		snap.Hand[id] = len(player.Hand)
		snap.Deck[id] = len(player.Deck)
		for lane, slot := range m.Board.Row(id) {
			card := slot.Card()
			if card == nil {
				continue
			}
			view := &CardView{Name: card.Name(), Power: card.Power(), Health: card.Health()}
			for _, sigil := range card.Sigils() {
				view.Sigils = append(view.Sigils, name(sigil))
			}
			snap.Rows[id][lane] = view
		}
	}
	return snap
}

// Renderer writes snapshots as text.
type Renderer struct {
	loc Localizer
}

// NewRenderer creates a renderer that localizes through loc.
func NewRenderer(loc Localizer) *Renderer {
	return &Renderer{loc: loc}
}

// Write prints snap from the active player's perspective. The other player's row
// is printed first and reversed, so each lane sits above the lane it opposes.
func (r *Renderer) Write(w io.Writer, snap Snapshot) error {
	active := snap.Active
	other := active.Opponent()

	lines := []string{
		r.loc.Sprintf("board.active", r.player(active)),
		r.scale(snap.Scale),
		r.row(other, snap.Rows[other], true),
		r.row(active, snap.Rows[active], false),
		r.loc.Sprintf("board.counts", r.player(fight.First), snap.Hand[fight.First], snap.Deck[fight.First]),
		r.loc.Sprintf("board.counts", r.player(fight.Second), snap.Hand[fight.Second], snap.Deck[fight.Second]),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write board: %w", err)
		}
	}
	return nil
}

// Starved returns the localized notice for a failed draw.
func (r *Renderer) Starved(id fight.PlayerID) string {
	return r.loc.Sprintf("fight.starved", r.player(id))
}

func (r *Renderer) player(id fight.PlayerID) string {
	if id == fight.Second {
		return r.loc.Sprintf("player.second")
	}
	return r.loc.Sprintf("player.first")
}

func (r *Renderer) scale(scale int) string {
	switch {
	case scale > 0:
		return r.loc.Sprintf("board.scale.favours", scale, r.player(fight.First))
	case scale < 0:
		return r.loc.Sprintf("board.scale.favours", -scale, r.player(fight.Second))
	default:
		return r.loc.Sprintf("board.scale.even")
	}
}

func (r *Renderer) row(id fight.PlayerID, lanes [fight.Lanes]*CardView, reversed bool) string {
	cells := make([]string, 0, fight.Lanes)
	for i := range lanes {
		lane := i
		if reversed {
			lane = fight.OpposingLane(i)
		}
		cells = append(cells, r.cell(lanes[lane]))
	}
	label := r.loc.Sprintf("board.row", r.player(id))
	return fmt.Sprintf("%-16s %s", label, strings.Join(cells, " "))
}

func (r *Renderer) cell(card *CardView) string {
	if card == nil {
		return "[" + r.loc.Sprintf("board.empty") + "]"
	}
	text := fmt.Sprintf("%s %d/%d", card.Name, card.Power, card.Health)
	if len(card.Sigils) > 0 {
		text += " " + strings.Join(card.Sigils, ",")
	}
	return "[" + text + "]"
}
