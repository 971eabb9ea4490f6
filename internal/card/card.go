package card

import (
	"slices"

	"github.com/Makepad-fr/bingo/internal/codec"
	"github.com/Makepad-fr/bingo/internal/model"
)

// Card is the state derived from an entry set: its identity and the
// shuffled squares shown to the user.
type Card struct {
	ID      string   `json:"id"`
	Squares []string `json:"squares"`
}

// Size is the grid side length.
func (c Card) Size() int { return GridSize(len(c.Squares)) }

// Deriver computes a Card and hands back the same one for as long as the
// entry set stays the same, whatever the order it arrives in. Identity and
// layout are computed together so they never disagree about when to
// change.
type Deriver struct {
	src       Source
	canonical string
	card      Card
	valid     bool
}

func NewDeriver(src Source) *Deriver {
	if src == nil {
		src = NewSource()
	}
	return &Deriver{src: src}
}

// Derive returns the card for entries and whether it was recomputed.
func (d *Deriver) Derive(entries model.Entries) (Card, bool) {
	canon := entries.Canonical()
	if d.valid && canon == d.canonical {
		return d.card, false
	}
	d.canonical = canon
	d.card = Card{
		ID:      codec.DeriveIdentity(entries),
		Squares: Shuffle(entries, d.src),
	}
	d.valid = true
	return d.card, true
}

// Restore seeds the deriver with a card computed earlier, so a reloaded
// session keeps its layout. The card is ignored unless it is consistent
// with entries.
func (d *Deriver) Restore(entries model.Entries, c Card) bool {
	if !consistent(entries, c) {
		return false
	}
	d.canonical = entries.Canonical()
	d.card = Card{ID: c.ID, Squares: slices.Clone(c.Squares)}
	d.valid = true
	return true
}

// Reset forgets the current card; the next Derive reshuffles.
func (d *Deriver) Reset() {
	d.canonical, d.card, d.valid = "", Card{}, false
}

func consistent(entries model.Entries, c Card) bool {
	if c.ID != codec.DeriveIdentity(entries) {
		return false
	}
	if len(c.Squares) != min(model.MaxSquares, len(entries)) {
		return false
	}
	seen := make(map[string]bool, len(c.Squares))
	for _, s := range c.Squares {
		if seen[s] || !entries.Contains(s) {
			return false
		}
		seen[s] = true
	}
	return true
}
