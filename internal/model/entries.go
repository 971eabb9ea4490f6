package model

import (
	"slices"
	"strings"
)

// MaxSquares caps how many entries a card shows.
const MaxSquares = 25

// Entries is the ordered list of card entries typed in by the user.
// Values are trimmed, non-empty and unique by exact value.
type Entries []string

// Add appends s after trimming. Empty and duplicate values are rejected
// and the list is returned unchanged.
func (e Entries) Add(s string) (Entries, bool) {
	s = strings.TrimSpace(s)
	if s == "" || e.Contains(s) {
		return e, false
	}
	out := make(Entries, len(e), len(e)+1)
	copy(out, e)
	return append(out, s), true
}

// Remove drops the entry at 0-based index i.
func (e Entries) Remove(i int) (Entries, bool) {
	if i < 0 || i >= len(e) {
		return e, false
	}
	out := make(Entries, 0, len(e)-1)
	out = append(out, e[:i]...)
	return append(out, e[i+1:]...), true
}

func (e Entries) Contains(s string) bool { return slices.Contains(e, s) }

// Sorted returns a lexicographically sorted copy.
func (e Entries) Sorted() Entries {
	out := slices.Clone(e)
	slices.Sort(out)
	return out
}

// Canonical is the order-independent form of the set. Two lists with the
// same values always share it; NUL never appears in typed text so the
// join cannot be ambiguous.
func (e Entries) Canonical() string {
	return strings.Join(e.Sorted(), "\x00")
}

// Normalize trims, drops empty values and keeps the first of each
// duplicate. Used on lists that did not come through Add.
func Normalize(in []string) Entries {
	out := make(Entries, 0, len(in))
	for _, s := range in {
		out, _ = out.Add(s)
	}
	return out
}
