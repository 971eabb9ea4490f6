package model

import "slices"

// Marks holds the toggle state of a card, one flag per square.
type Marks []bool

// NewMarks returns all-false marks for a card built from n entries.
func NewMarks(n int) Marks {
	if n < 0 {
		n = 0
	}
	if n > MaxSquares {
		n = MaxSquares
	}
	return make(Marks, n)
}

// Toggle returns a copy with square i flipped. Indexes outside the marks
// are ignored.
func (m Marks) Toggle(i int) Marks {
	out := slices.Clone(m)
	if i < 0 || i >= len(out) {
		return out
	}
	out[i] = !out[i]
	return out
}

// Pad returns a copy grown with unset squares up to n. Existing flags
// are kept as they are and longer marks are never cut.
func (m Marks) Pad(n int) Marks {
	n = min(n, MaxSquares)
	out := slices.Clone(m)
	if out == nil {
		out = Marks{}
	}
	for len(out) < n {
		out = append(out, false)
	}
	return out
}

// Marked reports whether square i is set; unknown squares read as unset.
func (m Marks) Marked(i int) bool {
	return i >= 0 && i < len(m) && m[i]
}

func (m Marks) Count() (n int) {
	for _, v := range m {
		if v {
			n++
		}
	}
	return
}
