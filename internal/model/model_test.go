package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntriesAdd(t *testing.T) {
	var e Entries
	e, ok := e.Add("  Coffee  ")
	require.True(t, ok)
	assert.Equal(t, Entries{"Coffee"}, e)

	t.Run("rejects empty", func(t *testing.T) {
		got, ok := e.Add("   ")
		assert.False(t, ok)
		assert.Equal(t, e, got)
	})

	t.Run("rejects exact duplicate", func(t *testing.T) {
		got, ok := e.Add("Coffee")
		assert.False(t, ok)
		assert.Len(t, got, 1)
	})

	t.Run("case differs is a new entry", func(t *testing.T) {
		got, ok := e.Add("coffee")
		assert.True(t, ok)
		assert.Equal(t, Entries{"Coffee", "coffee"}, got)
	})

	t.Run("does not alias the receiver", func(t *testing.T) {
		base := make(Entries, 1, 4)
		base[0] = "a"
		x, _ := base.Add("b")
		y, _ := base.Add("c")
		assert.Equal(t, Entries{"a", "b"}, x)
		assert.Equal(t, Entries{"a", "c"}, y)
	})
}

func TestEntriesRemove(t *testing.T) {
	e := Entries{"a", "b", "c"}

	got, ok := e.Remove(1)
	require.True(t, ok)
	assert.Equal(t, Entries{"a", "c"}, got)
	assert.Equal(t, Entries{"a", "b", "c"}, e)

	for _, i := range []int{-1, 3, 10} {
		got, ok := e.Remove(i)
		assert.False(t, ok, "index %d", i)
		assert.Equal(t, e, got)
	}
}

func TestCanonicalIgnoresOrder(t *testing.T) {
	a := Entries{"pear", "apple", "fig"}
	b := Entries{"fig", "pear", "apple"}
	assert.Equal(t, a.Canonical(), b.Canonical())
	assert.NotEqual(t, Entries{"a|b"}.Canonical(), Entries{"a", "b"}.Canonical())
	assert.Equal(t, Entries{"pear", "apple", "fig"}, a, "Sorted must not reorder the receiver")
}

func TestNormalize(t *testing.T) {
	got := Normalize([]string{" x ", "", "y", "x", "y ", "z"})
	assert.Equal(t, Entries{"x", "y", "z"}, got)
}

func TestNewMarks(t *testing.T) {
	assert.Len(t, NewMarks(9), 9)
	assert.Len(t, NewMarks(30), MaxSquares)
	assert.Len(t, NewMarks(-2), 0)
	assert.Zero(t, NewMarks(16).Count())
}

func TestMarksToggle(t *testing.T) {
	m := NewMarks(9)

	got := m.Toggle(4)
	for i := range got {
		assert.Equal(t, i == 4, got[i], "square %d", i)
	}
	assert.False(t, m[4], "Toggle must not mutate the receiver")

	back := got.Toggle(4)
	assert.Equal(t, m, back)

	for _, i := range []int{-1, 9, 25} {
		assert.Equal(t, m, m.Toggle(i), "out of range index %d", i)
	}
}

func TestMarksPad(t *testing.T) {
	m := Marks{true, false}
	got := m.Pad(4)
	assert.Equal(t, Marks{true, false, false, false}, got)
	assert.Equal(t, Marks{true, false}, m, "Pad must not mutate the receiver")

	assert.Equal(t, Marks{true, false}, m.Pad(1), "never shrinks")
	assert.Len(t, Marks(nil).Pad(40), MaxSquares)
	assert.Equal(t, Marks{}, Marks(nil).Pad(0))
}

func TestMarksMarked(t *testing.T) {
	m := Marks{true, false}
	assert.True(t, m.Marked(0))
	assert.False(t, m.Marked(1))
	assert.False(t, m.Marked(7))
	assert.Equal(t, 1, m.Count())
}
