// Package card lays entries out on a bingo grid.
package card

import (
	cryptorand "crypto/rand"
	"math/rand/v2"
	"slices"

	"github.com/Makepad-fr/bingo/internal/model"
)

// Source is the randomness the shuffle draws from. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a ChaCha8 generator seeded from crypto/rand.
func NewSource() *rand.Rand {
	var seed [32]byte
	if _, err := cryptorand.Read(seed[:]); err != nil {
		panic(err)
	}
	return rand.New(rand.NewChaCha8(seed))
}

// Shuffle returns a uniformly random permutation of entries (Fisher-Yates)
// cut to model.MaxSquares. Cutting after the shuffle means a card built
// from more than 25 entries shows a uniform random subset of them.
func Shuffle(entries model.Entries, src Source) []string {
	out := slices.Clone([]string(entries))
	for i := len(out) - 1; i >= 1; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	if len(out) > model.MaxSquares {
		out = out[:model.MaxSquares]
	}
	return out
}

// GridSize is the side length of the grid for n squares.
func GridSize(n int) int {
	switch {
	case n <= 9:
		return 3
	case n <= 16:
		return 4
	default:
		return 5
	}
}
