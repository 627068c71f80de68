package board

import "math/rand/v2"

// Source picks piece kinds. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// NewSeededSource returns a deterministic source for replays and simulations.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
