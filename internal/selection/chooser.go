package selection

import (
	"math/rand/v2"
	"slices"
)

// Chooser picks k distinct elements of from. Implementations must not modify from.
type Chooser interface {
	Choose(k int, from []string) []string
}

// RandomChooser samples uniformly without replacement.
// The zero value uses the process-wide generator and is safe for concurrent use.
type RandomChooser struct {
	rng *rand.Rand
}

// NewRandomChooser returns a chooser backed by rng. A seeded rng makes choices
// reproducible but is not safe for concurrent use.
func NewRandomChooser(rng *rand.Rand) RandomChooser {
	return RandomChooser{rng: rng}
}

// Choose returns min(k, len(from)) distinct elements using a partial Fisher-Yates shuffle.
func (c RandomChooser) Choose(k int, from []string) []string {
	k = min(k, len(from))
	if k <= 0 {
		return nil
	}

	pool := slices.Clone(from)
	for i := 0; i < k; i++ {
		j := i + c.intN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k]
}

func (c RandomChooser) intN(n int) int {
	if c.rng != nil {
		return c.rng.IntN(n)
	}
	return rand.IntN(n)
}
