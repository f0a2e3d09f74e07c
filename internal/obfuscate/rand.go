package obfuscate

import "math/rand/v2"

// Rand is the single per-pass-instance deterministic generator backing
// every stochastic choice: parameter selection (§4.2) and iteration-order
// shuffling (§4.4, §4.5). A fixed seed yields reproducible runs, letting
// a test harness pin down the exact obfuscated form it asserts against.
type Rand struct {
	r *rand.Rand
}

// DefaultSeed is the seed used when a caller doesn't supply one,
// matching spec §5's "the default seed yields reproducible runs".
const DefaultSeed uint64 = 0x4b414e534f

// NewRand returns a generator seeded deterministically from seed.
func NewRand(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewDefaultRand returns a generator seeded with DefaultSeed.
func NewDefaultRand() *Rand {
	return NewRand(DefaultSeed)
}

// UintRange returns a uniform random integer in [lo, hi] inclusive.
// Panics if hi < lo.
func (g *Rand) UintRange(lo, hi uint64) uint64 {
	if hi < lo {
		panic("obfuscate: UintRange called with hi < lo")
	}
	span := hi - lo + 1
	if span == 0 {
		// lo=0, hi=maxUint64: the whole range.
		return g.r.Uint64()
	}
	return lo + g.r.Uint64N(span)
}

// ShuffledRange returns a permutation of 0..n-1, matching the source's
// getShuffledRange: the independent sub-instructions each obfuscation
// emits (one per bit, one per lane) are emitted in this order. Order
// only affects which equivalent instructions appear first in the IR; it
// never changes program semantics.
func (g *Rand) ShuffledRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	g.r.Shuffle(n, func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
