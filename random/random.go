// Package random implements the engine's reproducible pseudo random number
// generator, a Lehmer linear congruential generator over the Mersenne prime
// 2^31-1. It is weak but fast, and a given seed yields the same sequence on
// every platform, which is what randomized data structures and fuzz-style
// tests need.
package random

import "math"

const (
	mersennePrime = math.MaxInt32 // 2^31-1
	multiplier    = 16807         // bits 14, 8, 7, 5, 2, 1, 0
)

// Random is a sequence of pseudo random numbers. Not safe for concurrent
// use; give each goroutine its own, seeded differently.
type Random struct {
	seed uint32
}

// New returns a generator positioned by seed. Only the low 31 bits are
// used, and the two fixed points of the generator (0 and 2^31-1) are
// replaced by 1 so that every seed produces a moving sequence.
func New(seed uint32) *Random {
	r := &Random{seed: seed & 0x7fffffff}
	if r.seed == 0 || r.seed == mersennePrime {
		r.seed = 1
	}
	return r
}

// Next returns the next value in the sequence, uniform in [1, 2^31-2].
func (r *Random) Next() uint32 {
	// seed = (seed * multiplier) % mersennePrime.
	//
	// The product never overflows 62 bits, so the mod can be computed from
	// the two halves around bit 31: both halves are < 2^31, their sum is
	// < 2^32-1, and one conditional subtraction completes the reduction.
	product := uint64(r.seed) * multiplier
	r.seed = uint32(product>>31) + (uint32(product) & mersennePrime)
	if r.seed > mersennePrime {
		r.seed -= mersennePrime
	}
	return r.seed
}

// Uniform returns a value uniform in [0, n). n must be positive; n == 0
// panics.
func (r *Random) Uniform(n uint32) uint32 {
	return r.Next() % n
}

// OneIn reports true with probability 1/n.
func (r *Random) OneIn(n uint32) bool {
	return r.Next()%n == 0
}

// Skewed returns a value in [0, 2^maxLog-1] with an exponential bias
// toward small numbers: first a base is picked uniformly from
// [0, maxLog], then a value uniform in [0, 2^base). Useful for generating
// test workloads with a realistic size distribution.
func (r *Random) Skewed(maxLog uint32) uint32 {
	return r.Uniform(1 << r.Uniform(maxLog+1))
}
