// Package wheel implements trial-division factorization using a mod-30
// wheel, skipping multiples of 2, 3, and 5 after the initial few candidates.
package wheel

import (
	"github.com/aytey/bvinvert/pkg/bv"
	"github.com/aytey/bvinvert/pkg/bvdomain"
)

// increments is the mod-30 wheel's precomputed increment cycle. Starting
// from candidate 7 (index 3), adding increments[i] in turn visits
// 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, ... skipping multiples of
// 2, 3, and 5. The cycle restarts at index 3 after index 10.
var increments = [11]uint64{1, 2, 2, 4, 2, 4, 2, 4, 6, 2, 6}

// Factorizer produces successive divisors of a concrete n via mod-30 wheel
// trial division, up to a step limit.
type Factorizer struct {
	n      uint64
	limit  int
	fact   uint64
	idx    int
	steps  int
	done   bool
	primed bool
}

// New returns a Factorizer for n, bounded to at most limit trial-division
// steps.
func New(n uint64, limit int) *Factorizer {
	return &Factorizer{n: n, limit: limit, fact: 2, idx: 0}
}

// Next returns the next factor of the remaining value of n encountered by
// trial division, and true, or false if factorization has terminated
// (either because the remainder is prime, the step limit was reached, or
// the trial candidate overflowed).
func (f *Factorizer) Next() (uint64, bool) {
	if f.done {
		return 0, false
	}
	for {
		if f.fact*f.fact > f.n {
			// remaining n is the final, prime factor.
			last := f.n
			f.n = 1
			f.done = true
			if last == 1 {
				return 0, false
			}
			return last, true
		}
		if f.steps > f.limit {
			f.done = true
			return 0, false
		}
		f.steps++
		if f.n%f.fact == 0 {
			f.n /= f.fact
			return f.fact, true
		}
		next := f.fact + increments[f.idx]
		if next <= f.fact {
			// overflow
			f.done = true
			return 0, false
		}
		f.fact = next
		f.idx++
		if f.idx >= len(increments) {
			f.idx = 3
		}
	}
}

// Factorize fully factors n into its prime factors, up to limit trial
// steps, returning them in ascending order of discovery.
func Factorize(n uint64, limit int) []uint64 {
	f := New(n, limit)
	var out []uint64
	for {
		fact, ok := f.Next()
		if !ok {
			return out
		}
		out = append(out, fact)
	}
}

// FindInDomain searches for a factor of n that both lies in γ(d) and is
// strictly greater than exclMin, returning the first such factor and true,
// or false if trial division exhausts (by any of the three termination
// conditions) without finding one.
func FindInDomain(n uint64, limit int, d bvdomain.Domain, exclMin uint64) (uint64, bool) {
	width := d.GetWidth()
	f := New(n, limit)
	for {
		fact, ok := f.Next()
		if !ok {
			return 0, false
		}
		if fact <= exclMin {
			continue
		}
		if d.CheckFixedBits(bv.FromUint64(fact, width)) {
			return fact, true
		}
	}
}
