// Package gen implements the lazy domain-value enumerator: given a
// three-valued bit-vector domain and an optional [min,max] range, it yields
// every concrete bit-vector consistent with the domain, in ascending order,
// or draws uniformly at random within the range.
package gen

import (
	"math/rand/v2"

	"github.com/aytey/bvinvert/pkg/bv"
	"github.com/aytey/bvinvert/pkg/bvdomain"
)

// Generator walks the concrete members of a domain intersected with a
// [min,max] range. The free-bit counter (bits/bitsMin/bitsMax) is a
// separate, narrower width than the domain itself — only the unknown
// positions — so composition into a full-width value happens only on
// emission, not on every counter increment.
type Generator struct {
	domain bvdomain.Domain

	freePos []int // domain bit positions that are unknown, low to high

	bitsMin bv.BV
	bitsMax bv.BV
	bits    bv.BV
	done    bool

	// single marks a fully-fixed domain (no free bits): the only
	// candidate is d.Lo() itself, with no free-bit counter to compose.
	single bool

	cur bv.BV
}

// NewGenerator builds a generator over γ(d) ∩ [min,max]. min and max must
// share d's width.
func NewGenerator(d bvdomain.Domain, min, max bv.BV) *Generator {
	width := d.GetWidth()

	eMin := min
	if bv.Ult(eMin, d.Lo()) {
		eMin = d.Lo()
	}
	eMax := max
	if bv.Ugt(eMax, d.Hi()) {
		eMax = d.Hi()
	}

	var freePos []int
	for i := 0; i < width; i++ {
		if !d.IsFixedBit(i) {
			freePos = append(freePos, i)
		}
	}
	cnt := len(freePos)

	g := &Generator{domain: d, freePos: freePos}

	if bv.Ult(eMax, eMin) || bv.Ugt(eMin, d.Hi()) || bv.Ult(eMax, d.Lo()) {
		g.done = true
		return g
	}

	if cnt == 0 {
		// d is fixed (lo = hi); the range checks above already confirm
		// that single value falls in [eMin,eMax], so it is the generator's
		// one emission instead of an empty counter composition.
		g.single = true
		return g
	}

	bitsMin := deriveBitsMin(d, freePos, eMin, cnt)
	bitsMax := deriveBitsMax(d, freePos, eMax, cnt)

	if bv.Ugt(bitsMin, bitsMax) {
		g.done = true
		return g
	}

	g.bitsMin = bitsMin
	g.bitsMax = bitsMax
	g.bits = bv.Copy(bitsMin)
	return g
}

// deriveBitsMin finds the smallest free-bit pattern such that composing it
// with d's fixed bits yields a value >= min, scanning MSB to LSB.
func deriveBitsMin(d bvdomain.Domain, freePos []int, min bv.BV, cnt int) bv.BV {
	width := d.GetWidth()
	bitsMin := bv.Zero(cnt)
	j0 := -1 // lowest free-counter index seen so far where the copied bit was 0

	for i := width - 1; i >= 0; i-- {
		if d.IsFixedBit(i) {
			fixedBit := d.Lo().GetBit(i)
			minBit := min.GetBit(i)
			if fixedBit == 1 && minBit == 0 {
				// composed value already strictly greater here; remaining
				// free bits stay 0.
				return bitsMin
			}
			if fixedBit == 0 && minBit == 1 {
				// composed value would be strictly less; repair at j0.
				if j0 >= 0 {
					bitsMin = bitsMin.SetBit(j0, 1)
					for k := 0; k < j0; k++ {
						bitsMin = bitsMin.SetBit(k, 0)
					}
				}
				return bitsMin
			}
			continue
		}
		ci := freeCounterIndex(freePos, i)
		minBit := min.GetBit(i)
		if minBit != 0 {
			bitsMin = bitsMin.SetBit(ci, 1)
		} else {
			bitsMin = bitsMin.SetBit(ci, 0)
			j0 = ci
		}
	}
	return bitsMin
}

// deriveBitsMax is the symmetric derivation for the largest pattern such
// that the composed value <= max.
func deriveBitsMax(d bvdomain.Domain, freePos []int, max bv.BV, cnt int) bv.BV {
	width := d.GetWidth()
	bitsMax := bv.Ones(cnt)
	j1 := -1 // lowest free-counter index seen so far where the copied bit was 1

	for i := width - 1; i >= 0; i-- {
		if d.IsFixedBit(i) {
			fixedBit := d.Lo().GetBit(i)
			maxBit := max.GetBit(i)
			if fixedBit == 0 && maxBit == 1 {
				return bitsMax
			}
			if fixedBit == 1 && maxBit == 0 {
				if j1 >= 0 {
					bitsMax = bitsMax.SetBit(j1, 0)
					for k := 0; k < j1; k++ {
						bitsMax = bitsMax.SetBit(k, 1)
					}
				}
				return bitsMax
			}
			continue
		}
		ci := freeCounterIndex(freePos, i)
		maxBit := max.GetBit(i)
		if maxBit != 0 {
			bitsMax = bitsMax.SetBit(ci, 1)
			j1 = ci
		} else {
			bitsMax = bitsMax.SetBit(ci, 0)
		}
	}
	return bitsMax
}

func freeCounterIndex(freePos []int, domainBit int) int {
	for i, p := range freePos {
		if p == domainBit {
			return i
		}
	}
	panic("gen: domain bit is not free")
}

// compose builds a full-width value from d.Lo() with the free positions
// overwritten by the bits of counter.
func compose(d bvdomain.Domain, freePos []int, counter bv.BV) bv.BV {
	v := bv.Copy(d.Lo())
	for i, p := range freePos {
		v = v.SetBit(p, counter.GetBit(i))
	}
	return v
}

// HasNext reports whether Next has another value to emit.
func (g *Generator) HasNext() bool {
	if g.done {
		return false
	}
	if g.single {
		return true
	}
	return bv.Ule(g.bits, g.bitsMax)
}

// Next emits the next value in ascending order. It is a contract violation
// to call Next when HasNext is false.
func (g *Generator) Next() bv.BV {
	if !g.HasNext() {
		panic("gen: Next called on exhausted generator")
	}
	if g.single {
		g.cur = bv.Copy(g.domain.Lo())
		g.single = false
		g.done = true
		return g.cur
	}
	g.cur = compose(g.domain, g.freePos, g.bits)
	if bv.Eq(g.bits, g.bitsMax) {
		g.done = true
	} else {
		g.bits = g.bits.Inc()
	}
	return g.cur
}

// Random draws a value uniformly from γ(d) ∩ [min,max] using rng. It never
// terminates the generator; it may be called any number of times,
// including interleaved with Next.
func (g *Generator) Random(rng *rand.Rand) bv.BV {
	cnt := len(g.freePos)
	if cnt == 0 {
		return bv.Copy(g.domain.Lo())
	}
	counter := randomBVInRange(rng, g.bitsMin, g.bitsMax, cnt)
	return compose(g.domain, g.freePos, counter)
}

// randomBVInRange draws a uniformly random width-cnt bit-vector in
// [lo, hi] by drawing uniform cnt-bit values and rejecting those above hi-lo.
func randomBVInRange(rng *rand.Rand, lo, hi bv.BV, cnt int) bv.BV {
	span := bv.Sub(hi, lo)
	for {
		candidate := randomBV(rng, cnt)
		if bv.Ule(candidate, span) {
			return bv.Add(lo, candidate)
		}
	}
}

func randomBV(rng *rand.Rand, width int) bv.BV {
	v := bv.Zero(width)
	for i := 0; i < width; i++ {
		if rng.IntN(2) == 1 {
			v = v.SetBit(i, 1)
		}
	}
	return v
}

// NewRand builds a PCG-seeded random source, matching the seeding style
// used elsewhere for reproducible randomized search.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xDEADBEEF))
}

// Collect drains a fresh generator over γ(d) ∩ [min,max] into a slice. It
// is a convenience wrapper; callers enumerating very large domains should
// use NewGenerator/HasNext/Next directly instead.
func Collect(d bvdomain.Domain, min, max bv.BV) []bv.BV {
	g := NewGenerator(d, min, max)
	var out []bv.BV
	for g.HasNext() {
		out = append(out, g.Next())
	}
	return out
}
