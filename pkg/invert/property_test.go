package invert

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/aytey/bvinvert/pkg/bv"
	"github.com/aytey/bvinvert/pkg/bvdomain"
)

const propWidth = 4

// singleWidthOps are the operators where x, s, and t all share one width.
var singleWidthOps = []Op{Add, And, Mul, Udiv, Urem, Sll, Srl}

// evalSingleWidth computes the ground-truth value of op applied to x and s,
// honoring posX the same way DomainAware's const.go oracles do: posX == 0
// means x is the left operand.
func evalSingleWidth(op Op, x, s bv.BV, posX int) bv.BV {
	left, right := x, s
	if posX != 0 {
		left, right = s, x
	}
	switch op {
	case Add:
		return bv.Add(left, right)
	case And:
		return bv.And(left, right)
	case Mul:
		return bv.Mul(left, right)
	case Udiv:
		return bv.Udiv(left, right)
	case Urem:
		return bv.Urem(left, right)
	case Sll:
		return bv.Sll(left, right)
	case Srl:
		return bv.Srl(left, right)
	}
	panic("evalSingleWidth: unsupported op")
}

// domainFromMeet builds a valid domain from two arbitrary width-propWidth
// values: lo = a & b and hi = a | b always satisfy ~lo | hi = ones.
func domainFromMeet(a, b uint64) bvdomain.Domain {
	lo := bv.FromUint64(a&b, propWidth)
	hi := bv.FromUint64(a|b, propWidth)
	return bvdomain.New(lo, hi)
}

// TestSingleWidthSoundnessAndCompleteness checks, for every operator where
// x, s and t share a width, that the domain-aware oracle agrees exactly
// with brute-force existence of a witness x in gamma(d): no false accepts
// (soundness) and no false rejects (completeness).
func TestSingleWidthSoundnessAndCompleteness(t *testing.T) {
	for _, op := range singleWidthOps {
		op := op
		for _, posX := range []int{0, 1} {
			posX := posX
			t.Run(op.String(), func(t *testing.T) {
				parameters := gopter.DefaultTestParameters()
				parameters.MinSuccessfulTests = 150
				properties := gopter.NewProperties(parameters)

				properties.Property("domain-aware matches brute-force witness search", prop.ForAll(
					func(a, b, sVal, tVal uint64) bool {
						d := domainFromMeet(a, b)
						s := bv.FromUint64(sVal, propWidth)
						tgt := bv.FromUint64(tVal, propWidth)

						want := false
						for v := uint64(0); v < uint64(1)<<uint(propWidth); v++ {
							x := bv.FromUint64(v, propWidth)
							if !d.CheckFixedBits(x) {
								continue
							}
							if bv.Eq(evalSingleWidth(op, x, s, posX), tgt) {
								want = true
								break
							}
						}

						got := DomainAware(op, d, s, tgt, posX)
						return got == want
					},
					gen.UInt64Range(0, 15),
					gen.UInt64Range(0, 15),
					gen.UInt64Range(0, 15),
					gen.UInt64Range(0, 15),
				))

				properties.TestingRun(t)
			})
		}
	}
}

// TestUltSoundnessAndCompleteness checks ult's oracle, whose t is a single
// bit rather than a propWidth-wide value.
func TestUltSoundnessAndCompleteness(t *testing.T) {
	for _, posX := range []int{0, 1} {
		posX := posX
		parameters := gopter.DefaultTestParameters()
		parameters.MinSuccessfulTests = 150
		properties := gopter.NewProperties(parameters)

		properties.Property("ult domain-aware matches brute-force witness search", prop.ForAll(
			func(a, b, sVal uint64, tBit bool) bool {
				d := domainFromMeet(a, b)
				s := bv.FromUint64(sVal, propWidth)
				tgt := bv.FromUint64(0, 1)
				if tBit {
					tgt = bv.FromUint64(1, 1)
				}

				want := false
				for v := uint64(0); v < uint64(1)<<uint(propWidth); v++ {
					x := bv.FromUint64(v, propWidth)
					if !d.CheckFixedBits(x) {
						continue
					}
					var lt bool
					if posX == 0 {
						lt = bv.Ult(x, s)
					} else {
						lt = bv.Ult(s, x)
					}
					if lt == tBit {
						want = true
						break
					}
				}

				got := UltConst(d, s, tgt, posX)
				return got == want
			},
			gen.UInt64Range(0, 15),
			gen.UInt64Range(0, 15),
			gen.UInt64Range(0, 15),
			gen.Bool(),
		))

		properties.TestingRun(t)
	}
}

// TestEqSoundnessAndCompleteness checks eq's oracle, whose t is a single
// bit encoding x == s or x != s.
func TestEqSoundnessAndCompleteness(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 150
	properties := gopter.NewProperties(parameters)

	properties.Property("eq domain-aware matches brute-force witness search", prop.ForAll(
		func(a, b, sVal uint64, tBit bool) bool {
			d := domainFromMeet(a, b)
			s := bv.FromUint64(sVal, propWidth)
			tgt := bv.FromUint64(0, 1)
			if tBit {
				tgt = bv.FromUint64(1, 1)
			}

			want := false
			for v := uint64(0); v < uint64(1)<<uint(propWidth); v++ {
				x := bv.FromUint64(v, propWidth)
				if !d.CheckFixedBits(x) {
					continue
				}
				if bv.Eq(x, s) == tBit {
					want = true
					break
				}
			}

			got := EqConst(d, s, tgt)
			return got == want
		},
		gen.UInt64Range(0, 15),
		gen.UInt64Range(0, 15),
		gen.UInt64Range(0, 15),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestConcatSoundnessAndCompleteness checks concat's oracle at a narrower
// width: x and s are each 2 bits, t is 4 bits, and posX selects which half
// of t belongs to x.
func TestConcatSoundnessAndCompleteness(t *testing.T) {
	const halfWidth = 2

	for _, posX := range []int{0, 1} {
		posX := posX
		parameters := gopter.DefaultTestParameters()
		parameters.MinSuccessfulTests = 150
		properties := gopter.NewProperties(parameters)

		properties.Property("concat domain-aware matches brute-force witness search", prop.ForAll(
			func(a, b, sVal, tVal uint64) bool {
				lo := bv.FromUint64(a&b, halfWidth)
				hi := bv.FromUint64(a|b, halfWidth)
				d := bvdomain.New(lo, hi)
				s := bv.FromUint64(sVal, halfWidth)
				tgt := bv.FromUint64(tVal, 2*halfWidth)

				want := false
				for v := uint64(0); v < uint64(1)<<uint(halfWidth); v++ {
					x := bv.FromUint64(v, halfWidth)
					if !d.CheckFixedBits(x) {
						continue
					}
					var combined uint64
					if posX == 0 {
						combined = v<<uint(halfWidth) | sVal
					} else {
						combined = sVal<<uint(halfWidth) | v
					}
					if bv.Eq(bv.FromUint64(combined, 2*halfWidth), tgt) {
						want = true
						break
					}
				}

				got := ConcatConst(d, s, tgt, posX)
				return got == want
			},
			gen.UInt64Range(0, 3),
			gen.UInt64Range(0, 3),
			gen.UInt64Range(0, 3),
			gen.UInt64Range(0, 15),
		))

		properties.TestingRun(t)
	}
}
