// Package invert implements the invertibility-condition oracles: for each
// supported bit-vector operator, a domain-oblivious predicate (is there any
// x at all) and a domain-aware predicate (is there an x consistent with a
// given abstract domain). Every oracle is a pure function of its inputs; it
// allocates no state that outlives the call and never mutates an operand.
package invert

import "github.com/aytey/bvinvert/pkg/bv"

// AddIC is always invertible: x + s = t has a solution for any s, t
// (commutative, so pos_x is irrelevant).
func AddIC(s, t bv.BV) bool {
	return true
}

// AndIC requires t & s = t: every bit t sets must also be set in s.
func AndIC(s, t bv.BV) bool {
	return bv.Eq(bv.And(t, s), t)
}

// EqIC is always invertible: x = s or x != s always has a solution.
func EqIC(s, t bv.BV) bool {
	return true
}

// MulIC requires (-s | s) & t = t.
func MulIC(s, t bv.BV) bool {
	negOrS := bv.Or(s.Neg(), s)
	return bv.Eq(bv.And(negOrS, t), t)
}

// UdivPos0 is the IC for x / s = t: (s * t) / s = t.
func UdivPos0(s, t bv.BV) bool {
	return bv.Eq(bv.Udiv(bv.Mul(s, t), s), t)
}

// UdivPos1 is the IC for s / x = t: s / (s / t) = t.
func UdivPos1(s, t bv.BV) bool {
	return bv.Eq(bv.Udiv(s, bv.Udiv(s, t)), t)
}

// UremPos0 is the IC for x % s = t: ~(-s) >= t.
func UremPos0(s, t bv.BV) bool {
	return bv.Uge(s.Neg().Not(), t)
}

// UremPos1 is the IC for s % x = t: ((t + t - s) & s) >= t.
func UremPos1(s, t bv.BV) bool {
	sum := bv.Sub(bv.Add(t, t), s)
	return bv.Uge(bv.And(sum, s), t)
}

// UltPos0 is the IC for x < s = t: t = 0 or s != 0.
func UltPos0(s, t bv.BV) bool {
	return t.IsFalse() || !s.IsZero()
}

// UltPos1 is the IC for s < x = t: t = 0 or s != ones.
func UltPos1(s, t bv.BV) bool {
	return t.IsFalse() || !s.IsOnes()
}

// SllPos0 is the IC for x << s = t: (t >> s) << s = t.
func SllPos0(s, t bv.BV) bool {
	return bv.Eq(bv.Sll(bv.Srl(t, s), s), t)
}

// SllPos1 is the IC for s << x = t: exists i in [0, w(s)] with s << i = t.
func SllPos1(s, t bv.BV) bool {
	w := s.Width()
	for i := 0; i <= w; i++ {
		iv := bv.FromUint64(uint64(i), w)
		if bv.Eq(bv.Sll(s, iv), t) {
			return true
		}
	}
	return false
}

// SrlPos0 is the IC for x >> s = t: (t << s) >> s = t.
func SrlPos0(s, t bv.BV) bool {
	return bv.Eq(bv.Srl(bv.Sll(t, s), s), t)
}

// SrlPos1 is the IC for s >> x = t: exists i in [0, w(s)] with s >> i = t.
func SrlPos1(s, t bv.BV) bool {
	w := s.Width()
	for i := 0; i <= w; i++ {
		iv := bv.FromUint64(uint64(i), w)
		if bv.Eq(bv.Srl(s, iv), t) {
			return true
		}
	}
	return false
}

// ConcatPos0 is the IC for x ++ s = t: s = t[w(s)-1:0].
func ConcatPos0(s, t bv.BV) bool {
	ws := s.Width()
	return bv.Eq(s, t.Slice(ws-1, 0))
}

// ConcatPos1 is the IC for s ++ x = t: s = t[w(t)-1:w(t)-w(s)].
func ConcatPos1(s, t bv.BV) bool {
	ws := s.Width()
	wt := t.Width()
	return bv.Eq(s, t.Slice(wt-1, wt-ws))
}

// Slice is always invertible.
func Slice(t bv.BV, upper, lower int) bool {
	return true
}
