package invert

import (
	"github.com/aytey/bvinvert/pkg/bv"
	"github.com/aytey/bvinvert/pkg/bvdomain"
	"github.com/aytey/bvinvert/pkg/gen"
)

// AddConst strengthens Add: compute d = t - s, accept iff every fixed bit
// of D agrees with d. pos_x is irrelevant by commutativity.
func AddConst(d bvdomain.Domain, s, t bv.BV) bool {
	diff := bv.Sub(t, s)
	return d.CheckFixedBits(diff)
}

// AndConst strengthens And: the domain-oblivious IC must hold, and the
// fixed bits of x (masked by m = ~(lo^hi)) must be consistent with
// s & hi agreeing with t on those positions.
func AndConst(d bvdomain.Domain, s, t bv.BV) bool {
	if !AndIC(s, t) {
		return false
	}
	m := fixedMask(d)
	lhs := bv.And(bv.And(s, d.Hi()), m)
	rhs := bv.And(t, m)
	return bv.Eq(lhs, rhs)
}

func fixedMask(d bvdomain.Domain) bv.BV {
	return bv.Xor(d.Lo(), d.Hi()).Not()
}

// ConcatConst strengthens Concat: the half of t belonging to s must equal
// s, and the half belonging to x must be consistent with D.
func ConcatConst(d bvdomain.Domain, s, t bv.BV, posX int) bool {
	wt := t.Width()
	ws := s.Width()
	wx := d.GetWidth()
	if posX == 0 {
		th := t.Slice(wt-1, ws)
		tl := t.Slice(ws-1, 0)
		return bv.Eq(s, tl) && d.CheckFixedBits(th)
	}
	th := t.Slice(wt-1, wx)
	tl := t.Slice(wx-1, 0)
	return bv.Eq(s, th) && d.CheckFixedBits(tl)
}

// EqConst strengthens Eq.
func EqConst(d bvdomain.Domain, s, t bv.BV) bool {
	if t.IsFalse() {
		// x != s: infeasible only if D is exactly the singleton {s}.
		return !(bv.Eq(d.Hi(), d.Lo()) && bv.Eq(d.Hi(), s))
	}
	// x = s
	return d.CheckFixedBits(s)
}

// MulConst strengthens Mul.
func MulConst(d bvdomain.Domain, s, t bv.BV) bool {
	if !MulIC(s, t) {
		return false
	}
	if s.IsZero() || !d.HasFixedBits() {
		return true
	}
	if d.IsFixed() {
		return bv.Eq(bv.Mul(d.Lo(), s), t)
	}
	if s.GetBit(0) == 1 {
		sInv, ok := s.ModInverse()
		if !ok {
			return false
		}
		x := bv.Mul(sInv, t)
		return d.CheckFixedBits(x)
	}

	z := s.TrailingZeros()
	w := s.Width()
	sShifted := shiftRightUint(s, z)
	tShifted := shiftRightUint(t, z)
	sInv, ok := sShifted.ModInverse()
	if !ok {
		return false
	}
	xPrime := bv.Mul(sInv, tShifted)

	// x mod 2^(w-z) is uniquely determined (= x'); the top z bits of x are
	// unconstrained. Odd-modular-inverse bits are stable under truncation
	// (Hensel lifting), so x' computed at full width w still has correct
	// low w-z bits even though sInv was taken mod 2^w, not mod 2^(w-z).
	aux := bvdomain.NewInit(w)
	for i := 0; i < w-z; i++ {
		aux = aux.FixBit(i, xPrime.GetBit(i))
	}
	return bvdomain.Consistent(aux, d)
}

// shiftRightUint shifts a right by a concrete small unsigned amount n,
// using the same width as a.
func shiftRightUint(a bv.BV, n int) bv.BV {
	amt := bv.FromUint64(uint64(n), a.Width())
	return bv.Srl(a, amt)
}

// SllConst strengthens Sll.
func SllConst(d bvdomain.Domain, s, t bv.BV, posX int) bool {
	if posX == 0 {
		if !SllPos0(s, t) {
			return false
		}
		lhs1 := bv.And(bv.Sll(d.Hi(), s), t)
		if !bv.Eq(lhs1, t) {
			return false
		}
		lhs2 := bv.Or(bv.Sll(d.Lo(), s), t)
		return bv.Eq(lhs2, t)
	}

	ws := s.Width()
	if bv.Uge(d.Hi(), bv.FromUint64(uint64(ws), ws)) && t.IsZero() {
		return true
	}
	for i := 0; i <= ws; i++ {
		iv := bv.FromUint64(uint64(i), ws)
		if !(bv.Eq(bv.And(iv, d.Hi()), iv) && bv.Eq(bv.Or(iv, d.Lo()), iv)) {
			continue
		}
		if bv.Eq(bv.Sll(s, iv), t) {
			return true
		}
	}
	return false
}

// SrlConst strengthens Srl, symmetric to SllConst.
func SrlConst(d bvdomain.Domain, s, t bv.BV, posX int) bool {
	if posX == 0 {
		if !SrlPos0(s, t) {
			return false
		}
		lhs1 := bv.And(bv.Srl(d.Hi(), s), t)
		if !bv.Eq(lhs1, t) {
			return false
		}
		lhs2 := bv.Or(bv.Srl(d.Lo(), s), t)
		return bv.Eq(lhs2, t)
	}

	ws := s.Width()
	if bv.Uge(d.Hi(), bv.FromUint64(uint64(ws), ws)) && t.IsZero() {
		return true
	}
	for i := 0; i <= ws; i++ {
		iv := bv.FromUint64(uint64(i), ws)
		if !(bv.Eq(bv.And(iv, d.Hi()), iv) && bv.Eq(bv.Or(iv, d.Lo()), iv)) {
			continue
		}
		if bv.Eq(bv.Srl(s, iv), t) {
			return true
		}
	}
	return false
}

// UdivConst is an intentional placeholder: a tighter IC exists but is not
// part of this kernel.
func UdivConst(d bvdomain.Domain, s, t bv.BV, posX int) bool {
	return true
}

// UltConst strengthens Ult.
func UltConst(d bvdomain.Domain, s, t bv.BV, posX int) bool {
	if posX == 0 {
		if t.IsTrue() {
			return !s.IsZero() && bv.Ult(d.Lo(), s)
		}
		return bv.Uge(d.Hi(), s)
	}
	if t.IsTrue() {
		return !s.IsOnes() && bv.Ugt(d.Hi(), s)
	}
	return bv.Ule(d.Lo(), s)
}

// UremConst strengthens Urem.
func UremConst(d bvdomain.Domain, s, t bv.BV, posX int) bool {
	if posX == 1 {
		if !UremPos1(s, t) {
			return false
		}
		return uremConstPos1(d, s, t)
	}
	if !UremPos0(s, t) {
		return false
	}
	return uremConstPos0(d, s, t)
}

func uremConstPos1(d bvdomain.Domain, s, t bv.BV) bool {
	w := s.Width()
	if t.IsOnes() {
		if !s.IsOnes() {
			return false
		}
		return d.CheckFixedBits(bv.Zero(w))
	}
	if bv.Eq(s, t) {
		// s % 0 = s, and s % x = s for every x > t.
		return d.CheckFixedBits(bv.Zero(w)) || bv.Ugt(d.Hi(), t)
	}
	// s > t (guaranteed by the oblivious IC here). s = q*x + t with q >= 1
	// forces t < x <= s-t; any x outside that range can never remainder t.
	diff := bv.Sub(s, t)
	hiX := diff
	loX := t.Inc()
	if bv.Ugt(loX, hiX) {
		return false
	}
	g := gen.NewGenerator(d, loX, hiX)
	for g.HasNext() {
		x := g.Next()
		if x.IsZero() {
			continue
		}
		if bv.Eq(bv.Urem(s, x), t) {
			return true
		}
	}
	return false
}

func uremConstPos0(d bvdomain.Domain, s, t bv.BV) bool {
	w := s.Width()
	if s.IsZero() || t.IsOnes() {
		return d.CheckFixedBits(t)
	}
	// invariant: s > t
	if d.CheckFixedBits(t) {
		return true
	}
	// candidate family x = s*n + t with no overflow; only n=1 is
	// considered. If ones - s < t the n=1 candidate would overflow.
	//
	// The source leaves the successful-candidate search over this family
	// commented out and falls through to the previously computed
	// oblivious-IC result when the no-overflow check passes; see
	// DESIGN.md "Open Questions resolved" for why that behavior is kept
	// rather than replaced with a guessed-at stronger check.
	if bv.Ult(bv.Sub(bv.Ones(w), s), t) {
		return false
	}
	return true
}

// SliceConst is the domain-aware IC for slice(x, upper, lower) = t: with
// m = ~(lo^hi) sliced to [upper:lower], accept iff lo[upper:lower] & m =
// t & m.
func SliceConst(d bvdomain.Domain, t bv.BV, upper, lower int) bool {
	m := fixedMask(d).Slice(upper, lower)
	lhs := bv.And(d.Lo().Slice(upper, lower), m)
	rhs := bv.And(t, m)
	return bv.Eq(lhs, rhs)
}
