// Package bvdomain implements the three-valued abstract bit-vector domain:
// each bit of a domain is 0, 1, or unknown, represented as a pair of
// concrete bit-vectors (lo, hi) with lo <=bit hi. A concrete value b is a
// member of the domain iff lo & b = lo and b | hi = hi, equivalently
// lo <=bit b <=bit hi.
package bvdomain

import (
	"strings"

	"github.com/aytey/bvinvert/pkg/bv"
)

// Domain is a three-valued abstract bit-vector value, bit)-by-bit (lo, hi).
type Domain struct {
	lo bv.BV
	hi bv.BV
}

// Lo returns the domain's lower bound.
func (d Domain) Lo() bv.BV { return d.lo }

// Hi returns the domain's upper bound.
func (d Domain) Hi() bv.BV { return d.hi }

// NewInit returns the fully-unknown domain of width w: lo=0, hi=ones.
func NewInit(w int) Domain {
	return Domain{lo: bv.Zero(w), hi: bv.Ones(w)}
}

// New builds a domain from explicit lo/hi bounds. lo and hi must share a
// width; the caller is responsible for validity if it depends on it.
func New(lo, hi bv.BV) Domain {
	if lo.Width() != hi.Width() {
		panic("bvdomain: lo/hi width mismatch")
	}
	return Domain{lo: bv.Copy(lo), hi: bv.Copy(hi)}
}

// NewFromChar parses a ternary string over {'0','1','x'}, MSB first: lo
// replaces 'x' with '0', hi replaces 'x' with '1'.
func NewFromChar(s string) Domain {
	width := len(s)
	lo := bv.Zero(width)
	hi := bv.Zero(width)
	for i, c := range []byte(s) {
		pos := width - 1 - i
		switch c {
		case '0':
			// lo, hi bits already 0
		case '1':
			lo = lo.SetBit(pos, 1)
			hi = hi.SetBit(pos, 1)
		case 'x':
			hi = hi.SetBit(pos, 1)
		default:
			panic("bvdomain: invalid character in NewFromChar, want '0', '1' or 'x'")
		}
	}
	return Domain{lo: lo, hi: hi}
}

// NewFixed returns the singleton domain containing exactly val.
func NewFixed(val bv.BV) Domain {
	return Domain{lo: bv.Copy(val), hi: bv.Copy(val)}
}

// NewFixedU64 returns the singleton domain containing val, at width w.
func NewFixedU64(val uint64, w int) Domain {
	b := bv.FromUint64(val, w)
	return Domain{lo: b, hi: bv.Copy(b)}
}

// Copy returns an independent copy of d.
func Copy(d Domain) Domain {
	return Domain{lo: bv.Copy(d.lo), hi: bv.Copy(d.hi)}
}

// Equal reports structural equality of both lo and hi.
func Equal(a, b Domain) bool {
	return bv.Eq(a.lo, b.lo) && bv.Eq(a.hi, b.hi)
}

// GetWidth returns the domain's bit width.
func (d Domain) GetWidth() int { return d.lo.Width() }

// IsValid reports whether ~lo | hi = ones, i.e. no position has lo=1, hi=0.
func (d Domain) IsValid() bool {
	return bv.Or(d.lo.Not(), d.hi).IsOnes()
}

// IsFixed reports whether d denotes a single concrete value (lo = hi).
func (d Domain) IsFixed() bool {
	return bv.Eq(d.lo, d.hi)
}

// fixedMask returns ~(lo ^ hi): a 1 bit at every fixed position.
func (d Domain) fixedMask() bv.BV {
	return bv.Xor(d.lo, d.hi).Not()
}

// HasFixedBits reports whether any bit position is fixed.
func (d Domain) HasFixedBits() bool {
	return !d.fixedMask().IsZero()
}

// Not returns (~hi, ~lo) — the bound swap needed to preserve lo <= hi.
func (d Domain) Not() Domain {
	return Domain{lo: d.hi.Not(), hi: d.lo.Not()}
}

// Slice extracts bits [hi:lo] of both bounds into a new, narrower domain.
func (d Domain) Slice(hiBit, loBit int) Domain {
	return Domain{lo: d.lo.Slice(hiBit, loBit), hi: d.hi.Slice(hiBit, loBit)}
}

// FixBit returns a copy of d with bit i fixed to v (0 or 1).
func (d Domain) FixBit(i int, v int) Domain {
	return Domain{lo: d.lo.SetBit(i, v), hi: d.hi.SetBit(i, v)}
}

// IsFixedBit reports whether bit i is fixed (lo[i] = hi[i]).
func (d Domain) IsFixedBit(i int) bool {
	return d.lo.GetBit(i) == d.hi.GetBit(i)
}

// IsFixedBitTrue reports whether bit i is fixed to 1.
func (d Domain) IsFixedBitTrue(i int) bool {
	return d.lo.GetBit(i) == 1 && d.hi.GetBit(i) == 1
}

// IsFixedBitFalse reports whether bit i is fixed to 0.
func (d Domain) IsFixedBitFalse(i int) bool {
	return d.lo.GetBit(i) == 0 && d.hi.GetBit(i) == 0
}

// CheckFixedBits reports whether every fixed bit of d equals the
// corresponding bit of b: (b & hi) | lo = b.
func (d Domain) CheckFixedBits(b bv.BV) bool {
	return bv.Eq(bv.Or(bv.And(b, d.hi), d.lo), b)
}

// IsConsistent is the bit-by-bit form of CheckFixedBits.
func (d Domain) IsConsistent(b bv.BV) bool {
	for i := 0; i < d.GetWidth(); i++ {
		if d.IsFixedBit(i) && d.lo.GetBit(i) != b.GetBit(i) {
			return false
		}
	}
	return true
}

// Consistent reports whether a and b agree on every bit position fixed in
// both: with c_i = ~(lo_i ^ hi_i) and c = c_a & c_b, c & lo_a = c & lo_b.
func Consistent(a, b Domain) bool {
	c := bv.And(a.fixedMask(), b.fixedMask())
	return bv.Eq(bv.And(c, a.lo), bv.And(c, b.lo))
}

// ToChar renders d as a width-character ternary string, MSB first: '0'/'1'
// for agreement, 'x' for lo=0,hi=1, '?' for the invalid lo=1,hi=0 case.
func (d Domain) ToChar() string {
	var b strings.Builder
	b.Grow(d.GetWidth())
	width := d.GetWidth()
	for i := 0; i < width; i++ {
		pos := width - 1 - i
		loBit := d.lo.GetBit(pos)
		hiBit := d.hi.GetBit(pos)
		switch {
		case loBit == 0 && hiBit == 0:
			b.WriteByte('0')
		case loBit == 1 && hiBit == 1:
			b.WriteByte('1')
		case loBit == 0 && hiBit == 1:
			b.WriteByte('x')
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}

// String satisfies fmt.Stringer.
func (d Domain) String() string {
	return d.ToChar()
}
