// Package bv implements the fixed-width, two's-complement bit-vector
// arithmetic that the invertibility-condition kernel treats as an external
// collaborator. Every BV is an immutable value: operations return a new BV
// and never mutate their operands. Widths must match between operands of
// the same operation; mismatched widths are a programmer error and panic,
// matching the kernel's "contract violation -> abort" error model.
package bv

import "math/bits"

// BV is a fixed-width unsigned integer with wrap-around two's-complement
// arithmetic. The zero value is not meaningful; use Zero(w) instead.
type BV struct {
	width int
	words []uint64 // little-endian limbs, len == numWords(width), top limb masked
}

func numWords(width int) int {
	if width <= 0 {
		panic("bv: width must be positive")
	}
	return (width + 63) / 64
}

// topMask returns the bitmask for the valid bits of the top limb.
func topMask(width int) uint64 {
	bitsInTop := width % 64
	if bitsInTop == 0 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(bitsInTop)) - 1
}

func newBV(width int, words []uint64) BV {
	words[len(words)-1] &= topMask(width)
	return BV{width: width, words: words}
}

// Width returns the bit-width of b.
func (b BV) Width() int { return b.width }

func mustSameWidth(a, b BV) {
	if a.width != b.width {
		panic("bv: width mismatch")
	}
}

// Zero returns the all-zero bit-vector of the given width.
func Zero(width int) BV {
	return newBV(width, make([]uint64, numWords(width)))
}

// Ones returns the all-ones bit-vector of the given width.
func Ones(width int) BV {
	words := make([]uint64, numWords(width))
	for i := range words {
		words[i] = ^uint64(0)
	}
	return newBV(width, words)
}

// One returns the bit-vector with value 1 at the given width.
func One(width int) BV {
	words := make([]uint64, numWords(width))
	words[0] = 1
	return newBV(width, words)
}

// FromUint64 builds a width-w bit-vector from a concrete uint64 value,
// truncated to w bits.
func FromUint64(val uint64, width int) BV {
	words := make([]uint64, numWords(width))
	words[0] = val
	return newBV(width, words)
}

// Copy returns an independent copy of b; operations in this package never
// alias an operand's backing array, so Copy exists mainly so callers that
// received a BV from elsewhere can safely hold a reference across mutation
// of whatever produced it.
func Copy(b BV) BV {
	words := make([]uint64, len(b.words))
	copy(words, b.words)
	return BV{width: b.width, words: words}
}

// Eq reports whether a and b have equal width and value.
func Eq(a, b BV) bool {
	if a.width != b.width {
		return false
	}
	for i := range a.words {
		if a.words[i] != b.words[i] {
			return false
		}
	}
	return true
}

// IsZero reports whether b is the all-zero value.
func (b BV) IsZero() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// IsOnes reports whether b is the all-ones value for its width.
func (b BV) IsOnes() bool {
	return Eq(b, Ones(b.width))
}

// IsTrue reports whether a width-1 bit-vector is 1.
func (b BV) IsTrue() bool {
	if b.width != 1 {
		panic("bv: IsTrue requires width 1")
	}
	return b.words[0] == 1
}

// IsFalse reports whether a width-1 bit-vector is 0.
func (b BV) IsFalse() bool {
	if b.width != 1 {
		panic("bv: IsFalse requires width 1")
	}
	return b.words[0] == 0
}

// GetBit returns bit i (0 = LSB) of b as 0 or 1.
func (b BV) GetBit(i int) int {
	if i < 0 || i >= b.width {
		panic("bv: bit index out of range")
	}
	word := b.words[i/64]
	return int((word >> uint(i%64)) & 1)
}

// SetBit returns a copy of b with bit i set to v (0 or 1).
func (b BV) SetBit(i int, v int) BV {
	if i < 0 || i >= b.width {
		panic("bv: bit index out of range")
	}
	words := make([]uint64, len(b.words))
	copy(words, b.words)
	mask := uint64(1) << uint(i%64)
	if v != 0 {
		words[i/64] |= mask
	} else {
		words[i/64] &^= mask
	}
	return newBV(b.width, words)
}

// Not returns the bitwise complement of b.
func (b BV) Not() BV {
	words := make([]uint64, len(b.words))
	for i, w := range b.words {
		words[i] = ^w
	}
	return newBV(b.width, words)
}

// And returns the bitwise AND of a and b.
func And(a, b BV) BV {
	mustSameWidth(a, b)
	words := make([]uint64, len(a.words))
	for i := range words {
		words[i] = a.words[i] & b.words[i]
	}
	return newBV(a.width, words)
}

// Or returns the bitwise OR of a and b.
func Or(a, b BV) BV {
	mustSameWidth(a, b)
	words := make([]uint64, len(a.words))
	for i := range words {
		words[i] = a.words[i] | b.words[i]
	}
	return newBV(a.width, words)
}

// Xor returns the bitwise XOR of a and b.
func Xor(a, b BV) BV {
	mustSameWidth(a, b)
	words := make([]uint64, len(a.words))
	for i := range words {
		words[i] = a.words[i] ^ b.words[i]
	}
	return newBV(a.width, words)
}

// Xnor returns the bitwise XNOR (complement of XOR) of a and b.
func Xnor(a, b BV) BV {
	return Xor(a, b).Not()
}

// RedOr reduces b to a width-1 bit-vector: 1 iff any bit of b is set.
func (b BV) RedOr() BV {
	if b.IsZero() {
		return Zero(1)
	}
	return One(1)
}

// Compare returns -1, 0, or 1 as a is unsigned less than, equal to, or
// greater than b.
func Compare(a, b BV) int {
	mustSameWidth(a, b)
	for i := len(a.words) - 1; i >= 0; i-- {
		if a.words[i] != b.words[i] {
			if a.words[i] < b.words[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Ult reports whether a < b (unsigned).
func Ult(a, b BV) bool { return Compare(a, b) < 0 }

// Ule reports whether a <= b (unsigned).
func Ule(a, b BV) bool { return Compare(a, b) <= 0 }

// Ugt reports whether a > b (unsigned).
func Ugt(a, b BV) bool { return Compare(a, b) > 0 }

// Uge reports whether a >= b (unsigned).
func Uge(a, b BV) bool { return Compare(a, b) >= 0 }

// Slice extracts bits [hi:lo] (inclusive, hi >= lo >= 0, hi < b.width) into
// a new bit-vector of width hi-lo+1.
func (b BV) Slice(hi, lo int) BV {
	if lo < 0 || hi >= b.width || hi < lo {
		panic("bv: invalid slice bounds")
	}
	width := hi - lo + 1
	words := make([]uint64, numWords(width))
	for i := 0; i < width; i++ {
		bit := b.GetBit(lo + i)
		if bit != 0 {
			words[i/64] |= uint64(1) << uint(i%64)
		}
	}
	return newBV(width, words)
}

// TrailingZeros returns the number of trailing zero bits of b (ctz). If b
// is zero, it returns b.Width().
func (b BV) TrailingZeros() int {
	count := 0
	for _, w := range b.words {
		if w == 0 {
			count += 64
			continue
		}
		count += bits.TrailingZeros64(w)
		return min(count, b.width)
	}
	return b.width
}
