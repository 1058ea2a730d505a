package bv

import "math/bits"

// Add returns a + b, wrapping modulo 2^width.
func Add(a, b BV) BV {
	mustSameWidth(a, b)
	words := make([]uint64, len(a.words))
	var carry uint64
	for i := range words {
		sum, c := bits.Add64(a.words[i], b.words[i], carry)
		words[i] = sum
		carry = c
	}
	return newBV(a.width, words)
}

// Sub returns a - b, wrapping modulo 2^width.
func Sub(a, b BV) BV {
	mustSameWidth(a, b)
	words := make([]uint64, len(a.words))
	var borrow uint64
	for i := range words {
		diff, bo := bits.Sub64(a.words[i], b.words[i], borrow)
		words[i] = diff
		borrow = bo
	}
	return newBV(a.width, words)
}

// Neg returns the two's-complement negation of b (0 - b).
func (b BV) Neg() BV {
	return Sub(Zero(b.width), b)
}

// Inc returns b + 1, wrapping.
func (b BV) Inc() BV {
	return Add(b, One(b.width))
}

// Dec returns b - 1, wrapping.
func (b BV) Dec() BV {
	return Sub(b, One(b.width))
}

// Mul returns a * b, wrapping modulo 2^width (schoolbook limb multiply,
// truncated to n limbs since only the low width bits are observable).
func Mul(a, b BV) BV {
	mustSameWidth(a, b)
	n := len(a.words)
	full := make([]uint64, 2*n)
	for i := 0; i < n; i++ {
		if a.words[i] == 0 {
			continue
		}
		var carry uint64
		for j := 0; j < n; j++ {
			hi, lo := bits.Mul64(a.words[i], b.words[j])
			var c uint64
			lo, c = bits.Add64(lo, full[i+j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			full[i+j] = lo
			carry = hi
		}
		k := i + n
		for carry != 0 && k < len(full) {
			var c uint64
			full[k], c = bits.Add64(full[k], carry, 0)
			carry = c
			k++
		}
	}
	return newBV(a.width, full[:n])
}

// Sll returns a logically shifted left by the unsigned value of amt. A
// shift amount >= a.Width() yields zero, matching standard SMT-LIB
// bit-vector shift semantics.
func Sll(a, amt BV) BV {
	n, overflow := shiftAmount(amt, a.width)
	if overflow {
		return Zero(a.width)
	}
	return a.shlUint(n)
}

// Srl returns a logically shifted right by the unsigned value of amt. A
// shift amount >= a.Width() yields zero.
func Srl(a, amt BV) BV {
	n, overflow := shiftAmount(amt, a.width)
	if overflow {
		return Zero(a.width)
	}
	return a.shrUint(n)
}

// shiftAmount interprets amt as an unsigned shift count, reporting overflow
// if it is >= width (in which case the shift result is defined as zero).
func shiftAmount(amt BV, width int) (n int, overflow bool) {
	for i := len(amt.words) - 1; i >= 1; i-- {
		if amt.words[i] != 0 {
			return 0, true
		}
	}
	v := amt.words[0]
	if v >= uint64(width) {
		return 0, true
	}
	return int(v), false
}

func (b BV) shlUint(n int) BV {
	if n == 0 {
		return Copy(b)
	}
	words := make([]uint64, len(b.words))
	wordShift := n / 64
	bitShift := uint(n % 64)
	for i := len(b.words) - 1; i >= 0; i-- {
		srcIdx := i - wordShift
		if srcIdx < 0 {
			continue
		}
		var v uint64 = b.words[srcIdx] << bitShift
		if bitShift != 0 && srcIdx-1 >= 0 {
			v |= b.words[srcIdx-1] >> (64 - bitShift)
		}
		words[i] = v
	}
	return newBV(b.width, words)
}

func (b BV) shrUint(n int) BV {
	if n == 0 {
		return Copy(b)
	}
	words := make([]uint64, len(b.words))
	wordShift := n / 64
	bitShift := uint(n % 64)
	for i := 0; i < len(b.words); i++ {
		srcIdx := i + wordShift
		if srcIdx >= len(b.words) {
			continue
		}
		v := b.words[srcIdx] >> bitShift
		if bitShift != 0 && srcIdx+1 < len(b.words) {
			v |= b.words[srcIdx+1] << (64 - bitShift)
		}
		words[i] = v
	}
	return newBV(b.width, words)
}
