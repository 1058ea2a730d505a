package bv

import "math/big"

// toBigInt converts b to an unsigned math/big.Int.
func (b BV) toBigInt() *big.Int {
	buf := make([]byte, len(b.words)*8)
	for i, w := range b.words {
		for k := 0; k < 8; k++ {
			buf[i*8+k] = byte(w >> (8 * k))
		}
	}
	// buf is little-endian; big.Int.SetBytes wants big-endian.
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return new(big.Int).SetBytes(buf)
}

// fromBigInt builds a width-w BV from a non-negative math/big.Int,
// truncating to w bits.
func fromBigInt(v *big.Int, width int) BV {
	words := make([]uint64, numWords(width))
	bytesLE := v.Bytes() // big-endian
	for i, j := 0, len(bytesLE)-1; j >= 0; i, j = i+1, j-1 {
		limb := i / 8
		if limb >= len(words) {
			break
		}
		words[limb] |= uint64(bytesLE[j]) << uint(8*(i%8))
	}
	return newBV(width, words)
}

// Udiv returns a / b (unsigned, truncating). Division by zero yields the
// all-ones value, matching the SMT-LIB bit-vector convention.
func Udiv(a, b BV) BV {
	mustSameWidth(a, b)
	if b.IsZero() {
		return Ones(a.width)
	}
	q := new(big.Int).Quo(a.toBigInt(), b.toBigInt())
	return fromBigInt(q, a.width)
}

// Urem returns a % b (unsigned). Division by zero yields a, matching the
// SMT-LIB bit-vector convention.
func Urem(a, b BV) BV {
	mustSameWidth(a, b)
	if b.IsZero() {
		return Copy(a)
	}
	r := new(big.Int).Rem(a.toBigInt(), b.toBigInt())
	return fromBigInt(r, a.width)
}

// ModInverse returns the multiplicative inverse of b modulo 2^width, and
// true, if b is odd (the only case an inverse exists modulo a power of
// two). If b is even it returns the zero value and false.
func (b BV) ModInverse() (BV, bool) {
	if b.GetBit(0) == 0 {
		return Zero(b.width), false
	}
	modulus := new(big.Int).Lsh(big.NewInt(1), uint(b.width))
	inv := new(big.Int).ModInverse(b.toBigInt(), modulus)
	if inv == nil {
		return Zero(b.width), false
	}
	return fromBigInt(inv, b.width), true
}
