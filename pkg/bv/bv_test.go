package bv

import "testing"

func TestZeroOnesOne(t *testing.T) {
	if !Zero(8).IsZero() {
		t.Fatal("Zero(8) is not zero")
	}
	if !Ones(8).IsOnes() {
		t.Fatal("Ones(8) is not ones")
	}
	if One(8).GetBit(0) != 1 {
		t.Fatal("One(8) bit 0 should be 1")
	}
}

func TestEqAndCopy(t *testing.T) {
	a := FromUint64(0x2A, 8)
	b := Copy(a)
	if !Eq(a, b) {
		t.Fatal("copy should be equal")
	}
	b = b.SetBit(0, 1-b.GetBit(0))
	if Eq(a, b) {
		t.Fatal("mutating the copy must not affect the original")
	}
}

func TestGetSetBit(t *testing.T) {
	b := Zero(8)
	b = b.SetBit(3, 1)
	for i := 0; i < 8; i++ {
		want := 0
		if i == 3 {
			want = 1
		}
		if got := b.GetBit(i); got != want {
			t.Fatalf("bit %d: got %d, want %d", i, got, want)
		}
	}
}

func TestNotAndOrXor(t *testing.T) {
	a := FromUint64(0b1100, 4)
	b := FromUint64(0b1010, 4)
	if got := And(a, b).ToChar(); got != "1000" {
		t.Fatalf("And: got %s", got)
	}
	if got := Or(a, b).ToChar(); got != "1110" {
		t.Fatalf("Or: got %s", got)
	}
	if got := Xor(a, b).ToChar(); got != "0110" {
		t.Fatalf("Xor: got %s", got)
	}
	if got := a.Not().ToChar(); got != "0011" {
		t.Fatalf("Not: got %s", got)
	}
}

func TestCompare(t *testing.T) {
	a := FromUint64(3, 4)
	b := FromUint64(5, 4)
	if !Ult(a, b) {
		t.Fatal("3 < 5 expected")
	}
	if Ugt(a, b) {
		t.Fatal("3 > 5 unexpected")
	}
	if !Ule(a, a) || !Uge(a, a) {
		t.Fatal("equal values must satisfy <= and >=")
	}
}

func TestAddSubWraparound(t *testing.T) {
	a := FromUint64(0xFF, 8)
	one := One(8)
	if got := Add(a, one).ToChar(); got != "00000000" {
		t.Fatalf("255+1 should wrap to 0, got %s", got)
	}
	zero := Zero(8)
	if got := Sub(zero, one).ToChar(); got != "11111111" {
		t.Fatalf("0-1 should wrap to all ones, got %s", got)
	}
}

func TestMul(t *testing.T) {
	a := FromUint64(200, 8)
	b := FromUint64(5, 8)
	// 200*5 = 1000, truncated mod 256 = 1000-768 = 232
	got := Mul(a, b)
	want := FromUint64(232, 8)
	if !Eq(got, want) {
		t.Fatalf("Mul: got %s, want %s", got.ToChar(), want.ToChar())
	}
}

func TestMulWideLimbs(t *testing.T) {
	width := 128
	a := FromUint64(^uint64(0), width)
	b := FromUint64(2, width)
	got := Mul(a, b)
	// (2^64-1)*2 truncated to 128 bits, no wraparound at this width.
	want := Sub(Add(a, a), Zero(width))
	if !Eq(got, want) {
		t.Fatalf("Mul wide: got %s, want %s", got.ToChar(), want.ToChar())
	}
}

func TestSllSrl(t *testing.T) {
	a := FromUint64(0b0001, 4)
	amt := FromUint64(2, 4)
	if got := Sll(a, amt).ToChar(); got != "0100" {
		t.Fatalf("Sll: got %s", got)
	}
	b := FromUint64(0b1000, 4)
	if got := Srl(b, amt).ToChar(); got != "0010" {
		t.Fatalf("Srl: got %s", got)
	}
	overflow := FromUint64(10, 4)
	if got := Sll(a, overflow); !got.IsZero() {
		t.Fatalf("Sll by overflowing amount should be zero, got %s", got.ToChar())
	}
}

func TestSlice(t *testing.T) {
	b := FromUint64(0b1011, 4)
	got := b.Slice(2, 0)
	if got.Width() != 3 {
		t.Fatalf("slice width: got %d", got.Width())
	}
	if got.ToChar() != "011" {
		t.Fatalf("slice: got %s", got.ToChar())
	}
}

func TestTrailingZeros(t *testing.T) {
	if Zero(8).TrailingZeros() != 8 {
		t.Fatal("TrailingZeros(0) should be width")
	}
	if FromUint64(0b1000, 8).TrailingZeros() != 3 {
		t.Fatal("TrailingZeros(0b1000) should be 3")
	}
}

func TestToCharFromChar(t *testing.T) {
	b := FromUint64(0b1101, 4)
	s := b.ToChar()
	if s != "1101" {
		t.Fatalf("ToChar: got %s", s)
	}
	round := FromChar(s)
	if !Eq(b, round) {
		t.Fatalf("FromChar(ToChar(b)) != b")
	}
}

func TestUdivUremByZero(t *testing.T) {
	a := FromUint64(5, 4)
	zero := Zero(4)
	if got := Udiv(a, zero); !got.IsOnes() {
		t.Fatalf("udiv by zero should be all-ones, got %s", got.ToChar())
	}
	if got := Urem(a, zero); !Eq(got, a) {
		t.Fatalf("urem by zero should be the dividend, got %s", got.ToChar())
	}
}

func TestUdivUrem(t *testing.T) {
	a := FromUint64(17, 8)
	b := FromUint64(5, 8)
	if got := Udiv(a, b); !Eq(got, FromUint64(3, 8)) {
		t.Fatalf("17/5: got %s", got.ToChar())
	}
	if got := Urem(a, b); !Eq(got, FromUint64(2, 8)) {
		t.Fatalf("17%%5: got %s", got.ToChar())
	}
}

func TestModInverse(t *testing.T) {
	s := FromUint64(5, 8)
	inv, ok := s.ModInverse()
	if !ok {
		t.Fatal("5 is odd, should have an inverse mod 256")
	}
	if got := Mul(s, inv); !Eq(got, One(8)) {
		t.Fatalf("s * s^-1 should be 1, got %s", got.ToChar())
	}

	even := FromUint64(4, 8)
	if _, ok := even.ModInverse(); ok {
		t.Fatal("even values have no inverse mod a power of two")
	}
}

func TestRedOr(t *testing.T) {
	if !Zero(8).RedOr().IsFalse() {
		t.Fatal("RedOr(0) should be false")
	}
	if !FromUint64(1, 8).RedOr().IsTrue() {
		t.Fatal("RedOr(nonzero) should be true")
	}
}
