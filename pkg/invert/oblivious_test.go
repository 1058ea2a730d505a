package invert

import (
	"testing"

	"github.com/aytey/bvinvert/pkg/bv"
)

func TestAndOblivious(t *testing.T) {
	s := bv.FromUint64(0b1110, 4)
	t1 := bv.FromUint64(0b0110, 4)
	if !AndIC(s, t1) {
		t.Fatal("inv_and(t=0110, s=1110) should be true: t&s=t")
	}
	s2 := bv.FromUint64(0b0100, 4)
	if AndIC(s2, t1) {
		t.Fatal("inv_and(t=0110, s=0100) should be false: t&s=0100 != t")
	}
}

func TestMulOblivious(t *testing.T) {
	s := bv.FromUint64(0b0010, 4)
	target := bv.FromUint64(0b0100, 4)
	if !MulIC(s, target) {
		t.Fatal("inv_mul(t=0100, s=0010) should be true")
	}
}

func TestUltOblivious(t *testing.T) {
	tTrue := bv.One(1)
	s := bv.Zero(4)
	if UltPos0(s, tTrue) {
		t.Fatal("inv_ult(t=1, s=0, pos_x=0) should be false: nothing < 0")
	}
}

func TestShiftExistential(t *testing.T) {
	s := bv.FromUint64(0b0001, 4)
	target := bv.FromUint64(0b0100, 4)
	if !SllPos1(s, target) {
		t.Fatal("exists i: 1<<i = 4 (i=2)")
	}
	unreachable := bv.FromUint64(0b0011, 4)
	if SllPos1(s, unreachable) {
		t.Fatal("1<<i never equals 3 for any i")
	}
}

func TestConcatOblivious(t *testing.T) {
	s := bv.FromUint64(0b10, 2)
	target := bv.FromUint64(0b1010, 4)
	if !ConcatPos0(s, target) {
		t.Fatal("x++s=t requires s = t[1:0]")
	}
	if !ConcatPos1(s, target) {
		t.Fatal("s++x=t requires s = t[3:2]")
	}
}

func TestUdivOblivious(t *testing.T) {
	s := bv.FromUint64(3, 8)
	target := bv.FromUint64(5, 8)
	if !UdivPos0(s, target) {
		t.Fatal("x/3=5 should be invertible (x=15..17)")
	}
}
