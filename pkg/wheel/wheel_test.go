package wheel

import (
	"testing"

	"github.com/aytey/bvinvert/pkg/bvdomain"
)

func TestFactorize60(t *testing.T) {
	got := Factorize(60, 1000)
	want := []uint64{2, 2, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFactorsDivideAndProductEqualsN(t *testing.T) {
	for _, n := range []uint64{2, 3, 4, 17, 60, 97, 1000, 999983} {
		factors := Factorize(n, 1_000_000)
		product := uint64(1)
		for _, f := range factors {
			if n%f != 0 {
				t.Fatalf("factor %d does not divide %d", f, n)
			}
			product *= f
		}
		if product != n {
			t.Fatalf("product of factors of %d is %d, want %d", n, product, n)
		}
	}
}

func TestFactorizePrime(t *testing.T) {
	got := Factorize(97, 1000)
	if len(got) != 1 || got[0] != 97 {
		t.Fatalf("97 is prime, got %v", got)
	}
}

func TestFactorizeStepLimit(t *testing.T) {
	got := Factorize(999983*999979, 10)
	if got != nil {
		t.Fatalf("expected no result under a tight step limit, got %v", got)
	}
}

func TestFindInDomain(t *testing.T) {
	d := bvdomain.NewFromChar("xx1x") // must have bit 1 set: 2, 3, 6, 7, 10, 11, 14, 15
	f, ok := FindInDomain(60, 1000, d, 1)
	if !ok {
		t.Fatal("expected to find a factor of 60 in domain xx1x above 1")
	}
	if 60%f != 0 {
		t.Fatalf("returned factor %d does not divide 60", f)
	}
	if f <= 1 {
		t.Fatalf("returned factor %d must be > exclMin 1", f)
	}
}

func TestFindInDomainNoMatch(t *testing.T) {
	d := bvdomain.NewFixedU64(13, 8) // 13 does not divide 60
	_, ok := FindInDomain(60, 1000, d, 0)
	if ok {
		t.Fatal("expected no factor of 60 fixed to 13")
	}
}
