package invert

import (
	"fmt"

	"github.com/aytey/bvinvert/pkg/bv"
	"github.com/aytey/bvinvert/pkg/bvdomain"
)

// Op identifies a supported bit-vector operator.
type Op int

const (
	Add Op = iota
	And
	Eq
	Mul
	Udiv
	Urem
	Ult
	Sll
	Srl
	Concat
)

func (op Op) String() string {
	switch op {
	case Add:
		return "add"
	case And:
		return "and"
	case Eq:
		return "eq"
	case Mul:
		return "mul"
	case Udiv:
		return "udiv"
	case Urem:
		return "urem"
	case Ult:
		return "ult"
	case Sll:
		return "sll"
	case Srl:
		return "srl"
	case Concat:
		return "concat"
	}
	return fmt.Sprintf("invert.Op(%d)", int(op))
}

// TWidth returns the required width of t for op, given the widths of x
// (xWidth) and s (sWidth): eq and ult always compare to a single Boolean
// bit, concat's result is the concatenation of both operand widths, and
// every other supported operator is width-preserving (w(t) = w(x) = w(s)).
func TWidth(op Op, xWidth, sWidth int) int {
	switch op {
	case Eq, Ult:
		return 1
	case Concat:
		return xWidth + sWidth
	}
	return xWidth
}

// Oblivious evaluates the domain-oblivious invertibility condition for op,
// treating x as fully unconstrained.
func Oblivious(op Op, s, t bv.BV, posX int) bool {
	switch op {
	case Add:
		return AddIC(s, t)
	case And:
		return AndIC(s, t)
	case Eq:
		return EqIC(s, t)
	case Mul:
		return MulIC(s, t)
	case Udiv:
		if posX == 0 {
			return UdivPos0(s, t)
		}
		return UdivPos1(s, t)
	case Urem:
		if posX == 0 {
			return UremPos0(s, t)
		}
		return UremPos1(s, t)
	case Ult:
		if posX == 0 {
			return UltPos0(s, t)
		}
		return UltPos1(s, t)
	case Sll:
		if posX == 0 {
			return SllPos0(s, t)
		}
		return SllPos1(s, t)
	case Srl:
		if posX == 0 {
			return SrlPos0(s, t)
		}
		return SrlPos1(s, t)
	case Concat:
		if posX == 0 {
			return ConcatPos0(s, t)
		}
		return ConcatPos1(s, t)
	}
	panic(fmt.Sprintf("invert: unknown op %v", op))
}

// DomainAware evaluates the domain-aware invertibility condition for op,
// additionally requiring some x in the concretization of d.
func DomainAware(op Op, d bvdomain.Domain, s, t bv.BV, posX int) bool {
	switch op {
	case Add:
		return AddConst(d, s, t)
	case And:
		return AndConst(d, s, t)
	case Eq:
		return EqConst(d, s, t)
	case Mul:
		return MulConst(d, s, t)
	case Udiv:
		return UdivConst(d, s, t, posX)
	case Urem:
		return UremConst(d, s, t, posX)
	case Ult:
		return UltConst(d, s, t, posX)
	case Sll:
		return SllConst(d, s, t, posX)
	case Srl:
		return SrlConst(d, s, t, posX)
	case Concat:
		return ConcatConst(d, s, t, posX)
	}
	panic(fmt.Sprintf("invert: unknown op %v", op))
}
