package float

import (
	"math/big"

	"github.com/consensys/gnark/frontend"

	"gnark-fp/gadget"
	"gnark-fp/util"
)

// Context carries the circuit parameters of a floating-point format:
// K bits of exponent and a mantissa of P+1 bits (precision P).
type Context struct {
	Api    frontend.API
	Gadget gadget.IntGadget
	K      uint
	P      uint
}

// FloatVar is an unsigned floating-point number in the constraint
// system, encoded as an exponent and a mantissa with explicit leading 1.
// A well-formed value is either zero, encoded as `(0, 0)`, or satisfies
// `1 <= Exponent < 2^K` and `2^P <= Mantissa < 2^(P+1)`; its numeric
// value is then `Mantissa * 2^(Exponent - P)`.
// There is no sign, no exponent bias, and no subnormal range.
type FloatVar struct {
	Exponent frontend.Variable
	Mantissa frontend.Variable
}

func NewContext(api frontend.API, k, p uint) Context {
	return Context{
		Api:    api,
		Gadget: gadget.New(api),
		K:      k,
		P:      p,
	}
}

// NewFloat allocates a FloatVar from raw exponent and mantissa
// variables. Both components are range-checked to their encoding width;
// the full well-formedness invariant is enforced by the operations that
// consume the value.
func (f *Context) NewFloat(e, m frontend.Variable) FloatVar {
	f.Gadget.AssertBitLength(e, f.K)
	f.Gadget.AssertBitLength(m, f.P+1)
	return FloatVar{Exponent: e, Mantissa: m}
}

// NewConstant encodes a non-negative Go float64 as an in-circuit
// constant. It panics if the value cannot be represented exactly in the
// context's format.
func (f *Context) NewConstant(v float64) FloatVar {
	pair, err := util.Encode(v, f.K, f.P)
	if err != nil {
		panic(err)
	}
	return FloatVar{Exponent: pair.E, Mantissa: pair.M}
}

// Zero returns the canonical all-zero encoding of the value zero.
func (f *Context) Zero() FloatVar {
	return FloatVar{Exponent: 0, Mantissa: 0}
}

// AssertIsEqual enforces component-wise equality of two numbers.
func (f *Context) AssertIsEqual(x, y FloatVar) {
	f.Api.AssertIsEqual(x.Exponent, y.Exponent)
	f.Api.AssertIsEqual(x.Mantissa, y.Mantissa)
}

// Select returns `x` when `c` is 1 and `y` when `c` is 0.
func (f *Context) Select(c frontend.Variable, x, y FloatVar) FloatVar {
	return FloatVar{
		Exponent: f.Api.Select(c, x.Exponent, y.Exponent),
		Mantissa: f.Api.Select(c, x.Mantissa, y.Mantissa),
	}
}

// Add computes the correctly-rounded sum of two numbers.
// Neither operand is assumed well-formed: both are checked here, and a
// malformed operand makes the circuit unsatisfiable.
func (f *Context) Add(x, y FloatVar) FloatVar {
	f.AssertWellFormed(x)
	f.AssertWellFormed(y)

	// Order the operands by magnitude. For well-formed values
	// `e * 2^(P+1) + m` is monotone in the numeric value, so a single
	// bounded comparison on this key finds the larger operand.
	magX := f.Api.Add(f.Api.Mul(x.Exponent, pow2(f.P+1)), x.Mantissa)
	magY := f.Api.Add(f.Api.Mul(y.Exponent, pow2(f.P+1)), y.Mantissa)
	xLtY := f.Gadget.IsLessThan(magX, magY, f.K+f.P+1)

	alphaE, betaE := f.Gadget.Switcher(xLtY, x.Exponent, y.Exponent)
	alphaM, betaM := f.Gadget.Switcher(xLtY, x.Mantissa, y.Mantissa)

	// When the exponents differ by more than P+1, the smaller operand is
	// below the rounding precision of the result and the sum is alpha
	// unchanged. The same holds when alpha itself is zero, since then
	// both operands are zero.
	diff := f.Api.Sub(alphaE, betaE)
	diffExceedsPrecision := f.Gadget.IsLessThan(big.NewInt(int64(f.P+1)), diff, f.K)
	alphaIsZero := f.Api.IsZero(alphaE)
	trivial := f.Api.Or(diffExceedsPrecision, alphaIsZero)

	// Align the mantissas at beta's scale and add. The shift amount is
	// bounded by P+2; on the trivial path it may exceed the bound, so
	// the shift checks are disabled there and the computed value is
	// discarded by the final selection.
	alignedM := f.ShiftLeft(alphaM, diff, trivial, f.P+2)
	sum := f.Api.Add(alignedM, betaM)

	wide := 2*f.P + 1
	normE, normM := f.Normalize(betaE, sum, trivial, wide)
	roundE, roundM := f.Round(normE, normM, wide)

	return FloatVar{
		Exponent: f.Api.Select(trivial, alphaE, roundE),
		Mantissa: f.Api.Select(trivial, alphaM, roundM),
	}
}

func pow2(n uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), n)
}
