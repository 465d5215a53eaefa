package float

import (
	"math/big"

	"github.com/consensys/gnark/frontend"

	"gnark-fp/hint"
)

// CheckBitLength returns 1 iff `0 <= v < 2^b`.
// The prover supplies a b-bit decomposition of `v` together with the
// high remainder; the constraints force every claimed bit to be boolean
// and the weighted sum plus `rem * 2^b` to reconstruct `v` exactly, so
// the remainder is zero exactly when `v` fits in `b` bits. The
// decomposition itself is internal and not exposed.
func (f *Context) CheckBitLength(v frontend.Variable, b uint) frontend.Variable {
	outputs, err := f.Api.Compiler().NewHint(hint.BitDecomposeHint, int(b)+1, v, b)
	if err != nil {
		panic(err)
	}
	bits := outputs[:b]
	rem := outputs[b]

	sum := frontend.Variable(0)
	for i, bit := range bits {
		f.Api.AssertIsBoolean(bit)
		sum = f.Api.Add(sum, f.Api.Mul(bit, pow2(uint(i))))
	}
	f.Api.AssertIsEqual(v, f.Api.Add(sum, f.Api.Mul(rem, pow2(b))))

	return f.Api.IsZero(rem)
}

// AssertWellFormed enforces the float invariant on `x`: either both
// components are zero, or the exponent fits in K bits and the mantissa
// lies in `[2^P, 2^(P+1))`. The mantissa range is encoded as a P-bit
// length check on `m - 2^P`.
func (f *Context) AssertWellFormed(x FloatVar) {
	eIsZero := f.Api.IsZero(x.Exponent)
	mIsZero := f.Api.IsZero(x.Mantissa)

	eInRange := f.CheckBitLength(x.Exponent, f.K)
	mInRange := f.CheckBitLength(f.Api.Sub(x.Mantissa, pow2(f.P)), f.P)

	f.Api.AssertIsEqual(
		f.Api.Select(eIsZero, mIsZero, f.Api.And(eInRange, mInRange)),
		big.NewInt(1),
	)
}

// ShiftLeft computes `x * 2^shift` for a shift amount that is itself a
// circuit variable, with `shift < bound` enforced.
// The prover supplies a chain of `bound` multipliers, each constrained
// to be 1 or 2. The number of twos must equal `shift`, and the last
// multiplier must be 1, which rules out a full chain of twos and hence
// proves the bound. When `skipChecks` is set the count constraint is
// deactivated (the chain then collapses to all ones), keeping the
// relation satisfiable for out-of-bound shifts; the output is
// meaningless in that mode and must be discarded by the caller.
func (f *Context) ShiftLeft(x, shift, skipChecks frontend.Variable, bound uint) frontend.Variable {
	outputs, err := f.Api.Compiler().NewHint(hint.ShiftMultipliersHint, int(bound), shift, skipChecks, bound)
	if err != nil {
		panic(err)
	}

	count := frontend.Variable(0)
	y := x
	for _, mult := range outputs {
		f.Api.AssertIsEqual(f.Api.Mul(f.Api.Sub(mult, 1), f.Api.Sub(mult, 2)), 0)
		count = f.Api.Add(count, f.Api.Sub(mult, 1))
		y = f.Api.Mul(y, mult)
	}

	checksActive := f.Api.Sub(big.NewInt(1), skipChecks)
	f.Api.Compiler().MarkBoolean(checksActive)
	f.Api.AssertIsEqual(count, f.Api.Mul(shift, checksActive))
	f.Api.AssertIsEqual(outputs[bound-1], big.NewInt(1))

	return y
}

// ShiftRight computes `x >> shift` for a compile-time shift amount,
// where `x` must fit in `b` bits: decompose, drop the low bits,
// recompose.
func (f *Context) ShiftRight(x frontend.Variable, b, shift uint) frontend.Variable {
	bits := f.Api.ToBinary(x, int(b))
	return f.Api.FromBinary(bits[shift:]...)
}

// MSNZB returns a one-hot vector of width `b` marking the most
// significant set bit of `in`. Position i is selected when bit i is set
// and the weighted sum of bits 0..i already equals `in`, i.e. all
// higher bits are zero; for nonzero `in` exactly one position satisfies
// both. A zero input makes the circuit unsatisfiable unless
// `skipChecks` is set, in which case the vector is all zeros.
func (f *Context) MSNZB(in, skipChecks frontend.Variable, b uint) []frontend.Variable {
	notSkip := f.Api.Sub(big.NewInt(1), skipChecks)
	f.Api.Compiler().MarkBoolean(notSkip)
	f.Api.AssertIsEqual(f.Api.Mul(f.Api.IsZero(in), notSkip), 0)

	bits := f.Api.ToBinary(in, int(b))
	oneHot := make([]frontend.Variable, b)
	sum := frontend.Variable(0)
	for i := uint(0); i < b; i++ {
		sum = f.Api.Add(sum, f.Api.Mul(bits[i], pow2(i)))
		oneHot[i] = f.Api.Mul(bits[i], f.Gadget.IsEq(sum, in))
	}
	return oneHot
}

// Normalize shifts an unnormalized mantissa of up to `wide`+1 bits so
// that its most significant set bit lands at position `wide`, and
// adjusts the exponent accordingly. The one-hot MSNZB position doubles
// as a shift selector: `sum(2^(wide-i) * oneHot[i])` is exactly the
// required power-of-two multiplier, avoiding any dynamic indexing.
// The exponent moves by `msnzb - P`, the offset the adder uses when it
// feeds the intermediate sum in at beta's scale.
func (f *Context) Normalize(e, m, skipChecks frontend.Variable, wide uint) (frontend.Variable, frontend.Variable) {
	oneHot := f.MSNZB(m, skipChecks, wide+1)

	msnzb := frontend.Variable(0)
	selector := frontend.Variable(0)
	for i := uint(0); i <= wide; i++ {
		msnzb = f.Api.Add(msnzb, f.Api.Mul(oneHot[i], big.NewInt(int64(i))))
		selector = f.Api.Add(selector, f.Api.Mul(oneHot[i], pow2(wide-i)))
	}

	mOut := f.Api.Mul(m, selector)
	eOut := f.Api.Sub(f.Api.Add(e, msnzb), big.NewInt(int64(f.P)))
	return eOut, mOut
}

// Round reduces a mantissa normalized at precision `wide` down to
// precision P, rounding to nearest with ties up, and carries a rounding
// overflow into the exponent.
// Overflow happens exactly when adding the rounding bias would push the
// mantissa past `2^(wide+1)`, i.e. when `m >= 2^(wide+1) - 2^(wide-P-1)`;
// in that case the mantissa resets to `2^P` and the exponent absorbs
// the carry. Both branches are computed and the result is selected, so
// the relation never branches.
func (f *Context) Round(e, m frontend.Variable, wide uint) (frontend.Variable, frontend.Variable) {
	roundAmt := wide - f.P

	biased := f.Api.Add(m, pow2(roundAmt-1))
	truncated := f.ShiftRight(biased, wide+2, roundAmt)

	threshold := new(big.Int).Sub(pow2(wide+1), pow2(roundAmt-1))
	noOverflow := f.Gadget.IsLessThan(m, threshold, wide+1)

	eOut := f.Api.Select(noOverflow, e, f.Api.Add(e, big.NewInt(1)))
	mOut := f.Api.Select(noOverflow, truncated, pow2(f.P))
	return eOut, mOut
}
