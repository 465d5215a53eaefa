package util

import (
	"fmt"
	"math"
	"math/big"
)

// Pair is the off-circuit form of a float value: an unsigned exponent
// and a mantissa with explicit leading 1. The zero value of the number
// is encoded as (0, 0); any nonzero number satisfies
// `1 <= E < 2^k` and `2^p <= M < 2^(p+1)` and denotes `M * 2^(E-p)`.
type Pair struct {
	E *big.Int
	M *big.Int
}

func Zero() Pair {
	return Pair{E: big.NewInt(0), M: big.NewInt(0)}
}

// IsZero reports whether the pair is the canonical zero encoding.
func (x Pair) IsZero() bool {
	return x.E.Sign() == 0
}

// WellFormed reports whether the pair satisfies the float invariant for
// the given parameters.
func WellFormed(x Pair, k, p uint) bool {
	if x.E.Sign() == 0 {
		return x.M.Sign() == 0
	}
	if x.E.Sign() < 0 || x.E.BitLen() > int(k) {
		return false
	}
	return x.M.BitLen() == int(p)+1
}

// Encode converts a non-negative float64 into a pair, requiring the
// value to be exactly representable with precision p and a k-bit
// exponent.
func Encode(v float64, k, p uint) (Pair, error) {
	if v == 0 {
		return Zero(), nil
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return Pair{}, fmt.Errorf("value %v outside the unsigned finite domain", v)
	}

	frac, exp := math.Frexp(v) // v = frac * 2^exp, frac in [0.5, 1)
	mf := frac * float64(uint64(1)<<(p+1))
	if mf != math.Trunc(mf) {
		return Pair{}, fmt.Errorf("value %v is not representable at precision %d", v, p)
	}
	e := exp - 1
	if e < 1 || e >= 1<<k {
		return Pair{}, fmt.Errorf("value %v needs exponent %d outside [1, 2^%d)", v, e, k)
	}
	return Pair{E: big.NewInt(int64(e)), M: big.NewInt(int64(mf))}, nil
}

// Decode converts a well-formed pair back to a float64.
func Decode(x Pair, p uint) float64 {
	if x.IsZero() {
		return 0
	}
	return math.Ldexp(float64(x.M.Int64()), int(x.E.Int64())-int(p))
}

// Add is the reference adder: it mirrors the circuit semantics exactly
// (magnitude ordering, alignment, normalization at width 2p+1, round to
// nearest with ties up, and the trivial path when the exponent gap
// exceeds p+1) and serves as the oracle for circuit tests.
func Add(x, y Pair, p uint) Pair {
	alpha, beta := x, y
	if magnitude(x, p).Cmp(magnitude(y, p)) < 0 {
		alpha, beta = y, x
	}

	diff := new(big.Int).Sub(alpha.E, beta.E)
	if alpha.E.Sign() == 0 || diff.Cmp(big.NewInt(int64(p)+1)) > 0 {
		return Pair{E: new(big.Int).Set(alpha.E), M: new(big.Int).Set(alpha.M)}
	}

	sum := new(big.Int).Lsh(alpha.M, uint(diff.Uint64()))
	sum.Add(sum, beta.M)

	wide := 2*p + 1
	msnzb := uint(sum.BitLen() - 1)
	mNorm := new(big.Int).Lsh(sum, wide-msnzb)
	eNorm := new(big.Int).Add(beta.E, big.NewInt(int64(msnzb)-int64(p)))

	bias := new(big.Int).Lsh(big.NewInt(1), wide-p-1)
	threshold := new(big.Int).Lsh(big.NewInt(1), wide+1)
	threshold.Sub(threshold, bias)

	if mNorm.Cmp(threshold) >= 0 {
		return Pair{
			E: eNorm.Add(eNorm, big.NewInt(1)),
			M: new(big.Int).Lsh(big.NewInt(1), p),
		}
	}
	return Pair{
		E: eNorm,
		M: mNorm.Add(mNorm, bias).Rsh(mNorm, wide-p),
	}
}

func magnitude(x Pair, p uint) *big.Int {
	m := new(big.Int).Lsh(x.E, p+1)
	return m.Add(m, x.M)
}
