package util

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		v    float64
		k, p uint
		e, m int64
	}{
		{12, 4, 3, 3, 12},
		{2, 4, 3, 1, 8},
		{14, 4, 3, 3, 14},
		{0, 4, 3, 0, 0},
		{3, 8, 23, 1, 3 << 22},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("v=%v,k=%d,p=%d", tc.v, tc.k, tc.p), func(t *testing.T) {
			pair, err := Encode(tc.v, tc.k, tc.p)
			require.NoError(t, err)
			require.Equal(t, tc.e, pair.E.Int64())
			require.Equal(t, tc.m, pair.M.Int64())
			require.Equal(t, tc.v, Decode(pair, tc.p))
		})
	}
}

func TestEncodeRejects(t *testing.T) {
	_, err := Encode(-1, 4, 3)
	require.Error(t, err, "negative values have no encoding")

	_, err = Encode(0.3, 8, 23)
	require.Error(t, err, "0.3 is not exactly representable")

	_, err = Encode(1, 4, 3)
	require.Error(t, err, "values below 2 would need the reserved exponent 0")

	_, err = Encode(1<<40, 4, 3)
	require.Error(t, err, "exponent exceeds 4 bits")
}

func TestReferenceAddConcrete(t *testing.T) {
	a := Pair{E: big.NewInt(3), M: big.NewInt(12)}
	b := Pair{E: big.NewInt(1), M: big.NewInt(8)}
	z := Add(a, b, 3)
	require.Equal(t, int64(3), z.E.Int64())
	require.Equal(t, int64(14), z.M.Int64())
}

// Exhaustively checks the reference adder over all well-formed pairs at
// k=4, p=3: zero identity, commutativity, and well-formedness of every
// result whose exponent stays representable.
func TestReferenceAddExhaustive(t *testing.T) {
	const k, p = 4, 3

	var values []Pair
	values = append(values, Zero())
	for e := int64(1); e < 1<<k; e++ {
		for m := int64(1 << p); m < 1<<(p+1); m++ {
			values = append(values, Pair{E: big.NewInt(e), M: big.NewInt(m)})
		}
	}

	for _, x := range values {
		z := Add(x, Zero(), p)
		require.Equal(t, 0, z.E.Cmp(x.E), "x + 0 must leave the exponent of %v unchanged", x)
		require.Equal(t, 0, z.M.Cmp(x.M), "x + 0 must leave the mantissa of %v unchanged", x)

		for _, y := range values {
			xy := Add(x, y, p)
			yx := Add(y, x, p)
			require.Equal(t, 0, xy.E.Cmp(yx.E))
			require.Equal(t, 0, xy.M.Cmp(yx.M))

			if xy.E.BitLen() <= k {
				require.True(t, WellFormed(xy, k, p), "result of %v + %v is malformed: %v", x, y, xy)
			}
		}
	}
}
