package hint

import (
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
)

func init() {
	solver.RegisterHint(BitDecomposeHint)
	solver.RegisterHint(ShiftMultipliersHint)
}

// BitDecomposeHint decomposes `in` into its `b` low bits plus the high
// remainder, so that `in == sum(bits[i] * 2^i) + rem * 2^b`.
// Inputs: [in, b]. Outputs: [bits[0], ..., bits[b-1], rem].
func BitDecomposeHint(field *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	in := new(big.Int).Set(inputs[0])
	b := uint(inputs[1].Uint64())

	for i := uint(0); i < b; i++ {
		outputs[i].SetUint64(uint64(in.Bit(int(i))))
	}
	outputs[b].Rsh(in, b)

	return nil
}

// ShiftMultipliersHint produces the binary multiplier chain backing a
// dynamic left shift: `bound` values, each 1 or 2, with exactly `shift`
// twos. When `skip` is set, the chain degenerates to all ones so that
// the accompanying constraints stay satisfiable for any shift amount.
// Inputs: [shift, skip, bound]. Outputs: [mult[0], ..., mult[bound-1]].
func ShiftMultipliersHint(field *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	shift := new(big.Int).Set(inputs[0])
	skip := inputs[1].Sign() != 0
	bound := uint(inputs[2].Uint64())

	for i := uint(0); i < bound; i++ {
		if !skip && shift.Cmp(big.NewInt(int64(i))) > 0 {
			outputs[i].SetUint64(2)
		} else {
			outputs[i].SetUint64(1)
		}
	}

	return nil
}
