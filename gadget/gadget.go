package gadget

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/rangecheck"
)

// IntGadget bundles the primitive integer relations the float circuits
// are built from: range checks, equality, bounded comparison, and the
// two-way switcher. Everything is branchless; conditions are encoded as
// 0/1 field elements.
type IntGadget struct {
	api          frontend.API
	rangechecker frontend.Rangechecker
}

func New(api frontend.API) IntGadget {
	return IntGadget{api, rangecheck.New(api)}
}

// AssertBitLength enforces `0 <= v < 2^bits`.
func (g *IntGadget) AssertBitLength(v frontend.Variable, bits uint) {
	g.rangechecker.Check(v, int(bits))
}

// IsEq returns 1 iff `a == b`.
func (g *IntGadget) IsEq(a, b frontend.Variable) frontend.Variable {
	return g.api.IsZero(g.api.Sub(a, b))
}

// IsLessThan returns 1 iff `a < b`, where both operands must fit in `n`
// bits. The comparison decomposes `a + 2^n - b` into n+1 bits: the top
// bit is set exactly when the subtraction does not borrow.
func (g *IntGadget) IsLessThan(a, b frontend.Variable, n uint) frontend.Variable {
	shifted := g.api.Add(a, g.api.Sub(new(big.Int).Lsh(big.NewInt(1), n), b))
	bits := g.api.ToBinary(shifted, int(n)+1)
	lt := g.api.Sub(big.NewInt(1), bits[n])
	g.api.Compiler().MarkBoolean(lt)
	return lt
}

// Switcher returns `(l, r)` when `sel` is 0 and `(r, l)` when `sel` is 1.
func (g *IntGadget) Switcher(sel, l, r frontend.Variable) (frontend.Variable, frontend.Variable) {
	aux := g.api.Mul(sel, g.api.Sub(r, l))
	return g.api.Add(l, aux), g.api.Sub(r, aux)
}
