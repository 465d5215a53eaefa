package gadget

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
)

type lessThanCircuit struct {
	A   frontend.Variable `gnark:",secret"`
	B   frontend.Variable `gnark:",secret"`
	Out frontend.Variable `gnark:",public"`
	n   uint
}

func (c *lessThanCircuit) Define(api frontend.API) error {
	g := New(api)
	api.AssertIsEqual(g.IsLessThan(c.A, c.B, c.n), c.Out)
	return nil
}

func TestIsLessThan(t *testing.T) {
	assert := test.NewAssert(t)

	cases := []struct{ a, b, out int }{
		{0, 1, 1},
		{3, 200, 1},
		{200, 3, 0},
		{7, 7, 0},
		{254, 255, 1},
		{255, 0, 0},
	}
	for _, tc := range cases {
		assert.ProverSucceeded(
			&lessThanCircuit{n: 8},
			&lessThanCircuit{A: tc.a, B: tc.b, Out: tc.out, n: 8},
			test.WithCurves(ecc.BN254),
			test.WithBackends(backend.GROTH16),
		)
	}
}

type switcherCircuit struct {
	Sel  frontend.Variable `gnark:",secret"`
	L    frontend.Variable `gnark:",secret"`
	R    frontend.Variable `gnark:",secret"`
	OutL frontend.Variable `gnark:",public"`
	OutR frontend.Variable `gnark:",public"`
}

func (c *switcherCircuit) Define(api frontend.API) error {
	g := New(api)
	outL, outR := g.Switcher(c.Sel, c.L, c.R)
	api.AssertIsEqual(outL, c.OutL)
	api.AssertIsEqual(outR, c.OutR)
	return nil
}

func TestSwitcher(t *testing.T) {
	assert := test.NewAssert(t)

	assert.ProverSucceeded(
		&switcherCircuit{},
		&switcherCircuit{Sel: 0, L: 11, R: 22, OutL: 11, OutR: 22},
		test.WithCurves(ecc.BN254),
		test.WithBackends(backend.GROTH16),
	)
	assert.ProverSucceeded(
		&switcherCircuit{},
		&switcherCircuit{Sel: 1, L: 11, R: 22, OutL: 22, OutR: 11},
		test.WithCurves(ecc.BN254),
		test.WithBackends(backend.GROTH16),
	)
}

type isEqCircuit struct {
	A   frontend.Variable `gnark:",secret"`
	B   frontend.Variable `gnark:",secret"`
	Out frontend.Variable `gnark:",public"`
}

func (c *isEqCircuit) Define(api frontend.API) error {
	g := New(api)
	api.AssertIsEqual(g.IsEq(c.A, c.B), c.Out)
	return nil
}

func TestIsEq(t *testing.T) {
	assert := test.NewAssert(t)

	assert.ProverSucceeded(
		&isEqCircuit{},
		&isEqCircuit{A: 42, B: 42, Out: 1},
		test.WithCurves(ecc.BN254),
		test.WithBackends(backend.GROTH16),
	)
	assert.ProverSucceeded(
		&isEqCircuit{},
		&isEqCircuit{A: 42, B: 43, Out: 0},
		test.WithCurves(ecc.BN254),
		test.WithBackends(backend.GROTH16),
	)
}
