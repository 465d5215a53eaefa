package util

import (
	"testing"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/test/unsafekzg"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

// compressThreshold --> if linear expressions are larger than this, the frontend will introduce
// intermediate constraints. The lower this number is, the faster compile time should be (to a point)
// but resulting circuit will have more constraints (slower proving time).
const compressThreshold = 1000

// ProveAndVerifyGroth16 compiles the circuit to R1CS over BN254 and
// runs a full Groth16 setup/prove/verify cycle on the assignment.
func ProveAndVerifyGroth16(circuit, assignment frontend.Circuit) error {
	start := time.Now()
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit, frontend.WithCompressThreshold(compressThreshold))
	if err != nil {
		return err
	}
	log.Info().Int("constraints", cs.GetNbConstraints()).Dur("compile", time.Since(start)).Msg("compiled r1cs")

	fullWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return err
	}
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return err
	}

	start = time.Now()
	proof, err := groth16.Prove(cs, pk, fullWitness)
	if err != nil {
		return err
	}
	log.Info().Dur("prove", time.Since(start)).Msg("groth16 proved")

	publicWitness, err := fullWitness.Public()
	if err != nil {
		return err
	}
	return groth16.Verify(proof, vk, publicWitness)
}

// ProveAndVerifyPlonk compiles the circuit to a PLONK constraint system
// over BN254 and runs setup/prove/verify with a test-only KZG SRS.
func ProveAndVerifyPlonk(circuit, assignment frontend.Circuit) error {
	start := time.Now()
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), scs.NewBuilder, circuit, frontend.WithCompressThreshold(compressThreshold))
	if err != nil {
		return err
	}
	log.Info().Int("constraints", ccs.GetNbConstraints()).Dur("compile", time.Since(start)).Msg("compiled scs")

	fullWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return err
	}
	srs, srsLagrange, err := unsafekzg.NewSRS(ccs)
	if err != nil {
		return err
	}
	pk, vk, err := plonk.Setup(ccs, srs, srsLagrange)
	if err != nil {
		return err
	}

	start = time.Now()
	proof, err := plonk.Prove(ccs, pk, fullWitness)
	if err != nil {
		return err
	}
	log.Info().Dur("prove", time.Since(start)).Msg("plonk proved")

	publicWitness, err := fullWitness.Public()
	if err != nil {
		return err
	}
	return plonk.Verify(proof, vk, publicWitness)
}

// BenchProof repeatedly proves the assignment with Groth16, reusing one
// compilation and setup across iterations.
func BenchProof(b *testing.B, circuit, assignment frontend.Circuit) {
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit, frontend.WithCompressThreshold(compressThreshold))
	require.NoError(b, err)
	log.Info().Int("constraints", cs.GetNbConstraints()).Msg("compiled r1cs")

	fullWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	require.NoError(b, err)
	pk, vk, err := groth16.Setup(cs)
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		proof, err := groth16.Prove(cs, pk, fullWitness)
		require.NoError(b, err)

		publicWitness, err := fullWitness.Public()
		require.NoError(b, err)
		require.NoError(b, groth16.Verify(proof, vk, publicWitness))
	}
}
