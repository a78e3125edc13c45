package groth16

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/nume-crypto/groth16/backend/bn254"
	"github.com/nume-crypto/groth16/curve"
	"github.com/nume-crypto/groth16/field"
	"github.com/nume-crypto/groth16/qap"
	"github.com/nume-crypto/groth16/r1cs"
	"github.com/nume-crypto/groth16/snarkerr"
)

func row(f field.Field, vals ...int64) []field.Element {
	out := make([]field.Element, len(vals))
	for i, v := range vals {
		out[i] = f.FromInt64(v)
	}
	return out
}

// S1 (x*x = y). Variables (1, y, x), k=2.
func s1R1CS(f field.Field) *r1cs.R1CS {
	a := [][]field.Element{row(f, 0, 0, 1)}
	b := [][]field.Element{row(f, 0, 0, 1)}
	c := [][]field.Element{row(f, 0, 1, 0)}
	cs, err := r1cs.New(a, b, c, 2)
	if err != nil {
		panic(err)
	}
	return cs
}

// cubeR1CS builds x*x=y, y*x=c for a caller-supplied constant c.
// Variables (1, y, x), k=1.
func cubeR1CS(f field.Field, c field.Element) *r1cs.R1CS {
	a := [][]field.Element{
		row(f, 0, 0, 1),
		row(f, 0, 1, 0),
	}
	b := [][]field.Element{
		row(f, 0, 0, 1),
		row(f, 0, 0, 1),
	}
	cc := [][]field.Element{
		row(f, 0, 1, 0),
		{c, f.Zero(), f.Zero()},
	}
	cs, err := r1cs.New(a, b, cc, 1)
	if err != nil {
		panic(err)
	}
	return cs
}

// S3 boolean constraint x*(1-x) = 0. Variables (1, x), k=2.
func s3R1CS(f field.Field) *r1cs.R1CS {
	a := [][]field.Element{row(f, 0, 1)}
	b := [][]field.Element{row(f, 1, -1)}
	c := [][]field.Element{row(f, 0, 0)}
	cs, err := r1cs.New(a, b, c, 2)
	if err != nil {
		panic(err)
	}
	return cs
}

func setupFor(t *testing.T, cb curve.Backend, cs *r1cs.R1CS) (field.Field, *ProvingKey, *VerifyingKey) {
	t.Helper()
	f := cb.Field()
	q := qap.From(f, cs)
	pk, vk, err := Setup(f, cb, q, rand.Reader)
	require.NoError(t, err)
	return f, pk, vk
}

// spec.md §8 property 6: proof completeness.
func TestS1ProofCompleteness(t *testing.T) {
	cb := bn254.New()
	f, pk, vk := setupFor(t, cb, s1R1CS(cb.Field()))

	witness := row(f, 1, 9, 3)
	proof, err := Prove(f, cb, pk, witness, rand.Reader)
	require.NoError(t, err)

	require.NoError(t, Verify(cb, vk, row(f, 1, 9), proof))
}

func TestS1NonSatisfyingWitnessYieldsWitnessUnsatisfiable(t *testing.T) {
	cb := bn254.New()
	f, pk, _ := setupFor(t, cb, s1R1CS(cb.Field()))

	_, err := Prove(f, cb, pk, row(f, 1, 10, 3), rand.Reader)
	require.Error(t, err)
	serr, ok := err.(*snarkerr.Error)
	require.True(t, ok)
	require.Equal(t, snarkerr.WitnessUnsatisfiable, serr.Kind())
}

func TestS2CubeEndToEnd(t *testing.T) {
	cb := bn254.New()
	f := cb.Field()

	// Derive a genuinely satisfying witness by solving the system
	// forward: pick x, set y := x*x, and bake y*x into the constant
	// column of C so the second constraint is satisfied by construction.
	x := f.FromInt64(2)
	y := x.Mul(x)
	cubeValue := y.Mul(x)
	witness := []field.Element{f.One(), y, x}

	cs := cubeR1CS(f, cubeValue)
	ok, err := cs.IsSatisfiedBy(f, witness)
	require.NoError(t, err)
	require.True(t, ok)

	_, pk, vk := setupFor(t, cb, cs)

	proof, err := Prove(f, cb, pk, witness, rand.Reader)
	require.NoError(t, err)
	require.NoError(t, Verify(cb, vk, row(f, 1), proof))
}

func TestS3BooleanConstraintEndToEnd(t *testing.T) {
	cb := bn254.New()
	f, pk, vk := setupFor(t, cb, s3R1CS(cb.Field()))

	for _, x := range []int64{0, 1} {
		witness := row(f, 1, x)
		proof, err := Prove(f, cb, pk, witness, rand.Reader)
		require.NoError(t, err)
		require.NoError(t, Verify(cb, vk, row(f, 1, x), proof))
	}

	_, err := Prove(f, cb, pk, row(f, 1, 2), rand.Reader)
	require.Error(t, err)
	serr, ok := err.(*snarkerr.Error)
	require.True(t, ok)
	require.Equal(t, snarkerr.WitnessUnsatisfiable, serr.Kind())
}

// S6: prove with y=9, verify against a mismatched public input y=16.
func TestS6PublicInputSwapRejected(t *testing.T) {
	cb := bn254.New()
	f, pk, vk := setupFor(t, cb, s1R1CS(cb.Field()))

	proof, err := Prove(f, cb, pk, row(f, 1, 9, 3), rand.Reader)
	require.NoError(t, err)

	err = Verify(cb, vk, row(f, 1, 16), proof)
	require.Error(t, err)
	serr, ok := err.(*snarkerr.Error)
	require.True(t, ok)
	require.Equal(t, snarkerr.VerificationFailed, serr.Kind())
}

func TestVerifyPublicInputCountMismatch(t *testing.T) {
	cb := bn254.New()
	f, pk, vk := setupFor(t, cb, s1R1CS(cb.Field()))

	proof, err := Prove(f, cb, pk, row(f, 1, 9, 3), rand.Reader)
	require.NoError(t, err)

	err = Verify(cb, vk, row(f, 1), proof)
	require.Error(t, err)
	serr, ok := err.(*snarkerr.Error)
	require.True(t, ok)
	require.Equal(t, snarkerr.PublicInputCountMismatch, serr.Kind())
}

// spec.md §8 property 7: perturbing any proof coordinate breaks verification.
func TestSoundnessSmokePerturbedProof(t *testing.T) {
	cb := bn254.New()
	f, pk, vk := setupFor(t, cb, s1R1CS(cb.Field()))

	proof, err := Prove(f, cb, pk, row(f, 1, 9, 3), rand.Reader)
	require.NoError(t, err)

	perturbed := &Proof{
		A: proof.A.Add(cb.G1Generator()),
		B: proof.B,
		C: proof.C,
	}
	err = Verify(cb, vk, row(f, 1, 9), perturbed)
	require.Error(t, err)
	serr, ok := err.(*snarkerr.Error)
	require.True(t, ok)
	require.Equal(t, snarkerr.VerificationFailed, serr.Kind())
}

// spec.md §8 property 8: public-input binding.
func TestPublicInputBindingProperty(t *testing.T) {
	cb := bn254.New()
	f, pk, vk := setupFor(t, cb, s1R1CS(cb.Field()))

	proof, err := Prove(f, cb, pk, row(f, 1, 9, 3), rand.Reader)
	require.NoError(t, err)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("mismatched public input is always rejected", prop.ForAll(
		func(y int64) bool {
			if y == 9 {
				return true
			}
			return Verify(cb, vk, row(f, 1, y), proof) != nil
		}, gen.Int64Range(-50, 50),
	))

	properties.TestingRun(t)
}

func TestMarshalRoundTripProvingKeyVerifyingKeyProof(t *testing.T) {
	cb := bn254.New()
	f, pk, vk := setupFor(t, cb, s1R1CS(cb.Field()))

	proof, err := Prove(f, cb, pk, row(f, 1, 9, 3), rand.Reader)
	require.NoError(t, err)

	var pkBuf, vkBuf, proofBuf bytes.Buffer
	_, err = pk.WriteTo(&pkBuf)
	require.NoError(t, err)
	_, err = vk.WriteTo(&vkBuf)
	require.NoError(t, err)
	_, err = proof.WriteTo(&proofBuf)
	require.NoError(t, err)

	var pk2 ProvingKey
	_, err = pk2.ReadFrom(bytes.NewReader(pkBuf.Bytes()))
	require.NoError(t, err)
	var vk2 VerifyingKey
	_, err = vk2.ReadFrom(bytes.NewReader(vkBuf.Bytes()))
	require.NoError(t, err)
	var proof2 Proof
	_, err = proof2.ReadFrom(bytes.NewReader(proofBuf.Bytes()))
	require.NoError(t, err)

	pk2.QAP = pk.QAP
	reproof, err := Prove(f, cb, &pk2, row(f, 1, 9, 3), rand.Reader)
	require.NoError(t, err)
	require.NoError(t, Verify(cb, &vk2, row(f, 1, 9), reproof))
	require.NoError(t, Verify(cb, vk, row(f, 1, 9), &proof2))
}

func TestDummySetupProducesUsableProvingKey(t *testing.T) {
	cb := bn254.New()
	f := cb.Field()
	cs := s1R1CS(f)
	q := qap.From(f, cs)

	pk, err := DummySetup(f, cb, q, rand.Reader)
	require.NoError(t, err)
	require.NotNil(t, pk)

	_, err = Prove(f, cb, pk, row(f, 1, 9, 3), rand.Reader)
	require.NoError(t, err)
}
