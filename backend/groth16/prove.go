package groth16

import (
	"io"

	"github.com/nume-crypto/groth16/curve"
	"github.com/nume-crypto/groth16/field"
	"github.com/nume-crypto/groth16/logger"
	"github.com/nume-crypto/groth16/poly"
	"github.com/nume-crypto/groth16/qap"
	"github.com/nume-crypto/groth16/snarkerr"
)

// Prove runs the Groth16 prover over witness s using pk (spec.md §4.6).
// s must satisfy the R1CS the proving key was built from; this is not
// checked here (a misbehaving caller gets an invalid proof, never a
// crash), except that a non-satisfying witness is very likely to make the
// quotient division inexact, which this function does detect and report
// as WitnessUnsatisfiable.
func Prove(f field.Field, cb curve.Backend, pk *ProvingKey, s []field.Element, rng io.Reader) (*Proof, error) {
	log := logger.Logger().With().Str("op", "groth16.Prove").Int("witness_len", len(s)).Logger()

	if len(s) != pk.QAP.NumVariables {
		return nil, snarkerr.New(snarkerr.WidthMismatch,
			"prove: witness length does not match proving key's variable count").WithContext("groth16.Prove")
	}

	a := qap.CombineWitness(f, pk.QAP.U, s)
	b := qap.CombineWitness(f, pk.QAP.V, s)
	c := qap.CombineWitness(f, pk.QAP.W, s)

	ab := a.Mul(f, b)
	num := ab.Sub(f, c)
	h, r, err := num.Div(f, pk.QAP.T)
	if err != nil {
		return nil, err.(*snarkerr.Error).WithContext("groth16.Prove: computing h(x)")
	}
	if !r.IsZero() {
		return nil, snarkerr.New(snarkerr.WitnessUnsatisfiable,
			"prove: (A*B - C) is not divisible by t; witness does not satisfy the R1CS").WithContext("groth16.Prove")
	}

	rBlind, err := f.Sample(rng)
	if err != nil {
		return nil, snarkerr.Wrap(snarkerr.BackendError, "sampling prover randomness r", err).WithContext("groth16.Prove")
	}
	sBlind, err := f.Sample(rng)
	if err != nil {
		return nil, snarkerr.Wrap(snarkerr.BackendError, "sampling prover randomness s", err).WithContext("groth16.Prove")
	}

	aAtXG1, err := poly.SRSEvaluate(f, a, pk.SRSG1)
	if err != nil {
		return nil, err.(*snarkerr.Error).WithContext("groth16.Prove: evaluating A(x) in G1")
	}
	bAtXG2, err := poly.SRSEvaluate(f, b, pk.SRSG2)
	if err != nil {
		return nil, err.(*snarkerr.Error).WithContext("groth16.Prove: evaluating B(x) in G2")
	}
	bAtXG1, err := poly.SRSEvaluate(f, b, pk.SRSG1)
	if err != nil {
		return nil, err.(*snarkerr.Error).WithContext("groth16.Prove: evaluating B(x) in G1")
	}
	// With a single constraint HPowers is empty and h is always zero, so
	// its term is the identity rather than an SRS evaluation.
	hTOverDeltaG1 := cb.G1Generator().ScalarMul(f.Zero())
	if !h.IsZero() {
		hTOverDeltaG1, err = poly.SRSEvaluate(f, h, pk.HPowers)
		if err != nil {
			return nil, err.(*snarkerr.Error).WithContext("groth16.Prove: evaluating h(x)t(x)/delta in G1")
		}
	}

	aProof := pk.AlphaG1.Add(aAtXG1).Add(pk.DeltaG1.ScalarMul(rBlind))
	bProof := pk.BetaG2.Add(bAtXG2).Add(pk.DeltaG2.ScalarMul(sBlind))
	bInG1 := pk.BetaG1.Add(bAtXG1).Add(pk.DeltaG1.ScalarMul(sBlind))

	privateSum := sumPrivateTerms(f, cb, pk.L, s, pk.QAP.NumPublicInputs)

	cProof := privateSum.
		Add(hTOverDeltaG1).
		Add(aProof.ScalarMul(sBlind)).
		Add(bInG1.ScalarMul(rBlind)).
		Add(pk.DeltaG1.ScalarMul(rBlind.Mul(sBlind)).Neg())

	log.Info().Msg("proof generated")
	return &Proof{A: aProof, B: bProof, C: cProof}, nil
}

// sumPrivateTerms computes Σ_{j>=numPublicInputs} s_j * L_j, or the
// identity element if there are no private variables.
func sumPrivateTerms(f field.Field, cb curve.Backend, l []curve.G1, s []field.Element, numPublicInputs int) curve.G1 {
	var acc curve.G1
	for j := numPublicInputs; j < len(s); j++ {
		term := l[j-numPublicInputs].ScalarMul(s[j])
		if acc == nil {
			acc = term
			continue
		}
		acc = acc.Add(term)
	}
	if acc == nil {
		return cb.G1Generator().ScalarMul(f.Zero())
	}
	return acc
}
