package groth16

import (
	"github.com/nume-crypto/groth16/curve"
	"github.com/nume-crypto/groth16/qap"
)

// ProvingKey is everything the prover needs beyond the witness itself
// (spec.md §4.5 step 4). It is immutable once returned by Setup and may be
// shared across concurrently-proving goroutines (spec.md §5).
type ProvingKey struct {
	AlphaG1 curve.G1
	BetaG1  curve.G1
	BetaG2  curve.G2
	DeltaG1 curve.G1
	DeltaG2 curve.G2

	// SRSG1/SRSG2 are {x^i * G1}/{x^i * G2} for i < m, used to evaluate
	// Σ s_j u_j(x), Σ s_j v_j(x) in the exponent via poly.SRSEvaluate.
	SRSG1 []curve.G1
	SRSG2 []curve.G2

	// HPowers[i] = (x^i * t(x) / δ) * G1 for i in [0, m-1), used to
	// evaluate h(x)*t(x)/δ in the exponent as Σ h_i * HPowers[i].
	HPowers []curve.G1

	// L holds L_j = ((β u_j(x) + α v_j(x) + w_j(x)) / δ) * G1 for the
	// private variables j in [NumPublicInputs, NumVariables), indexed
	// from 0 (L[0] corresponds to variable NumPublicInputs).
	L []curve.G1

	// QAP is retained so Prove can reach U/V/W/T without the caller
	// re-threading it through every call.
	QAP *qap.QAP
}

// VerifyingKey is the public artifact used by Verify (spec.md §4.5 step
// 3).
type VerifyingKey struct {
	AlphaG1 curve.G1
	BetaG2  curve.G2
	GammaG2 curve.G2
	DeltaG2 curve.G2

	// IC holds IC_j = ((β u_j(x) + α v_j(x) + w_j(x)) / γ) * G1 for the
	// public variables j < NumPublicInputs, including the constant-1 wire
	// at index 0.
	IC []curve.G1

	NumPublicInputs int
}

// Proof is the three-element Groth16 proof (spec.md §4.6 step 5).
type Proof struct {
	A curve.G1
	B curve.G2
	C curve.G1
}
