package groth16

import (
	"io"
	"strconv"

	"github.com/nume-crypto/groth16/curve"
	"github.com/nume-crypto/groth16/field"
	"github.com/nume-crypto/groth16/logger"
	"github.com/nume-crypto/groth16/qap"
	"github.com/nume-crypto/groth16/snarkerr"
)

// maxZeroRetries bounds the "retry permitted" language of spec.md §4.5 for
// γ/δ landing on zero: with a cryptographically secure source this branch
// is taken with negligible probability, so a handful of retries before
// surfacing ZeroSampled keeps Setup from failing on a fluke while still
// honoring the documented failure mode if the source is degenerate.
const maxZeroRetries = 16

// Setup runs the Groth16 trusted setup over q, producing a proving key and
// a verifying key (spec.md §4.5). The toxic secrets α, β, γ, δ, x are
// sampled from rng, which must be cryptographically secure, and never
// survive past this call: they live only in this function's locals and
// are scrubbed before return (spec.md §5 resource discipline).
func Setup(f field.Field, cb curve.Backend, q *qap.QAP, rng io.Reader) (*ProvingKey, *VerifyingKey, error) {
	log := logger.Logger().With().Str("op", "groth16.Setup").Int("num_variables", q.NumVariables).Logger()

	alpha, err := f.Sample(rng)
	if err != nil {
		return nil, nil, snarkerr.Wrap(snarkerr.BackendError, "sampling alpha", err).WithContext("groth16.Setup")
	}
	beta, err := f.Sample(rng)
	if err != nil {
		return nil, nil, snarkerr.Wrap(snarkerr.BackendError, "sampling beta", err).WithContext("groth16.Setup")
	}
	gamma, err := sampleNonZero(f, rng, "gamma")
	if err != nil {
		return nil, nil, err
	}
	delta, err := sampleNonZero(f, rng, "delta")
	if err != nil {
		return nil, nil, err
	}
	x, err := f.Sample(rng)
	if err != nil {
		return nil, nil, snarkerr.Wrap(snarkerr.BackendError, "sampling x", err).WithContext("groth16.Setup")
	}

	m := q.Domain.Len()
	xPowers := make([]field.Element, m)
	xPowers[0] = f.One()
	for i := 1; i < m; i++ {
		xPowers[i] = xPowers[i-1].Mul(x)
	}

	g1, g2 := cb.G1Generator(), cb.G2Generator()

	srsG1 := make([]curve.G1, m)
	srsG2 := make([]curve.G2, m)
	for i := 0; i < m; i++ {
		srsG1[i] = g1.ScalarMul(xPowers[i])
		srsG2[i] = g2.ScalarMul(xPowers[i])
	}

	gammaInv, err := gamma.Inverse()
	if err != nil {
		return nil, nil, snarkerr.Wrap(snarkerr.BackendError, "inverting gamma", err).WithContext("groth16.Setup")
	}
	deltaInv, err := delta.Inverse()
	if err != nil {
		return nil, nil, snarkerr.Wrap(snarkerr.BackendError, "inverting delta", err).WithContext("groth16.Setup")
	}

	tAtX := q.T.Eval(f, x)
	hPowers := make([]curve.G1, 0)
	if m >= 1 {
		hPowers = make([]curve.G1, m-1)
		for i := 0; i < m-1; i++ {
			coeff := xPowers[i].Mul(tAtX).Mul(deltaInv)
			hPowers[i] = g1.ScalarMul(coeff)
		}
	}

	ic := make([]curve.G1, q.NumPublicInputs)
	l := make([]curve.G1, q.NumVariables-q.NumPublicInputs)
	for j := 0; j < q.NumVariables; j++ {
		combined := beta.Mul(q.U[j].Eval(f, x)).
			Add(alpha.Mul(q.V[j].Eval(f, x))).
			Add(q.W[j].Eval(f, x))
		if j < q.NumPublicInputs {
			ic[j] = g1.ScalarMul(combined.Mul(gammaInv))
		} else {
			l[j-q.NumPublicInputs] = g1.ScalarMul(combined.Mul(deltaInv))
		}
	}

	pk := &ProvingKey{
		AlphaG1: g1.ScalarMul(alpha),
		BetaG1:  g1.ScalarMul(beta),
		BetaG2:  g2.ScalarMul(beta),
		DeltaG1: g1.ScalarMul(delta),
		DeltaG2: g2.ScalarMul(delta),
		SRSG1:   srsG1,
		SRSG2:   srsG2,
		HPowers: hPowers,
		L:       l,
		QAP:     q,
	}
	vk := &VerifyingKey{
		AlphaG1:         g1.ScalarMul(alpha),
		BetaG2:          g2.ScalarMul(beta),
		GammaG2:         g2.ScalarMul(gamma),
		DeltaG2:         g2.ScalarMul(delta),
		IC:              ic,
		NumPublicInputs: q.NumPublicInputs,
	}

	alpha, beta, gamma, delta, x = nil, nil, nil, nil, nil
	xPowers = nil

	log.Info().Msg("setup complete")
	return pk, vk, nil
}

// sampleNonZero draws from f via rng, making up to maxZeroRetries draws in
// total while the draw is zero, and surfaces ZeroSampled if every attempt
// lands on zero (spec.md §4.5 failure modes).
func sampleNonZero(f field.Field, rng io.Reader, name string) (field.Element, error) {
	for i := 0; i < maxZeroRetries; i++ {
		v, err := f.Sample(rng)
		if err != nil {
			return nil, snarkerr.Wrap(snarkerr.BackendError, "sampling "+name, err).WithContext("groth16.Setup")
		}
		if !v.IsZero() {
			return v, nil
		}
	}
	return nil, snarkerr.New(snarkerr.ZeroSampled, name+" sampled as zero after "+strconv.Itoa(maxZeroRetries)+" attempts")
}
