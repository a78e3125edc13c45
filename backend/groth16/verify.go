package groth16

import (
	"fmt"

	"github.com/nume-crypto/groth16/curve"
	"github.com/nume-crypto/groth16/field"
	"github.com/nume-crypto/groth16/logger"
	"github.com/nume-crypto/groth16/snarkerr"
)

// Verify checks proof against vk and publicInputs (spec.md §4.7).
// publicInputs must have exactly vk.NumPublicInputs entries, with
// publicInputs[0] conventionally the constant-1 wire.
func Verify(cb curve.Backend, vk *VerifyingKey, publicInputs []field.Element, proof *Proof) error {
	log := logger.Logger().With().Str("op", "groth16.Verify").Logger()

	if len(publicInputs) != vk.NumPublicInputs {
		return snarkerr.New(snarkerr.PublicInputCountMismatch,
			fmt.Sprintf("verify: got %d public inputs, expected %d", len(publicInputs), vk.NumPublicInputs)).
			WithContext("groth16.Verify")
	}

	var vkX curve.G1
	for j, s := range publicInputs {
		term := vk.IC[j].ScalarMul(s)
		if vkX == nil {
			vkX = term
			continue
		}
		vkX = vkX.Add(term)
	}
	if vkX == nil {
		vkX = cb.G1Generator().ScalarMul(cb.Field().Zero())
	}

	pairing := cb.Pairing()

	lhs, err := pairing.Pair(proof.A, proof.B)
	if err != nil {
		return snarkerr.Wrap(snarkerr.BackendError, "verify: pairing e(A,B)", err).WithContext("groth16.Verify")
	}

	rhs, err := pairing.MultiPair(
		[]curve.G1{vk.AlphaG1, vkX, proof.C},
		[]curve.G2{vk.BetaG2, vk.GammaG2, vk.DeltaG2},
	)
	if err != nil {
		return snarkerr.Wrap(snarkerr.BackendError, "verify: pairing product", err).WithContext("groth16.Verify")
	}

	if !lhs.Equal(rhs) {
		log.Warn().Msg("verification failed")
		return snarkerr.New(snarkerr.VerificationFailed, "verify: pairing equation does not hold").
			WithContext("groth16.Verify")
	}

	log.Info().Msg("verification succeeded")
	return nil
}
