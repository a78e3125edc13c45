package groth16

import (
	"io"

	"github.com/nume-crypto/groth16/curve"
	"github.com/nume-crypto/groth16/field"
	"github.com/nume-crypto/groth16/qap"
)

// DummySetup runs the same procedure as Setup but discards the verifying
// key, for benchmarking or exercising the prover without needing a
// matching, independently-trustworthy VK. The toxic secrets are sampled
// and scrubbed exactly as in Setup; a dummy proving key is not safe for
// production use any more than a real one would be if its VK were lost,
// it is simply not paired with one.
func DummySetup(f field.Field, cb curve.Backend, q *qap.QAP, rng io.Reader) (*ProvingKey, error) {
	pk, _, err := Setup(f, cb, q, rng)
	if err != nil {
		return nil, err
	}
	return pk, nil
}
