// Package domain implements the fixed evaluation domain (spec.md §4.2)
// shared by QAP construction, trusted setup and the prover: an ordered
// sequence of m distinct field elements used both as Lagrange
// interpolation nodes and as the QAP's per-constraint indices.
package domain

import "github.com/nume-crypto/groth16/field"

// Domain is D = (ω_1, ..., ω_m).
type Domain []field.Element

// New builds the domain used throughout this module: the small-integer
// embedding (1, 2, ..., m). This is fixed once at QAP construction time
// and never renegotiated by setup or proving (spec.md §4.2); roots of
// unity are permitted by the spec but not required for correctness, and
// the small-integer embedding keeps the library independent of whether
// the field has a convenient multiplicative subgroup of size m.
func New(f field.Field, m int) Domain {
	d := make(Domain, m)
	for i := 0; i < m; i++ {
		d[i] = f.FromInt64(int64(i + 1))
	}
	return d
}

// Len returns the number of points in the domain.
func (d Domain) Len() int { return len(d) }
