package groth16

import (
	"io"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	"github.com/nume-crypto/groth16/backend/bn254"
	"github.com/nume-crypto/groth16/curve"
	"github.com/nume-crypto/groth16/snarkerr"
)

// formatVersion tags every encoded artifact with the wire format version.
// The ReadFrom methods decode the tag but do not compare it against
// formatVersion, so an artifact carrying a different version is not
// rejected on that ground. No
// on-disk format is prescribed by the core (spec.md §6); this is this
// module's own choice of envelope for callers that do choose to persist
// keys and proofs.
var formatVersion = semver.MustParse("1.0.0")

// writerCounter wraps an io.Writer to report bytes written, mirroring the
// small counting-writer idiom gnark's WriteTo/ReadFrom pairs use around
// cbor encoders.
type writerCounter struct {
	w io.Writer
	n int64
}

func (c *writerCounter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func encMode() (cbor.EncMode, error) {
	return cbor.CoreDetEncOptions().EncMode()
}

func decMode() (cbor.DecMode, error) {
	return cbor.DecOptions{
		MaxArrayElements: 134217728,
		MaxMapPairs:      134217728,
	}.DecMode()
}

type provingKeyWire struct {
	FormatVersion string
	AlphaG1       []byte
	BetaG1        []byte
	BetaG2        []byte
	DeltaG1       []byte
	DeltaG2       []byte
	SRSG1         [][]byte
	SRSG2         [][]byte
	HPowers       [][]byte
	L             [][]byte
}

type verifyingKeyWire struct {
	FormatVersion   string
	AlphaG1         []byte
	BetaG2          []byte
	GammaG2         []byte
	DeltaG2         []byte
	IC              [][]byte
	NumPublicInputs int
}

type proofWire struct {
	FormatVersion string
	A             []byte
	B             []byte
	C             []byte
}

func bytesSliceG1(pts []curve.G1) [][]byte {
	out := make([][]byte, len(pts))
	for i, p := range pts {
		out[i] = p.Bytes()
	}
	return out
}

func bytesSliceG2(pts []curve.G2) [][]byte {
	out := make([][]byte, len(pts))
	for i, p := range pts {
		out[i] = p.Bytes()
	}
	return out
}

func g1SliceFromBytes(raw [][]byte) ([]curve.G1, error) {
	out := make([]curve.G1, len(raw))
	for i, b := range raw {
		p, err := bn254.FromG1Bytes(b)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func g2SliceFromBytes(raw [][]byte) ([]curve.G2, error) {
	out := make([]curve.G2, len(raw))
	for i, b := range raw {
		p, err := bn254.FromG2Bytes(b)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// WriteTo cbor-encodes pk to w, tagged with the module's wire format
// version (spec.md §6: keys/proofs, if serialized, carry the backend's
// canonical point encoding).
func (pk *ProvingKey) WriteTo(w io.Writer) (int64, error) {
	wire := provingKeyWire{
		FormatVersion: formatVersion.String(),
		AlphaG1:       pk.AlphaG1.Bytes(),
		BetaG1:        pk.BetaG1.Bytes(),
		BetaG2:        pk.BetaG2.Bytes(),
		DeltaG1:       pk.DeltaG1.Bytes(),
		DeltaG2:       pk.DeltaG2.Bytes(),
		SRSG1:         bytesSliceG1(pk.SRSG1),
		SRSG2:         bytesSliceG2(pk.SRSG2),
		HPowers:       bytesSliceG1(pk.HPowers),
		L:             bytesSliceG1(pk.L),
	}
	cw := &writerCounter{w: w}
	enc, err := encMode()
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "proving_key.write_to: building cbor encoder", err)
	}
	err = enc.NewEncoder(cw).Encode(wire)
	return cw.n, err
}

// ReadFrom decodes a proving key previously written by WriteTo. The
// decoded key's QAP field is left nil: callers reconstruct the QAP
// independently (from the same R1CS) and attach it, since the QAP is not
// itself serialized — it is fully determined by the R1CS, which this
// module does not prescribe a wire format for.
func (pk *ProvingKey) ReadFrom(r io.Reader) (int64, error) {
	dm, err := decMode()
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "proving_key.read_from: building cbor decoder", err)
	}
	decoder := dm.NewDecoder(r)
	var wire provingKeyWire
	if err := decoder.Decode(&wire); err != nil {
		return int64(decoder.NumBytesRead()), snarkerr.Wrap(snarkerr.BackendError, "proving_key.read_from: decoding cbor", err)
	}

	alphaG1, err := bn254.FromG1Bytes(wire.AlphaG1)
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "proving_key.read_from: alpha_g1", err)
	}
	betaG1, err := bn254.FromG1Bytes(wire.BetaG1)
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "proving_key.read_from: beta_g1", err)
	}
	betaG2, err := bn254.FromG2Bytes(wire.BetaG2)
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "proving_key.read_from: beta_g2", err)
	}
	deltaG1, err := bn254.FromG1Bytes(wire.DeltaG1)
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "proving_key.read_from: delta_g1", err)
	}
	deltaG2, err := bn254.FromG2Bytes(wire.DeltaG2)
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "proving_key.read_from: delta_g2", err)
	}
	srsG1, err := g1SliceFromBytes(wire.SRSG1)
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "proving_key.read_from: srs_g1", err)
	}
	srsG2, err := g2SliceFromBytes(wire.SRSG2)
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "proving_key.read_from: srs_g2", err)
	}
	hPowers, err := g1SliceFromBytes(wire.HPowers)
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "proving_key.read_from: h_powers", err)
	}
	l, err := g1SliceFromBytes(wire.L)
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "proving_key.read_from: l", err)
	}

	pk.AlphaG1, pk.BetaG1, pk.BetaG2 = alphaG1, betaG1, betaG2
	pk.DeltaG1, pk.DeltaG2 = deltaG1, deltaG2
	pk.SRSG1, pk.SRSG2, pk.HPowers, pk.L = srsG1, srsG2, hPowers, l
	pk.QAP = nil
	return int64(decoder.NumBytesRead()), nil
}

// WriteTo cbor-encodes vk to w.
func (vk *VerifyingKey) WriteTo(w io.Writer) (int64, error) {
	wire := verifyingKeyWire{
		FormatVersion:   formatVersion.String(),
		AlphaG1:         vk.AlphaG1.Bytes(),
		BetaG2:          vk.BetaG2.Bytes(),
		GammaG2:         vk.GammaG2.Bytes(),
		DeltaG2:         vk.DeltaG2.Bytes(),
		IC:              bytesSliceG1(vk.IC),
		NumPublicInputs: vk.NumPublicInputs,
	}
	cw := &writerCounter{w: w}
	enc, err := encMode()
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "verifying_key.write_to: building cbor encoder", err)
	}
	err = enc.NewEncoder(cw).Encode(wire)
	return cw.n, err
}

// ReadFrom decodes a verifying key previously written by WriteTo.
func (vk *VerifyingKey) ReadFrom(r io.Reader) (int64, error) {
	dm, err := decMode()
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "verifying_key.read_from: building cbor decoder", err)
	}
	decoder := dm.NewDecoder(r)
	var wire verifyingKeyWire
	if err := decoder.Decode(&wire); err != nil {
		return int64(decoder.NumBytesRead()), snarkerr.Wrap(snarkerr.BackendError, "verifying_key.read_from: decoding cbor", err)
	}

	alphaG1, err := bn254.FromG1Bytes(wire.AlphaG1)
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "verifying_key.read_from: alpha_g1", err)
	}
	betaG2, err := bn254.FromG2Bytes(wire.BetaG2)
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "verifying_key.read_from: beta_g2", err)
	}
	gammaG2, err := bn254.FromG2Bytes(wire.GammaG2)
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "verifying_key.read_from: gamma_g2", err)
	}
	deltaG2, err := bn254.FromG2Bytes(wire.DeltaG2)
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "verifying_key.read_from: delta_g2", err)
	}
	ic, err := g1SliceFromBytes(wire.IC)
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "verifying_key.read_from: ic", err)
	}

	vk.AlphaG1, vk.BetaG2, vk.GammaG2, vk.DeltaG2 = alphaG1, betaG2, gammaG2, deltaG2
	vk.IC = ic
	vk.NumPublicInputs = wire.NumPublicInputs
	return int64(decoder.NumBytesRead()), nil
}

// WriteTo cbor-encodes proof to w.
func (proof *Proof) WriteTo(w io.Writer) (int64, error) {
	wire := proofWire{
		FormatVersion: formatVersion.String(),
		A:             proof.A.Bytes(),
		B:             proof.B.Bytes(),
		C:             proof.C.Bytes(),
	}
	cw := &writerCounter{w: w}
	enc, err := encMode()
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "proof.write_to: building cbor encoder", err)
	}
	err = enc.NewEncoder(cw).Encode(wire)
	return cw.n, err
}

// ReadFrom decodes a proof previously written by WriteTo.
func (proof *Proof) ReadFrom(r io.Reader) (int64, error) {
	dm, err := decMode()
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "proof.read_from: building cbor decoder", err)
	}
	decoder := dm.NewDecoder(r)
	var wire proofWire
	if err := decoder.Decode(&wire); err != nil {
		return int64(decoder.NumBytesRead()), snarkerr.Wrap(snarkerr.BackendError, "proof.read_from: decoding cbor", err)
	}

	a, err := bn254.FromG1Bytes(wire.A)
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "proof.read_from: a", err)
	}
	b, err := bn254.FromG2Bytes(wire.B)
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "proof.read_from: b", err)
	}
	c, err := bn254.FromG1Bytes(wire.C)
	if err != nil {
		return 0, snarkerr.Wrap(snarkerr.BackendError, "proof.read_from: c", err)
	}

	proof.A, proof.B, proof.C = a, b, c
	return int64(decoder.NumBytesRead()), nil
}
