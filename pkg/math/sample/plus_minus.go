package sample

import (
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/fs-dkr/internal/params"
)

func sampleNeg(rand io.Reader, bits int) *saferith.Int {
	buf := make([]byte, bits/8+1)
	mustReadBits(rand, buf)
	neg := saferith.Choice(buf[0] & 1)
	buf = buf[1:]
	out := new(saferith.Int).SetBytes(buf)
	out.Neg(neg)
	return out
}

// IntervalLEps returns an integer in the range ± 2ˡ⁺ᵉ, but with constant-time properties.
func IntervalLEps(rand io.Reader) *saferith.Int {
	return sampleNeg(rand, params.LPlusEpsilon)
}

// IntervalScalar returns an integer in the range ±2ˡ, the bit size of a
// curve scalar. It is used for Fiat–Shamir challenges, in which case rand is
// the digest of the proof transcript.
func IntervalScalar(rand io.Reader) *saferith.Int {
	return sampleNeg(rand, params.L)
}
