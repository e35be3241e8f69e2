// Package zkfairness implements a proof of fairness:
// given a Paillier ciphertext C and a curve point X, the prover shows
// knowledge of (x, ρ) such that
//
//	C = Enc(ek, x; ρ) and X = [x]G,
//
// i.e. the encrypted value and the publicly committed value are the same
// secret, without revealing it. It is used during a key refresh to prevent a
// dealer from sending a target party an encrypted share that is inconsistent
// with its public Feldman commitment.
package zkfairness

import (
	"crypto/rand"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/fs-dkr/pkg/hash"
	"github.com/taurusgroup/fs-dkr/pkg/math/arith"
	"github.com/taurusgroup/fs-dkr/pkg/math/curve"
	"github.com/taurusgroup/fs-dkr/pkg/math/sample"
	"github.com/taurusgroup/fs-dkr/pkg/paillier"
)

type (
	Public struct {
		// C = Enc(ek, x; ρ), the encrypted share for the target party
		C *paillier.Ciphertext

		// X = [x]G, the public commitment to the share
		X *curve.Point

		// Prover is the target party's Paillier encryption key
		Prover *paillier.PublicKey
	}
	Private struct {
		// X = x, the plaintext share
		X *saferith.Int

		// Rho = ρ, the encryption nonce of C
		Rho *saferith.Nat
	}
)

type Commitment struct {
	// A = Enc(ek, α; r)
	A *paillier.Ciphertext
	// B = [α]G
	B *curve.Point
}

type Proof struct {
	*Commitment
	// Z = α + e⋅x, computed over the integers
	Z *saferith.Int
	// W = r⋅ρᵉ (mod N)
	W *saferith.Nat
}

// IsValid performs the cheap sanity checks on the proof's fields, before any
// exponentiation is attempted.
func (p *Proof) IsValid(public Public) bool {
	if p == nil || p.Commitment == nil || p.Z == nil {
		return false
	}
	if !public.Prover.ValidateCiphertexts(p.A) {
		return false
	}
	if p.B == nil || p.B.IsIdentity() {
		return false
	}
	if !arith.IsValidNatModN(public.Prover.Modulus(), p.W) {
		return false
	}
	return true
}

// NewProof proves that public.C and public.X hide the same value, using the
// witness in private.
//
// The witness must actually satisfy the relation; the proof itself leaks
// nothing about x or ρ beyond that. The sampled α and its nonce are scrubbed
// before returning.
func NewProof(h *hash.Hash, public Public, private Private) *Proof {
	N := public.Prover.Modulus()

	alpha := sample.IntervalLEps(rand.Reader)
	r := sample.UnitModN(rand.Reader, N)

	commitment := &Commitment{
		A: public.Prover.EncWithNonce(alpha, r),
		B: curve.NewIdentityPoint().ScalarBaseMult(curve.NewScalarInt(alpha)),
	}

	e := challenge(h, public, commitment)

	// z = α + e⋅x over ℤ; the commitment is additive in both groups, so the
	// same z closes the Paillier relation and the discrete-log relation.
	z := new(saferith.Int).Mul(e, private.X, -1)
	z.Add(z, alpha, -1)

	// w = r⋅ρᵉ (mod N)
	w := new(saferith.Nat).ExpI(private.Rho, e, N)
	w.ModMul(w, r, N)

	// scrub the prover's randomness
	alpha.SetInt(new(saferith.Int))
	r.SetUint64(0)

	return &Proof{
		Commitment: commitment,
		Z:          z,
		W:          w,
	}
}

// Verify checks the proof against the statement in public. It is
// deterministic and side-effect free.
func (p *Proof) Verify(h *hash.Hash, public Public) bool {
	if !p.IsValid(public) {
		return false
	}

	// The Paillier plaintext space and ℤq have unrelated moduli: the range
	// bound on z is what keeps the two relations consistent over ℤ.
	if !arith.IsInIntervalLEps(p.Z) {
		return false
	}

	e := challenge(h, public, p.Commitment)
	prover := public.Prover

	{
		// Enc(z; w) == A ⊕ (e ⊙ C)
		lhs := prover.EncWithNonce(p.Z, p.W)
		rhs := public.C.Clone().Mul(prover, e).Add(prover, p.A)
		if !lhs.Equal(rhs) {
			return false
		}
	}

	{
		// [z]G == B + [e]X
		lhs := curve.NewIdentityPoint().ScalarBaseMult(curve.NewScalarInt(p.Z))
		rhs := curve.NewIdentityPoint().ScalarMult(curve.NewScalarInt(e), public.X)
		rhs.Add(rhs, p.B)
		if !lhs.Equal(rhs) {
			return false
		}
	}

	return true
}

// Equal reports whether both proofs carry the exact same commitment and
// responses. Honest proofs are randomized, so equality across two proofs for
// the same statement indicates a replay.
func (p *Proof) Equal(other *Proof) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.A.Equal(other.A) &&
		p.B.Equal(other.B) &&
		p.Z.Abs().Eq(other.Z.Abs()) == 1 &&
		p.Z.IsNegative() == other.Z.IsNegative() &&
		p.W.Eq(other.W) == 1
}

func challenge(h *hash.Hash, public Public, commitment *Commitment) *saferith.Int {
	transcript := h.Clone()
	_ = transcript.WriteAny(
		public.Prover.Modulus(),
		public.C, public.X,
		commitment.A, commitment.B,
	)
	return sample.IntervalScalar(transcript.Digest())
}
