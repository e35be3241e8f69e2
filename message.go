// Package fsdkr implements a proactive refresh of (t,n)-threshold ECDSA key
// shares, following Fouque-Stern distributed key refresh. Each party re-shares
// its additive secret contribution over a fresh random polynomial and
// broadcasts one RefreshMessage; once more than t messages have been gathered,
// each party derives a new share from the ciphertexts addressed to it. The
// joint secret and public key are unchanged, but any t or fewer old shares
// become useless together with any t or fewer new ones.
//
// The module performs no networking: Distribute produces a message the caller
// must broadcast, and Collect consumes messages the caller has gathered.
package fsdkr

import (
	"crypto/rand"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/fs-dkr/pkg/hash"
	"github.com/taurusgroup/fs-dkr/pkg/keygen"
	"github.com/taurusgroup/fs-dkr/pkg/math/curve"
	"github.com/taurusgroup/fs-dkr/pkg/math/polynomial"
	"github.com/taurusgroup/fs-dkr/pkg/math/sample"
	"github.com/taurusgroup/fs-dkr/pkg/paillier"
	"github.com/taurusgroup/fs-dkr/pkg/pool"
	zkfairness "github.com/taurusgroup/fs-dkr/pkg/zk/fairness"
)

// RefreshMessage is one dealer's broadcast contribution to a refresh epoch.
// It contains no secret material and is safe to broadcast as-is; it must be
// discarded once the epoch's Collect has completed.
//
// All slices are indexed by target party, so index j addresses party j+1.
type RefreshMessage struct {
	// VSSCommitment commits to every coefficient of the dealer's fresh
	// sharing polynomial f, with f(0) the dealer's additive secret.
	VSSCommitment *polynomial.Exponent

	// Commitments[j] = [f(j+1)]G.
	Commitments []*curve.Point

	// Ciphertexts[j] encrypts f(j+1) under party j+1's Paillier key.
	Ciphertexts []*paillier.Ciphertext

	// Proofs[j] ties Ciphertexts[j] and Commitments[j] to the same value.
	Proofs []*zkfairness.Proof
}

// Distribute re-shares the dealer's additive secret for all n parties and
// returns the resulting broadcast message. Per-target encryption and proof
// generation runs on the pool; pl may be nil, in which case the work runs on
// the calling goroutine.
//
// The sharing polynomial, the plaintext shares and the encryption nonces are
// all scrubbed before returning.
func Distribute(pl *pool.Pool, key *keygen.LocalKey) *RefreshMessage {
	n := key.N()

	f := polynomial.NewPolynomial(key.Threshold, key.AdditiveSecret)
	vssCommitment := polynomial.NewPolynomialExponent(f)

	shares := make([]*curve.Scalar, n)
	for j := 0; j < n; j++ {
		shares[j] = f.EvaluateIndex(j + 1)
	}
	f.Reset()

	msg := &RefreshMessage{
		VSSCommitment: vssCommitment,
		Commitments:   make([]*curve.Point, n),
		Ciphertexts:   make([]*paillier.Ciphertext, n),
		Proofs:        make([]*zkfairness.Proof, n),
	}

	pl.Parallelize(n, func(j int) any {
		target := key.PaillierPublic[j]
		share := curve.MakeInt(shares[j])

		nonce := sample.UnitModN(rand.Reader, target.Modulus())
		ciphertext := target.EncWithNonce(share, nonce)
		commitment := curve.NewIdentityPoint().ScalarBaseMult(shares[j])

		msg.Proofs[j] = zkfairness.NewProof(hash.New(), zkfairness.Public{
			C:      ciphertext,
			X:      commitment,
			Prover: target,
		}, zkfairness.Private{
			X:   share,
			Rho: nonce,
		})
		msg.Commitments[j] = commitment
		msg.Ciphertexts[j] = ciphertext

		share.SetInt(new(saferith.Int))
		nonce.SetUint64(0)
		shares[j].Zero()
		return nil
	})

	return msg
}

// Equal reports deep structural equality of both messages, proofs included.
// It is safe on decoded messages with missing entries.
func (msg *RefreshMessage) Equal(other *RefreshMessage) bool {
	if msg == nil || other == nil {
		return msg == other
	}
	if len(msg.Commitments) != len(other.Commitments) ||
		len(msg.Ciphertexts) != len(other.Ciphertexts) ||
		len(msg.Proofs) != len(other.Proofs) {
		return false
	}
	if msg.VSSCommitment == nil || other.VSSCommitment == nil {
		if msg.VSSCommitment != other.VSSCommitment {
			return false
		}
	} else if !msg.VSSCommitment.Equal(other.VSSCommitment) {
		return false
	}
	for j := range msg.Commitments {
		a, b := msg.Commitments[j], other.Commitments[j]
		if a == nil || b == nil {
			if a != b {
				return false
			}
			continue
		}
		if !a.Equal(b) {
			return false
		}
	}
	for j := range msg.Ciphertexts {
		a, b := msg.Ciphertexts[j], other.Ciphertexts[j]
		if a == nil || b == nil {
			if a != b {
				return false
			}
			continue
		}
		if !a.Equal(b) {
			return false
		}
	}
	for j := range msg.Proofs {
		if !msg.Proofs[j].Equal(other.Proofs[j]) {
			return false
		}
	}
	return true
}
