package fsdkr

import (
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/fs-dkr/pkg/hash"
	"github.com/taurusgroup/fs-dkr/pkg/keygen"
	"github.com/taurusgroup/fs-dkr/pkg/math/curve"
	"github.com/taurusgroup/fs-dkr/pkg/pool"
	zkfairness "github.com/taurusgroup/fs-dkr/pkg/zk/fairness"
)

// Collect validates a full epoch's refresh messages and derives the caller's
// refreshed key. It either succeeds completely or rejects the whole epoch:
// a single invalid message anywhere aborts with a typed error and no state
// change beyond scrubbing.
//
// The pipeline runs, in order: quorum, shape, duplicate detection, Feldman
// consistency of every committed point (data-parallel on pl), fairness proof
// verification for every (message, target) pair, homomorphic aggregation of
// the ciphertexts addressed to the caller, and decryption into a new key.
//
// On success the old key's additive secret is scrubbed: it has been re-shared
// and must not survive the epoch. The returned key carries the refreshed
// share and public share; threshold, public key and the Paillier registry are
// carried over unchanged.
func Collect(pl *pool.Pool, msgs []*RefreshMessage, key *keygen.LocalKey) (*keygen.LocalKey, error) {
	n := key.N()

	if len(msgs) <= key.Threshold {
		return nil, &ThresholdError{Threshold: key.Threshold, Received: len(msgs)}
	}

	// Every message must carry one entry per party in all three sequences,
	// and every entry must be present: a decoded broadcast can hold nil
	// elements, which must surface here as a typed rejection rather than a
	// panic deeper in the pipeline. The first message's proof count is the
	// reference the rest are held to, and the reference itself must be n so
	// that indexing by party is safe.
	reference := 0
	for k, msg := range msgs {
		if msg == nil || msg.VSSCommitment == nil {
			return nil, &SizeError{Index: k}
		}
		if k == 0 {
			reference = len(msg.Proofs)
		}
		if len(msg.Proofs) != reference ||
			len(msg.Commitments) != reference ||
			len(msg.Ciphertexts) != reference {
			return nil, &SizeError{
				Index:       k,
				Proofs:      len(msg.Proofs),
				Commitments: len(msg.Commitments),
				Ciphertexts: len(msg.Ciphertexts),
			}
		}
		for j := 0; j < reference; j++ {
			if msg.Commitments[j] == nil || msg.Ciphertexts[j] == nil || msg.Proofs[j] == nil {
				return nil, &SizeError{
					Index:       k,
					Proofs:      len(msg.Proofs),
					Commitments: len(msg.Commitments),
					Ciphertexts: len(msg.Ciphertexts),
				}
			}
		}
	}
	if reference != n {
		return nil, &SizeError{
			Index:       0,
			Proofs:      reference,
			Commitments: reference,
			Ciphertexts: reference,
		}
	}

	// An honest dealer never broadcasts the same randomized message twice.
	for i := 0; i < len(msgs); i++ {
		for j := i + 1; j < len(msgs); j++ {
			if msgs[i].Equal(msgs[j]) {
				return nil, ErrDuplicateMessage
			}
		}
	}

	// Feldman check: for every message, the committed point for party j+1
	// must be the evaluation of that message's polynomial commitment there.
	// All (message, target) pairs are independent, so the cross product is
	// spread over the pool and folded afterwards.
	verdicts := pl.Parallelize(len(msgs)*n, func(idx int) any {
		msg := msgs[idx/n]
		j := idx % n
		return msg.VSSCommitment.EvaluateIndex(j + 1).Equal(msg.Commitments[j])
	})
	for _, ok := range verdicts {
		if !ok.(bool) {
			return nil, ErrPublicShareValidation
		}
	}

	for _, msg := range msgs {
		for j := 0; j < n; j++ {
			public := zkfairness.Public{
				C:      msg.Ciphertexts[j],
				X:      msg.Commitments[j],
				Prover: key.PaillierPublic[j],
			}
			if !msg.Proofs[j].Verify(hash.New(), public) {
				return nil, ErrFairnessProof
			}
		}
	}

	// Fold the ciphertexts addressed to us onto a fresh encryption of zero,
	// so the sum is re-randomized even with a single dealer.
	own := key.PaillierSecret.PublicKey
	sum, nonce := own.Enc(new(saferith.Int))
	for _, msg := range msgs {
		sum.Add(own, msg.Ciphertexts[key.I-1])
	}
	nonce.SetUint64(0)

	plaintext, err := key.PaillierSecret.Dec(sum)
	if err != nil {
		return nil, fmt.Errorf("fsdkr: failed to decrypt aggregated share: %w", err)
	}

	// The sum of at most n shares, each below the curve order, is far below
	// the Paillier modulus, so the aggregate cannot have wrapped.
	share := curve.NewScalarInt(plaintext)
	plaintext.SetInt(new(saferith.Int))

	refreshed := &keygen.LocalKey{
		I:              key.I,
		Threshold:      key.Threshold,
		Share:          share,
		PublicShare:    curve.NewIdentityPoint().ScalarBaseMult(share),
		PublicKey:      key.PublicKey,
		PaillierPublic: key.PaillierPublic,
		PaillierSecret: key.PaillierSecret,
	}

	// The old additive contribution has been re-shared; it is spent.
	if key.AdditiveSecret != nil {
		key.AdditiveSecret.Zero()
	}

	return refreshed, nil
}
