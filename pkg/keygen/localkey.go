// Package keygen defines the per-party key material produced by a prior
// distributed key generation ceremony, and consumed by a key refresh.
// The DKG itself is outside this module; Fake stands in for it in tests.
package keygen

import (
	"errors"
	"fmt"

	"github.com/taurusgroup/fs-dkr/pkg/math/curve"
	"github.com/taurusgroup/fs-dkr/pkg/paillier"
)

// LocalKey is one party's share of a (t,n)-threshold ECDSA key.
//
// A refresh produces a new LocalKey from an old one: Share and PublicShare
// are replaced, everything else is carried over. Each party exclusively owns
// one LocalKey; it is never shared between goroutines.
type LocalKey struct {
	// I is this party's 1-based index, 1 ≤ I ≤ n.
	I int

	// Threshold is t: reconstruction of the joint secret requires t+1 shares.
	Threshold int

	// AdditiveSecret is uᵢ, this party's additive contribution to the joint
	// secret from the key generation. It is consumed by a refresh, and
	// scrubbed afterwards.
	AdditiveSecret *curve.Scalar

	// Share is xᵢ, this party's Shamir-style share of the joint secret.
	Share *curve.Scalar

	// PublicShare is Xᵢ = [xᵢ]G.
	PublicShare *curve.Point

	// PublicKey is Y = [Σᵢuᵢ]G, the joint public key. It is unchanged by a
	// refresh.
	PublicKey *curve.Point

	// PaillierPublic contains one Paillier encryption key per party,
	// with this party's own key at index I-1. Entry j is the unique key a
	// dealer must use to encrypt a share intended for party j+1.
	PaillierPublic []*paillier.PublicKey

	// PaillierSecret is the decryption key matching PaillierPublic[I-1].
	PaillierSecret *paillier.SecretKey
}

// N returns n, the total number of parties.
func (k *LocalKey) N() int {
	return len(k.PaillierPublic)
}

// Validate ensures the key material is consistent:
//
//   - 0 < t < n, and 1 ≤ i ≤ n.
//   - all key fields are present.
//   - the public share matches the secret share.
//   - the registered Paillier key at our own index matches our secret key.
func (k *LocalKey) Validate() error {
	n := k.N()
	if k.Threshold < 1 || k.Threshold >= n {
		return fmt.Errorf("keygen: threshold %d is invalid for %d parties", k.Threshold, n)
	}
	if k.I < 1 || k.I > n {
		return fmt.Errorf("keygen: party index %d is out of range [1, %d]", k.I, n)
	}
	if k.Share == nil || k.PublicShare == nil || k.PublicKey == nil || k.PaillierSecret == nil {
		return errors.New("keygen: one or more fields is empty")
	}
	for j, pk := range k.PaillierPublic {
		if pk == nil {
			return fmt.Errorf("keygen: missing Paillier key for party %d", j+1)
		}
	}
	expected := curve.NewIdentityPoint().ScalarBaseMult(k.Share)
	if !expected.Equal(k.PublicShare) {
		return errors.New("keygen: public share does not match secret share")
	}
	if !k.PaillierSecret.PublicKey.Equal(k.PaillierPublic[k.I-1]) {
		return errors.New("keygen: own Paillier key does not match the registry")
	}
	return nil
}
