package fsdkr

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/taurusgroup/fs-dkr/pkg/keygen"
	"github.com/taurusgroup/fs-dkr/pkg/math/curve"
	"github.com/taurusgroup/fs-dkr/pkg/math/polynomial"
	"github.com/taurusgroup/fs-dkr/pkg/pool"
)

// testCeremony runs a fake key generation and every dealer's Distribute.
func testCeremony(t *testing.T, n, threshold int) ([]*keygen.LocalKey, []*RefreshMessage) {
	t.Helper()
	keys := keygen.Fake(n, threshold, rand.Reader)
	msgs := make([]*RefreshMessage, n)
	for i, k := range keys {
		msgs[i] = Distribute(nil, k)
	}
	return keys, msgs
}

func reconstruct(t *testing.T, keys []*keygen.LocalKey) *curve.Scalar {
	t.Helper()
	shares := make(map[int]*curve.Scalar, len(keys))
	for _, k := range keys {
		shares[k.I] = k.Share
	}
	return polynomial.Reconstruct(shares)
}

func TestRefresh(t *testing.T) {
	n := 3
	threshold := 2

	pl := pool.NewPool(0)
	defer pl.TearDown()

	keys, msgs := testCeremony(t, n, threshold)
	secret := reconstruct(t, keys)
	publicKey := curve.NewIdentityPoint().Set(keys[0].PublicKey)

	oldShares := make([]*curve.Scalar, n)
	for i, k := range keys {
		oldShares[i] = curve.NewScalar().Set(k.Share)
	}

	// every party collects the same broadcast set independently
	newKeys := make([]*keygen.LocalKey, n)
	var group errgroup.Group
	for i := range keys {
		i := i
		group.Go(func() error {
			refreshed, err := Collect(pl, msgs, keys[i])
			if err != nil {
				return err
			}
			newKeys[i] = refreshed
			return nil
		})
	}
	require.NoError(t, group.Wait())

	for i, k := range newKeys {
		require.NoError(t, k.Validate())
		assert.True(t, k.PublicKey.Equal(publicKey), "the joint public key must not change")
		assert.False(t, k.Share.Equal(oldShares[i]), "the refresh must rerandomize every share")
		assert.True(t, keys[i].AdditiveSecret.IsZero(), "the spent additive secret must be scrubbed")
	}

	assert.True(t, secret.Equal(reconstruct(t, newKeys)),
		"the new shares must reconstruct the original secret")
}

func TestRefreshQuorum(t *testing.T) {
	keys, msgs := testCeremony(t, 3, 2)

	_, err := Collect(nil, msgs[:2], keys[0])
	require.Error(t, err)

	thresholdErr := &ThresholdError{}
	require.ErrorAs(t, err, &thresholdErr)
	assert.Equal(t, 2, thresholdErr.Threshold)
	assert.Equal(t, 2, thresholdErr.Received)
}

func TestRefreshShape(t *testing.T) {
	keys, msgs := testCeremony(t, 3, 2)

	msgs[2].Commitments = msgs[2].Commitments[:2]
	_, err := Collect(nil, msgs, keys[0])
	require.Error(t, err)

	sizeErr := &SizeError{}
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 2, sizeErr.Index)
	assert.Equal(t, 3, sizeErr.Proofs)
	assert.Equal(t, 2, sizeErr.Commitments)
	assert.Equal(t, 3, sizeErr.Ciphertexts)
}

func TestRefreshShapeWrongPartyCount(t *testing.T) {
	keys, msgs := testCeremony(t, 3, 2)

	// internally consistent messages for the wrong number of parties
	for _, msg := range msgs {
		msg.Proofs = msg.Proofs[:2]
		msg.Commitments = msg.Commitments[:2]
		msg.Ciphertexts = msg.Ciphertexts[:2]
	}
	_, err := Collect(nil, msgs, keys[0])
	require.Error(t, err)

	sizeErr := &SizeError{}
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 0, sizeErr.Index)
}

func TestRefreshMalformedMessage(t *testing.T) {
	sizeErrAt := func(t *testing.T, msgs []*RefreshMessage, key *keygen.LocalKey, index int) {
		t.Helper()
		_, err := Collect(nil, msgs, key)
		require.Error(t, err)
		sizeErr := &SizeError{}
		require.ErrorAs(t, err, &sizeErr)
		assert.Equal(t, index, sizeErr.Index)
	}

	t.Run("nil message", func(t *testing.T) {
		keys, msgs := testCeremony(t, 3, 2)
		msgs[1] = nil
		sizeErrAt(t, msgs, keys[0], 1)
	})

	t.Run("nil commitment entry", func(t *testing.T) {
		// a dealer who reuses an honest polynomial commitment but drops an
		// entry must be rejected, not dereferenced
		keys, msgs := testCeremony(t, 3, 2)
		msgs[0].VSSCommitment = msgs[1].VSSCommitment
		msgs[0].Commitments[0] = nil
		sizeErrAt(t, msgs, keys[2], 0)
	})

	t.Run("nil ciphertext entry", func(t *testing.T) {
		keys, msgs := testCeremony(t, 3, 2)
		msgs[2].Ciphertexts[1] = nil
		sizeErrAt(t, msgs, keys[0], 2)
	})

	t.Run("nil proof entry", func(t *testing.T) {
		keys, msgs := testCeremony(t, 3, 2)
		msgs[1].Proofs[2] = nil
		sizeErrAt(t, msgs, keys[0], 1)
	})
}

func TestRefreshDuplicate(t *testing.T) {
	keys, msgs := testCeremony(t, 3, 2)

	msgs[2] = msgs[0]
	_, err := Collect(nil, msgs, keys[1])
	assert.ErrorIs(t, err, ErrDuplicateMessage)
}

func TestRefreshPublicShareSoundness(t *testing.T) {
	keys, msgs := testCeremony(t, 3, 2)

	// a committed point that is not on the committed polynomial
	msgs[1].Commitments[0] = curve.NewBasePoint()
	_, err := Collect(nil, msgs, keys[2])
	assert.ErrorIs(t, err, ErrPublicShareValidation)
}

func TestRefreshFairnessSoundness(t *testing.T) {
	keys, msgs := testCeremony(t, 3, 2)

	// a dealer whose ciphertexts encrypt a different polynomial than the one
	// committed to: Feldman passes, the fairness proofs must not
	other := Distribute(nil, keys[1])
	msgs[1] = &RefreshMessage{
		VSSCommitment: msgs[1].VSSCommitment,
		Commitments:   msgs[1].Commitments,
		Ciphertexts:   other.Ciphertexts,
		Proofs:        msgs[1].Proofs,
	}
	_, err := Collect(nil, msgs, keys[0])
	assert.ErrorIs(t, err, ErrFairnessProof)
}

func TestRefreshTamperedCiphertext(t *testing.T) {
	keys, msgs := testCeremony(t, 3, 2)

	// replace one encrypted share with an encryption of something else
	tampered, _ := keys[0].PaillierPublic[2].Enc(curve.MakeInt(keys[0].Share))
	msgs[0].Ciphertexts[2] = tampered
	_, err := Collect(nil, msgs, keys[1])
	assert.ErrorIs(t, err, ErrFairnessProof)
}

func TestRefreshMessageMarshal(t *testing.T) {
	keys, msgs := testCeremony(t, 3, 2)

	// collect from re-decoded messages, as a caller would after broadcast
	decoded := make([]*RefreshMessage, len(msgs))
	for i, msg := range msgs {
		data, err := cbor.Marshal(msg)
		require.NoError(t, err)
		decoded[i] = &RefreshMessage{}
		require.NoError(t, cbor.Unmarshal(data, decoded[i]))
		assert.True(t, msg.Equal(decoded[i]))
	}

	refreshed, err := Collect(nil, decoded, keys[0])
	require.NoError(t, err)
	require.NoError(t, refreshed.Validate())
}

func TestRefreshErrorsAreTyped(t *testing.T) {
	err := error(&ThresholdError{Threshold: 2, Received: 1})
	assert.NotEmpty(t, err.Error())
	assert.False(t, errors.Is(err, ErrDuplicateMessage))

	err = &SizeError{Index: 1, Proofs: 3, Commitments: 2, Ciphertexts: 3}
	assert.NotEmpty(t, err.Error())
}
