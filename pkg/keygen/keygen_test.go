package keygen

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/fs-dkr/pkg/math/curve"
	"github.com/taurusgroup/fs-dkr/pkg/math/polynomial"
)

func TestFake(t *testing.T) {
	n := 3
	threshold := 2
	keys := Fake(n, threshold, rand.Reader)
	require.Len(t, keys, n)

	for _, k := range keys {
		require.NoError(t, k.Validate())
		assert.Equal(t, n, k.N())
		assert.Equal(t, threshold, k.Threshold)
	}

	// all parties agree on the registry and the public key
	for _, k := range keys[1:] {
		assert.True(t, k.PublicKey.Equal(keys[0].PublicKey))
		for j := range k.PaillierPublic {
			assert.True(t, k.PaillierPublic[j].Equal(keys[0].PaillierPublic[j]))
		}
	}

	// the shares reconstruct the sum of the additive contributions
	secret := curve.NewScalar()
	for _, k := range keys {
		secret.Add(secret, k.AdditiveSecret)
	}
	shares := make(map[int]*curve.Scalar, n)
	for _, k := range keys {
		shares[k.I] = k.Share
	}
	assert.True(t, secret.Equal(polynomial.Reconstruct(shares)))
	assert.True(t, keys[0].PublicKey.Equal(curve.NewIdentityPoint().ScalarBaseMult(secret)))
}

func TestFakeBadParameters(t *testing.T) {
	assert.Panics(t, func() { Fake(3, 3, rand.Reader) })
	assert.Panics(t, func() { Fake(2, 0, rand.Reader) })
	assert.Panics(t, func() { Fake(64, 2, rand.Reader) })
}

func TestValidateRejectsTamperedKey(t *testing.T) {
	keys := Fake(2, 1, rand.Reader)
	k := keys[0]
	require.NoError(t, k.Validate())

	k.PublicShare = curve.NewBasePoint()
	assert.Error(t, k.Validate())
}
