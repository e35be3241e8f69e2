package paillier

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/fs-dkr/pkg/math/sample"
)

const (
	fixtureP = "e600f9f10a713cae37b1b0133d3d8355659fa4a711876f8d425a1a6b595098b5d54605698217e318f928bc6a9338f2ba1b746ade843f60d36cbe805a5e55eadaad939cf8408f2d669934a9b4bf21287476a0de8249f3fc134fa4769226fabe73cfa8a466edaa720f5a54f28e84d95e5a58b778aaac78167fc3054ad5e4126c0f"
	fixtureQ = "f74d49518890d7214a392d67f0ae22b383ec8a8739943f09a2401bb25b82ba0e88609350dcaaabd4c6d2aad0b361de1c8bb47648b01d36e21ab8406e7f063a0926e3bef3714f68f091da13d41140a6fd983d5001519a962b284174091ae38fe5ed31e8a90914ac8fc1ac367a760d013133989fb2053c00892f0978f7bd2ccf17"
)

func fixturePrime(t *testing.T, s string) *saferith.Nat {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return new(saferith.Nat).SetBytes(b)
}

func testKey(t *testing.T) *SecretKey {
	t.Helper()
	return NewSecretKeyFromPrimes(fixturePrime(t, fixtureP), fixturePrime(t, fixtureQ))
}

func intEq(a, b *saferith.Int) bool {
	return a.Abs().Eq(b.Abs()) == 1 && a.IsNegative() == b.IsNegative()
}

func TestEncDecRoundTrip(t *testing.T) {
	sk := testKey(t)
	pk := sk.PublicKey

	for i := 0; i < 10; i++ {
		m := sample.IntervalScalar(rand.Reader)
		c, _ := pk.Enc(m)
		decrypted, err := sk.Dec(c)
		require.NoError(t, err)
		assert.True(t, intEq(m, decrypted), "decryption should match the plaintext")
	}
}

func TestEncDecHomomorphic(t *testing.T) {
	sk := testKey(t)
	pk := sk.PublicKey

	a := sample.IntervalScalar(rand.Reader)
	b := sample.IntervalScalar(rand.Reader)
	ca, _ := pk.Enc(a)
	cb, _ := pk.Enc(b)

	sum, err := sk.Dec(ca.Clone().Add(pk, cb))
	require.NoError(t, err)
	expected := new(saferith.Int).Add(a, b, -1)
	assert.True(t, intEq(expected, sum), "ciphertext addition should add plaintexts")

	k := sample.IntervalScalar(rand.Reader)
	scaled, err := sk.Dec(ca.Clone().Mul(pk, k))
	require.NoError(t, err)
	expected = new(saferith.Int).Mul(a, k, -1)
	assert.True(t, intEq(expected, scaled), "ciphertext scaling should scale the plaintext")
}

func TestEncWithNonceDeterministic(t *testing.T) {
	sk := testKey(t)
	pk := sk.PublicKey

	m := sample.IntervalScalar(rand.Reader)
	nonce := sample.UnitModN(rand.Reader, pk.Modulus())

	c1 := pk.EncWithNonce(m, nonce)
	c2 := pk.EncWithNonce(m, nonce)
	assert.True(t, c1.Equal(c2), "same plaintext and nonce should give the same ciphertext")
}

func TestCiphertextRandomize(t *testing.T) {
	sk := testKey(t)
	pk := sk.PublicKey

	m := sample.IntervalScalar(rand.Reader)
	c, _ := pk.Enc(m)
	original := c.Clone()
	c.Randomize(pk, nil)

	assert.False(t, c.Equal(original), "randomization should change the ciphertext")
	decrypted, err := sk.Dec(c)
	require.NoError(t, err)
	assert.True(t, intEq(m, decrypted), "randomization should preserve the plaintext")
}

func TestCiphertextMarshal(t *testing.T) {
	sk := testKey(t)
	pk := sk.PublicKey

	c, _ := pk.Enc(sample.IntervalScalar(rand.Reader))
	data, err := c.MarshalBinary()
	require.NoError(t, err)

	c2 := &Ciphertext{}
	require.NoError(t, c2.UnmarshalBinary(data))
	assert.True(t, c.Equal(c2))
}

func TestValidateCiphertexts(t *testing.T) {
	sk := testKey(t)
	pk := sk.PublicKey

	c, _ := pk.Enc(sample.IntervalScalar(rand.Reader))
	assert.True(t, pk.ValidateCiphertexts(c))
	assert.False(t, pk.ValidateCiphertexts(nil), "nil ciphertext should be rejected")

	zero := &Ciphertext{c: new(saferith.Nat).SetUint64(0)}
	assert.False(t, pk.ValidateCiphertexts(zero), "0 is not a unit mod N²")
}

func TestDecInvalidCiphertext(t *testing.T) {
	sk := testKey(t)

	_, err := sk.Dec(&Ciphertext{c: new(saferith.Nat).SetUint64(0)})
	assert.Error(t, err)
}

func TestValidatePrime(t *testing.T) {
	p := fixturePrime(t, fixtureP)
	require.NoError(t, ValidatePrime(p))

	even := new(saferith.Nat).SetNat(p)
	even = even.Add(even, new(saferith.Nat).SetUint64(1), -1)
	assert.Error(t, ValidatePrime(even), "p+1 is even and must be rejected")

	assert.Error(t, ValidatePrime(new(saferith.Nat).SetUint64(7)), "short primes must be rejected")
	assert.Error(t, ValidatePrime(nil))
}
