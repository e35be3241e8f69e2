package sample

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/fs-dkr/internal/params"
	"github.com/taurusgroup/fs-dkr/pkg/math/arith"
	"github.com/taurusgroup/fs-dkr/pkg/math/curve"
	"github.com/taurusgroup/fs-dkr/pkg/pool"
)

func testModulus(t *testing.T) *saferith.Modulus {
	t.Helper()
	// any odd modulus works for sampling tests
	buf := make([]byte, 64)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	buf[len(buf)-1] |= 1
	return saferith.ModulusFromBytes(buf)
}

func TestModN(t *testing.T) {
	n := testModulus(t)
	for i := 0; i < 10; i++ {
		x := ModN(rand.Reader, n)
		_, _, lt := x.CmpMod(n)
		assert.True(t, lt == 1, "sample should be below the modulus")
	}
}

func TestUnitModN(t *testing.T) {
	n := testModulus(t)
	for i := 0; i < 10; i++ {
		u := UnitModN(rand.Reader, n)
		assert.True(t, u.IsUnit(n) == 1, "sample should be a unit")
	}
}

func TestScalarNonZero(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.False(t, Scalar(rand.Reader).IsZero())
	}
}

func TestScalarPointPair(t *testing.T) {
	s, p := ScalarPointPair(rand.Reader)
	expected := curve.NewIdentityPoint().ScalarBaseMult(s)
	assert.True(t, expected.Equal(p))
}

func TestIntervalLEps(t *testing.T) {
	for i := 0; i < 10; i++ {
		x := IntervalLEps(rand.Reader)
		assert.True(t, arith.IsInIntervalLEps(x))
	}
}

func TestPaillierPrimes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping prime generation")
	}

	pl := pool.NewPool(0)
	defer pl.TearDown()

	p, q := Paillier(rand.Reader, pl)
	for _, prime := range []*saferith.Nat{p, q} {
		b := prime.Big()
		assert.Equal(t, params.BitsBlumPrime, b.BitLen())
		assert.True(t, b.ProbablyPrime(20), "generated a composite number")
		assert.Equal(t, int64(3), new(big.Int).Mod(b, big.NewInt(4)).Int64(),
			"Blum primes are 3 mod 4")
		assert.True(t, new(big.Int).Rsh(b, 1).ProbablyPrime(20),
			"safe primes have a prime (p - 1) / 2")
	}
}

func TestIntervalScalar(t *testing.T) {
	for i := 0; i < 10; i++ {
		e := IntervalScalar(rand.Reader)
		assert.LessOrEqual(t, e.Abs().TrueLen(), params.L)
	}
}
