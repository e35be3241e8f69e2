package keygen

import (
	"encoding/hex"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/fs-dkr/pkg/math/curve"
	"github.com/taurusgroup/fs-dkr/pkg/math/polynomial"
	"github.com/taurusgroup/fs-dkr/pkg/math/sample"
	"github.com/taurusgroup/fs-dkr/pkg/paillier"
)

// fixturePrimes are valid 1024-bit Blum safe primes, paired up into Paillier
// keys for the fake ceremony. Generating safe primes takes several seconds
// per key, which is too slow for unit tests.
var fixturePrimes = []string{
	"e0c52b1761d7bd9bb5e9aaeaaa3d08fe99f48a9c388ad6ff7dd4825f4eccf99a4d98dea311a837b9aa5c1011e6dc7312b2d4475442a465674f4b8d7c9a933caba0bede5a3ec8ad681552800ef0768098b032825b761ee4cb172ef3929030e9059cc36643a165eaddc0c1347aa7e880dfdf0980abbfd22c60df612f8ef8db32d7",
	"e368c777f9ba0e7df35fea2e1361321863015d1855c72dc4622478109e8b32d70418caebd67cb8012669684c370bffde8c29bc44744a5b98e303b9f01efe306c8cabdf232d4b3cad29fbb6db6202a1a6757e77f0bbde8bb37dafe96746e721d47c31887f9dc2a1309e0ddd58b4ed000bf4acfad77b9c790a2a2ffca6a43e3687",
	"e80839546a7cb5441f32e78ab0bddc3c413c1856d212090a17479845eb1d14cf714c7e51e2dd2b1a5bfd9a41b1b7ebcd337a0dcd9c24b7027a0626b2335b1d0c5c685446149e35ca438abdeddf36599615ce1d408006de331ca570caa1d0a1cf0ccda61d3c841aa2c53f8617930df97c6346c0dbe2ed1fe9754378dc146ec6b7",
	"df5696c70b49bfd3be1f484d5ff5d6fe5b6696ce0ad02b2dcd24a7fc986db6480060cfb3aed6d210ca51eb2dfd592058943c546c93e989faae2f71d2239cece15c6bfaf614281d9e6f671f065c18fcf005018e27b551c982b04b22da4d995be75e04d4d57461c744aa728327e076825042fb4264bfb5e84a9dd109e211a8998f",
	"c4cc585d2ad4b64b34b2353e7acfecd5e36d8e9e2647dd68540036fb6019076a156d4c291e15705a215c9c9340b5286455420f2605b601685ef825d03c36c2def9f103b243892b12fedb0449117aee750410318f86466855435fd1b99aa5fe44711f919d9dc854ab01dbbfc99b3b58e587071d264742eb0f818e83464ac39e0f",
	"f02bf4d2f6fb46b2b207970a50ba629bbd346a2478f84f5bb78b47fbd0fa1a81759fe14b68e41067833e916f527c59a1d9c66fc08ea942a18580d5ae1c1fe5850442e1087038c69a7a116a1a7709357b8d202730e84138b1679d1398f72080789cb65df7481dc7c423743adf7ebf0a2edccb65b58b4a68593823d4bc84da87a3",
	"e600f9f10a713cae37b1b0133d3d8355659fa4a711876f8d425a1a6b595098b5d54605698217e318f928bc6a9338f2ba1b746ade843f60d36cbe805a5e55eadaad939cf8408f2d669934a9b4bf21287476a0de8249f3fc134fa4769226fabe73cfa8a466edaa720f5a54f28e84d95e5a58b778aaac78167fc3054ad5e4126c0f",
	"f74d49518890d7214a392d67f0ae22b383ec8a8739943f09a2401bb25b82ba0e88609350dcaaabd4c6d2aad0b361de1c8bb47648b01d36e21ab8406e7f063a0926e3bef3714f68f091da13d41140a6fd983d5001519a962b284174091ae38fe5ed31e8a90914ac8fc1ac367a760d013133989fb2053c00892f0978f7bd2ccf17",
	"df490d3f25afba2fcfdc811757dfb5cb48db09ad31c1b778ec70cd6d7a5547b79f9b7c84ea334429d1ebabb14a9dce21e81fda79f1585395de4a1573353ca40cc05be6ffbf7f9bf6bfad85469f6cc1f3b29a40a9036db05e0a34b70165c566b6a4164dffa04c1c51b3262ec291ebc8dd3f4b9620061b42ce770e388890d0ff17",
	"d45d01a4cd523325efd404f34385021c1f502d982a1bb5126dcb6045b1f3a8aee1d84d48ec7f5a82814a06c12db6a2cae5c73eb331c7f10ff8b978f3f4ee2437ac7de523ff6cf4c054da1ee40929495a23c69b0bb76ced0cece98930f2aa7434740ed3916dc30ddd03f4c861bd80dbddddc10f2ca60fc485bbf2939f6c718acb",
}

func fixtureSecretKey(i int) *paillier.SecretKey {
	pHex := fixturePrimes[2*i]
	qHex := fixturePrimes[2*i+1]
	pBytes, err := hex.DecodeString(pHex)
	if err != nil {
		panic(err)
	}
	qBytes, err := hex.DecodeString(qHex)
	if err != nil {
		panic(err)
	}
	p := new(saferith.Nat).SetBytes(pBytes)
	q := new(saferith.Nat).SetBytes(qBytes)
	if err := paillier.ValidatePrime(p); err != nil {
		panic(err)
	}
	if err := paillier.ValidatePrime(q); err != nil {
		panic(err)
	}
	return paillier.NewSecretKeyFromPrimes(p, q)
}

// Fake runs the whole key generation ceremony in-process and returns one
// LocalKey per party: each party contributes a random additive secret uᵢ
// shared with a degree-t polynomial, and party j's share is xⱼ = Σᵢ fᵢ(j).
//
// The Paillier keys come from a fixed set of primes, so the result is
// completely insecure. It stands in for the real DKG in tests and examples.
func Fake(n, t int, source io.Reader) []*LocalKey {
	if t < 1 || t >= n {
		panic("keygen.Fake: need 0 < t < n")
	}
	if 2*n > len(fixturePrimes) {
		panic("keygen.Fake: not enough fixture primes")
	}

	additive := make([]*curve.Scalar, n)
	polynomials := make([]*polynomial.Polynomial, n)
	for i := 0; i < n; i++ {
		additive[i] = sample.Scalar(source)
		polynomials[i] = polynomial.NewPolynomial(t, additive[i])
	}

	// Y = [Σᵢ uᵢ]G
	publicKey := curve.NewIdentityPoint()
	for i := 0; i < n; i++ {
		publicKey.Add(publicKey, curve.NewIdentityPoint().ScalarBaseMult(additive[i]))
	}

	paillierSecret := make([]*paillier.SecretKey, n)
	paillierPublic := make([]*paillier.PublicKey, n)
	for i := 0; i < n; i++ {
		paillierSecret[i] = fixtureSecretKey(i)
		paillierPublic[i] = paillierSecret[i].PublicKey
	}

	keys := make([]*LocalKey, n)
	for j := 0; j < n; j++ {
		share := curve.NewScalar()
		for i := 0; i < n; i++ {
			share.Add(share, polynomials[i].EvaluateIndex(j+1))
		}
		keys[j] = &LocalKey{
			I:              j + 1,
			Threshold:      t,
			AdditiveSecret: curve.NewScalar().Set(additive[j]),
			Share:          share,
			PublicShare:    curve.NewIdentityPoint().ScalarBaseMult(share),
			PublicKey:      curve.NewIdentityPoint().Set(publicKey),
			PaillierPublic: append([]*paillier.PublicKey{}, paillierPublic...),
			PaillierSecret: paillierSecret[j],
		}
	}

	for i := range polynomials {
		polynomials[i].Reset()
	}

	return keys
}
