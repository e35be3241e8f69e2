// Package zk provides shared key material for testing the proof packages
// below it. The Paillier keys are derived from fixed primes and offer no
// security whatsoever; they must never leave test code.
package zk

import (
	"encoding/hex"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/fs-dkr/pkg/paillier"
)

const (
	proverP = "e0c52b1761d7bd9bb5e9aaeaaa3d08fe99f48a9c388ad6ff7dd4825f4eccf99a4d98dea311a837b9aa5c1011e6dc7312b2d4475442a465674f4b8d7c9a933caba0bede5a3ec8ad681552800ef0768098b032825b761ee4cb172ef3929030e9059cc36643a165eaddc0c1347aa7e880dfdf0980abbfd22c60df612f8ef8db32d7"
	proverQ = "e368c777f9ba0e7df35fea2e1361321863015d1855c72dc4622478109e8b32d70418caebd67cb8012669684c370bffde8c29bc44744a5b98e303b9f01efe306c8cabdf232d4b3cad29fbb6db6202a1a6757e77f0bbde8bb37dafe96746e721d47c31887f9dc2a1309e0ddd58b4ed000bf4acfad77b9c790a2a2ffca6a43e3687"

	verifierP = "e80839546a7cb5441f32e78ab0bddc3c413c1856d212090a17479845eb1d14cf714c7e51e2dd2b1a5bfd9a41b1b7ebcd337a0dcd9c24b7027a0626b2335b1d0c5c685446149e35ca438abdeddf36599615ce1d408006de331ca570caa1d0a1cf0ccda61d3c841aa2c53f8617930df97c6346c0dbe2ed1fe9754378dc146ec6b7"
	verifierQ = "df5696c70b49bfd3be1f484d5ff5d6fe5b6696ce0ad02b2dcd24a7fc986db6480060cfb3aed6d210ca51eb2dfd592058943c546c93e989faae2f71d2239cece15c6bfaf614281d9e6f671f065c18fcf005018e27b551c982b04b22da4d995be75e04d4d57461c744aa728327e076825042fb4264bfb5e84a9dd109e211a8998f"
)

var (
	ProverPaillierSecret *paillier.SecretKey
	ProverPaillierPublic *paillier.PublicKey

	VerifierPaillierSecret *paillier.SecretKey
	VerifierPaillierPublic *paillier.PublicKey
)

func init() {
	ProverPaillierSecret = secretKeyFromHex(proverP, proverQ)
	ProverPaillierPublic = ProverPaillierSecret.PublicKey
	VerifierPaillierSecret = secretKeyFromHex(verifierP, verifierQ)
	VerifierPaillierPublic = VerifierPaillierSecret.PublicKey
}

func secretKeyFromHex(pHex, qHex string) *paillier.SecretKey {
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
	return paillier.NewSecretKeyFromPrimes(p, q)
}
