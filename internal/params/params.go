package params

const (
	SecParam  = 256
	SecBytes  = SecParam / 8
	StatParam = 80

	// L is the bit size of the plaintexts bound by the fairness proof,
	// i.e. the size of a curve scalar.
	L            = 1 * SecParam // = 256
	Epsilon      = 2 * SecParam // = 512
	LPlusEpsilon = L + Epsilon  // = 768

	BitsIntModN  = 8 * SecParam    // = 2048
	BytesIntModN = BitsIntModN / 8 // = 256

	BitsBlumPrime = 4 * SecParam      // = 1024
	BitsPaillier  = 2 * BitsBlumPrime // = 2048

	BytesPaillier   = BitsPaillier / 8  // = 256
	BytesCiphertext = 2 * BytesPaillier // = 512

	BytesScalar = 32
	// BytesPoint is the size of a compressed secp256k1 point.
	BytesPoint = 33
)
