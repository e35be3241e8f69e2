package curve

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/taurusgroup/fs-dkr/internal/params"
)

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Scalar) MarshalBinary() ([]byte, error) {
	data := make([]byte, params.BytesScalar)
	s.s.PutBytesUnchecked(data)
	return data, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Scalar) UnmarshalBinary(data []byte) error {
	if len(data) < params.BytesScalar {
		return errors.New("curve.Scalar.Unmarshal: data is too small")
	}
	var buf [params.BytesScalar]byte
	copy(buf[:], data[:params.BytesScalar])
	var scalar secp256k1.ModNScalar
	if scalar.SetBytes(&buf) != 0 {
		return errors.New("curve.Scalar.Unmarshal: scalar was >= q")
	}
	s.s.Set(&scalar)
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
// The point is encoded in 33 byte compressed form.
func (v *Point) MarshalBinary() ([]byte, error) {
	if v == nil {
		return nil, errors.New("curve.Point.Marshal: point is nil")
	}
	if v.IsIdentity() {
		return nil, errors.New("curve.Point.Marshal: tried to marshal identity")
	}
	v.toAffine()

	data := make([]byte, params.BytesPoint)
	format := byte(secp256k1.PubKeyFormatCompressedEven)
	if v.p.Y.IsOdd() {
		format = secp256k1.PubKeyFormatCompressedOdd
	}

	// 0x02 or 0x03 ∥ 32-byte x coordinate
	data[0] = format
	v.p.X.PutBytesUnchecked(data[1:33])
	return data, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (v *Point) UnmarshalBinary(data []byte) error {
	if len(data) < params.BytesPoint {
		return errors.New("curve.Point.Unmarshal: data is too small")
	}
	format := data[0]
	if format != secp256k1.PubKeyFormatCompressedOdd && format != secp256k1.PubKeyFormatCompressedEven {
		return errors.New("curve.Point.Unmarshal: incorrect format")
	}

	var x, y secp256k1.FieldVal
	if overflow := x.SetByteSlice(data[1:33]); overflow {
		return errors.New("curve.Point.Unmarshal: invalid point: x >= field prime")
	}

	wantOddY := format == secp256k1.PubKeyFormatCompressedOdd
	if !secp256k1.DecompressY(&x, wantOddY, &y) {
		return fmt.Errorf("curve.Point.Unmarshal: invalid point: x coordinate %v is not on the secp256k1 curve", x)
	}
	y.Normalize()
	v.p.X.Set(&x)
	v.p.Y.Set(&y)
	v.p.Z.SetInt(1)
	return nil
}
