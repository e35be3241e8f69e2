package hash

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// WriterToWithDomain represents a type writing itself, and knowing its domain.
//
// Providing a domain string lets us distinguish the output of different types
// implementing this same interface.
type WriterToWithDomain interface {
	io.WriterTo

	// Domain returns a context string, which should be unique for each implementor.
	Domain() string
}

// BytesWithDomain is a useful wrapper to annotate some chunk of data with a domain.
type BytesWithDomain struct {
	TheDomain string
	Bytes     []byte
}

// WriteTo implements io.WriterTo.
func (b BytesWithDomain) WriteTo(w io.Writer) (int64, error) {
	if b.Bytes == nil {
		return 0, io.ErrUnexpectedEOF
	}
	n, err := w.Write(b.Bytes)
	return int64(n), err
}

// Domain implements WriterToWithDomain.
func (b BytesWithDomain) Domain() string {
	return b.TheDomain
}

// writeWithDomain writes out
//
//	len(domain) ∥ domain ∥ len(data) ∥ data
//
// so that writes of different types cannot collide in the transcript.
func writeWithDomain(w io.Writer, v WriterToWithDomain) error {
	domain := v.Domain()

	var buf bytes.Buffer
	if _, err := v.WriteTo(&buf); err != nil {
		return fmt.Errorf("hash: failed to serialize %q: %w", domain, err)
	}

	if err := binary.Write(w, binary.BigEndian, uint64(len(domain))); err != nil {
		return fmt.Errorf("hash: failed to write domain length: %w", err)
	}
	if _, err := w.Write([]byte(domain)); err != nil {
		return fmt.Errorf("hash: failed to write domain: %w", err)
	}
	if err := binary.Write(w, binary.BigEndian, uint64(buf.Len())); err != nil {
		return fmt.Errorf("hash: failed to write data length: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("hash: failed to write data: %w", err)
	}
	return nil
}
