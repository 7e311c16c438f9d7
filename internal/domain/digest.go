package domain

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DigestSize is the length in bytes of every digest volbench computes.
const DigestSize = 32

// Digest is the hash of a complete transfer buffer.
type Digest [DigestSize]byte

// Hex renders the digest as 64 lowercase hex characters, two per byte in
// byte order.
func (d Digest) Hex() string {
	var dst [DigestSize * 2]byte
	hex.Encode(dst[:], d[:])
	return string(dst[:])
}

func (d Digest) String() string { return d.Hex() }

// IsZero reports whether the digest is all zero bytes (i.e. never computed).
func (d Digest) IsZero() bool { return d == Digest{} }

// MarshalText encodes the digest as lowercase hex.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.Hex()), nil
}

// UnmarshalText decodes a hex digest produced by MarshalText.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDigest decodes a 64-character hex string. Upper case input is
// accepted; Hex always renders lower case.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	s = strings.TrimSpace(s)
	if len(s) != DigestSize*2 {
		return d, fmt.Errorf("digest must be %d hex characters, got %d", DigestSize*2, len(s))
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return d, fmt.Errorf("parse digest: %w", err)
	}
	return d, nil
}
