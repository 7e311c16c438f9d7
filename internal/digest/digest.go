// Package digest hashes a complete in-memory transfer buffer.
//
// The hash functions are consumed as black boxes: SHA-256 from the standard
// library and BLAKE3 from github.com/zeebo/blake3. Both produce 32 bytes.
package digest

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"sort"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/bft-labs/volbench/internal/domain"
)

// Algorithm names a supported hash function.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	BLAKE3 Algorithm = "blake3"
)

// Default is the algorithm used when none is configured.
const Default = SHA256

var constructors = map[Algorithm]func() hash.Hash{
	SHA256: sha256.New,
	BLAKE3: func() hash.Hash { return blake3.New() },
}

// ParseAlgorithm normalises a user-supplied algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if alg == "" {
		return Default, nil
	}
	if _, ok := constructors[alg]; !ok {
		return "", fmt.Errorf("unsupported digest algorithm %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return alg, nil
}

// Names lists the supported algorithms in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for alg := range constructors {
		names = append(names, string(alg))
	}
	sort.Strings(names)
	return names
}

// New returns a fresh hasher for alg.
func New(alg Algorithm) (hash.Hash, error) {
	ctor, ok := constructors[alg]
	if !ok {
		return nil, fmt.Errorf("unsupported digest algorithm %q", alg)
	}
	h := ctor()
	if h.Size() != domain.DigestSize {
		return nil, fmt.Errorf("digest algorithm %q produces %d bytes, want %d", alg, h.Size(), domain.DigestSize)
	}
	return h, nil
}

// Sum hashes all of buf in one pass. It is a pure function of buf.
func Sum(alg Algorithm, buf []byte) (domain.Digest, error) {
	var d domain.Digest
	h, err := New(alg)
	if err != nil {
		return d, err
	}
	// hash.Hash.Write never returns an error.
	h.Write(buf)
	copy(d[:], h.Sum(nil))
	return d, nil
}
