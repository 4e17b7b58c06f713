package merkle

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/Layr-Labs/eigenx-merkle-go/pkg/hashing"
)

// Hasher applies the pairwise combination rule on top of a digest function.
type Hasher struct {
	hash hashing.HashFunction
}

// NewHasher wraps h. A nil h selects keccak256.
func NewHasher(h hashing.HashFunction) *Hasher {
	if h == nil {
		h = hashing.Keccak256
	}
	return &Hasher{hash: h}
}

// DefaultHasher hashes with keccak256.
var DefaultHasher = NewHasher(hashing.Keccak256)

// Hash digests data with the underlying hash function.
func (h *Hasher) Hash(data []byte) []byte {
	return h.hash(data)
}

// CombinedHash merges two nodes into their parent.
//
// When both nodes are present they are sorted byte-wise and the concatenation
// is hashed, so CombinedHash(a, b) == CombinedHash(b, a). When only one is
// present (the other is the zero-length sentinel) that node is hashed alone,
// with no domain separation from the paired case. Calling it with neither
// present is a programming error and panics.
func (h *Hasher) CombinedHash(first, second []byte) []byte {
	switch {
	case len(first) > 0 && len(second) > 0:
		if bytes.Compare(first, second) > 0 {
			first, second = second, first
		}
		return h.hash(first, second)
	case len(first) > 0:
		return h.hash(first)
	case len(second) > 0:
		return h.hash(second)
	default:
		panic(errors.Wrap(ErrInvariant, "combined hash requires at least one node"))
	}
}

// VerifyProof recomputes the root from leaf and proof and compares it to root.
//
// Each step always hashes the sorted concatenation of the running value and
// the proof entry, even when the entry is the sentinel. Since the sentinel is
// zero-length, that concatenation is byte-identical to the single-node hash
// used during construction.
func (h *Hasher) VerifyProof(proof [][]byte, leaf, root []byte) bool {
	computed := leaf
	for _, p := range proof {
		if bytes.Compare(computed, p) <= 0 {
			computed = h.hash(computed, p)
		} else {
			computed = h.hash(p, computed)
		}
	}
	return bytes.Equal(computed, root)
}

// VerifyProof checks a proof with the default keccak256 hasher. It needs no tree instance.
func VerifyProof(proof [][]byte, leaf, root []byte) bool {
	return DefaultHasher.VerifyProof(proof, leaf, root)
}

// VerifyProofWithHash checks a proof for a tree built with hash function h.
func VerifyProofWithHash(h hashing.HashFunction, proof [][]byte, leaf, root []byte) bool {
	return NewHasher(h).VerifyProof(proof, leaf, root)
}
