package merkle

import (
	"go.uber.org/zap"

	"github.com/Layr-Labs/eigenx-merkle-go/pkg/hashing"
)

// MerkleTree is an immutable binary merkle tree over an ordered list of leaves.
// Pairs are hashed in sorted order so proofs carry no left/right flags.
type MerkleTree struct {
	hasher *Hasher

	// layers[0] is the padded leaf layer, layers[len-1] holds only the root.
	// Every layer except the root has even length.
	layers [][][]byte

	// index maps hex(leaf) to its position in layers[0]. Duplicate leaves
	// overwrite earlier positions.
	index map[string]int

	// leafCount is the number of leaves supplied, before padding
	leafCount int

	logger *zap.Logger
}

type treeOptions struct {
	hashFunction hashing.HashFunction
	logger       *zap.Logger
}

// Option configures tree construction.
type Option func(*treeOptions)

// WithHashFunction sets the digest used for pairwise hashing. Defaults to keccak256.
func WithHashFunction(h hashing.HashFunction) Option {
	return func(o *treeOptions) {
		o.hashFunction = h
	}
}

// WithLogger sets the logger used for debug output. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *treeOptions) {
		o.logger = l
	}
}
