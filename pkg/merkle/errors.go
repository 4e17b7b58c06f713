package merkle

import "github.com/pkg/errors"

var (
	// ErrEmptyTree is returned when a tree is built from no leaves.
	ErrEmptyTree = errors.New("cannot build merkle tree from empty leaf list")

	// ErrLeafNotFound is returned when a proof is requested for an unknown leaf or position.
	ErrLeafNotFound = errors.New("leaf not found in merkle tree")

	// ErrInvariant marks internal precondition violations. These indicate a
	// caller bug and are never retried.
	ErrInvariant = errors.New("merkle invariant violated")
)
