package merkle

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// sentinel returns the zero-length buffer used for layer padding and for
// "no sibling" entries in proofs. It is never a 32-byte zero digest.
func sentinel() []byte {
	return []byte{}
}

// NewMerkleTree builds a tree from leaves. Leaf order is significant.
//
// A layer with an odd number of nodes (other than the root) is padded with
// the sentinel, and the last node is then hashed alone. A single leaf is
// its own root. Leaves must be non-empty since the empty buffer is the sentinel.
func NewMerkleTree(leaves [][]byte, opts ...Option) (*MerkleTree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyTree
	}

	o := &treeOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	for i, leaf := range leaves {
		if len(leaf) == 0 {
			return nil, errors.Wrapf(ErrInvariant, "leaf %d is empty", i)
		}
	}

	hasher := NewHasher(o.hashFunction)
	layers := buildLayers(hasher, leaves)

	// Later duplicates overwrite earlier positions
	index := make(map[string]int, len(layers[0]))
	for i, leaf := range layers[0] {
		index[hex.EncodeToString(leaf)] = i
	}

	mt := &MerkleTree{
		hasher:    hasher,
		layers:    layers,
		index:     index,
		leafCount: len(leaves),
		logger:    o.logger,
	}

	mt.logger.Sugar().Debugw("Built merkle tree",
		"leaves", len(leaves),
		"padded_leaves", len(layers[0]),
		"depth", mt.Depth(),
		"root", mt.RootHex(),
	)
	return mt, nil
}

// buildLayers reduces the leaves into successive layers until one node remains.
func buildLayers(hasher *Hasher, leaves [][]byte) [][][]byte {
	leafLayer := make([][]byte, len(leaves), len(leaves)+1)
	for i, leaf := range leaves {
		leafLayer[i] = append([]byte(nil), leaf...)
	}

	layers := [][][]byte{padLayer(leafLayer)}
	current := layers[0]
	for len(current) > 1 {
		next := make([][]byte, 0, len(current)/2+1)
		for i := 0; i < len(current); i += 2 {
			next = append(next, hasher.CombinedHash(current[i], current[i+1]))
		}
		next = padLayer(next)
		layers = append(layers, next)
		current = next
	}
	return layers
}

// padLayer appends the sentinel to odd-length layers. The root layer is left alone.
func padLayer(layer [][]byte) [][]byte {
	if len(layer) > 1 && len(layer)%2 == 1 {
		return append(layer, sentinel())
	}
	return layer
}

// Root returns the root of the tree.
func (mt *MerkleTree) Root() []byte {
	root := mt.layers[len(mt.layers)-1][0]
	return append([]byte(nil), root...)
}

// RootHex returns the root as 0x-prefixed lowercase hex.
func (mt *MerkleTree) RootHex() string {
	return hexutil.Encode(mt.layers[len(mt.layers)-1][0])
}

// Depth is the number of layers above the leaf layer, i.e. the proof length.
func (mt *MerkleTree) Depth() int {
	return len(mt.layers) - 1
}

// LeafCount is the number of leaves the tree was built from, excluding padding.
func (mt *MerkleTree) LeafCount() int {
	return mt.leafCount
}

// Leaves returns a copy of the padded leaf layer.
func (mt *MerkleTree) Leaves() [][]byte {
	return copyLayer(mt.layers[0])
}

// Layers returns a copy of every layer, leaves first and root last.
func (mt *MerkleTree) Layers() [][][]byte {
	layers := make([][][]byte, len(mt.layers))
	for i, layer := range mt.layers {
		layers[i] = copyLayer(layer)
	}
	return layers
}

// HexLayers returns every layer hex encoded. Sentinels encode as "0x".
func (mt *MerkleTree) HexLayers() [][]string {
	layers := make([][]string, len(mt.layers))
	for i, layer := range mt.layers {
		layers[i] = BuffersToHex(layer)
	}
	return layers
}

// LeafIndex returns the position of leaf in the padded leaf layer. For
// duplicated leaves this is the last position.
func (mt *MerkleTree) LeafIndex(leaf []byte) (int, bool) {
	idx, ok := mt.index[hex.EncodeToString(leaf)]
	return idx, ok
}

// Proof returns the sibling of every node on the path from leaf to root,
// bottom-up. A sentinel entry means the node had no sibling at that level.
func (mt *MerkleTree) Proof(leaf []byte) ([][]byte, error) {
	idx, ok := mt.LeafIndex(leaf)
	if !ok {
		mt.logger.Sugar().Debugw("Leaf not found in index", "leaf", hexutil.Encode(leaf))
		return nil, errors.Wrapf(ErrLeafNotFound, "leaf %s", hexutil.Encode(leaf))
	}
	return mt.proofAt(idx), nil
}

// ProofAt returns the proof for the node at position index of the padded
// leaf layer. It reaches duplicates that Proof cannot.
func (mt *MerkleTree) ProofAt(index int) ([][]byte, error) {
	if index < 0 || index >= len(mt.layers[0]) {
		return nil, errors.Wrapf(ErrLeafNotFound, "leaf index %d out of bounds (tree has %d leaves)", index, len(mt.layers[0]))
	}
	return mt.proofAt(index), nil
}

// ProofHex is Proof with every entry 0x-prefixed hex encoded.
func (mt *MerkleTree) ProofHex(leaf []byte) ([]string, error) {
	proof, err := mt.Proof(leaf)
	if err != nil {
		return nil, err
	}
	return BuffersToHex(proof), nil
}

// VerifyLeaf checks the proof for leaf against this tree's root.
func (mt *MerkleTree) VerifyLeaf(leaf []byte) (bool, error) {
	proof, err := mt.Proof(leaf)
	if err != nil {
		return false, err
	}
	return mt.hasher.VerifyProof(proof, leaf, mt.Root()), nil
}

func (mt *MerkleTree) proofAt(index int) [][]byte {
	proof := make([][]byte, 0, mt.Depth())

	for level := 0; level < len(mt.layers)-1; level++ {
		layer := mt.layers[level]

		var siblingIndex int
		if index%2 == 0 {
			siblingIndex = index + 1
		} else {
			siblingIndex = index - 1
		}

		if siblingIndex < len(layer) {
			proof = append(proof, append([]byte{}, layer[siblingIndex]...))
		} else {
			proof = append(proof, sentinel())
		}

		index = index / 2
	}
	return proof
}

func copyLayer(layer [][]byte) [][]byte {
	out := make([][]byte, len(layer))
	for i, node := range layer {
		out[i] = append([]byte{}, node...)
	}
	return out
}
