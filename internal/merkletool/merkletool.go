package merkletool

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Layr-Labs/eigenx-merkle-go/pkg/config"
	"github.com/Layr-Labs/eigenx-merkle-go/pkg/hashing"
	"github.com/Layr-Labs/eigenx-merkle-go/pkg/leaves"
	"github.com/Layr-Labs/eigenx-merkle-go/pkg/merkle"
)

// Tool builds trees and checks proofs according to a TreeConfig
type Tool struct {
	cfg    *config.TreeConfig
	hash   hashing.HashFunction
	logger *zap.Logger
}

func NewTool(cfg *config.TreeConfig, l *zap.Logger) (*Tool, error) {
	if cfg == nil {
		cfg = config.NewDefaultTreeConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid tree config")
	}
	h, err := cfg.GetHashFunction()
	if err != nil {
		return nil, err
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &Tool{cfg: cfg, hash: h, logger: l}, nil
}

// PrepareLeaves applies the configured pre-processing: dedupe first, then hashing.
func (t *Tool) PrepareLeaves(raw [][]byte) [][]byte {
	prepared := raw
	if t.cfg.Dedupe {
		prepared = merkle.DedupeLeaves(prepared)
		if dropped := len(raw) - len(prepared); dropped > 0 {
			t.logger.Sugar().Infow("Dropped duplicate leaves", "dropped", dropped, "remaining", len(prepared))
		}
	}
	if t.cfg.HashLeaves {
		prepared = leaves.HashLeaves(t.hash, prepared)
	}
	return prepared
}

// BuildTree builds a tree over raw leaves after pre-processing.
func (t *Tool) BuildTree(raw [][]byte) (*merkle.MerkleTree, error) {
	tree, err := merkle.NewMerkleTree(t.PrepareLeaves(raw),
		merkle.WithHashFunction(t.hash),
		merkle.WithLogger(t.logger),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build merkle tree")
	}
	t.logger.Sugar().Infow("Built merkle tree",
		"hash_function", t.cfg.HashFunction.String(),
		"leaves", tree.LeafCount(),
		"depth", tree.Depth(),
		"root", tree.RootHex(),
	)
	return tree, nil
}

// BuildTreeFromFile reads leaves from path and builds a tree over them.
func (t *Tool) BuildTreeFromFile(path string) (*merkle.MerkleTree, error) {
	raw, err := leaves.ReadLeavesFile(path)
	if err != nil {
		return nil, err
	}
	return t.BuildTree(raw)
}

// ResolveLeaf parses a hex leaf as given on the command line and hashes it
// when leaves are hashed before building.
func (t *Tool) ResolveLeaf(leafHex string) ([]byte, error) {
	leaf, err := leaves.ParseLeaf(leafHex)
	if err != nil {
		return nil, err
	}
	if t.cfg.HashLeaves {
		leaf = t.hash(leaf)
	}
	return leaf, nil
}

// Verify checks a hex encoded proof. Sentinel entries are written "0x".
func (t *Tool) Verify(proofHex []string, leafHex, rootHex string) (bool, error) {
	leaf, err := t.ResolveLeaf(leafHex)
	if err != nil {
		return false, errors.Wrap(err, "invalid leaf")
	}
	root, err := leaves.ParseLeaf(rootHex)
	if err != nil {
		return false, errors.Wrap(err, "invalid root")
	}

	proof := make([][]byte, len(proofHex))
	for i, p := range proofHex {
		if p == "0x" || p == "" {
			proof[i] = []byte{}
			continue
		}
		entry, err := leaves.ParseLeaf(p)
		if err != nil {
			return false, errors.Wrapf(err, "invalid proof entry %d", i)
		}
		proof[i] = entry
	}

	valid := merkle.VerifyProofWithHash(t.hash, proof, leaf, root)
	t.logger.Sugar().Debugw("Verified proof", "valid", valid, "proof_length", len(proof))
	return valid, nil
}
