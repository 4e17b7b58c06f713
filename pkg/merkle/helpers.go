package merkle

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DedupeLeaves drops repeated leaves, keeping the first occurrence and the
// original order. NewMerkleTree never applies it on its own.
func DedupeLeaves(leaves [][]byte) [][]byte {
	seen := make(map[string]struct{}, len(leaves))
	out := make([][]byte, 0, len(leaves))
	for _, leaf := range leaves {
		key := hex.EncodeToString(leaf)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, leaf)
	}
	return out
}

// BuffersToHex encodes each buffer as 0x-prefixed lowercase hex.
func BuffersToHex(buffers [][]byte) []string {
	out := make([]string, len(buffers))
	for i, b := range buffers {
		out[i] = hexutil.Encode(b)
	}
	return out
}
