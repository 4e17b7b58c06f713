package leaves

import (
	"bufio"
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/Layr-Labs/eigenx-merkle-go/pkg/hashing"
)

// ParseLeaf decodes a single hex leaf, with or without the 0x prefix.
func ParseLeaf(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	var (
		leaf []byte
		err  error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		leaf, err = hexutil.Decode("0x" + s[2:])
	} else {
		leaf, err = hex.DecodeString(s)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hex leaf %q", s)
	}
	if len(leaf) == 0 {
		return nil, errors.Errorf("leaf %q is empty", s)
	}
	return leaf, nil
}

// ReadLeaves reads one hex leaf per line. Blank lines and lines starting
// with '#' are skipped.
func ReadLeaves(r io.Reader) ([][]byte, error) {
	var out [][]byte

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		leaf, err := ParseLeaf(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		out = append(out, leaf)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read leaves")
	}
	return out, nil
}

// ReadLeavesFile reads leaves from path in the ReadLeaves format.
func ReadLeavesFile(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open leaf file %s", path)
	}
	defer f.Close()

	return ReadLeaves(f)
}

// HashLeaves digests every raw leaf with h. Trees over hashed leaves have
// uniform 32-byte leaves regardless of the record size.
func HashLeaves(h hashing.HashFunction, raw [][]byte) [][]byte {
	out := make([][]byte, len(raw))
	for i, r := range raw {
		out[i] = h(r)
	}
	return out
}
