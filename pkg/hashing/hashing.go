package hashing

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// DigestSize is the output size in bytes of every registered hash function.
const DigestSize = 32

// HashFunction digests the concatenation of its inputs into a 32-byte buffer.
type HashFunction func(data ...[]byte) []byte

type Name string

func (n Name) String() string {
	return string(n)
}

const (
	NameKeccak256  Name = "keccak256"
	NameSha256     Name = "sha256"
	NameSha3_256   Name = "sha3-256"
	NameBlake2b256 Name = "blake2b-256"
)

// DefaultName is used when no hash function is configured.
// keccak256 keeps roots compatible with Solidity verifiers.
const DefaultName = NameKeccak256

var registry = map[Name]HashFunction{
	NameKeccak256:  Keccak256,
	NameSha256:     Sha256,
	NameSha3_256:   Sha3_256,
	NameBlake2b256: Blake2b256,
}

// Keccak256 is the legacy Keccak used by the EVM.
func Keccak256(data ...[]byte) []byte {
	return crypto.Keccak256(data...)
}

func Sha256(data ...[]byte) []byte {
	h := sha256.New()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// Sha3_256 is the NIST FIPS-202 variant, which differs from Keccak256 in padding.
func Sha3_256(data ...[]byte) []byte {
	h := sha3.New256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

func Blake2b256(data ...[]byte) []byte {
	// New256 only fails for keys longer than 64 bytes
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// Get returns the hash function registered under name.
func Get(name Name) (HashFunction, error) {
	h, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unsupported hash function: %s", name)
	}
	return h, nil
}

// IsSupported reports whether name is a registered hash function.
func IsSupported(name Name) bool {
	_, ok := registry[name]
	return ok
}

// SupportedNames returns the registered names in lexical order.
func SupportedNames() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n.String())
	}
	sort.Strings(names)
	return names
}
