package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/Layr-Labs/eigenx-merkle-go/pkg/hashing"
)

// Environment variable names for merkle tool configuration
const (
	EnvMerkleConfigFile   = "MERKLE_CONFIG_FILE"
	EnvMerkleHashFunction = "MERKLE_HASH_FUNCTION"
	EnvMerkleHashLeaves   = "MERKLE_HASH_LEAVES"
	EnvMerkleDedupe       = "MERKLE_DEDUPE"
	EnvMerkleDebug        = "MERKLE_DEBUG"
)

// TreeConfig controls how leaves are pre-processed and which digest builds the tree
type TreeConfig struct {
	// HashFunction names the digest, see hashing.SupportedNames
	HashFunction hashing.Name `json:"hashFunction" yaml:"hashFunction"`

	// HashLeaves digests every input leaf before building
	HashLeaves bool `json:"hashLeaves" yaml:"hashLeaves"`

	// Dedupe drops repeated leaves before building, keeping the first occurrence
	Dedupe bool `json:"dedupe" yaml:"dedupe"`

	Debug bool `json:"debug" yaml:"debug"`
}

// NewDefaultTreeConfig returns a keccak256 config with no pre-processing
func NewDefaultTreeConfig() *TreeConfig {
	return &TreeConfig{
		HashFunction: hashing.DefaultName,
	}
}

// LoadConfigFile reads a YAML TreeConfig. Fields missing from the file keep their defaults.
func LoadConfigFile(path string) (*TreeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	cfg := NewDefaultTreeConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return cfg, nil
}

// Validate validates the tree configuration
func (c *TreeConfig) Validate() error {
	var allErrors field.ErrorList
	if c.HashFunction == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("hashFunction"), "hashFunction is required"))
	} else if !hashing.IsSupported(c.HashFunction) {
		allErrors = append(allErrors, field.NotSupported(field.NewPath("hashFunction"), c.HashFunction.String(), hashing.SupportedNames()))
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// GetHashFunction resolves the configured digest
func (c *TreeConfig) GetHashFunction() (hashing.HashFunction, error) {
	return hashing.Get(c.HashFunction)
}
