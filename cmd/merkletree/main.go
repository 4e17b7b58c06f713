package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Layr-Labs/eigenx-merkle-go/internal/merkletool"
	"github.com/Layr-Labs/eigenx-merkle-go/pkg/config"
	"github.com/Layr-Labs/eigenx-merkle-go/pkg/hashing"
	"github.com/Layr-Labs/eigenx-merkle-go/pkg/logger"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "merkletree",
		Usage: "Build sorted-pair merkle trees and produce or check inclusion proofs",
		Description: `Builds a binary merkle tree over an ordered list of leaves and prints the root,
per-leaf inclusion proofs and layers. Proofs can be verified without the leaf set.

Odd layers are padded with an empty sentinel; proof entries of "0x" mean the node had no sibling.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to a YAML tree config",
				EnvVars: []string{config.EnvMerkleConfigFile},
			},
			&cli.StringFlag{
				Name:    "hash",
				Usage:   fmt.Sprintf("Hash function: %s", strings.Join(hashing.SupportedNames(), ", ")),
				Value:   hashing.DefaultName.String(),
				EnvVars: []string{config.EnvMerkleHashFunction},
			},
			&cli.BoolFlag{
				Name:    "hash-leaves",
				Usage:   "Hash every leaf before building the tree",
				EnvVars: []string{config.EnvMerkleHashLeaves},
			},
			&cli.BoolFlag{
				Name:    "dedupe",
				Usage:   "Drop repeated leaves before building the tree",
				EnvVars: []string{config.EnvMerkleDedupe},
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				EnvVars: []string{config.EnvMerkleDebug},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "root",
				Usage:  "Print the merkle root",
				Flags:  []cli.Flag{leavesFlag()},
				Action: rootCommand,
			},
			{
				Name:   "proof",
				Usage:  "Print the inclusion proof for a leaf, one entry per line",
				Flags:  []cli.Flag{leavesFlag(), leafFlag()},
				Action: proofCommand,
			},
			{
				Name:   "index",
				Usage:  "Print the position of a leaf in the padded leaf layer",
				Flags:  []cli.Flag{leavesFlag(), leafFlag()},
				Action: indexCommand,
			},
			{
				Name:   "layers",
				Usage:  "Print every layer, leaves first",
				Flags:  []cli.Flag{leavesFlag()},
				Action: layersCommand,
			},
			{
				Name:  "verify",
				Usage: "Verify an inclusion proof against a root",
				Flags: []cli.Flag{
					leafFlag(),
					&cli.StringFlag{
						Name:     "root",
						Usage:    "Expected root as hex",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "proof",
						Usage: "Proof entries as hex, bottom-up; repeat the flag or comma separate. Use 0x for a sentinel",
					},
				},
				Action: verifyCommand,
			},
		},
	}
}

func leavesFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "leaves",
		Aliases:  []string{"l"},
		Usage:    "Path to a file with one hex leaf per line",
		Required: true,
	}
}

func leafFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "leaf",
		Usage:    "Leaf as hex, hashed first when --hash-leaves is set",
		Required: true,
	}
}

// parseConfig layers CLI flags and environment over the optional config file
func parseConfig(c *cli.Context) (*config.TreeConfig, error) {
	cfg := config.NewDefaultTreeConfig()
	if path := c.String("config"); path != "" {
		fileCfg, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if c.IsSet("hash") || cfg.HashFunction == "" {
		cfg.HashFunction = hashing.Name(c.String("hash"))
	}
	if c.IsSet("hash-leaves") {
		cfg.HashLeaves = c.Bool("hash-leaves")
	}
	if c.IsSet("dedupe") {
		cfg.Dedupe = c.Bool("dedupe")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// createTool creates a merkle tool from CLI context
func createTool(c *cli.Context) (*merkletool.Tool, error) {
	cfg, err := parseConfig(c)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	zapLogger, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	zapLogger = zapLogger.With(zap.String("run_id", uuid.New().String()))

	return merkletool.NewTool(cfg, zapLogger)
}

// rootCommand handles the root subcommand
func rootCommand(c *cli.Context) error {
	tool, err := createTool(c)
	if err != nil {
		return err
	}

	tree, err := tool.BuildTreeFromFile(c.String("leaves"))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, tree.RootHex())
	return nil
}

// proofCommand handles the proof subcommand
func proofCommand(c *cli.Context) error {
	tool, err := createTool(c)
	if err != nil {
		return err
	}

	tree, err := tool.BuildTreeFromFile(c.String("leaves"))
	if err != nil {
		return err
	}

	leaf, err := tool.ResolveLeaf(c.String("leaf"))
	if err != nil {
		return fmt.Errorf("invalid leaf: %w", err)
	}

	proof, err := tree.ProofHex(leaf)
	if err != nil {
		return fmt.Errorf("failed to generate proof: %w", err)
	}

	for _, p := range proof {
		fmt.Fprintln(c.App.Writer, p)
	}
	return nil
}

// indexCommand handles the index subcommand
func indexCommand(c *cli.Context) error {
	tool, err := createTool(c)
	if err != nil {
		return err
	}

	tree, err := tool.BuildTreeFromFile(c.String("leaves"))
	if err != nil {
		return err
	}

	leaf, err := tool.ResolveLeaf(c.String("leaf"))
	if err != nil {
		return fmt.Errorf("invalid leaf: %w", err)
	}

	idx, ok := tree.LeafIndex(leaf)
	if !ok {
		return cli.Exit(fmt.Sprintf("leaf %s not found", c.String("leaf")), 1)
	}

	fmt.Fprintln(c.App.Writer, idx)
	return nil
}

// layersCommand handles the layers subcommand
func layersCommand(c *cli.Context) error {
	tool, err := createTool(c)
	if err != nil {
		return err
	}

	tree, err := tool.BuildTreeFromFile(c.String("leaves"))
	if err != nil {
		return err
	}

	for i, layer := range tree.HexLayers() {
		fmt.Fprintf(c.App.Writer, "layer %d: %s\n", i, strings.Join(layer, " "))
	}
	return nil
}

// verifyCommand handles the verify subcommand
func verifyCommand(c *cli.Context) error {
	tool, err := createTool(c)
	if err != nil {
		return err
	}

	valid, err := tool.Verify(c.StringSlice("proof"), c.String("leaf"), c.String("root"))
	if err != nil {
		return err
	}
	if !valid {
		return cli.Exit("invalid proof", 1)
	}

	fmt.Fprintln(c.App.Writer, "valid")
	return nil
}
